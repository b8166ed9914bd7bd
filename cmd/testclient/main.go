// Integration test client for the voice bot control API. Checks bot health,
// optionally joins and leaves a meeting, then lists captured audio files.
// The webhook backend is exercised indirectly: a joined bot posts its status
// and transcription events there.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"arty-voicebot-backend/internal/botclient"
)

func main() {
	botURL := flag.String("bot-url", "http://localhost:9441", "Base URL of the voice bot control API")
	joinURL := flag.String("join-url", "", "Teams meeting join URL (skip meeting test when empty)")
	captureWait := flag.Duration("capture-wait", 10*time.Second, "Time to stay in the meeting for audio capture")
	flag.Parse()

	ctx := context.Background()
	client := botclient.New(*botURL)

	if err := client.Health(ctx); err != nil {
		log.Fatalf("bot is not healthy: %v", err)
	}
	log.Println("Bot is healthy")

	if *joinURL == "" {
		log.Println("No join URL provided, skipping meeting test")
	} else {
		runMeetingTest(ctx, client, *joinURL, *captureWait)
	}

	files, err := client.AudioFiles(ctx)
	if err != nil {
		log.Fatalf("failed to list audio files: %v", err)
	}
	log.Printf("Found %d audio file(s)", len(files))
	for i, f := range files {
		if i >= 5 {
			log.Printf("... and %d more", len(files)-5)
			break
		}
		log.Printf("  - %s", f)
	}

	log.Println("Test complete")
}

func runMeetingTest(ctx context.Context, client *botclient.Client, joinURL string, captureWait time.Duration) {
	result, err := client.Join(ctx, joinURL)
	if err != nil {
		log.Fatalf("failed to join meeting: %v", err)
	}
	log.Printf("Joined meeting: callId=%s scenarioId=%s status=%s", result.CallID, result.ScenarioID, result.Status)

	log.Printf("Waiting %v for audio capture...", captureWait)
	time.Sleep(captureWait)

	calls, err := client.ActiveCalls(ctx)
	if err != nil {
		log.Printf("failed to list active calls: %v", err)
	} else {
		log.Printf("Found %d active call(s)", len(calls))
		for _, call := range calls {
			log.Printf("  - callId=%s status=%s joinedAt=%s", call.CallID, call.Status, call.JoinedAt)
		}
	}

	if err := client.Leave(ctx, result.CallID); err != nil {
		log.Fatalf("failed to leave meeting: %v", err)
	}
	log.Println("Left meeting")
}

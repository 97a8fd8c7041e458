package main

import (
	"context"
	"testing"
	"time"

	"irmodel/internal/irbuild"
	"irmodel/internal/replay"
)

// Nobody reads the events once the progress view has quit; the batch must
// still finish.
func TestAwaitBatch_UnreadEvents(t *testing.T) {
	streams := make([]*replay.Stream, 8)
	for i := range streams {
		s, err := replay.Load(counterStream)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		streams[i] = s
	}
	ctx, cancel := context.WithCancel(context.Background())
	events, outcomeCh := startBatch(ctx, streams, irbuild.Options{}, 2, 1)
	cancel()

	done := make(chan batchOutcome, 1)
	go func() { done <- awaitBatch(events, outcomeCh) }()
	select {
	case outcome := <-done:
		if len(outcome.modules) != len(streams) {
			t.Fatalf("got %d module slots, want %d", len(outcome.modules), len(streams))
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch blocked on unread progress events")
	}
}

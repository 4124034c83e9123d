package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rook9/chess"
)

func TestPublisherStreamDuringSearchEndsWithExactlyOneComplete(t *testing.T) {
	pos, err := chess.ParseFEN(chess.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}
	pub := NewPublisher(50 * time.Millisecond)

	records := make(chan Record, 256)
	go func() {
		for {
			rec, ok := pub.Next(context.Background())
			if !ok {
				close(records)
				return
			}
			records <- rec
		}
	}()

	Search(context.Background(), pos, 8, 500*time.Millisecond, pub)

	var snapshots, completes, errs int
	lastDepth := 0
	for rec := range records {
		switch rec.Type {
		case SnapshotRecord:
			snapshots++
			if rec.Depth < lastDepth {
				t.Fatalf("snapshot depth went backwards: %d after %d", rec.Depth, lastDepth)
			}
			lastDepth = rec.Depth
		case CompleteRecord:
			completes++
			if rec.Depth < 1 {
				t.Fatalf("terminal record depth = %d, want >= 1", rec.Depth)
			}
		case ErrorRecord:
			errs++
		}
	}

	if completes != 1 {
		t.Fatalf("terminal complete records = %d, want exactly 1", completes)
	}
	if errs != 0 {
		t.Fatalf("unexpected error records: %d", errs)
	}
}

func TestPublisherClampsInterval(t *testing.T) {
	pub := NewPublisher(1 * time.Millisecond)
	if pub.interval != 50*time.Millisecond {
		t.Fatalf("interval = %s, want clamped to 50ms", pub.interval)
	}
	pub = NewPublisher(0)
	if pub.interval != 140*time.Millisecond {
		t.Fatalf("default interval = %s, want 140ms", pub.interval)
	}
}

func TestPublisherNeverBlocksTheWriter(t *testing.T) {
	pub := NewPublisher(50 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			pub.publishRootMove(Result{Depth: i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publishRootMove blocked with no consumer draining Next")
	}
}

func TestPublisherErrorClosesAfterFirstCall(t *testing.T) {
	pub := NewPublisher(50 * time.Millisecond)
	pub.Error("boom", "internal_error")
	pub.complete(Result{Depth: 5, HasBestMove: true})

	rec, ok := pub.Next(context.Background())
	if !ok {
		t.Fatal("Next returned ok=false on first drain")
	}
	if rec.Type != ErrorRecord || rec.Message != "boom" {
		t.Fatalf("first record = %+v, want the error record", rec)
	}

	_, ok = pub.Next(context.Background())
	if ok {
		t.Fatal("Next returned ok=true after the publisher closed on error")
	}
}

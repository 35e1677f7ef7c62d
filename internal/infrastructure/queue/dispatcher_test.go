package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftship/courier-portal/internal/core/ports"
)

type recordingEventService struct {
	mu     sync.Mutex
	events []ports.LocationEventInput
	done   chan struct{}
	want   int
}

func newRecordingEventService(want int) *recordingEventService {
	return &recordingEventService{done: make(chan struct{}), want: want}
}

func (s *recordingEventService) Process(_ context.Context, event ports.LocationEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingEventService) wait(t *testing.T) []ports.LocationEventInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events, got %d of %d", len(s.events), s.want)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.LocationEventInput(nil), s.events...)
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := newRecordingEventService(3)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, n := range []string{"CN-1", "CN-2", "CN-3"} {
		d.Enqueue(ports.LocationEventInput{ConsignmentNumber: n, Status: "IN_TRANSIT"})
	}

	events := svc.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 processed events, got %d", len(events))
	}
}

func TestDispatcher_PreservesPerConsignmentOrder(t *testing.T) {
	const perConsignment = 20
	svc := newRecordingEventService(perConsignment * 2)
	d := NewDispatcher(8, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	var batch []ports.LocationEventInput
	for i := 0; i < perConsignment; i++ {
		batch = append(batch,
			ports.LocationEventInput{ConsignmentNumber: "CN-A", Timestamp: base.Add(time.Duration(i) * time.Minute)},
			ports.LocationEventInput{ConsignmentNumber: "CN-B", Timestamp: base.Add(time.Duration(i) * time.Minute)},
		)
	}
	d.EnqueueBatch(batch)

	events := svc.wait(t)

	seen := map[string]time.Time{}
	for _, e := range events {
		if last, ok := seen[e.ConsignmentNumber]; ok && e.Timestamp.Before(last) {
			t.Fatalf("%s: event at %v processed after %v", e.ConsignmentNumber, e.Timestamp, last)
		}
		seen[e.ConsignmentNumber] = e.Timestamp
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	first := d.shardIndex("CN-42")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("CN-42"); got != first {
			t.Fatalf("shard index changed: %d vs %d", first, got)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	applied  []appliedEvent
	audited  []*domain.LocationEvent
	applyErr error
	auditErr error
}

type appliedEvent struct {
	number   string
	status   domain.ConsignmentStatus
	location string
	source   string
}

func (r *stubEventRepo) ApplyEvent(_ context.Context, number string, status domain.ConsignmentStatus, location string, _ time.Time, source string) error {
	if r.applyErr != nil {
		return r.applyErr
	}
	r.applied = append(r.applied, appliedEvent{number: number, status: status, location: location, source: source})
	return nil
}

func (r *stubEventRepo) InsertEvent(_ context.Context, event *domain.LocationEvent) error {
	if r.auditErr != nil {
		return r.auditErr
	}
	r.audited = append(r.audited, event)
	return nil
}

type stubDedup struct {
	isDup   bool
	isErr   error
	marked  int
	markErr error
}

func (d *stubDedup) IsDuplicate(_ context.Context, _, _ string, _ time.Time) (bool, error) {
	if d.isErr != nil {
		return false, d.isErr
	}
	return d.isDup, nil
}

func (d *stubDedup) Mark(_ context.Context, _, _ string, _ time.Time) error {
	d.marked++
	return d.markErr
}

// ---------------------------------------------------------------------------
// Process tests
// ---------------------------------------------------------------------------

func eventInput(number, status string) ports.LocationEventInput {
	return ports.LocationEventInput{
		ConsignmentNumber: number,
		Status:            status,
		Location:          "Nagpur",
		Timestamp:         time.Now().UTC(),
		Source:            "hub_scan",
	}
}

func TestEventService_Process_AppliesValidTransition(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusBooked)
	events := &stubEventRepo{}
	svc := NewEventService(consignments, events, nil, nil, discardLogger)

	err := svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.applied) != 1 {
		t.Fatalf("expected 1 applied event, got %d", len(events.applied))
	}
	got := events.applied[0]
	if got.status != domain.StatusInTransit {
		t.Errorf("status: want %q, got %q", domain.StatusInTransit, got.status)
	}
	if got.location != "Nagpur" {
		t.Errorf("location: want %q, got %q", "Nagpur", got.location)
	}
	if len(events.audited) != 1 {
		t.Errorf("expected 1 audit record, got %d", len(events.audited))
	}
}

func TestEventService_Process_RejectsInvalidTransition(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusDelivered)
	events := &stubEventRepo{}
	svc := NewEventService(consignments, events, nil, nil, discardLogger)

	err := svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT"))
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if len(events.applied) != 0 {
		t.Errorf("invalid transition must not be applied, got %d", len(events.applied))
	}
}

func TestEventService_Process_ConsignmentNotFound(t *testing.T) {
	consignments := newStubConsignmentRepo()
	events := &stubEventRepo{}
	svc := NewEventService(consignments, events, nil, nil, discardLogger)

	err := svc.Process(context.Background(), eventInput("missing", "IN_TRANSIT"))
	if !errors.Is(err, domain.ErrConsignmentNotFound) {
		t.Errorf("expected ErrConsignmentNotFound, got %v", err)
	}
}

func TestEventService_Process_DuplicateSkipped(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusBooked)
	events := &stubEventRepo{}
	dedup := &stubDedup{isDup: true}
	svc := NewEventService(consignments, events, dedup, nil, discardLogger)

	err := svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT"))
	if err != nil {
		t.Fatalf("duplicates must be skipped silently, got %v", err)
	}
	if len(events.applied) != 0 {
		t.Errorf("duplicate must not be applied, got %d", len(events.applied))
	}
}

func TestEventService_Process_DedupFailureProcessesAnyway(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusBooked)
	events := &stubEventRepo{}
	dedup := &stubDedup{isErr: errors.New("redis down")}
	svc := NewEventService(consignments, events, dedup, nil, discardLogger)

	if err := svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT")); err != nil {
		t.Fatalf("dedup failure must not block processing: %v", err)
	}
	if len(events.applied) != 1 {
		t.Errorf("expected event applied despite dedup failure, got %d", len(events.applied))
	}
}

func TestEventService_Process_MarksDedupBeforeApply(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusBooked)
	events := &stubEventRepo{}
	dedup := &stubDedup{}
	svc := NewEventService(consignments, events, dedup, nil, discardLogger)

	_ = svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT"))
	if dedup.marked != 1 {
		t.Errorf("expected dedup key set once, got %d", dedup.marked)
	}
}

func TestEventService_Process_ApplyFailure(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusBooked)
	events := &stubEventRepo{applyErr: errors.New("write conflict")}
	svc := NewEventService(consignments, events, nil, nil, discardLogger)

	if err := svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT")); err == nil {
		t.Fatal("expected error when apply fails, got nil")
	}
}

func TestEventService_Process_AuditFailureNonFatal(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusBooked)
	events := &stubEventRepo{auditErr: errors.New("audit collection down")}
	svc := NewEventService(consignments, events, nil, nil, discardLogger)

	if err := svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT")); err != nil {
		t.Fatalf("audit failure must be non-fatal, got %v", err)
	}
	if len(events.applied) != 1 {
		t.Errorf("event must still be applied, got %d", len(events.applied))
	}
}

func TestEventService_Process_InvalidatesTrackingCache(t *testing.T) {
	consignments := newStubConsignmentRepo()
	seedConsignment(consignments, "CN-1", domain.StatusBooked)
	events := &stubEventRepo{}
	cache := newStubTrackingCache()
	cache.entries["CN-1"] = &ports.TrackingResult{ConsignmentNumber: "CN-1", Status: "Booked"}
	svc := NewEventService(consignments, events, nil, cache, discardLogger)

	if err := svc.Process(context.Background(), eventInput("CN-1", "IN_TRANSIT")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "CN-1" {
		t.Errorf("expected cache invalidation for CN-1, got %v", cache.invalidated)
	}
}

func TestEventService_Process_FullLifecycle(t *testing.T) {
	consignments := newStubConsignmentRepo()
	events := &stubEventRepo{}
	svc := NewEventService(consignments, events, nil, nil, discardLogger)

	c := seedConsignment(consignments, "CN-1", domain.StatusBooked)
	for _, status := range []string{"IN_TRANSIT", "OUT_FOR_DELIVERY", "DELIVERED"} {
		if err := svc.Process(context.Background(), eventInput("CN-1", status)); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		// The stub event repo does not mutate the consignment; advance it
		// manually the way ApplyEvent would.
		c.Status = domain.ConsignmentStatus(status)
		consignments.byNumber["CN-1"] = c
	}

	if len(events.applied) != 3 {
		t.Errorf("expected 3 applied events, got %d", len(events.applied))
	}
}

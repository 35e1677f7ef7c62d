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
// In-memory stub cache
// ---------------------------------------------------------------------------

type stubTrackingCache struct {
	entries     map[string]*ports.TrackingResult
	getErr      error
	setErr      error
	setCalls    int
	invalidated []string
}

func newStubTrackingCache() *stubTrackingCache {
	return &stubTrackingCache{entries: make(map[string]*ports.TrackingResult)}
}

func (c *stubTrackingCache) Get(_ context.Context, consignmentNumber string) (*ports.TrackingResult, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[consignmentNumber], nil
}

func (c *stubTrackingCache) Set(_ context.Context, consignmentNumber string, result *ports.TrackingResult) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[consignmentNumber] = result
	return nil
}

func (c *stubTrackingCache) Invalidate(_ context.Context, consignmentNumber string) error {
	c.invalidated = append(c.invalidated, consignmentNumber)
	delete(c.entries, consignmentNumber)
	return nil
}

// ---------------------------------------------------------------------------
// Track tests
// ---------------------------------------------------------------------------

func TestTrackingService_Track_FormatsDisplayFields(t *testing.T) {
	repo := newStubConsignmentRepo()
	repo.byNumber["CN-42"] = &domain.Consignment{
		ConsignmentNumber: "CN-42",
		Origin:            "Chennai",
		Destination:       "Mumbai",
		CurrentLocation:   "Nagpur",
		Status:            domain.StatusOutForDelivery,
		EstimatedDelivery: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2026, 3, 6, 16, 30, 0, 0, time.UTC),
	}
	svc := NewTrackingService(repo, nil, discardLogger)

	result, err := svc.Track(context.Background(), "CN-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != "Out for Delivery" {
		t.Errorf("status label: want %q, got %q", "Out for Delivery", result.Status)
	}
	if result.EstimatedDelivery != "March 07, 2026" {
		t.Errorf("estimated_delivery: want %q, got %q", "March 07, 2026", result.EstimatedDelivery)
	}
	if result.UpdatedAt != "04:30 PM, March 06, 2026" {
		t.Errorf("updated_at: want %q, got %q", "04:30 PM, March 06, 2026", result.UpdatedAt)
	}
	if result.CurrentLocation != "Nagpur" {
		t.Errorf("current_location: want %q, got %q", "Nagpur", result.CurrentLocation)
	}
}

func TestTrackingService_Track_NotFound(t *testing.T) {
	repo := newStubConsignmentRepo()
	svc := NewTrackingService(repo, nil, discardLogger)

	_, err := svc.Track(context.Background(), "missing")
	if !errors.Is(err, domain.ErrConsignmentNotFound) {
		t.Errorf("expected ErrConsignmentNotFound, got %v", err)
	}
}

func TestTrackingService_Track_CacheHitSkipsRepo(t *testing.T) {
	repo := newStubConsignmentRepo()
	cache := newStubTrackingCache()
	cache.entries["CN-42"] = &ports.TrackingResult{ConsignmentNumber: "CN-42", Status: "In Transit"}
	svc := NewTrackingService(repo, cache, discardLogger)

	result, err := svc.Track(context.Background(), "CN-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "In Transit" {
		t.Errorf("expected cached result, got %+v", result)
	}
	if repo.findCalls != 0 {
		t.Errorf("repo must not be queried on cache hit, got %d calls", repo.findCalls)
	}
}

func TestTrackingService_Track_CacheMissPopulatesCache(t *testing.T) {
	repo := newStubConsignmentRepo()
	seedConsignment(repo, "CN-42", domain.StatusBooked)
	cache := newStubTrackingCache()
	svc := NewTrackingService(repo, cache, discardLogger)

	if _, err := svc.Track(context.Background(), "CN-42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.setCalls != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.setCalls)
	}
	if cache.entries["CN-42"] == nil {
		t.Error("result must be cached after a repo lookup")
	}
}

func TestTrackingService_Track_CacheErrorFallsThrough(t *testing.T) {
	repo := newStubConsignmentRepo()
	seedConsignment(repo, "CN-42", domain.StatusBooked)
	cache := newStubTrackingCache()
	cache.getErr = errors.New("redis down")
	svc := NewTrackingService(repo, cache, discardLogger)

	result, err := svc.Track(context.Background(), "CN-42")
	if err != nil {
		t.Fatalf("cache failure must not fail the lookup: %v", err)
	}
	if result.ConsignmentNumber != "CN-42" {
		t.Errorf("expected repo result, got %+v", result)
	}
}

func TestTrackingService_Track_NotFoundNotCached(t *testing.T) {
	repo := newStubConsignmentRepo()
	cache := newStubTrackingCache()
	svc := NewTrackingService(repo, cache, discardLogger)

	_, _ = svc.Track(context.Background(), "missing")
	if cache.setCalls != 0 {
		t.Errorf("a miss must not be cached, got %d writes", cache.setCalls)
	}
}

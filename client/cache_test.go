package client

import (
	"testing"

	"precisionturn/plan"
)

func TestCacheGetMissOnAbsentEntry(t *testing.T) {
	cache := NewCache()
	if _, ok := cache.Get("nope"); ok {
		t.Error("Expected miss for absent entry")
	}
}

func TestCacheValidHit(t *testing.T) {
	cache := NewCache()
	p := testPlan("p1", "Alpha", plan.StatusDraft)
	cache.Put("p1", p)

	got, ok := cache.Get("p1")
	if !ok {
		t.Fatal("Expected a hit for a valid entry")
	}
	if got.ID != "p1" {
		t.Errorf("Expected plan p1, got %s", got.ID)
	}
}

func TestCachePurgesEntryWithoutGeneratedPlan(t *testing.T) {
	cache := NewCache()
	p := testPlan("p1", "Alpha", plan.StatusDraft)
	p.Details.GeneratedPlan = nil
	cache.Put("p1", p)

	if _, ok := cache.Get("p1"); ok {
		t.Error("Expected invalid entry to be treated as a miss")
	}
	// The invalid entry must be purged, not retried
	if cache.Len() != 0 {
		t.Errorf("Expected invalid entry purged, cache holds %d entries", cache.Len())
	}
}

func TestCachePurgesEntryWithEmptyGeneratedPlan(t *testing.T) {
	cache := NewCache()
	p := testPlan("p1", "Alpha", plan.StatusDraft)
	p.Details.GeneratedPlan = &plan.GeneratedPlan{}
	cache.Put("p1", p)

	if _, ok := cache.Get("p1"); ok {
		t.Error("Expected entry with empty generated plan to be treated as a miss")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache()
	cache.Put("p1", testPlan("p1", "Alpha", plan.StatusDraft))
	cache.Invalidate("p1")

	if _, ok := cache.Get("p1"); ok {
		t.Error("Expected miss after invalidation")
	}
}

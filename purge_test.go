package guestauth

import (
	"context"
	"testing"
	"time"

	"github.com/planloop/guestauth/revocation"
)

func TestPurgeLoopDisabledByZeroInterval(t *testing.T) {
	if p := startPurgeLoop(revocation.NewMemoryStore(), 0, time.Second, nil); p != nil {
		t.Fatal("zero interval must not start a loop")
	}
	if p := startPurgeLoop(revocation.NewMemoryStore(), -time.Minute, time.Second, nil); p != nil {
		t.Fatal("negative interval must not start a loop")
	}
}

func TestPurgeSweepRemovesExpiredEntries(t *testing.T) {
	store := revocation.NewMemoryStore()
	ctx := context.Background()

	if err := store.Track(ctx, "fp-expired", "user-1", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if err := store.Track(ctx, "fp-live", "user-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	metrics := NewMetrics(MetricsConfig{Enabled: true})
	p := &purgeLoop{
		store:   store,
		timeout: time.Second,
		metrics: metrics,
	}
	p.sweep()

	if store.Len() != 1 {
		t.Fatalf("store has %d entries after sweep, want 1", store.Len())
	}
	if got := metrics.Value(MetricRevocationPurged); got != 1 {
		t.Fatalf("purged counter = %d, want 1", got)
	}
}

func TestPurgeLoopStopIsIdempotent(t *testing.T) {
	p := startPurgeLoop(revocation.NewMemoryStore(), time.Hour, time.Second, nil)
	if p == nil {
		t.Fatal("expected a running loop")
	}

	p.stop()
	p.stop()

	var nilLoop *purgeLoop
	nilLoop.stop()
}

package guestauth

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsIncAndValue(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLogout)
	m.Add(MetricTokenRevoked, 5)

	if got := m.Value(MetricLoginSuccess); got != 2 {
		t.Fatalf("login success = %d, want 2", got)
	}
	if got := m.Value(MetricLogout); got != 1 {
		t.Fatalf("logout = %d, want 1", got)
	}
	if got := m.Value(MetricTokenRevoked); got != 5 {
		t.Fatalf("token revoked = %d, want 5", got)
	}
	if got := m.Value(MetricRefreshSuccess); got != 0 {
		t.Fatalf("untouched counter = %d, want 0", got)
	}
}

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	m.Add(MetricTokenRevoked, 10)
	m.Observe(MetricValidateLatency, 50*time.Millisecond)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("disabled metrics counted: %d", got)
	}

	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("disabled snapshot not empty: %+v", snap)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLoginSuccess)
	m.Add(MetricLoginSuccess, 3)
	m.Observe(MetricValidateLatency, time.Millisecond)

	if m.Enabled() || m.LatencyEnabled() {
		t.Fatal("nil metrics must report disabled")
	}
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("nil metrics value = %d, want 0", got)
	}

	snap := m.Snapshot()
	if len(snap.Counters) != 0 {
		t.Fatal("nil snapshot must be empty")
	}
}

func TestMetricsOutOfRangeID(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(metricIDCount)
	m.Inc(MetricID(9999))

	if got := m.Value(metricIDCount); got != 0 {
		t.Fatalf("out-of-range id counted: %d", got)
	}
}

func TestMetricsObserveRequiresLatencyEnabled(t *testing.T) {
	withoutLatency := NewMetrics(MetricsConfig{Enabled: true})
	withoutLatency.Observe(MetricValidateLatency, 3*time.Millisecond)
	if buckets := withoutLatency.Snapshot().Histograms[MetricValidateLatency]; buckets != nil {
		t.Fatal("histogram recorded without latency enabled")
	}

	withLatency := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	withLatency.Observe(MetricValidateLatency, 3*time.Millisecond)
	withLatency.Observe(MetricValidateLatency, 80*time.Millisecond)

	buckets := withLatency.Snapshot().Histograms[MetricValidateLatency]
	if len(buckets) != histBucketCount {
		t.Fatalf("bucket count = %d, want %d", len(buckets), histBucketCount)
	}
	if buckets[0] != 1 {
		t.Fatalf("<=5ms bucket = %d, want 1", buckets[0])
	}
	if buckets[4] != 1 {
		t.Fatalf("<=100ms bucket = %d, want 1", buckets[4])
	}
}

func TestBucketIndex(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{5 * time.Millisecond, 0},
		{6 * time.Millisecond, 1},
		{10 * time.Millisecond, 1},
		{25 * time.Millisecond, 2},
		{50 * time.Millisecond, 3},
		{100 * time.Millisecond, 4},
		{250 * time.Millisecond, 5},
		{500 * time.Millisecond, 6},
		{time.Second, 7},
		{time.Minute, 7},
	}

	for _, tc := range cases {
		if got := bucketIndex(tc.d); got != tc.want {
			t.Fatalf("bucketIndex(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}

func TestMetricsSnapshotIsolated(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)

	snap := m.Snapshot()
	snap.Counters[MetricLoginSuccess] = 999

	if got := m.Value(MetricLoginSuccess); got != 1 {
		t.Fatalf("snapshot mutation leaked into metrics: %d", got)
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricValidateSuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricValidateSuccess); got != workers*perWorker {
		t.Fatalf("concurrent count = %d, want %d", got, workers*perWorker)
	}
}

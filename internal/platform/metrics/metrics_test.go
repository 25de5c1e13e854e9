package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsCountCalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveCall("state", OutcomeOK)
	c.ObserveCall("state", OutcomeOK)
	c.ObserveCall("state", OutcomeNoData)
	c.ObserveReconstruct(2 * time.Millisecond)
	c.ObserveCache(true)

	if got := testutil.ToFloat64(c.calls.WithLabelValues("state", OutcomeOK)); got != 2 {
		t.Fatalf("ok calls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.calls.WithLabelValues("state", OutcomeNoData)); got != 1 {
		t.Fatalf("no_data calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.cache.WithLabelValues("hit")); got != 1 {
		t.Fatalf("cache hits = %v, want 1", got)
	}
}

func TestNilCollectorsAreNoop(t *testing.T) {
	var c *Collectors
	c.ObserveCall("state", OutcomeOK)
	c.ObserveReconstruct(time.Millisecond)
	c.ObserveCache(false)
}

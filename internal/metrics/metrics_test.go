package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordAttemptsAndTransitions(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveAttempt("image", "model-a", OutcomeFailure, time.Second)
	m.ObserveAttempt("image", "model-b", OutcomeSuccess, time.Second)
	m.ObserveAttempt("image", "model-b", OutcomeSuccess, time.Second)
	m.Fulfilled()

	if got := testutil.ToFloat64(m.attempts.WithLabelValues("image", "model-b", OutcomeSuccess)); got != 2 {
		t.Fatalf("success attempts = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.attempts.WithLabelValues("image", "model-a", OutcomeFailure)); got != 1 {
		t.Fatalf("failed attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.fulfilled); got != 1 {
		t.Fatalf("fulfilled = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAttempt("text", "x", OutcomeSuccess, 0)
	m.Fulfilled()
}

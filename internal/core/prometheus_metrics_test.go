package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rec.Observe(context.Background(), "create_group", true, 20*time.Millisecond)
	rec.Observe(context.Background(), "create_group", false, 5*time.Millisecond)
	rec.Observe(context.Background(), "", true, time.Millisecond)

	success := testutil.ToFloat64(rec.results.WithLabelValues("create_group", "success"))
	if success != 1 {
		t.Fatalf("success counter: %v", success)
	}
	errCount := testutil.ToFloat64(rec.results.WithLabelValues("create_group", "error"))
	if errCount != 1 {
		t.Fatalf("error counter: %v", errCount)
	}
	if n := testutil.CollectAndCount(rec.durations, "rostercore_operation_duration_seconds"); n != 1 {
		t.Fatalf("expected one duration series, got %d", n)
	}
}

func TestPrometheusMetricsRecorderDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMetricsRecorder(reg, "ledger"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPrometheusMetricsRecorder(reg, "ledger"); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

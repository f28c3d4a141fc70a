package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestSchedulerMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulerMetrics(reg)
	m.ObserveClassification("critical")
	m.ObserveBooking("created")
	m.ObserveReorder(3)
	m.ObserveCascade(2, 1, 0.05)
	m.ObserveLockConflict("reschedule")
}

func TestSchedulerMetricsNilSafe(t *testing.T) {
	var m *SchedulerMetrics
	m.ObserveClassification("low")
	m.ObserveBooking("rejected")
	m.ObserveReorder(0)
	m.ObserveCascade(0, 0, 0)
	m.ObserveLockConflict("book")
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulerMetrics exposes counters/histograms for the scheduling core.
type SchedulerMetrics struct {
	classificationsTotal *prometheus.CounterVec
	bookingsTotal        *prometheus.CounterVec
	reordersTotal        prometheus.Counter
	positionsChanged     prometheus.Counter
	cascadeShiftsTotal   prometheus.Counter
	cascadeSkipsTotal    prometheus.Counter
	lockConflictsTotal   *prometheus.CounterVec
	cascadeLatency       prometheus.Histogram
}

func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	m := &SchedulerMetrics{
		classificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "triage",
			Name:      "classifications_total",
			Help:      "Total complaint classifications by final severity",
		}, []string{"severity"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduler",
			Name:      "bookings_total",
			Help:      "Total booking attempts",
		}, []string{"status"}),
		reordersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduler",
			Name:      "reorders_total",
			Help:      "Total queue reorder operations",
		}),
		positionsChanged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduler",
			Name:      "positions_changed_total",
			Help:      "Total queue position changes applied by reorders",
		}),
		cascadeShiftsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduler",
			Name:      "cascade_shifts_total",
			Help:      "Appointments shifted forward by reschedule cascades",
		}),
		cascadeSkipsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduler",
			Name:      "cascade_skips_total",
			Help:      "Cascade candidates skipped at the closing boundary",
		}),
		lockConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduler",
			Name:      "lock_conflicts_total",
			Help:      "Queue lock acquisitions that timed out",
		}, []string{"operation"}),
		cascadeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "scheduler",
			Name:      "cascade_latency_seconds",
			Help:      "Latency of reschedule cascade operations",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.classificationsTotal, m.bookingsTotal, m.reordersTotal,
		m.positionsChanged, m.cascadeShiftsTotal, m.cascadeSkipsTotal,
		m.lockConflictsTotal, m.cascadeLatency,
	)
	return m
}

func (m *SchedulerMetrics) ObserveClassification(severity string) {
	if m == nil {
		return
	}
	m.classificationsTotal.WithLabelValues(severity).Inc()
}

func (m *SchedulerMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *SchedulerMetrics) ObserveReorder(changed int) {
	if m == nil {
		return
	}
	m.reordersTotal.Inc()
	m.positionsChanged.Add(float64(changed))
}

func (m *SchedulerMetrics) ObserveCascade(shifted, skipped int, seconds float64) {
	if m == nil {
		return
	}
	m.cascadeShiftsTotal.Add(float64(shifted))
	m.cascadeSkipsTotal.Add(float64(skipped))
	m.cascadeLatency.Observe(seconds)
}

func (m *SchedulerMetrics) ObserveLockConflict(operation string) {
	if m == nil {
		return
	}
	m.lockConflictsTotal.WithLabelValues(operation).Inc()
}

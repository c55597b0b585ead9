package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wellness"

// AvailabilityMetrics exposes counters and histograms for availability reads,
// the booking guard and calendar sync. A nil receiver is a no-op.
type AvailabilityMetrics struct {
	queryTotal    *prometheus.CounterVec
	queryLatency  *prometheus.HistogramVec
	slotsTotal    *prometheus.CounterVec
	guardRejected *prometheus.CounterVec
	bookingsTotal *prometheus.CounterVec
	syncTotal     *prometheus.CounterVec
	blocksPruned  prometheus.Counter
	lockAttempts  *prometheus.CounterVec
}

func NewAvailabilityMetrics(reg prometheus.Registerer) *AvailabilityMetrics {
	m := &AvailabilityMetrics{
		queryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "availability",
			Name:      "queries_total",
			Help:      "Availability queries by kind and outcome",
		}, []string{"kind", "outcome"}),
		queryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "availability",
			Name:      "query_latency_seconds",
			Help:      "Latency of availability queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		slotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "availability",
			Name:      "slots_total",
			Help:      "Slots returned by status",
		}, []string{"status"}),
		guardRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "guard_rejections_total",
			Help:      "Booking submissions rejected by the pre-write guard",
		}, []string{"reason"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "writes_total",
			Help:      "Appointment writes by operation and outcome",
		}, []string{"operation", "outcome"}),
		syncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calendar_sync",
			Name:      "messages_total",
			Help:      "Calendar sync messages by mode and outcome",
		}, []string{"mode", "outcome"}),
		blocksPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "housekeeping",
			Name:      "blocks_pruned_total",
			Help:      "Expired availability blocks removed",
		}),
		lockAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "lock_attempts_total",
			Help:      "Booking lock acquisition attempts by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.queryTotal,
		m.queryLatency,
		m.slotsTotal,
		m.guardRejected,
		m.bookingsTotal,
		m.syncTotal,
		m.blocksPruned,
		m.lockAttempts,
	)
	return m
}

func (m *AvailabilityMetrics) ObserveQuery(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.queryTotal.WithLabelValues(kind, outcome).Inc()
	m.queryLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *AvailabilityMetrics) ObserveSlots(status string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.slotsTotal.WithLabelValues(status).Add(float64(count))
}

func (m *AvailabilityMetrics) ObserveGuardRejection(reason string) {
	if m == nil {
		return
	}
	m.guardRejected.WithLabelValues(reason).Inc()
}

func (m *AvailabilityMetrics) ObserveBookingWrite(operation, outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *AvailabilityMetrics) ObserveLockAttempt(outcome string) {
	if m == nil {
		return
	}
	m.lockAttempts.WithLabelValues(outcome).Inc()
}

func (m *AvailabilityMetrics) ObserveSyncMessage(mode, outcome string) {
	if m == nil {
		return
	}
	m.syncTotal.WithLabelValues(mode, outcome).Inc()
}

func (m *AvailabilityMetrics) ObserveBlocksPruned(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.blocksPruned.Add(float64(count))
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAvailabilityMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAvailabilityMetrics(reg)

	m.ObserveQuery("day", "ok", 15*time.Millisecond)
	m.ObserveSlots("available", 12)
	m.ObserveSlots("booked", 0)
	m.ObserveGuardRejection("slot_conflict")
	m.ObserveGuardRejection("slot_conflict")
	m.ObserveBookingWrite("create", "ok")
	m.ObserveLockAttempt("acquired")
	m.ObserveSyncMessage("replace", "ok")
	m.ObserveBlocksPruned(3)

	assert.Equal(t, float64(12), testutil.ToFloat64(m.slotsTotal.WithLabelValues("available")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.guardRejected.WithLabelValues("slot_conflict")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.blocksPruned))
	assert.Equal(t, 1, testutil.CollectAndCount(m.queryTotal))
}

func TestAvailabilityMetricsNilSafe(t *testing.T) {
	var m *AvailabilityMetrics
	m.ObserveQuery("day", "ok", time.Millisecond)
	m.ObserveSlots("available", 1)
	m.ObserveGuardRejection("blocked")
	m.ObserveBookingWrite("create", "ok")
	m.ObserveLockAttempt("busy")
	m.ObserveSyncMessage("remove", "ok")
	m.ObserveBlocksPruned(1)
}

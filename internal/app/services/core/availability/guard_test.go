package availability

import (
	"testing"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booked(t *testing.T, id string, date models.Date, start string, minutes int, status models.AppointmentStatus) models.Appointment {
	a := models.Appointment{ID: id, ProfessionalID: "pro-1", Date: date, StartTime: clock(t, start), DurationMinutes: minutes}
	a.SetStatus(status)
	return a
}

func candidateAt(t *testing.T, date models.Date, start string, minutes int) *models.Appointment {
	return &models.Appointment{ProfessionalID: "pro-1", Date: date, StartTime: clock(t, start), DurationMinutes: minutes}
}

func TestCheckCandidate(t *testing.T) {
	snap := &Snapshot{
		Schedule: weekdaySchedule(t),
		Blocks: []models.AvailabilityBlock{{
			Kind:   models.BlockKindTimeRange,
			Date:   tuesday,
			Window: models.TimeWindow{Start: clock(t, "12:00"), End: clock(t, "13:00")},
		}},
		Appointments: []models.Appointment{
			booked(t, "a-1", tuesday, "10:00", 60, models.AppointmentStatusConfirmed),
			booked(t, "a-2", tuesday, "15:00", 60, models.AppointmentStatusCancelled),
		},
	}

	tests := []struct {
		name      string
		candidate *models.Appointment
		excludeID string
		wantKind  error
	}{
		{name: "free", candidate: candidateAt(t, tuesday, "14:00", 60)},
		{name: "cancelled booking frees its time", candidate: candidateAt(t, tuesday, "15:00", 60)},
		{name: "ends where booking starts", candidate: candidateAt(t, tuesday, "09:00", 60)},
		{name: "exact start", candidate: candidateAt(t, tuesday, "10:00", 30), wantKind: exceptions.ErrSlotTaken},
		{name: "partial overlap", candidate: candidateAt(t, tuesday, "10:30", 60), wantKind: exceptions.ErrSlotConflict},
		{name: "own interval when excluded", candidate: candidateAt(t, tuesday, "10:30", 60), excludeID: "a-1"},
		{name: "inside block", candidate: candidateAt(t, tuesday, "12:30", 15), wantKind: exceptions.ErrBlockedSlot},
		{name: "past closing", candidate: candidateAt(t, tuesday, "17:30", 60), wantKind: exceptions.ErrBlockedSlot},
		{name: "non-working day", candidate: candidateAt(t, "2024-03-09", "10:00", 60), wantKind: exceptions.ErrBlockedSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCandidate(snap, tt.candidate, tt.excludeID, true)
			if tt.wantKind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestCheckCandidate_ClientMessages(t *testing.T) {
	snap := &Snapshot{
		Schedule:     weekdaySchedule(t),
		Appointments: []models.Appointment{booked(t, "a-1", tuesday, "10:00", 60, models.AppointmentStatusPaid)},
	}

	exact := CheckCandidate(snap, candidateAt(t, tuesday, "10:00", 60), "", true)
	partial := CheckCandidate(snap, candidateAt(t, tuesday, "10:45", 60), "", true)

	var exactErr, partialErr *exceptions.CustomError
	require.ErrorAs(t, exact, &exactErr)
	require.ErrorAs(t, partial, &partialErr)
	assert.Equal(t, 409, exactErr.StatusCode)
	assert.Equal(t, 409, partialErr.StatusCode)
	assert.NotEqual(t, exactErr.ClientMessage, partialErr.ClientMessage)
	assert.NotContains(t, partialErr.ClientMessage, "a-1")
}

func TestCheckCandidate_WorkingHoursNotEnforced(t *testing.T) {
	snap := &Snapshot{Schedule: weekdaySchedule(t)}

	assert.NoError(t, CheckCandidate(snap, candidateAt(t, "2024-03-09", "20:00", 60), "", false))
	assert.NoError(t, CheckCandidate(&Snapshot{}, candidateAt(t, tuesday, "07:00", 30), "", false))
}

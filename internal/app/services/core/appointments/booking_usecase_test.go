package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/app/services/core/availability"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memAppointments is an in-memory store that enforces the same partial unique
// index as Mongo.
type memAppointments struct {
	mu   sync.Mutex
	rows map[string]models.Appointment
}

func newMemAppointments(rows ...models.Appointment) *memAppointments {
	m := &memAppointments{rows: make(map[string]models.Appointment)}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (m *memAppointments) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memAppointments) FindOccupyingByProfessionalBetween(_ context.Context, professionalID string, from, to models.Date) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, r := range m.rows {
		if r.ProfessionalID == professionalID && r.Occupying && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAppointments) conflicts(a *models.Appointment) bool {
	for _, r := range m.rows {
		if r.ID != a.ID && r.Occupying && a.Occupying && r.ProfessionalID == a.ProfessionalID && r.Date == a.Date && r.StartTime == a.StartTime {
			return true
		}
	}
	return false
}

func (m *memAppointments) Insert(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(a) {
		return exceptions.ErrPersistenceConflictOnWrite(errors.New("E11000 duplicate key"))
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *memAppointments) Update(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rows[a.ID]
	if !ok || stored.Version != a.Version {
		return exceptions.ErrAppointmentChanged(a.ID, a.Version)
	}
	if m.conflicts(a) {
		return exceptions.ErrPersistenceConflictOnWrite(errors.New("E11000 duplicate key"))
	}
	a.Version++
	m.rows[a.ID] = *a
	return nil
}

// memLocker is a process-local stand-in for the Redis lock.
type memLocker struct {
	mu    sync.Mutex
	held  map[string]string
	tries int
}

func newMemLocker() *memLocker { return &memLocker{held: make(map[string]string)} }

func (l *memLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tries++
	if _, busy := l.held[key]; busy {
		return false, "", nil
	}
	token := uuid.NewString()
	l.held[key] = token
	return true, token, nil
}

func (l *memLocker) Unlock(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}

func (l *memLocker) Refresh(context.Context, string, string, time.Duration) error { return nil }

var fixedNow = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{Timezone: "UTC"},
		Availability: config.Availability{
			BookingHorizonDays:     90,
			EnforceWorkingHours:    true,
			LockTTLInSeconds:       10,
			LockRetryAttempts:      50,
			LockRetryDelayInMillis: 1,
		},
	}
}

func clockOf(t *testing.T, s string) models.Clock {
	t.Helper()
	c, err := models.ParseClock(s)
	require.NoError(t, err)
	return c
}

func weekdaySchedule(t *testing.T) *models.WorkingSchedule {
	return &models.WorkingSchedule{
		ProfessionalID: "pro-1",
		ActiveDays:     []models.Weekday{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday},
		Default:        models.TimeWindow{Start: clockOf(t, "09:00"), End: clockOf(t, "18:00")},
	}
}

type bookingFixture struct {
	appointments *memAppointments
	schedules    *mocks.MockScheduleRepository
	blocks       *mocks.MockBlockRepository
	locker       *memLocker
	events       *mocks.MockEventPublisher
	usecase      *bookingUsecase
}

func newBookingFixture(t *testing.T, blocks []models.AvailabilityBlock, existing ...models.Appointment) *bookingFixture {
	f := &bookingFixture{
		appointments: newMemAppointments(existing...),
		schedules:    new(mocks.MockScheduleRepository),
		blocks:       new(mocks.MockBlockRepository),
		locker:       newMemLocker(),
		events:       new(mocks.MockEventPublisher),
	}
	f.schedules.On("FindByProfessionalID", mock.Anything, "pro-1").Return(weekdaySchedule(t), nil)
	f.blocks.On("FindByProfessionalBetween", mock.Anything, "pro-1", mock.Anything, mock.Anything).Return(blocks, nil)
	f.events.On("PublishAppointmentEvent", mock.Anything, mock.Anything).Return(nil)

	uc := NewBookingUsecase(f.appointments, f.schedules, f.blocks, f.locker, f.events, nil, testConfig(), zap.NewNop()).(*bookingUsecase)
	uc.now = func() time.Time { return fixedNow }
	f.usecase = uc
	return f
}

func occupying(id, date, start string, duration int, status models.AppointmentStatus) models.Appointment {
	c, _ := models.ParseClock(start)
	a := models.Appointment{ID: id, ProfessionalID: "pro-1", PatientID: "pat-0", Date: models.Date(date), StartTime: c, DurationMinutes: duration}
	a.SetStatus(status)
	return a
}

func createRequest(start string, duration int) *requests.CreateAppointment {
	return &requests.CreateAppointment{
		ProfessionalID:  "pro-1",
		PatientID:       "pat-1",
		Date:            "2024-03-05",
		StartTime:       start,
		DurationMinutes: duration,
	}
}

func TestBookingUsecase_CreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("free slot is booked and announced", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		resp, err := f.usecase.CreateAppointment(ctx, createRequest("10:00", 60))
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "11:00", resp.EndTime)
		f.events.AssertCalled(t, "PublishAppointmentEvent", mock.Anything, mock.MatchedBy(func(e *requests.AppointmentEvent) bool {
			return e.Event == "appointment.booked" && e.AppointmentID == resp.ID
		}))
		assert.Empty(t, f.locker.held)
	})

	t.Run("partial overlap is a slot conflict", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 50, models.AppointmentStatusConfirmed))
		_, err := f.usecase.CreateAppointment(ctx, createRequest("10:30", 60))
		require.Error(t, err)
		assert.ErrorIs(t, err, exceptions.ErrSlotConflict)
		assert.NotErrorIs(t, err, exceptions.ErrSlotTaken)
	})

	t.Run("touching boundary is accepted", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 50, models.AppointmentStatusConfirmed))
		_, err := f.usecase.CreateAppointment(ctx, createRequest("10:50", 60))
		assert.NoError(t, err)
	})

	t.Run("exact start is slot taken", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 30, models.AppointmentStatusPaid))
		_, err := f.usecase.CreateAppointment(ctx, createRequest("10:00", 15))
		assert.ErrorIs(t, err, exceptions.ErrSlotTaken)
		assert.ErrorIs(t, err, exceptions.ErrSlotConflict)
	})

	t.Run("cancelled appointment does not hold time", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusCancelled))
		_, err := f.usecase.CreateAppointment(ctx, createRequest("10:00", 60))
		assert.NoError(t, err)
	})

	t.Run("blocked time", func(t *testing.T) {
		blocks := []models.AvailabilityBlock{{
			Kind:   models.BlockKindTimeRange,
			Date:   "2024-03-05",
			Window: models.TimeWindow{Start: clockOf(t, "12:00"), End: clockOf(t, "13:00")},
			Source: models.BlockSourceExternal,
		}}
		f := newBookingFixture(t, blocks)
		_, err := f.usecase.CreateAppointment(ctx, createRequest("11:30", 60))
		assert.ErrorIs(t, err, exceptions.ErrBlockedSlot)

		_, err = f.usecase.CreateAppointment(ctx, createRequest("11:00", 60))
		assert.NoError(t, err)
	})

	t.Run("outside working hours", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		_, err := f.usecase.CreateAppointment(ctx, createRequest("17:30", 60))
		assert.ErrorIs(t, err, exceptions.ErrBlockedSlot)
	})

	t.Run("in the past", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		req := createRequest("10:00", 60)
		req.Date = "2024-02-29"
		_, err := f.usecase.CreateAppointment(ctx, req)
		assert.ErrorIs(t, err, exceptions.ErrInvalidInput)
	})

	t.Run("beyond the horizon", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		req := createRequest("10:00", 60)
		req.Date = "2024-12-03"
		_, err := f.usecase.CreateAppointment(ctx, req)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 422, customErr.StatusCode)
	})

	t.Run("failed read aborts without writing", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.schedules.ExpectedCalls = nil
		f.schedules.On("FindByProfessionalID", mock.Anything, "pro-1").Return(nil, errors.New("socket closed"))

		_, err := f.usecase.CreateAppointment(ctx, createRequest("10:00", 60))
		assert.ErrorIs(t, err, exceptions.ErrDataUnavailable)
		rows, _ := f.appointments.FindOccupyingByProfessionalBetween(ctx, "pro-1", "2024-03-05", "2024-03-05")
		assert.Empty(t, rows)
	})

	t.Run("event failure does not fail the booking", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.events.ExpectedCalls = nil
		f.events.On("PublishAppointmentEvent", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

		_, err := f.usecase.CreateAppointment(ctx, createRequest("10:00", 60))
		assert.NoError(t, err)
	})
}

func TestBookingUsecase_ConcurrentBookingsNeverOverlap(t *testing.T) {
	f := newBookingFixture(t, nil)
	starts := []string{"10:00", "10:00", "10:15", "10:30", "10:45", "11:00", "10:00", "10:30"}

	var wg sync.WaitGroup
	for _, start := range starts {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			_, _ = f.usecase.CreateAppointment(context.Background(), createRequest(start, 60))
		}(start)
	}
	wg.Wait()

	rows, err := f.appointments.FindOccupyingByProfessionalBetween(context.Background(), "pro-1", "2024-03-05", "2024-03-05")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for i := range rows {
		others := availability.BookedOn("2024-03-05", rows, rows[i].ID)
		assert.False(t, availability.Overlaps(rows[i].Interval(), others), "appointment %s overlaps another", rows[i].Interval())
	}
}

func TestBookingUsecase_PersistenceConflictLooksLikeSlotConflict(t *testing.T) {
	f := newBookingFixture(t, nil)
	// Simulate a writer that bypassed the lock and stored the same start
	// between our read and our write.
	racer := occupying("a-9", "2024-03-05", "10:00", 60, models.AppointmentStatusPending)
	f.usecase.AppointmentRepository = &racingRepo{memAppointments: f.appointments, racer: racer}

	_, err := f.usecase.CreateAppointment(context.Background(), createRequest("10:00", 60))
	assert.ErrorIs(t, err, exceptions.ErrPersistenceConflict)
	assert.ErrorIs(t, err, exceptions.ErrSlotConflict)

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 409, customErr.StatusCode)
}

type racingRepo struct {
	*memAppointments
	racer models.Appointment
}

func (r *racingRepo) Insert(ctx context.Context, a *models.Appointment) error {
	r.mu.Lock()
	r.rows[r.racer.ID] = r.racer
	r.mu.Unlock()
	return r.memAppointments.Insert(ctx, a)
}

func TestBookingUsecase_LockBusy(t *testing.T) {
	f := newBookingFixture(t, nil)
	f.locker.held["booking:lock:pro-1:2024-03-05"] = "someone-else"
	f.usecase.InternalConfig.Availability.LockRetryAttempts = 3

	_, err := f.usecase.CreateAppointment(context.Background(), createRequest("10:00", 60))
	assert.ErrorIs(t, err, exceptions.ErrBookingInProgress)
	assert.Equal(t, 3, f.locker.tries)

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.True(t, customErr.Retryable())
}

func TestBookingUsecase_CheckSlot(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))

	taken, err := f.usecase.CheckSlot(ctx, &requests.CheckSlot{ProfessionalID: "pro-1", Date: "2024-03-05", StartTime: "10:30", DurationMinutes: 30})
	require.NoError(t, err)
	assert.False(t, taken.Available)
	assert.NotEmpty(t, taken.Reason)

	own, err := f.usecase.CheckSlot(ctx, &requests.CheckSlot{
		ProfessionalID: "pro-1", Date: "2024-03-05", StartTime: "10:30", DurationMinutes: 30, ExcludeAppointmentID: "a-1",
	})
	require.NoError(t, err)
	assert.True(t, own.Available)
	assert.Equal(t, "11:00", own.EndTime)
}

func TestBookingUsecase_Reschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("moving within its own interval is allowed", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))
		resp, err := f.usecase.RescheduleAppointment(ctx, &requests.RescheduleAppointment{AppointmentID: "a-1", Date: "2024-03-05", StartTime: "10:30"})
		require.NoError(t, err)
		assert.Equal(t, "10:30", resp.StartTime)
		assert.Equal(t, 60, resp.DurationMinutes)
	})

	t.Run("onto another booking is rejected", func(t *testing.T) {
		f := newBookingFixture(t, nil,
			occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed),
			occupying("a-2", "2024-03-05", "14:00", 60, models.AppointmentStatusConfirmed),
		)
		_, err := f.usecase.RescheduleAppointment(ctx, &requests.RescheduleAppointment{AppointmentID: "a-1", Date: "2024-03-05", StartTime: "14:00"})
		assert.ErrorIs(t, err, exceptions.ErrSlotTaken)
	})

	t.Run("cancelled appointment cannot move", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusCancelled))
		_, err := f.usecase.RescheduleAppointment(ctx, &requests.RescheduleAppointment{AppointmentID: "a-1", Date: "2024-03-06", StartTime: "10:00"})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		_, err := f.usecase.RescheduleAppointment(ctx, &requests.RescheduleAppointment{AppointmentID: "nope", Date: "2024-03-06", StartTime: "10:00"})
		assert.ErrorIs(t, err, exceptions.ErrNotFound)
	})
}

func TestBookingUsecase_StatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel releases the slot", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))
		resp, err := f.usecase.CancelAppointment(ctx, "a-1")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)

		_, err = f.usecase.CreateAppointment(ctx, createRequest("10:00", 60))
		assert.NoError(t, err)
		f.events.AssertCalled(t, "PublishAppointmentEvent", mock.Anything, mock.MatchedBy(func(e *requests.AppointmentEvent) bool {
			return e.Event == "appointment.cancelled"
		}))
	})

	t.Run("completed is terminal", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusCompleted))
		_, err := f.usecase.UpdateAppointmentStatus(ctx, &requests.UpdateAppointmentStatus{AppointmentID: "a-1", Status: "confirmed"})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusPending))
		_, err := f.usecase.UpdateAppointmentStatus(ctx, &requests.UpdateAppointmentStatus{AppointmentID: "a-1", Status: "completed"})
		assert.ErrorIs(t, err, exceptions.ErrInvalidInput)
	})

	t.Run("no show keeps holding the time", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))
		_, err := f.usecase.UpdateAppointmentStatus(ctx, &requests.UpdateAppointmentStatus{AppointmentID: "a-1", Status: "patient_no_show"})
		require.NoError(t, err)

		_, err = f.usecase.CreateAppointment(ctx, createRequest("10:00", 60))
		assert.ErrorIs(t, err, exceptions.ErrSlotTaken)
	})
}

// interleavedRepo runs a concurrent writer once, right after the first
// FindByID of the appointment under test has returned.
type interleavedRepo struct {
	*memAppointments
	other func()
}

func (r *interleavedRepo) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	row, err := r.memAppointments.FindByID(ctx, id)
	if other := r.other; other != nil {
		r.other = nil
		other()
	}
	return row, err
}

func TestBookingUsecase_InterleavedWriters(t *testing.T) {
	ctx := context.Background()

	t.Run("status change after a concurrent reschedule keeps the new time", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))
		repo := &interleavedRepo{memAppointments: f.appointments}
		repo.other = func() {
			_, err := f.usecase.RescheduleAppointment(ctx, &requests.RescheduleAppointment{AppointmentID: "a-1", Date: "2024-03-05", StartTime: "14:00"})
			require.NoError(t, err)
			_, err = f.usecase.CreateAppointment(ctx, createRequest("10:30", 60))
			require.NoError(t, err)
		}
		f.usecase.AppointmentRepository = repo

		resp, err := f.usecase.UpdateAppointmentStatus(ctx, &requests.UpdateAppointmentStatus{AppointmentID: "a-1", Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, "14:00", resp.StartTime)
		assert.Equal(t, "paid", resp.Status)

		rows, err := f.appointments.FindOccupyingByProfessionalBetween(ctx, "pro-1", "2024-03-05", "2024-03-05")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for i := range rows {
			others := availability.BookedOn("2024-03-05", rows, rows[i].ID)
			assert.False(t, availability.Overlaps(rows[i].Interval(), others), "appointment %s overlaps another", rows[i].Interval())
		}
	})

	t.Run("reschedule read before a cancel does not revive it", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))
		repo := &interleavedRepo{memAppointments: f.appointments}
		repo.other = func() {
			_, err := f.usecase.CancelAppointment(ctx, "a-1")
			require.NoError(t, err)
		}
		f.usecase.AppointmentRepository = repo

		_, err := f.usecase.RescheduleAppointment(ctx, &requests.RescheduleAppointment{AppointmentID: "a-1", Date: "2024-03-05", StartTime: "14:00"})
		assert.ErrorIs(t, err, exceptions.ErrPersistenceConflict)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)

		stored, err := f.appointments.FindByID(ctx, "a-1")
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, stored.Status)
		assert.False(t, stored.Occupying)
		assert.Equal(t, "10:00", stored.StartTime.String())
	})

	t.Run("stale version is rejected by the store", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))
		stale, err := f.appointments.FindByID(ctx, "a-1")
		require.NoError(t, err)

		_, err = f.usecase.UpdateAppointmentStatus(ctx, &requests.UpdateAppointmentStatus{AppointmentID: "a-1", Status: "paid"})
		require.NoError(t, err)

		stale.SetStatus(models.AppointmentStatusCancelled)
		assert.ErrorIs(t, f.appointments.Update(ctx, stale), exceptions.ErrPersistenceConflict)
	})

	t.Run("status change waits for the booking lock", func(t *testing.T) {
		f := newBookingFixture(t, nil, occupying("a-1", "2024-03-05", "10:00", 60, models.AppointmentStatusConfirmed))
		f.locker.held["booking:lock:pro-1:2024-03-05"] = "someone-else"
		f.usecase.InternalConfig.Availability.LockRetryAttempts = 2

		_, err := f.usecase.CancelAppointment(ctx, "a-1")
		assert.ErrorIs(t, err, exceptions.ErrBookingInProgress)
		stored, _ := f.appointments.FindByID(ctx, "a-1")
		assert.Equal(t, models.AppointmentStatusConfirmed, stored.Status)
	})
}

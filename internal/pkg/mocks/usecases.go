package mocks

import (
	"context"
	"time"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type MockAvailabilityUsecase struct {
	mock.Mock
}

func (m *MockAvailabilityUsecase) AvailableSlots(ctx context.Context, query contracts.SlotQuery) ([]models.Slot, error) {
	args := m.Called(ctx, query)
	slots, _ := args.Get(0).([]models.Slot)
	return slots, args.Error(1)
}

func (m *MockAvailabilityUsecase) AvailabilityCalendar(ctx context.Context, query contracts.CalendarQuery) ([]models.DayAvailability, error) {
	args := m.Called(ctx, query)
	days, _ := args.Get(0).([]models.DayAvailability)
	return days, args.Error(1)
}

type MockScheduleUsecase struct {
	mock.Mock
}

func (m *MockScheduleUsecase) GetSchedule(ctx context.Context, professionalID string) (*responses.WorkingSchedule, error) {
	args := m.Called(ctx, professionalID)
	schedule, _ := args.Get(0).(*responses.WorkingSchedule)
	return schedule, args.Error(1)
}

func (m *MockScheduleUsecase) UpsertSchedule(ctx context.Context, request *requests.UpsertWorkingSchedule) (*responses.WorkingSchedule, error) {
	args := m.Called(ctx, request)
	schedule, _ := args.Get(0).(*responses.WorkingSchedule)
	return schedule, args.Error(1)
}

type MockBlockUsecase struct {
	mock.Mock
}

func (m *MockBlockUsecase) CreateBlock(ctx context.Context, request *requests.CreateAvailabilityBlock) (*responses.AvailabilityBlock, error) {
	args := m.Called(ctx, request)
	block, _ := args.Get(0).(*responses.AvailabilityBlock)
	return block, args.Error(1)
}

func (m *MockBlockUsecase) ListBlocks(ctx context.Context, request *requests.ListAvailabilityBlocks) ([]responses.AvailabilityBlock, error) {
	args := m.Called(ctx, request)
	blocks, _ := args.Get(0).([]responses.AvailabilityBlock)
	return blocks, args.Error(1)
}

func (m *MockBlockUsecase) DeleteBlock(ctx context.Context, professionalID, blockID string) error {
	args := m.Called(ctx, professionalID, blockID)
	return args.Error(0)
}

func (m *MockBlockUsecase) SyncExternalBlocks(ctx context.Context, message *requests.CalendarSyncMessage) (*contracts.SyncResult, error) {
	args := m.Called(ctx, message)
	result, _ := args.Get(0).(*contracts.SyncResult)
	return result, args.Error(1)
}

func (m *MockBlockUsecase) PruneExpiredBlocks(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingUsecase struct {
	mock.Mock
}

func (m *MockBookingUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockBookingUsecase) CheckSlot(ctx context.Context, request *requests.CheckSlot) (*responses.SlotCheck, error) {
	args := m.Called(ctx, request)
	check, _ := args.Get(0).(*responses.SlotCheck)
	return check, args.Error(1)
}

func (m *MockBookingUsecase) UpdateAppointmentStatus(ctx context.Context, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockBookingUsecase) RescheduleAppointment(ctx context.Context, request *requests.RescheduleAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockBookingUsecase) CancelAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

// Package mocks holds testify mocks for the contracts interfaces, shared by
// usecase and router tests.
package mocks

import (
	"context"
	"time"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/mock"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) FindByProfessionalID(ctx context.Context, professionalID string) (*models.WorkingSchedule, error) {
	args := m.Called(ctx, professionalID)
	schedule, _ := args.Get(0).(*models.WorkingSchedule)
	return schedule, args.Error(1)
}

func (m *MockScheduleRepository) Upsert(ctx context.Context, schedule *models.WorkingSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) FindByID(ctx context.Context, blockID string) (*models.AvailabilityBlock, error) {
	args := m.Called(ctx, blockID)
	block, _ := args.Get(0).(*models.AvailabilityBlock)
	return block, args.Error(1)
}

func (m *MockBlockRepository) FindByProfessionalBetween(ctx context.Context, professionalID string, from, to models.Date) ([]models.AvailabilityBlock, error) {
	args := m.Called(ctx, professionalID, from, to)
	blocks, _ := args.Get(0).([]models.AvailabilityBlock)
	return blocks, args.Error(1)
}

func (m *MockBlockRepository) Insert(ctx context.Context, block *models.AvailabilityBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockBlockRepository) DeleteByID(ctx context.Context, blockID string) error {
	args := m.Called(ctx, blockID)
	return args.Error(0)
}

func (m *MockBlockRepository) UpsertMany(ctx context.Context, blocks []models.AvailabilityBlock) error {
	args := m.Called(ctx, blocks)
	return args.Error(0)
}

func (m *MockBlockRepository) DeleteExternalExcept(ctx context.Context, professionalID, calendarID string, keepIDs []string) (int64, error) {
	args := m.Called(ctx, professionalID, calendarID, keepIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlockRepository) DeleteExpired(ctx context.Context, cutoff models.Date) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentRepository) FindOccupyingByProfessionalBetween(ctx context.Context, professionalID string, from, to models.Date) ([]models.Appointment, error) {
	args := m.Called(ctx, professionalID, from, to)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishAppointmentEvent(ctx context.Context, event *requests.AppointmentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockSnapshotStorage struct {
	mock.Mock
}

func (m *MockSnapshotStorage) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	args := m.Called(ctx, bucketName, objectName)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

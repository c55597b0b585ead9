package contracts

import (
	"context"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindOccupyingByProfessionalBetween(ctx context.Context, professionalID string, from, to models.Date) ([]models.Appointment, error)
	// Insert and Update report a unique index violation as a persistence
	// conflict. Update applies only while the stored version equals
	// appointment.Version and increments it on success.
	Insert(ctx context.Context, appointment *models.Appointment) error
	Update(ctx context.Context, appointment *models.Appointment) error
}

type BookingUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error)
	CheckSlot(ctx context.Context, request *requests.CheckSlot) (*responses.SlotCheck, error)
	UpdateAppointmentStatus(ctx context.Context, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error)
	RescheduleAppointment(ctx context.Context, request *requests.RescheduleAppointment) (*responses.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error)
}

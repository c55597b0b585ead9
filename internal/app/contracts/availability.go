package contracts

import (
	"context"
	"wellness-availability-service/internal/app/models"
)

type SlotQuery struct {
	ProfessionalID     string
	Date               models.Date
	DurationMinutes    int
	GranularityMinutes int
}

type CalendarQuery struct {
	ProfessionalID     string
	From               models.Date
	Days               int
	DurationMinutes    int
	GranularityMinutes int
}

type AvailabilityUsecase interface {
	// AvailableSlots returns every candidate for the date with its status.
	// A date without a working window yields an empty list, not an error.
	AvailableSlots(ctx context.Context, query SlotQuery) ([]models.Slot, error)
	AvailabilityCalendar(ctx context.Context, query CalendarQuery) ([]models.DayAvailability, error)
}

package models

import "wellness-availability-service/internal/pkg/dto/responses"

type AppointmentStatus string

const (
	AppointmentStatusPending            AppointmentStatus = "pending"
	AppointmentStatusConfirmed          AppointmentStatus = "confirmed"
	AppointmentStatusPaid               AppointmentStatus = "paid"
	AppointmentStatusCompleted          AppointmentStatus = "completed"
	AppointmentStatusCancelled          AppointmentStatus = "cancelled"
	AppointmentStatusPatientNoShow      AppointmentStatus = "patient_no_show"
	AppointmentStatusProfessionalNoShow AppointmentStatus = "professional_no_show"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending: {
		AppointmentStatusConfirmed,
		AppointmentStatusPaid,
		AppointmentStatusCancelled,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusPaid,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusPatientNoShow,
		AppointmentStatusProfessionalNoShow,
	},
	AppointmentStatusPaid: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusPatientNoShow,
		AppointmentStatusProfessionalNoShow,
	},
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusPaid,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
		AppointmentStatusPatientNoShow, AppointmentStatusProfessionalNoShow:
		return true
	}
	return false
}

// Occupies reports whether an appointment in this status holds its time.
// Only cancellation releases it.
func (s AppointmentStatus) Occupies() bool {
	return s != AppointmentStatusCancelled
}

func (s AppointmentStatus) Terminal() bool {
	_, hasNext := appointmentTransitions[s]
	return !hasNext
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID              string            `bson:"_id"`
	ProfessionalID  string            `bson:"professional_id"`
	PatientID       string            `bson:"patient_id"`
	ServiceID       string            `bson:"service_id,omitempty"`
	Date            Date              `bson:"date"`
	StartTime       Clock             `bson:"start_time"`
	DurationMinutes int               `bson:"duration_minutes"`
	Status          AppointmentStatus `bson:"status"`
	// Occupying mirrors Status.Occupies() so the partial unique index on
	// (professional_id, date, start_time) ignores cancelled rows.
	Occupying bool   `bson:"occupying"`
	Notes     string `bson:"notes,omitempty"`
	Version   int    `bson:"version"`
	TimeModel `bson:",inline"`
}

func (a *Appointment) SetStatus(status AppointmentStatus) {
	a.Status = status
	a.Occupying = status.Occupies()
}

func (a *Appointment) EndTime() Clock {
	return a.StartTime.Add(a.DurationMinutes)
}

func (a *Appointment) Interval() BookedInterval {
	return BookedInterval{ID: a.ID, Start: a.StartTime, DurationMinutes: a.DurationMinutes}
}

func (a *Appointment) ConvertIntoResponse() responses.Appointment {
	return responses.Appointment{
		ID:              a.ID,
		ProfessionalID:  a.ProfessionalID,
		PatientID:       a.PatientID,
		ServiceID:       a.ServiceID,
		Date:            a.Date.String(),
		StartTime:       a.StartTime.String(),
		EndTime:         a.EndTime().String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// BookedInterval is the time an appointment holds on its date.
type BookedInterval struct {
	ID              string
	Start           Clock
	DurationMinutes int
}

func (b BookedInterval) End() Clock {
	return b.Start.Add(b.DurationMinutes)
}

func (b BookedInterval) String() string {
	return b.Start.String() + "-" + b.End().String()
}

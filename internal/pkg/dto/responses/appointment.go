package responses

import "time"

type Appointment struct {
	ID              string    `json:"id"`
	ProfessionalID  string    `json:"professional_id"`
	PatientID       string    `json:"patient_id"`
	ServiceID       string    `json:"service_id,omitempty"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

package requests

type AppointmentEvent struct {
	Event           string `json:"event"`
	AppointmentID   string `json:"appointment_id"`
	ProfessionalID  string `json:"professional_id"`
	PatientID       string `json:"patient_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	OccurredAt      string `json:"occurred_at"`
}

package requests

type CreateAppointment struct {
	ProfessionalID  string `json:"professional_id" validate:"required"`
	PatientID       string `json:"patient_id" validate:"required"`
	ServiceID       string `json:"service_id"`
	Date            string `json:"date" validate:"required,date_ymd"`
	StartTime       string `json:"start_time" validate:"required,clock_hm"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gte=1,lte=720"`
	Status          string `json:"status" validate:"omitempty,oneof=pending confirmed"`
	Notes           string `json:"notes" validate:"max=1000"`
}

type CheckSlot struct {
	ProfessionalID       string `json:"professional_id" validate:"required"`
	Date                 string `json:"date" validate:"required,date_ymd"`
	StartTime            string `json:"start_time" validate:"required,clock_hm"`
	DurationMinutes      int    `json:"duration_minutes" validate:"required,gte=1,lte=720"`
	ExcludeAppointmentID string `json:"exclude_appointment_id"`
}

type UpdateAppointmentStatus struct {
	AppointmentID string `json:"-" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=pending confirmed paid completed cancelled patient_no_show professional_no_show"`
}

type RescheduleAppointment struct {
	AppointmentID   string `json:"-" validate:"required"`
	Date            string `json:"date" validate:"required,date_ymd"`
	StartTime       string `json:"start_time" validate:"required,clock_hm"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=1,lte=720"`
}

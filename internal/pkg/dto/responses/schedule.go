package responses

import "time"

type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type WorkingSchedule struct {
	ProfessionalID string                `json:"professional_id"`
	ActiveDays     []string              `json:"active_days"`
	DefaultWindow  TimeWindow            `json:"default_window"`
	Overrides      map[string]TimeWindow `json:"overrides,omitempty"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type AvailabilityBlock struct {
	ID             string    `json:"id"`
	ProfessionalID string    `json:"professional_id"`
	Kind           string    `json:"kind"`
	Source         string    `json:"source"`
	CalendarID     string    `json:"calendar_id,omitempty"`
	Date           string    `json:"date,omitempty"`
	StartDate      string    `json:"start_date,omitempty"`
	EndDate        string    `json:"end_date,omitempty"`
	Weekday        string    `json:"weekday,omitempty"`
	StartTime      string    `json:"start_time,omitempty"`
	EndTime        string    `json:"end_time,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

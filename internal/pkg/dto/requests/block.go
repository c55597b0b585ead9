package requests

type CreateAvailabilityBlock struct {
	ProfessionalID string       `json:"-" validate:"required"`
	Kind           string       `json:"kind" validate:"required,oneof=full_day time_range recurring_weekly"`
	Date           string       `json:"date" validate:"required_if=Kind time_range,omitempty,date_ymd"`
	StartDate      string       `json:"start_date" validate:"required_if=Kind full_day,omitempty,date_ymd"`
	EndDate        string       `json:"end_date" validate:"omitempty,date_ymd"`
	Weekday        WeekdayToken `json:"weekday" validate:"required_if=Kind recurring_weekly,omitempty,weekday_token"`
	StartTime      string       `json:"start_time" validate:"required_unless=Kind full_day,omitempty,clock_hm"`
	EndTime        string       `json:"end_time" validate:"required_unless=Kind full_day,omitempty,clock_hm"`
	Reason         string       `json:"reason" validate:"max=500"`
}

type ListAvailabilityBlocks struct {
	ProfessionalID string
	From           string `validate:"omitempty,date_ymd"`
	To             string `validate:"omitempty,date_ymd"`
}

package requests

type UpsertWorkingSchedule struct {
	ProfessionalID string                      `json:"-" validate:"required"`
	ActiveDays     []WeekdayToken              `json:"active_days" validate:"dive,weekday_token"`
	DefaultWindow  TimeWindow                  `json:"default_window"`
	Overrides      map[WeekdayToken]TimeWindow `json:"overrides" validate:"omitempty,dive,keys,weekday_token,endkeys"`
}

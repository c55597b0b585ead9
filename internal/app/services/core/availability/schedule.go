package availability

import "wellness-availability-service/internal/app/models"

// ResolveDayWindow returns the working window for weekday. The boolean is false
// when the day is inactive, or when the stored window is malformed; such data
// degrades to zero slots instead of failing the request.
func ResolveDayWindow(schedule *models.WorkingSchedule, weekday models.Weekday) (models.TimeWindow, bool) {
	if schedule == nil || !weekday.Valid() || !schedule.IsActive(weekday) {
		return models.TimeWindow{}, false
	}
	window := schedule.Default
	if override := schedule.Overrides[weekday]; override != nil {
		window = *override
	}
	if !window.Valid() {
		return models.TimeWindow{}, false
	}
	return window, true
}

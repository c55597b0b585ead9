package availability

import "wellness-availability-service/internal/app/models"

// GenerateCandidates walks the day's working window from its start in steps of
// granularityMinutes and keeps every start whose end still fits the window.
func GenerateCandidates(schedule *models.WorkingSchedule, weekday models.Weekday, durationMinutes, granularityMinutes int) []models.Clock {
	window, ok := ResolveDayWindow(schedule, weekday)
	if !ok || durationMinutes <= 0 || granularityMinutes <= 0 {
		return []models.Clock{}
	}
	return candidatesInWindow(window, durationMinutes, granularityMinutes)
}

func candidatesInWindow(window models.TimeWindow, durationMinutes, granularityMinutes int) []models.Clock {
	if durationMinutes > window.Minutes() {
		return []models.Clock{}
	}
	last := window.End.Add(-durationMinutes)
	candidates := make([]models.Clock, 0, int(last-window.Start)/granularityMinutes+1)
	for t := window.Start; t <= last; t = t.Add(granularityMinutes) {
		candidates = append(candidates, t)
	}
	return candidates
}

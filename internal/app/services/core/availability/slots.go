package availability

import "wellness-availability-service/internal/app/models"

// ClassifySlots assigns a status to every candidate. A block wins over a
// booking so the patient sees why the time is closed.
func ClassifySlots(date models.Date, candidates []models.Clock, durationMinutes int, blocks []models.AvailabilityBlock, booked []models.BookedInterval) []models.Slot {
	slots := make([]models.Slot, 0, len(candidates))
	for _, start := range candidates {
		end := start.Add(durationMinutes)
		status := models.SlotStatusAvailable
		switch {
		case IsSlotBlocked(date, start, end, blocks):
			status = models.SlotStatusBlocked
		case Overlaps(models.BookedInterval{Start: start, DurationMinutes: durationMinutes}, booked):
			status = models.SlotStatusBooked
		}
		slots = append(slots, models.Slot{Time: start, EndTime: end, Status: status})
	}
	return slots
}

// FilterAvailable keeps the slots a patient can still pick.
func FilterAvailable(slots []models.Slot) []models.Slot {
	available := make([]models.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Status == models.SlotStatusAvailable {
			available = append(available, s)
		}
	}
	return available
}

// SummarizeDay folds classified slots into the calendar view of one date.
func SummarizeDay(date models.Date, weekday models.Weekday, window *models.TimeWindow, slots []models.Slot) models.DayAvailability {
	day := models.DayAvailability{
		Date:    date,
		Weekday: weekday,
		Working: window != nil,
		Window:  window,
	}
	for i := range slots {
		switch slots[i].Status {
		case models.SlotStatusAvailable:
			day.Available++
			if day.FirstAvailable == nil {
				first := slots[i].Time
				day.FirstAvailable = &first
			}
		case models.SlotStatusBlocked:
			day.Blocked++
		case models.SlotStatusBooked:
			day.Booked++
		}
	}
	return day
}

// BookedOn collects the intervals held on date, skipping excludeID. Rows
// from other dates are ignored so one multi-day read can serve every day.
func BookedOn(date models.Date, appointments []models.Appointment, excludeID string) []models.BookedInterval {
	intervals := make([]models.BookedInterval, 0, len(appointments))
	for i := range appointments {
		a := &appointments[i]
		if a.Date != date || !a.Status.Occupies() || (excludeID != "" && a.ID == excludeID) {
			continue
		}
		intervals = append(intervals, a.Interval())
	}
	return intervals
}

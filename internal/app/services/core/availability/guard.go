package availability

import (
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/exceptions"
)

// CheckCandidate is the pre-write guard run against a freshly loaded snapshot.
// It returns nil when the candidate may be written. excludeID skips the
// appointment being moved during a reschedule.
func CheckCandidate(snap *Snapshot, candidate *models.Appointment, excludeID string, enforceWorkingHours bool) error {
	start, end := candidate.StartTime, candidate.EndTime()
	label := candidate.Date.String() + " " + models.TimeWindow{Start: start, End: end}.String()

	if enforceWorkingHours {
		weekday, _ := candidate.Date.Weekday()
		window, ok := ResolveDayWindow(snap.Schedule, weekday)
		if !ok || !window.ContainsRange(start, end) {
			return exceptions.ErrOutsideWorkingHours(candidate.Date.String(), label)
		}
	}

	if IsSlotBlocked(candidate.Date, start, end, snap.Blocks) {
		return exceptions.ErrSlotBlockedAt(label)
	}

	kind, hit := ClassifyConflict(candidate.Interval(), BookedOn(candidate.Date, snap.Appointments, excludeID))
	switch kind {
	case ConflictExactStart:
		return exceptions.ErrSlotTakenBy(label, hit.ID)
	case ConflictPartial:
		return exceptions.ErrSlotConflictWith(label, hit.ID+" "+hit.String())
	}
	return nil
}

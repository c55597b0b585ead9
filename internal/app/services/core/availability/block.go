package availability

import "wellness-availability-service/internal/app/models"

// BlocksInterval reports whether block covers any part of [start, end) on date.
// Touching boundaries do not count. Blocks with a malformed window never match.
func BlocksInterval(block *models.AvailabilityBlock, date models.Date, start, end models.Clock) bool {
	if block == nil {
		return false
	}
	switch block.Kind {
	case models.BlockKindFullDay:
		last := block.EndDate
		if last.IsZero() {
			last = block.StartDate
		}
		return !date.Before(block.StartDate) && !date.After(last)

	case models.BlockKindTimeRange:
		if block.Date != date || !block.Window.Valid() {
			return false
		}
		return block.Window.OverlapsRange(start, end)

	case models.BlockKindRecurringWeekly:
		if !block.Window.Valid() {
			return false
		}
		weekday, ok := date.Weekday()
		if !ok || weekday != block.Weekday {
			return false
		}
		if !block.StartDate.IsZero() && date.Before(block.StartDate) {
			return false
		}
		if !block.EndDate.IsZero() && date.After(block.EndDate) {
			return false
		}
		return block.Window.OverlapsRange(start, end)
	}
	return false
}

// IsSlotBlocked is true when any block covers [start, end) on date. The source
// of a block does not matter.
func IsSlotBlocked(date models.Date, start, end models.Clock, blocks []models.AvailabilityBlock) bool {
	for i := range blocks {
		if BlocksInterval(&blocks[i], date, start, end) {
			return true
		}
	}
	return false
}

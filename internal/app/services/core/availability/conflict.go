package availability

import "wellness-availability-service/internal/app/models"

type ConflictKind int

const (
	ConflictNone ConflictKind = iota
	ConflictExactStart
	ConflictPartial
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictExactStart:
		return "exact_start"
	case ConflictPartial:
		return "partial"
	}
	return "none"
}

// intervalsOverlap is the half-open test s1 < s2+d2 && s2 < s1+d1. An exact
// start match always overlaps, zero durations included.
func intervalsOverlap(a, b models.BookedInterval) bool {
	if a.Start == b.Start {
		return true
	}
	return a.Start < b.End() && b.Start < a.End()
}

// Overlaps reports whether candidate collides with any existing interval.
func Overlaps(candidate models.BookedInterval, existing []models.BookedInterval) bool {
	kind, _ := ClassifyConflict(candidate, existing)
	return kind != ConflictNone
}

// ClassifyConflict returns the first colliding interval. An exact start match
// anywhere in existing wins over a partial overlap; the distinction only picks
// the message shown to the patient.
func ClassifyConflict(candidate models.BookedInterval, existing []models.BookedInterval) (ConflictKind, *models.BookedInterval) {
	var partial *models.BookedInterval
	for i := range existing {
		if !intervalsOverlap(candidate, existing[i]) {
			continue
		}
		if existing[i].Start == candidate.Start {
			return ConflictExactStart, &existing[i]
		}
		if partial == nil {
			partial = &existing[i]
		}
	}
	if partial != nil {
		return ConflictPartial, partial
	}
	return ConflictNone, nil
}

package models

import (
	"errors"
	"wellness-availability-service/internal/pkg/dto/responses"
)

type BlockKind string

const (
	BlockKindFullDay         BlockKind = "full_day"
	BlockKindTimeRange       BlockKind = "time_range"
	BlockKindRecurringWeekly BlockKind = "recurring_weekly"
)

func (k BlockKind) Valid() bool {
	switch k {
	case BlockKindFullDay, BlockKindTimeRange, BlockKindRecurringWeekly:
		return true
	}
	return false
}

type BlockSource string

const (
	BlockSourceInternal BlockSource = "internal"
	BlockSourceExternal BlockSource = "external"
)

var (
	ErrBlockUnknownKind         = errors.New("unknown block kind")
	ErrBlockMissingDate         = errors.New("block date is required")
	ErrBlockInvalidDate         = errors.New("block date is malformed")
	ErrBlockEndBeforeStart      = errors.New("block end date is before its start date")
	ErrBlockInvalidWindow       = errors.New("block window must satisfy start < end within one day")
	ErrBlockInvalidWeekday      = errors.New("block weekday is invalid")
	ErrBlockCrossesMidnight     = errors.New("block window crosses midnight")
	ErrBlockMissingProfessional = errors.New("block professional id is required")
)

// AvailabilityBlock marks time a professional is unavailable. Which fields are
// meaningful depends on Kind:
//
//	full_day:         StartDate, optional EndDate (inclusive)
//	time_range:       Date, Window
//	recurring_weekly: Weekday, Window, optional StartDate and EndDate (inclusive)
type AvailabilityBlock struct {
	ID             string      `bson:"_id"`
	ProfessionalID string      `bson:"professional_id"`
	Kind           BlockKind   `bson:"kind"`
	Source         BlockSource `bson:"source"`
	CalendarID     string      `bson:"calendar_id,omitempty"`
	ExternalID     string      `bson:"external_id,omitempty"`
	Date           Date        `bson:"date,omitempty"`
	StartDate      Date        `bson:"start_date,omitempty"`
	EndDate        Date        `bson:"end_date,omitempty"`
	Weekday        Weekday     `bson:"weekday"`
	Window         TimeWindow  `bson:"window"`
	Reason         string      `bson:"reason,omitempty"`
	TimeModel      `bson:",inline"`
}

// Validate checks the per-kind invariants enforced on write.
func (b *AvailabilityBlock) Validate() error {
	if b.ProfessionalID == "" {
		return ErrBlockMissingProfessional
	}
	switch b.Kind {
	case BlockKindFullDay:
		if b.StartDate.IsZero() {
			return ErrBlockMissingDate
		}
		if !b.StartDate.Valid() || (!b.EndDate.IsZero() && !b.EndDate.Valid()) {
			return ErrBlockInvalidDate
		}
		if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
			return ErrBlockEndBeforeStart
		}
	case BlockKindTimeRange:
		if b.Date.IsZero() {
			return ErrBlockMissingDate
		}
		if !b.Date.Valid() {
			return ErrBlockInvalidDate
		}
		if err := validateBlockWindow(b.Window); err != nil {
			return err
		}
	case BlockKindRecurringWeekly:
		if !b.Weekday.Valid() {
			return ErrBlockInvalidWeekday
		}
		if (!b.StartDate.IsZero() && !b.StartDate.Valid()) || (!b.EndDate.IsZero() && !b.EndDate.Valid()) {
			return ErrBlockInvalidDate
		}
		if !b.StartDate.IsZero() && !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
			return ErrBlockEndBeforeStart
		}
		if err := validateBlockWindow(b.Window); err != nil {
			return err
		}
	default:
		return ErrBlockUnknownKind
	}
	return nil
}

func validateBlockWindow(w TimeWindow) error {
	if w.Start.Valid() && w.End.Valid() && w.End < w.Start {
		return ErrBlockCrossesMidnight
	}
	if !w.Valid() {
		return ErrBlockInvalidWindow
	}
	return nil
}

// LastEffectiveDate is the last date the block can match, or "" when it
// repeats indefinitely.
func (b *AvailabilityBlock) LastEffectiveDate() Date {
	switch b.Kind {
	case BlockKindFullDay:
		if b.EndDate.IsZero() {
			return b.StartDate
		}
		return b.EndDate
	case BlockKindTimeRange:
		return b.Date
	default:
		return b.EndDate
	}
}

func (b *AvailabilityBlock) ConvertIntoResponse() responses.AvailabilityBlock {
	resp := responses.AvailabilityBlock{
		ID:             b.ID,
		ProfessionalID: b.ProfessionalID,
		Kind:           string(b.Kind),
		Source:         string(b.Source),
		CalendarID:     b.CalendarID,
		Reason:         b.Reason,
		CreatedAt:      b.CreatedAt,
	}
	switch b.Kind {
	case BlockKindFullDay:
		resp.StartDate = b.StartDate.String()
		resp.EndDate = b.EndDate.String()
	case BlockKindTimeRange:
		resp.Date = b.Date.String()
		resp.StartTime = b.Window.Start.String()
		resp.EndTime = b.Window.End.String()
	case BlockKindRecurringWeekly:
		resp.Weekday = b.Weekday.String()
		resp.StartDate = b.StartDate.String()
		resp.EndDate = b.EndDate.String()
		resp.StartTime = b.Window.Start.String()
		resp.EndTime = b.Window.End.String()
	}
	return resp
}

package models

import "wellness-availability-service/internal/pkg/dto/responses"

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBlocked   SlotStatus = "blocked"
	SlotStatusBooked    SlotStatus = "booked"
)

// Slot is a computed candidate start time. It is never persisted.
type Slot struct {
	Time    Clock
	EndTime Clock
	Status  SlotStatus
}

func (s Slot) ConvertIntoResponse() responses.Slot {
	return responses.Slot{
		Time:    s.Time.String(),
		EndTime: s.EndTime.String(),
		Display: s.Time.Display(),
		Status:  string(s.Status),
	}
}

// DayAvailability summarizes one date for calendar views, distinguishing a
// non-working day from a fully booked one.
type DayAvailability struct {
	Date           Date
	Weekday        Weekday
	Working        bool
	Window         *TimeWindow
	Available      int
	Blocked        int
	Booked         int
	FirstAvailable *Clock
}

func (d DayAvailability) ConvertIntoResponse() responses.DayAvailability {
	resp := responses.DayAvailability{
		Date:      d.Date.String(),
		Weekday:   d.Weekday.String(),
		Working:   d.Working,
		Available: d.Available,
		Blocked:   d.Blocked,
		Booked:    d.Booked,
	}
	if d.Window != nil {
		resp.WindowStart = d.Window.Start.String()
		resp.WindowEnd = d.Window.End.String()
	}
	if d.FirstAvailable != nil {
		resp.FirstAvailable = d.FirstAvailable.String()
	}
	return resp
}

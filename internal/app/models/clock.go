package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Clock is a wall-clock time of day in minutes since midnight. EndOfDay (24:00)
// is only meaningful as the exclusive end of a window.
type Clock int

const (
	StartOfDay Clock = 0
	EndOfDay   Clock = 24 * 60
)

var ErrInvalidClock = errors.New("invalid clock, expected HH:MM")

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock accepts "9:00", "09:00", "09.00" and "24:00".
func ParseClock(s string) (Clock, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidClock
	}
	if !allDigits(parts[0]) || !allDigits(parts[1]) {
		return 0, ErrInvalidClock
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	if h > 24 || (h == 24 && m != 0) {
		return 0, ErrInvalidClock
	}
	return NewClock(h, m), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c Clock) Valid() bool {
	return c >= StartOfDay && c <= EndOfDay
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Display renders the 12-hour form used by booking screens, e.g. "9:30 AM".
func (c Clock) Display() string {
	h := c.Hour() % 24
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, c.Minute(), suffix)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidClock
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TimeWindow is the half-open interval [Start, End) within one day.
type TimeWindow struct {
	Start Clock `json:"start" bson:"start"`
	End   Clock `json:"end" bson:"end"`
}

func (w TimeWindow) Valid() bool {
	return w.Start.Valid() && w.End.Valid() && w.Start < w.End
}

func (w TimeWindow) Minutes() int {
	return int(w.End - w.Start)
}

// OverlapsRange uses strict inequalities so touching boundaries never overlap.
func (w TimeWindow) OverlapsRange(start, end Clock) bool {
	return w.Start < end && start < w.End
}

func (w TimeWindow) ContainsRange(start, end Clock) bool {
	return w.Start <= start && end <= w.End
}

func (w TimeWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a zone-naive calendar date in YYYY-MM-DD form. String order equals
// chronological order.
type Date string

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return Date(t.Format(dateLayout)), nil
}

// DateOf takes the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

func (d Date) IsZero() bool { return d == "" }

func (d Date) String() string { return string(d) }

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (d Date) Weekday() (Weekday, bool) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return 0, false
	}
	return WeekdayFromTime(t.Weekday()), true
}

func (d Date) AddDays(n int) Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(dateLayout))
}

func (d Date) Before(other Date) bool { return d < other }
func (d Date) After(other Date) bool  { return d > other }

// Weekday is the canonical weekday enumeration, Monday = 0 through Sunday = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var ErrInvalidWeekday = errors.New("invalid weekday, expected 1-7 or a weekday name")

func WeekdayFromTime(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % 7)
}

// WeekdayFromISO converts ISO-8601 numbering (Monday = 1 .. Sunday = 7).
func WeekdayFromISO(n int) (Weekday, bool) {
	if n < 1 || n > 7 {
		return 0, false
	}
	return Weekday(n - 1), true
}

// ParseWeekday accepts ISO numbers ("1".."7"), full names and common
// abbreviations, case-insensitively.
func ParseWeekday(token string) (Weekday, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if n, err := strconv.Atoi(t); err == nil {
		return WeekdayFromISO(n)
	}
	switch t {
	case "mon", "monday":
		return Monday, true
	case "tue", "tues", "tuesday":
		return Tuesday, true
	case "wed", "wednesday":
		return Wednesday, true
	case "thu", "thur", "thurs", "thursday":
		return Thursday, true
	case "fri", "friday":
		return Friday, true
	case "sat", "saturday":
		return Saturday, true
	case "sun", "sunday":
		return Sunday, true
	}
	return 0, false
}

func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

func (w Weekday) ISO() int { return int(w) + 1 }

func (w Weekday) String() string {
	if !w.Valid() {
		return "invalid"
	}
	return weekdayNames[w]
}

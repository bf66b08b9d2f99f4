package shared

import (
	"fmt"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAY DATE
// A calendar date without a time component. Attendance records are keyed by
// DayDate, so equality and map-key semantics matter more than clock precision.
// ══════════════════════════════════════════════════════════════════════════════

// DayDateLayout is the wire format for calendar dates (YYYY-MM-DD).
const DayDateLayout = "2006-01-02"

// DayDate is a calendar date value object. The zero value is invalid.
type DayDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDayDate creates a DayDate from components, normalizing via time.Date
// so that out-of-range components (e.g. Feb 30) are rejected.
func NewDayDate(year int, month time.Month, day int) (DayDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return DayDate{}, WrapError("shared", "NewDayDate", ErrInvalidFormat,
			"no such calendar day", fmt.Errorf("%04d-%02d-%02d", year, month, day))
	}
	return DayDate{Year: year, Month: month, Day: day}, nil
}

// ParseDayDate parses a YYYY-MM-DD string into a DayDate.
func ParseDayDate(s string) (DayDate, error) {
	t, err := time.Parse(DayDateLayout, s)
	if err != nil {
		return DayDate{}, WrapError("shared", "ParseDayDate", ErrInvalidFormat,
			"date must be YYYY-MM-DD", err)
	}
	return DayDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DayDateOf truncates a time to its calendar date in the time's location.
func DayDateOf(t time.Time) DayDate {
	return DayDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String returns the YYYY-MM-DD representation.
func (d DayDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is the zero value.
func (d DayDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns the date as a time.Time at midnight in the given location.
func (d DayDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is before other.
func (d DayDate) Before(other DayDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ══════════════════════════════════════════════════════════════════════════════
// PERIOD
// A year-month pair identifying the range of a monthly aggregation.
// ══════════════════════════════════════════════════════════════════════════════

// PeriodLayout is the wire format for periods (YYYY-MM).
const PeriodLayout = "2006-01"

// Period is a year-month value object.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod creates a validated Period.
func NewPeriod(year, month int) (Period, error) {
	p := Period{Year: year, Month: time.Month(month)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// ParsePeriod parses a YYYY-MM string into a Period.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(PeriodLayout, s)
	if err != nil {
		return Period{}, WrapError("shared", "ParsePeriod", ErrInvalidPeriod,
			"period must be YYYY-MM", err)
	}
	return NewPeriod(t.Year(), int(t.Month()))
}

// Validate checks that the period denotes a real year-month.
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return NewDomainError("shared", "Period", ErrInvalidPeriod, "month must be 1-12")
	}
	if p.Year < 1 || p.Year > 9999 {
		return NewDomainError("shared", "Period", ErrInvalidPeriod, "year out of range")
	}
	return nil
}

// Days returns the number of calendar days in the period, leap years included.
func (p Period) Days() int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayAt returns the DayDate for the given 1-based day of the period.
func (p Period) DayAt(day int) DayDate {
	return DayDate{Year: p.Year, Month: p.Month, Day: day}
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(d DayDate) bool {
	return d.Year == p.Year && d.Month == p.Month
}

// String returns the YYYY-MM representation.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Package timeutil provides timezone utilities for the Santiago timezone.
// The classroom this system serves operates in Chile, so "today" and month
// boundaries are always evaluated in America/Santiago.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"time"
)

// SantiagoTZ is the Chilean continental timezone. Chile observes DST, so
// the IANA database is required; if unavailable we degrade to UTC-4.
var SantiagoTZ = loadSantiago()

func loadSantiago() *time.Location {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		return time.FixedZone("America/Santiago", -4*60*60)
	}
	return loc
}

// Now returns the current time in Santiago timezone.
func Now() time.Time {
	return time.Now().In(SantiagoTZ)
}

// ToSantiago converts a time to Santiago timezone.
func ToSantiago(t time.Time) time.Time {
	return t.In(SantiagoTZ)
}

// Date creates a time in Santiago timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, SantiagoTZ)
}

// StartOfDay returns the start of the day (00:00:00) in Santiago timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToSantiago(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, SantiagoTZ)
}

// StartOfMonth returns the start of the month in Santiago timezone.
func StartOfMonth(t time.Time) time.Time {
	local := ToSantiago(t)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, SantiagoTZ)
}

// DaysInMonth returns the number of calendar days in the given year-month,
// leap years accounted for.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsToday checks if the given time is today in Santiago timezone.
func IsToday(t time.Time) bool {
	now := Now()
	local := ToSantiago(t)
	return local.Year() == now.Year() &&
		local.Month() == now.Month() &&
		local.Day() == now.Day()
}

// IsSameDay checks if two times are on the same day in Santiago timezone.
func IsSameDay(t1, t2 time.Time) bool {
	a, b := ToSantiago(t1), ToSantiago(t2)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatPeriod is the year-month format (YYYY-MM).
	FormatPeriod = "2006-01"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatChileanDate is the local date format (DD-MM-YYYY).
	FormatChileanDate = "02-01-2006"
)

// FormatDateStr formats a time as a date string (YYYY-MM-DD) in Santiago timezone.
func FormatDateStr(t time.Time) string {
	return ToSantiago(t).Format(FormatDate)
}

// FormatPeriodStr formats a time as a period string (YYYY-MM) in Santiago timezone.
func FormatPeriodStr(t time.Time) string {
	return ToSantiago(t).Format(FormatPeriod)
}

// ParseDate parses a date string (YYYY-MM-DD) in Santiago timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, SantiagoTZ)
}

// ParsePeriod parses a period string (YYYY-MM) in Santiago timezone.
func ParsePeriod(value string) (time.Time, error) {
	return time.ParseInLocation(FormatPeriod, value, SantiagoTZ)
}

// MonthNameEs returns the Spanish name for a month.
func MonthNameEs(m time.Month) string {
	names := []string{
		"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	if int(m) >= 1 && int(m) <= 12 {
		return names[m]
	}
	return ""
}

// WeekdayNameEs returns the Spanish name for a weekday.
func WeekdayNameEs(t time.Time) string {
	switch ToSantiago(t).Weekday() {
	case time.Monday:
		return "lunes"
	case time.Tuesday:
		return "martes"
	case time.Wednesday:
		return "miércoles"
	case time.Thursday:
		return "jueves"
	case time.Friday:
		return "viernes"
	case time.Saturday:
		return "sábado"
	case time.Sunday:
		return "domingo"
	default:
		return ""
	}
}

// PeriodNameEs formats a year-month pair the way the monthly report shows
// it, e.g. "marzo de 2024".
func PeriodNameEs(year int, month time.Month) string {
	return fmt.Sprintf("%s de %d", MonthNameEs(month), year)
}

// IsWeekend checks if the given time is on a weekend.
func IsWeekend(t time.Time) bool {
	wd := ToSantiago(t).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsSchoolDay checks if the given time is on a school day (Mon-Fri).
func IsSchoolDay(t time.Time) bool {
	return !IsWeekend(t)
}

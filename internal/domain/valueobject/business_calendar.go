// Package valueobject contains domain value objects for the back-office system.
package valueobject

import "time"

// monthDay identifies a recurring calendar date regardless of year.
type monthDay struct {
	month time.Month
	day   int
}

// nationalHolidays are the fixed-date national holidays.
// Moving holidays (Carnival, Good Friday, Corpus Christi) are not observed.
var nationalHolidays = map[monthDay]struct{}{
	{time.January, 1}:   {}, // Confraternização Universal
	{time.April, 21}:    {}, // Tiradentes
	{time.May, 1}:       {}, // Dia do Trabalho
	{time.September, 7}: {}, // Independência
	{time.October, 12}:  {}, // Nossa Senhora Aparecida
	{time.November, 2}:  {}, // Finados
	{time.November, 15}: {}, // Proclamação da República
	{time.December, 25}: {}, // Natal
}

// IsHoliday reports whether date falls on a fixed national holiday.
func IsHoliday(date time.Time) bool {
	_, ok := nationalHolidays[monthDay{date.Month(), date.Day()}]
	return ok
}

// IsBusinessDay reports whether date is neither a weekend nor a fixed national holiday.
func IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !IsHoliday(date)
}

// NextBusinessDay returns date itself when it is a business day, otherwise the first
// business day after it.
func NextBusinessDay(date time.Time) time.Time {
	for !IsBusinessDay(date) {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// AddMonths advances date by n calendar months.
// The day of month is clamped to the last day of the target month, so Jan 31 + 1 month
// is Feb 28 (or Feb 29 on leap years) instead of rolling into March.
func AddMonths(date time.Time, n int) time.Time {
	year, month, day := date.Date()
	hour, minute, sec := date.Clock()

	first := time.Date(year, month+time.Month(n), 1, hour, minute, sec, date.Nanosecond(), date.Location())
	if last := daysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// daysIn returns the number of days in the month of date.
func daysIn(date time.Time) int {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
}

/*
Package calendar enumerates days, working days, months, and years over
a simulation horizon. Every other component consumes dates through this
package; none of them call the host operating system clock.

Day is a day-granularity point in time, the same role the teacher's
generic.TimePoint plays for its ledger, pared down to the single
granularity this simulator needs.
*/
package calendar

import "time"

// Day is a calendar day, always normalized to midnight UTC so comparisons
// never trip over time-of-day or timezone noise.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return d.Before(other) || d.Equal(other) }
func (d Day) AfterOrEqual(other Day) bool  { return d.After(other) || d.Equal(other) }

func (d Day) AddDays(n int) Day   { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) AddMonths(n int) Day { return Day{t: d.t.AddDate(0, n, 0)} }
func (d Day) AddYears(n int) Day  { return Day{t: d.t.AddDate(n, 0, 0)} }

func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Day) IsWorkday() bool { return !d.IsWeekend() }
func (d Day) IsZero() bool    { return d.t.IsZero() }

func (d Day) String() string { return d.t.Format("2006-01-02") }

func (d Day) YearMonth() YearMonth {
	return YearMonth{Year: d.t.Year(), Month: d.t.Month()}
}

// DaysBetween returns the number of calendar days from 'from' to 'to'
// (negative if 'to' precedes 'from').
func DaysBetween(from, to Day) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

func StartOfYear(year int) Day { return NewDay(year, time.January, 1) }
func EndOfYear(year int) Day   { return NewDay(year, time.December, 31) }
func StartOfMonth(year int, month time.Month) Day { return NewDay(year, month, 1) }
func EndOfMonth(year int, month time.Month) Day {
	return Day{t: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

// YearMonth identifies a calendar month irrespective of day.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) Next() YearMonth {
	d := NewDay(ym.Year, ym.Month, 1).AddMonths(1)
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

func (ym YearMonth) Start() Day { return StartOfMonth(ym.Year, ym.Month) }
func (ym YearMonth) End() Day   { return EndOfMonth(ym.Year, ym.Month) }

// Horizon is the simulated window [StartYear-01-01, EndYear-12-31], inclusive.
type Horizon struct {
	StartYear int
	EndYear   int
}

func (h Horizon) Start() Day { return StartOfYear(h.StartYear) }
func (h Horizon) End() Day   { return EndOfYear(h.EndYear) }

// Years returns the ordered list of simulated years.
func (h Horizon) Years() []int {
	years := make([]int, 0, h.EndYear-h.StartYear+1)
	for y := h.StartYear; y <= h.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

// Months returns every calendar month boundary in the horizon, in order.
func (h Horizon) Months() []YearMonth {
	var months []YearMonth
	for _, y := range h.Years() {
		for m := time.January; m <= time.December; m++ {
			months = append(months, YearMonth{Year: y, Month: m})
		}
	}
	return months
}

// MonthsInYear returns the 12 YearMonth values for a given simulated year.
func (h Horizon) MonthsInYear(year int) []YearMonth {
	months := make([]YearMonth, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, YearMonth{Year: year, Month: m})
	}
	return months
}

// Days returns every day in the horizon, in order. For a 10-20 year
// horizon this is a few thousand entries; callers that only need a
// single year or month should use DaysInYear/WorkingDaysInMonth instead.
func (h Horizon) Days() []Day {
	var days []Day
	current := h.Start()
	end := h.End()
	for current.BeforeOrEqual(end) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// WorkingDays returns the subset of Days() that fall on a weekday.
func (h Horizon) WorkingDays() []Day {
	var days []Day
	for _, d := range h.Days() {
		if d.IsWorkday() {
			days = append(days, d)
		}
	}
	return days
}

// DaysInYear returns every day of a single simulated year.
func DaysInYear(year int) []Day {
	var days []Day
	current := StartOfYear(year)
	end := EndOfYear(year)
	for current.BeforeOrEqual(end) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// WorkingDaysInMonth returns the weekdays of a single calendar month.
func WorkingDaysInMonth(ym YearMonth) []Day {
	var days []Day
	current := ym.Start()
	end := ym.End()
	for current.BeforeOrEqual(end) {
		if current.IsWorkday() {
			days = append(days, current)
		}
		current = current.AddDays(1)
	}
	return days
}

// WorkingDaysBetween counts weekdays in [from, to], inclusive of both ends.
func WorkingDaysBetween(from, to Day) int {
	if to.Before(from) {
		return 0
	}
	count := 0
	current := from
	for current.BeforeOrEqual(to) {
		if current.IsWorkday() {
			count++
		}
		current = current.AddDays(1)
	}
	return count
}

// AddWorkingDays returns the day reached by advancing n working days from
// 'from' (from itself is not counted). Used to plan deliverable windows in
// working-day units.
func AddWorkingDays(from Day, n int) Day {
	current := from
	remaining := n
	for remaining > 0 {
		current = current.AddDays(1)
		if current.IsWorkday() {
			remaining--
		}
	}
	return current
}

package valueobject

import (
	"fmt"
	"time"
)

// Period identifies one calendar billing month. Every recurring invoice is
// keyed by (lease, period), which is what makes sweep runs idempotent.
type Period struct {
	year  int
	month time.Month
}

// NewPeriod creates a period for the given year and month
func NewPeriod(year int, month time.Month) (Period, error) {
	if year < 1 {
		return Period{}, fmt.Errorf("invalid year: %d", year)
	}
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("invalid month: %d", month)
	}
	return Period{year: year, month: month}, nil
}

// PeriodOf returns the billing period containing t
func PeriodOf(t time.Time) Period {
	return Period{year: t.Year(), month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" string
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return Period{year: t.Year(), month: t.Month()}, nil
}

// Year returns the period's year
func (p Period) Year() int {
	return p.year
}

// Month returns the period's month
func (p Period) Month() time.Month {
	return p.month
}

// Start returns midnight on the first day of the period
func (p Period) Start() time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.Local)
}

// End returns midnight on the first day of the following period.
// The period covers [Start, End).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && t.Before(p.End())
}

// Next returns the following period
func (p Period) Next() Period {
	t := p.Start().AddDate(0, 1, 0)
	return Period{year: t.Year(), month: t.Month()}
}

// Previous returns the preceding period
func (p Period) Previous() Period {
	t := p.Start().AddDate(0, -1, 0)
	return Period{year: t.Year(), month: t.Month()}
}

// String formats the period as "YYYY-MM"
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}

// DueDateFor computes the due date for a payment day of month within the
// period. Payment days are capped at 28 by validation, so the result always
// lands inside the month.
func (p Period) DueDateFor(paymentDay int) time.Time {
	return time.Date(p.year, p.month, paymentDay, 0, 0, 0, 0, time.Local)
}

// FirstDueDate computes the due date of a lease's first invoice: the
// paymentDay of the start month, or the start date itself when paymentDay has
// already passed in that month.
func FirstDueDate(startDate time.Time, paymentDay int) time.Time {
	due := time.Date(startDate.Year(), startDate.Month(), paymentDay, 0, 0, 0, 0, startDate.Location())
	if due.Before(startDate) {
		return startDate
	}
	return due
}

package core

import (
	"time"
)

// Date is a calendar date at day precision, always UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// AddMonths advances by whole calendar months, clamping the day so that
// Jan 31 + 1 month is Feb 28/29 rather than rolling into March.
func (d Date) AddMonths(n int) Date {
	year, month, day := d.Date()
	m := int(month) + n
	year += (m - 1) / 12
	m = (m-1)%12 + 1
	if m < 1 {
		m += 12
		year--
	}
	if max := DaysInMonth(year, m); day > max {
		day = max
	}
	return NewDate(year, m, day)
}

// WithDay returns the same month with the day-of-month replaced,
// clamped to the month's length.
func (d Date) WithDay(day int) Date {
	year, month, _ := d.Date()
	if max := DaysInMonth(year, int(month)); day > max {
		day = max
	}
	return NewDate(year, int(month), day)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysUntil returns the whole days from d to other (negative when other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// IsEmpty reports whether the date is unset.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

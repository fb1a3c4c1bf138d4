// Package types implements special types for the allowance backend.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Month is a month in a specific year.
//
// All months are UTC months: the withdrawal limit window starts at
// 00:00:00 UTC on the first of the month.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs, evaluated in UTC.
func MonthOf(t time.Time) Month {
	year, month, _ := t.In(time.UTC).Date()
	return NewMonth(year, month)
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return time.Time(m).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Accepts "YYYY-MM", RFC3339 full-date and RFC3339 timestamp strings,
// everything except the year and the month is ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseMonth(value)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// ParseMonth parses a "YYYY-MM", "YYYY-MM-DD" or RFC3339 string and
// returns the Month it falls into.
func ParseMonth(s string) (Month, error) {
	for _, pattern := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		t, err := time.Parse(pattern, s)
		if err == nil {
			return MonthOf(t), nil
		}
	}

	return Month{}, fmt.Errorf("%q cannot be parsed as a month", s)
}

// Start returns the first instant of the month.
func (m Month) Start() time.Time {
	return time.Time(m)
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
// The instant is evaluated in UTC before comparing.
func (m Month) Contains(t time.Time) bool {
	u := t.In(time.UTC)
	return u.Year() == time.Time(m).Year() && u.Month() == time.Time(m).Month()
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

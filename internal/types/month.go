// Package types implements special types for the workload planner.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month is a month of the planning year. January is 0, December is 11.
type Month int

var ErrInvalidMonth = errors.New("the month must be a number from 0 to 11, a month name or in YYYY-MM format")

var yearMonth = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}$`)

// NewMonth returns the Month for a time.Month.
func NewMonth(m time.Month) Month {
	return Month(m - 1)
}

// ParseMonth parses a month.
//
// Numbers are read as zero-based month indices. Month names and their three
// letter abbreviations are accepted in any case. Strings in YYYY-MM format
// use the month and ignore the year.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)

	if yearMonth.MatchString(s) {
		t, err := time.Parse("2006-01", s)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidMonth, err)
		}
		return NewMonth(t.Month()), nil
	}

	if i, err := strconv.Atoi(s); err == nil {
		m := Month(i)
		if !m.Valid() {
			return 0, fmt.Errorf("%w, got %d", ErrInvalidMonth, i)
		}
		return m, nil
	}

	lower := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || lower == name[:3] {
			return NewMonth(m), nil
		}
	}

	return 0, fmt.Errorf("%w, got %q", ErrInvalidMonth, s)
}

// Valid reports if the month is between January and December.
func (m Month) Valid() bool {
	return m >= 0 && m <= 11
}

// Index returns the month as index into a twelve month array.
func (m Month) Index() int {
	return int(m)
}

// Quarter returns the quarter of the month, starting at 1.
func (m Month) Quarter() int {
	return int(m)/3 + 1
}

// String returns the three letter abbreviation of the month name.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return time.Month(m + 1).String()[:3]
}

// In returns the month as YYYY-MM string for a specific year.
func (m Month) In(year int) string {
	return fmt.Sprintf("%04d-%02d", year, int(m)+1)
}

// UnmarshalParam implements gin's BindUnmarshaler so that months
// can be bound from URI parameters.
func (m *Month) UnmarshalParam(p string) error {
	parsed, err := ParseMonth(p)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// UnmarshalJSON accepts both numbers and strings in a format accepted by ParseMonth.
func (m *Month) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Month(n).Valid() {
			return fmt.Errorf("%w, got %d", ErrInvalidMonth, n)
		}
		*m = Month(n)
		return nil
	}

	value := strings.Trim(string(data), `"`)
	return m.UnmarshalParam(value)
}

package domain

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// ParseDate reads a civil date. Values that carry a time of day
// ("2024-03-05T23:30:00-05:00", "2024-03-05 10:00:00") keep the date as
// written; the offset is never applied. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if len(s) < len(DateLayout) {
		return time.Time{}, ErrInvalidDate
	}
	if len(s) > len(DateLayout) {
		if sep := s[len(DateLayout)]; sep != 'T' && sep != ' ' {
			return time.Time{}, ErrInvalidDate
		}
		s = s[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DateKey returns the canonical YYYY-MM-DD form of s.
func DateKey(s string) (string, bool) {
	t, err := ParseDate(s)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

// Today is the current civil date in UTC.
func Today(now time.Time) string { return now.UTC().Format(DateLayout) }

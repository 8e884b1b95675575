package models

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Day truncates a wire date (YYYY-MM-DD or a full RFC 3339 timestamp) to YYYY-MM-DD
func Day(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// Today returns the current local date as YYYY-MM-DD
func Today() string {
	return time.Now().Format(dateLayout)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ShiftDay moves a YYYY-MM-DD date by n days. Invalid input is returned unchanged.
func ShiftDay(s string, n int) string {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return s
	}
	return t.AddDate(0, 0, n).Format(dateLayout)
}

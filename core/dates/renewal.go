// Package dates computes subscription renewal dates.
package dates

import (
	"time"

	apperrors "github.com/eklokova/connect-reports/internal/errors"
)

// dateLayout is how renewal dates are rendered in report cells
const dateLayout = "2006-01-02"

// ParseCreation parses an asset creation timestamp (RFC 3339, with a
// date-only fallback) into the creation date.
func ParseCreation(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return dateOnly(t), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.Parse("invalid creation date", err).WithContext("value", value)
	}
	return t, nil
}

// Renewal projects a creation date onto its next anniversary on or after
// current. A Feb-29 anniversary lands on Feb-29 when the target year is a
// leap year and on Mar-1 otherwise; it is never clamped to Feb-28. The
// result is always on or after current's date.
func Renewal(creation, current time.Time) time.Time {
	today := dateOnly(current)
	candidate := projectToYear(creation, today.Year())
	if !candidate.Before(today) {
		return candidate
	}
	return projectToYear(creation, today.Year()+1)
}

// Format renders a renewal date for report output
func Format(t time.Time) string {
	return t.Format(dateLayout)
}

// projectToYear maps a date onto a target year, adjusting a leap-year
// Feb-29 to Mar-1 when the target year is not leap.
func projectToYear(original time.Time, targetYear int) time.Time {
	if isLeap(original.Year()) && original.Month() == time.February && original.Day() == 29 {
		if isLeap(targetYear) {
			return time.Date(targetYear, time.February, 29, 0, 0, 0, 0, time.UTC)
		}
		return time.Date(targetYear, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(targetYear, original.Month(), original.Day(), 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

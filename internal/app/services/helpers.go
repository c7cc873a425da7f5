package services

import (
	"time"

	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// timeNow is indirected so tests can pin the clock
var timeNow = time.Now

// parseDate accepts RFC3339 timestamps and plain dates
func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewFieldError(field, "must be a valid date (YYYY-MM-DD or RFC3339)")
}

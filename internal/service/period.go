package service

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
)

// currentMonth returns the first and last day of the calendar month containing now.
func currentMonth(now time.Time) (civil.Date, civil.Date) {
	today := civil.DateOf(now)
	start := civil.Date{Year: today.Year, Month: today.Month, Day: 1}
	end := start.AddMonths(1).AddDays(-1)
	return start, end
}

func validateRange(start, end civil.Date) error {
	if !start.IsValid() || !end.IsValid() {
		return apperrors.InvalidArgument("dateRange", "start and end must be valid dates")
	}
	if start.After(end) {
		return apperrors.InvalidArgument("dateRange", "start must not be after end")
	}
	return nil
}

package service

import (
	"time"

	"carbex/internal/domain"
)

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// YearPeriod returns the inclusive calendar window of year.
func YearPeriod(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// PreviousWindow returns the window of equal length that ends the day before start.
func PreviousWindow(start, end time.Time) (time.Time, time.Time) {
	start, end = truncateDay(start), truncateDay(end)
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, -(days + 1)), start.AddDate(0, 0, -1)
}

func validatePeriod(start, end time.Time) error {
	if truncateDay(start).After(truncateDay(end)) {
		return domain.ErrInvalidPeriod
	}
	return nil
}

func direction(change float64) domain.ChangeDirection {
	switch {
	case change > 0:
		return domain.DirectionIncrease
	case change < 0:
		return domain.DirectionDecrease
	default:
		return domain.DirectionStable
	}
}

package locale

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var monthShort = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// MonthName returns the lower-case French month name.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// MonthShort returns the abbreviated French month name.
func MonthShort(m time.Month) string {
	return monthShort[m-1]
}

// MonthLabel formats a month bucket as "janv. 2024".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", MonthShort(t.Month()), t.Year())
}

// Date formats t as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// LongDate formats t as "5 mars 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}

// PeriodLabel describes [start, end] in French: a full calendar year becomes
// "Année 2024", a single month "mars 2024", otherwise a month range.
func PeriodLabel(start, end time.Time) string {
	sameYear := start.Year() == end.Year()
	if sameYear && start.Month() == time.January && start.Day() == 1 &&
		end.Month() == time.December && end.Day() == 31 {
		return fmt.Sprintf("Année %d", start.Year())
	}
	if sameYear && start.Month() == end.Month() {
		return fmt.Sprintf("%s %d", MonthName(start.Month()), start.Year())
	}
	if sameYear {
		return fmt.Sprintf("%s - %s %d", MonthShort(start.Month()), MonthShort(end.Month()), end.Year())
	}
	return fmt.Sprintf("%s %d - %s %d", MonthShort(start.Month()), start.Year(), MonthShort(end.Month()), end.Year())
}

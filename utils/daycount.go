package utils

import (
	"fmt"
	"strings"
	"time"
)

// DayBasis is a day-count convention for converting a calendar span into a
// year fraction.
type DayBasis string

const (
	ActAct    DayBasis = "ACT/ACT"
	Act360    DayBasis = "ACT/360"
	Act365F   DayBasis = "ACT/365F"
	Thirty360 DayBasis = "30/360" // US (NASD) variant
	ThirtyE   DayBasis = "30E/360"
)

// ParseDayBasis normalizes a request string into a DayBasis. A handful of
// vendor spellings map onto the canonical five.
func ParseDayBasis(s string) (DayBasis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACT/ACT", "ACTUAL/ACTUAL", "ACT/ACT ISDA":
		return ActAct, nil
	case "ACT/360", "ACTUAL/360":
		return Act360, nil
	case "ACT/365", "ACT/365F", "ACTUAL/365":
		return Act365F, nil
	case "30/360", "30/360 US", "30/360 BOND":
		return Thirty360, nil
	case "30E/360", "30/360 EUROPEAN":
		return ThirtyE, nil
	default:
		return "", fmt.Errorf("utils: unknown day basis %q", s)
	}
}

// YearFraction computes the year fraction from start to end under the given
// convention. A reversed span yields a negative fraction.
func YearFraction(start, end time.Time, basis DayBasis) float64 {
	if end.Before(start) {
		return -YearFraction(end, start, basis)
	}
	switch basis {
	case Act360:
		return Days(start, end) / 360.0
	case Act365F:
		return Days(start, end) / 365.0
	case Thirty360:
		return thirty360US(start, end)
	case ThirtyE:
		return thirtyE360(start, end)
	default:
		return actActISDA(start, end)
	}
}

// actActISDA splits the span at year boundaries and divides each piece by
// its own year length (365 or 366).
func actActISDA(start, end time.Time) float64 {
	if start.Year() == end.Year() {
		return Days(start, end) / yearLength(start.Year())
	}

	frac := 0.0
	// Stub from start to the end of its year.
	startYearEnd := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	frac += Days(start, startYearEnd) / yearLength(start.Year())
	// Whole calendar years in between.
	frac += float64(end.Year() - start.Year() - 1)
	// Stub from the start of end's year.
	endYearStart := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	frac += Days(endYearStart, end) / yearLength(end.Year())
	return frac
}

func yearLength(year int) float64 {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// thirty360US applies the US (NASD) rule: D1=31 snaps to 30, and D2=31 snaps
// to 30 only when D1 is already 30 or 31.
func thirty360US(start, end time.Time) float64 {
	d1, d2 := start.Day(), end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 >= 30 {
		d2 = 30
	}
	return thirty360(start, end, d1, d2)
}

// thirtyE360 is the Eurobond basis: both day numbers cap at 30.
func thirtyE360(start, end time.Time) float64 {
	d1, d2 := start.Day(), end.Day()
	if d1 > 30 {
		d1 = 30
	}
	if d2 > 30 {
		d2 = 30
	}
	return thirty360(start, end, d1, d2)
}

func thirty360(start, end time.Time, d1, d2 int) float64 {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

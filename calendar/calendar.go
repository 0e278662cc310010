// Package calendar provides business-day arithmetic for payment schedule
// generation.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Convention selects how a date falling on a non-business day is rolled.
type Convention string

const (
	// Unadjusted leaves dates as generated.
	Unadjusted Convention = "unadjusted"
	// Following rolls forward to the next business day.
	Following Convention = "following"
	// ModifiedFollowing rolls forward unless that crosses a month boundary,
	// in which case it rolls backward.
	ModifiedFollowing Convention = "modified_following"
)

// ParseConvention maps a convention name to its constant. An empty string
// means Unadjusted.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unadjusted", "none":
		return Unadjusted, nil
	case "following", "f":
		return Following, nil
	case "modified_following", "modified following", "mf":
		return ModifiedFollowing, nil
	default:
		return "", fmt.Errorf("calendar.ParseConvention: unknown convention %q", s)
	}
}

// Calendar is a weekend calendar with an optional holiday set.
type Calendar struct {
	holidays map[string]struct{}
}

// Weekends returns the plain Saturday/Sunday calendar.
func Weekends() Calendar {
	return Calendar{}
}

// WithHolidays returns a copy of the calendar with the given dates marked as
// holidays.
func (c Calendar) WithHolidays(dates ...time.Time) Calendar {
	holidays := make(map[string]struct{}, len(c.holidays)+len(dates))
	for k := range c.holidays {
		holidays[k] = struct{}{}
	}
	for _, d := range dates {
		holidays[d.Format("2006-01-02")] = struct{}{}
	}
	return Calendar{holidays: holidays}
}

// IsBusinessDay checks weekends and the holiday set.
func (c Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	_, holiday := c.holidays[t.Format("2006-01-02")]
	return !holiday
}

// Adjust rolls t according to the convention.
func (c Calendar) Adjust(t time.Time, conv Convention) time.Time {
	switch conv {
	case Following:
		return c.following(t)
	case ModifiedFollowing:
		rolled := c.following(t)
		if rolled.Month() != t.Month() {
			rolled = t
			for !c.IsBusinessDay(rolled) {
				rolled = rolled.AddDate(0, 0, -1)
			}
		}
		return rolled
	default:
		return t
	}
}

func (c Calendar) following(t time.Time) time.Time {
	for !c.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n may be negative).
func (c Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

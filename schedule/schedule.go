// Package schedule generates a bond's contractual payment stream between a
// valuation date and maturity.
package schedule

import (
	"fmt"
	"time"

	"github.com/spreadomatic/core/calendar"
	"github.com/spreadomatic/core/utils"
)

// Terms is the static description of a bond's payment schedule. It is built
// once per valuation request and never mutated.
type Terms struct {
	IssueDate       time.Time
	FirstCouponDate time.Time
	MaturityDate    time.Time
	// Frequency is coupon payments per year (1, 2, 3, 4, 6 or 12).
	Frequency int
	DayBasis  utils.DayBasis
}

func (t Terms) validate() error {
	if t.Frequency < 1 || 12%t.Frequency != 0 {
		return fmt.Errorf("frequency %d must divide 12", t.Frequency)
	}
	if t.MaturityDate.IsZero() || t.FirstCouponDate.IsZero() {
		return fmt.Errorf("first coupon and maturity dates are required")
	}
	if t.FirstCouponDate.After(t.MaturityDate) {
		return fmt.Errorf("first coupon %s after maturity %s",
			utils.FormatDate(t.FirstCouponDate), utils.FormatDate(t.MaturityDate))
	}
	if !t.IssueDate.IsZero() && t.IssueDate.After(t.FirstCouponDate) {
		return fmt.Errorf("issue date %s after first coupon %s",
			utils.FormatDate(t.IssueDate), utils.FormatDate(t.FirstCouponDate))
	}
	return nil
}

// Cashflow is a single dated payment with its time coordinate from the
// valuation date.
type Cashflow struct {
	Date      time.Time
	Time      float64
	Coupon    float64
	Principal float64
}

// Amount is the total payment.
func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// Generate builds the remaining payment stream: coupon dates step from the
// first coupon by 12/frequency months (EDATE arithmetic, adjusted per the
// calendar convention), each coupon is notional*rate/frequency, and the
// maturity payment bundles the principal. Only cashflows strictly after the
// valuation date are returned, with Time computed from the terms' day basis.
func Generate(terms Terms, valuation time.Time, notional, couponRate float64, cal calendar.Calendar, conv calendar.Convention) ([]Cashflow, error) {
	if err := terms.validate(); err != nil {
		return nil, fmt.Errorf("schedule.Generate: %w", err)
	}
	if notional <= 0 {
		return nil, fmt.Errorf("schedule.Generate: notional must be positive")
	}
	if !valuation.Before(terms.MaturityDate) {
		return nil, fmt.Errorf("schedule.Generate: valuation %s on or after maturity %s",
			utils.FormatDate(valuation), utils.FormatDate(terms.MaturityDate))
	}

	months := 12 / terms.Frequency
	coupon := notional * couponRate / float64(terms.Frequency)

	// Unadjusted coupon dates from the first coupon to maturity.
	var dates []time.Time
	for i := 0; ; i++ {
		d := utils.AddMonth(terms.FirstCouponDate, i*months)
		if d.After(terms.MaturityDate) {
			break
		}
		dates = append(dates, d)
	}
	// A stub at the end still pays at maturity.
	if len(dates) == 0 || !sameDay(dates[len(dates)-1], terms.MaturityDate) {
		dates = append(dates, terms.MaturityDate)
	}

	flows := make([]Cashflow, 0, len(dates))
	for i, d := range dates {
		payDate := cal.Adjust(d, conv)
		if !payDate.After(valuation) {
			continue
		}
		cf := Cashflow{
			Date:   payDate,
			Time:   utils.YearFraction(valuation, payDate, terms.DayBasis),
			Coupon: coupon,
		}
		if i == len(dates)-1 {
			cf.Principal = notional
		}
		flows = append(flows, cf)
	}
	if len(flows) == 0 {
		return nil, fmt.Errorf("schedule.Generate: no cashflows after valuation %s", utils.FormatDate(valuation))
	}

	// Schedule-adjustment artifact: a maturity payment reduced to bare
	// principal silently drops the final coupon. Re-add it.
	last := &flows[len(flows)-1]
	if last.Principal > 0 && last.Coupon == 0 && couponRate > 0 {
		last.Coupon = coupon
	}

	return flows, nil
}

// TimesAmounts splits a cashflow stream into the parallel slices the solvers
// consume.
func TimesAmounts(flows []Cashflow) (times, amounts []float64) {
	times = make([]float64, len(flows))
	amounts = make([]float64, len(flows))
	for i, cf := range flows {
		times[i] = cf.Time
		amounts[i] = cf.Amount()
	}
	return times, amounts
}

// AccruedInterest computes the coupon accrued from the previous coupon date
// to the valuation date, in the same units as the notional. The accrual
// fraction is day-count days into the current period over days in the period.
func AccruedInterest(terms Terms, valuation time.Time, notional, couponRate float64) (float64, error) {
	if err := terms.validate(); err != nil {
		return 0, fmt.Errorf("schedule.AccruedInterest: %w", err)
	}
	if !valuation.Before(terms.MaturityDate) {
		return 0, nil
	}

	months := 12 / terms.Frequency
	coupon := notional * couponRate / float64(terms.Frequency)

	// Walk the unadjusted coupon grid to find the period containing the
	// valuation date.
	prev := utils.AddMonth(terms.FirstCouponDate, -months)
	if !terms.IssueDate.IsZero() && prev.Before(terms.IssueDate) {
		prev = terms.IssueDate
	}
	next := terms.FirstCouponDate
	for !next.After(valuation) && next.Before(terms.MaturityDate) {
		prev = next
		next = utils.AddMonth(next, months)
	}
	if !valuation.After(prev) {
		return 0, nil
	}

	accrued := coupon * utils.Days(prev, valuation) / utils.Days(prev, next)
	return accrued, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

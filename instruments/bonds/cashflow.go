package bonds

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spreadomatic/core/schedule"
	"github.com/spreadomatic/core/utils"
)

// CashflowCents mirrors vendor cashflow feeds where coupon/principal are
// stored as integer minor units (e.g., cents for EUR) to avoid decimal drift
// in transit.
type CashflowCents struct {
	Date           time.Time
	CouponCents    int64
	PrincipalCents int64
}

// ToCashflow converts one feed row, stamping Time as the year fraction from
// the valuation date under the given basis.
func (c CashflowCents) ToCashflow(valuation time.Time, basis utils.DayBasis) schedule.Cashflow {
	return schedule.Cashflow{
		Date:      c.Date,
		Time:      utils.YearFraction(valuation, c.Date, basis),
		Coupon:    decimal.New(c.CouponCents, -2).InexactFloat64(),
		Principal: decimal.New(c.PrincipalCents, -2).InexactFloat64(),
	}
}

// ToCashflows converts a feed, keeping only rows dated after the valuation
// date.
func ToCashflows(in []CashflowCents, valuation time.Time, basis utils.DayBasis) []schedule.Cashflow {
	out := make([]schedule.Cashflow, 0, len(in))
	for _, cf := range in {
		if !cf.Date.After(valuation) {
			continue
		}
		out = append(out, cf.ToCashflow(valuation, basis))
	}
	return out
}

// ParseCents parses a decimal amount string (e.g. "2.50") into minor units,
// rounding half away from zero beyond two places.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

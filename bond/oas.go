package bond

import (
	"fmt"
	"sort"
	"time"

	"github.com/spreadomatic/core/curve"
	"github.com/spreadomatic/core/numerics"
	"github.com/spreadomatic/core/schedule"
	"github.com/spreadomatic/core/utils"
)

// CallEntry is one exercise opportunity on a callable bond.
type CallEntry struct {
	Date  time.Time
	Price float64
}

// NextCall returns the first call entry strictly after the valuation date.
// Entries need not be pre-sorted.
func NextCall(calls []CallEntry, valuation time.Time) (CallEntry, bool) {
	sorted := append([]CallEntry(nil), calls...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	for _, c := range sorted {
		if c.Date.After(valuation) {
			return c, true
		}
	}
	return CallEntry{}, false
}

// OAS approximates the option-adjusted spread of a callable bond by assuming
// exercise at the next call date: the stream is truncated there, redeemed at
// the call price, and Z-spread-solved against the dirty price.
//
// This is a deterministic spread-to-next-call proxy, not a lattice or
// simulation model; it tracks true OAS only when the bond is near-certain to
// be called at that date.
func OAS(flows []schedule.Cashflow, valuation time.Time, zc curve.Curve, basis utils.DayBasis, dirtyPrice float64, call CallEntry, comp curve.Compounding, cfg numerics.Config) (numerics.Result, error) {
	if call.Date.IsZero() || !call.Date.After(valuation) {
		return numerics.Result{}, fmt.Errorf("bond.OAS: call date must be after valuation")
	}
	if call.Price <= 0 {
		return numerics.Result{}, fmt.Errorf("bond.OAS: call price %g must be positive", call.Price)
	}

	// Coupons up to (not including) the call date survive; principal at
	// maturity is replaced by redemption at the call price.
	truncated := make([]schedule.Cashflow, 0, len(flows)+1)
	for _, cf := range flows {
		if cf.Date.Before(call.Date) {
			truncated = append(truncated, schedule.Cashflow{
				Date:   cf.Date,
				Time:   cf.Time,
				Coupon: cf.Coupon,
			})
		}
	}
	truncated = append(truncated, schedule.Cashflow{
		Date:      call.Date,
		Time:      utils.YearFraction(valuation, call.Date, basis),
		Principal: call.Price,
	})

	times, amounts := schedule.TimesAmounts(truncated)
	res, err := SolveZSpread(dirtyPrice, times, amounts, zc, comp, cfg)
	if err != nil {
		return numerics.Result{}, fmt.Errorf("bond.OAS: %w", err)
	}
	return res, nil
}

package bond

import (
	"fmt"

	"github.com/spreadomatic/core/curve"
)

// DefaultBump is the finite-difference shift used for sensitivities: 1bp.
const DefaultBump = 1e-4

// EffectiveDuration bumps the whole curve by +/- delta and reprices:
//
//	ED = (P(-d) - P(+d)) / (2 d P0)
//
// Positive for a standard bond, whose price falls as the curve rises.
func EffectiveDuration(times, amounts []float64, zc curve.Curve, comp curve.Compounding, bump float64) (float64, error) {
	if bump <= 0 {
		bump = DefaultBump
	}
	p0 := curve.PV(times, amounts, zc, 0, comp)
	if p0 <= 0 {
		return 0, fmt.Errorf("bond.EffectiveDuration: base price %g not positive", p0)
	}
	up := curve.PV(times, amounts, zc.Bump(bump), 0, comp)
	down := curve.PV(times, amounts, zc.Bump(-bump), 0, comp)
	return (down - up) / (2 * bump * p0), nil
}

// Convexity is the second finite difference against the same parallel bump:
//
//	C = (P(+d) + P(-d) - 2 P0) / (d^2 P0)
func Convexity(times, amounts []float64, zc curve.Curve, comp curve.Compounding, bump float64) (float64, error) {
	if bump <= 0 {
		bump = DefaultBump
	}
	p0 := curve.PV(times, amounts, zc, 0, comp)
	if p0 <= 0 {
		return 0, fmt.Errorf("bond.Convexity: base price %g not positive", p0)
	}
	up := curve.PV(times, amounts, zc.Bump(bump), 0, comp)
	down := curve.PV(times, amounts, zc.Bump(-bump), 0, comp)
	return (up + down - 2*p0) / (bump * bump * p0), nil
}

// ModifiedDuration adjusts an effective duration for periodic compounding at
// the solved yield: ED / (1 + y/f). Continuous compounding needs no
// adjustment.
func ModifiedDuration(effectiveDuration, ytm float64, comp curve.Compounding) float64 {
	f := comp.Frequency()
	if f == 0 {
		return effectiveDuration
	}
	return effectiveDuration / (1 + ytm/float64(f))
}

// MacaulayDuration is the discounted-cashflow-weighted mean time to payment
// at the solved yield.
func MacaulayDuration(times, amounts []float64, ytm float64, comp curve.Compounding) (float64, error) {
	var pv, weighted float64
	for i, t := range times {
		df := curve.DiscountFactor(ytm, t, comp)
		pv += amounts[i] * df
		weighted += t * amounts[i] * df
	}
	if pv <= 0 {
		return 0, fmt.Errorf("bond.MacaulayDuration: present value %g not positive", pv)
	}
	return weighted / pv, nil
}

// SpreadDuration applies the duration bump to the solved spread instead of
// the curve level.
func SpreadDuration(times, amounts []float64, zc curve.Curve, spread float64, comp curve.Compounding, bump float64) (float64, error) {
	if bump <= 0 {
		bump = DefaultBump
	}
	p0 := curve.PV(times, amounts, zc, spread, comp)
	if p0 <= 0 {
		return 0, fmt.Errorf("bond.SpreadDuration: base price %g not positive", p0)
	}
	up := curve.PV(times, amounts, zc, spread+bump, comp)
	down := curve.PV(times, amounts, zc, spread-bump, comp)
	return (down - up) / (2 * bump * p0), nil
}

// KeyRateDurations bumps one curve knot at a time, holding the others fixed,
// and reprices. The result maps each knot's tenor to its sensitivity; the
// tenors sum roughly to the effective duration for a parallel-comparable
// curve.
func KeyRateDurations(times, amounts []float64, zc curve.Curve, comp curve.Compounding, bump float64) (map[float64]float64, error) {
	if bump <= 0 {
		bump = DefaultBump
	}
	p0 := curve.PV(times, amounts, zc, 0, comp)
	if p0 <= 0 {
		return nil, fmt.Errorf("bond.KeyRateDurations: base price %g not positive", p0)
	}

	krd := make(map[float64]float64, len(zc.Times))
	for i, tenor := range zc.Times {
		up := curve.PV(times, amounts, zc.BumpKnot(i, bump), 0, comp)
		down := curve.PV(times, amounts, zc.BumpKnot(i, -bump), 0, comp)
		krd[tenor] = (down - up) / (2 * bump * p0)
	}
	return krd, nil
}

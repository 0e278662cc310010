// Package curve models a discrete zero-rate curve and the discounting
// primitives built on top of it.
package curve

import (
	"fmt"
	"sort"
)

// ErrDegenerateInput marks curve inputs the interpolator cannot work with:
// too few points, unsorted or duplicated times. Validate at the boundary;
// the solvers assume a well-formed curve.
var ErrDegenerateInput = fmt.Errorf("curve: degenerate input")

// Curve is an ordered set of zero-coupon points. Times are in years from the
// valuation date, rates are decimals (0.03 for 3%).
type Curve struct {
	Times []float64
	Rates []float64
}

// New validates and constructs a curve. It requires at least two points,
// strictly increasing and non-negative times, and matching slice lengths.
func New(times, rates []float64) (Curve, error) {
	if len(times) != len(rates) {
		return Curve{}, fmt.Errorf("%w: %d times vs %d rates", ErrDegenerateInput, len(times), len(rates))
	}
	if len(times) < 2 {
		return Curve{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrDegenerateInput, len(times))
	}
	for i, t := range times {
		if t < 0 {
			return Curve{}, fmt.Errorf("%w: negative time %g at index %d", ErrDegenerateInput, t, i)
		}
		if i > 0 && t <= times[i-1] {
			return Curve{}, fmt.Errorf("%w: times not strictly increasing at index %d (%g after %g)", ErrDegenerateInput, i, t, times[i-1])
		}
	}
	return Curve{Times: times, Rates: rates}, nil
}

// Flat returns a two-point flat curve at the given rate, spanning [0, horizon].
// It backs yield-to-maturity pricing, where every cashflow discounts at the
// single rate y.
func Flat(rate, horizon float64) Curve {
	if horizon <= 0 {
		horizon = 1
	}
	return Curve{Times: []float64{0, horizon}, Rates: []float64{rate, rate}}
}

// RateAt returns the zero rate at time t: flat extrapolation outside the
// knots, linear interpolation between them. Lookup is O(log n).
func (c Curve) RateAt(t float64) float64 {
	n := len(c.Times)
	if n == 0 {
		return 0
	}
	if n == 1 || t <= c.Times[0] {
		return c.Rates[0]
	}
	if t >= c.Times[n-1] {
		return c.Rates[n-1]
	}

	// First knot with time >= t.
	i := sort.SearchFloat64s(c.Times, t)
	if c.Times[i] == t {
		return c.Rates[i]
	}
	t0, t1 := c.Times[i-1], c.Times[i]
	r0, r1 := c.Rates[i-1], c.Rates[i]
	return r0 + (r1-r0)*(t-t0)/(t1-t0)
}

// Bump returns a copy of the curve with every rate shifted by delta.
func (c Curve) Bump(delta float64) Curve {
	rates := make([]float64, len(c.Rates))
	for i, r := range c.Rates {
		rates[i] = r + delta
	}
	return Curve{Times: append([]float64(nil), c.Times...), Rates: rates}
}

// BumpKnot returns a copy of the curve with only the i-th rate shifted.
func (c Curve) BumpKnot(i int, delta float64) Curve {
	rates := append([]float64(nil), c.Rates...)
	rates[i] += delta
	return Curve{Times: append([]float64(nil), c.Times...), Rates: rates}
}

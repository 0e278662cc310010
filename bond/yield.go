// Package bond solves yields and spreads for a cashflow stream against a
// zero curve and derives the standard sensitivity measures.
package bond

import (
	"fmt"

	"github.com/spreadomatic/core/curve"
	"github.com/spreadomatic/core/numerics"
)

const (
	// ytmGuess is the starting point for yield solves.
	ytmGuess = 0.05
	// spreadGuess is the starting point for Z-spread solves.
	spreadGuess = 0.01
)

var (
	// ytmNewtonBounds constrain the primary Newton yield solve.
	ytmNewtonBounds = numerics.Interval{Lo: 0, Hi: 1}
	// ytmBrentBounds constrain the last-resort Brent yield solve.
	ytmBrentBounds = numerics.Interval{Lo: 0.001, Hi: 0.5}
	// spreadBounds constrain the Z-spread solve.
	spreadBounds = numerics.Interval{Lo: -0.1, Hi: 0.2}
)

// validateStream rejects degenerate pricing inputs before they reach a
// solver: empty or mismatched slices, non-positive times, zero price.
func validateStream(price float64, times, amounts []float64) error {
	if len(times) == 0 {
		return fmt.Errorf("no cashflows")
	}
	if len(times) != len(amounts) {
		return fmt.Errorf("%d times vs %d amounts", len(times), len(amounts))
	}
	if price <= 0 {
		return fmt.Errorf("price %g must be positive", price)
	}
	for i, t := range times {
		if t <= 0 {
			return fmt.Errorf("cashflow time %g at index %d must be positive", t, i)
		}
	}
	return nil
}

// SolveYTM finds the single rate y at which the stream, discounted on a flat
// curve of y, reprices to the dirty price.
//
// The safeguarded Newton solver runs first on [0, 1]; if it fails outright
// (its own internal Brent retry included), a Brent attempt on [0.001, 0.5]
// is the last resort.
func SolveYTM(price float64, times, amounts []float64, comp curve.Compounding, cfg numerics.Config) (numerics.Result, error) {
	if err := validateStream(price, times, amounts); err != nil {
		return numerics.Result{}, fmt.Errorf("bond.SolveYTM: %w", err)
	}

	horizon := times[len(times)-1]
	g := func(y float64) float64 {
		return curve.PV(times, amounts, curve.Flat(y, horizon), 0, comp) - price
	}

	newton := numerics.NewNewton(cfg)
	res, err := newton.Solve(g, ytmGuess, &ytmNewtonBounds)
	if err == nil {
		return res, nil
	}

	brent := numerics.NewBrent(cfg)
	res, berr := brent.Solve(g, ytmGuess, &ytmBrentBounds)
	if berr != nil {
		return numerics.Result{}, fmt.Errorf("bond.SolveYTM: %w", berr)
	}
	return res, nil
}

// SolveZSpread finds the constant spread s added to every curve point at
// which the stream reprices to the dirty price.
func SolveZSpread(price float64, times, amounts []float64, zc curve.Curve, comp curve.Compounding, cfg numerics.Config) (numerics.Result, error) {
	if err := validateStream(price, times, amounts); err != nil {
		return numerics.Result{}, fmt.Errorf("bond.SolveZSpread: %w", err)
	}

	h := func(s float64) float64 {
		return curve.PV(times, amounts, zc, s, comp) - price
	}

	res, err := numerics.NewBrent(cfg).Solve(h, spreadGuess, &spreadBounds)
	if err != nil {
		return numerics.Result{}, fmt.Errorf("bond.SolveZSpread: %w", err)
	}
	return res, nil
}

// GSpread is the yield pickup over the interpolated curve rate at the bond's
// maturity: a single-point comparison, unlike the Z-spread's whole-curve one.
func GSpread(ytm, maturity float64, zc curve.Curve) float64 {
	return ytm - zc.RateAt(maturity)
}

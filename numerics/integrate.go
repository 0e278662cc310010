package numerics

import (
	"fmt"
	"math"
)

const (
	// maxSimpsonDepth bounds the recursive subdivision of the adaptive rule.
	maxSimpsonDepth = 50
	// trapezoidIntervals is the resolution of the fixed-grid fallback.
	trapezoidIntervals = 1000
)

// Integrate evaluates the definite integral of f over [a, b].
//
// The primary path is adaptive Simpson quadrature targeting cfg.Tolerance.
// If that path hits non-finite values or exhausts its subdivision budget,
// the integral is re-evaluated with a fixed 1000-interval trapezoidal rule
// and the error estimate is reported as +Inf to signal reduced confidence.
// Only a fallback that itself produces a non-finite value is an error.
func Integrate(f Func, a, b float64, cfg Config) (value, errEstimate float64, err error) {
	if a == b {
		return 0, 0, nil
	}
	sign := 1.0
	if b < a {
		a, b = b, a
		sign = -1
	}

	value, errEstimate, ok := adaptiveSimpson(f, a, b, cfg.Tolerance)
	if ok {
		return sign * value, errEstimate, nil
	}

	value = trapezoid(f, a, b, trapezoidIntervals)
	if !isFinite(value) {
		return 0, 0, fmt.Errorf("numerics: integrand not finite on [%g, %g] even under trapezoidal fallback", a, b)
	}
	return sign * value, math.Inf(1), nil
}

// adaptiveSimpson runs the classic recursive rule: a subinterval is accepted
// when the two-panel refinement agrees with the single panel to within the
// local error budget, with Richardson correction |S2-S1|/15.
func adaptiveSimpson(f Func, a, b, tol float64) (float64, float64, bool) {
	fa, fb := f(a), f(b)
	m, fm, whole := simpsonPanel(f, a, fa, b, fb)
	if !isFinite(whole) {
		return 0, 0, false
	}
	return simpsonStep(f, a, fa, b, fb, m, fm, whole, tol, maxSimpsonDepth)
}

func simpsonStep(f Func, a, fa, b, fb, m, fm, whole, tol float64, depth int) (float64, float64, bool) {
	lm, flm, left := simpsonPanel(f, a, fa, m, fm)
	rm, frm, right := simpsonPanel(f, m, fm, b, fb)
	if !isFinite(left) || !isFinite(right) {
		return 0, 0, false
	}

	delta := left + right - whole
	if math.Abs(delta) <= 15*tol {
		return left + right + delta/15, math.Abs(delta) / 15, true
	}
	if depth <= 0 {
		return 0, 0, false
	}

	lv, le, ok := simpsonStep(f, a, fa, m, fm, lm, flm, left, tol/2, depth-1)
	if !ok {
		return 0, 0, false
	}
	rv, re, ok := simpsonStep(f, m, fm, b, fb, rm, frm, right, tol/2, depth-1)
	if !ok {
		return 0, 0, false
	}
	return lv + rv, le + re, true
}

// simpsonPanel returns the midpoint, its function value and the Simpson
// estimate over [a, b].
func simpsonPanel(f Func, a, fa, b, fb float64) (m, fm, s float64) {
	m = (a + b) / 2
	fm = f(m)
	s = (b - a) / 6 * (fa + 4*fm + fb)
	return m, fm, s
}

func trapezoid(f Func, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}

package numerics

import (
	"fmt"
	"math"
)

const (
	// symmetricBracketTries bounds the auto-bracketing expansions around an
	// initial guess.
	symmetricBracketTries = 20
	// asymmetricBracketTries bounds the rescue expansions of a supplied
	// bracket that does not straddle a sign change.
	asymmetricBracketTries = 10
)

// Brent solves f(x) = 0 with the classic Brent hybrid: bisection, secant and
// inverse quadratic interpolation, keeping the root bracketed throughout.
// Convergence is guaranteed once a sign-changing bracket is found.
type Brent struct {
	Config Config
}

// NewBrent returns a Brent solver with the given configuration.
func NewBrent(cfg Config) Brent {
	return Brent{Config: cfg}
}

// Solve finds a root of f. With nil bounds the bracket is discovered by
// symmetric expansion around guess; a supplied non-sign-changing bracket is
// widened asymmetrically before giving up.
//
// If MaxIterations is exhausted without meeting tolerance the best iterate is
// returned with Converged=false rather than an error.
func (b Brent) Solve(f Func, guess float64, bounds *Interval) (Result, error) {
	var lo, hi float64
	var err error
	if bounds == nil {
		lo, hi, err = b.autoBracket(f, guess)
	} else {
		lo, hi, err = b.rescueBracket(f, bounds.Lo, bounds.Hi)
	}
	if err != nil {
		return Result{}, err
	}
	return b.iterate(f, lo, hi), nil
}

// autoBracket searches for a sign change symmetrically around guess, growing
// the half-width geometrically.
func (b Brent) autoBracket(f Func, guess float64) (float64, float64, error) {
	size := b.Config.InitialBracketSize
	lo, hi := guess-size, guess+size
	for i := 0; i < symmetricBracketTries; i++ {
		if sgn(f(lo)) != sgn(f(hi)) {
			return lo, hi, nil
		}
		size *= b.Config.BracketExpansionFactor
		lo, hi = guess-size, guess+size
	}
	return 0, 0, &BracketingError{Lo: lo, Hi: hi, Attempts: symmetricBracketTries}
}

// rescueBracket keeps a sign-changing bracket as-is, otherwise pushes the
// endpoint whose function value is smaller in magnitude further out: the
// root, if any, is more likely beyond the shallow end.
func (b Brent) rescueBracket(f Func, lo, hi float64) (float64, float64, error) {
	flo, fhi := f(lo), f(hi)
	for i := 0; i < asymmetricBracketTries; i++ {
		if sgn(flo) != sgn(fhi) {
			return lo, hi, nil
		}
		width := hi - lo
		if width <= 0 {
			width = b.Config.InitialBracketSize
		}
		if math.Abs(flo) < math.Abs(fhi) {
			lo -= b.Config.BracketExpansionFactor * width
			flo = f(lo)
		} else {
			hi += b.Config.BracketExpansionFactor * width
			fhi = f(hi)
		}
	}
	return 0, 0, &BracketingError{Lo: lo, Hi: hi, Attempts: asymmetricBracketTries}
}

// iterate runs the Brent hybrid on a sign-changing bracket [a, z].
//
// Invariants per iteration: b is the current best iterate, a the previous
// one, c an older point with f(b) and f(c) of opposite sign and
// |f(b)| <= |f(c)|. An interpolated step is accepted only if it stays within
// the bracket margin and shrinks faster than bisection would.
func (b Brent) iterate(f Func, a, z float64) Result {
	cfg := b.Config

	x0, x1 := a, z
	f0, f1 := f(x0), f(x1)
	if math.Abs(f0) < math.Abs(f1) {
		x0, x1 = x1, x0
		f0, f1 = f1, f0
	}
	x2, f2 := x0, f0
	d := x1 - x0
	e := d

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		if (f1 > 0) == (f2 > 0) {
			// b and c must straddle the root; re-anchor c at a.
			x2, f2 = x0, f0
			d = x1 - x0
			e = d
		}
		if math.Abs(f2) < math.Abs(f1) {
			x0, x1, x2 = x1, x2, x1
			f0, f1, f2 = f1, f2, f1
		}

		tol1 := 2*machEps*math.Abs(x1) + 0.5*cfg.Tolerance
		xm := 0.5 * (x2 - x1)

		if math.Abs(f1) < cfg.Tolerance || math.Abs(xm) <= tol1 || f1 == 0 {
			return Result{Root: x1, Iterations: iter, Converged: true}
		}

		if math.Abs(e) >= tol1 && math.Abs(f0) > math.Abs(f1) {
			// Try interpolation: secant when only two points are distinct,
			// inverse quadratic with three.
			var p, q float64
			s := f1 / f0
			if x0 == x2 {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = f0 / f2
				r := f1 / f2
				p = s * (2*xm*q*(q-r) - (x1-x0)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				// Interpolated step accepted.
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		x0, f0 = x1, f1
		if math.Abs(d) > tol1 {
			x1 += d
		} else {
			x1 += math.Copysign(tol1, xm)
		}
		f1 = f(x1)
	}

	return Result{
		Root:       x1,
		Iterations: cfg.MaxIterations,
		Converged:  false,
		Diagnostic: fmt.Sprintf("brent: %d iterations without meeting tolerance %g (|f|=%g)", cfg.MaxIterations, cfg.Tolerance, math.Abs(f1)),
	}
}

// machEps is the double-precision machine epsilon.
var machEps = math.Nextafter(1, 2) - 1

func sgn(v float64) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

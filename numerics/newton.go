package numerics

import (
	"fmt"
	"math"
)

const (
	// minDerivative is the smallest derivative magnitude a Newton step will
	// divide by.
	minDerivative = 1e-14
	// maxStepScale caps the Newton step relative to the current iterate.
	maxStepScale = 100.0
)

// Newton is a safeguarded Newton-Raphson solver. It is faster than Brent on
// well-behaved objectives and retries the same problem with Brent whenever
// one of its safeguards fires, so it never does worse than Brent alone.
type Newton struct {
	Config Config
	// Derivative is the analytic first derivative of the objective. When
	// nil, a central difference is used.
	Derivative Func
}

// NewNewton returns a Newton solver using a numerical derivative.
func NewNewton(cfg Config) Newton {
	return Newton{Config: cfg}
}

// Solve runs the Newton iteration from guess, clamping iterates into bounds
// when supplied. Any safeguard failure (near-zero derivative, oversized
// step, non-finite evaluation, iteration exhaustion) is recovered by
// re-solving with Brent; only a combined Newton+Brent failure propagates.
func (n Newton) Solve(f Func, guess float64, bounds *Interval) (Result, error) {
	res, nerr := n.iterate(f, guess, bounds)
	if nerr == nil {
		return res, nil
	}

	brent := Brent{Config: n.Config}
	res, berr := brent.Solve(f, guess, bounds)
	if berr != nil {
		return Result{}, fmt.Errorf("numerics: newton failed (%v); brent fallback: %w", nerr, berr)
	}
	if res.Diagnostic == "" {
		res.Diagnostic = fmt.Sprintf("recovered via brent after newton failure: %v", nerr)
	}
	return res, nil
}

// iterate is the raw Newton loop. It returns a *ConvergenceError when a
// safeguard fires so the caller can branch into the fallback.
func (n Newton) iterate(f Func, guess float64, bounds *Interval) (Result, *ConvergenceError) {
	cfg := n.Config
	x := guess
	if bounds != nil {
		x = bounds.Clamp(x)
	}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		fx := f(x)
		if !isFinite(fx) {
			return Result{}, &ConvergenceError{Reason: "non-finite function value", X: x, Iter: iter}
		}
		if math.Abs(fx) < cfg.Tolerance {
			return Result{Root: x, Iterations: iter, Converged: true}, nil
		}

		fpx := n.derivative(f, x)
		if !isFinite(fpx) {
			return Result{}, &ConvergenceError{Reason: "non-finite derivative", X: x, Iter: iter}
		}
		if math.Abs(fpx) < minDerivative {
			return Result{}, &ConvergenceError{Reason: "derivative too small", X: x, Iter: iter}
		}

		dx := fx / fpx
		if math.Abs(dx) > maxStepScale*math.Abs(x) && math.Abs(x) > 0 {
			return Result{}, &ConvergenceError{Reason: "step too large", X: x, Iter: iter}
		}

		x -= dx
		if bounds != nil {
			x = bounds.Clamp(x)
		}
		if math.Abs(dx) < cfg.Tolerance*(1+math.Abs(x)) {
			return Result{Root: x, Iterations: iter + 1, Converged: true}, nil
		}
	}

	return Result{}, &ConvergenceError{Reason: "iteration budget exhausted", X: x, Iter: cfg.MaxIterations}
}

// derivative returns the analytic derivative when configured, otherwise a
// central difference with step h = max(|x|*1e-8, 1e-8).
func (n Newton) derivative(f Func, x float64) float64 {
	if n.Derivative != nil {
		return n.Derivative(x)
	}
	h := math.Max(math.Abs(x)*1e-8, 1e-8)
	return (f(x+h) - f(x-h)) / (2 * h)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package numerics provides the root-finding and quadrature primitives behind
// the bond analytics: Brent's method with bracket auto-discovery, a
// safeguarded Newton-Raphson that falls back to Brent, and an adaptive
// integrator with a trapezoidal rescue path.
package numerics

// Func is a scalar function of one real variable.
type Func func(float64) float64

// Interval is a closed bounds pair for a solve. Lo must not exceed Hi.
type Interval struct {
	Lo float64
	Hi float64
}

// Clamp restricts x to the interval.
func (iv Interval) Clamp(x float64) float64 {
	if x < iv.Lo {
		return iv.Lo
	}
	if x > iv.Hi {
		return iv.Hi
	}
	return x
}

// Config carries the tuning knobs shared by every solver call. It is a plain
// value passed explicitly; there is no package-level mutable configuration.
type Config struct {
	// Tolerance is the absolute convergence target on |f(x)| and on the
	// bracket half-width.
	Tolerance float64
	// MaxIterations bounds the iteration count of a single solve.
	MaxIterations int
	// BracketExpansionFactor is the geometric growth applied while searching
	// for a sign change.
	BracketExpansionFactor float64
	// InitialBracketSize is the half-width of the first bracket attempt
	// around the initial guess.
	InitialBracketSize float64
}

// DefaultConfig returns the standard solver configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:              1e-8,
		MaxIterations:          100,
		BracketExpansionFactor: 2.0,
		InitialBracketSize:     0.01,
	}
}

// Result is the outcome of a solve. A non-converged result still carries the
// best root estimate found; callers decide whether to trust it based on
// Converged and Diagnostic.
type Result struct {
	Root       float64
	Iterations int
	Converged  bool
	Diagnostic string
}

// Method is a root-finding strategy for a continuous function assumed to
// have a root. bounds may be nil, in which case the strategy discovers its
// own bracket around guess.
type Method interface {
	Solve(f Func, guess float64, bounds *Interval) (Result, error)
}

package numerics

import "fmt"

// BracketingError reports that no sign change could be found after the
// bounded expansion attempts. The solve that raised it cannot proceed.
type BracketingError struct {
	Lo       float64
	Hi       float64
	Attempts int
}

func (e *BracketingError) Error() string {
	return fmt.Sprintf("numerics: no sign change in [%g, %g] after %d expansion attempts", e.Lo, e.Hi, e.Attempts)
}

// ConvergenceError is the typed failure a Newton-Raphson iteration reports
// when one of its safeguards fires. Newton recovers from it locally by
// retrying with Brent; it only surfaces when both strategies fail.
type ConvergenceError struct {
	Reason string
	X      float64
	Iter   int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("numerics: newton-raphson %s at x=%g (iteration %d)", e.Reason, e.X, e.Iter)
}

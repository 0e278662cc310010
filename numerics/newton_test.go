package numerics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewtonWithAnalyticDerivative(t *testing.T) {
	t.Parallel()

	f := func(x float64) float64 { return x*x*x - x - 1 }
	fp := func(x float64) float64 { return 3*x*x - 1 }

	solver := Newton{Config: DefaultConfig(), Derivative: fp}
	res, err := solver.Solve(f, 1.5, nil)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.InDelta(t, 1.3247179572447460, res.Root, 1e-8)
}

func TestNewtonNumericalDerivative(t *testing.T) {
	t.Parallel()

	res, err := NewNewton(DefaultConfig()).Solve(func(x float64) float64 { return x*x - 2 }, 1.0, nil)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-8)
}

func TestNewtonRespectsBounds(t *testing.T) {
	t.Parallel()

	// Two roots at +/- sqrt(2); bounds keep the iteration on the positive one.
	f := func(x float64) float64 { return x*x - 2 }
	res, err := NewNewton(DefaultConfig()).Solve(f, 0.9, &Interval{Lo: 0, Hi: 5})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-8)
}

func TestNewtonFallsBackOnFlatDerivative(t *testing.T) {
	t.Parallel()

	// f has a stationary point at the initial guess x=0, so the first Newton
	// step divides by a near-zero derivative and the solver must recover via
	// Brent, landing on the same root Brent finds directly.
	f := func(x float64) float64 { return x*x*x - x - 1 }

	res, err := NewNewton(DefaultConfig()).Solve(f, 1/math.Sqrt(3), nil)
	require.NoError(t, err)
	require.True(t, res.Converged)

	direct, err := NewBrent(DefaultConfig()).Solve(f, 1/math.Sqrt(3), nil)
	require.NoError(t, err)
	assert.InDelta(t, direct.Root, res.Root, 1e-8)
}

func TestNewtonFallsBackOnNonFiniteValue(t *testing.T) {
	t.Parallel()

	// Non-finite at the guess forces the fallback immediately; Brent's
	// bracket expansion still straddles the root at x=2.
	f := func(x float64) float64 {
		if x == 3 {
			return math.NaN()
		}
		return x - 2
	}
	res, err := NewNewton(DefaultConfig()).Solve(f, 3.0, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Root, 1e-8)
}

func TestNewtonCombinedFailure(t *testing.T) {
	t.Parallel()

	// No root anywhere: Newton exhausts its safeguards and Brent cannot
	// bracket, so the combined failure surfaces.
	f := func(x float64) float64 { return x*x + 1 }
	_, err := NewNewton(DefaultConfig()).Solve(f, 0.0, nil)
	require.Error(t, err)
	var bracketErr *BracketingError
	assert.ErrorAs(t, err, &bracketErr)
}

func TestNewtonIterateGuards(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	t.Run("derivative too small", func(t *testing.T) {
		t.Parallel()
		n := Newton{Config: cfg, Derivative: func(float64) float64 { return 0 }}
		_, cerr := n.iterate(func(x float64) float64 { return x - 1 }, 5.0, nil)
		require.NotNil(t, cerr)
		assert.Equal(t, "derivative too small", cerr.Reason)
	})

	t.Run("step too large", func(t *testing.T) {
		t.Parallel()
		n := Newton{Config: cfg, Derivative: func(float64) float64 { return 1e-10 }}
		_, cerr := n.iterate(func(x float64) float64 { return x - 1 }, 5.0, nil)
		require.NotNil(t, cerr)
		assert.Equal(t, "step too large", cerr.Reason)
	})

	t.Run("iteration budget exhausted", func(t *testing.T) {
		t.Parallel()
		tight := cfg
		tight.MaxIterations = 1
		tight.Tolerance = 1e-15
		n := Newton{Config: tight}
		_, cerr := n.iterate(func(x float64) float64 { return math.Atan(x) }, 4.0, nil)
		require.NotNil(t, cerr)
		assert.Equal(t, "iteration budget exhausted", cerr.Reason)
	})
}

package bond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadomatic/core/curve"
)

func flat3Curve(t *testing.T) curve.Curve {
	t.Helper()
	zc, err := curve.New([]float64{1, 2, 5, 10}, []float64{0.03, 0.03, 0.03, 0.03})
	require.NoError(t, err)
	return zc
}

func TestEffectiveDuration(t *testing.T) {
	t.Parallel()

	zc := flat3Curve(t)
	ed, err := EffectiveDuration(parTimes, parAmounts, zc, curve.Semiannual, DefaultBump)
	require.NoError(t, err)

	// Analytic modified duration of the stream on a flat 3% semiannual
	// curve.
	assert.InDelta(t, 1.9010334, ed, 1e-4)
	assert.Positive(t, ed, "price must fall as the curve rises")
}

func TestConvexity(t *testing.T) {
	t.Parallel()

	zc := flat3Curve(t)
	cx, err := Convexity(parTimes, parAmounts, zc, curve.Semiannual, DefaultBump)
	require.NoError(t, err)
	assert.InDelta(t, 4.6256424, cx, 1e-3)
	assert.Positive(t, cx)
}

func TestModifiedDuration(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0/1.025, ModifiedDuration(2.0, 0.05, curve.Semiannual), 1e-12)
	assert.InDelta(t, 2.0/1.05, ModifiedDuration(2.0, 0.05, curve.Annual), 1e-12)
	// Continuous compounding needs no adjustment.
	assert.Equal(t, 2.0, ModifiedDuration(2.0, 0.05, curve.Continuous))
}

func TestMacaulayDuration(t *testing.T) {
	t.Parallel()

	// Hand-computed for the 2y 5% semiannual par bond at its 5% yield.
	mac, err := MacaulayDuration(parTimes, parAmounts, 0.05, curve.Semiannual)
	require.NoError(t, err)
	assert.InDelta(t, 1.9280118, mac, 1e-4)

	// A zero-coupon bond's Macaulay duration is its maturity.
	mac, err = MacaulayDuration([]float64{5}, []float64{100}, 0.04, curve.Semiannual)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mac, 1e-12)
}

func TestSpreadDuration(t *testing.T) {
	t.Parallel()

	zc := flat3Curve(t)
	// At a 2% spread over the flat 3% curve the stream discounts at 5%
	// effective; the spread sensitivity matches the flat-5% duration.
	sd, err := SpreadDuration(parTimes, parAmounts, zc, 0.02, curve.Semiannual, DefaultBump)
	require.NoError(t, err)
	assert.InDelta(t, 1.8809871, sd, 1e-4)
}

func TestKeyRateDurations(t *testing.T) {
	t.Parallel()

	zc := flat3Curve(t)
	krd, err := KeyRateDurations(parTimes, parAmounts, zc, curve.Semiannual, DefaultBump)
	require.NoError(t, err)
	require.Len(t, krd, len(zc.Times))

	// Knot bumps decompose the parallel shift: key-rate durations sum to
	// the effective duration.
	ed, err := EffectiveDuration(parTimes, parAmounts, zc, curve.Semiannual, DefaultBump)
	require.NoError(t, err)
	sum := 0.0
	for _, v := range krd {
		sum += v
	}
	assert.InDelta(t, ed, sum, 1e-6)

	// Knots beyond the last cashflow carry no sensitivity.
	assert.InDelta(t, 0.0, krd[10], 1e-9)
	// The 2y knot dominates for a 2y bond.
	assert.Greater(t, krd[2], krd[1])
}

func TestDurationDegenerateInputs(t *testing.T) {
	t.Parallel()

	zc := flat3Curve(t)
	// A worthless stream cannot be bumped meaningfully.
	_, err := EffectiveDuration([]float64{1}, []float64{0}, zc, curve.Semiannual, DefaultBump)
	require.Error(t, err)
	_, err = Convexity([]float64{1}, []float64{0}, zc, curve.Semiannual, DefaultBump)
	require.Error(t, err)
	_, err = MacaulayDuration([]float64{1}, []float64{0}, 0.05, curve.Semiannual)
	require.Error(t, err)
	_, err = KeyRateDurations([]float64{1}, []float64{0}, zc, curve.Semiannual, DefaultBump)
	require.Error(t, err)
}

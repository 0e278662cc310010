package bond

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spreadomatic/core/curve"
	"github.com/spreadomatic/core/numerics"
	"github.com/spreadomatic/core/schedule"
	"github.com/spreadomatic/core/utils"
)

// Input bundles everything a full analytics run needs. All fields are read
// only; a zero Config or Bump falls back to the defaults.
type Input struct {
	DirtyPrice  float64
	Flows       []schedule.Cashflow
	Curve       curve.Curve
	Compounding curve.Compounding
	DayBasis    utils.DayBasis
	Valuation   time.Time
	// Calls is the optional call schedule; OAS is computed against the
	// first entry after the valuation date.
	Calls  []CallEntry
	Config numerics.Config
	Bump   float64
}

// Result is the analytics bundle. Rates and spreads are decimals. Metrics
// are independent: a failed metric leaves its field zero (OAS nil) and
// appends to Warnings instead of aborting the rest.
type Result struct {
	YTM               float64
	ZSpread           float64
	GSpread           float64
	EffectiveDuration float64
	ModifiedDuration  float64
	MacaulayDuration  float64
	Convexity         float64
	SpreadDuration    float64
	KeyRateDurations  map[float64]float64
	OAS               *float64
	Warnings          []string
}

// Compute runs the full analytics bundle for one instrument. Solver
// diagnostics and per-metric failures are logged as warnings and carried in
// Result.Warnings; only degenerate inputs error out entirely.
func Compute(logger *zap.Logger, in Input) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if in.Config == (numerics.Config{}) {
		in.Config = numerics.DefaultConfig()
	}
	if in.Bump <= 0 {
		in.Bump = DefaultBump
	}
	if len(in.Flows) == 0 {
		return Result{}, fmt.Errorf("bond.Compute: no cashflows")
	}

	times, amounts := schedule.TimesAmounts(in.Flows)
	maturity := times[len(times)-1]

	var out Result
	warn := func(metric string, err error) {
		logger.Warn("analytics metric failed",
			zap.String("metric", metric),
			zap.Error(err))
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", metric, err))
	}
	diag := func(metric string, res numerics.Result) {
		if res.Converged {
			return
		}
		logger.Warn("solver did not converge, using best estimate",
			zap.String("metric", metric),
			zap.Int("iterations", res.Iterations),
			zap.String("diagnostic", res.Diagnostic))
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", metric, res.Diagnostic))
	}

	ytmOK := false
	if res, err := SolveYTM(in.DirtyPrice, times, amounts, in.Compounding, in.Config); err != nil {
		warn("ytm", err)
	} else {
		diag("ytm", res)
		out.YTM = res.Root
		out.GSpread = GSpread(res.Root, maturity, in.Curve)
		ytmOK = true
	}

	spreadOK := false
	if res, err := SolveZSpread(in.DirtyPrice, times, amounts, in.Curve, in.Compounding, in.Config); err != nil {
		warn("z_spread", err)
	} else {
		diag("z_spread", res)
		out.ZSpread = res.Root
		spreadOK = true
	}

	if ed, err := EffectiveDuration(times, amounts, in.Curve, in.Compounding, in.Bump); err != nil {
		warn("effective_duration", err)
	} else {
		out.EffectiveDuration = ed
		if ytmOK {
			out.ModifiedDuration = ModifiedDuration(ed, out.YTM, in.Compounding)
		}
	}

	if ytmOK {
		if mac, err := MacaulayDuration(times, amounts, out.YTM, in.Compounding); err != nil {
			warn("macaulay_duration", err)
		} else {
			out.MacaulayDuration = mac
		}
	}

	if cx, err := Convexity(times, amounts, in.Curve, in.Compounding, in.Bump); err != nil {
		warn("convexity", err)
	} else {
		out.Convexity = cx
	}

	if spreadOK {
		if sd, err := SpreadDuration(times, amounts, in.Curve, out.ZSpread, in.Compounding, in.Bump); err != nil {
			warn("spread_duration", err)
		} else {
			out.SpreadDuration = sd
		}
	}

	if krd, err := KeyRateDurations(times, amounts, in.Curve, in.Compounding, in.Bump); err != nil {
		warn("key_rate_durations", err)
	} else {
		out.KeyRateDurations = krd
	}

	if call, ok := NextCall(in.Calls, in.Valuation); ok {
		if res, err := OAS(in.Flows, in.Valuation, in.Curve, in.DayBasis, in.DirtyPrice, call, in.Compounding, in.Config); err != nil {
			warn("oas", err)
		} else {
			diag("oas", res)
			oas := res.Root
			out.OAS = &oas
		}
	}

	return out, nil
}

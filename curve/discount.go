package curve

import (
	"fmt"
	"math"
	"strings"
)

// Compounding selects the convention mapping a rate and a time to a discount
// factor.
type Compounding string

const (
	Annual     Compounding = "annual"
	Semiannual Compounding = "semiannual"
	Quarterly  Compounding = "quarterly"
	Monthly    Compounding = "monthly"
	Continuous Compounding = "continuous"
)

// ParseCompounding maps a request string to a Compounding value.
func ParseCompounding(s string) (Compounding, error) {
	switch Compounding(strings.ToLower(strings.TrimSpace(s))) {
	case Annual:
		return Annual, nil
	case Semiannual:
		return Semiannual, nil
	case Quarterly:
		return Quarterly, nil
	case Monthly:
		return Monthly, nil
	case Continuous:
		return Continuous, nil
	default:
		return "", fmt.Errorf("curve: unknown compounding %q", s)
	}
}

// Frequency returns payments per year for periodic conventions and 0 for
// continuous.
func (c Compounding) Frequency() int {
	switch c {
	case Annual:
		return 1
	case Semiannual:
		return 2
	case Quarterly:
		return 4
	case Monthly:
		return 12
	default:
		return 0
	}
}

// DiscountFactor converts a rate and a time in years into a discount factor
// under the given convention:
//
//	periodic:   (1 + r/f)^(-f t)
//	continuous: exp(-r t)
func DiscountFactor(rate, t float64, comp Compounding) float64 {
	if f := comp.Frequency(); f > 0 {
		return math.Pow(1+rate/float64(f), -float64(f)*t)
	}
	return math.Exp(-rate * t)
}

// PV present-values a cashflow stream against the curve, with an optional
// parallel spread added to every interpolated rate. This is the single
// pricing primitive every solver in the bond package reduces to.
func PV(times, amounts []float64, zc Curve, spread float64, comp Compounding) float64 {
	pv := 0.0
	for i, t := range times {
		pv += amounts[i] * DiscountFactor(zc.RateAt(t)+spread, t, comp)
	}
	return pv
}

// Package config defines the valuation request structures and loads them
// from YAML files.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/spreadomatic/core/bond"
	"github.com/spreadomatic/core/calendar"
	"github.com/spreadomatic/core/curve"
	"github.com/spreadomatic/core/instruments/bonds"
	"github.com/spreadomatic/core/numerics"
	"github.com/spreadomatic/core/schedule"
	"github.com/spreadomatic/core/utils"
)

// Configuration holds one full valuation request.
type Configuration struct {
	ValuationDate string
	Compounding   string
	DayBasis      string
	Curve         CurvePoints
	Bond          Bond
	Solver        Solver
}

// CurvePoints holds the zero curve as parallel knot slices.
type CurvePoints struct {
	Times []float64
	Rates []float64
}

// Bond describes the instrument. Either explicit Cashflows rows or the
// schedule fields (issue/first-coupon/maturity/frequency) must be given;
// explicit rows take precedence.
type Bond struct {
	DirtyPrice float64
	Notional   float64
	CouponRate float64

	IssueDate       string
	FirstCouponDate string
	MaturityDate    string
	Frequency       int
	// DateConvention is the business-day roll for generated schedules.
	DateConvention string
	Holidays       []string

	Cashflows []CashflowRow
	Calls     []Call
}

// CashflowRow is one explicit cashflow with amounts as decimal strings,
// matching the minor-unit feed format.
type CashflowRow struct {
	Date      string
	Coupon    string
	Principal string
}

// Call is one entry of the call schedule.
type Call struct {
	Date  string
	Price float64
}

// Solver carries optional root-finder overrides; zero fields keep the
// defaults.
type Solver struct {
	Tolerance     float64
	MaxIterations int
	Bump          float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// BuildInput turns the loaded configuration into an analytics input: dates
// and enums are parsed, the curve is built, and cashflows come from either
// the explicit rows or a generated schedule.
func (conf *Configuration) BuildInput() (bond.Input, error) {
	valuation, err := utils.ParseDate(conf.ValuationDate)
	if err != nil {
		return bond.Input{}, fmt.Errorf("valuationDate: %w", err)
	}

	comp, err := curve.ParseCompounding(conf.Compounding)
	if err != nil {
		return bond.Input{}, err
	}

	basis, err := utils.ParseDayBasis(conf.DayBasis)
	if err != nil {
		return bond.Input{}, err
	}

	zc, err := curve.New(conf.Curve.Times, conf.Curve.Rates)
	if err != nil {
		return bond.Input{}, err
	}

	flows, err := conf.buildFlows(valuation, basis)
	if err != nil {
		return bond.Input{}, err
	}

	calls := make([]bond.CallEntry, 0, len(conf.Bond.Calls))
	for _, c := range conf.Bond.Calls {
		d, err := utils.ParseDate(c.Date)
		if err != nil {
			return bond.Input{}, fmt.Errorf("call date: %w", err)
		}
		calls = append(calls, bond.CallEntry{Date: d, Price: c.Price})
	}

	cfg := numerics.DefaultConfig()
	if conf.Solver.Tolerance > 0 {
		cfg.Tolerance = conf.Solver.Tolerance
	}
	if conf.Solver.MaxIterations > 0 {
		cfg.MaxIterations = conf.Solver.MaxIterations
	}

	return bond.Input{
		DirtyPrice:  conf.Bond.DirtyPrice,
		Flows:       flows,
		Curve:       zc,
		Compounding: comp,
		DayBasis:    basis,
		Valuation:   valuation,
		Calls:       calls,
		Config:      cfg,
		Bump:        conf.Solver.Bump,
	}, nil
}

func (conf *Configuration) buildFlows(valuation time.Time, basis utils.DayBasis) ([]schedule.Cashflow, error) {
	if len(conf.Bond.Cashflows) > 0 {
		feed := make([]bonds.CashflowCents, 0, len(conf.Bond.Cashflows))
		for _, row := range conf.Bond.Cashflows {
			d, err := utils.ParseDate(row.Date)
			if err != nil {
				return nil, fmt.Errorf("cashflow date: %w", err)
			}
			coupon, err := parseOptionalCents(row.Coupon)
			if err != nil {
				return nil, fmt.Errorf("cashflow coupon: %w", err)
			}
			principal, err := parseOptionalCents(row.Principal)
			if err != nil {
				return nil, fmt.Errorf("cashflow principal: %w", err)
			}
			feed = append(feed, bonds.CashflowCents{Date: d, CouponCents: coupon, PrincipalCents: principal})
		}
		flows := bonds.ToCashflows(feed, valuation, basis)
		if len(flows) == 0 {
			return nil, fmt.Errorf("no cashflows after valuation date %s", conf.ValuationDate)
		}
		return flows, nil
	}

	issue, err := utils.ParseDate(conf.Bond.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("issueDate: %w", err)
	}
	first, err := utils.ParseDate(conf.Bond.FirstCouponDate)
	if err != nil {
		return nil, fmt.Errorf("firstCouponDate: %w", err)
	}
	maturity, err := utils.ParseDate(conf.Bond.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("maturityDate: %w", err)
	}
	conv, err := calendar.ParseConvention(conf.Bond.DateConvention)
	if err != nil {
		return nil, err
	}

	cal := calendar.Weekends()
	for _, h := range conf.Bond.Holidays {
		d, err := utils.ParseDate(h)
		if err != nil {
			return nil, fmt.Errorf("holiday: %w", err)
		}
		cal = cal.WithHolidays(d)
	}

	notional := conf.Bond.Notional
	if notional == 0 {
		notional = 100
	}

	terms := schedule.Terms{
		IssueDate:       issue,
		FirstCouponDate: first,
		MaturityDate:    maturity,
		Frequency:       conf.Bond.Frequency,
		DayBasis:        basis,
	}
	return schedule.Generate(terms, valuation, notional, conf.Bond.CouponRate, cal, conv)
}

func parseOptionalCents(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return bonds.ParseCents(s)
}

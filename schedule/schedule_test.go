package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadomatic/core/calendar"
	"github.com/spreadomatic/core/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func semiannualTerms() Terms {
	return Terms{
		IssueDate:       date(2023, 1, 15),
		FirstCouponDate: date(2023, 7, 15),
		MaturityDate:    date(2028, 1, 15),
		Frequency:       2,
		DayBasis:        utils.ActAct,
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	valuation := date(2024, 1, 20)
	flows, err := Generate(semiannualTerms(), valuation, 100, 0.05, calendar.Weekends(), calendar.Unadjusted)
	require.NoError(t, err)

	// Jul 2024 through Jan 2028: 8 remaining payments.
	require.Len(t, flows, 8)

	for i, cf := range flows {
		assert.True(t, cf.Date.After(valuation), "cashflow %d not after valuation", i)
		assert.Greater(t, cf.Time, 0.0)
		assert.InDelta(t, 2.5, cf.Coupon, 1e-12)
		if i > 0 {
			assert.True(t, flows[i-1].Date.Before(cf.Date), "dates not ascending at %d", i)
			assert.Less(t, flows[i-1].Time, cf.Time)
		}
	}

	last := flows[len(flows)-1]
	assert.Equal(t, date(2028, 1, 15), last.Date)
	assert.InDelta(t, 100.0, last.Principal, 1e-12)
	assert.InDelta(t, 102.5, last.Amount(), 1e-12)

	// Intermediate payments carry no principal.
	for _, cf := range flows[:len(flows)-1] {
		assert.Zero(t, cf.Principal)
	}
}

func TestGenerateBusinessDayAdjustment(t *testing.T) {
	t.Parallel()

	// First coupon lands on Saturday June 15 2024; Modified Following moves
	// the payment to Monday the 17th.
	terms := Terms{
		FirstCouponDate: date(2024, 6, 15),
		MaturityDate:    date(2026, 6, 15),
		Frequency:       2,
		DayBasis:        utils.Act365F,
	}
	flows, err := Generate(terms, date(2024, 1, 2), 100, 0.04, calendar.Weekends(), calendar.ModifiedFollowing)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 17), flows[0].Date)
}

func TestGenerateValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Terms)
	}{
		{"bad frequency", func(tm *Terms) { tm.Frequency = 5 }},
		{"zero frequency", func(tm *Terms) { tm.Frequency = 0 }},
		{"first coupon after maturity", func(tm *Terms) { tm.FirstCouponDate = date(2030, 1, 1) }},
		{"issue after first coupon", func(tm *Terms) { tm.IssueDate = date(2024, 1, 1) }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			terms := semiannualTerms()
			tc.mutate(&terms)
			_, err := Generate(terms, date(2024, 1, 20), 100, 0.05, calendar.Weekends(), calendar.Unadjusted)
			require.Error(t, err)
		})
	}

	_, err := Generate(semiannualTerms(), date(2028, 1, 15), 100, 0.05, calendar.Weekends(), calendar.Unadjusted)
	require.Error(t, err, "valuation at maturity leaves no cashflows")

	_, err = Generate(semiannualTerms(), date(2024, 1, 20), 0, 0.05, calendar.Weekends(), calendar.Unadjusted)
	require.Error(t, err, "zero notional")
}

func TestGenerateZeroCoupon(t *testing.T) {
	t.Parallel()

	terms := Terms{
		FirstCouponDate: date(2027, 3, 1),
		MaturityDate:    date(2027, 3, 1),
		Frequency:       1,
		DayBasis:        utils.Act365F,
	}
	flows, err := Generate(terms, date(2024, 3, 1), 100, 0, calendar.Weekends(), calendar.Unadjusted)
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Zero(t, flows[0].Coupon)
	assert.InDelta(t, 100.0, flows[0].Amount(), 1e-12)
}

func TestTimesAmounts(t *testing.T) {
	t.Parallel()

	flows := []Cashflow{
		{Time: 0.5, Coupon: 2.5},
		{Time: 1.0, Coupon: 2.5, Principal: 100},
	}
	times, amounts := TimesAmounts(flows)
	assert.Equal(t, []float64{0.5, 1.0}, times)
	assert.Equal(t, []float64{2.5, 102.5}, amounts)
}

func TestAccruedInterest(t *testing.T) {
	t.Parallel()

	terms := semiannualTerms()

	// Mid-period: Jan 15 2024 to Jul 15 2024 is 182 days; 91 days in is half
	// a coupon.
	accrued, err := AccruedInterest(terms, date(2024, 4, 15), 100, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 2.5*91.0/182.0, accrued, 1e-9)

	// On a coupon date nothing has accrued.
	accrued, err = AccruedInterest(terms, date(2024, 1, 15), 100, 0.05)
	require.NoError(t, err)
	assert.Zero(t, accrued)
}

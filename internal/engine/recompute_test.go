package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

func TestRecompute_Demo(t *testing.T) {
	a, err := Recompute(DemoProfile(), DefaultBenchmarks())
	require.NoError(t, err)

	assert.Equal(t, domain.IndustryOilGas, a.Profile.Industry)
	assert.InDelta(t, 510_000, a.Metrics.NWC, 1e-6)
	require.NotNil(t, a.Liquidity.CurrentRatio)
	require.NotNil(t, a.Valuation)
	require.NotNil(t, a.Growth.SGR)
	assert.Equal(t, 78, a.Scorecard.TotalScore)
	assert.Len(t, a.Benchmark.Comparisons, 4)
	assert.Equal(t, "Focus on DSO (collections)", a.Insights.MainLever.Title)
	assert.InDelta(t, 76_500, a.Growth.Projection.ExtraNWC, 1e-6)
}

func TestRecompute_NoRetainedState(t *testing.T) {
	first, err := Recompute(DemoProfile(), DefaultBenchmarks())
	require.NoError(t, err)

	other := DemoProfile()
	other.Sales = 10
	_, err = Recompute(other, DefaultBenchmarks())
	require.NoError(t, err)

	again, err := Recompute(DemoProfile(), DefaultBenchmarks())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestRecompute_Errors(t *testing.T) {
	p := DemoProfile()
	p.Industry = "mining"
	_, err := Recompute(p, DefaultBenchmarks())
	assert.True(t, errors.Is(err, domain.ErrUnknownIndustry))

	p = DemoProfile()
	p.Sales = 0
	_, err = Recompute(p, DefaultBenchmarks())
	var inputErr *domain.InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestRecompute_RejectsPlannedGrowthBelowMinusHundred(t *testing.T) {
	p := DemoProfile()
	p.PlannedGrowth = -150
	a, err := Recompute(p, DefaultBenchmarks())
	assert.Nil(t, a)
	var inputErr *domain.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.True(t, inputErr.HasField("planned_growth"))
}

func TestRecompute_ValuationNotApplicable(t *testing.T) {
	p := DemoProfile()
	p.WACC = 0
	a, err := Recompute(p, DefaultBenchmarks())
	require.NoError(t, err)
	assert.Nil(t, a.Valuation)
}

func TestWithDefaults(t *testing.T) {
	p := WithDefaults(domain.InputProfile{Currency: " eur "}, domain.IndustryRetail)
	assert.Equal(t, "Unnamed company", p.CompanyName)
	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, domain.IndustryRetail, p.Industry)

	kept := WithDefaults(domain.InputProfile{CompanyName: "Acme", Industry: domain.IndustryTech}, domain.IndustryRetail)
	assert.Equal(t, "Acme", kept.CompanyName)
	assert.Equal(t, "USD", kept.Currency)
	assert.Equal(t, domain.IndustryTech, kept.Industry)
}

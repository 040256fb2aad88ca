package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

func demoMetrics(t *testing.T) domain.ComputedMetrics {
	t.Helper()
	m, err := ComputeMetrics(DemoProfile())
	require.NoError(t, err)
	return *m
}

func TestSustainableGrowthRate(t *testing.T) {
	sgr := SustainableGrowthRate(demoMetrics(t))
	require.NotNil(t, sgr)
	assert.InDelta(t, 100/1.204-20, *sgr, 1e-9)

	assert.Nil(t, SustainableGrowthRate(domain.ComputedMetrics{Sales: 0, NWC: 100}))

	heavy := SustainableGrowthRate(domain.ComputedMetrics{Sales: 100, NWC: 150})
	require.NotNil(t, heavy)
	assert.Zero(t, *heavy)

	negative := SustainableGrowthRate(domain.ComputedMetrics{Sales: 100, NWC: -10})
	require.NotNil(t, negative)
	assert.Zero(t, *negative)
}

func TestProjectGrowth(t *testing.T) {
	m := demoMetrics(t)

	flat := ProjectGrowth(m, 0)
	assert.InDelta(t, m.NWC, flat.NWCFuture, 1e-6)
	assert.InDelta(t, 0, flat.ExtraNWC, 1e-6)

	p := ProjectGrowth(m, 0.15)
	assert.InDelta(t, 2_875_000, p.SalesFuture, 1e-6)
	assert.InDelta(t, 1_725_000, p.COGSFuture, 1e-6)
	assert.InDelta(t, 552_000, p.CXCFuture, 1e-6)
	assert.InDelta(t, 586_500, p.NWCFuture, 1e-6)
	assert.InDelta(t, 76_500, p.ExtraNWC, 1e-6)
}

func TestGrowthNarrative(t *testing.T) {
	m := demoMetrics(t)

	within := Growth(m, 15, "USD")
	assert.Contains(t, within.Narrative, "Your planned growth of 15.0% is within your sustainable capacity (63.1%)")
	assert.Contains(t, within.Narrative, "USD 76,500")

	above := Growth(m, 80, "USD")
	assert.Contains(t, above.Narrative, "exceeds your sustainable capacity (63.1%) by 16.9%")

	none := Growth(m, 0, "USD")
	assert.Contains(t, none.Narrative, "No planned growth")

	noSales := Growth(domain.ComputedMetrics{}, 10, "USD")
	assert.Nil(t, noSales.SGR)
	assert.NotEmpty(t, noSales.Narrative)
}

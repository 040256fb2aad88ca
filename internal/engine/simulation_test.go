package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

func TestSimulate_Idempotent(t *testing.T) {
	m := demoMetrics(t)
	in := SimulationInputFrom(m, m.DSO, m.DIO, m.DPO)

	res := Simulate(in)
	assert.InDelta(t, 0, res.CashFreed, 1e-6)
	assert.InDelta(t, res.CCCActual, res.CCCNew, 1e-9)
	assert.InDelta(t, m.NWC, res.NWCActual, 1e-6)
	assert.Equal(t, res, Simulate(in))

	summary := SimulateSummary(in, "USD")
	assert.Contains(t, summary.Narrative, "No relevant change")
}

func TestSimulate_Improvement(t *testing.T) {
	m := demoMetrics(t)
	in := SimulationInputFrom(m, 60, m.DIO, m.DPO)

	res := Simulate(in)
	assert.InDelta(t, m.CCC-res.CCCNew, m.DSO-60, 1e-9)
	assert.InDelta(t, (m.DSO-60)*m.Sales/365, res.CashFreed, 1e-6)
	assert.InDelta(t, res.NWCActual-res.NWCNew, res.CashFreed, 1e-9)

	summary := SimulateSummary(in, "USD")
	assert.InDelta(t, m.DSO-60, summary.CCCDelta, 1e-9)
	require.NotNil(t, summary.CashFreedDays)
	assert.InDelta(t, m.DSO-60, *summary.CashFreedDays, 1e-6)
	assert.Contains(t, summary.Narrative, "The CCC improves by 10.1 days.")
	assert.Contains(t, summary.Narrative, "equivalent to 10.1 days of sales")
}

func TestSimulate_Worsening(t *testing.T) {
	m := demoMetrics(t)
	summary := SimulateSummary(SimulationInputFrom(m, m.DSO, m.DIO, m.DPO-20), "USD")

	assert.Less(t, summary.CashFreed, 0.0)
	assert.Contains(t, summary.Narrative, "The CCC worsens by 20.0 days.")
}

func TestSimulate_NoSales(t *testing.T) {
	summary := SimulateSummary(SimulationInputFrom(domain.ComputedMetrics{}, 10, 10, 10), "USD")
	assert.Nil(t, summary.CashFreedDays)
	assert.Zero(t, summary.CashFreed)
}

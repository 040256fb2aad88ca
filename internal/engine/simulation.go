package engine

import (
	"math"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// SimulationInput is an actual/hypothetical pair of day triples over the
// same annual base.
type SimulationInput struct {
	Sales     float64
	COGS      float64
	ActualDSO float64
	ActualDIO float64
	ActualDPO float64
	NewDSO    float64
	NewDIO    float64
	NewDPO    float64
}

// SimulationInputFrom starts a simulation from current metrics.
func SimulationInputFrom(m domain.ComputedMetrics, dso, dio, dpo float64) SimulationInput {
	return SimulationInput{
		Sales:     m.Sales,
		COGS:      m.COGS,
		ActualDSO: m.DSO,
		ActualDIO: m.DIO,
		ActualDPO: m.DPO,
		NewDSO:    dso,
		NewDIO:    dio,
		NewDPO:    dpo,
	}
}

// Simulate recomputes CCC and NWC for the hypothetical days. CashFreed is
// positive when the new cycle releases cash.
func Simulate(in SimulationInput) domain.SimulationResult {
	cxc, inv, cxp := BalancesFromDays(in.Sales, in.COGS, in.ActualDSO, in.ActualDIO, in.ActualDPO)
	nwcActual := NWC(cxc, inv, cxp)

	cxc, inv, cxp = BalancesFromDays(in.Sales, in.COGS, in.NewDSO, in.NewDIO, in.NewDPO)
	nwcNew := NWC(cxc, inv, cxp)

	return domain.SimulationResult{
		CCCActual: CCC(in.ActualDSO, in.ActualDIO, in.ActualDPO),
		CCCNew:    CCC(in.NewDSO, in.NewDIO, in.NewDPO),
		NWCActual: nwcActual,
		NWCNew:    nwcNew,
		CashFreed: nwcActual - nwcNew,
	}
}

// SimulateSummary runs Simulate and adds the cycle delta, the cash freed in
// days of sales and a narrative.
func SimulateSummary(in SimulationInput, currency string) domain.SimulationSummary {
	res := Simulate(in)

	var cashDays *float64
	if salesPerDay := in.Sales / DaysPerYear; salesPerDay > 0 && !math.IsInf(salesPerDay, 0) {
		d := res.CashFreed / salesPerDay
		cashDays = &d
	}

	s := domain.SimulationSummary{
		SimulationResult: res,
		DSO:              in.NewDSO,
		DIO:              in.NewDIO,
		DPO:              in.NewDPO,
		CCCDelta:         res.CCCActual - res.CCCNew,
		CashFreedDays:    cashDays,
	}
	s.Narrative = Narrator{Currency: currency}.SimulationNarrative(s)
	return s
}

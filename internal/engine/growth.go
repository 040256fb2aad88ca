package engine

import (
	"math"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// SustainableGrowthRate estimates, in percent, how fast sales can grow while
// funding the extra working capital internally. Nil when sales is 0.
func SustainableGrowthRate(m domain.ComputedMetrics) *float64 {
	if m.Sales == 0 {
		return nil
	}

	sgr := 0.0
	r := m.NWC / m.Sales
	if r > 0 && r < 1 {
		sgr = math.Min(100, math.Max(0, 100/(1+r)-20))
	}
	return &sgr
}

// ProjectGrowth scales sales and cogs by (1+g), g as a fraction, and holds the
// balance ratios constant.
func ProjectGrowth(m domain.ComputedMetrics, g float64) domain.GrowthProjection {
	salesFuture := m.Sales * (1 + g)
	cogsFuture := m.COGS * (1 + g)

	cxc := m.Ratios.RatioCxcVentas * salesFuture
	inv := m.Ratios.RatioInvCogs * cogsFuture
	cxp := m.Ratios.RatioCxpCogs * cogsFuture
	nwc := NWC(cxc, inv, cxp)

	return domain.GrowthProjection{
		GrowthRate:  g,
		SalesFuture: salesFuture,
		COGSFuture:  cogsFuture,
		CXCFuture:   cxc,
		InvFuture:   inv,
		CXPFuture:   cxp,
		NWCFuture:   nwc,
		ExtraNWC:    nwc - m.NWC,
	}
}

// Growth projects the planned growth (percent) and narrates it against the
// sustainable growth rate.
func Growth(m domain.ComputedMetrics, plannedGrowth float64, currency string) domain.GrowthReport {
	projection := ProjectGrowth(m, plannedGrowth/100)
	sgr := SustainableGrowthRate(m)
	return domain.GrowthReport{
		Projection:    projection,
		PlannedGrowth: plannedGrowth,
		SGR:           sgr,
		Narrative:     Narrator{Currency: currency}.GrowthNarrative(projection, plannedGrowth, sgr),
	}
}

package engine

import (
	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// ImprovementDays is the fixed improvement step valued by Valuation.
const ImprovementDays = 5.0

// Valuation values a 5-day improvement in each cycle component as a
// perpetuity of its margin on the cash released. wacc and margin are
// percentages. Nil when wacc is not positive.
func Valuation(m domain.ComputedMetrics, wacc, margin float64) *domain.ValuationImpact {
	if wacc <= 0 {
		return nil
	}

	value := func(annualBase float64) float64 {
		cashFreed := annualBase / DaysPerYear * ImprovementDays
		return cashFreed * (margin / 100) / (wacc / 100)
	}

	dso := value(m.Sales)
	dio := value(m.COGS)
	dpo := value(m.COGS)
	return &domain.ValuationImpact{
		ValueFromDSO: dso,
		ValueFromDIO: dio,
		ValueFromDPO: dpo,
		TotalImpact:  dso + dio + dpo,
	}
}

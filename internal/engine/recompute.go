package engine

import (
	"strings"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

const defaultCompanyName = "Unnamed company"

// WithDefaults fills blank descriptive fields of a profile.
func WithDefaults(p domain.InputProfile, industry domain.Industry) domain.InputProfile {
	if strings.TrimSpace(p.CompanyName) == "" {
		p.CompanyName = defaultCompanyName
	}
	if strings.TrimSpace(p.Currency) == "" {
		p.Currency = defaultCurrency
	}
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if strings.TrimSpace(string(p.Industry)) == "" {
		p.Industry = industry
	}
	return p
}

// Recompute derives every output for a profile. It has no side effects; the
// caller decides what to persist.
func Recompute(p domain.InputProfile, benchmarks *BenchmarkTable) (*domain.Analysis, error) {
	metrics, err := ComputeMetrics(p)
	if err != nil {
		return nil, err
	}

	bench, err := benchmarks.Lookup(p.Industry)
	if err != nil {
		return nil, err
	}
	p.Industry = bench.Key

	liquidity := Liquidity(*metrics)
	narrator := Narrator{Currency: p.Currency}

	return &domain.Analysis{
		Profile:   p,
		Metrics:   *metrics,
		Liquidity: liquidity,
		Benchmark: Benchmark(*metrics, bench),
		Scorecard: Scorecard(*metrics, bench),
		Growth:    Growth(*metrics, p.PlannedGrowth, p.Currency),
		Valuation: Valuation(*metrics, p.WACC, p.EBITDAMargin),
		Insights:  narrator.Insights(*metrics, liquidity),
	}, nil
}

package handlers

import "github.com/andresuchdata/wcanalyzer/internal/domain"

var severityColors = map[domain.Severity]string{
	domain.SeverityExcellent:  "#16a34a",
	domain.SeverityGood:       "#22c55e",
	domain.SeverityAcceptable: "#f59e0b",
	domain.SeverityImprove:    "#f97316",
	domain.SeverityCritical:   "#dc2626",
}

var verdictColors = map[domain.Verdict]string{
	domain.VerdictGood:    "#16a34a",
	domain.VerdictWarn:    "#f59e0b",
	domain.VerdictBad:     "#dc2626",
	domain.VerdictNeutral: "#6b7280",
}

const fallbackColor = "#6b7280"

func severityColor(s domain.Severity) string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return fallbackColor
}

func verdictColor(v domain.Verdict) string {
	if c, ok := verdictColors[v]; ok {
		return c
	}
	return fallbackColor
}

// AnalysisColors are display colours for the tiers of one analysis.
type AnalysisColors struct {
	Total      string            `json:"total"`
	CCC        string            `json:"ccc"`
	Efficiency string            `json:"efficiency"`
	Liquidity  string            `json:"liquidity"`
	Benchmarks map[string]string `json:"benchmarks"`
	Insights   map[string]string `json:"insights"`
}

// AnalysisView is an analysis decorated with its display colours.
type AnalysisView struct {
	*domain.Analysis
	Colors AnalysisColors `json:"colors"`
}

func presentAnalysis(a *domain.Analysis) AnalysisView {
	colors := AnalysisColors{
		Total:      severityColor(a.Scorecard.TotalTier.Severity),
		CCC:        severityColor(a.Scorecard.CCCTier.Severity),
		Efficiency: severityColor(a.Scorecard.EfficiencyTier.Severity),
		Liquidity:  severityColor(a.Scorecard.LiquidityTier.Severity),
		Benchmarks: make(map[string]string, len(a.Benchmark.Comparisons)),
		Insights: map[string]string{
			"ccc":       verdictColor(a.Insights.CCC.Type),
			"nwc_sales": verdictColor(a.Insights.NWCSales.Type),
			"liquidity": verdictColor(a.Insights.Liquidity.Type),
		},
	}
	for _, cmp := range a.Benchmark.Comparisons {
		colors.Benchmarks[cmp.Metric] = verdictColor(cmp.Type)
	}
	return AnalysisView{Analysis: a, Colors: colors}
}

package domain

import "strings"

// Industry identifies a benchmark table entry.
type Industry string

const (
	IndustryOilGas        Industry = "oilgas"
	IndustryManufacturing Industry = "manufacturing"
	IndustryDistribution  Industry = "distribution"
	IndustryRetail        Industry = "retail"
	IndustryTech          Industry = "tech"
)

// Industries lists the closed set of supported industries in display order.
var Industries = []Industry{
	IndustryOilGas,
	IndustryManufacturing,
	IndustryDistribution,
	IndustryRetail,
	IndustryTech,
}

// ParseIndustry returns the industry for a key (case-insensitive).
func ParseIndustry(key string) (Industry, bool) {
	k := Industry(strings.ToLower(strings.TrimSpace(key)))
	for _, ind := range Industries {
		if ind == k {
			return ind, true
		}
	}
	return "", false
}

// Periodicity is the reporting period of sales and cogs.
type Periodicity string

const (
	PeriodAnnual    Periodicity = "annual"
	PeriodQuarterly Periodicity = "quarterly"
	PeriodMonthly   Periodicity = "monthly"
)

var periodFactors = map[Periodicity]float64{
	PeriodAnnual:    1,
	PeriodQuarterly: 4,
	PeriodMonthly:   12,
}

// AnnualizationFactor returns the multiplier that turns one period into a year.
// An empty periodicity is treated as annual.
func (p Periodicity) AnnualizationFactor() (float64, bool) {
	if p == "" {
		return 1, true
	}
	f, ok := periodFactors[Periodicity(strings.ToLower(string(p)))]
	return f, ok
}

// InputMode selects whether balances or days are supplied.
type InputMode string

const (
	ModeAdvanced InputMode = "advanced"
	ModeBasic    InputMode = "basic"
)

// Normalize returns the canonical mode. Empty means advanced.
func (m InputMode) Normalize() (InputMode, bool) {
	switch InputMode(strings.ToLower(strings.TrimSpace(string(m)))) {
	case "", ModeAdvanced:
		return ModeAdvanced, true
	case ModeBasic:
		return ModeBasic, true
	}
	return m, false
}

// Verdict is the abstract good/warn/bad tag of a classification.
type Verdict string

const (
	VerdictGood    Verdict = "good"
	VerdictWarn    Verdict = "warn"
	VerdictBad     Verdict = "bad"
	VerdictNeutral Verdict = "neutral"
)

// Severity is the renderer-agnostic token of a score tier.
type Severity string

const (
	SeverityExcellent  Severity = "excellent"
	SeverityGood       Severity = "good"
	SeverityAcceptable Severity = "acceptable"
	SeverityImprove    Severity = "improve"
	SeverityCritical   Severity = "critical"
)

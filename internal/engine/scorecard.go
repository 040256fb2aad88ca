package engine

import (
	"math"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// Score computes the composite working-capital health score.
func Score(m domain.ComputedMetrics, bench domain.IndustryBenchmark) domain.ScoreCard {
	// 1. CCC position within the industry range
	cccScore := int(math.Round(Compare(m.CCC, bench.CCC).Score))

	// 2. Capital intensity
	efficiency := efficiencyScore(m.Ratios.RatioNwcVentas)

	// 3. Current ratio
	liquidity := liquidityScore(Liquidity(m).CurrentRatio)

	total := int(math.Round(float64(cccScore+efficiency+liquidity) / 3))

	return domain.ScoreCard{
		CCCScore:        cccScore,
		EfficiencyScore: efficiency,
		LiquidityScore:  liquidity,
		TotalScore:      total,
	}
}

func efficiencyScore(nwcToSales float64) int {
	switch {
	case nwcToSales > 0.35:
		return 40
	case nwcToSales > 0.25:
		return 60
	case nwcToSales > 0.15:
		return 75
	case nwcToSales > 0.10:
		return 85
	default:
		return 100
	}
}

// liquidityScore peaks between 2 and 3; above 3 idle assets are penalized.
func liquidityScore(current *float64) int {
	if current == nil {
		return 50
	}
	switch cr := *current; {
	case cr < 1:
		return 30
	case cr < 1.5:
		return 60
	case cr < 2:
		return 80
	case cr < 3:
		return 95
	default:
		return 75
	}
}

// ScoreLabel maps a score to its tier.
func ScoreLabel(score int) domain.ScoreTier {
	switch {
	case score >= 85:
		return domain.ScoreTier{Label: "Excellent", Severity: domain.SeverityExcellent}
	case score >= 70:
		return domain.ScoreTier{Label: "Good", Severity: domain.SeverityGood}
	case score >= 50:
		return domain.ScoreTier{Label: "Acceptable", Severity: domain.SeverityAcceptable}
	case score >= 30:
		return domain.ScoreTier{Label: "Needs improvement", Severity: domain.SeverityImprove}
	default:
		return domain.ScoreTier{Label: "Critical", Severity: domain.SeverityCritical}
	}
}

// Scorecard builds the full scorecard report including tiers and narrative.
func Scorecard(m domain.ComputedMetrics, bench domain.IndustryBenchmark) domain.ScorecardReport {
	card := Score(m, bench)
	return domain.ScorecardReport{
		ScoreCard:      card,
		CCCTier:        ScoreLabel(card.CCCScore),
		EfficiencyTier: ScoreLabel(card.EfficiencyScore),
		LiquidityTier:  ScoreLabel(card.LiquidityScore),
		TotalTier:      ScoreLabel(card.TotalScore),
		Narrative:      Narrator{}.ScorecardNarrative(card),
	}
}

package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// Narrator turns engine outputs into plain-language text. It holds only
// formatting preferences.
type Narrator struct {
	Currency string
}

// ClassifyCCC places the cash conversion cycle on a five-tier gauge.
func ClassifyCCC(ccc float64) domain.Classification {
	switch {
	case ccc <= 0:
		return domain.Classification{Label: "Very defensive", Type: domain.VerdictGood, Position: 5}
	case ccc <= 40:
		return domain.Classification{Label: "Healthy", Type: domain.VerdictGood, Position: 25}
	case ccc <= 80:
		return domain.Classification{Label: "Watch", Type: domain.VerdictWarn, Position: 55}
	case ccc <= 150:
		return domain.Classification{Label: "Strained", Type: domain.VerdictBad, Position: 80}
	default:
		return domain.Classification{Label: "Very strained", Type: domain.VerdictBad, Position: 95}
	}
}

// ClassifyNWCSales rates capital intensity from the NWC/sales ratio.
func ClassifyNWCSales(ratio float64) domain.Classification {
	switch {
	case ratio < 0.05:
		return domain.Classification{Label: "Light", Type: domain.VerdictGood}
	case ratio < 0.25:
		return domain.Classification{Label: "Moderate", Type: domain.VerdictWarn}
	default:
		return domain.Classification{Label: "Heavy", Type: domain.VerdictBad}
	}
}

// ClassifyLiquidity returns the liquidity badge and its sentence.
func ClassifyLiquidity(l domain.LiquidityRatios) (domain.Classification, string) {
	if l.CurrentRatio == nil || l.QuickRatio == nil {
		return domain.Classification{Label: "—", Type: domain.VerdictNeutral},
			"Enter cash and other current liabilities to see liquidity ratios."
	}

	text := fmt.Sprintf("Current ratio: %s · Quick ratio: %s. ", FormatRatio(l.CurrentRatio), FormatRatio(l.QuickRatio))
	switch cr := *l.CurrentRatio; {
	case cr < 1:
		return domain.Classification{Label: "Tight", Type: domain.VerdictBad},
			text + "Current liabilities match or exceed current assets."
	case cr < 2:
		return domain.Classification{Label: "Acceptable", Type: domain.VerdictWarn},
			text + "Reasonable liquidity level."
	default:
		return domain.Classification{Label: "Solid", Type: domain.VerdictGood},
			text + "Good capacity to meet short-term obligations."
	}
}

// MainLever picks the component to work on first. Ties resolve in the order
// receivables, inventory, payables.
func MainLever(m domain.ComputedMetrics) domain.Lever {
	if m.Sales <= 0 || m.COGS <= 0 {
		return domain.Lever{
			Title:  "Complete your data",
			Detail: "Enter sales and COGS to find where your biggest lever is.",
		}
	}
	if m.CCC <= 0 {
		return domain.Lever{
			Title:  "Defensive position",
			Detail: "Your CCC is close to zero or negative. You collect and turn inventory quickly.",
		}
	}

	cxc, inv, cxp := math.Abs(m.CXC), math.Abs(m.Inv), math.Abs(m.CXP)
	switch {
	case cxc >= inv && cxc >= cxp:
		return domain.Lever{
			Title:  "Focus on DSO (collections)",
			Detail: "Receivables are the heaviest component. Prioritize collections.",
		}
	case inv >= cxc && inv >= cxp:
		return domain.Lever{
			Title:  "Focus on DIO (inventory)",
			Detail: "Inventory is the largest share. Review turnover and demand.",
		}
	default:
		return domain.Lever{
			Title:  "Focus on DPO (suppliers)",
			Detail: "Negotiating better payment terms can ease cash pressure.",
		}
	}
}

// Insights builds the narrated dashboard for a metrics set.
func (n Narrator) Insights(m domain.ComputedMetrics, l domain.LiquidityRatios) domain.Insights {
	liq, liqText := ClassifyLiquidity(l)
	return domain.Insights{
		CCC:           ClassifyCCC(m.CCC),
		NWCSales:      ClassifyNWCSales(m.Ratios.RatioNwcVentas),
		Liquidity:     liq,
		LiquidityText: liqText,
		MainLever:     MainLever(m),
		Summary:       n.Summary(m),
	}
}

// Summary is the overall paragraph: cycle tier, NWC amount and days of sales,
// and capital intensity.
func (n Narrator) Summary(m domain.ComputedMetrics) string {
	ccc := ClassifyCCC(m.CCC)
	intensity := ClassifyNWCSales(m.Ratios.RatioNwcVentas)

	nwcDays := 0.0
	if salesPerDay := m.Sales / DaysPerYear; salesPerDay != 0 {
		nwcDays = m.NWC / salesPerDay
	}

	parts := []string{
		fmt.Sprintf("Your Cash Conversion Cycle (CCC) is %s days, rated %q.", FormatDays(m.CCC), ccc.Label),
		fmt.Sprintf("You hold %s in operating working capital, equivalent to %s days of sales.",
			FormatMoney(m.NWC, n.Currency), FormatDays(nwcDays)),
		fmt.Sprintf("NWC represents %s of annual sales, a %q profile.",
			FormatPercent(m.Ratios.RatioNwcVentas*100), intensity.Label),
	}
	if m.CCC > 0 {
		parts = append(parts, "Reducing collection or inventory days, or negotiating longer supplier terms, can release significant cash.")
	}
	return strings.Join(parts, " ")
}

// BenchmarkNarrative explains the comparisons in DSO, DIO, DPO, CCC order.
// Moderate results get no clause.
func (n Narrator) BenchmarkNarrative(comparisons []domain.MetricComparison, bench domain.IndustryBenchmark) string {
	var parts []string
	for _, c := range comparisons {
		if clause := benchmarkClause(c); clause != "" {
			parts = append(parts, clause)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Compared with the %s industry: your metrics sit within the typical range.", bench.Name)
	}
	return fmt.Sprintf("Compared with the %s industry: %s.", bench.Name, strings.Join(parts, "; "))
}

func benchmarkClause(c domain.MetricComparison) string {
	days := FormatDays(c.Value)
	switch c.Metric + "/" + string(c.Type) {
	case "DSO/bad":
		return fmt.Sprintf("your DSO of %s days is above the typical range (%g-%g days), meaning slower collections than average",
			days, c.Range.Min, c.Range.Max)
	case "DSO/good":
		return fmt.Sprintf("your DSO of %s days is excellent, within or below the industry range", days)
	case "DIO/bad":
		return fmt.Sprintf("your DIO of %s days exceeds the typical range, suggesting excess inventory or slow turnover", days)
	case "DIO/good":
		return fmt.Sprintf("your DIO of %s days shows good inventory turnover", days)
	case "DPO/bad":
		return fmt.Sprintf("your DPO of %s days is below the typical range (%g-%g days), meaning you pay suppliers faster than peers",
			days, c.Range.Min, c.Range.Max)
	case "DPO/good":
		return fmt.Sprintf("your DPO of %s days makes good use of supplier credit", days)
	case "CCC/bad":
		return fmt.Sprintf("your CCC of %s days is longer than average, tying up more capital than competitors", days)
	case "CCC/good":
		return fmt.Sprintf("your CCC of %s days is competitive or better than the industry average", days)
	}
	return ""
}

// ScorecardNarrative explains the total score.
func (n Narrator) ScorecardNarrative(card domain.ScoreCard) string {
	total := card.TotalScore
	msg := fmt.Sprintf("Your total score is %d/100, rated %q. ", total, ScoreLabel(total).Label)

	switch {
	case total >= 80:
		msg += "Excellent working capital management. Keep these practices and look for marginal optimizations."
	case total >= 60:
		msg += "Solid management with room to improve. Focus on the lowest-scoring areas."
	case total >= 40:
		msg += "There are significant opportunities for improvement. Prioritize the weakest metrics."
	default:
		msg += "Immediate action required. Working capital is limiting your financial flexibility."
	}
	return msg
}

// GrowthNarrative compares planned growth (percent) with the sustainable rate.
func (n Narrator) GrowthNarrative(p domain.GrowthProjection, planned float64, sgr *float64) string {
	if sgr == nil {
		return "Sustainable growth cannot be estimated without sales."
	}

	switch {
	case planned == 0:
		return fmt.Sprintf("No planned growth. Your sustainable growth capacity is approximately %s a year without additional working-capital financing.",
			FormatPercent(*sgr))
	case planned <= *sgr:
		return fmt.Sprintf("Your planned growth of %s is within your sustainable capacity (%s). It requires %s of additional working capital, which you can fund without significant external financing.",
			FormatPercent(planned), FormatPercent(*sgr), FormatMoney(p.ExtraNWC, n.Currency))
	default:
		return fmt.Sprintf("Your planned growth of %s exceeds your sustainable capacity (%s) by %s. It requires %s of additional working capital; you will need extra financing or better working-capital efficiency to reach it.",
			FormatPercent(planned), FormatPercent(*sgr), FormatPercent(planned-*sgr), FormatMoney(p.ExtraNWC, n.Currency))
	}
}

// SimulationNarrative explains a simulation outcome.
func (n Narrator) SimulationNarrative(s domain.SimulationSummary) string {
	var msg string
	switch {
	case math.Abs(s.CCCDelta) < 0.01:
		msg = "No relevant change in the CCC."
	case s.CCCDelta > 0:
		msg = fmt.Sprintf("The CCC improves by %s days.", FormatDays(s.CCCDelta))
	default:
		msg = fmt.Sprintf("The CCC worsens by %s days.", FormatDays(-s.CCCDelta))
	}

	msg += fmt.Sprintf(" Cash freed: %s", FormatMoney(s.CashFreed, n.Currency))
	if s.CashFreedDays != nil {
		msg += fmt.Sprintf(", equivalent to %s days of sales.", FormatDays(*s.CashFreedDays))
	} else {
		msg += "."
	}
	return msg
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
)

func renderAnalysis(w io.Writer, a *domain.Analysis) {
	cur := a.Profile.Currency
	m := a.Metrics

	fmt.Fprintf(w, "%s (%s, %s)\n", a.Profile.CompanyName, a.Benchmark.Name, cur)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DSO\t%s days\n", engine.FormatDays(m.DSO))
	fmt.Fprintf(tw, "DIO\t%s days\n", engine.FormatDays(m.DIO))
	fmt.Fprintf(tw, "DPO\t%s days\n", engine.FormatDays(m.DPO))
	fmt.Fprintf(tw, "CCC\t%s days\t%s\n", engine.FormatDays(m.CCC), a.Insights.CCC.Label)
	fmt.Fprintf(tw, "NWC\t%s\t%s\n", engine.FormatMoney(m.NWC, cur), a.Insights.NWCSales.Label)
	fmt.Fprintf(tw, "Current ratio\t%s\n", engine.FormatRatio(a.Liquidity.CurrentRatio))
	fmt.Fprintf(tw, "Quick ratio\t%s\n", engine.FormatRatio(a.Liquidity.QuickRatio))
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Score %d/100 (%s): CCC %d, efficiency %d, liquidity %d\n",
		a.Scorecard.TotalScore, a.Scorecard.TotalTier.Label,
		a.Scorecard.CCCScore, a.Scorecard.EfficiencyScore, a.Scorecard.LiquidityScore)

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Metric\tValue\tRange\tStatus")
	for _, cmp := range a.Benchmark.Comparisons {
		fmt.Fprintf(tw, "%s\t%s\t%s-%s\t%s\n", cmp.Metric, engine.FormatDays(cmp.Value),
			engine.FormatDays(cmp.Range.Min), engine.FormatDays(cmp.Range.Max), cmp.Status)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Insights.Summary)
	fmt.Fprintf(w, "Main lever: %s. %s\n", a.Insights.MainLever.Title, a.Insights.MainLever.Detail)
	fmt.Fprintln(w, a.Benchmark.Narrative)
	fmt.Fprintln(w, a.Growth.Narrative)
	if v := a.Valuation; v != nil {
		fmt.Fprintf(w, "Value of a %.0f-day improvement in each component: %s\n",
			engine.ImprovementDays, engine.FormatMoney(v.TotalImpact, cur))
	}
}

func renderSimulation(w io.Writer, company string, s domain.SimulationSummary, currency string) {
	fmt.Fprintf(w, "Simulation for %s\n", company)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tActual\tSimulated")
	fmt.Fprintf(tw, "CCC (days)\t%s\t%s\n", engine.FormatDays(s.CCCActual), engine.FormatDays(s.CCCNew))
	fmt.Fprintf(tw, "NWC\t%s\t%s\n", engine.FormatMoney(s.NWCActual, currency), engine.FormatMoney(s.NWCNew, currency))
	tw.Flush()

	fmt.Fprintln(w, s.Narrative)
}

func renderHistory(w io.Writer, items []domain.AnalysisSummary) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No analyses recorded.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCompany\tIndustry\tCCC\tNWC\tScore\tRecorded")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			it.ID, it.CompanyName, it.Industry,
			engine.FormatDays(it.CCC), humanize.CommafWithDigits(it.NWC, 0),
			it.TotalScore, humanize.Time(it.CreatedAt))
	}
	tw.Flush()
}

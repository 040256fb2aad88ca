// Package engine is the working-capital analytics engine. Every function is a
// pure mapping from explicit inputs to an output record; nothing is retained
// between calls.
package engine

import (
	"math"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// DaysPerYear is the day-count convention for all cycle metrics.
const DaysPerYear = 365.0

// DSO returns days sales outstanding, 0 when annual sales is 0.
func DSO(receivables, annualSales float64) float64 {
	if annualSales == 0 {
		return 0
	}
	return receivables / annualSales * DaysPerYear
}

// DIO returns days inventory outstanding, 0 when annual cogs is 0.
func DIO(inventory, annualCOGS float64) float64 {
	if annualCOGS == 0 {
		return 0
	}
	return inventory / annualCOGS * DaysPerYear
}

// DPO returns days payables outstanding, 0 when annual cogs is 0.
func DPO(payables, annualCOGS float64) float64 {
	if annualCOGS == 0 {
		return 0
	}
	return payables / annualCOGS * DaysPerYear
}

// CCC is the cash conversion cycle. It may be negative.
func CCC(dso, dio, dpo float64) float64 {
	return dso + dio - dpo
}

// NWC is operating net working capital. It may be negative.
func NWC(receivables, inventory, payables float64) float64 {
	return receivables + inventory - payables
}

// BalancesFromDays back-derives balances from cycle days on a 365-day year.
func BalancesFromDays(annualSales, annualCOGS, dso, dio, dpo float64) (cxc, inv, cxp float64) {
	salesPerDay := annualSales / DaysPerYear
	cogsPerDay := annualCOGS / DaysPerYear
	return salesPerDay * dso, cogsPerDay * dio, cogsPerDay * dpo
}

// ComputeRatios returns the balance ratios, each 0 when its base is 0.
func ComputeRatios(cxc, inv, cxp, sales, cogs float64) domain.Ratios {
	nwc := NWC(cxc, inv, cxp)
	return domain.Ratios{
		RatioCxcVentas: safeDiv(cxc, sales),
		RatioInvCogs:   safeDiv(inv, cogs),
		RatioCxpCogs:   safeDiv(cxp, cogs),
		RatioNwcVentas: safeDiv(nwc, sales),
	}
}

// ValidateProfile checks a profile without computing anything. All rejected
// fields are reported together.
func ValidateProfile(p domain.InputProfile) error {
	verr := &domain.InputError{}

	numbers := []struct {
		field string
		value float64
	}{
		{"sales", p.Sales},
		{"cogs", p.COGS},
		{"receivables", p.Receivables},
		{"inventory", p.Inventory},
		{"payables", p.Payables},
		{"basic_dso", p.BasicDSO},
		{"basic_dio", p.BasicDIO},
		{"basic_dpo", p.BasicDPO},
		{"cash", p.Cash},
		{"other_liabilities", p.OtherLiabilities},
		{"planned_growth", p.PlannedGrowth},
		{"wacc", p.WACC},
		{"ebitda_margin", p.EBITDAMargin},
	}
	nonFinite := make(map[string]bool)
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			verr.Add(n.field, "must be a finite number")
			nonFinite[n.field] = true
		}
	}
	check := func(field string, bad bool, message string) {
		if !nonFinite[field] && bad {
			verr.Add(field, message)
		}
	}

	factor, ok := p.Periodicity.AnnualizationFactor()
	if !ok {
		verr.Add("periodicity", "must be annual, quarterly or monthly")
		factor = 1
	}
	mode, ok := p.Mode.Normalize()
	if !ok {
		verr.Add("mode", "must be advanced or basic")
	}

	check("sales", p.Sales*factor <= 0, "must be greater than 0")
	check("cogs", p.COGS*factor < 0, "must be 0 or greater")
	check("planned_growth", p.PlannedGrowth <= -100, "must be greater than -100")

	switch mode {
	case domain.ModeAdvanced:
		check("receivables", p.Receivables < 0, "must be 0 or greater")
		check("inventory", p.Inventory < 0, "must be 0 or greater")
		check("payables", p.Payables < 0, "must be 0 or greater")
	case domain.ModeBasic:
		check("basic_dso", p.BasicDSO <= 0, "must be greater than 0")
		check("basic_dio", p.BasicDIO < 0, "must be 0 or greater")
		check("basic_dpo", p.BasicDPO < 0, "must be 0 or greater")
	}

	return verr.OrNil()
}

// ComputeMetrics turns a raw profile into annualized cycle metrics.
// On validation failure it returns a *domain.InputError and no metrics.
func ComputeMetrics(p domain.InputProfile) (*domain.ComputedMetrics, error) {
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}

	// 1. Annualize the period figures
	factor, _ := p.Periodicity.AnnualizationFactor()
	sales := p.Sales * factor
	cogs := p.COGS * factor

	// 2. Balances and days, depending on which side was supplied
	var cxc, inv, cxp, dso, dio, dpo float64
	mode, _ := p.Mode.Normalize()
	if mode == domain.ModeBasic {
		dso, dio, dpo = p.BasicDSO, p.BasicDIO, p.BasicDPO
		cxc, inv, cxp = BalancesFromDays(sales, cogs, dso, dio, dpo)
	} else {
		cxc, inv, cxp = p.Receivables, p.Inventory, p.Payables
		dso = DSO(cxc, sales)
		dio = DIO(inv, cogs)
		dpo = DPO(cxp, cogs)
	}

	// 3. Cycle and ratios
	return &domain.ComputedMetrics{
		Sales:     sales,
		COGS:      cogs,
		DSO:       dso,
		DIO:       dio,
		DPO:       dpo,
		CCC:       CCC(dso, dio, dpo),
		NWC:       NWC(cxc, inv, cxp),
		CXC:       cxc,
		Inv:       inv,
		CXP:       cxp,
		Cash:      p.Cash,
		OtherLiab: p.OtherLiabilities,
		Ratios:    ComputeRatios(cxc, inv, cxp, sales, cogs),
	}, nil
}

// Liquidity returns current and quick ratios. Both are nil when current
// liabilities or current assets are not positive.
func Liquidity(m domain.ComputedMetrics) domain.LiquidityRatios {
	currentAssets := m.Cash + m.CXC + m.Inv
	currentLiabilities := m.CXP + m.OtherLiab
	if currentLiabilities <= 0 || currentAssets <= 0 {
		return domain.LiquidityRatios{}
	}

	current := currentAssets / currentLiabilities
	quick := (m.Cash + m.CXC) / currentLiabilities
	return domain.LiquidityRatios{CurrentRatio: &current, QuickRatio: &quick}
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

package engine

import "github.com/andresuchdata/wcanalyzer/internal/domain"

// DemoProfile returns the sample company used by the demo endpoints.
func DemoProfile() domain.InputProfile {
	return domain.InputProfile{
		CompanyName:      "Demo Oil & Gas Co",
		Currency:         "USD",
		Industry:         domain.IndustryOilGas,
		Periodicity:      domain.PeriodAnnual,
		Mode:             domain.ModeAdvanced,
		Sales:            2_500_000,
		COGS:             1_500_000,
		Receivables:      480_000,
		Inventory:        230_000,
		Payables:         200_000,
		BasicDSO:         70,
		BasicDIO:         56,
		BasicDPO:         49,
		Cash:             150_000,
		OtherLiabilities: 180_000,
		PlannedGrowth:    15,
		WACC:             10,
		EBITDAMargin:     18,
	}
}

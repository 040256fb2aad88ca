// Package report renders analysis outputs as CSV documents.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
)

const (
	ContentType            = "text/csv; charset=utf-8"
	SimulationFileName     = "working_capital_simulation.csv"
	BatchSummaryFileName   = "working_capital_batch.csv"
	amountDecimalPlaces    = 2
	simulationHeaderMetric = "Metric"
)

// fixed renders v with two decimals without binary rounding artifacts.
func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(amountDecimalPlaces)
}

// WriteSimulation writes the actual-versus-simulated comparison.
func WriteSimulation(w io.Writer, in engine.SimulationInput, res domain.SimulationResult) error {
	rows := [][]string{
		{simulationHeaderMetric, "Actual", "Simulated"},
		{"DSO (days)", fixed(in.ActualDSO), fixed(in.NewDSO)},
		{"DIO (days)", fixed(in.ActualDIO), fixed(in.NewDIO)},
		{"DPO (days)", fixed(in.ActualDPO), fixed(in.NewDPO)},
		{"CCC (days)", fixed(res.CCCActual), fixed(res.CCCNew)},
		{"NWC", fixed(res.NWCActual), fixed(res.NWCNew)},
		{"Cash freed", fixed(res.CashFreed), ""},
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write simulation csv: %w", err)
	}
	return nil
}

// SimulationCSV returns the simulation document as bytes.
func SimulationCSV(in engine.SimulationInput, res domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSimulation(&buf, in, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var batchHeader = []string{
	"source", "company_name", "industry", "currency",
	"dso", "dio", "dpo", "ccc", "nwc",
	"total_score", "score_label", "main_lever", "error",
}

// WriteBatchSummary writes one row per batch result, failures included.
func WriteBatchSummary(w io.Writer, results []domain.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(batchHeader); err != nil {
		return fmt.Errorf("failed to write batch header: %w", err)
	}

	for _, r := range results {
		row := make([]string, len(batchHeader))
		row[0] = r.Source
		row[len(row)-1] = r.Error
		if a := r.Analysis; a != nil {
			row[1] = a.Profile.CompanyName
			row[2] = string(a.Profile.Industry)
			row[3] = a.Profile.Currency
			row[4] = fixed(a.Metrics.DSO)
			row[5] = fixed(a.Metrics.DIO)
			row[6] = fixed(a.Metrics.DPO)
			row[7] = fixed(a.Metrics.CCC)
			row[8] = fixed(a.Metrics.NWC)
			row[9] = strconv.Itoa(a.Scorecard.TotalScore)
			row[10] = a.Scorecard.TotalTier.Label
			row[11] = a.Insights.MainLever.Title
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write batch row %s: %w", r.Source, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush batch csv: %w", err)
	}
	return nil
}

package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

func TestCompare_Zones(t *testing.T) {
	r := domain.Range{Min: 30, Optimal: 70, Max: 110}

	tests := []struct {
		value   float64
		status  string
		verdict domain.Verdict
		score   float64
	}{
		{value: 10, status: StatusExcellent, verdict: domain.VerdictGood, score: 100},
		{value: 30, status: StatusExcellent, verdict: domain.VerdictGood, score: 100},
		{value: 50, status: StatusGood, verdict: domain.VerdictGood, score: 85},
		{value: 70, status: StatusGood, verdict: domain.VerdictGood, score: 70},
		{value: 90, status: StatusModerate, verdict: domain.VerdictWarn, score: 50},
		{value: 110, status: StatusModerate, verdict: domain.VerdictWarn, score: 30},
		{value: 150, status: StatusNeedsImprovement, verdict: domain.VerdictBad, score: 20},
		{value: 190, status: StatusNeedsImprovement, verdict: domain.VerdictBad, score: 10},
		{value: 1_000, status: StatusNeedsImprovement, verdict: domain.VerdictBad, score: 10},
	}

	for _, tt := range tests {
		c := Compare(tt.value, r)
		assert.Equal(t, tt.status, c.Status, "value %v", tt.value)
		assert.Equal(t, tt.verdict, c.Type, "value %v", tt.value)
		assert.InDelta(t, tt.score, c.Score, 1e-9, "value %v", tt.value)
	}
}

func TestCompare_MonotonicAndBounded(t *testing.T) {
	for _, b := range DefaultBenchmarks().List() {
		for _, r := range []domain.Range{b.DSO, b.DIO, b.DPO, b.CCC} {
			prev := Compare(r.Min-50, r).Score
			for v := r.Min - 50; v <= r.Max+200; v += 0.5 {
				score := Compare(v, r).Score
				assert.LessOrEqual(t, score, prev+1e-9, "%s value %v", b.Key, v)
				assert.GreaterOrEqual(t, score, 10.0)
				assert.LessOrEqual(t, score, 100.0)
				prev = score
			}
		}
	}
}

func TestCompare_DegenerateRange(t *testing.T) {
	r := domain.Range{Min: 20, Optimal: 20, Max: 20}
	assert.Equal(t, 100.0, Compare(20, r).Score)
	assert.Equal(t, 10.0, Compare(21, r).Score)
}

func TestCompareInverse(t *testing.T) {
	r := domain.Range{Min: 40, Optimal: 55, Max: 70}

	high := CompareInverse(80, r)
	assert.Equal(t, StatusExcellent, high.Status)
	assert.True(t, high.Inverse)
	assert.Equal(t, 80.0, high.Value)

	low := CompareInverse(20, r)
	assert.Equal(t, StatusNeedsImprovement, low.Status)

	prev := CompareInverse(0, r).Score
	for v := 0.0; v <= 120; v += 0.5 {
		score := CompareInverse(v, r).Score
		assert.GreaterOrEqual(t, score, prev-1e-9, "value %v", v)
		prev = score
	}
}

func TestBenchmark_DemoOilGas(t *testing.T) {
	m, err := ComputeMetrics(DemoProfile())
	require.NoError(t, err)
	bench, err := DefaultBenchmarks().Lookup(domain.IndustryOilGas)
	require.NoError(t, err)

	report := Benchmark(*m, bench)
	require.Len(t, report.Comparisons, 4)
	assert.Equal(t, []string{"DSO", "DIO", "DPO", "CCC"}, []string{
		report.Comparisons[0].Metric,
		report.Comparisons[1].Metric,
		report.Comparisons[2].Metric,
		report.Comparisons[3].Metric,
	})

	assert.Equal(t, domain.VerdictBad, report.Comparisons[0].Type)
	assert.Equal(t, domain.VerdictGood, report.Comparisons[1].Type)
	assert.Equal(t, domain.VerdictWarn, report.Comparisons[2].Type)
	assert.Equal(t, domain.VerdictWarn, report.Comparisons[3].Type)

	assert.Contains(t, report.Narrative, "Compared with the Oil & Gas Services industry: ")
	assert.Contains(t, report.Narrative, "your DSO of 70.1 days is above the typical range (55-70 days)")
	assert.Contains(t, report.Narrative, "your DIO of 56.0 days shows good inventory turnover")
	assert.NotContains(t, report.Narrative, "CCC")
	assert.Equal(t, byte('.'), report.Narrative[len(report.Narrative)-1])
}

func TestBenchmarkTable_Lookup(t *testing.T) {
	table := DefaultBenchmarks()
	assert.Len(t, table.List(), 5)

	b, err := table.Lookup("TECH")
	require.NoError(t, err)
	assert.Equal(t, domain.IndustryTech, b.Key)
	assert.Equal(t, -10.0, b.CCC.Min)

	_, err = table.Lookup("mining")
	assert.True(t, errors.Is(err, domain.ErrUnknownIndustry))
}

func TestLoadBenchmarks(t *testing.T) {
	table, err := LoadBenchmarks("")
	require.NoError(t, err)
	assert.Len(t, table.List(), 5)

	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	content := `
industries:
  - key: retail
    name: Grocery Retail
    ccc: {min: 5, optimal: 20, max: 45}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err = LoadBenchmarks(path)
	require.NoError(t, err)

	retail, err := table.Lookup(domain.IndustryRetail)
	require.NoError(t, err)
	assert.Equal(t, "Grocery Retail", retail.Name)
	assert.Equal(t, domain.Range{Min: 5, Optimal: 20, Max: 45}, retail.CCC)
	assert.Equal(t, domain.Range{Min: 0, Optimal: 10, Max: 20}, retail.DSO)

	// defaults are not mutated by an override
	fresh, err := DefaultBenchmarks().Lookup(domain.IndustryRetail)
	require.NoError(t, err)
	assert.Equal(t, "Retail", fresh.Name)
}

func TestBenchmarkTable_Fingerprint(t *testing.T) {
	base := DefaultBenchmarks().Fingerprint()
	assert.Equal(t, base, DefaultBenchmarks().Fingerprint())
	assert.Len(t, base, 12)

	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	content := "industries:\n  - key: retail\n    ccc: {min: 5, optimal: 20, max: 45}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	edited, err := LoadBenchmarks(path)
	require.NoError(t, err)
	assert.NotEqual(t, base, edited.Fingerprint())
}

func TestLoadBenchmarks_Rejects(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("industries:\n  - key: mining\n"), 0o600))
	_, err := LoadBenchmarks(unknown)
	assert.True(t, errors.Is(err, domain.ErrUnknownIndustry))

	inverted := filepath.Join(dir, "inverted.yaml")
	require.NoError(t, os.WriteFile(inverted, []byte("industries:\n  - key: tech\n    dso: {min: 80, max: 10}\n"), 0o600))
	_, err = LoadBenchmarks(inverted)
	assert.Error(t, err)

	_, err = LoadBenchmarks(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

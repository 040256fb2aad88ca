package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
)

func TestSimulationCSV(t *testing.T) {
	in := engine.SimulationInput{
		Sales:     365_000,
		COGS:      365_000,
		ActualDSO: 30,
		ActualDIO: 20,
		ActualDPO: 10,
		NewDSO:    25,
		NewDIO:    20,
		NewDPO:    15,
	}
	data, err := SimulationCSV(in, engine.Simulate(in))
	require.NoError(t, err)

	expected := "Metric,Actual,Simulated\n" +
		"DSO (days),30.00,25.00\n" +
		"DIO (days),20.00,20.00\n" +
		"DPO (days),10.00,15.00\n" +
		"CCC (days),40.00,30.00\n" +
		"NWC,40000.00,30000.00\n" +
		"Cash freed,10000.00,\n"
	assert.Equal(t, expected, string(data))
}

func TestWriteBatchSummary(t *testing.T) {
	a, err := engine.Recompute(engine.DemoProfile(), engine.DefaultBenchmarks())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBatchSummary(&buf, []domain.BatchResult{
		{Source: "demo.json", Analysis: a},
		{Source: "broken.yaml", Error: "invalid input: sales: must be greater than 0"},
	}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, batchHeader, records[0])
	assert.Equal(t, "demo.json", records[1][0])
	assert.Equal(t, "Demo Oil & Gas Co", records[1][1])
	assert.Equal(t, "oilgas", records[1][2])
	assert.Equal(t, "70.08", records[1][4])
	assert.Equal(t, "510000.00", records[1][8])
	assert.Equal(t, "78", records[1][9])
	assert.Equal(t, "Good", records[1][10])
	assert.Empty(t, records[1][12])

	assert.Equal(t, "broken.yaml", records[2][0])
	assert.Empty(t, records[2][1])
	assert.Contains(t, records[2][12], "sales")
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSummaryCSV = `OrderId,Algorithm,ItemCount,ProductTypes,Entropy,Complexity,PalletsUsed,ItemsPlaced,ItemsUnplaced,AvgVolumeUtilization,AvgHeightUtilization,TotalWeight,AvgHeterogeneity,AvgCompactness,ExecutionTimeMs
A,nsga2,10,2,1.0000,Low,1,10,0,0.5000,0.6000,100.00,0.8000,0.7000,120.00
B,nsga2,20,3,1.5000,Medium,2,18,2,0.6000,0.7000,200.00,0.9000,0.8000,240.00
`

func TestComputeStatsAggregatesAcrossRows(t *testing.T) {
	report, err := computeStats(strings.NewReader(sampleSummaryCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Orders)
	assert.Equal(t, 3, report.PalletsUsed)
	assert.Equal(t, 28, report.ItemsPlaced)
	assert.Equal(t, 2, report.ItemsUnplaced)
	assert.InDelta(t, 0.55, report.Means["AvgVolumeUtilization"], 1e-9)
	assert.InDelta(t, 180.0, report.Means["ExecutionTimeMs"], 1e-9)
}

func TestComputeStatsHandlesEmptyInput(t *testing.T) {
	report, err := computeStats(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Orders)
}

func TestPrintStatsIncludesKeyFields(t *testing.T) {
	report, err := computeStats(strings.NewReader(sampleSummaryCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	printStats(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "orders:")
	assert.Contains(t, out, "avg volume util:")
}

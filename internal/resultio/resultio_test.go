package resultio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palletopt/palletizer/internal/ga"
	"github.com/palletopt/palletizer/internal/model"
)

func sampleOutcome(t *testing.T) OrderOutcome {
	t.Helper()
	p := model.NewPallet(0, model.DefaultPalletLength, model.DefaultPalletWidth, model.DefaultPalletHeight)
	it := model.Item{ProductID: "a", ItemID: 1, L: 100, W: 80, H: 150, Weight: 1.0}
	it.PlaceAt(0, 0, 0, false)
	p.Add(it)

	order := model.Order{OrderID: "42", Items: []model.Item{it}}
	return OrderOutcome{
		Order:     order,
		Algorithm: "nsga2",
		Result:    ga.Result{Valid: true, Pallets: []*model.Pallet{p}},
	}
}

func TestWriteSummaryProducesHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, []OrderOutcome{sampleOutcome(t)})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "OrderId")
	assert.Contains(t, lines[1], "42")
}

func TestWriteDetailOneRowPerPallet(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDetail(&buf, []OrderOutcome{sampleOutcome(t)})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "a(1)")
}

func TestWritePlacementsWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	err := WritePlacements(&buf, []OrderOutcome{sampleOutcome(t)}, false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "Color")
}

func TestWritePlacementsWithColor(t *testing.T) {
	var buf bytes.Buffer
	err := WritePlacements(&buf, []OrderOutcome{sampleOutcome(t)}, true)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Color")
	assert.Contains(t, lines[1], "#")
}

func TestColorForProductIsStable(t *testing.T) {
	assert.Equal(t, ColorForProduct("abc"), ColorForProduct("abc"))
}

func TestColorForProductVariesAcrossIDs(t *testing.T) {
	assert.NotEqual(t, ColorForProduct("abc"), ColorForProduct("xyz"))
}

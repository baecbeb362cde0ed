package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palletopt/palletizer/internal/ga"
	"github.com/palletopt/palletizer/internal/model"
)

func smallOrder(id string) model.Order {
	items := []model.Item{
		{ProductID: "a", ItemID: 1, L: 150, W: 120, H: 100, Weight: 2},
		{ProductID: "b", ItemID: 2, L: 150, W: 120, H: 100, Weight: 2},
	}
	return model.Order{OrderID: id, Items: items}
}

func TestRunProducesSortedResults(t *testing.T) {
	orders := []model.Order{smallOrder("o3"), smallOrder("o1"), smallOrder("o2")}
	opts := Options{BaseSeed: 42, Degree: 4, BaseMaxPallets: 5, GAConfig: ga.DefaultConfig()}

	results := Run(context.Background(), orders, opts)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"o1", "o2", "o3"}, []string{results[0].OrderID, results[1].OrderID, results[2].OrderID})
	for _, r := range results {
		assert.True(t, r.Succeeded)
	}
}

func TestRunIsDeterministicAcrossDegrees(t *testing.T) {
	orders := []model.Order{smallOrder("o1"), smallOrder("o2")}
	opts1 := Options{BaseSeed: 42, Degree: 1, BaseMaxPallets: 5, GAConfig: ga.DefaultConfig()}
	opts8 := Options{BaseSeed: 42, Degree: 8, BaseMaxPallets: 5, GAConfig: ga.DefaultConfig()}

	r1 := Run(context.Background(), orders, opts1)
	r8 := Run(context.Background(), orders, opts8)

	require.Len(t, r1, 2)
	require.Len(t, r8, 2)
	for i := range r1 {
		assert.Equal(t, r1[i].OrderID, r8[i].OrderID)
		assert.Equal(t, r1[i].GAResult.Genes, r8[i].GAResult.Genes)
		assert.InDelta(t, r1[i].GAResult.Vol, r8[i].GAResult.Vol, 1e-9)
	}
}

func TestClampDegree(t *testing.T) {
	assert.Equal(t, MinDegree, ClampDegree(0))
	assert.Equal(t, MaxDegree, ClampDegree(100))
	assert.Equal(t, 4, ClampDegree(4))
}

func TestStableHashIsDeterministic(t *testing.T) {
	assert.Equal(t, StableHash("order-1"), StableHash("order-1"))
	assert.NotEqual(t, StableHash("order-1"), StableHash("order-2"))
}

func TestRunEmptyOrderSucceedsWithNoPallets(t *testing.T) {
	orders := []model.Order{{OrderID: "empty", Items: nil}}
	opts := Options{BaseSeed: 42, Degree: 2, BaseMaxPallets: 5, GAConfig: ga.DefaultConfig()}
	results := Run(context.Background(), orders, opts)
	require.Len(t, results, 1)
	assert.True(t, results[0].Succeeded)
	assert.Empty(t, results[0].GAResult.Pallets)
}

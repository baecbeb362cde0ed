package seedorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palletopt/palletizer/internal/model"
)

func TestGenerateReturnsTenSeeds(t *testing.T) {
	byProduct := map[string][]model.Item{
		"a": {{ProductID: "a", L: 100, W: 100, H: 100, Weight: 1}},
		"b": {{ProductID: "b", L: 200, W: 200, H: 200, Weight: 5}, {ProductID: "b", L: 200, W: 200, H: 200, Weight: 5}},
		"c": {{ProductID: "c", L: 50, W: 50, H: 50, Weight: 0.5}},
	}
	seeds := Generate(byProduct)
	require.Len(t, seeds, 10)
	for _, seed := range seeds {
		assert.ElementsMatch(t, []string{"a", "b", "c"}, seed)
	}
}

func TestGenerateAscendingDescendingAreReversed(t *testing.T) {
	byProduct := map[string][]model.Item{
		"a": {{ProductID: "a", L: 100, W: 100, H: 100, Weight: 1}},
		"b": {{ProductID: "b", L: 200, W: 200, H: 200, Weight: 5}},
	}
	seeds := Generate(byProduct)
	ascByWeight := seeds[0]
	descByWeight := seeds[1]
	require.Len(t, ascByWeight, 2)
	require.Len(t, descByWeight, 2)
	assert.Equal(t, ascByWeight[0], descByWeight[1])
	assert.Equal(t, ascByWeight[1], descByWeight[0])
}

func TestGenerateTieBreaksLexicographically(t *testing.T) {
	byProduct := map[string][]model.Item{
		"z": {{ProductID: "z", L: 100, W: 100, H: 100, Weight: 1}},
		"a": {{ProductID: "a", L: 100, W: 100, H: 100, Weight: 1}},
	}
	seeds := Generate(byProduct)
	assert.Equal(t, []string{"a", "z"}, seeds[0])
}

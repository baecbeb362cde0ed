package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palletopt/palletizer/internal/model"
)

func TestTryPlaceFirstItemGoesToOrigin(t *testing.T) {
	p := model.NewPallet(1, model.DefaultPalletLength, model.DefaultPalletWidth, model.DefaultPalletHeight)
	it := model.Item{ProductID: "a", ItemID: 1, L: 100, W: 80, H: 150, Weight: 1.0}

	ok := TryPlace(&it, p, Options{AllowRotation: true})
	require.True(t, ok)
	assert.Equal(t, 0.0, it.X)
	assert.Equal(t, 0.0, it.Y)
	assert.Equal(t, 0.0, it.Z)
	assert.False(t, it.Rotated)
	require.Len(t, p.Items, 1)
}

func TestTryPlaceSecondItemAvoidsOverlap(t *testing.T) {
	p := model.NewPallet(1, model.DefaultPalletLength, model.DefaultPalletWidth, model.DefaultPalletHeight)
	first := model.Item{ProductID: "a", ItemID: 1, L: 300, W: 200, H: 150, Weight: 2.0}
	require.True(t, TryPlace(&first, p, Options{AllowRotation: true}))

	second := model.Item{ProductID: "b", ItemID: 2, L: 250, W: 180, H: 120, Weight: 1.5}
	require.True(t, TryPlace(&second, p, Options{AllowRotation: true}))

	assert.False(t, second.X == first.X && second.Y == first.Y && second.Z == first.Z)
	require.Len(t, p.Items, 2)
}

func TestTryPlaceFailsWhenItemExceedsPallet(t *testing.T) {
	p := model.NewPallet(1, model.DefaultPalletLength, model.DefaultPalletWidth, model.DefaultPalletHeight)
	huge := model.Item{ProductID: "a", ItemID: 1, L: 5000, W: 80, H: 150, Weight: 1.0}
	ok := TryPlace(&huge, p, Options{AllowRotation: true})
	assert.False(t, ok)
	assert.Empty(t, p.Items)
	assert.False(t, huge.Placed)
}

func TestTryPlaceWithoutRotationOnlyTriesUnrotated(t *testing.T) {
	p := model.NewPallet(1, model.DefaultPalletLength, model.DefaultPalletWidth, model.DefaultPalletHeight)
	it := model.Item{ProductID: "a", ItemID: 1, L: 100, W: 80, H: 150, Weight: 1.0}
	ok := TryPlace(&it, p, Options{AllowRotation: false})
	require.True(t, ok)
	assert.False(t, it.Rotated)
}

func TestTryPlaceThreeItemsAllLandOnFloor(t *testing.T) {
	p := model.NewPallet(1, model.DefaultPalletLength, model.DefaultPalletWidth, model.DefaultPalletHeight)
	items := []model.Item{
		{ProductID: "a", ItemID: 1, L: 300, W: 200, H: 150, Weight: 2.0},
		{ProductID: "b", ItemID: 2, L: 250, W: 180, H: 120, Weight: 1.5},
		{ProductID: "c", ItemID: 3, L: 200, W: 150, H: 100, Weight: 1.0},
	}
	for i := range items {
		ok := TryPlace(&items[i], p, Options{AllowRotation: true})
		require.True(t, ok)
		assert.Equal(t, 0.0, items[i].Z)
	}
	require.Len(t, p.Items, 3)
}

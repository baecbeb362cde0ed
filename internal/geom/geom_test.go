package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapsTouchingFacesDoNotOverlap(t *testing.T) {
	a := Box{Min: Vec3{0, 0, 0}, Length: 100, Width: 100, Height: 100}
	b := Box{Min: Vec3{100, 0, 0}, Length: 100, Width: 100, Height: 100}
	assert.False(t, Overlaps(a, b), "boxes sharing a face should not count as overlapping")
}

func TestOverlapsGenuineOverlap(t *testing.T) {
	a := Box{Min: Vec3{0, 0, 0}, Length: 100, Width: 100, Height: 100}
	b := Box{Min: Vec3{50, 50, 50}, Length: 100, Width: 100, Height: 100}
	assert.True(t, Overlaps(a, b))
}

func TestOverlapsShortOfEpsilonCountsAsTouching(t *testing.T) {
	a := Box{Min: Vec3{0, 0, 0}, Length: 100, Width: 100, Height: 100}
	b := Box{Min: Vec3{100 - Epsilon/2, 0, 0}, Length: 100, Width: 100, Height: 100}
	assert.False(t, Overlaps(a, b), "sub-epsilon penetration should not count as overlap")
}

func TestWithinBounds(t *testing.T) {
	b := Box{Min: Vec3{0, 0, 0}, Length: 1200, Width: 800, Height: 1400}
	assert.True(t, WithinBounds(b, 1200, 800, 1400))

	tooTall := Box{Min: Vec3{0, 0, 0}, Length: 1200, Width: 800, Height: 1401}
	assert.False(t, WithinBounds(tooTall, 1200, 800, 1400))
}

func TestCenterOfMassZeroWeightFallsBackToPalletCenter(t *testing.T) {
	c := CenterOfMass(nil, 1200, 800)
	require.Equal(t, Vec3{X: 600, Y: 400, Z: 0}, c)
}

func TestCenterOfMassWeightedMean(t *testing.T) {
	items := []WeightedCenter{
		{Center: Vec3{X: 0, Y: 0, Z: 0}, Weight: 1},
		{Center: Vec3{X: 100, Y: 0, Z: 0}, Weight: 1},
	}
	c := CenterOfMass(items, 1200, 800)
	assert.InDelta(t, 50, c.X, 1e-9)
}

func TestRectOverlapArea(t *testing.T) {
	area := RectOverlapArea(0, 0, 100, 100, 50, 50, 150, 150)
	assert.InDelta(t, 2500, area, 1e-9)

	disjoint := RectOverlapArea(0, 0, 100, 100, 200, 200, 300, 300)
	assert.Zero(t, disjoint)
}

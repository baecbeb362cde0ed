// Package geom provides the axis-aligned 3D box arithmetic shared by the
// constraint kernel, the extreme-point set, and the placement engine.
package geom

import "math"

// Epsilon is the single floating-point tolerance used across the packing
// engine for overlap, bounds, same-position, and same-height comparisons.
// Centralizing it here avoids the per-site hard-coding the source material
// warns against.
const Epsilon = 0.1

// Vec3 is a point or extent in millimeters.
type Vec3 struct {
	X, Y, Z float64
}

// Box is an axis-aligned bounding box given by its minimum corner and
// positive extents along each axis.
type Box struct {
	Min    Vec3
	Length float64 // extent along X
	Width  float64 // extent along Y
	Height float64 // extent along Z
}

// Max returns the box's maximum corner.
func (b Box) Max() Vec3 {
	return Vec3{
		X: b.Min.X + b.Length,
		Y: b.Min.Y + b.Width,
		Z: b.Min.Z + b.Height,
	}
}

// Center returns the arithmetic mean of the box's corners.
func (b Box) Center() Vec3 {
	max := b.Max()
	return Vec3{
		X: (b.Min.X + max.X) / 2,
		Y: (b.Min.Y + max.Y) / 2,
		Z: (b.Min.Z + max.Z) / 2,
	}
}

// Volume returns the box's volume.
func (b Box) Volume() float64 {
	return b.Length * b.Width * b.Height
}

// Overlaps reports whether two boxes overlap with epsilon slack: on every
// axis independently, Amin < Bmax - eps AND Amax > Bmin + eps. The first
// axis that fails to overlap short-circuits the check.
func Overlaps(a, b Box) bool {
	aMax, bMax := a.Max(), b.Max()
	if !(a.Min.X < bMax.X-Epsilon && aMax.X > b.Min.X+Epsilon) {
		return false
	}
	if !(a.Min.Y < bMax.Y-Epsilon && aMax.Y > b.Min.Y+Epsilon) {
		return false
	}
	if !(a.Min.Z < bMax.Z-Epsilon && aMax.Z > b.Min.Z+Epsilon) {
		return false
	}
	return true
}

// WithinBounds reports whether box b's max corner lies within [0, extent]
// on every axis, with epsilon tolerance.
func WithinBounds(b Box, length, width, height float64) bool {
	max := b.Max()
	return max.X <= length+Epsilon && max.Y <= width+Epsilon && max.Z <= height+Epsilon
}

// SamePoint reports whether two points are identical within epsilon on all
// three axes.
func SamePoint(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < Epsilon && math.Abs(a.Y-b.Y) < Epsilon && math.Abs(a.Z-b.Z) < Epsilon
}

// RectOverlapArea returns the area of overlap between two axis-aligned 2D
// rectangles given as (minX, minY, maxX, maxY); zero if disjoint.
func RectOverlapArea(aMinX, aMinY, aMaxX, aMaxY, bMinX, bMinY, bMaxX, bMaxY float64) float64 {
	ox := math.Min(aMaxX, bMaxX) - math.Max(aMinX, bMinX)
	oy := math.Min(aMaxY, bMaxY) - math.Max(aMinY, bMinY)
	if ox <= 0 || oy <= 0 {
		return 0
	}
	return ox * oy
}

// WeightedCenter is a box paired with a weight, used by CenterOfMass.
type WeightedCenter struct {
	Center Vec3
	Weight float64
}

// CenterOfMass returns the weight-weighted mean of a set of box centers.
// When the total weight is zero it returns the geometric center of the
// given pallet extents instead (the COM is otherwise undefined).
func CenterOfMass(items []WeightedCenter, palletLength, palletWidth float64) Vec3 {
	var totalWeight float64
	var sum Vec3
	for _, it := range items {
		totalWeight += it.Weight
		sum.X += it.Center.X * it.Weight
		sum.Y += it.Center.Y * it.Weight
		sum.Z += it.Center.Z * it.Weight
	}
	if totalWeight == 0 {
		return Vec3{X: palletLength / 2, Y: palletWidth / 2, Z: 0}
	}
	return Vec3{X: sum.X / totalWeight, Y: sum.Y / totalWeight, Z: sum.Z / totalWeight}
}

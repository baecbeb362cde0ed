// Package model holds the core palletizing data model: items, pallets, the
// extreme-point set used to drive placement search, and orders.
package model

import "github.com/palletopt/palletizer/internal/geom"

// Item is a single physical box with an immutable identity and nominal
// extents, plus mutable placement state that is set once the item is
// committed to a pallet.
type Item struct {
	ProductID string
	ItemID    int

	L, W, H float64 // nominal extents, mm
	Weight  float64 // kg

	Placed  bool
	X, Y, Z float64
	Rotated bool
}

// Volume returns the item's nominal volume (L*W*H), independent of rotation.
func (it Item) Volume() float64 {
	return it.L * it.W * it.H
}

// CurrentExtents returns the item's extents along X, Y, Z given its current
// rotation flag (90 degrees about the vertical axis swaps L and W).
func (it Item) CurrentExtents() (cl, cw, ch float64) {
	if it.Rotated {
		return it.W, it.L, it.H
	}
	return it.L, it.W, it.H
}

// Box returns the item's axis-aligned bounding box at its current placement
// and rotation. Only meaningful once Placed is true.
func (it Item) Box() geom.Box {
	cl, cw, ch := it.CurrentExtents()
	return geom.Box{Min: geom.Vec3{X: it.X, Y: it.Y, Z: it.Z}, Length: cl, Width: cw, Height: ch}
}

// SurfaceArea returns the item's total surface area at its current extents:
// 2*(l*w + l*h + w*h).
func (it Item) SurfaceArea() float64 {
	cl, cw, ch := it.CurrentExtents()
	return 2 * (cl*cw + cl*ch + cw*ch)
}

// Clone returns a copy of the item with placement state reset, suitable for
// trying a fresh placement without disturbing the original. Scratch pallets
// built during evaluation only ever hold clones, never the canonical items
// constructed from the order source.
func (it Item) Clone() Item {
	clone := it
	clone.Placed = false
	clone.X, clone.Y, clone.Z = 0, 0, 0
	clone.Rotated = false
	return clone
}

// PlaceAt sets the item's placement state. The caller is responsible for
// having validated the placement against the constraint kernel first.
func (it *Item) PlaceAt(x, y, z float64, rotated bool) {
	it.X, it.Y, it.Z = x, y, z
	it.Rotated = rotated
	it.Placed = true
}

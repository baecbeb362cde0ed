package model

import "github.com/palletopt/palletizer/internal/geom"

// Default Euro pallet extents in millimeters.
const (
	DefaultPalletLength = 1200.0
	DefaultPalletWidth  = 800.0
	DefaultPalletHeight = 1400.0
)

// Pallet holds an ordered, duplicate-free collection of placed items plus
// its own extreme-point set. Insertion order is preserved; no item appears
// twice.
type Pallet struct {
	PalletID int
	L, W, H  float64

	Items []Item
	EPs   *ExtremePointSet
}

// NewPallet creates an empty pallet of the given extents with a fresh EP set
// seeded at the origin.
func NewPallet(id int, l, w, h float64) *Pallet {
	return &Pallet{
		PalletID: id,
		L:        l,
		W:        w,
		H:        h,
		EPs:      NewExtremePointSet(l, w, h),
	}
}

// Add appends a placed item to the pallet's ordered item list. The caller
// must have already validated and positioned the item.
func (p *Pallet) Add(it Item) {
	p.Items = append(p.Items, it)
}

// Remove removes the last occurrence of an item with the given ItemID.
// Returns the removed item and whether one was found. The placement engine's
// stability check does not use it; it computes a hypothetical center of mass
// instead (constraint.HypotheticalCOM).
func (p *Pallet) Remove(itemID int) (Item, bool) {
	for i := len(p.Items) - 1; i >= 0; i-- {
		if p.Items[i].ItemID == itemID {
			removed := p.Items[i]
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			return removed, true
		}
	}
	return Item{}, false
}

// UsedVolume returns the sum of placed items' volumes.
func (p *Pallet) UsedVolume() float64 {
	var total float64
	for _, it := range p.Items {
		total += it.Volume()
	}
	return total
}

// TotalWeight returns the sum of placed items' weights.
func (p *Pallet) TotalWeight() float64 {
	var total float64
	for _, it := range p.Items {
		total += it.Weight
	}
	return total
}

// TopHeight returns max(z + ch) over placed items, or 0 if the pallet is
// empty.
func (p *Pallet) TopHeight() float64 {
	var top float64
	for _, it := range p.Items {
		_, _, ch := it.CurrentExtents()
		if h := it.Z + ch; h > top {
			top = h
		}
	}
	return top
}

// VolumeUtilization returns used volume over the pallet's total volume.
func (p *Pallet) VolumeUtilization() float64 {
	total := p.L * p.W * p.H
	if total == 0 {
		return 0
	}
	return p.UsedVolume() / total
}

// HeightUtilization returns the current top height over the pallet's max
// height.
func (p *Pallet) HeightUtilization() float64 {
	if p.H == 0 {
		return 0
	}
	return p.TopHeight() / p.H
}

// ProductTypeCount returns the number of distinct product ids placed on the
// pallet.
func (p *Pallet) ProductTypeCount() int {
	seen := make(map[string]struct{})
	for _, it := range p.Items {
		seen[it.ProductID] = struct{}{}
	}
	return len(seen)
}

// CenterOfMass returns the weight-weighted center of mass of placed items,
// falling back to the pallet's geometric center if total weight is zero.
func (p *Pallet) CenterOfMass() geom.Vec3 {
	wc := make([]geom.WeightedCenter, 0, len(p.Items))
	for _, it := range p.Items {
		wc = append(wc, geom.WeightedCenter{Center: it.Box().Center(), Weight: it.Weight})
	}
	return geom.CenterOfMass(wc, p.L, p.W)
}

// Package evaluate applies a product-id ordering to a fresh stack of
// pallets and scores the result on heterogeneity, compactness, and volume
// utilization, the three objectives the NSGA-II loop optimizes.
package evaluate

import (
	"github.com/palletopt/palletizer/internal/geom"
	"github.com/palletopt/palletizer/internal/model"
	"github.com/palletopt/palletizer/internal/placement"
	"github.com/palletopt/palletizer/internal/telemetry"
)

// Result is the outcome of evaluating one product-id permutation against a
// pallet budget: the three objective scores, a validity flag, and the
// pallets actually touched (needed both to reconstruct placements for the
// incumbent and, when invalid, to report a partial ItemsUnplaced count).
type Result struct {
	Het   float64 // minimize: mean distinct-product fraction per pallet
	Comp  float64 // maximize: mean contact-ratio per pallet
	Vol   float64 // maximize: mean volume utilization per pallet
	Valid bool    // every item in the order was placed within the pallet budget

	Pallets  []*model.Pallet
	Unplaced []model.Item
}

// Run allocates maxPallets fresh empty pallets and feeds items grouped by
// genes (a permutation of distinct product ids) into them in order, one
// product id at a time, in each product's input order. On a placement
// failure it advances to the next pallet; if the last pallet also fails,
// the individual is marked invalid and evaluation stops (no further items
// are attempted). itemsByProduct must hold every item keyed by ProductID;
// genes must be a permutation of its keys.
func Run(genes []string, itemsByProduct map[string][]model.Item, maxPallets int, palletL, palletW, palletH float64) Result {
	pallets := make([]*model.Pallet, maxPallets)
	for i := range pallets {
		pallets[i] = model.NewPallet(i, palletL, palletW, palletH)
	}

	// Flatten genes into item order once, so that on a terminal failure we
	// can mark every remaining item (not just the one that failed) unplaced
	// and stop, per the "last pallet fails -> mark invalid and stop" rule.
	var ordered []model.Item
	for _, pid := range genes {
		ordered = append(ordered, itemsByProduct[pid]...)
	}

	cursor := 0
	valid := true
	var unplaced []model.Item

	for _, src := range ordered {
		if !valid {
			unplaced = append(unplaced, src)
			continue
		}
		it := src.Clone()
		placed := false
		for cursor < maxPallets {
			if placement.TryPlace(&it, pallets[cursor], placement.Options{AllowRotation: true}) {
				telemetry.PlacementAttempts.WithLabelValues("committed").Inc()
				placed = true
				break
			}
			telemetry.PlacementAttempts.WithLabelValues("rejected").Inc()
			if cursor == maxPallets-1 {
				break
			}
			cursor++
		}
		if !placed {
			valid = false
			unplaced = append(unplaced, src)
		}
	}

	touched := cursor + 1
	if touched > maxPallets {
		touched = maxPallets
	}

	het, comp, vol := scorePallets(pallets[:touched], len(itemsByProduct))

	return Result{
		Het:      het,
		Comp:     comp,
		Vol:      vol,
		Valid:    valid,
		Pallets:  pallets[:touched],
		Unplaced: unplaced,
	}
}

func scorePallets(pallets []*model.Pallet, k int) (het, comp, vol float64) {
	if len(pallets) == 0 || k == 0 {
		return 0, 0, 0
	}
	var hetSum, compSum, volSum float64
	for _, p := range pallets {
		hetSum += float64(p.ProductTypeCount()) / float64(k)
		volSum += p.VolumeUtilization()
		compSum += PalletCompactness(p)
	}
	n := float64(len(pallets))
	return hetSum / n, compSum / n, volSum / n
}

// PalletCompactness averages each item's contact ratio (contact surface
// area over total surface area) across the pallet's items. Exported so the
// result writers can report per-pallet compactness without recomputing it.
func PalletCompactness(p *model.Pallet) float64 {
	if len(p.Items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range p.Items {
		sum += contactRatio(it, p.Items)
	}
	return sum / float64(len(p.Items))
}

func contactRatio(item model.Item, all []model.Item) float64 {
	box := item.Box()
	max := box.Max()

	var contact float64
	if box.Min.Z <= geom.Epsilon {
		contact += box.Length * box.Width
	}
	for _, other := range all {
		if other.ItemID == item.ItemID && other.ProductID == item.ProductID {
			continue
		}
		oBox := other.Box()
		oMax := oBox.Max()

		if absf(box.Min.Z-oMax.Z) < geom.Epsilon {
			contact += geom.RectOverlapArea(box.Min.X, box.Min.Y, max.X, max.Y, oBox.Min.X, oBox.Min.Y, oMax.X, oMax.Y)
		}
		if absf(max.X-oBox.Min.X) < geom.Epsilon || absf(box.Min.X-oMax.X) < geom.Epsilon {
			contact += rectOverlap1D(box.Min.Y, max.Y, oBox.Min.Y, oMax.Y) * rectOverlap1D(box.Min.Z, max.Z, oBox.Min.Z, oMax.Z)
		}
		if absf(max.Y-oBox.Min.Y) < geom.Epsilon || absf(box.Min.Y-oMax.Y) < geom.Epsilon {
			contact += rectOverlap1D(box.Min.X, max.X, oBox.Min.X, oMax.X) * rectOverlap1D(box.Min.Z, max.Z, oBox.Min.Z, oMax.Z)
		}
	}

	area := item.SurfaceArea()
	if area == 0 {
		return 0
	}
	ratio := contact / area
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func rectOverlap1D(aMin, aMax, bMin, bMax float64) float64 {
	lo := aMin
	if bMin > lo {
		lo = bMin
	}
	hi := aMax
	if bMax < hi {
		hi = bMax
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// PalletResult is one pallet that a future Phase-1 layer/block constructor
// has already packed. The items such a constructor could not place
// (residuals) are not part of it; Prepack returns them separately so they
// still go through the evolutionary search.
type PalletResult struct {
	Pallet *model.Pallet
}

// Prepack is the Phase-1 interface stub: currently the identity function,
// since Phase 1 is bypassed and every item is a residual. A future
// layer/block constructor can be substituted here without touching Run or
// the GA loop.
func Prepack(items []model.Item) (packed []PalletResult, residual []model.Item) {
	return nil, items
}

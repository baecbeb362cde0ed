// Package constraint implements the hard-constraint kernel: bounds,
// non-overlap, support sufficiency, and dynamic stability. Every predicate
// here is a pure function over geometry and pallet state.
package constraint

import (
	"github.com/palletopt/palletizer/internal/geom"
	"github.com/palletopt/palletizer/internal/model"
)

// insetCorner is how far a base corner is pulled toward the item's centroid
// before testing whether it counts as a "supported vertex".
const insetCorner = 10.0 // mm

// WithinBounds reports whether the tentative box fits within the pallet's
// extents with epsilon tolerance.
func WithinBounds(box geom.Box, p *model.Pallet) bool {
	return geom.WithinBounds(box, p.L, p.W, p.H)
}

// NoOverlap reports whether the tentative box overlaps none of the pallet's
// already-placed items.
func NoOverlap(box geom.Box, p *model.Pallet) bool {
	for _, it := range p.Items {
		if geom.Overlaps(box, it.Box()) {
			return false
		}
	}
	return true
}

// Supported implements the §4.3 support rule. An item resting on the floor
// (z <= eps) is always supported. Otherwise it must be within epsilon of
// the top face of at least one other item, and either:
//   - supportRatio >= 0.75 and supported corner count >= 2, or
//   - supportRatio >= 0.50 and supported corner count >= 3, or
//   - supportRatio >= 0.40 and supported corner count >= 4.
//
// Checks run in that order (highest area threshold first); any one passing
// predicate suffices, so the order does not change the result.
func Supported(box geom.Box, p *model.Pallet) bool {
	if box.Min.Z <= geom.Epsilon {
		return true
	}

	var bearers []geom.Box
	for _, it := range p.Items {
		itBox := it.Box()
		if absf(box.Min.Z-itBox.Max().Z) < geom.Epsilon {
			bearers = append(bearers, itBox)
		}
	}
	if len(bearers) == 0 {
		return false
	}

	max := box.Max()
	footprintArea := (max.X - box.Min.X) * (max.Y - box.Min.Y)
	var supportedArea float64
	for _, b := range bearers {
		bMax := b.Max()
		supportedArea += geom.RectOverlapArea(box.Min.X, box.Min.Y, max.X, max.Y, b.Min.X, b.Min.Y, bMax.X, bMax.Y)
	}
	var ratio float64
	if footprintArea > 0 {
		ratio = supportedArea / footprintArea
	}

	vertices := supportedVertexCount(box, bearers)

	if ratio >= 0.75 && vertices >= 2 {
		return true
	}
	if ratio >= 0.50 && vertices >= 3 {
		return true
	}
	if ratio >= 0.40 && vertices >= 4 {
		return true
	}
	return false
}

// supportedVertexCount counts, among the item's four base corners inset by
// insetCorner toward the centroid, how many lie within (with epsilon) the
// footprint of at least one bearer.
func supportedVertexCount(box geom.Box, bearers []geom.Box) int {
	max := box.Max()
	cx := (box.Min.X + max.X) / 2
	cy := (box.Min.Y + max.Y) / 2

	inset := func(x, y float64) (float64, float64) {
		return insetToward(x, cx), insetToward(y, cy)
	}

	corners := [4][2]float64{}
	cxMinIn, cyMinIn := inset(box.Min.X, box.Min.Y)
	corners[0] = [2]float64{cxMinIn, cyMinIn}
	cxMaxIn, cyMinIn2 := inset(max.X, box.Min.Y)
	corners[1] = [2]float64{cxMaxIn, cyMinIn2}
	cxMinIn2, cyMaxIn := inset(box.Min.X, max.Y)
	corners[2] = [2]float64{cxMinIn2, cyMaxIn}
	cxMaxIn2, cyMaxIn2 := inset(max.X, max.Y)
	corners[3] = [2]float64{cxMaxIn2, cyMaxIn2}

	count := 0
	for _, c := range corners {
		supportedHere := false
		for _, b := range bearers {
			bMax := b.Max()
			if c[0] >= b.Min.X-geom.Epsilon && c[0] <= bMax.X+geom.Epsilon &&
				c[1] >= b.Min.Y-geom.Epsilon && c[1] <= bMax.Y+geom.Epsilon {
				supportedHere = true
				break
			}
		}
		if supportedHere {
			count++
		}
	}
	return count
}

func insetToward(v, center float64) float64 {
	if v < center {
		v += insetCorner
		if v > center {
			v = center
		}
	} else if v > center {
		v -= insetCorner
		if v < center {
			v = center
		}
	}
	return v
}

// StabilityTolerance picks tau from the pallet's current item count, per the
// count-based schedule of spec.md section 4.5.
func StabilityTolerance(count int) float64 {
	switch {
	case count < 3:
		return 0.99
	case count < 5:
		return 0.70
	case count < 10:
		return 0.50
	default:
		return 0.40
	}
}

// StabilityToleranceFillRate is the alternative fill-rate-based schedule
// documented as an acceptable substitute in spec.md section 4.5.
func StabilityToleranceFillRate(topHeight, palletHeight float64, count int) float64 {
	var fillRatio float64
	if palletHeight > 0 {
		fillRatio = topHeight / palletHeight
	}
	tau := 0.3 + (1-fillRatio)*0.5
	if count < 3 {
		tau += 0.2
	}
	if tau > 0.99 {
		tau = 0.99
	}
	if tau < 0.3 {
		tau = 0.3
	}
	return tau
}

// Stable checks the dynamic-stability invariant after hypothetically
// committing a tentative item to the pallet. The caller must pass the COM
// as if the item were already added (tentatively add -> test -> remove, or
// a pure hypothetical-COM computation); this function does not mutate p.
func Stable(com geom.Vec3, p *model.Pallet, tau float64) bool {
	if p.L == 0 || p.W == 0 {
		return true
	}
	dx := absf(com.X-p.L/2) / (p.L / 2)
	dy := absf(com.Y-p.W/2) / (p.W / 2)
	return dx <= tau && dy <= tau
}

// HypotheticalCOM computes the weighted center of mass the pallet would
// have if the given candidate item were added, without mutating the pallet.
func HypotheticalCOM(p *model.Pallet, candidate model.Item) geom.Vec3 {
	wc := make([]geom.WeightedCenter, 0, len(p.Items)+1)
	for _, it := range p.Items {
		wc = append(wc, geom.WeightedCenter{Center: it.Box().Center(), Weight: it.Weight})
	}
	wc = append(wc, geom.WeightedCenter{Center: candidate.Box().Center(), Weight: candidate.Weight})
	return geom.CenterOfMass(wc, p.L, p.W)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

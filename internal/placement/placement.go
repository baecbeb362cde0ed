// Package placement implements the Extreme Point-driven placement engine:
// given a pallet and a candidate item, search the pallet's EP set across
// orientations and commit the first constraint-satisfying placement.
package placement

import (
	"github.com/palletopt/palletizer/internal/constraint"
	"github.com/palletopt/palletizer/internal/model"
)

// Options configures a single TryPlace call.
type Options struct {
	// AllowRotation enables the rotated orientation in addition to
	// unrotated. Some seed placements forbid rotation entirely.
	AllowRotation bool
	// StabilitySchedule picks tau given the pallet's item count; defaults
	// to constraint.StabilityTolerance (the count-based schedule) when nil.
	StabilitySchedule func(p *model.Pallet) float64
}

func defaultSchedule(p *model.Pallet) float64 {
	return constraint.StabilityTolerance(len(p.Items))
}

// TryPlace attempts to place item on pallet p by iterating its EP set in
// priority order, trying each unused EP under every allowed orientation,
// and checking bounds, non-overlap, support, and stability in that order
// with short-circuit on the first failure. On success it commits the
// placement (mutating item and p), marks the EP used, generates the three
// derived EPs, and returns true. On failure item and p are left untouched.
func TryPlace(item *model.Item, p *model.Pallet, opts Options) bool {
	schedule := opts.StabilitySchedule
	if schedule == nil {
		schedule = defaultSchedule
	}

	orientations := []bool{false}
	if opts.AllowRotation {
		orientations = append(orientations, true)
	}

	for _, ep := range p.EPs.Sorted() {
		if ep.Used {
			continue
		}
		for _, rotated := range orientations {
			candidate := *item
			candidate.PlaceAt(ep.X, ep.Y, ep.Z, rotated)
			box := candidate.Box()

			if !constraint.WithinBounds(box, p) {
				continue
			}
			if !constraint.NoOverlap(box, p) {
				continue
			}
			if !constraint.Supported(box, p) {
				continue
			}
			com := constraint.HypotheticalCOM(p, candidate)
			tau := schedule(p)
			if !constraint.Stable(com, p, tau) {
				continue
			}

			*item = candidate
			p.Add(candidate)
			p.EPs.MarkUsed(ep.X, ep.Y, ep.Z)
			cl, cw, ch := candidate.CurrentExtents()
			p.EPs.GenerateDerived(ep.X, ep.Y, ep.Z, cl, cw, ch)
			return true
		}
	}
	return false
}

package model

import (
	"math"
	"sort"

	"github.com/palletopt/palletizer/internal/geom"
)

// ExtremePoint is a candidate placement coordinate in pallet space. Priority
// is lower-is-better: bottom-first, then closer to the pallet origin.
type ExtremePoint struct {
	X, Y, Z float64
	Used    bool
	seq     int // insertion order, for stable tie-breaking
}

// Priority computes 1000*z + sqrt(x^2+y^2): bottom layers dominate the
// ordering, and within a layer points closer to the origin sort first.
func (ep ExtremePoint) Priority() float64 {
	return 1000*ep.Z + math.Sqrt(ep.X*ep.X+ep.Y*ep.Y)
}

// ExtremePointSet maintains the EP collection for one pallet: insertion with
// de-duplication and out-of-bounds rejection, and a stable priority order
// over not-yet-used points.
type ExtremePointSet struct {
	points              []ExtremePoint
	palletL, palletW, palletH float64
	nextSeq             int
}

// NewExtremePointSet creates an EP set bounded by the given pallet extents,
// seeded with the single origin point (0,0,0).
func NewExtremePointSet(palletL, palletW, palletH float64) *ExtremePointSet {
	s := &ExtremePointSet{palletL: palletL, palletW: palletW, palletH: palletH}
	s.Insert(0, 0, 0)
	return s
}

// Insert adds an EP at (x,y,z) unless it lies outside the pallet bounds or
// duplicates (within epsilon on all axes) an existing point. Returns true if
// the point was actually added.
func (s *ExtremePointSet) Insert(x, y, z float64) bool {
	if x < -geom.Epsilon || y < -geom.Epsilon || z < -geom.Epsilon {
		return false
	}
	if x > s.palletL+geom.Epsilon || y > s.palletW+geom.Epsilon || z > s.palletH+geom.Epsilon {
		return false
	}
	candidate := geom.Vec3{X: x, Y: y, Z: z}
	for _, p := range s.points {
		if geom.SamePoint(geom.Vec3{X: p.X, Y: p.Y, Z: p.Z}, candidate) {
			return false
		}
	}
	s.points = append(s.points, ExtremePoint{X: x, Y: y, Z: z, seq: s.nextSeq})
	s.nextSeq++
	return true
}

// SeedFromItems initializes the EP set with the top-face vertices of each
// already-placed item, for the rarely used case of constructing a pallet
// from a non-empty item list (the evaluator always starts pallets empty and
// never uses this path).
func (s *ExtremePointSet) SeedFromItems(items []Item) {
	for _, it := range items {
		cl, cw, ch := it.CurrentExtents()
		top := it.Z + ch
		s.Insert(it.X+cl, it.Y, top)
		s.Insert(it.X, it.Y+cw, top)
		s.Insert(it.X+cl, it.Y+cw, top)
		s.Insert(it.X, it.Y, top)
	}
}

// GenerateDerived inserts the three EPs exposed by placing an item with
// extents (cl,cw,ch) at (x,y,z): the point beyond its far X face, beyond its
// far Y face, and atop it.
func (s *ExtremePointSet) GenerateDerived(x, y, z, cl, cw, ch float64) {
	s.Insert(x+cl, y, z)
	s.Insert(x, y+cw, z)
	s.Insert(x, y, z+ch)
}

// markUsedAt flags the EP at the given index of the set's insertion-ordered
// point list (not the Sorted order) as used; it is never removed, only
// skipped by future iteration.
func (s *ExtremePointSet) markUsedAt(i int) {
	s.points[i].Used = true
}

// Sorted returns the EP set's points in priority order (ascending, ties
// broken by insertion order), including used ones. Callers that only want
// unused candidates should filter with Used.
func (s *ExtremePointSet) Sorted() []ExtremePoint {
	out := make([]ExtremePoint, len(s.points))
	copy(out, s.points)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority(), out[j].Priority()
		if pi != pj {
			return pi < pj
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// MarkUsed flags the first not-yet-used EP matching (x,y,z) within epsilon.
func (s *ExtremePointSet) MarkUsed(x, y, z float64) {
	target := geom.Vec3{X: x, Y: y, Z: z}
	for i := range s.points {
		if s.points[i].Used {
			continue
		}
		if geom.SamePoint(geom.Vec3{X: s.points[i].X, Y: s.points[i].Y, Z: s.points[i].Z}, target) {
			s.markUsedAt(i)
			return
		}
	}
}

// Len returns the total number of EPs tracked, used or not.
func (s *ExtremePointSet) Len() int {
	return len(s.points)
}

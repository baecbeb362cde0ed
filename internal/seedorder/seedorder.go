// Package seedorder generates the ten deterministic heuristic product-id
// permutations used to seed the initial GA population (spec.md §4.8).
package seedorder

import (
	"sort"

	"github.com/palletopt/palletizer/internal/model"
)

type productStats struct {
	id           string
	meanWeight   float64
	count        float64
	meanBaseArea float64
	meanVolume   float64
	totalVolume  float64
}

func statsByProduct(itemsByProduct map[string][]model.Item) []productStats {
	stats := make([]productStats, 0, len(itemsByProduct))
	for pid, items := range itemsByProduct {
		if len(items) == 0 {
			continue
		}
		var totalWeight, totalArea, totalVol float64
		for _, it := range items {
			totalWeight += it.Weight
			totalArea += it.L * it.W
			totalVol += it.Volume()
		}
		n := float64(len(items))
		stats = append(stats, productStats{
			id:           pid,
			meanWeight:   totalWeight / n,
			count:        n,
			meanBaseArea: totalArea / n,
			meanVolume:   totalVol / n,
			totalVolume:  totalVol,
		})
	}
	return stats
}

// metric extracts one of the five ranking metrics from a productStats.
type metric func(productStats) float64

var metrics = []struct {
	name string
	fn   metric
}{
	{"meanWeight", func(s productStats) float64 { return s.meanWeight }},
	{"count", func(s productStats) float64 { return s.count }},
	{"meanBaseArea", func(s productStats) float64 { return s.meanBaseArea }},
	{"meanVolume", func(s productStats) float64 { return s.meanVolume }},
	{"totalVolume", func(s productStats) float64 { return s.totalVolume }},
}

func sortedIDs(stats []productStats, fn metric, ascending bool) []string {
	ordered := make([]productStats, len(stats))
	copy(ordered, stats)
	sort.SliceStable(ordered, func(i, j int) bool {
		vi, vj := fn(ordered[i]), fn(ordered[j])
		if vi != vj {
			if ascending {
				return vi < vj
			}
			return vi > vj
		}
		return ordered[i].id < ordered[j].id
	})
	ids := make([]string, len(ordered))
	for i, s := range ordered {
		ids[i] = s.id
	}
	return ids
}

// Generate returns the ten deterministic seed permutations: each of the
// five metrics sorted both ascending and descending, ties broken
// lexicographically by product id.
func Generate(itemsByProduct map[string][]model.Item) [][]string {
	stats := statsByProduct(itemsByProduct)
	seeds := make([][]string, 0, 2*len(metrics))
	for _, m := range metrics {
		seeds = append(seeds, sortedIDs(stats, m.fn, true))
		seeds = append(seeds, sortedIDs(stats, m.fn, false))
	}
	return seeds
}

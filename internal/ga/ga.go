// Package ga implements the NSGA-II-style multi-objective evolutionary
// search over product-id permutations: non-dominated sorting, crowding
// distance, mu+lambda survivor/offspring selection, and a stagnation-based
// early stop.
package ga

import (
	"math"
	"math/rand"
	"sort"

	"github.com/palletopt/palletizer/internal/evaluate"
	"github.com/palletopt/palletizer/internal/model"
	"github.com/palletopt/palletizer/internal/seedorder"
)

// Config holds the fixed NSGA-II parameters of spec.md section 4.7.
type Config struct {
	PopulationSize  int
	Mu              int
	Lambda          int
	CrossoverProb   float64
	MaxGenerations  int
	StagnationLimit int
	ImproveEpsilon  float64

	PalletLength, PalletWidth, PalletHeight float64
	MaxPallets                              int
}

// DefaultConfig returns the parameters fixed by spec.md section 4.7.
func DefaultConfig() Config {
	return Config{
		PopulationSize:  100,
		Mu:              15,
		Lambda:          30,
		CrossoverProb:   0.7,
		MaxGenerations:  30,
		StagnationLimit: 8,
		ImproveEpsilon:  1e-4,

		PalletLength: model.DefaultPalletLength,
		PalletWidth:  model.DefaultPalletWidth,
		PalletHeight: model.DefaultPalletHeight,
		MaxPallets:   5,
	}
}

// individual is a permutation of product ids with its evaluated fitness and
// NSGA-II bookkeeping.
type individual struct {
	genes    []string
	het      float64
	comp     float64
	vol      float64
	valid    bool
	evaluated bool

	rank     int
	crowding float64
}

// Result is the outcome of a full NSGA-II run: the best (incumbent)
// individual's genes and fitness, plus the pallets obtained by
// deterministically re-running evaluation on that permutation.
type Result struct {
	Genes        []string
	Het, Comp, Vol float64
	Valid        bool
	Generations  int

	Pallets  []*model.Pallet
	Unplaced []model.Item
}

// Run executes the search for one order's items, using rng as the sole
// source of randomness (the caller supplies a per-order-seeded RNG so the
// whole search is deterministic given the seed).
func Run(itemsByProduct map[string][]model.Item, cfg Config, rng *rand.Rand) Result {
	productIDs := make([]string, 0, len(itemsByProduct))
	for pid := range itemsByProduct {
		productIDs = append(productIDs, pid)
	}
	sort.Strings(productIDs)
	k := len(productIDs)

	if k == 0 {
		return Result{Valid: false}
	}

	population := initPopulation(productIDs, itemsByProduct, cfg, rng)
	evaluateAll(population, itemsByProduct, cfg)

	var incumbent *individual
	stagnant := 0
	gen := 0

	for ; gen < cfg.MaxGenerations; gen++ {
		fronts := nonDominatedSort(population)
		for _, front := range fronts {
			assignCrowding(population, front)
		}

		best := bestValid(population)
		improved := false
		if best != nil {
			if incumbent == nil || composite(*best) < composite(*incumbent)-cfg.ImproveEpsilon {
				incumbent = best
				improved = true
			}
		}
		if improved {
			stagnant = 0
		} else {
			stagnant++
		}
		if stagnant >= cfg.StagnationLimit {
			gen++
			break
		}

		survivors := selectSurvivors(population, fronts, cfg.Mu)
		offspring := makeOffspring(survivors, k, cfg, rng)

		population = append(survivors, offspring...)
		evaluateAll(population, itemsByProduct, cfg)
	}

	// final pass over the last population, in case the loop exited on the
	// generation cap without a trailing sort/incumbent update
	fronts := nonDominatedSort(population)
	for _, front := range fronts {
		assignCrowding(population, front)
	}
	if best := bestValid(population); best != nil {
		if incumbent == nil || composite(*best) < composite(*incumbent) {
			incumbent = best
		}
	}

	if incumbent == nil {
		var unplaced []model.Item
		for _, pid := range productIDs {
			unplaced = append(unplaced, itemsByProduct[pid]...)
		}
		return Result{Valid: false, Generations: gen, Unplaced: unplaced}
	}

	// Re-run deterministically against a fresh pallet stack to produce the
	// committed placements, rather than trusting stored metadata.
	final := evaluate.Run(incumbent.genes, itemsByProduct, cfg.MaxPallets, cfg.PalletLength, cfg.PalletWidth, cfg.PalletHeight)
	return Result{
		Genes:       incumbent.genes,
		Het:         final.Het,
		Comp:        final.Comp,
		Vol:         final.Vol,
		Valid:       final.Valid,
		Generations: gen,
		Pallets:     final.Pallets,
		Unplaced:    final.Unplaced,
	}
}

// composite is the scalar the stagnation counter watches: lower is better.
func composite(ind individual) float64 {
	return -ind.vol - ind.comp + ind.het
}

func bestValid(population []individual) *individual {
	var best *individual
	for i := range population {
		if !population[i].valid {
			continue
		}
		if best == nil || betterIncumbent(population[i], *best) {
			best = &population[i]
		}
	}
	return best
}

// betterIncumbent implements the incumbent ordering: maximize vol, then
// comp descending, then het ascending.
func betterIncumbent(a, b individual) bool {
	if a.vol != b.vol {
		return a.vol > b.vol
	}
	if a.comp != b.comp {
		return a.comp > b.comp
	}
	return a.het < b.het
}

func initPopulation(productIDs []string, itemsByProduct map[string][]model.Item, cfg Config, rng *rand.Rand) []individual {
	population := make([]individual, 0, cfg.PopulationSize)
	for _, seed := range seedorder.Generate(itemsByProduct) {
		population = append(population, individual{genes: seed})
	}
	for len(population) < cfg.PopulationSize {
		population = append(population, individual{genes: randomPermutation(productIDs, rng)})
	}
	return population
}

func randomPermutation(productIDs []string, rng *rand.Rand) []string {
	perm := rng.Perm(len(productIDs))
	out := make([]string, len(productIDs))
	for i, p := range perm {
		out[i] = productIDs[p]
	}
	return out
}

func evaluateAll(population []individual, itemsByProduct map[string][]model.Item, cfg Config) {
	for i := range population {
		if population[i].evaluated {
			continue
		}
		res := evaluate.Run(population[i].genes, itemsByProduct, cfg.MaxPallets, cfg.PalletLength, cfg.PalletWidth, cfg.PalletHeight)
		population[i].het = res.Het
		population[i].comp = res.Comp
		population[i].vol = res.Vol
		population[i].valid = res.Valid
		population[i].evaluated = true
	}
}

// dominates reports whether a dominates b: weakly better on all three
// objectives (het minimize, comp/vol maximize), strictly better on at
// least one. Invalid individuals never dominate; any valid individual
// dominates any invalid one.
func dominates(a, b individual) bool {
	if a.valid != b.valid {
		return a.valid
	}
	if !a.valid {
		return false
	}
	weaklyBetter := a.het <= b.het && a.comp >= b.comp && a.vol >= b.vol
	strictlyBetter := a.het < b.het || a.comp > b.comp || a.vol > b.vol
	return weaklyBetter && strictlyBetter
}

// nonDominatedSort partitions population indices into fronts, front 0
// being non-dominated. Invalid individuals are pushed to the terminal
// front, since dominates() always yields valid > invalid.
func nonDominatedSort(population []individual) [][]int {
	n := len(population)
	dominatedBy := make([][]int, n)
	dominationCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if dominates(population[i], population[j]) {
				dominatedBy[i] = append(dominatedBy[i], j)
			} else if dominates(population[j], population[i]) {
				dominationCount[i]++
			}
		}
	}

	var fronts [][]int
	current := make([]int, 0)
	for i := 0; i < n; i++ {
		if dominationCount[i] == 0 {
			current = append(current, i)
		}
	}

	for len(current) > 0 {
		fronts = append(fronts, current)
		var next []int
		for _, i := range current {
			for _, j := range dominatedBy[i] {
				dominationCount[j]--
				if dominationCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
	}
	return fronts
}

// assignCrowding computes the 3D crowding distance for every individual in
// one front, writing into population[idx].crowding.
func assignCrowding(population []individual, front []int) {
	if len(front) == 0 {
		return
	}
	for _, i := range front {
		population[i].crowding = 0
	}
	if len(front) <= 2 {
		for _, i := range front {
			population[i].crowding = math.Inf(1)
		}
		return
	}

	axes := []func(individual) float64{
		func(ind individual) float64 { return ind.het },
		func(ind individual) float64 { return ind.comp },
		func(ind individual) float64 { return ind.vol },
	}

	ordered := make([]int, len(front))
	copy(ordered, front)

	for _, axis := range axes {
		sort.Slice(ordered, func(a, b int) bool {
			return axis(population[ordered[a]]) < axis(population[ordered[b]])
		})
		lo := axis(population[ordered[0]])
		hi := axis(population[ordered[len(ordered)-1]])
		rangeVal := hi - lo

		population[ordered[0]].crowding = math.Inf(1)
		population[ordered[len(ordered)-1]].crowding = math.Inf(1)

		if rangeVal <= 0 {
			continue
		}
		for i := 1; i < len(ordered)-1; i++ {
			prev := axis(population[ordered[i-1]])
			next := axis(population[ordered[i+1]])
			population[ordered[i]].crowding += (next - prev) / rangeVal
		}
	}
}

// selectSurvivors walks fronts in order, taking whole fronts while they fit
// within mu; the overflow front is truncated by descending crowding
// distance.
func selectSurvivors(population []individual, fronts [][]int, mu int) []individual {
	survivors := make([]individual, 0, mu)
	for _, front := range fronts {
		if len(survivors)+len(front) <= mu {
			for _, i := range front {
				survivors = append(survivors, population[i])
			}
			continue
		}
		remaining := mu - len(survivors)
		if remaining <= 0 {
			break
		}
		ordered := make([]int, len(front))
		copy(ordered, front)
		sort.Slice(ordered, func(a, b int) bool {
			return population[ordered[a]].crowding > population[ordered[b]].crowding
		})
		for _, i := range ordered[:remaining] {
			survivors = append(survivors, population[i])
		}
		break
	}
	return survivors
}

func makeOffspring(survivors []individual, k int, cfg Config, rng *rand.Rand) []individual {
	offspring := make([]individual, 0, cfg.Lambda)
	for len(offspring) < cfg.Lambda {
		p1 := survivors[rng.Intn(len(survivors))]
		p2 := survivors[rng.Intn(len(survivors))]

		var child individual
		if rng.Float64() < cfg.CrossoverProb {
			child = individual{genes: crossover(p1.genes, p2.genes, k, rng)}
		} else {
			parent := p1
			if rng.Intn(2) == 1 {
				parent = p2
			}
			child = individual{genes: mutate(parent.genes, rng)}
		}
		offspring = append(offspring, child)
	}
	return offspring
}

// crossover performs single-point crossover: a prefix of parent1 up to a
// random point, followed by parent2's genes with the prefix's genes
// removed, in parent2's order.
func crossover(parent1, parent2 []string, k int, rng *rand.Rand) []string {
	if k <= 1 {
		out := make([]string, len(parent1))
		copy(out, parent1)
		return out
	}
	point := 1 + rng.Intn(k-1)

	child := make([]string, 0, k)
	taken := make(map[string]bool, point)
	for i := 0; i < point; i++ {
		child = append(child, parent1[i])
		taken[parent1[i]] = true
	}
	for _, gene := range parent2 {
		if !taken[gene] {
			child = append(child, gene)
		}
	}
	return child
}

// mutate clones parent and swaps two uniformly random positions.
func mutate(parent []string, rng *rand.Rand) []string {
	child := make([]string, len(parent))
	copy(child, parent)
	if len(child) < 2 {
		return child
	}
	i := rng.Intn(len(child))
	j := rng.Intn(len(child))
	child[i], child[j] = child[j], child[i]
	return child
}

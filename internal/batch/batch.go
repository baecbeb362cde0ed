// Package batch runs one independent evolutionary search per order across a
// bounded worker pool, with a deterministic per-order seed so the result is
// independent of scheduling or the chosen parallelism degree.
package batch

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/time/rate"

	"github.com/palletopt/palletizer/internal/ga"
	"github.com/palletopt/palletizer/internal/model"
)

const (
	// MinDegree and MaxDegree bound the worker pool's parallelism degree.
	MinDegree = 2
	MaxDegree = 8

	// baseItemsPerPallet is the divisor used for the item-count-based
	// pallet budget auto-sizing of spec.md section 4.9.
	baseItemsPerPallet = 50
)

// Options configures one batch run.
type Options struct {
	BaseSeed       int64
	Degree         int // clamped to [MinDegree, MaxDegree]
	BaseMaxPallets int // operator dial, default 5 (SPEC_FULL section 3)
	PalletLength, PalletWidth, PalletHeight float64
	GAConfig       ga.Config
}

// ClampDegree clamps d into [MinDegree, MaxDegree].
func ClampDegree(d int) int {
	if d < MinDegree {
		return MinDegree
	}
	if d > MaxDegree {
		return MaxDegree
	}
	return d
}

// StableHash returns a deterministic, platform-independent hash of an order
// id, used to derive a disjoint per-order RNG seed from the run's base
// seed.
func StableHash(orderID string) uint64 {
	return xxhash.Sum64String(orderID)
}

// OrderResult is one order's outcome: either a completed search result or a
// recorded failure (a panic during evaluation, with Err set), never both. A
// search that found no valid packing still counts as completed: Succeeded
// is true and GAResult.Valid is false.
type OrderResult struct {
	OrderID string
	Order   model.Order

	Succeeded bool
	GAResult  ga.Result
	Err       error

	Duration time.Duration
}

// Run executes the batch over orders, bounded by opts.Degree concurrent
// workers, and returns results sorted by order id. A single order's panic
// or search failure never aborts the rest of the batch.
func Run(ctx context.Context, orders []model.Order, opts Options) []OrderResult {
	degree := ClampDegree(opts.Degree)
	if opts.BaseMaxPallets <= 0 {
		opts.BaseMaxPallets = 5
	}

	sem := make(chan struct{}, degree)
	limiter := rate.NewLimiter(rate.Limit(degree*20), degree)

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make([]OrderResult, 0, len(orders))

	for _, order := range orders {
		order := order
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			_ = limiter.Wait(ctx)

			res := runOne(order, opts)

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}()
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].OrderID < results[j].OrderID
	})
	return results
}

// runOne evaluates a single order, recovering from any panic raised during
// evaluation and converting it into a failed OrderResult.
func runOne(order model.Order, opts Options) (result OrderResult) {
	result.OrderID = order.OrderID
	result.Order = order

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			result.Succeeded = false
			result.Err = fmt.Errorf("panic during order evaluation: %v", r)
		}
	}()

	seed := opts.BaseSeed + int64(StableHash(order.OrderID))
	rng := rand.New(rand.NewSource(seed))

	maxPallets := opts.BaseMaxPallets
	needed := int(math.Ceil(float64(len(order.Items)) / baseItemsPerPallet))
	if needed > maxPallets {
		maxPallets = needed
	}

	cfg := opts.GAConfig
	if cfg.PopulationSize == 0 {
		cfg = ga.DefaultConfig()
	}
	cfg.MaxPallets = maxPallets
	cfg.PalletLength = orDefault(opts.PalletLength, model.DefaultPalletLength)
	cfg.PalletWidth = orDefault(opts.PalletWidth, model.DefaultPalletWidth)
	cfg.PalletHeight = orDefault(opts.PalletHeight, model.DefaultPalletHeight)

	byProduct := order.ItemsByProduct()
	if len(byProduct) == 0 {
		result.Succeeded = true
		result.GAResult = ga.Result{Valid: true}
		return result
	}

	gaResult := ga.Run(byProduct, cfg, rng)
	result.Succeeded = true
	result.GAResult = gaResult
	return result
}

func orDefault(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}

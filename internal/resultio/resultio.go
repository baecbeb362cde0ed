// Package resultio writes the three external result artifacts: the
// cross-order summary CSV, the per-order pallet detail CSV, and the
// per-order item placements CSV (spec.md section 6).
package resultio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/palletopt/palletizer/internal/evaluate"
	"github.com/palletopt/palletizer/internal/ga"
	"github.com/palletopt/palletizer/internal/model"
)

// OrderOutcome is everything one order's summary/detail/placements rows are
// derived from.
type OrderOutcome struct {
	Order       model.Order
	Algorithm   string
	Result      ga.Result
	ExecutionMs float64
}

var summaryHeader = []string{
	"OrderId", "Algorithm", "ItemCount", "ProductTypes", "Entropy", "Complexity",
	"PalletsUsed", "ItemsPlaced", "ItemsUnplaced", "AvgVolumeUtilization",
	"AvgHeightUtilization", "TotalWeight", "AvgHeterogeneity", "AvgCompactness",
	"ExecutionTimeMs",
}

// WriteSummary appends one summary row per outcome, sorted by order id, and
// writes the header first.
func WriteSummary(w io.Writer, outcomes []OrderOutcome) error {
	sorted := sortedByOrderID(outcomes)

	writer := csv.NewWriter(w)
	if err := writer.Write(summaryHeader); err != nil {
		return fmt.Errorf("resultio: write summary header: %w", err)
	}

	for _, o := range sorted {
		itemCount := len(o.Order.Items)
		placed := 0
		for _, p := range o.Result.Pallets {
			placed += len(p.Items)
		}
		unplaced := itemCount - placed

		avgVol, avgHeight, avgHet, avgComp, totalWeight := aggregatePallets(o.Result.Pallets)

		row := []string{
			o.Order.OrderID,
			o.Algorithm,
			strconv.Itoa(itemCount),
			strconv.Itoa(len(o.Order.ProductIDs())),
			formatF(o.Order.Entropy(), 4),
			o.Order.Complexity().String(),
			strconv.Itoa(len(o.Result.Pallets)),
			strconv.Itoa(placed),
			strconv.Itoa(unplaced),
			formatF(avgVol, 4),
			formatF(avgHeight, 4),
			formatF(totalWeight, 2),
			formatF(avgHet, 4),
			formatF(avgComp, 4),
			formatF(o.ExecutionMs, 2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("resultio: write summary row for order %s: %w", o.Order.OrderID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

var detailHeader = []string{
	"OrderId", "PalletId", "ItemCount", "ProductTypes", "VolumeUtilization",
	"HeightUtilization", "Weight", "Heterogeneity", "Compactness", "Products",
}

// WriteDetail writes one row per pallet across all outcomes.
func WriteDetail(w io.Writer, outcomes []OrderOutcome) error {
	sorted := sortedByOrderID(outcomes)

	writer := csv.NewWriter(w)
	if err := writer.Write(detailHeader); err != nil {
		return fmt.Errorf("resultio: write detail header: %w", err)
	}

	for _, o := range sorted {
		k := len(o.Order.ProductIDs())
		for _, p := range o.Result.Pallets {
			het := 0.0
			if k > 0 {
				het = float64(p.ProductTypeCount()) / float64(k)
			}
			row := []string{
				o.Order.OrderID,
				strconv.Itoa(p.PalletID),
				strconv.Itoa(len(p.Items)),
				strconv.Itoa(p.ProductTypeCount()),
				formatF(p.VolumeUtilization(), 4),
				formatF(p.HeightUtilization(), 4),
				formatF(p.TotalWeight(), 4),
				formatF(het, 4),
				formatF(evaluate.PalletCompactness(p), 4),
				productSummary(p),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("resultio: write detail row for order %s: %w", o.Order.OrderID, err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

var placementsHeader = []string{
	"OrderId", "PalletId", "ItemId", "ProductId", "X", "Y", "Z", "Length",
	"Width", "Height", "Weight", "IsRotated", "PalletLength", "PalletWidth",
	"PalletMaxHeight",
}

var placementsHeaderWithColor = append(append([]string{}, placementsHeader...), "Color")

// WritePlacements writes one row per placed item across all outcomes. When
// withColor is true, a Color column (hash-derived per product id) is
// appended for the optional visualizer.
func WritePlacements(w io.Writer, outcomes []OrderOutcome, withColor bool) error {
	sorted := sortedByOrderID(outcomes)

	writer := csv.NewWriter(w)
	header := placementsHeader
	if withColor {
		header = placementsHeaderWithColor
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("resultio: write placements header: %w", err)
	}

	colors := make(map[string]string)

	for _, o := range sorted {
		for _, p := range o.Result.Pallets {
			for _, it := range p.Items {
				cl, cw, ch := it.CurrentExtents()
				row := []string{
					o.Order.OrderID,
					strconv.Itoa(p.PalletID),
					strconv.Itoa(it.ItemID),
					it.ProductID,
					formatF(it.X, 2),
					formatF(it.Y, 2),
					formatF(it.Z, 2),
					formatF(cl, 2),
					formatF(cw, 2),
					formatF(ch, 2),
					formatF(it.Weight, 2),
					strconv.FormatBool(it.Rotated),
					formatF(p.L, 2),
					formatF(p.W, 2),
					formatF(p.H, 2),
				}
				if withColor {
					color, ok := colors[it.ProductID]
					if !ok {
						color = ColorForProduct(it.ProductID)
						colors[it.ProductID] = color
					}
					row = append(row, color)
				}
				if err := writer.Write(row); err != nil {
					return fmt.Errorf("resultio: write placement row for order %s: %w", o.Order.OrderID, err)
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func aggregatePallets(pallets []*model.Pallet) (avgVol, avgHeight, avgHet, avgComp, totalWeight float64) {
	if len(pallets) == 0 {
		return 0, 0, 0, 0, 0
	}
	var k int
	seen := make(map[string]struct{})
	for _, p := range pallets {
		for _, it := range p.Items {
			seen[it.ProductID] = struct{}{}
		}
	}
	k = len(seen)

	var volSum, heightSum, hetSum, compSum float64
	for _, p := range pallets {
		volSum += p.VolumeUtilization()
		heightSum += p.HeightUtilization()
		if k > 0 {
			hetSum += float64(p.ProductTypeCount()) / float64(k)
		}
		compSum += evaluate.PalletCompactness(p)
		totalWeight += p.TotalWeight()
	}
	n := float64(len(pallets))
	return volSum / n, heightSum / n, hetSum / n, compSum / n, totalWeight
}

// productSummary renders a pallet's contents as a quoted "pid(count);..."
// string, sorted by product id for determinism.
func productSummary(p *model.Pallet) string {
	counts := make(map[string]int)
	for _, it := range p.Items {
		counts[it.ProductID]++
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ";"
		}
		out += fmt.Sprintf("%s(%d)", id, counts[id])
	}
	return out
}

func sortedByOrderID(outcomes []OrderOutcome) []OrderOutcome {
	sorted := make([]OrderOutcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Order.OrderID < sorted[j].Order.OrderID
	})
	return sorted
}

func formatF(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Package orderio reads the order CSV input format: one row per
// product-type line, quantity materialized into sequential item ids.
package orderio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/palletopt/palletizer/internal/model"
)

// expectedColumns is the header of the order CSV, in order.
var expectedColumns = []string{"Order", "Product", "Quantity", "Length", "Width", "Height", "Weight"}

// ReadResult holds everything produced by reading an order CSV: the
// reconstructed orders plus a list of rows skipped for malformed data.
type ReadResult struct {
	Orders   []model.Order
	Warnings []string
}

// Read parses the order CSV format of spec.md section 6 from r. Any row
// with fewer than 7 fields is silently skipped (recorded as a warning, not
// an error); a header row is expected and skipped if recognized.
func Read(r io.Reader) (ReadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return ReadResult{}, fmt.Errorf("orderio: read csv: %w", err)
	}
	if len(rows) == 0 {
		return ReadResult{}, nil
	}

	start := 0
	if looksLikeHeader(rows[0]) {
		start = 1
	}

	byOrder := make(map[string]*model.Order)
	var orderIDs []string
	var warnings []string
	nextItemID := make(map[string]int)

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 7 {
			warnings = append(warnings, fmt.Sprintf("orderio: row %d skipped (fewer than 7 fields)", i+1))
			continue
		}

		orderID := strings.TrimSpace(row[0])
		productID := strings.TrimSpace(row[1])
		quantity, err1 := strconv.Atoi(strings.TrimSpace(row[2]))
		length, err2 := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		width, err3 := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		height, err4 := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		weight, err5 := strconv.ParseFloat(strings.TrimSpace(row[6]), 64)

		if orderID == "" || productID == "" || err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || quantity <= 0 {
			warnings = append(warnings, fmt.Sprintf("orderio: row %d skipped (malformed fields)", i+1))
			continue
		}

		order, ok := byOrder[orderID]
		if !ok {
			order = &model.Order{OrderID: orderID}
			byOrder[orderID] = order
			orderIDs = append(orderIDs, orderID)
		}

		for q := 0; q < quantity; q++ {
			id := nextItemID[orderID]
			nextItemID[orderID] = id + 1
			order.Items = append(order.Items, model.Item{
				ProductID: productID,
				ItemID:    id,
				L:         length,
				W:         width,
				H:         height,
				Weight:    weight,
			})
		}
	}

	sort.Strings(orderIDs)
	orders := make([]model.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *byOrder[id])
	}

	return ReadResult{Orders: orders, Warnings: warnings}, nil
}

// looksLikeHeader reports whether the first row's cells case-insensitively
// match the expected column names (possibly a subset due to trailing
// extras); a non-matching first row is treated as data.
func looksLikeHeader(row []string) bool {
	if len(row) < len(expectedColumns) {
		return false
	}
	for i, want := range expectedColumns {
		if !strings.EqualFold(strings.TrimSpace(row[i]), want) {
			return false
		}
	}
	return true
}

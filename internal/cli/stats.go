package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// statsColumns are the summary CSV columns this command aggregates, by
// header name, matching resultio's summaryHeader.
var statsColumns = []string{
	"AvgVolumeUtilization", "AvgHeightUtilization", "AvgHeterogeneity",
	"AvgCompactness", "ExecutionTimeMs",
}

func newStatsCmd() *cobra.Command {
	var summaryPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate statistics over a previously written summary CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(summaryPath)
			if err != nil {
				return fmt.Errorf("cli: open summary %s: %w", summaryPath, err)
			}
			defer f.Close()

			report, err := computeStats(f)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&summaryPath, "summary", "", "summary CSV path (required)")
	_ = cmd.MarkFlagRequired("summary")

	return cmd
}

type statsReport struct {
	Orders  int
	Sums    map[string]float64
	Means   map[string]float64
	PalletsUsed int
	ItemsPlaced int
	ItemsUnplaced int
}

func computeStats(r io.Reader) (statsReport, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return statsReport{}, fmt.Errorf("cli: read summary csv: %w", err)
	}
	if len(rows) == 0 {
		return statsReport{Sums: map[string]float64{}, Means: map[string]float64{}}, nil
	}

	header := rows[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	report := statsReport{Sums: make(map[string]float64), Means: make(map[string]float64)}
	report.Orders = len(rows) - 1

	for _, row := range rows[1:] {
		for _, col := range statsColumns {
			idx, ok := colIndex[col]
			if !ok || idx >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				continue
			}
			report.Sums[col] += v
		}
		if idx, ok := colIndex["PalletsUsed"]; ok && idx < len(row) {
			if v, err := strconv.Atoi(row[idx]); err == nil {
				report.PalletsUsed += v
			}
		}
		if idx, ok := colIndex["ItemsPlaced"]; ok && idx < len(row) {
			if v, err := strconv.Atoi(row[idx]); err == nil {
				report.ItemsPlaced += v
			}
		}
		if idx, ok := colIndex["ItemsUnplaced"]; ok && idx < len(row) {
			if v, err := strconv.Atoi(row[idx]); err == nil {
				report.ItemsUnplaced += v
			}
		}
	}

	if report.Orders > 0 {
		for _, col := range statsColumns {
			report.Means[col] = report.Sums[col] / float64(report.Orders)
		}
	}
	return report, nil
}

func printStats(w io.Writer, r statsReport) {
	fmt.Fprintf(w, "orders:          %d\n", r.Orders)
	fmt.Fprintf(w, "pallets used:    %d\n", r.PalletsUsed)
	fmt.Fprintf(w, "items placed:    %d\n", r.ItemsPlaced)
	fmt.Fprintf(w, "items unplaced:  %d\n", r.ItemsUnplaced)
	fmt.Fprintf(w, "avg volume util: %.4f\n", r.Means["AvgVolumeUtilization"])
	fmt.Fprintf(w, "avg height util: %.4f\n", r.Means["AvgHeightUtilization"])
	fmt.Fprintf(w, "avg heterogen.:  %.4f\n", r.Means["AvgHeterogeneity"])
	fmt.Fprintf(w, "avg compactness: %.4f\n", r.Means["AvgCompactness"])
	fmt.Fprintf(w, "avg exec ms:     %.2f\n", r.Means["ExecutionTimeMs"])
}

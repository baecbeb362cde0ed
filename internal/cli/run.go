package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/palletopt/palletizer/internal/batch"
	"github.com/palletopt/palletizer/internal/orderio"
	"github.com/palletopt/palletizer/internal/resultio"
	"github.com/palletopt/palletizer/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	var (
		inputPath      string
		summaryPath    string
		detailPath     string
		placementsPath string
		withColor      bool
		degree         int
		seed           int64
		maxPallets     int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full order dataset through the evolutionary search, one worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.NewString()
			logger := loggerFromContext(cmd.Context()).With("run", runID)
			cfg := configFromContext(cmd.Context())

			opts := cfg.BatchOptions()
			if degree > 0 {
				opts.Degree = degree
			}
			if seed != 0 {
				opts.BaseSeed = seed
			}
			if maxPallets > 0 {
				opts.BaseMaxPallets = maxPallets
			}

			if summaryPath == "" {
				summaryPath = cfg.SummaryPath
			}
			if detailPath == "" {
				detailPath = cfg.DetailPath
			}
			if placementsPath == "" {
				placementsPath = cfg.PlacementsPath
			}

			f, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("cli: open input %s: %w", inputPath, err)
			}
			defer f.Close()

			read, err := orderio.Read(f)
			if err != nil {
				return fmt.Errorf("cli: read orders: %w", err)
			}
			for _, w := range read.Warnings {
				logger.Warn(w)
			}
			logger.Info("loaded orders", "count", len(read.Orders), "degree", batch.ClampDegree(opts.Degree))

			telemetry.RegisterDefault()

			start := time.Now()
			results := batch.Run(cmd.Context(), read.Orders, opts)
			elapsed := time.Since(start)
			logger.Info("batch complete", "orders", len(results), "elapsed", elapsed)

			outcomes := make([]resultio.OrderOutcome, 0, len(results))
			for _, r := range results {
				outcome := "placed"
				if !r.Succeeded {
					outcome = "failed"
				} else if !r.GAResult.Valid {
					outcome = "unplaced"
				}
				telemetry.OrdersProcessed.WithLabelValues(outcome).Inc()
				telemetry.SearchDuration.Observe(r.Duration.Seconds())
				telemetry.GAGenerations.Observe(float64(r.GAResult.Generations))

				if r.Err != nil {
					logger.Error("order failed", "order", r.OrderID, "err", r.Err)
				}
				outcomes = append(outcomes, resultio.OrderOutcome{
					Order:       r.Order,
					Algorithm:   "nsga2-extreme-point",
					Result:      r.GAResult,
					ExecutionMs: float64(r.Duration.Microseconds()) / 1000.0,
				})
			}

			if err := writeOutputs(outcomes, summaryPath, detailPath, placementsPath, withColor); err != nil {
				return err
			}
			logger.Info("wrote outputs", "summary", summaryPath, "detail", detailPath, "placements", placementsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "order CSV input path (required)")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "summary CSV output path (default from config)")
	cmd.Flags().StringVar(&detailPath, "detail", "", "pallet detail CSV output path (default from config)")
	cmd.Flags().StringVar(&placementsPath, "placements", "", "item placements CSV output path (default from config)")
	cmd.Flags().BoolVar(&withColor, "color", false, "append a per-product Color column to the placements CSV")
	cmd.Flags().IntVar(&degree, "degree", 0, "worker pool degree, 2-8 (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base RNG seed (default from config)")
	cmd.Flags().IntVar(&maxPallets, "max-pallets", 0, "base pallet budget per order (default from config)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func writeOutputs(outcomes []resultio.OrderOutcome, summaryPath, detailPath, placementsPath string, withColor bool) error {
	sf, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("cli: create summary file: %w", err)
	}
	defer sf.Close()
	if err := resultio.WriteSummary(sf, outcomes); err != nil {
		return err
	}

	df, err := os.Create(detailPath)
	if err != nil {
		return fmt.Errorf("cli: create detail file: %w", err)
	}
	defer df.Close()
	if err := resultio.WriteDetail(df, outcomes); err != nil {
		return err
	}

	pf, err := os.Create(placementsPath)
	if err != nil {
		return fmt.Errorf("cli: create placements file: %w", err)
	}
	defer pf.Close()
	return resultio.WritePlacements(pf, outcomes, withColor)
}

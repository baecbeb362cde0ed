package cli

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/palletopt/palletizer/internal/batch"
	"github.com/palletopt/palletizer/internal/ga"
	"github.com/palletopt/palletizer/internal/orderio"
)

func newOrderCmd() *cobra.Command {
	var (
		inputPath string
		orderID   string
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Run the evolutionary search for a single order from a dataset and print its result",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := configFromContext(cmd.Context())

			f, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("cli: open input %s: %w", inputPath, err)
			}
			defer f.Close()

			read, err := orderio.Read(f)
			if err != nil {
				return fmt.Errorf("cli: read orders: %w", err)
			}

			var found bool
			var items int
			gaCfg := cfg.GAConfig()
			if seed == 0 {
				seed = cfg.BaseSeed
			}

			for _, order := range read.Orders {
				if order.OrderID != orderID {
					continue
				}
				found = true
				items = len(order.Items)

				effectiveSeed := seed + int64(batch.StableHash(order.OrderID))
				rng := rand.New(rand.NewSource(effectiveSeed))

				byProduct := order.ItemsByProduct()
				needed := (len(order.Items) + 49) / 50
				maxPallets := cfg.BaseMaxPallets
				if needed > maxPallets {
					maxPallets = needed
				}
				gaCfg.MaxPallets = maxPallets

				result := ga.Run(byProduct, gaCfg, rng)

				logger.Info("order result",
					"order", order.OrderID,
					"items", items,
					"valid", result.Valid,
					"pallets", len(result.Pallets),
					"generations", result.Generations,
					"het", result.Het,
					"comp", result.Comp,
					"vol", result.Vol,
				)
				fmt.Printf("order=%s valid=%t pallets=%d generations=%d het=%.4f comp=%.4f vol=%.4f\n",
					order.OrderID, result.Valid, len(result.Pallets), result.Generations, result.Het, result.Comp, result.Vol)
			}

			if !found {
				return fmt.Errorf("cli: order %q not found in %s", orderID, inputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "order CSV input path (required)")
	cmd.Flags().StringVar(&orderID, "id", "", "order id to run (required)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base RNG seed (default from config)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

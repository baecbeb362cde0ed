package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/palletopt/palletizer/internal/config"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. Called by
// cmd/palletizer during initialization with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the palletizer CLI and returns an error if any command fails.
func Execute() error {
	var (
		verbose    bool
		logLevel   string
		configPath string
	)

	root := &cobra.Command{
		Use:          "palletizer",
		Short:        "palletizer packs multi-product orders onto pallets",
		Long:         `palletizer searches for high-density, low-complexity pallet arrangements for multi-product orders using an extreme-point placement heuristic driven by a multi-objective evolutionary search.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := parseLevel(logLevel)
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))

			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("palletizer %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.palletizer/config.toml)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newOrderCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(context.Background())
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palletopt/palletizer/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the palletizer config file",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", cfg)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			logger.Info("wrote default config", "path", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "destination path (default ~/.palletizer/config.toml)")
	return cmd
}

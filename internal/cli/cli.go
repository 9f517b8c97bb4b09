// Package cli implements the varsdemo command-line interface.
//
// The commands drive the variable runtime from a terminal:
//   - animate: run an eased animation over a simulated clock and print each frame
//   - chain: push values through a chain of mapped, bound and merged variables
//
// All commands support --verbose (-v) for debug logging of the apply cycles and
// --config to load a runtime configuration file (.toml, .yaml or .yml).
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/vars"
)

// Execute runs the varsdemo CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "varsdemo",
		Short:        "varsdemo drives reactive variables from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg := vars.DefaultConfig()
			if configPath != "" {
				loaded, err := vars.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if verbose {
				cfg.LogLevel = level.String()
			}

			return vars.Configure(cfg, vars.WithLogger(logger.WithPrefix("vars")))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "runtime configuration file (.toml, .yaml)")

	root.AddCommand(newAnimateCmd())
	root.AddCommand(newChainCmd())

	return root
}

// Package cli implements the semprove command line.
package cli

import (
	"fmt"

	"github.com/Harshitk-cp/semprove/internal/buildconfig"
	"github.com/Harshitk-cp/semprove/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCmd builds the command tree. Configuration comes from the
// environment, loaded before any subcommand runs; flags override it.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "semprove",
		Short: "Compose logical forms for sentences and check entailment between them",
		Long: `semprove turns parsed sentences into typed logical formulas using a
template lexicon, stores them with their provenance, and asks a deductive
prover whether a set of premises entails a conclusion.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			logger, err := NewLogger(config.LogLevel(), opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newComposeCmd(opts),
		newProveCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newInitDBCmd(opts),
		newVersionCmd(),
	)
	return root
}

// NewLogger returns a production logger at level, or a development logger
// when verbose is set or level is debug.
func NewLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose || level == "debug" {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildconfig.String())
		},
	}
}

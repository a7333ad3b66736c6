package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Harshitk-cp/semprove/internal/bootstrap"
	"github.com/Harshitk-cp/semprove/internal/config"
	"github.com/Harshitk-cp/semprove/internal/prover"
	"github.com/spf13/cobra"
)

func newProveCmd(opts *rootOptions) *cobra.Command {
	var (
		premises    []string
		conclusion  string
		libraryPath string
		backend     string
		command     string
		timeout     time.Duration
		showScript  bool
	)

	cmd := &cobra.Command{
		Use:   "prove --premise <formula>... --conclusion <formula>",
		Short: "Check whether premises entail a conclusion",
		Long: `prove builds a proof script from the premises, the conclusion and an optional
library of typed declarations, runs the prover and prints one of
"proved", "not proved" or "unknown". Without --library the declarations
are inferred from the formulas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if conclusion == "" {
				return fmt.Errorf("--conclusion is required")
			}
			if !cmd.Flags().Changed("backend") {
				backend = config.ProverBackend()
			}
			if !cmd.Flags().Changed("command") {
				command = config.ProverCommand()
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = config.ProverTimeout()
			}

			p := prover.Problem{Premises: premises, Conclusion: conclusion}
			if libraryPath != "" {
				lib, err := os.ReadFile(libraryPath)
				if err != nil {
					return err
				}
				p.Library = string(lib)
			}

			orch, err := bootstrap.NewOrchestrator(backend, command, timeout, opts.logger)
			if err != nil {
				return err
			}
			out := orch.Prove(cmd.Context(), p)
			if showScript && out.Script != "" {
				fmt.Fprint(cmd.ErrOrStderr(), out.Script)
			}
			if out.Reason != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), out.Reason)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Result)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&premises, "premise", "p", nil, "premise formula, in order (repeatable)")
	cmd.Flags().StringVarP(&conclusion, "conclusion", "c", "", "conclusion formula")
	cmd.Flags().StringVar(&libraryPath, "library", "", "file of Parameter declarations")
	cmd.Flags().StringVar(&backend, "backend", "command", "prover backend: command or datalog")
	cmd.Flags().StringVar(&command, "command", "", "prover command line; the script path is appended")
	cmd.Flags().DurationVar(&timeout, "timeout", prover.DefaultTimeout, "prover wall-clock limit")
	cmd.Flags().BoolVar(&showScript, "script", false, "print the proof script to stderr")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/Harshitk-cp/semprove/internal/config"
	"github.com/Harshitk-cp/semprove/internal/derivation"
	"github.com/Harshitk-cp/semprove/internal/semantics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newComposeCmd(opts *rootOptions) *cobra.Command {
	var nbest, workers int

	cmd := &cobra.Command{
		Use:   "compose <ccg.xml> <templates.yaml> <out.sem.xml>",
		Short: "Compose semantics for every sentence of a parsed document",
		Long: `compose reads a derivation document, composes a formula for each selected
derivation of each sentence and writes the document back with one semantics
block per attempt. A sentence with a gold_tree attribute composes only that
tree; otherwise the first --nbest trees are used (0 means all).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("nbest") {
				nbest = config.NBest()
			}
			if !cmd.Flags().Changed("workers") {
				workers = config.ComposeWorkers()
			}

			root, err := derivation.ReadFile(args[0])
			if err != nil {
				return err
			}
			lex, err := semantics.LoadLexicon(args[1])
			if err != nil {
				return err
			}
			out, err := semantics.NewComposer(lex, workers, opts.logger).ComposeDocument(cmd.Context(), root, nbest)
			if err != nil {
				return err
			}
			if err := derivation.WriteFile(args[2], out); err != nil {
				return err
			}

			var ok, failed int
			for _, s := range out.Sentences() {
				for _, sem := range s.Semantics {
					if sem.Status == string(semantics.StatusSuccess) {
						ok++
					} else {
						failed++
					}
				}
			}
			opts.logger.Info("document composed",
				zap.String("out", args[2]),
				zap.Int("sentences", len(out.Sentences())),
				zap.Int("succeeded", ok),
				zap.Int("failed", failed),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%d sentences, %d attempts succeeded, %d failed\n", len(out.Sentences()), ok, failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&nbest, "nbest", 0, "derivations to compose per sentence (0 = all)")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel composition attempts per sentence")
	return cmd
}

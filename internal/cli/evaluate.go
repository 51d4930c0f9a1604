package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/latentstruct/coref"
	"github.com/latentstruct/coref/corpus"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var corpusPath string
	var experimentPath string

	cmd := &cobra.Command{
		Use:     "evaluate <modelfile>",
		Short:   "Evaluate a trained model on an annotated corpus",
		Args:    cobra.ExactArgs(1),
		Example: `  coref evaluate model.json --corpus dev.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := loadExperiment(experimentPath)
			if err != nil {
				return err
			}
			docs, err := corpus.ReadCorpus(corpusPath)
			if err != nil {
				return err
			}
			r, err := coref.Load(args[0], exp, nil)
			if err != nil {
				return err
			}

			slog.Info("Evaluating", "corpus", corpusPath, "documents", len(docs))
			start := time.Now()
			result, err := coref.Evaluate(r, docs)
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			fmt.Printf("Link precision: %.1f%% (%d/%d)\n",
				result.Precision*100, result.CorrectLinks, result.PredictedLinks)
			fmt.Printf("Link recall:    %.1f%% (%d/%d)\n",
				result.Recall*100, result.CorrectLinks, result.GoldLinks)
			fmt.Printf("Link F1:        %.1f%%\n", result.F1*100)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "dev.json", "Path to evaluation corpus")
	cmd.Flags().StringVar(&experimentPath, "experiment", "", "Path to TOML experiment file")
	return cmd
}

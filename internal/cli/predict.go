package cli

import (
	"log/slog"
	"time"

	"github.com/latentstruct/coref"
	"github.com/latentstruct/coref/corpus"
	"github.com/spf13/cobra"
)

func (c *CLI) newPredictCommand() *cobra.Command {
	var corpusPath string
	var experimentPath string
	var outPath string

	cmd := &cobra.Command{
		Use:     "predict <modelfile>",
		Short:   "Predict coreference chains for a corpus",
		Args:    cobra.ExactArgs(1),
		Example: `  coref predict model.json --corpus test.json --out predictions.json`,
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

			slog.Info("Predicting", "corpus", corpusPath, "documents", len(docs))
			start := time.Now()
			results, err := r.Predict(docs)
			if err != nil {
				return err
			}
			slog.Debug("Prediction completed", "duration", time.Since(start))

			if err := corpus.WritePredictions(outPath, docs, results); err != nil {
				return err
			}
			slog.Info("Predictions written", "path", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "test.json", "Path to input corpus")
	cmd.Flags().StringVar(&experimentPath, "experiment", "", "Path to TOML experiment file")
	cmd.Flags().StringVar(&outPath, "out", "predictions.json", "Path to output file")
	return cmd
}

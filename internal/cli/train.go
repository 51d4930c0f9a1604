package cli

import (
	"log/slog"
	"time"

	"github.com/latentstruct/coref"
	"github.com/latentstruct/coref/corpus"
	"github.com/latentstruct/coref/internal/config"
	"github.com/spf13/cobra"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var corpusPath string
	var experimentPath string
	var progress bool

	cmd := &cobra.Command{
		Use:   "train <modelfile>",
		Short: "Train a coreference model on an annotated corpus",
		Args:  cobra.ExactArgs(1),
		Example: `  coref train model.json --corpus train.json
  coref train model.json --corpus train.json --experiment ranking.toml -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelPath := args[0]

			exp, err := loadExperiment(experimentPath)
			if err != nil {
				return err
			}
			docs, err := corpus.ReadCorpus(corpusPath)
			if err != nil {
				return err
			}

			slog.Info("Training resolver",
				"corpus", corpusPath,
				"documents", len(docs),
				"approach", exp.Approach,
				"output", modelPath)
			start := time.Now()

			r, err := coref.Train(docs, exp, &coref.Options{
				Verbose:  c.verbose,
				Progress: progress && !c.silent,
			})
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start))

			if err := r.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "train.json", "Path to training corpus")
	cmd.Flags().StringVar(&experimentPath, "experiment", "", "Path to TOML experiment file")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show progress bars")
	return cmd
}

// loadExperiment reads the experiment file when given, or falls back to
// the default mention-ranking experiment.
func loadExperiment(path string) (config.Experiment, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/latentstruct/coref"
	"github.com/latentstruct/coref/corpus"
	"github.com/latentstruct/coref/decoder"
	"github.com/spf13/cobra"
)

func (c *CLI) newKBestCommand() *cobra.Command {
	var corpusPath string
	var experimentPath string
	var outPath string
	var k int
	var variant string

	cmd := &cobra.Command{
		Use:     "kbest <modelfile>",
		Short:   "Compute k-best antecedent assignments per document",
		Args:    cobra.ExactArgs(1),
		Example: `  coref kbest model.json --corpus test.json --k 5 --variant agenda`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kv decoder.KBestVariant
			switch variant {
			case "agenda":
				kv = decoder.Agenda
			case "overgenerating":
				kv = decoder.Overgenerating
			default:
				return fmt.Errorf("unknown k-best variant %q", variant)
			}
			if k <= 0 {
				return fmt.Errorf("k must be positive, got %d", k)
			}

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

			slog.Info("Searching k-best solutions",
				"corpus", corpusPath, "k", k, "variant", variant)
			solutions, err := r.KBestSolutions(docs, k, kv)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(solutions, "", "  ")
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return err
			}
			slog.Info("Solutions written", "path", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "test.json", "Path to input corpus")
	cmd.Flags().StringVar(&experimentPath, "experiment", "", "Path to TOML experiment file")
	cmd.Flags().StringVar(&outPath, "out", "", "Path to output file (default stdout)")
	cmd.Flags().IntVar(&k, "k", 5, "Number of solutions per document")
	cmd.Flags().StringVar(&variant, "variant", "agenda", "Search variant (agenda|overgenerating)")
	return cmd
}

package perceptron

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/cheggaaa/pb"
	"github.com/latentstruct/coref/decoder"
	"github.com/latentstruct/coref/extract"
)

// TrainerConfig holds configuration for perceptron training.
type TrainerConfig struct {
	Epochs   int
	Seed     int64
	Verbose  bool
	Progress bool

	// SnapshotPath, when set, saves the averaged model after every epoch
	// to SnapshotPath with an ".epochN" suffix.
	SnapshotPath string
}

// DefaultTrainerConfig returns the standard training configuration.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{Epochs: 5, Seed: 23}
}

// Trainer runs epochs of structured perceptron training: each epoch
// shuffles the substructures with a seeded generator, decodes each one
// in training mode and applies a mistake-driven update. Training is
// strictly sequential so that a fixed seed reproduces the exact same
// model.
type Trainer struct {
	Decoder decoder.Decoder
	Config  TrainerConfig
}

// Train fits the perceptron on the extracted instances and returns the
// averaged model.
func (t *Trainer) Train(inst *extract.Instances, p *Perceptron) (*Model, error) {
	if t.Decoder == nil {
		return nil, fmt.Errorf("coref: trainer has no decoder")
	}
	epochs := t.Config.Epochs
	if epochs <= 0 {
		epochs = DefaultTrainerConfig().Epochs
	}

	rng := rand.New(rand.NewSource(t.Config.Seed))
	order := make([]int, len(inst.Substructures))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		var bar *pb.ProgressBar
		if t.Config.Progress {
			bar = pb.StartNew(len(order))
		}

		mistakes := 0
		for _, idx := range order {
			sub := inst.Substructures[idx]
			if len(sub.Arcs) == 0 {
				continue
			}
			res := t.Decoder.Decode(sub, p, decoder.Train)
			if p.Update(sub, res) {
				mistakes++
			}
			if bar != nil {
				bar.Increment()
			}
		}
		if bar != nil {
			bar.Finish()
		}

		if t.Config.Verbose {
			slog.Info("finished training epoch",
				"epoch", epoch+1,
				"epochs", epochs,
				"mistakes", mistakes,
				"substructures", len(order))
		}

		if t.Config.SnapshotPath != "" {
			path := fmt.Sprintf("%s.epoch%d", t.Config.SnapshotPath, epoch+1)
			if err := SaveModel(p.AveragedModel(), path); err != nil {
				return nil, fmt.Errorf("coref: save epoch snapshot: %w", err)
			}
		}
	}

	return p.AveragedModel(), nil
}

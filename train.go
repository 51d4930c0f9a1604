package coref

import (
	"fmt"

	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/internal/config"
	"github.com/latentstruct/coref/mention"
	"github.com/latentstruct/coref/perceptron"
)

// EvalResult holds link-level evaluation results: pairwise precision,
// recall and F1 over mention pairs placed in the same entity.
type EvalResult struct {
	Precision float64
	Recall    float64
	F1        float64

	CorrectLinks   int
	PredictedLinks int
	GoldLinks      int
}

// Train fits a resolver on the given documents according to the
// experiment. The corpus must carry gold annotations.
func Train(docs []*mention.Document, exp config.Experiment, opts *Options) (*Resolver, error) {
	s, err := newSetup(exp)
	if err != nil {
		return nil, err
	}

	var o Options
	if opts != nil {
		o = *opts
	}
	mfs, pfs := o.MentionFeatures, o.PairFeatures
	if mfs == nil && pfs == nil {
		mfs, pfs = DefaultFeatures(docs)
	}

	ex := &extract.Extractor{
		Substructures:   s.trainSubs,
		MentionFeatures: mfs,
		PairFeatures:    pfs,
		Cost:            s.cost,
		Labels:          s.dec.Labels(),
		Workers:         exp.Workers,
		Progress:        o.Progress,
	}
	inst, err := ex.Extract(docs)
	if err != nil {
		return nil, fmt.Errorf("coref: %w", err)
	}
	if len(inst.Substructures) == 0 {
		return nil, fmt.Errorf("coref: no training instances extracted")
	}

	p := perceptron.New(s.dec.Labels(), exp.CostScaling)
	trainer := &perceptron.Trainer{
		Decoder: s.dec,
		Config: perceptron.TrainerConfig{
			Epochs:   exp.Iterations,
			Seed:     exp.Seed,
			Verbose:  o.Verbose,
			Progress: o.Progress,
		},
	}
	model, err := trainer.Train(inst, p)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		exp:             exp,
		model:           model,
		mentionFeatures: mfs,
		pairFeatures:    pfs,
	}, nil
}

// Evaluate predicts coreference on annotated documents and scores the
// result at the link level: a predicted link is correct when both
// mentions share a gold entity.
func Evaluate(r *Resolver, docs []*mention.Document) (*EvalResult, error) {
	results, err := r.Predict(docs)
	if err != nil {
		return nil, err
	}

	res := &EvalResult{}
	for i, doc := range docs {
		entities := results[i].Entities
		for ana := 2; ana < len(doc.Mentions); ana++ {
			for ante := 1; ante < ana; ante++ {
				gold := doc.IsCoreferent(ana, ante)
				pred := entities[ana] == entities[ante]
				if gold {
					res.GoldLinks++
				}
				if pred {
					res.PredictedLinks++
				}
				if gold && pred {
					res.CorrectLinks++
				}
			}
		}
	}

	if res.PredictedLinks > 0 {
		res.Precision = float64(res.CorrectLinks) / float64(res.PredictedLinks)
	}
	if res.GoldLinks > 0 {
		res.Recall = float64(res.CorrectLinks) / float64(res.GoldLinks)
	}
	if res.Precision+res.Recall > 0 {
		res.F1 = 2 * res.Precision * res.Recall / (res.Precision + res.Recall)
	}
	return res, nil
}

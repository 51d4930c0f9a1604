// Package decoder implements the family of decoding algorithms over
// candidate-arc substructures: best-first ranking, latent antecedent trees,
// thresholded antecedent graphs, cluster-level hypergraphs, incremental
// entity clustering and independent mention-pair decisions, plus an
// approximate k-best search on top of the ranking decode.
package decoder

import (
	"math"

	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/mention"
)

// Scorer scores arcs under a model. During training the plain variant is
// augmented with the scaled arc cost; during prediction both variants
// coincide (cost scaling 0).
type Scorer interface {
	// Score returns the cost-augmented score of an arc under a label.
	Score(info *extract.ArcInfo, label string) float64
	// ScoreNoCost returns the model score without cost augmentation.
	ScoreNoCost(info *extract.ArcInfo, label string) float64
	// CostScaling returns the factor applied to arc costs.
	CostScaling() float64
}

// Mode selects between cost-augmented training decodes, which also track
// the best gold-consistent assignment, and plain prediction decodes.
type Mode int

const (
	Train Mode = iota
	Predict
)

// Result is the outcome of decoding one substructure: the predicted
// assignment and, for training, the best gold-consistent (latent)
// assignment. Label slices may be empty for approaches that do not label
// arcs; such arcs implicitly carry the label "+".
type Result struct {
	Arcs   []mention.Arc
	Labels []string
	Scores []float64

	ConsArcs   []mention.Arc
	ConsLabels []string
	ConsScores []float64

	// Consistent reports whether the predicted assignment agrees with the
	// gold annotation.
	Consistent bool
}

// LabelAt returns the label of the ith predicted arc, defaulting to "+"
// for unlabeled approaches.
func (r Result) LabelAt(i int) string {
	if i < len(r.Labels) {
		return r.Labels[i]
	}
	return "+"
}

// ConsLabelAt returns the label of the ith reference arc.
func (r Result) ConsLabelAt(i int) string {
	if i < len(r.ConsLabels) {
		return r.ConsLabels[i]
	}
	return "+"
}

// Equal reports whether predicted and reference assignments coincide by
// arc and label identity.
func (r Result) Equal() bool {
	if len(r.Arcs) != len(r.ConsArcs) {
		return false
	}
	for i := range r.Arcs {
		if r.Arcs[i] != r.ConsArcs[i] || r.LabelAt(i) != r.ConsLabelAt(i) {
			return false
		}
	}
	return true
}

// Decoder computes predicted and latent reference assignments for one
// substructure. Decoders are stateless pure functions of their inputs,
// except the entity and hypergraph variants, which build and mutate a
// per-document Clustering during the decode.
type Decoder interface {
	Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result
	// Labels returns the closed label set of the approach.
	Labels() []string
	// CorefLabels returns the labels that assert coreference.
	CorefLabels() []string
}

type unlabeled struct{}

func (unlabeled) Labels() []string { return []string{"+"} }

func (unlabeled) CorefLabels() []string { return []string{"+"} }

// bestArcs is the shared linear scan over an ordered candidate list: it
// tracks the best-scoring arc and the best-scoring gold-consistent arc.
// Comparisons are strict, so ties go to the first candidate seen; since
// candidates are ordered nearest first, ties favor the closest antecedent.
type bestArcs struct {
	best    mention.Arc
	bestVal float64
	bestOK  bool

	cons    mention.Arc
	consVal float64
	consOK  bool

	bestConsistent bool
}

func findBestArcs(arcs []mention.Arc, info extract.ArcTable, scorer Scorer) bestArcs {
	b := bestArcs{bestVal: math.Inf(-1), consVal: math.Inf(-1)}
	for _, arc := range arcs {
		ai := info[arc]
		score := scorer.Score(ai, "+")

		if score > b.bestVal {
			b.best = arc
			b.bestVal = score
			b.bestOK = true
			b.bestConsistent = ai.Consistent
		}
		if score > b.consVal && ai.Consistent {
			b.cons = arc
			b.consVal = score
			b.consOK = true
		}
	}
	return b
}

// anaphorSlice addresses the candidate group of one anaphor inside a
// document-wide substructure laid out by extract.DocumentSubstructure:
// anaphor j owns arcs [j(j-1)/2, j(j-1)/2+j).
func anaphorSlice(arcs []mention.Arc, ana int) []mention.Arc {
	first := ana * (ana - 1) / 2
	return arcs[first : first+ana]
}

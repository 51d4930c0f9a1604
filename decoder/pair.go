package decoder

import (
	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/mention"
)

// MentionPair decides a single arc in isolation: coreferent ("+") or not
// ("-"), whichever scores higher. Ties favor "+". The reference label is
// "+" exactly when the arc is gold-consistent.
type MentionPair struct{}

func (MentionPair) Labels() []string { return []string{"+", "-"} }

func (MentionPair) CorefLabels() []string { return []string{"+"} }

func (MentionPair) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}

	arc := sub.Arcs[0]
	ai := sub.Info[arc]

	scoreCoref := scorer.Score(ai, "+")
	scoreNonCoref := scorer.Score(ai, "-")

	label, score := "+", scoreCoref
	if scoreNonCoref > scoreCoref {
		label, score = "-", scoreNonCoref
	}

	consLabel, consScore := "-", scoreNonCoref
	if ai.Consistent {
		consLabel, consScore = "+", scoreCoref
	}

	return Result{
		Arcs:       []mention.Arc{arc},
		Labels:     []string{label},
		Scores:     []float64{score},
		ConsArcs:   []mention.Arc{arc},
		ConsLabels: []string{consLabel},
		ConsScores: []float64{consScore},
		Consistent: label == consLabel,
	}
}

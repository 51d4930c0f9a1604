package decoder

import (
	"math"

	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/mention"
)

// Ranking decodes one anaphor's candidate list: it selects the
// highest-scoring antecedent, and as the latent reference the
// highest-scoring antecedent consistent with the gold annotation.
type Ranking struct {
	unlabeled
}

func (Ranking) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}

	b := findBestArcs(sub.Arcs, sub.Info, scorer)

	res := Result{Consistent: b.bestConsistent}
	if b.bestOK {
		res.Arcs = []mention.Arc{b.best}
		res.Scores = []float64{b.bestVal}
	}
	if b.consOK {
		res.ConsArcs = []mention.Arc{b.cons}
		res.ConsScores = []float64{b.consVal}
	}
	return res
}

// RankingClosest is the ranking variant that trains against the closest
// gold antecedent instead of the latent best-scoring one (Soon-style
// non-latent training).
type RankingClosest struct {
	unlabeled
}

func (RankingClosest) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}

	bestVal := math.Inf(-1)
	var best mention.Arc
	bestOK := false
	bestConsistent := false

	consVal := math.Inf(-1)
	var cons mention.Arc
	consOK := false

	for _, arc := range sub.Arcs {
		ai := sub.Info[arc]
		score := scorer.Score(ai, "+")

		if score > bestVal {
			best = arc
			bestVal = score
			bestOK = true
			bestConsistent = ai.Consistent
		}

		// Candidates are ordered nearest first, so the first consistent
		// arc is the closest gold antecedent.
		if !consOK && ai.Consistent {
			cons = arc
			consVal = score
			consOK = true
		}
	}

	res := Result{Consistent: bestConsistent}
	if bestOK {
		res.Arcs = []mention.Arc{best}
		res.Scores = []float64{bestVal}
	}
	if consOK {
		res.ConsArcs = []mention.Arc{cons}
		res.ConsScores = []float64{consVal}
	}
	return res
}

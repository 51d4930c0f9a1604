package decoder

import (
	"math"

	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/mention"
)

// GraphPerAnaphor decodes one anaphor's candidates into an antecedent
// graph: every arc scoring above zero is predicted, not just the best one.
// If no arc clears the threshold the single best arc is predicted, so the
// anaphor always keeps an outgoing edge. The reference keeps every
// gold-consistent arc, falling back to the single best consistent arc.
// The asymmetry between the two fallbacks is intentional: the threshold
// controls graph density, the fallback guarantees connectivity.
type GraphPerAnaphor struct {
	unlabeled
}

func (GraphPerAnaphor) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}
	arcs, scores, consArcs, consScores, consistent := graphArcs(sub.Arcs, sub.Info, scorer)
	return Result{
		Arcs:       arcs,
		Scores:     scores,
		ConsArcs:   consArcs,
		ConsScores: consScores,
		Consistent: consistent,
	}
}

// GraphPerDocument applies the same thresholding rule anaphor by anaphor
// over a document-wide substructure.
type GraphPerDocument struct {
	unlabeled
}

func (GraphPerDocument) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}

	res := Result{Consistent: true}
	for ana := 1; ana < len(sub.Doc.Mentions); ana++ {
		arcs, scores, consArcs, consScores, consistent := graphArcs(
			anaphorSlice(sub.Arcs, ana), sub.Info, scorer)

		res.Arcs = append(res.Arcs, arcs...)
		res.Scores = append(res.Scores, scores...)
		res.ConsArcs = append(res.ConsArcs, consArcs...)
		res.ConsScores = append(res.ConsScores, consScores...)
		res.Consistent = res.Consistent && consistent
	}
	return res
}

func graphArcs(candidates []mention.Arc, info extract.ArcTable, scorer Scorer) (
	arcs []mention.Arc, scores []float64,
	consArcs []mention.Arc, consScores []float64,
	consistent bool,
) {
	consistent = true

	bestVal := math.Inf(-1)
	var best mention.Arc
	bestOK := false
	bestConsistent := false

	consVal := math.Inf(-1)
	var bestCons mention.Arc
	bestConsOK := false

	for _, arc := range candidates {
		ai := info[arc]
		score := scorer.Score(ai, "+")

		if score > bestVal {
			best = arc
			bestVal = score
			bestOK = true
			bestConsistent = ai.Consistent
		}
		if score > consVal && ai.Consistent {
			bestCons = arc
			consVal = score
			bestConsOK = true
		}

		if score > 0 {
			arcs = append(arcs, arc)
			scores = append(scores, score)
			if !ai.Consistent {
				consistent = false
			}
		}
		if ai.Consistent {
			consArcs = append(consArcs, arc)
			consScores = append(consScores, score)
		}
	}

	if consArcs == nil && bestConsOK {
		consArcs = []mention.Arc{bestCons}
		consScores = []float64{consVal}
	}
	if arcs == nil && bestOK {
		arcs = []mention.Arc{best}
		scores = []float64{bestVal}
		consistent = bestConsistent
	}
	return arcs, scores, consArcs, consScores, consistent
}

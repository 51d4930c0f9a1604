package decoder

import "github.com/latentstruct/coref/extract"

// Tree decodes a document-wide latent antecedent tree: the per-anaphor
// best and best-consistent searches of the ranking decoder, repeated for
// every anaphor in the document and concatenated. The whole tree is
// consistent only if every per-anaphor decision is.
type Tree struct {
	unlabeled
}

func (Tree) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}

	res := Result{Consistent: true}
	for ana := 1; ana < len(sub.Doc.Mentions); ana++ {
		b := findBestArcs(anaphorSlice(sub.Arcs, ana), sub.Info, scorer)

		if b.bestOK {
			res.Arcs = append(res.Arcs, b.best)
			res.Scores = append(res.Scores, b.bestVal)
		}
		if b.consOK {
			res.ConsArcs = append(res.ConsArcs, b.cons)
			res.ConsScores = append(res.ConsScores, b.consVal)
		}
		res.Consistent = res.Consistent && b.bestConsistent
	}
	return res
}

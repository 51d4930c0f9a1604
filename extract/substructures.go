package extract

import "github.com/latentstruct/coref/mention"

// SubstructureFunc enumerates the candidate arcs of a document, partitioned
// into the units that are decoded jointly. Candidate antecedents for the
// anaphor at index i are all mentions at indices < i, nearest first
// (descending index), ending with the dummy mention.
type SubstructureFunc func(doc *mention.Document) [][]mention.Arc

// RankingSubstructures produces one substructure per anaphor, holding that
// anaphor's full candidate list in nearest-first order.
func RankingSubstructures(doc *mention.Document) [][]mention.Arc {
	var subs [][]mention.Arc
	for ana := 1; ana < len(doc.Mentions); ana++ {
		subs = append(subs, candidateArcs(ana))
	}
	return subs
}

// DocumentSubstructure produces a single substructure containing every
// per-anaphor candidate group, concatenated in increasing-anaphor order:
// (m1,m0), (m2,m1), (m2,m0), (m3,m2), ... This layout lets document-wide
// decoders address anaphor j's group as the slice [j(j-1)/2, j(j-1)/2+j).
func DocumentSubstructure(doc *mention.Document) [][]mention.Arc {
	var arcs []mention.Arc
	for ana := 1; ana < len(doc.Mentions); ana++ {
		arcs = append(arcs, candidateArcs(ana)...)
	}
	if arcs == nil {
		return nil
	}
	return [][]mention.Arc{arcs}
}

// PairSubstructures produces one substructure per arc, excluding arcs to
// the dummy mention: (m2,m1), (m3,m2), (m3,m1), (m4,m3), ... Each binary
// coreferent/not-coreferent decision is made independently.
func PairSubstructures(doc *mention.Document) [][]mention.Arc {
	var subs [][]mention.Arc
	for ana := 2; ana < len(doc.Mentions); ana++ {
		for ante := ana - 1; ante >= 1; ante-- {
			subs = append(subs, []mention.Arc{{Anaphor: ana, Antecedent: ante}})
		}
	}
	return subs
}

// PairTrainingSubstructures restricts the mention-pair search space for
// training following Soon et al.: anaphors outside any gold chain are
// skipped, and for the rest, candidates run from the closest antecedent
// back to the first gold-coreferent one, inclusive. This avoids training
// on a combinatorial explosion of trivially negative pairs.
func PairTrainingSubstructures(doc *mention.Document) [][]mention.Arc {
	var subs [][]mention.Arc
	for ana := 2; ana < len(doc.Mentions); ana++ {
		if doc.Mentions[ana].GoldSet == "" {
			continue
		}
		for ante := ana - 1; ante >= 1; ante-- {
			subs = append(subs, []mention.Arc{{Anaphor: ana, Antecedent: ante}})
			if doc.IsCoreferent(ana, ante) {
				break
			}
		}
	}
	return subs
}

// RankingTrainingSubstructures restricts the ranking search space for
// training in the same spirit: candidates run from the closest antecedent
// back to the first gold-coreferent one; anaphors with no gold antecedent
// keep only the dummy candidate.
func RankingTrainingSubstructures(doc *mention.Document) [][]mention.Arc {
	var subs [][]mention.Arc
	for ana := 1; ana < len(doc.Mentions); ana++ {
		var arcs []mention.Arc
		found := false
		for ante := ana - 1; ante >= 1; ante-- {
			arcs = append(arcs, mention.Arc{Anaphor: ana, Antecedent: ante})
			if doc.IsCoreferent(ana, ante) {
				found = true
				break
			}
		}
		if !found {
			arcs = []mention.Arc{{Anaphor: ana, Antecedent: 0}}
		}
		subs = append(subs, arcs)
	}
	return subs
}

func candidateArcs(ana int) []mention.Arc {
	arcs := make([]mention.Arc, 0, ana)
	for ante := ana - 1; ante >= 0; ante-- {
		arcs = append(arcs, mention.Arc{Anaphor: ana, Antecedent: ante})
	}
	return arcs
}

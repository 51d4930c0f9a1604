package decoder

import (
	"sort"

	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/mention"
)

// RollIn selects which candidate list the entity decoders consult when
// committing links during training: gold roll-in always follows the best
// gold-consistent arc, learned roll-in follows the model's own current
// best guess so training sees the same states as prediction. Prediction
// always follows the model.
type RollIn int

const (
	GoldRollIn RollIn = iota
	LearnedRollIn
)

// easyFirstCap bounds how many top-scoring candidate pairs per anaphor the
// easy-first decoder reconsiders at each step.
const easyFirstCap = 20

type scoredPair struct {
	score float64
	ante  int
}

type pairLists struct {
	plain        map[int][]scoredPair
	withCost     map[int][]scoredPair
	consWithCost map[int][]scoredPair
}

// buildPairLists scores every candidate arc of the document once up front
// and keeps three per-anaphor lists sorted by descending score (ties to
// the later, i.e. closer, antecedent): plain scores, cost-augmented
// scores, and cost-augmented scores of gold-consistent arcs only.
func buildPairLists(sub *extract.Substructure, scorer Scorer) pairLists {
	lists := pairLists{
		plain:        make(map[int][]scoredPair),
		withCost:     make(map[int][]scoredPair),
		consWithCost: make(map[int][]scoredPair),
	}

	for ana := 1; ana < len(sub.Doc.Mentions); ana++ {
		for ante := 0; ante < ana; ante++ {
			arc := mention.Arc{Anaphor: ana, Antecedent: ante}
			ai := sub.Info[arc]
			score := scorer.ScoreNoCost(ai, "+")
			augmented := score + scorer.CostScaling()*ai.Costs[0]

			lists.plain[ana] = append(lists.plain[ana], scoredPair{score, ante})
			lists.withCost[ana] = append(lists.withCost[ana], scoredPair{augmented, ante})
			if ai.Consistent {
				lists.consWithCost[ana] = append(lists.consWithCost[ana],
					scoredPair{augmented, ante})
			}
		}
		sortPairs(lists.plain[ana])
		sortPairs(lists.withCost[ana])
		sortPairs(lists.consWithCost[ana])
	}
	return lists
}

func sortPairs(pairs []scoredPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].ante > pairs[j].ante
	})
}

// nextFunc picks the next anaphor to link and its antecedent from the
// given candidate lists; ok is false when no unlinked anaphor remains.
type nextFunc func(c *Clustering, candidates map[int][]scoredPair) (ana, ante int, ok bool)

// forAnaphor returns the top candidate for one anaphor, optionally capped
// to the first limit entries of the sorted list.
func forAnaphor(candidates map[int][]scoredPair, ana, limit int) (scoredPair, bool) {
	list := candidates[ana]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	if len(list) == 0 {
		return scoredPair{}, false
	}
	return list[0], true
}

// entityDecode is the shared skeleton of the entity decoders: repeatedly
// pick an unlinked anaphor via next, commit its roll-in link to the
// clustering, and record the cost-augmented predicted and consistent
// pairs for the perceptron update.
func entityDecode(sub *extract.Substructure, scorer Scorer, mode Mode,
	rollIn RollIn, limit int, next nextFunc) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}

	lists := buildPairLists(sub, scorer)
	clustering := NewClustering(sub.Doc)
	res := Result{Consistent: true}

	var rollInLists map[int][]scoredPair
	switch {
	case mode == Predict:
		rollInLists = lists.plain
	case rollIn == GoldRollIn:
		rollInLists = lists.consWithCost
	default:
		rollInLists = lists.plain
	}

	for !clustering.EveryMentionLinked() {
		ana, ante, ok := next(clustering, rollInLists)
		if !ok {
			break
		}

		if mode == Train {
			pred, _ := forAnaphor(lists.withCost, ana, limit)
			cons, _ := forAnaphor(lists.consWithCost, ana, limit)

			predArc := mention.Arc{Anaphor: ana, Antecedent: pred.ante}
			res.Arcs = append(res.Arcs, predArc)
			res.Scores = append(res.Scores, 0)
			res.ConsArcs = append(res.ConsArcs, mention.Arc{Anaphor: ana, Antecedent: cons.ante})
			res.ConsScores = append(res.ConsScores, 0)

			if !sub.Info[predArc].Consistent {
				res.Consistent = false
			}
		} else {
			res.Arcs = append(res.Arcs, mention.Arc{Anaphor: ana, Antecedent: ante})
			res.Scores = append(res.Scores, 0)
		}

		clustering.AddLink(ana, ante)
	}
	return res
}

// EntityLeftToRight links anaphors strictly in document order, one at a
// time, consulting the roll-in candidate list for each.
type EntityLeftToRight struct {
	unlabeled
	RollIn RollIn
}

func (d EntityLeftToRight) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	return entityDecode(sub, scorer, mode, d.RollIn, 0,
		func(c *Clustering, candidates map[int][]scoredPair) (int, int, bool) {
			for ana := 1; ana < len(sub.Doc.Mentions); ana++ {
				if c.HasLink(ana) {
					continue
				}
				top, ok := forAnaphor(candidates, ana, 0)
				if !ok {
					return 0, 0, false
				}
				return ana, top.ante, true
			}
			return 0, 0, false
		})
}

// EntityEasyFirst links, at each step, the unlinked anaphor whose best
// candidate arc has the highest score, consulting only the top candidates
// per anaphor. Score ties go to the textually later anaphor.
type EntityEasyFirst struct {
	unlabeled
	RollIn RollIn
}

func (d EntityEasyFirst) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	return entityDecode(sub, scorer, mode, d.RollIn, easyFirstCap,
		func(c *Clustering, candidates map[int][]scoredPair) (int, int, bool) {
			bestAna, bestAnte := -1, 0
			var bestScore float64
			for ana := 1; ana < len(sub.Doc.Mentions); ana++ {
				if c.HasLink(ana) {
					continue
				}
				top, ok := forAnaphor(candidates, ana, easyFirstCap)
				if !ok {
					continue
				}
				if bestAna == -1 || top.score > bestScore ||
					(top.score == bestScore && ana > bestAna) {
					bestAna, bestAnte, bestScore = ana, top.ante, top.score
				}
			}
			if bestAna == -1 {
				return 0, 0, false
			}
			return bestAna, bestAnte, true
		})
}

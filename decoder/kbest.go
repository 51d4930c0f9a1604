package decoder

import (
	"container/heap"
	"fmt"
	"log/slog"
	"math"

	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/internal/unionfind"
	"github.com/latentstruct/coref/mention"
)

// KBestVariant selects how candidate solutions are generated from the
// regret queue.
type KBestVariant int

const (
	// Agenda substitutes each popped arc into the 1-best solution and
	// additionally rejects solutions that only restate an already-kept
	// "anaphor is non-anaphoric" decision.
	Agenda KBestVariant = iota
	// Overgenerating substitutes each popped arc into every solution kept
	// so far.
	Overgenerating
)

// Solution is one member of a k-best list: a full per-anaphor antecedent
// assignment with its arc scores.
type Solution struct {
	Arcs   []mention.Arc
	Scores []float64
	Total  float64
}

// KBest expands a ranking decoder's 1-best assignment for one document
// into an approximate k-best list. The search pops (anaphor, candidate)
// substitutions off a priority queue ordered by regret (the score the
// substitution gives up against the anaphor's best arc) and keeps every
// substitution that produces a previously unseen coreference partition.
// Solutions are therefore emitted in non-increasing total score order.
type KBest struct {
	K       int
	Variant KBestVariant
}

type regretEntry struct {
	regret float64
	ana    int // index into the per-anaphor candidate lists
	cand   int // index into that anaphor's candidate list
}

type regretQueue []regretEntry

func (q regretQueue) Len() int           { return len(q) }
func (q regretQueue) Less(i, j int) bool { return q[i].regret < q[j].regret }
func (q regretQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *regretQueue) Push(x any)        { *q = append(*q, x.(regretEntry)) }
func (q *regretQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Search runs the k-best expansion over one document's ranking
// substructures (one substructure per anaphor, in anaphor order). If
// fewer than K distinct solutions exist, the list is padded by repeating
// the worst accepted solution; this mirrors the source system's behavior
// and is logged as a warning.
func (kb KBest) Search(subs []*extract.Substructure, scorer Scorer) []Solution {
	var cands [][]mention.Arc
	var scores [][]float64
	var doc *mention.Document

	for _, sub := range subs {
		if len(sub.Arcs) == 0 {
			continue
		}
		doc = sub.Doc
		arcScores := make([]float64, len(sub.Arcs))
		for i, arc := range sub.Arcs {
			arcScores[i] = scorer.ScoreNoCost(sub.Info[arc], "+")
		}
		cands = append(cands, sub.Arcs)
		scores = append(scores, arcScores)
	}
	if len(cands) == 0 || kb.K <= 0 {
		return nil
	}

	// 1-best: per anaphor, the first maximal candidate.
	base := make([]int, len(cands))
	for i := range cands {
		bestVal := math.Inf(-1)
		for j := range cands[i] {
			if scores[i][j] > bestVal {
				bestVal = scores[i][j]
				base[i] = j
			}
		}
	}

	queue := &regretQueue{}
	for i := range cands {
		for j := range cands[i] {
			if j == base[i] {
				continue
			}
			*queue = append(*queue, regretEntry{
				regret: scores[i][base[i]] - scores[i][j],
				ana:    i,
				cand:   j,
			})
		}
	}
	heap.Init(queue)

	seen := make(map[string]bool)
	dummyKept := make(map[int]bool)

	var kept [][]int
	keep := func(choice []int) bool {
		sig := partitionSignature(doc, cands, choice)
		if seen[sig] {
			return false
		}
		seen[sig] = true
		kept = append(kept, choice)
		for i, j := range choice {
			if cands[i][j].ToDummy() {
				dummyKept[i] = true
			}
		}
		return true
	}

	keep(base)

	for len(kept) < kb.K && queue.Len() > 0 {
		e := heap.Pop(queue).(regretEntry)

		switch kb.Variant {
		case Overgenerating:
			for _, prev := range snapshot(kept) {
				choice := make([]int, len(prev))
				copy(choice, prev)
				choice[e.ana] = e.cand
				keep(choice)
				if len(kept) >= kb.K {
					break
				}
			}
		default:
			if cands[e.ana][e.cand].ToDummy() && dummyKept[e.ana] {
				continue
			}
			choice := make([]int, len(base))
			copy(choice, base)
			choice[e.ana] = e.cand
			keep(choice)
		}
	}

	solutions := make([]Solution, 0, kb.K)
	for _, choice := range kept {
		solutions = append(solutions, kb.solution(cands, scores, choice))
	}

	if len(solutions) < kb.K {
		slog.Warn("k-best search underflow, padding with worst solution",
			"distinct", len(solutions), "k", kb.K)
		worst := solutions[len(solutions)-1]
		for len(solutions) < kb.K {
			solutions = append(solutions, worst)
		}
	}
	return solutions
}

func (kb KBest) solution(cands [][]mention.Arc, scores [][]float64, choice []int) Solution {
	sol := Solution{
		Arcs:   make([]mention.Arc, len(choice)),
		Scores: make([]float64, len(choice)),
	}
	for i, j := range choice {
		sol.Arcs[i] = cands[i][j]
		sol.Scores[i] = scores[i][j]
		sol.Total += scores[i][j]
	}
	return sol
}

// partitionSignature canonicalizes the coreference partition induced by a
// choice of arcs: two solutions whose arcs merge mentions into the same
// entities are equivalent even if the arcs differ.
func partitionSignature(doc *mention.Document, cands [][]mention.Arc, choice []int) string {
	uf := unionfind.New(len(doc.Mentions))
	for i, j := range choice {
		arc := cands[i][j]
		if !arc.ToDummy() {
			uf.Union(arc.Anaphor, arc.Antecedent)
		}
	}
	return fmt.Sprint(uf.Canonical())
}

func snapshot(kept [][]int) [][]int {
	out := make([][]int, len(kept))
	copy(out, kept)
	return out
}

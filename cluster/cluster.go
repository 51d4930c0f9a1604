// Package cluster turns decoded arcs into entity clusters. Every policy
// is built on a union-find over the document's mention indices; they
// differ only in which decoded arcs are allowed to merge clusters.
package cluster

import (
	"math"

	"github.com/latentstruct/coref/internal/unionfind"
	"github.com/latentstruct/coref/mention"
)

// Policy selects which decoded arcs merge clusters.
type Policy int

const (
	// AllAnte unions every arc with a real antecedent. Used when the
	// decoder already produced a tree or graph with no links to filter.
	AllAnte Policy = iota
	// ClosestFirst unions, per anaphor, the first coreferent arc in list
	// order. Candidate lists are ordered nearest first, so this links the
	// closest coreferent antecedent.
	ClosestFirst
	// BestFirst unions, per anaphor, the highest-scoring coreferent arc.
	// Ties go to the first arc seen.
	BestFirst
	// AggressiveMerge unions every coreferent arc, regardless of how many
	// an anaphor has.
	AggressiveMerge
)

// Result is the extracted partition: every real mention mapped to its
// entity id (the smallest mention index in its cluster, so unlinked
// mentions map to themselves) and, for each linked anaphor, the
// antecedent that triggered its union.
type Result struct {
	Entities    map[int]int
	Antecedents map[int]int
}

// Extract clusters one document's decoded arcs. Arcs of the same anaphor
// must be contiguous in the input, as the decoders produce them. Labels
// may be shorter than arcs; missing labels default to "+". Arcs whose
// label is not in corefLabels are ignored, and dummy antecedents never
// merge clusters.
func Extract(policy Policy, doc *mention.Document, arcs []mention.Arc,
	labels []string, scores []float64, corefLabels []string) Result {

	coref := make(map[string]bool, len(corefLabels))
	for _, label := range corefLabels {
		coref[label] = true
	}

	uf := unionfind.New(len(doc.Mentions))
	antecedents := make(map[int]int)

	link := func(arc mention.Arc) {
		if arc.ToDummy() {
			return
		}
		if _, ok := antecedents[arc.Anaphor]; !ok {
			antecedents[arc.Anaphor] = arc.Antecedent
		}
		uf.Union(arc.Anaphor, arc.Antecedent)
	}

	switch policy {
	case AllAnte:
		for _, arc := range arcs {
			link(arc)
		}
	case AggressiveMerge:
		for i, arc := range arcs {
			if coref[labelAt(labels, i)] {
				link(arc)
			}
		}
	case ClosestFirst:
		forEachAnaphor(arcs, func(first, last int) {
			for i := first; i < last; i++ {
				if coref[labelAt(labels, i)] {
					link(arcs[i])
					return
				}
			}
		})
	case BestFirst:
		forEachAnaphor(arcs, func(first, last int) {
			best := -1
			bestScore := math.Inf(-1)
			for i := first; i < last; i++ {
				if coref[labelAt(labels, i)] && scores[i] > bestScore {
					best = i
					bestScore = scores[i]
				}
			}
			if best >= 0 {
				link(arcs[best])
			}
		})
	}

	entities := make(map[int]int, len(doc.Mentions)-1)
	canonical := uf.Canonical()
	for m := 1; m < len(doc.Mentions); m++ {
		entities[m] = canonical[m]
	}
	return Result{Entities: entities, Antecedents: antecedents}
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return "+"
}

// forEachAnaphor calls f with the half-open bounds of every contiguous
// run of arcs sharing one anaphor.
func forEachAnaphor(arcs []mention.Arc, f func(first, last int)) {
	for first := 0; first < len(arcs); {
		last := first + 1
		for last < len(arcs) && arcs[last].Anaphor == arcs[first].Anaphor {
			last++
		}
		f(first, last)
		first = last
	}
}

package extract

import "github.com/latentstruct/coref/mention"

// CostFunc assigns the cost charged during cost-augmented decoding for
// predicting an arc with a given label.
type CostFunc func(doc *mention.Document, arc mention.Arc, label string) float64

// CostConsistency charges decisions that contradict the gold annotation.
// A wrongly predicted dummy antecedent ("false new") costs 2, any other
// inconsistent link costs 1, consistent decisions cost 0. The label is
// ignored.
func CostConsistency(doc *mention.Document, arc mention.Arc, label string) float64 {
	if doc.DecisionIsConsistent(arc.Anaphor, arc.Antecedent) {
		return 0
	}
	if arc.ToDummy() {
		return 2
	}
	return 1
}

// NullCost always returns 0, corresponding to not using cost-augmented
// decoding at all.
func NullCost(doc *mention.Document, arc mention.Arc, label string) float64 {
	return 0
}

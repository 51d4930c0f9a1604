package decoder

import (
	"math"

	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/mention"
)

// CostPolicy selects how the hypergraph decoder charges the cost of
// linking an anaphor to a whole cluster.
type CostPolicy int

const (
	// PairCost charges only the proxy arc to the cluster's closest member.
	PairCost CostPolicy = iota
	// HyperCost sums the arc costs over every member of the cluster.
	HyperCost
)

// Hypergraph decodes a document by scoring whole entity clusters instead
// of individual antecedents: for each anaphor in document order, the
// distinct clusters formed so far are enumerated nearest-representative
// first, each scored through a proxy arc to its closest member, and the
// anaphor is linked to the best cluster. During training the decoder
// commits the best gold-consistent cluster and records both choices for
// the perceptron update.
type Hypergraph struct {
	unlabeled
	Cost CostPolicy
}

func (d Hypergraph) Decode(sub *extract.Substructure, scorer Scorer, mode Mode) Result {
	if len(sub.Arcs) == 0 {
		return Result{Consistent: true}
	}

	clustering := NewClustering(sub.Doc)
	res := Result{Consistent: true}

	for ana := 1; ana < len(sub.Doc.Mentions); ana++ {
		clusters := candidateClusters(clustering, ana)

		bestScore := math.Inf(-1)
		bestIdx := -1
		bestCostScore := math.Inf(-1)
		bestCostIdx := -1
		bestConsScore := math.Inf(-1)
		bestConsIdx := -1

		for k, cluster := range clusters {
			proxy := mention.Arc{Anaphor: ana, Antecedent: cluster[0]}
			score := scorer.ScoreNoCost(sub.Info[proxy], "+")
			withCost := score + d.clusterCost(sub, ana, cluster, scorer)
			consistent := clusterConsistent(sub, ana, cluster)

			if score > bestScore {
				bestScore = score
				bestIdx = k
			}
			if withCost > bestCostScore {
				bestCostScore = withCost
				bestCostIdx = k
			}
			if withCost > bestConsScore && consistent {
				bestConsScore = withCost
				bestConsIdx = k
			}
		}

		if mode == Train {
			predArc := mention.Arc{Anaphor: ana, Antecedent: clusters[bestCostIdx][0]}
			consArc := mention.Arc{Anaphor: ana, Antecedent: clusters[bestConsIdx][0]}

			clustering.AddLink(ana, consArc.Antecedent)
			res.Arcs = append(res.Arcs, predArc)
			res.Scores = append(res.Scores, 0)
			res.ConsArcs = append(res.ConsArcs, consArc)
			res.ConsScores = append(res.ConsScores, 0)

			if !clusterConsistent(sub, ana, clusters[bestCostIdx]) {
				res.Consistent = false
			}
		} else {
			arc := mention.Arc{Anaphor: ana, Antecedent: clusters[bestIdx][0]}
			clustering.AddLink(ana, arc.Antecedent)
			res.Arcs = append(res.Arcs, arc)
			res.Scores = append(res.Scores, 0)
		}
	}
	return res
}

// candidateClusters enumerates the distinct clusters among the mentions
// preceding ana, ordered by their closest representative (the dummy
// mention's singleton cluster comes last). Cluster member lists are in
// descending mention order, so members[0] is the closest member.
func candidateClusters(c *Clustering, ana int) [][]int {
	var clusters [][]int
	seen := make(map[int]bool)
	for ante := ana - 1; ante >= 0; ante-- {
		root := c.Root(ante)
		if seen[root] {
			continue
		}
		seen[root] = true
		clusters = append(clusters, c.Cluster(ante))
	}
	return clusters
}

func (d Hypergraph) clusterCost(sub *extract.Substructure, ana int, cluster []int, scorer Scorer) float64 {
	switch d.Cost {
	case HyperCost:
		var sum float64
		for _, m := range cluster {
			arc := mention.Arc{Anaphor: ana, Antecedent: m}
			sum += scorer.CostScaling() * sub.Info[arc].Costs[0]
		}
		return sum
	default:
		proxy := mention.Arc{Anaphor: ana, Antecedent: cluster[0]}
		return scorer.CostScaling() * sub.Info[proxy].Costs[0]
	}
}

func clusterConsistent(sub *extract.Substructure, ana int, cluster []int) bool {
	for _, m := range cluster {
		if sub.Info[mention.Arc{Anaphor: ana, Antecedent: m}].Consistent {
			return true
		}
	}
	return false
}

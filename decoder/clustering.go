package decoder

import (
	"github.com/latentstruct/coref/internal/unionfind"
	"github.com/latentstruct/coref/mention"
)

// Clustering is the incremental entity partition mutated by the entity and
// hypergraph decoders. It is created per document, updated as links are
// committed, and discarded after the decode. Cluster member lists are
// recomputed after each union and kept in descending mention order, so the
// first member of a cluster is always the one closest to any later anaphor.
type Clustering struct {
	doc      *mention.Document
	uf       *unionfind.UnionFind
	outgoing map[int]int
	clusters map[int][]int
}

// NewClustering creates a clustering where every mention of doc is its own
// entity.
func NewClustering(doc *mention.Document) *Clustering {
	c := &Clustering{
		doc:      doc,
		uf:       unionfind.New(len(doc.Mentions)),
		outgoing: make(map[int]int),
	}
	c.recompute()
	return c
}

// AddLink commits the link anaphor -> antecedent. Links to the dummy
// mention record the decision but never merge clusters.
func (c *Clustering) AddLink(ana, ante int) {
	c.outgoing[ana] = ante
	if ante != 0 {
		c.uf.Union(ana, ante)
		c.recompute()
	}
}

// HasLink reports whether the anaphor already has a committed antecedent.
func (c *Clustering) HasLink(ana int) bool {
	_, ok := c.outgoing[ana]
	return ok
}

// EveryMentionLinked reports whether every real mention has an antecedent.
func (c *Clustering) EveryMentionLinked() bool {
	return len(c.outgoing) == len(c.doc.Mentions)-1
}

// Cluster returns the members of the mention's current entity cluster in
// descending mention order.
func (c *Clustering) Cluster(m int) []int {
	return c.clusters[m]
}

// Root returns the union-find representative of the mention's cluster.
func (c *Clustering) Root(m int) int {
	return c.uf.Find(m)
}

func (c *Clustering) recompute() {
	byRoot := make(map[int][]int)
	for m := len(c.doc.Mentions) - 1; m >= 0; m-- {
		root := c.uf.Find(m)
		byRoot[root] = append(byRoot[root], m)
	}
	c.clusters = make(map[int][]int, len(c.doc.Mentions))
	for m := range c.doc.Mentions {
		c.clusters[m] = byRoot[c.uf.Find(m)]
	}
}

// Package unionfind implements a disjoint-set forest over integer ids.
package unionfind

// UnionFind tracks a partition of {0, ..., n-1} under union operations.
// Uses path compression and union by size.
type UnionFind struct {
	parent []int
	size   []int
}

// New creates a union-find where every element is its own set.
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Len returns the number of elements.
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing a and b.
func (uf *UnionFind) Union(a, b int) {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// Same reports whether a and b are in the same set.
func (uf *UnionFind) Same(a, b int) bool {
	return uf.Find(a) == uf.Find(b)
}

// Canonical returns, for each element, the smallest element of its set.
// Two partitions are equal iff their canonical forms are equal.
func (uf *UnionFind) Canonical() []int {
	min := make([]int, len(uf.parent))
	for i := range min {
		min[i] = -1
	}
	for i := range uf.parent {
		r := uf.Find(i)
		if min[r] == -1 || i < min[r] {
			min[r] = i
		}
	}
	out := make([]int, len(uf.parent))
	for i := range uf.parent {
		out[i] = min[uf.Find(i)]
	}
	return out
}

// Package mention defines the per-document mention arena and the candidate
// arcs between mentions that all decoders operate on.
package mention

// Mention is a single mention occurrence in a document. Mentions are created
// once during extraction and are immutable afterwards. Index 0 is reserved
// for the dummy mention, a synthetic root which precedes every real mention
// and represents the decision "not anaphoric to anything".
type Mention struct {
	// Index is the document-relative position. The dummy mention has index 0,
	// real mentions are numbered 1..n in document order.
	Index int `json:"index"`

	// Dummy marks the synthetic root mention.
	Dummy bool `json:"dummy,omitempty"`

	// Attrs is an opaque attribute bag. The engine never interprets it;
	// feature functions and external tooling do.
	Attrs map[string]string `json:"attrs,omitempty"`

	// GoldSet is the id of the gold coreference chain this mention belongs
	// to, or empty if the mention is not annotated as part of any chain.
	GoldSet string `json:"gold_set,omitempty"`
}

// Attr returns the named attribute, or "" if absent.
func (m *Mention) Attr(name string) string {
	if m.Attrs == nil {
		return ""
	}
	return m.Attrs[name]
}

// Document is an arena of mentions in document order. All cross-references
// between mentions (arcs, clusters, antecedents) are indices into Mentions.
type Document struct {
	ID       string     `json:"id"`
	Mentions []*Mention `json:"mentions"`
}

// NewDocument builds a document from real mentions in document order,
// prepending the dummy mention and assigning indices.
func NewDocument(id string, mentions []*Mention) *Document {
	all := make([]*Mention, 0, len(mentions)+1)
	all = append(all, &Mention{Index: 0, Dummy: true})
	for i, m := range mentions {
		m.Index = i + 1
		m.Dummy = false
		all = append(all, m)
	}
	return &Document{ID: id, Mentions: all}
}

// IsCoreferent reports whether mentions i and j are in the same non-empty
// gold coreference chain.
func (d *Document) IsCoreferent(i, j int) bool {
	mi, mj := d.Mentions[i], d.Mentions[j]
	if mi.Dummy || mj.Dummy {
		return false
	}
	return mi.GoldSet != "" && mi.GoldSet == mj.GoldSet
}

// DecisionIsConsistent reports whether linking anaphor ana to antecedent
// ante would not contradict the gold annotation. A decision is consistent
// if the mentions are coreferent, or if ante is the dummy mention and ana
// has no preceding gold-coreferent mention among the extracted mentions.
// The latter also covers anaphors whose gold antecedent was lost to
// mention-detection errors.
func (d *Document) DecisionIsConsistent(ana, ante int) bool {
	if d.Mentions[ante].Dummy {
		for i := 1; i < ana; i++ {
			if d.IsCoreferent(ana, i) {
				return false
			}
		}
		return true
	}
	return d.IsCoreferent(ana, ante)
}

// Arc is a candidate anaphor-antecedent link. Arcs are immutable value
// types, compared and hashed by the mention index pair. The invariant
// Antecedent < Anaphor always holds (the dummy mention has index 0).
type Arc struct {
	Anaphor    int `json:"anaphor"`
	Antecedent int `json:"antecedent"`
}

// ToDummy reports whether the arc points to the dummy mention, i.e. whether
// it declares the anaphor non-anaphoric.
func (a Arc) ToDummy() bool {
	return a.Antecedent == 0
}

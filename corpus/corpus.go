// Package corpus reads mention-annotated documents from JSON and writes
// predicted coreference chains back out.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/latentstruct/coref/cluster"
	"github.com/latentstruct/coref/mention"
)

type corpusJSON struct {
	Documents []documentJSON `json:"documents"`
}

type documentJSON struct {
	ID       string        `json:"id"`
	Mentions []mentionJSON `json:"mentions"`
}

type mentionJSON struct {
	Attrs   map[string]string `json:"attrs,omitempty"`
	GoldSet string            `json:"gold_set,omitempty"`
}

// ReadCorpus loads documents from a JSON corpus file. Mentions appear in
// document order; the dummy mention is synthesized, never stored.
func ReadCorpus(path string) ([]*mention.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalCorpus(data)
}

// UnmarshalCorpus parses a JSON corpus from bytes.
func UnmarshalCorpus(data []byte) ([]*mention.Document, error) {
	var c corpusJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	seen := make(map[string]bool, len(c.Documents))
	docs := make([]*mention.Document, 0, len(c.Documents))
	for i, dj := range c.Documents {
		if dj.ID == "" {
			return nil, fmt.Errorf("document %d has no id", i)
		}
		if seen[dj.ID] {
			return nil, fmt.Errorf("duplicate document id %q", dj.ID)
		}
		seen[dj.ID] = true

		mentions := make([]*mention.Mention, len(dj.Mentions))
		for j, mj := range dj.Mentions {
			mentions[j] = &mention.Mention{
				Attrs:   mj.Attrs,
				GoldSet: mj.GoldSet,
			}
		}
		docs = append(docs, mention.NewDocument(dj.ID, mentions))
	}
	return docs, nil
}

type predictionsJSON struct {
	Documents []predictedDocJSON `json:"documents"`
}

type predictedDocJSON struct {
	ID       string             `json:"id"`
	Mentions []predictedMention `json:"mentions"`
}

type predictedMention struct {
	Index      int  `json:"index"`
	Entity     int  `json:"entity"`
	Antecedent *int `json:"antecedent,omitempty"`
}

// WritePredictions writes one clustering result per document as JSON.
// Every real mention gets its entity id; anaphoric mentions additionally
// get the antecedent that linked them.
func WritePredictions(path string, docs []*mention.Document, results []cluster.Result) error {
	if len(docs) != len(results) {
		return fmt.Errorf("have %d documents but %d results", len(docs), len(results))
	}

	out := predictionsJSON{Documents: make([]predictedDocJSON, len(docs))}
	for i, doc := range docs {
		pd := predictedDocJSON{ID: doc.ID}
		for m := 1; m < len(doc.Mentions); m++ {
			pm := predictedMention{Index: m, Entity: results[i].Entities[m]}
			if ante, ok := results[i].Antecedents[m]; ok {
				a := ante
				pm.Antecedent = &a
			}
			pd.Mentions = append(pd.Mentions, pm)
		}
		out.Documents[i] = pd
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

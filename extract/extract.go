// Package extract turns documents into decodable instances: it enumerates
// candidate arcs, partitions them into substructures and computes hashed
// features, costs and gold-consistency flags for every arc.
package extract

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cheggaaa/pb"
	"github.com/latentstruct/coref/mention"
)

// ArcInfo bundles everything a decoder needs to know about one arc.
// It is computed once per extraction pass and read-only afterwards.
type ArcInfo struct {
	// Features holds the hashed non-numeric feature ids.
	Features []uint32
	// NumFeatures and NumValues hold the hashed numeric feature ids and
	// their values, index-aligned.
	NumFeatures []uint32
	NumValues   []float32
	// Costs holds one cost per label, ordered as the extractor's labels.
	Costs []float64
	// Consistent reports whether predicting this arc agrees with the gold
	// annotation.
	Consistent bool
}

// ArcTable maps every candidate arc of one document to its information.
type ArcTable map[mention.Arc]*ArcInfo

// Substructure is the unit decoded by a single decoder invocation.
// Substructures of the same document share one ArcTable.
type Substructure struct {
	Doc  *mention.Document
	Arcs []mention.Arc
	Info ArcTable
}

// Instances is the decodable form of a corpus.
type Instances struct {
	Substructures []*Substructure
}

// Extractor extracts instances and features from a corpus. Documents are
// processed by a bounded pool of workers, each producing a self-contained
// result; workers share no mutable state because documents are disjoint.
type Extractor struct {
	Substructures   SubstructureFunc
	MentionFeatures []MentionFeature
	PairFeatures    []PairFeature
	Cost            CostFunc
	Labels          []string

	// Workers bounds the extraction pool; 0 means GOMAXPROCS.
	Workers int
	// Progress enables a progress bar on stderr.
	Progress bool
}

type docResult struct {
	index int
	subs  []*Substructure
}

// Extract processes all documents and returns their substructures in
// corpus order. A failing document aborts the whole extraction; there is
// no partial result. Documents without mentions contribute nothing.
func (e *Extractor) Extract(docs []*mention.Document) (*Instances, error) {
	if len(e.Labels) == 0 {
		return nil, fmt.Errorf("extract: no labels configured")
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	jobs := make(chan int)
	results := make([]docResult, len(docs))
	errs := make(chan error, len(docs))

	var bar *pb.ProgressBar
	if e.Progress {
		bar = pb.StartNew(len(docs))
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				subs, err := e.extractDoc(docs[i])
				if err != nil {
					errs <- fmt.Errorf("extract: document %q: %w", docs[i].ID, err)
					continue
				}
				results[i] = docResult{index: i, subs: subs}
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if bar != nil {
		bar.Finish()
	}

	select {
	case err := <-errs:
		return nil, err
	default:
	}

	inst := &Instances{}
	for _, r := range results {
		inst.Substructures = append(inst.Substructures, r.subs...)
	}
	return inst, nil
}

func (e *Extractor) extractDoc(doc *mention.Document) ([]*Substructure, error) {
	if doc == nil || len(doc.Mentions) == 0 {
		return nil, fmt.Errorf("document has no mention arena")
	}
	if !doc.Mentions[0].Dummy {
		return nil, fmt.Errorf("mention arena does not start with the dummy mention")
	}

	groups := e.Substructures(doc)
	info := make(ArcTable)
	cache := make(map[int][]Feature)

	var subs []*Substructure
	for _, arcs := range groups {
		if len(arcs) == 0 {
			continue
		}
		for _, arc := range arcs {
			if arc.Antecedent >= arc.Anaphor {
				return nil, fmt.Errorf("arc (%d, %d) violates antecedent ordering",
					arc.Anaphor, arc.Antecedent)
			}
			if _, ok := info[arc]; ok {
				continue
			}
			nonNum, num, vals := composeArcFeatures(
				doc, arc, e.MentionFeatures, e.PairFeatures, cache)
			costs := make([]float64, len(e.Labels))
			for li, label := range e.Labels {
				costs[li] = e.Cost(doc, arc, label)
			}
			info[arc] = &ArcInfo{
				Features:    nonNum,
				NumFeatures: num,
				NumValues:   vals,
				Costs:       costs,
				Consistent:  doc.DecisionIsConsistent(arc.Anaphor, arc.Antecedent),
			}
		}
		subs = append(subs, &Substructure{Doc: doc, Arcs: arcs, Info: info})
	}
	return subs, nil
}

// Package coref resolves coreference with structured perceptrons.
//
// It implements the cost-augmented latent-variable perceptron over
// candidate antecedent arcs, with pluggable decoding approaches (mention
// ranking, antecedent trees and graphs, entity-level decoding,
// hypergraphs, mention pairs) and cluster extraction policies.
//
//	exp, _ := config.Load("experiment.toml")
//	docs, _ := corpus.ReadCorpus("train.json")
//	r, _ := coref.Train(docs, exp, nil)
//	_ = r.Save("model.json")
//	results, _ := r.Predict(docs)
package coref

import (
	"fmt"
	"sort"

	"github.com/latentstruct/coref/cluster"
	"github.com/latentstruct/coref/decoder"
	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/internal/config"
	"github.com/latentstruct/coref/mention"
	"github.com/latentstruct/coref/perceptron"
)

// Options holds the injectable parts of an experiment. Nil feature
// slices are replaced by DefaultFeatures over the training corpus.
type Options struct {
	MentionFeatures []extract.MentionFeature
	PairFeatures    []extract.PairFeature
	Verbose         bool
	Progress        bool
}

// Resolver bundles a trained model with the experiment that produced it.
type Resolver struct {
	exp   config.Experiment
	model *perceptron.Model

	mentionFeatures []extract.MentionFeature
	pairFeatures    []extract.PairFeature
}

// setup is the wired form of an experiment: the decoder plus the
// extraction strategies it needs.
type setup struct {
	dec         decoder.Decoder
	trainSubs   extract.SubstructureFunc
	predictSubs extract.SubstructureFunc
	cost        extract.CostFunc
	policy      cluster.Policy
	rollIn      decoder.RollIn
}

func newSetup(exp config.Experiment) (*setup, error) {
	if err := exp.Validate(); err != nil {
		return nil, fmt.Errorf("coref: %w", err)
	}

	s := &setup{
		trainSubs:   extract.DocumentSubstructure,
		predictSubs: extract.DocumentSubstructure,
	}

	if exp.RollIn == config.RollInLearned {
		s.rollIn = decoder.LearnedRollIn
	}

	switch exp.Approach {
	case config.ApproachRanking, config.ApproachRankingClosest,
		config.ApproachGraphsAna:
		s.trainSubs = extract.RankingSubstructures
		s.predictSubs = extract.RankingSubstructures
		if exp.Candidates == config.CandidatesSoon {
			s.trainSubs = extract.RankingTrainingSubstructures
		}
	case config.ApproachMentionPairs:
		s.trainSubs = extract.PairSubstructures
		s.predictSubs = extract.PairSubstructures
		if exp.Candidates == config.CandidatesSoon {
			s.trainSubs = extract.PairTrainingSubstructures
		}
	}

	switch exp.Approach {
	case config.ApproachRanking:
		s.dec = decoder.Ranking{}
	case config.ApproachRankingClosest:
		s.dec = decoder.RankingClosest{}
	case config.ApproachTrees:
		s.dec = decoder.Tree{}
	case config.ApproachGraphsAna:
		s.dec = decoder.GraphPerAnaphor{}
	case config.ApproachGraphsDoc:
		s.dec = decoder.GraphPerDocument{}
	case config.ApproachEntityLR:
		s.dec = decoder.EntityLeftToRight{RollIn: s.rollIn}
	case config.ApproachEntityEF:
		s.dec = decoder.EntityEasyFirst{RollIn: s.rollIn}
	case config.ApproachHypergraphPair:
		s.dec = decoder.Hypergraph{Cost: decoder.PairCost}
	case config.ApproachHypergraphHype:
		s.dec = decoder.Hypergraph{Cost: decoder.HyperCost}
	case config.ApproachMentionPairs:
		s.dec = decoder.MentionPair{}
	}

	s.cost = extract.NullCost
	if exp.Cost == config.CostConsistency {
		s.cost = extract.CostConsistency
	}

	switch exp.Clusterer {
	case config.ClusterAllAnte:
		s.policy = cluster.AllAnte
	case config.ClusterClosestFirst:
		s.policy = cluster.ClosestFirst
	case config.ClusterBestFirst:
		s.policy = cluster.BestFirst
	case config.ClusterAggressiveMerge:
		s.policy = cluster.AggressiveMerge
	}
	return s, nil
}

// DefaultFeatures derives generic feature functions from the attribute
// keys present in the corpus: one attribute feature and one match
// feature per key, plus the mention distance. Keys are sorted so the
// feature set is deterministic.
func DefaultFeatures(docs []*mention.Document) ([]extract.MentionFeature, []extract.PairFeature) {
	keys := make(map[string]bool)
	for _, doc := range docs {
		for _, m := range doc.Mentions {
			for k := range m.Attrs {
				keys[k] = true
			}
		}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var mfs []extract.MentionFeature
	pfs := []extract.PairFeature{extract.IndexDistance}
	for _, k := range sorted {
		mfs = append(mfs, extract.AttrFeature(k))
		pfs = append(pfs, extract.AttrMatch(k))
	}
	return mfs, pfs
}

// Load loads a trained resolver from a model file. The experiment must
// match the one used for training; feature functions are rebuilt from
// the prediction corpus at Predict time when opts is nil.
func Load(path string, exp config.Experiment, opts *Options) (*Resolver, error) {
	if _, err := newSetup(exp); err != nil {
		return nil, err
	}
	model, err := perceptron.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("coref: %w", err)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	r := &Resolver{exp: exp, model: model}
	if opts != nil {
		r.mentionFeatures = opts.MentionFeatures
		r.pairFeatures = opts.PairFeatures
	}
	return r, nil
}

// Save writes the resolver's model to a model file.
func (r *Resolver) Save(path string) error {
	if r.model == nil {
		return fmt.Errorf("coref: resolver not trained")
	}
	if err := perceptron.SaveModel(r.model, path); err != nil {
		return fmt.Errorf("coref: %w", err)
	}
	return nil
}

// Model exposes the underlying trained model.
func (r *Resolver) Model() *perceptron.Model {
	return r.model
}

// Predict resolves coreference in the given documents and returns one
// clustering per document, aligned with the input order.
func (r *Resolver) Predict(docs []*mention.Document) ([]cluster.Result, error) {
	decoded, err := r.decodeCorpus(docs)
	if err != nil {
		return nil, err
	}

	s, _ := newSetup(r.exp)
	corefLabels := s.dec.CorefLabels()

	results := make([]cluster.Result, len(docs))
	for i, doc := range docs {
		d := decoded[doc]
		results[i] = cluster.Extract(s.policy, doc, d.arcs, d.labels, d.scores, corefLabels)
	}
	return results, nil
}

// KBestSolutions returns, per document, the approximate k-best
// antecedent assignments under the trained model.
func (r *Resolver) KBestSolutions(docs []*mention.Document, k int, variant decoder.KBestVariant) (map[string][]decoder.Solution, error) {
	if r.model == nil {
		return nil, fmt.Errorf("coref: resolver not trained")
	}
	mfs, pfs := r.features(docs)

	ex := &extract.Extractor{
		Substructures:   extract.RankingSubstructures,
		MentionFeatures: mfs,
		PairFeatures:    pfs,
		Cost:            extract.NullCost,
		Labels:          []string{"+"},
		Workers:         r.exp.Workers,
	}
	inst, err := ex.Extract(docs)
	if err != nil {
		return nil, fmt.Errorf("coref: %w", err)
	}

	scorer := perceptron.FromModel(r.model, 0)
	search := decoder.KBest{K: k, Variant: variant}

	byDoc := make(map[*mention.Document][]*extract.Substructure)
	var order []*mention.Document
	for _, sub := range inst.Substructures {
		if _, ok := byDoc[sub.Doc]; !ok {
			order = append(order, sub.Doc)
		}
		byDoc[sub.Doc] = append(byDoc[sub.Doc], sub)
	}

	out := make(map[string][]decoder.Solution, len(order))
	for _, doc := range order {
		out[doc.ID] = search.Search(byDoc[doc], scorer)
	}
	return out, nil
}

type decodedDoc struct {
	arcs   []mention.Arc
	labels []string
	scores []float64
}

// decodeCorpus extracts prediction substructures and decodes them,
// flattening each document's arcs in substructure order.
func (r *Resolver) decodeCorpus(docs []*mention.Document) (map[*mention.Document]*decodedDoc, error) {
	if r.model == nil {
		return nil, fmt.Errorf("coref: resolver not trained")
	}
	s, err := newSetup(r.exp)
	if err != nil {
		return nil, err
	}
	mfs, pfs := r.features(docs)

	ex := &extract.Extractor{
		Substructures:   s.predictSubs,
		MentionFeatures: mfs,
		PairFeatures:    pfs,
		Cost:            extract.NullCost,
		Labels:          s.dec.Labels(),
		Workers:         r.exp.Workers,
	}
	inst, err := ex.Extract(docs)
	if err != nil {
		return nil, fmt.Errorf("coref: %w", err)
	}

	scorer := perceptron.FromModel(r.model, 0)
	decoded := make(map[*mention.Document]*decodedDoc, len(docs))
	for _, doc := range docs {
		decoded[doc] = &decodedDoc{}
	}
	for _, sub := range inst.Substructures {
		res := s.dec.Decode(sub, scorer, decoder.Predict)
		d := decoded[sub.Doc]
		for i, arc := range res.Arcs {
			d.arcs = append(d.arcs, arc)
			d.labels = append(d.labels, res.LabelAt(i))
			d.scores = append(d.scores, res.Scores[i])
		}
	}
	return decoded, nil
}

func (r *Resolver) features(docs []*mention.Document) ([]extract.MentionFeature, []extract.PairFeature) {
	if r.mentionFeatures != nil || r.pairFeatures != nil {
		return r.mentionFeatures, r.pairFeatures
	}
	return DefaultFeatures(docs)
}

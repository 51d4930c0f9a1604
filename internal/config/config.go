// Package config loads and validates TOML experiment files.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Approach names, matching the decoder variants.
const (
	ApproachRanking        = "mention_ranking"
	ApproachRankingClosest = "ranking_closest"
	ApproachTrees          = "antecedent_trees"
	ApproachGraphsAna      = "antecedent_graphs_ana"
	ApproachGraphsDoc      = "antecedent_graphs_doc"
	ApproachEntityLR       = "entity_lr"
	ApproachEntityEF       = "entity_ef"
	ApproachHypergraphPair = "hypergraph_pair"
	ApproachHypergraphHype = "hypergraph_hyper"
	ApproachMentionPairs   = "mention_pairs"
)

// Candidate enumeration policies for training substructures.
const (
	CandidatesAll  = "all"
	CandidatesSoon = "soon"
)

// Cost function names.
const (
	CostConsistency = "consistency"
	CostNone        = "none"
)

// Clusterer names.
const (
	ClusterAllAnte         = "all_ante"
	ClusterClosestFirst    = "closest_first"
	ClusterBestFirst       = "best_first"
	ClusterAggressiveMerge = "aggressive_merge"
)

// Roll-in policies for the entity decoders.
const (
	RollInGold    = "gold"
	RollInLearned = "learned"
)

// Experiment describes one full training or prediction setup. Zero
// values of optional fields are filled in by Load.
type Experiment struct {
	Approach    string  `toml:"approach"`
	Candidates  string  `toml:"candidates"`
	Cost        string  `toml:"cost"`
	Clusterer   string  `toml:"clusterer"`
	CostScaling float64 `toml:"cost_scaling"`
	Iterations  int     `toml:"iterations"`
	Seed        int64   `toml:"seed"`
	RollIn      string  `toml:"roll_in"`
	Model       string  `toml:"model"`
	Workers     int     `toml:"workers"`
}

// Default returns the standard mention-ranking experiment.
func Default() Experiment {
	return Experiment{
		Approach:    ApproachRanking,
		Candidates:  CandidatesAll,
		Cost:        CostConsistency,
		Clusterer:   ClusterAllAnte,
		CostScaling: 100,
		Iterations:  5,
		Seed:        23,
		RollIn:      RollInGold,
		Model:       "model.json",
	}
}

// Load reads an experiment from a TOML file, fills defaults for omitted
// fields and validates the result.
func Load(path string) (Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Experiment{}, err
	}

	exp := Default()
	if err := toml.Unmarshal(data, &exp); err != nil {
		return Experiment{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := exp.Validate(); err != nil {
		return Experiment{}, err
	}
	return exp, nil
}

// Validate checks every enum field and numeric range, reporting the
// first offending parameter.
func (e Experiment) Validate() error {
	switch e.Approach {
	case ApproachRanking, ApproachRankingClosest, ApproachTrees,
		ApproachGraphsAna, ApproachGraphsDoc, ApproachEntityLR,
		ApproachEntityEF, ApproachHypergraphPair, ApproachHypergraphHype,
		ApproachMentionPairs:
	default:
		return fmt.Errorf("unknown approach %q", e.Approach)
	}
	switch e.Candidates {
	case CandidatesAll, CandidatesSoon:
	default:
		return fmt.Errorf("unknown candidates policy %q", e.Candidates)
	}
	switch e.Cost {
	case CostConsistency, CostNone:
	default:
		return fmt.Errorf("unknown cost function %q", e.Cost)
	}
	switch e.Clusterer {
	case ClusterAllAnte, ClusterClosestFirst, ClusterBestFirst,
		ClusterAggressiveMerge:
	default:
		return fmt.Errorf("unknown clusterer %q", e.Clusterer)
	}
	switch e.RollIn {
	case RollInGold, RollInLearned:
	default:
		return fmt.Errorf("unknown roll-in policy %q", e.RollIn)
	}
	if e.CostScaling < 0 {
		return fmt.Errorf("cost_scaling must be non-negative, got %v", e.CostScaling)
	}
	if e.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", e.Iterations)
	}
	if e.Model == "" {
		return fmt.Errorf("model path must not be empty")
	}
	return nil
}

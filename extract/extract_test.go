package extract

import (
	"testing"

	"github.com/latentstruct/coref/mention"
)

func TestExtractorExtract(t *testing.T) {
	docs := []*mention.Document{
		mention.NewDocument("a", []*mention.Mention{
			{GoldSet: "e", Attrs: map[string]string{"type": "x"}},
			{Attrs: map[string]string{"type": "y"}},
			{GoldSet: "e", Attrs: map[string]string{"type": "x"}},
		}),
		mention.NewDocument("empty", nil),
		mention.NewDocument("b", []*mention.Mention{
			{Attrs: map[string]string{"type": "z"}},
		}),
	}

	e := &Extractor{
		Substructures:   RankingSubstructures,
		MentionFeatures: []MentionFeature{AttrFeature("type")},
		PairFeatures:    []PairFeature{AttrMatch("type"), IndexDistance},
		Cost:            CostConsistency,
		Labels:          []string{"+"},
		Workers:         2,
	}
	inst, err := e.Extract(docs)
	if err != nil {
		t.Fatal(err)
	}

	// 3 anaphors in "a", none in "empty", 1 in "b"; corpus order kept.
	if len(inst.Substructures) != 4 {
		t.Fatalf("got %d substructures, want 4", len(inst.Substructures))
	}
	for _, sub := range inst.Substructures[:3] {
		if sub.Doc.ID != "a" {
			t.Fatalf("substructure order broken: doc %q before \"a\" finished", sub.Doc.ID)
		}
	}
	if inst.Substructures[3].Doc.ID != "b" {
		t.Fatalf("last substructure from doc %q, want \"b\"", inst.Substructures[3].Doc.ID)
	}

	sub := inst.Substructures[2] // anaphor 3 of doc "a"
	ai := sub.Info[mention.Arc{Anaphor: 3, Antecedent: 1}]
	if ai == nil {
		t.Fatal("arc (3,1) missing from arc table")
	}
	if !ai.Consistent {
		t.Error("arc (3,1) links the gold chain, must be consistent")
	}
	if len(ai.Costs) != 1 || ai.Costs[0] != 0 {
		t.Errorf("consistent arc costs = %v, want [0]", ai.Costs)
	}
	if len(ai.Features) == 0 {
		t.Error("real arc carries no features")
	}

	dummy := sub.Info[mention.Arc{Anaphor: 3, Antecedent: 0}]
	if dummy.Consistent {
		t.Error("dummy arc for an anaphor with a gold antecedent is inconsistent")
	}
	if dummy.Costs[0] != 2 {
		t.Errorf("wrong dummy decision cost = %v, want 2", dummy.Costs[0])
	}
	if len(dummy.Features) != 0 {
		t.Error("dummy arc must carry no features")
	}

	wrong := sub.Info[mention.Arc{Anaphor: 3, Antecedent: 2}]
	if wrong.Costs[0] != 1 {
		t.Errorf("wrong link cost = %v, want 1", wrong.Costs[0])
	}
}

func TestExtractorSharesArcTablePerDocument(t *testing.T) {
	docs := []*mention.Document{
		mention.NewDocument("a", []*mention.Mention{{}, {}}),
	}
	e := &Extractor{
		Substructures: RankingSubstructures,
		Cost:          NullCost,
		Labels:        []string{"+"},
	}
	inst, err := e.Extract(docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(inst.Substructures) != 2 {
		t.Fatalf("got %d substructures, want 2", len(inst.Substructures))
	}
	arc := mention.Arc{Anaphor: 1, Antecedent: 0}
	if inst.Substructures[0].Info[arc] != inst.Substructures[1].Info[arc] {
		t.Error("substructures of one document must share the arc table")
	}
}

func TestExtractorRequiresLabels(t *testing.T) {
	e := &Extractor{Substructures: RankingSubstructures, Cost: NullCost}
	if _, err := e.Extract(nil); err == nil {
		t.Fatal("extractor without labels must fail")
	}
}

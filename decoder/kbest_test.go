package decoder_test

import (
	"testing"

	"github.com/latentstruct/coref/decoder"
	"github.com/latentstruct/coref/extract"
	"github.com/latentstruct/coref/mention"
)

func kbestFixture() ([]*extract.Substructure, decoder.Scorer) {
	d := testDoc("", "", "")
	info := fullTable(d)
	subs := []*extract.Substructure{
		rankingSub(d, info, 1),
		rankingSub(d, info, 2),
		rankingSub(d, info, 3),
	}
	scorer := newScorer(0, map[uint32]float64{
		featID(2, 1): 3,
		featID(3, 2): 2,
		featID(3, 1): 1,
	}, 0)
	return subs, scorer
}

func checkMonotone(t *testing.T, solutions []decoder.Solution) {
	t.Helper()
	for i := 1; i < len(solutions); i++ {
		if solutions[i].Total > solutions[i-1].Total {
			t.Errorf("total scores must be non-increasing: %v then %v",
				solutions[i-1].Total, solutions[i].Total)
		}
	}
}

func TestKBestAgenda(t *testing.T) {
	subs, scorer := kbestFixture()
	solutions := decoder.KBest{K: 3, Variant: decoder.Agenda}.Search(subs, scorer)

	if len(solutions) != 3 {
		t.Fatalf("got %d solutions, want 3", len(solutions))
	}
	checkMonotone(t, solutions)

	best := solutions[0]
	wantArcs := []mention.Arc{
		{Anaphor: 1, Antecedent: 0},
		{Anaphor: 2, Antecedent: 1},
		{Anaphor: 3, Antecedent: 2},
	}
	for i, arc := range wantArcs {
		if best.Arcs[i] != arc {
			t.Errorf("1-best arc %d = %v, want %v", i, best.Arcs[i], arc)
		}
	}
	if best.Total != 5 {
		t.Errorf("1-best total = %v, want 5", best.Total)
	}

	// Substituting (3,1) for (3,2) yields the same partition {1,2,3} and
	// must have been rejected, so the runner-up comes from the dummy
	// substitution with total 3.
	if solutions[1].Total != 3 {
		t.Errorf("2nd best total = %v, want 3", solutions[1].Total)
	}
	if solutions[2].Total != 2 {
		t.Errorf("3rd best total = %v, want 2", solutions[2].Total)
	}
}

func TestKBestPadsOnUnderflow(t *testing.T) {
	subs, scorer := kbestFixture()
	solutions := decoder.KBest{K: 6, Variant: decoder.Agenda}.Search(subs, scorer)

	if len(solutions) != 6 {
		t.Fatalf("got %d solutions, want 6 (padded)", len(solutions))
	}
	checkMonotone(t, solutions)

	worst := solutions[2]
	for i := 3; i < 6; i++ {
		if solutions[i].Total != worst.Total {
			t.Errorf("padding solution %d total = %v, want %v", i, solutions[i].Total, worst.Total)
		}
	}
}

func TestKBestOvergenerating(t *testing.T) {
	subs, scorer := kbestFixture()
	solutions := decoder.KBest{K: 4, Variant: decoder.Overgenerating}.Search(subs, scorer)

	if len(solutions) != 4 {
		t.Fatalf("got %d solutions, want 4", len(solutions))
	}
	checkMonotone(t, solutions)

	// The overgenerating variant substitutes into every kept solution, so
	// it finds the all-singletons assignment the agenda variant misses.
	if solutions[3].Total != 0 {
		t.Errorf("4th best total = %v, want 0", solutions[3].Total)
	}
	for _, arc := range solutions[3].Arcs {
		if !arc.ToDummy() {
			t.Errorf("all-singletons solution holds non-dummy arc %v", arc)
		}
	}
}

func TestKBestDistinctPartitions(t *testing.T) {
	subs, scorer := kbestFixture()
	for _, variant := range []decoder.KBestVariant{decoder.Agenda, decoder.Overgenerating} {
		solutions := decoder.KBest{K: 3, Variant: variant}.Search(subs, scorer)
		seen := make(map[string]bool)
		for _, sol := range solutions {
			key := ""
			for _, arc := range sol.Arcs {
				key += string(rune('a'+arc.Anaphor)) + string(rune('a'+arc.Antecedent))
			}
			if seen[key] {
				t.Errorf("variant %v returned duplicate assignment %v", variant, sol.Arcs)
			}
			seen[key] = true
		}
	}
}

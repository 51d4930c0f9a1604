package extract

import (
	"testing"

	"github.com/latentstruct/coref/mention"
)

func goldDoc(gold ...string) *mention.Document {
	ms := make([]*mention.Mention, len(gold))
	for i, g := range gold {
		ms[i] = &mention.Mention{GoldSet: g}
	}
	return mention.NewDocument("test", ms)
}

func checkOrdering(t *testing.T, groups [][]mention.Arc) {
	t.Helper()
	for _, arcs := range groups {
		for _, arc := range arcs {
			if arc.Antecedent >= arc.Anaphor {
				t.Errorf("arc %v violates antecedent ordering", arc)
			}
		}
	}
}

func TestRankingSubstructures(t *testing.T) {
	d := goldDoc("", "", "")
	subs := RankingSubstructures(d)
	checkOrdering(t, subs)

	if len(subs) != 3 {
		t.Fatalf("got %d substructures, want one per anaphor", len(subs))
	}
	// Anaphor 3: candidates nearest first, dummy last.
	want := []mention.Arc{
		{Anaphor: 3, Antecedent: 2},
		{Anaphor: 3, Antecedent: 1},
		{Anaphor: 3, Antecedent: 0},
	}
	got := subs[2]
	if len(got) != len(want) {
		t.Fatalf("anaphor 3 candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDocumentSubstructureLayout(t *testing.T) {
	d := goldDoc("", "", "", "")
	subs := DocumentSubstructure(d)
	checkOrdering(t, subs)

	if len(subs) != 1 {
		t.Fatalf("got %d substructures, want 1", len(subs))
	}
	arcs := subs[0]
	if len(arcs) != 10 {
		t.Fatalf("got %d arcs, want 10", len(arcs))
	}
	// Anaphor j's group starts at j(j-1)/2 and holds j arcs.
	for j := 1; j <= 4; j++ {
		first := j * (j - 1) / 2
		for i := 0; i < j; i++ {
			arc := arcs[first+i]
			if arc.Anaphor != j || arc.Antecedent != j-1-i {
				t.Errorf("slot %d = %v, want anaphor %d antecedent %d",
					first+i, arc, j, j-1-i)
			}
		}
	}
}

func TestPairSubstructuresExcludeDummy(t *testing.T) {
	d := goldDoc("", "", "")
	subs := PairSubstructures(d)
	checkOrdering(t, subs)

	if len(subs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(subs))
	}
	for _, sub := range subs {
		if len(sub) != 1 {
			t.Fatalf("pair substructure holds %d arcs, want 1", len(sub))
		}
		if sub[0].ToDummy() {
			t.Errorf("pair substructures must not contain dummy arcs, got %v", sub[0])
		}
	}
}

func TestPairTrainingSubstructuresSoonBoundary(t *testing.T) {
	d := goldDoc("e", "", "e", "e")
	subs := PairTrainingSubstructures(d)
	checkOrdering(t, subs)

	var got []mention.Arc
	for _, sub := range subs {
		got = append(got, sub...)
	}
	// Anaphor 2 has no gold set and is skipped. Anaphors 3 and 4 run
	// from the closest candidate back to their first gold antecedent.
	want := []mention.Arc{
		{Anaphor: 3, Antecedent: 2},
		{Anaphor: 3, Antecedent: 1},
		{Anaphor: 4, Antecedent: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got arcs %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arc %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRankingTrainingSubstructures(t *testing.T) {
	d := goldDoc("e", "", "e")
	subs := RankingTrainingSubstructures(d)
	checkOrdering(t, subs)

	if len(subs) != 3 {
		t.Fatalf("got %d substructures, want 3", len(subs))
	}
	// Anaphors without a gold antecedent keep only the dummy candidate.
	for _, ana := range []int{0, 1} {
		sub := subs[ana]
		if len(sub) != 1 || !sub[0].ToDummy() {
			t.Errorf("anaphor %d candidates = %v, want only the dummy arc", ana+1, sub)
		}
	}
	// Anaphor 3 stops at its first gold antecedent, mention 1.
	want := []mention.Arc{
		{Anaphor: 3, Antecedent: 2},
		{Anaphor: 3, Antecedent: 1},
	}
	got := subs[2]
	if len(got) != len(want) {
		t.Fatalf("anaphor 3 candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %v, want %v", i, got[i], want[i])
		}
	}
}

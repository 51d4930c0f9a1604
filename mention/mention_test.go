package mention

import "testing"

func TestNewDocument(t *testing.T) {
	d := NewDocument("doc", []*Mention{
		{GoldSet: "e"},
		{},
	})

	if len(d.Mentions) != 3 {
		t.Fatalf("got %d mentions, want 3 (dummy + 2)", len(d.Mentions))
	}
	if !d.Mentions[0].Dummy || d.Mentions[0].Index != 0 {
		t.Error("mention 0 must be the dummy")
	}
	for i := 1; i < 3; i++ {
		if d.Mentions[i].Dummy {
			t.Errorf("mention %d wrongly marked dummy", i)
		}
		if d.Mentions[i].Index != i {
			t.Errorf("mention %d has index %d", i, d.Mentions[i].Index)
		}
	}
}

func TestIsCoreferent(t *testing.T) {
	d := NewDocument("doc", []*Mention{
		{GoldSet: "e"},
		{GoldSet: "f"},
		{GoldSet: "e"},
		{},
	})

	tests := []struct {
		i, j int
		want bool
	}{
		{1, 3, true},
		{3, 1, true},
		{1, 2, false},
		{1, 4, false}, // empty gold set never corefers
		{4, 4, false},
		{0, 1, false}, // dummy never corefers
	}
	for _, tt := range tests {
		if got := d.IsCoreferent(tt.i, tt.j); got != tt.want {
			t.Errorf("IsCoreferent(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestDecisionIsConsistent(t *testing.T) {
	d := NewDocument("doc", []*Mention{
		{GoldSet: "e"},
		{},
		{GoldSet: "e"},
	})

	tests := []struct {
		ana, ante int
		want      bool
	}{
		{3, 1, true},  // gold link
		{3, 2, false}, // wrong link
		{3, 0, false}, // anaphor has a preceding gold antecedent
		{2, 0, true},  // unannotated anaphor: dummy is the right call
		{2, 1, false},
		{1, 0, true}, // first chain mention: no preceding antecedent
	}
	for _, tt := range tests {
		if got := d.DecisionIsConsistent(tt.ana, tt.ante); got != tt.want {
			t.Errorf("DecisionIsConsistent(%d, %d) = %v, want %v", tt.ana, tt.ante, got, tt.want)
		}
	}
}

func TestArcToDummy(t *testing.T) {
	if !(Arc{Anaphor: 3, Antecedent: 0}).ToDummy() {
		t.Error("arc to mention 0 must be a dummy arc")
	}
	if (Arc{Anaphor: 3, Antecedent: 1}).ToDummy() {
		t.Error("arc to mention 1 is not a dummy arc")
	}
}

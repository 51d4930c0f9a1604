package extract

import (
	"testing"

	"github.com/latentstruct/coref/mention"
)

func featureDoc(attrs ...map[string]string) *mention.Document {
	ms := make([]*mention.Mention, len(attrs))
	for i, a := range attrs {
		ms[i] = &mention.Mention{Attrs: a}
	}
	return mention.NewDocument("test", ms)
}

func hashAll(words ...string) []uint32 {
	out := make([]uint32, len(words))
	for i, w := range words {
		out[i] = Hash(w)
	}
	return out
}

func TestHashMask(t *testing.T) {
	for _, s := range []string{"", "a", "ana_type=b^ante_type=a", "index_distance"} {
		if h := Hash(s); h >= 1<<HashBits {
			t.Errorf("Hash(%q) = %d exceeds %d bits", s, h, HashBits)
		}
	}
	if Hash("ana_type=b") != Hash("ana_type=b") {
		t.Error("hashing must be deterministic")
	}
}

func TestComposeArcFeaturesBasic(t *testing.T) {
	d := featureDoc(
		map[string]string{"type": "a"},
		map[string]string{"type": "b"},
	)
	arc := mention.Arc{Anaphor: 2, Antecedent: 1}

	nonNum, num, vals := composeArcFeatures(d, arc,
		[]MentionFeature{AttrFeature("type")},
		[]PairFeature{AttrMatch("type"), IndexDistance},
		map[int][]Feature{})

	// One non-numeric mention feature each, the zipped conjunction, and
	// no pairwise indicator (same_type is false and filtered). All three
	// strings are anchors, so no anchor conjunctions are added.
	wantNonNum := hashAll(
		"ana_type=b",
		"ante_type=a",
		"ana_type=b^ante_type=a",
	)
	if len(nonNum) != len(wantNonNum) {
		t.Fatalf("got %d non-numeric features, want %d", len(nonNum), len(wantNonNum))
	}
	for i := range wantNonNum {
		if nonNum[i] != wantNonNum[i] {
			t.Errorf("non-numeric feature %d = %d, want %d", i, nonNum[i], wantNonNum[i])
		}
	}

	// The numeric distance feature plus its three anchor conjunctions.
	wantNum := hashAll(
		"index_distance",
		"ana_type=b^index_distance",
		"ante_type=a^index_distance",
		"ana_type=b^ante_type=a^index_distance",
	)
	if len(num) != len(wantNum) {
		t.Fatalf("got %d numeric features, want %d", len(num), len(wantNum))
	}
	for i := range wantNum {
		if num[i] != wantNum[i] {
			t.Errorf("numeric feature %d = %d, want %d", i, num[i], wantNum[i])
		}
		if vals[i] != 1 {
			t.Errorf("numeric value %d = %v, want 1 (distance)", i, vals[i])
		}
	}
}

func TestComposeArcFeaturesDummyArc(t *testing.T) {
	d := featureDoc(map[string]string{"type": "a"})
	nonNum, num, vals := composeArcFeatures(d,
		mention.Arc{Anaphor: 1, Antecedent: 0},
		[]MentionFeature{AttrFeature("type")},
		[]PairFeature{IndexDistance},
		map[int][]Feature{})

	if len(nonNum) != 0 || len(num) != 0 || len(vals) != 0 {
		t.Errorf("dummy arc must carry no features, got %d/%d", len(nonNum), len(num))
	}
}

func TestComposeArcFeaturesAnchorConjunctions(t *testing.T) {
	d := featureDoc(
		map[string]string{"type": "a", "num": "pl"},
		map[string]string{"type": "b", "num": "sg"},
	)
	arc := mention.Arc{Anaphor: 2, Antecedent: 1}

	nonNum, _, _ := composeArcFeatures(d, arc,
		[]MentionFeature{AttrFeature("num"), AttrFeature("type")},
		nil,
		map[int][]Feature{})

	// 6 base strings (2+2 prefixed, 2 zipped), anchors at 0, 2 and 4,
	// each conjoined with the 3 non-anchor strings: 6 + 9.
	if len(nonNum) != 15 {
		t.Fatalf("got %d non-numeric features, want 15", len(nonNum))
	}

	present := make(map[uint32]bool, len(nonNum))
	for _, id := range nonNum {
		present[id] = true
	}
	for _, want := range []string{
		"ana_num=sg^ana_type=b",
		"ante_num=pl^ante_type=a",
		"ana_num=sg^ante_num=pl^ana_type=b^ante_type=a",
	} {
		if !present[Hash(want)] {
			t.Errorf("expected anchor conjunction %q missing", want)
		}
	}
}

func TestComposeArcFeaturesTruthyIndicator(t *testing.T) {
	d := featureDoc(
		map[string]string{"type": "a"},
		map[string]string{"type": "a"},
	)
	arc := mention.Arc{Anaphor: 2, Antecedent: 1}

	nonNum, _, _ := composeArcFeatures(d, arc,
		[]MentionFeature{AttrFeature("type")},
		[]PairFeature{AttrMatch("type")},
		map[int][]Feature{})

	// 4 base strings including the true indicator, anchors 0..2 each
	// conjoined with the indicator: 4 + 3.
	if len(nonNum) != 7 {
		t.Fatalf("got %d non-numeric features, want 7", len(nonNum))
	}

	present := make(map[uint32]bool, len(nonNum))
	for _, id := range nonNum {
		present[id] = true
	}
	if !present[Hash("same_type=true")] {
		t.Error("true pairwise indicator must be emitted")
	}
	if present[Hash("same_type=false")] {
		t.Error("false pairwise indicator must be filtered")
	}
}

package extract

import (
	"strconv"

	"github.com/latentstruct/coref/mention"
)

// Feature is a single named feature value, either a string or a number.
// Boolean features are represented as the strings "true"/"false".
type Feature struct {
	Name    string
	Str     string
	Num     float64
	Numeric bool
}

// Str builds a non-numeric feature.
func Str(name, val string) Feature {
	return Feature{Name: name, Str: val}
}

// Bool builds a non-numeric feature from a boolean value.
func Bool(name string, val bool) Feature {
	return Feature{Name: name, Str: strconv.FormatBool(val)}
}

// Num builds a numeric feature.
func Num(name string, val float64) Feature {
	return Feature{Name: name, Num: val, Numeric: true}
}

// MentionFeature computes a feature of a single mention.
type MentionFeature func(m *mention.Mention) Feature

// PairFeature computes a feature of an (anaphor, antecedent) pair.
type PairFeature func(ana, ante *mention.Mention) Feature

// AttrFeature returns a mention feature that reads the named attribute
// from the mention's attribute bag.
func AttrFeature(name string) MentionFeature {
	return func(m *mention.Mention) Feature {
		return Str(name, m.Attr(name))
	}
}

// AttrMatch returns a pair feature that fires when both mentions carry the
// same non-empty value for the named attribute.
func AttrMatch(name string) PairFeature {
	return func(ana, ante *mention.Mention) Feature {
		v := ana.Attr(name)
		return Bool("same_"+name, v != "" && v == ante.Attr(name))
	}
}

// IndexDistance is a numeric pair feature: the mention distance between
// anaphor and antecedent.
func IndexDistance(ana, ante *mention.Mention) Feature {
	return Num("index_distance", float64(ana.Index-ante.Index))
}

func (f Feature) render(prefix string) string {
	if f.Numeric {
		return prefix + f.Name
	}
	return prefix + f.Name + "=" + f.Str
}

// truthy mirrors the original's filtering of pairwise features: empty and
// false-valued features are not emitted as indicators.
func (f Feature) truthy() bool {
	return f.Str != "" && f.Str != "false"
}

type numericFeature struct {
	name string
	val  float64
}

// composeArcFeatures expands mention and pairwise features into the hashed
// feature arrays for one arc. Arcs to the dummy mention carry no features;
// their score is the prior alone.
//
// The composition scheme follows the original model: prefixed anaphor and
// antecedent features, zipped anaphor^antecedent conjunctions, pairwise
// indicators, and conjunctions of three anchor features (the first
// anaphor feature, the first antecedent feature and their conjunction)
// with every other feature. Numeric features keep their values in a
// parallel array and get the same anchor-conjunction expansion.
func composeArcFeatures(
	doc *mention.Document,
	arc mention.Arc,
	mentionFeatures []MentionFeature,
	pairFeatures []PairFeature,
	cache map[int][]Feature,
) (nonNumeric []uint32, numeric []uint32, numericVals []float32) {
	if arc.ToDummy() {
		return nil, nil, nil
	}

	ana := doc.Mentions[arc.Anaphor]
	ante := doc.Mentions[arc.Antecedent]

	anaFeats := cachedMentionFeatures(cache, arc.Anaphor, ana, mentionFeatures)
	anteFeats := cachedMentionFeatures(cache, arc.Antecedent, ante, mentionFeatures)

	var inst []string

	for _, f := range anaFeats {
		if !f.Numeric {
			inst = append(inst, f.render("ana_"))
		}
	}
	numAnaFeats := len(inst)

	for _, f := range anteFeats {
		if !f.Numeric {
			inst = append(inst, f.render("ante_"))
		}
	}

	for i, n := 0, min(len(anaFeats), len(anteFeats)); i < n; i++ {
		inst = append(inst,
			anaFeats[i].renderValue("ana_")+"^"+anteFeats[i].renderValue("ante_"))
	}

	var pairFeats []Feature
	for _, pf := range pairFeatures {
		pairFeats = append(pairFeats, pf(ana, ante))
	}
	for _, f := range pairFeats {
		if !f.Numeric && f.truthy() {
			inst = append(inst, f.render(""))
		}
	}

	// Anchor conjunctions: the anchors are the first anaphor feature, the
	// first antecedent feature and the first zipped conjunction.
	anchors := anchorIndices(numAnaFeats, len(inst))
	base := inst
	for _, a := range anchors {
		for j, word := range base {
			if isAnchor(anchors, j) {
				continue
			}
			inst = append(inst, base[a]+"^"+word)
		}
	}

	anaNumeric := numericFeatures(anaFeats, "ana_")
	anteNumeric := numericFeatures(anteFeats, "ante_")
	pairNumeric := numericFeatures(pairFeats, "")

	var allNumeric []numericFeature
	for _, group := range [][]numericFeature{anaNumeric, anteNumeric, pairNumeric} {
		expanded := group
		for _, a := range anchors {
			for _, nf := range group {
				expanded = append(expanded, numericFeature{
					name: base[a] + "^" + nf.name,
					val:  nf.val,
				})
			}
		}
		allNumeric = append(allNumeric, expanded...)
	}

	nonNumeric = make([]uint32, len(inst))
	for i, word := range inst {
		nonNumeric[i] = Hash(word)
	}
	numeric = make([]uint32, len(allNumeric))
	numericVals = make([]float32, len(allNumeric))
	for i, nf := range allNumeric {
		numeric[i] = Hash(nf.name)
		numericVals[i] = float32(nf.val)
	}
	return nonNumeric, numeric, numericVals
}

// renderValue renders numeric features with their value inline, used only
// for the zipped anaphor^antecedent conjunctions where numeric features
// participate as plain strings.
func (f Feature) renderValue(prefix string) string {
	if f.Numeric {
		return prefix + f.Name + "=" + strconv.FormatFloat(f.Num, 'g', -1, 64)
	}
	return prefix + f.Name + "=" + f.Str
}

func cachedMentionFeatures(cache map[int][]Feature, idx int, m *mention.Mention, fns []MentionFeature) []Feature {
	if feats, ok := cache[idx]; ok {
		return feats
	}
	feats := make([]Feature, len(fns))
	for i, fn := range fns {
		feats[i] = fn(m)
	}
	cache[idx] = feats
	return feats
}

func numericFeatures(feats []Feature, prefix string) []numericFeature {
	var out []numericFeature
	for _, f := range feats {
		if f.Numeric {
			out = append(out, numericFeature{name: prefix + f.Name, val: f.Num})
		}
	}
	return out
}

func anchorIndices(numAnaFeats, total int) []int {
	var anchors []int
	for _, a := range []int{0, numAnaFeats, 2 * numAnaFeats} {
		if a >= total || isAnchor(anchors, a) {
			continue
		}
		anchors = append(anchors, a)
	}
	return anchors
}

func isAnchor(anchors []int, j int) bool {
	for _, a := range anchors {
		if a == j {
			return true
		}
	}
	return false
}

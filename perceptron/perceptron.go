// Package perceptron implements the structured latent-variable perceptron
// that scores candidate arcs and is trained by cost-augmented
// mistake-driven updates with weight averaging.
package perceptron

import (
	"slices"

	"github.com/latentstruct/coref/decoder"
	"github.com/latentstruct/coref/extract"
)

// Perceptron is a linear model over hashed arc features with one prior
// and one weight vector per label. It implements decoder.Scorer. During
// training it additionally accumulates the running sums needed for
// weight averaging.
type Perceptron struct {
	labels     []string
	labelIndex map[string]int

	priors  map[string]float64
	weights map[string]map[uint32]float64

	cachedPriors  map[string]float64
	cachedWeights map[string]map[uint32]float64
	counter       float64

	costScaling float64
}

// New creates an empty perceptron over the given label set. costScaling
// is the factor applied to arc costs during training decodes.
func New(labels []string, costScaling float64) *Perceptron {
	p := &Perceptron{
		labels:        slices.Clone(labels),
		labelIndex:    make(map[string]int, len(labels)),
		priors:        make(map[string]float64),
		weights:       make(map[string]map[uint32]float64),
		cachedPriors:  make(map[string]float64),
		cachedWeights: make(map[string]map[uint32]float64),
		costScaling:   costScaling,
	}
	for i, label := range labels {
		p.labelIndex[label] = i
		p.weights[label] = make(map[uint32]float64)
		p.cachedWeights[label] = make(map[uint32]float64)
	}
	return p
}

// FromModel creates a perceptron initialized from a trained model, for
// prediction or continued training. Prediction uses costScaling 0, which
// makes Score and ScoreNoCost coincide.
func FromModel(m *Model, costScaling float64) *Perceptron {
	p := New(m.Labels, costScaling)
	for label, prior := range m.Priors {
		p.priors[label] = prior
	}
	for label, weights := range m.Weights {
		w := p.weights[label]
		if w == nil {
			w = make(map[uint32]float64)
			p.weights[label] = w
		}
		for f, v := range weights {
			w[f] = v
		}
	}
	return p
}

// ScoreNoCost returns prior[label] plus the summed weights of the arc's
// hashed features. Dummy arcs carry no features, so their score is the
// prior alone.
func (p *Perceptron) ScoreNoCost(ai *extract.ArcInfo, label string) float64 {
	score := p.priors[label]
	w := p.weights[label]
	for _, f := range ai.Features {
		score += w[f]
	}
	for i, f := range ai.NumFeatures {
		score += w[f] * float64(ai.NumValues[i])
	}
	return score
}

// Score returns the cost-augmented arc score used by training decodes.
func (p *Perceptron) Score(ai *extract.ArcInfo, label string) float64 {
	return p.ScoreNoCost(ai, label) + p.costScaling*ai.Costs[p.labelIndex[label]]
}

// CostScaling returns the configured cost scaling factor.
func (p *Perceptron) CostScaling() float64 {
	return p.costScaling
}

// Update applies one mistake-driven update for a decoded substructure:
// if the predicted assignment differs from the reference assignment, the
// reference arcs' features are added and the predicted arcs' features
// subtracted. The averaging counter advances on every call, updated or
// not. Reports whether an update was applied.
func (p *Perceptron) Update(sub *extract.Substructure, res decoder.Result) bool {
	p.counter++
	if res.Equal() {
		return false
	}
	for i, arc := range res.ConsArcs {
		p.updateArc(sub.Info[arc], res.ConsLabelAt(i), 1)
	}
	for i, arc := range res.Arcs {
		p.updateArc(sub.Info[arc], res.LabelAt(i), -1)
	}
	return true
}

func (p *Perceptron) updateArc(ai *extract.ArcInfo, label string, delta float64) {
	p.priors[label] += delta
	p.cachedPriors[label] += p.counter * delta

	w := p.weights[label]
	cached := p.cachedWeights[label]
	for _, f := range ai.Features {
		w[f] += delta
		cached[f] += p.counter * delta
	}
	for i, f := range ai.NumFeatures {
		d := delta * float64(ai.NumValues[i])
		w[f] += d
		cached[f] += p.counter * d
	}
}

// Model returns the current raw (unaveraged) model.
func (p *Perceptron) Model() *Model {
	m := newModel(p.labels)
	for label, prior := range p.priors {
		if prior != 0 {
			m.Priors[label] = prior
		}
	}
	for label, weights := range p.weights {
		for f, v := range weights {
			if v != 0 {
				m.Weights[label][f] = v
			}
		}
	}
	return m
}

// AveragedModel returns the averaged model, which replaces every
// parameter by its mean value over all update steps. Averaging reduces
// the variance of the final online weights and is what gets persisted
// after training.
func (p *Perceptron) AveragedModel() *Model {
	if p.counter == 0 {
		return p.Model()
	}
	m := newModel(p.labels)
	for label, prior := range p.priors {
		if avg := prior - p.cachedPriors[label]/p.counter; avg != 0 {
			m.Priors[label] = avg
		}
	}
	for label, weights := range p.weights {
		cached := p.cachedWeights[label]
		for f, v := range weights {
			if avg := v - cached[f]/p.counter; avg != 0 {
				m.Weights[label][f] = avg
			}
		}
	}
	return m
}

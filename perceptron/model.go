package perceptron

import (
	"encoding/json"
	"fmt"
	"os"
)

// Model is the serializable form of a trained perceptron: per-label
// priors and sparse weight vectors indexed by hashed feature id.
type Model struct {
	Labels  []string                      `json:"labels"`
	Priors  map[string]float64            `json:"priors"`
	Weights map[string]map[uint32]float64 `json:"weights"`
}

func newModel(labels []string) *Model {
	m := &Model{
		Labels:  labels,
		Priors:  make(map[string]float64),
		Weights: make(map[string]map[uint32]float64),
	}
	for _, label := range labels {
		m.Weights[label] = make(map[uint32]float64)
	}
	return m
}

// Validate checks that the model's weight vectors cover its label set.
func (m *Model) Validate() error {
	if len(m.Labels) == 0 {
		return fmt.Errorf("coref: model has no labels")
	}
	for _, label := range m.Labels {
		if _, ok := m.Weights[label]; !ok {
			return fmt.Errorf("coref: model has no weights for label %q", label)
		}
	}
	return nil
}

// SaveModel serializes the model to JSON.
func SaveModel(model *Model, path string) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadModel deserializes a model from JSON.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalModel(data)
}

// MarshalModel serializes the model to JSON bytes.
func MarshalModel(model *Model) ([]byte, error) {
	return json.Marshal(model)
}

// UnmarshalModel deserializes a model from JSON bytes.
func UnmarshalModel(data []byte) (*Model, error) {
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}
	if model.Weights == nil {
		model.Weights = make(map[string]map[uint32]float64)
	}
	if model.Priors == nil {
		model.Priors = make(map[string]float64)
	}
	for _, label := range model.Labels {
		if model.Weights[label] == nil {
			model.Weights[label] = make(map[uint32]float64)
		}
	}
	return &model, nil
}

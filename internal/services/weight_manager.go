package services

import (
	"fmt"
	"shopping-route-service/internal/domain"
)

// WeightManager owns the current preference vector.
// Every exported method leaves the vector summing to domain.WeightTotal.
type WeightManager struct {
	current domain.PreferenceWeights
}

func NewWeightManager(initial domain.PreferenceWeights) (*WeightManager, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("new weight manager: %w", err)
	}
	return &WeightManager{current: initial}, nil
}

func (m *WeightManager) Current() domain.PreferenceWeights {
	return m.current
}

// ApplyPreset replaces the vector with a named preset.
// An unknown name is a no-op and reports false.
func (m *WeightManager) ApplyPreset(name domain.PresetName) bool {
	w, ok := domain.Preset(name)
	if !ok {
		return false
	}
	m.current = w
	return true
}

// SetWeight changes one criterion and rebalances the rest.
func (m *WeightManager) SetWeight(c domain.Criterion, value float64) error {
	next, err := m.current.WithCriterion(c, value)
	if err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("set weight: %w", err)
	}
	m.current = next
	return nil
}

// SetVector replaces the whole vector. Vectors that do not sum to
// domain.WeightTotal are normalized; negative or all-zero vectors are rejected.
func (m *WeightManager) SetVector(w domain.PreferenceWeights) error {
	next, err := w.Normalized()
	if err != nil {
		return fmt.Errorf("set vector: %w", err)
	}
	next.Preset = domain.PresetCustom
	if err := next.Validate(); err != nil {
		return fmt.Errorf("set vector: %w", err)
	}
	m.current = next
	return nil
}

package services

import (
	"shopping-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeightManagerPresets(t *testing.T) {
	m, err := NewWeightManager(domain.DefaultWeights())
	require.NoError(t, err)

	require.True(t, m.ApplyPreset(domain.PresetSaveTime))
	require.Equal(t, domain.PreferenceWeights{Price: 15, Distance: 30, Quality: 15, Time: 40, Preset: domain.PresetSaveTime}, m.Current())

	require.False(t, m.ApplyPreset("cheapest-ever"))
	require.Equal(t, domain.PresetSaveTime, m.Current().Preset, "unknown preset is a no-op")
}

func TestWeightManagerSetWeightFromBalanced(t *testing.T) {
	m, err := NewWeightManager(domain.DefaultWeights())
	require.NoError(t, err)

	require.NoError(t, m.SetWeight(domain.CriterionPrice, 100))
	require.Equal(t, domain.PreferenceWeights{Price: 100, Preset: domain.PresetCustom}, m.Current())

	require.True(t, m.ApplyPreset(domain.PresetBalanced))
	require.Equal(t, domain.PresetBalanced, m.Current().Preset, "preset clears the custom tag")
}

func TestWeightManagerRejectsInvalid(t *testing.T) {
	_, err := NewWeightManager(domain.PreferenceWeights{Price: 10})
	require.ErrorIs(t, err, domain.ErrInvalidWeight)

	m, err := NewWeightManager(domain.DefaultWeights())
	require.NoError(t, err)

	err = m.SetVector(domain.PreferenceWeights{Price: -5, Distance: 105})
	require.ErrorIs(t, err, domain.ErrInvalidWeight)
	require.Equal(t, domain.DefaultWeights(), m.Current(), "state unchanged on rejection")

	require.NoError(t, m.SetVector(domain.PreferenceWeights{Price: 2, Distance: 1, Quality: 1, Time: 0}))
	require.Equal(t, domain.PreferenceWeights{Price: 50, Distance: 25, Quality: 25, Time: 0, Preset: domain.PresetCustom}, m.Current())
}

package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInfrastructureEstimator() *InfrastructureEstimator {
	a := DefaultAssumptions()
	return NewInfrastructureEstimator(a.Sources, a.Equipment)
}

func TestInfrastructureEstimator_EstimateInfrastructure(t *testing.T) {
	est := newTestInfrastructureEstimator()

	got, err := est.EstimateInfrastructure(100e9, EnergyMix{SourceSolar: 0.3, SourceGas: 0.7})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, got.TotalMW)

	solar, ok := got.Source(SourceSolar)
	require.True(t, ok)
	assert.InDelta(t, 30000, solar.FirmMW, 1e-6)
	assert.InDelta(t, 120000, solar.NameplateMW, 1e-6, "solar needs 4× nameplate at a 0.25 capacity factor")

	gas, ok := got.Source(SourceGas)
	require.True(t, ok)
	assert.InDelta(t, 70000, gas.FirmMW, 1e-6)
	assert.InDelta(t, 70000, gas.NameplateMW, 1e-6)

	tests := []struct {
		category string
		want     float64
	}{
		{CategoryTransformers, 50000},
		{CategorySwitchgear, 200000},
		{CategoryPVModules, 4.8e8},
		{CategoryBatteries, 480000},
		{CategoryGasTurbines, 70000},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.InEpsilon(t, tt.want, got.Units(tt.category), 1e-9)
		})
	}
}

func TestInfrastructureEstimator_EquipmentOrder(t *testing.T) {
	est := newTestInfrastructureEstimator()

	got, err := est.EstimateInfrastructure(1e9, EnergyMix{SourceGas: 1})
	require.NoError(t, err)

	var names []string
	for _, e := range got.Equipment {
		names = append(names, e.Category)
	}
	assert.Equal(t, []string{
		CategoryTransformers, CategorySwitchgear, CategoryPVModules, CategoryBatteries, CategoryGasTurbines,
	}, names)

	require.Len(t, got.Sources, 2)
	assert.Equal(t, SourceSolar, got.Sources[0].Source, "missing source is listed with a zero share")
	assert.Zero(t, got.Sources[0].Share)
}

func TestInfrastructureEstimator_PureSource(t *testing.T) {
	est := newTestInfrastructureEstimator()

	solar, err := est.EstimateInfrastructure(10e9, EnergyMix{SourceSolar: 1, SourceGas: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, solar.Units(CategoryGasTurbines))
	assert.Positive(t, solar.Units(CategoryPVModules))
	assert.Positive(t, solar.Units(CategoryBatteries))

	gas, err := est.EstimateInfrastructure(10e9, EnergyMix{SourceGas: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, gas.Units(CategoryPVModules))
	assert.Equal(t, 0.0, gas.Units(CategoryBatteries))
	assert.InDelta(t, 10000, gas.Units(CategoryGasTurbines), 1e-9)
}

func TestInfrastructureEstimator_GridEquipmentIndependentOfMix(t *testing.T) {
	est := newTestInfrastructureEstimator()

	mixes := []EnergyMix{
		{SourceSolar: 1},
		{SourceGas: 1},
		{SourceSolar: 0.5, SourceGas: 0.5},
		{SourceSolar: 0.25, SourceGas: 0.75},
	}

	for _, mix := range mixes {
		got, err := est.EstimateInfrastructure(300e9, mix)
		require.NoError(t, err)
		assert.Equal(t, 150000.0, got.Units(CategoryTransformers), "mix %v", mix)
		assert.Equal(t, 600000.0, got.Units(CategorySwitchgear), "mix %v", mix)
	}
}

func TestInfrastructureEstimator_InvalidMix(t *testing.T) {
	est := newTestInfrastructureEstimator()

	tests := []struct {
		name string
		mix  EnergyMix
	}{
		{"sums below one", EnergyMix{SourceSolar: 0.4, SourceGas: 0.5}},
		{"sums above one", EnergyMix{SourceSolar: 0.6, SourceGas: 0.5}},
		{"empty", EnergyMix{}},
		{"nil", nil},
		{"unknown source", EnergyMix{"wind": 0.5, SourceGas: 0.5}},
		{"negative share", EnergyMix{SourceSolar: -0.2, SourceGas: 1.2}},
		{"share above one", EnergyMix{SourceSolar: 1.5}},
		{"NaN share", EnergyMix{SourceSolar: math.NaN(), SourceGas: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := est.EstimateInfrastructure(1e9, tt.mix)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMix)
			assert.Empty(t, got.Equipment)
		})
	}
}

func TestInfrastructureEstimator_InvalidPower(t *testing.T) {
	est := newTestInfrastructureEstimator()

	_, err := est.EstimateInfrastructure(-1, EnergyMix{SourceGas: 1})
	assert.ErrorIs(t, err, ErrInvalidPower)
}

func TestInfrastructureEstimator_MixTolerance(t *testing.T) {
	est := newTestInfrastructureEstimator()

	_, err := est.EstimateInfrastructure(1e9, EnergyMix{SourceSolar: 0.1 + 0.2, SourceGas: 0.7})
	assert.NoError(t, err, "float rounding within tolerance is accepted")

	_, err = est.EstimateInfrastructure(1e9, EnergyMix{SourceSolar: 0.3 + 1e-6, SourceGas: 0.7})
	assert.ErrorIs(t, err, ErrInvalidMix)
}

func TestFormatMix(t *testing.T) {
	assert.Equal(t, "solar=0.3,gas=0.7", FormatMix([]MixShare{{SourceSolar, 0.3}, {SourceGas, 0.7}}))
	assert.Equal(t, "solar=1,gas=0", FormatMix([]MixShare{{SourceSolar, 1}, {SourceGas, 0}}))
	assert.Empty(t, FormatMix(nil))
}

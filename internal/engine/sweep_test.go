package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSweep(t *testing.T) *Sweep {
	t.Helper()
	s, err := Default().Sweep(
		[]float64{10e9, 100e9},
		[]int{2025, 2030, 2035},
		[]EnergyMix{{SourceSolar: 1}, {SourceGas: 1}},
	)
	require.NoError(t, err)
	return s
}

func TestSweep_Len(t *testing.T) {
	s := newTestSweep(t)
	assert.Equal(t, 12, s.Len())

	all, err := s.Collect()
	require.NoError(t, err)
	assert.Len(t, all, 12)
}

func TestSweep_RowMajorOrder(t *testing.T) {
	s := newTestSweep(t)

	all, err := s.Collect()
	require.NoError(t, err)

	i := 0
	for _, p := range []float64{10e9, 100e9} {
		for _, y := range []int{2025, 2030, 2035} {
			for _, solar := range []float64{1, 0} {
				sc := all[i]
				assert.Equal(t, p, sc.PowerWatts, "index %d", i)
				assert.Equal(t, y, sc.Year, "index %d", i)
				assert.Equal(t, solar, sc.MixShare(SourceSolar), "index %d", i)
				i++
			}
		}
	}
}

func TestSweep_MatchesEvaluate(t *testing.T) {
	e := Default()
	s, err := e.Sweep([]float64{300e9}, []int{2040}, []EnergyMix{balanced})
	require.NoError(t, err)

	all, err := s.Collect()
	require.NoError(t, err)
	require.Len(t, all, 1)

	want, err := e.Evaluate(300e9, 2040, balanced)
	require.NoError(t, err)
	assert.Equal(t, want, all[0])

	at, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, want, at)
}

func TestSweep_Restartable(t *testing.T) {
	s := newTestSweep(t)

	first, err := s.Collect()
	require.NoError(t, err)
	second, err := s.Collect()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSweep_EarlyBreak(t *testing.T) {
	s := newTestSweep(t)

	n := 0
	for _, err := range s.All() {
		require.NoError(t, err)
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSweep_CopiesInputs(t *testing.T) {
	powers := []float64{10e9}
	mixes := []EnergyMix{{SourceSolar: 1}}
	s, err := Default().Sweep(powers, []int{2030}, mixes)
	require.NoError(t, err)

	powers[0] = -1
	mixes[0][SourceSolar] = 5

	sc, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, 10e9, sc.PowerWatts)
	assert.Equal(t, 1.0, sc.MixShare(SourceSolar))
}

func TestSweep_InvalidAxis(t *testing.T) {
	e := Default()

	tests := []struct {
		name    string
		powers  []float64
		years   []int
		mixes   []EnergyMix
		wantErr error
	}{
		{"invalid power", []float64{1e9, 0}, []int{2030}, []EnergyMix{balanced}, ErrInvalidPower},
		{"invalid year", []float64{1e9}, []int{2030, 3000}, []EnergyMix{balanced}, ErrInvalidYear},
		{"invalid mix", []float64{1e9}, []int{2030}, []EnergyMix{balanced, {SourceSolar: 0.2}}, ErrInvalidMix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := e.Sweep(tt.powers, tt.years, tt.mixes)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSweep_EmptyAxis(t *testing.T) {
	s, err := Default().Sweep([]float64{1e9}, nil, []EnergyMix{balanced})
	require.NoError(t, err)
	assert.Zero(t, s.Len())

	all, err := s.Collect()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSweep_At_OutOfRange(t *testing.T) {
	s := newTestSweep(t)

	for _, i := range []int{-1, 12, 100} {
		_, err := s.At(i)
		assert.ErrorIs(t, err, ErrInvalidInput, "index %d", i)
	}
}

package engine

import (
	"fmt"
	"iter"
	"maps"
)

// Sweep is the cartesian product of power levels, years and energy mixes.
//
// Scenarios are produced on demand in row-major order (power, then year,
// then mix). A Sweep can be iterated any number of times, concurrently,
// with identical results.
type Sweep struct {
	engine *Engine
	powers []float64
	years  []int
	mixes  []EnergyMix
}

// Sweep validates every axis value up front and returns the grid. An empty
// axis yields an empty sweep.
func (e *Engine) Sweep(powers []float64, years []int, mixes []EnergyMix) (*Sweep, error) {
	for i, p := range powers {
		if err := checkPower(p); err != nil {
			return nil, fmt.Errorf("power level %d: %w", i, err)
		}
	}
	for i, y := range years {
		if err := e.curves.checkYear(float64(y)); err != nil {
			return nil, fmt.Errorf("year %d: %w", i, err)
		}
	}
	copied := make([]EnergyMix, len(mixes))
	for i, m := range mixes {
		if _, err := canonicalMix(e.assumptions.Sources, m); err != nil {
			return nil, fmt.Errorf("mix %d: %w", i, err)
		}
		copied[i] = maps.Clone(m)
	}

	return &Sweep{
		engine: e,
		powers: append([]float64(nil), powers...),
		years:  append([]int(nil), years...),
		mixes:  copied,
	}, nil
}

// Len returns the number of scenarios in the sweep.
func (s *Sweep) Len() int {
	return len(s.powers) * len(s.years) * len(s.mixes)
}

// At evaluates the i-th scenario in sweep order.
func (s *Sweep) At(i int) (Scenario, error) {
	if i < 0 || i >= s.Len() {
		return Scenario{}, fmt.Errorf("%w: sweep index %d out of range [0, %d)", ErrInvalidInput, i, s.Len())
	}
	perPower := len(s.years) * len(s.mixes)
	p := s.powers[i/perPower]
	y := s.years[(i/len(s.mixes))%len(s.years)]
	m := s.mixes[i%len(s.mixes)]
	return s.engine.Evaluate(p, y, m)
}

// All yields every scenario lazily, stopping after the first error.
func (s *Sweep) All() iter.Seq2[Scenario, error] {
	return func(yield func(Scenario, error) bool) {
		for i := range s.Len() {
			sc, err := s.At(i)
			if !yield(sc, err) || err != nil {
				return
			}
		}
	}
}

// Collect evaluates the whole sweep into a slice.
func (s *Sweep) Collect() ([]Scenario, error) {
	out := make([]Scenario, 0, s.Len())
	for sc, err := range s.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

package engine

import (
	"fmt"
	"math"
)

// Rate returns the curve's improvement rate at year.
//
// Between the anchors the rate is linear in year; outside them it clamps to
// the nearest anchor's rate. Fractional years are allowed.
func (c Curve) Rate(year float64) (float64, error) {
	if math.IsNaN(year) || math.IsInf(year, 0) {
		return 0, newInputError(ErrInvalidYear, "year", year, "must be finite")
	}
	return c.rate(year), nil
}

func (c Curve) rate(year float64) float64 {
	early, late := float64(c.Early.Year), float64(c.Late.Year)
	y := Clamp(year, early, late)
	if y == early {
		return c.Early.Rate
	}
	if y == late {
		return c.Late.Rate
	}
	t := (y - early) / (late - early)
	return c.Early.Rate + t*(c.Late.Rate-c.Early.Rate)
}

// Cumulative returns the compounded improvement from BaseYear to year:
// the product of Rate(y) for every y in (BaseYear, year]. It is 1.0 at or
// before BaseYear.
func (c Curve) Cumulative(year int) float64 {
	cumulative := 1.0
	for y := c.BaseYear + 1; y <= year; y++ {
		cumulative *= c.rate(float64(y))
	}
	return cumulative
}

// CurveProvider evaluates the three efficiency curves.
type CurveProvider struct {
	curves CurveSet
	years  YearRange
}

// NewCurveProvider creates a provider over curves, accepting years in the
// inclusive window years.
func NewCurveProvider(curves CurveSet, years YearRange) *CurveProvider {
	return &CurveProvider{curves: curves, years: years}
}

// Rates returns the three per-year rates at year.
func (p *CurveProvider) Rates(year float64) (EfficiencyRates, error) {
	if err := p.checkYear(year); err != nil {
		return EfficiencyRates{}, err
	}
	return EfficiencyRates{
		ComputeDensityRate: p.curves.ComputeDensity.rate(year),
		PowerPerUnitRate:   p.curves.PowerPerUnit.rate(year),
		CostPerUnitRate:    p.curves.CostPerUnit.rate(year),
	}, nil
}

// Factors returns the three cumulative improvement factors at year.
func (p *CurveProvider) Factors(year int) (CumulativeFactors, error) {
	if err := p.checkYear(float64(year)); err != nil {
		return CumulativeFactors{}, err
	}
	return CumulativeFactors{
		ComputeDensity:  p.curves.ComputeDensity.Cumulative(year),
		PowerEfficiency: p.curves.PowerPerUnit.Cumulative(year),
		CostEfficiency:  p.curves.CostPerUnit.Cumulative(year),
	}, nil
}

// Curves returns the curve set the provider evaluates.
func (p *CurveProvider) Curves() CurveSet {
	return p.curves
}

func (p *CurveProvider) checkYear(year float64) error {
	if math.IsNaN(year) || math.IsInf(year, 0) {
		return newInputError(ErrInvalidYear, "year", year, "must be finite")
	}
	if year < float64(p.years.Min) || year > float64(p.years.Max) {
		return newInputError(ErrInvalidYear, "year", year,
			fmt.Sprintf("must be within supported range [%d, %d]", p.years.Min, p.years.Max))
	}
	return nil
}

// Clamp restricts a value to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

package engine

import (
	"fmt"
	"math"
)

// CostEstimator derives capital expenditure from compute capacity.
//
// Non-compute capital is a free parameter on power (or on compute capex in
// compute_ratio mode). It is never derived from the physical equipment
// counts of InfrastructureEstimator; the two are reported side by side.
type CostEstimator struct {
	curves *CurveProvider
	capex  CapexAssumptions
}

// NewCostEstimator creates a cost estimator.
func NewCostEstimator(curves *CurveProvider, capex CapexAssumptions) *CostEstimator {
	return &CostEstimator{curves: curves, capex: capex}
}

// EstimateCost returns the capital needed to build compute in year.
//
// The calculation:
//  1. CostPerUnit = base cost per unit / cumulative cost efficiency
//  2. ComputeCapex = UnitCount × CostPerUnit
//  3. InfrastructureCapex = PerWatt × PowerWatts (per_watt), or
//     ComputeCapex × Ratio × Growth^(year − RatioBaseYear) (compute_ratio)
//  4. TotalCapex = ComputeCapex + InfrastructureCapex
//  5. CapexPerWatt = TotalCapex / PowerWatts
func (e *CostEstimator) EstimateCost(compute ComputeCapacity, year int) (CapexBreakdown, error) {
	if !positive(compute.UnitCount) {
		return CapexBreakdown{}, newInputError(ErrInvalidInput, "compute.unit_count", compute.UnitCount, "must be > 0")
	}
	if !positive(compute.PowerWatts) {
		return CapexBreakdown{}, newInputError(ErrInvalidInput, "compute.power_watts", compute.PowerWatts, "must be > 0")
	}

	factors, err := e.curves.Factors(year)
	if err != nil {
		return CapexBreakdown{}, err
	}

	costPerUnit := e.curves.Curves().CostPerUnit.BaseValue / factors.CostEfficiency
	computeCapex := compute.UnitCount * costPerUnit

	var infraCapex float64
	switch e.capex.Mode {
	case CapexPerWatt:
		infraCapex = e.capex.PerWatt * compute.PowerWatts
	case CapexComputeRatio:
		infraCapex = computeCapex * e.capex.Ratio * math.Pow(e.capex.Growth, float64(year-e.capex.RatioBaseYear))
	default:
		return CapexBreakdown{}, fmt.Errorf("%w: unknown capex mode %q", ErrInvalidAssumptions, e.capex.Mode)
	}

	total := computeCapex + infraCapex
	return CapexBreakdown{
		TotalCapex:          total,
		ComputeCapex:        computeCapex,
		InfrastructureCapex: infraCapex,
		CapexPerWatt:        total / compute.PowerWatts,
		CostPerUnit:         costPerUnit,
	}, nil
}

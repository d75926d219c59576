package engine

import "math"

// ComputeTranslator converts a power budget into compute capacity.
type ComputeTranslator struct {
	curves *CurveProvider
}

// NewComputeTranslator creates a translator over the given curves.
func NewComputeTranslator(curves *CurveProvider) *ComputeTranslator {
	return &ComputeTranslator{curves: curves}
}

// Translate returns the compute capacity powerWatts buys in year.
//
// The calculation:
//  1. WattsPerUnit = base watts per unit / cumulative power efficiency
//  2. UnitCount = powerWatts / WattsPerUnit
//  3. OperationsPerUnit = base operations per unit × cumulative compute density
//  4. OperationsPerSecond = UnitCount × OperationsPerUnit
func (t *ComputeTranslator) Translate(powerWatts float64, year int) (ComputeCapacity, error) {
	if err := checkPower(powerWatts); err != nil {
		return ComputeCapacity{}, err
	}

	factors, err := t.curves.Factors(year)
	if err != nil {
		return ComputeCapacity{}, err
	}

	curves := t.curves.Curves()
	wattsPerUnit := curves.PowerPerUnit.BaseValue / factors.PowerEfficiency
	unitCount := powerWatts / wattsPerUnit
	opsPerUnit := curves.ComputeDensity.BaseValue * factors.ComputeDensity

	return ComputeCapacity{
		PowerWatts:          powerWatts,
		Year:                year,
		UnitCount:           unitCount,
		WattsPerUnit:        wattsPerUnit,
		OperationsPerUnit:   opsPerUnit,
		OperationsPerSecond: unitCount * opsPerUnit,
	}, nil
}

func checkPower(powerWatts float64) error {
	if math.IsNaN(powerWatts) || math.IsInf(powerWatts, 0) {
		return newInputError(ErrInvalidPower, "power_watts", powerWatts, "must be finite")
	}
	if powerWatts <= 0 {
		return newInputError(ErrInvalidPower, "power_watts", powerWatts, "must be > 0")
	}
	return nil
}

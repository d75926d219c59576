package engine

// InfrastructureEstimator counts the physical equipment a power budget needs.
type InfrastructureEstimator struct {
	sources   []EnergySource
	equipment []EquipmentCategory
}

// NewInfrastructureEstimator creates an estimator over the given sources and
// equipment categories.
func NewInfrastructureEstimator(sources []EnergySource, equipment []EquipmentCategory) *InfrastructureEstimator {
	return &InfrastructureEstimator{sources: sources, equipment: equipment}
}

// EstimateInfrastructure returns the equipment needed to deliver powerWatts
// with the given energy mix.
//
// The calculation:
//  1. TotalMW = powerWatts / 1e6
//  2. Per source: FirmMW = TotalMW × share, NameplateMW = FirmMW / capacity factor
//  3. Grid categories (no source): Units = TotalMW × UnitsPerMW
//  4. Source categories: Units = NameplateMW(source) × UnitsPerMW
//
// A source with a zero share yields exactly zero units for its categories.
func (e *InfrastructureEstimator) EstimateInfrastructure(powerWatts float64, mix EnergyMix) (InfrastructureRequirement, error) {
	if err := checkPower(powerWatts); err != nil {
		return InfrastructureRequirement{}, err
	}
	shares, err := canonicalMix(e.sources, mix)
	if err != nil {
		return InfrastructureRequirement{}, err
	}
	return e.estimate(powerWatts, shares), nil
}

// estimate assumes powerWatts and shares are already validated.
func (e *InfrastructureEstimator) estimate(powerWatts float64, shares []MixShare) InfrastructureRequirement {
	totalMW := powerWatts / WattsPerMegawatt

	sources := make([]SourceCapacity, 0, len(shares))
	nameplate := make(map[string]float64, len(shares))
	for i, m := range shares {
		firm := totalMW * m.Share
		np := firm / e.sources[i].CapacityFactor
		nameplate[m.Source] = np
		sources = append(sources, SourceCapacity{
			Source:      m.Source,
			Share:       m.Share,
			FirmMW:      firm,
			NameplateMW: np,
		})
	}

	equipment := make([]EquipmentCount, 0, len(e.equipment))
	for _, c := range e.equipment {
		mw := totalMW
		if c.Source != "" {
			mw = nameplate[c.Source]
		}
		equipment = append(equipment, EquipmentCount{
			Category: c.Name,
			Source:   c.Source,
			Unit:     c.Unit,
			Units:    mw * c.UnitsPerMW,
		})
	}

	return InfrastructureRequirement{
		TotalMW:   totalMW,
		Sources:   sources,
		Equipment: equipment,
	}
}

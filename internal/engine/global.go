package engine

// GlobalComparator compares scenario quantities against world baselines.
type GlobalComparator struct {
	baselines  GlobalBaselines
	equipment  []EquipmentCategory
	thresholds Thresholds
}

// NewGlobalComparator creates a comparator.
func NewGlobalComparator(baselines GlobalBaselines, equipment []EquipmentCategory, thresholds Thresholds) *GlobalComparator {
	return &GlobalComparator{baselines: baselines, equipment: equipment, thresholds: thresholds}
}

// Compare returns each resource's fraction of its global baseline, in a
// fixed order: electricity, final_energy, gdp, then equipment categories in
// configuration order.
//
// Electricity and final energy compare the annual energy of a continuous
// draw (PowerWatts × HoursPerYear) with annual world totals. GDP compares
// TotalCapex, a one-time figure, with annual world GDP. That mixes a stock
// with a flow; the comparison is kept as the model defines it.
func (g *GlobalComparator) Compare(compute ComputeCapacity, capex CapexBreakdown, infra InfrastructureRequirement) (GlobalFractions, error) {
	if !positive(compute.PowerWatts) {
		return GlobalFractions{}, newInputError(ErrInvalidInput, "compute.power_watts", compute.PowerWatts, "must be > 0")
	}
	if !positive(capex.TotalCapex) {
		return GlobalFractions{}, newInputError(ErrInvalidInput, "capex.total_capex", capex.TotalCapex, "must be > 0")
	}

	annualWh := compute.PowerWatts * HoursPerYear

	resources := make([]ResourceFraction, 0, 3+len(g.equipment))
	resources = append(resources,
		g.fraction(ResourceElectricity, annualWh, g.baselines.ElectricityWh),
		g.fraction(ResourceFinalEnergy, annualWh, g.baselines.FinalEnergyWh),
		g.fraction(ResourceGDP, capex.TotalCapex, g.baselines.GDPUSD),
	)
	for _, c := range g.equipment {
		units := infra.Units(c.Name)
		if units < 0 {
			return GlobalFractions{}, newInputError(ErrInvalidInput, "infrastructure."+c.Name, units, "must be >= 0")
		}
		resources = append(resources, g.fraction(c.Name, units, c.GlobalAnnualProduction))
	}

	return GlobalFractions{Resources: resources}, nil
}

func (g *GlobalComparator) fraction(resource string, quantity, baseline float64) ResourceFraction {
	f := quantity / baseline
	return ResourceFraction{
		Resource: resource,
		Quantity: quantity,
		Baseline: baseline,
		Fraction: f,
		Status:   g.classify(f),
	}
}

func (g *GlobalComparator) classify(fraction float64) Status {
	switch {
	case fraction > g.thresholds.Infeasible:
		return StatusInfeasible
	case fraction > g.thresholds.Warn:
		return StatusStrained
	default:
		return StatusOK
	}
}

// FeasibilityScore maps an electricity fraction to a 0–100 score:
// 100 below 10% of world electricity, falling linearly to 80 → 40 over
// 10–50%, 40 → 10 over 50–100%, 10 → 1 over 100–200%, and 1 beyond.
func FeasibilityScore(electricityFraction float64) float64 {
	f := electricityFraction
	switch {
	case f < 0.1:
		return 100
	case f < 0.5:
		return 80 - 40*(f-0.1)/0.4
	case f < 1.0:
		return 40 - 30*(f-0.5)/0.5
	case f < 2.0:
		return 10 - 9*(f-1.0)
	default:
		return 1
	}
}

package engine

// Engine evaluates scenarios under one immutable set of assumptions.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	assumptions Assumptions
	curves      *CurveProvider
	compute     *ComputeTranslator
	cost        *CostEstimator
	infra       *InfrastructureEstimator
	global      *GlobalComparator
}

// New validates a and returns an Engine bound to a private copy of it.
func New(a Assumptions) (*Engine, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a = a.Clone()

	curves := NewCurveProvider(a.Curves, a.Years)
	return &Engine{
		assumptions: a,
		curves:      curves,
		compute:     NewComputeTranslator(curves),
		cost:        NewCostEstimator(curves, a.Capex),
		infra:       NewInfrastructureEstimator(a.Sources, a.Equipment),
		global:      NewGlobalComparator(a.Baselines, a.Equipment, a.Thresholds),
	}, nil
}

// Default returns an Engine over DefaultAssumptions.
func Default() *Engine {
	e, err := New(DefaultAssumptions())
	if err != nil {
		panic("engine: default assumptions are invalid: " + err.Error())
	}
	return e
}

// Assumptions returns a copy of the engine's assumptions.
func (e *Engine) Assumptions() Assumptions {
	return e.assumptions.Clone()
}

// Curves returns the engine's curve provider.
func (e *Engine) Curves() *CurveProvider {
	return e.curves
}

// Translate converts power into compute capacity.
func (e *Engine) Translate(powerWatts float64, year int) (ComputeCapacity, error) {
	return e.compute.Translate(powerWatts, year)
}

// EstimateCost derives capital expenditure for compute built in year.
func (e *Engine) EstimateCost(compute ComputeCapacity, year int) (CapexBreakdown, error) {
	return e.cost.EstimateCost(compute, year)
}

// EstimateInfrastructure counts the equipment powerWatts needs under mix.
func (e *Engine) EstimateInfrastructure(powerWatts float64, mix EnergyMix) (InfrastructureRequirement, error) {
	return e.infra.EstimateInfrastructure(powerWatts, mix)
}

// Compare computes global resource fractions.
func (e *Engine) Compare(compute ComputeCapacity, capex CapexBreakdown, infra InfrastructureRequirement) (GlobalFractions, error) {
	return e.global.Compare(compute, capex, infra)
}

// Evaluate runs the full chain for one (power, year, mix) point and returns
// the first error encountered. No partial result is returned on error.
// Repeated calls with the same arguments return identical scenarios.
func (e *Engine) Evaluate(powerWatts float64, year int, mix EnergyMix) (Scenario, error) {
	compute, err := e.compute.Translate(powerWatts, year)
	if err != nil {
		return Scenario{}, err
	}

	capex, err := e.cost.EstimateCost(compute, year)
	if err != nil {
		return Scenario{}, err
	}

	shares, err := canonicalMix(e.assumptions.Sources, mix)
	if err != nil {
		return Scenario{}, err
	}
	infra := e.infra.estimate(powerWatts, shares)

	fractions, err := e.global.Compare(compute, capex, infra)
	if err != nil {
		return Scenario{}, err
	}

	return Scenario{
		PowerWatts:     powerWatts,
		Year:           year,
		Mix:            shares,
		Compute:        compute,
		Capex:          capex,
		Infrastructure: infra,
		Tokens:         EstimateTokens(compute, e.assumptions.Tokens),
		Fractions:      fractions,
	}, nil
}

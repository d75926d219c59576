package engine

// EfficiencyRates are the per-year improvement rates of the three curves,
// valid for exactly one year.
type EfficiencyRates struct {
	// ComputeDensityRate is the yearly growth in operations per unit.
	ComputeDensityRate float64 `json:"compute_density_rate" yaml:"compute_density_rate"`

	// PowerPerUnitRate is the yearly divisor applied to watts per unit.
	PowerPerUnitRate float64 `json:"power_per_unit_rate" yaml:"power_per_unit_rate"`

	// CostPerUnitRate is the yearly divisor applied to cost per unit.
	CostPerUnitRate float64 `json:"cost_per_unit_rate" yaml:"cost_per_unit_rate"`
}

// CumulativeFactors are the compounded rates from each curve's base year
// to a target year.
type CumulativeFactors struct {
	ComputeDensity  float64 `json:"compute_density" yaml:"compute_density"`
	PowerEfficiency float64 `json:"power_efficiency" yaml:"power_efficiency"`
	CostEfficiency  float64 `json:"cost_efficiency" yaml:"cost_efficiency"`
}

// ComputeCapacity is the compute a power budget buys in a given year.
type ComputeCapacity struct {
	PowerWatts float64 `json:"power_watts"`
	Year       int     `json:"year"`

	// UnitCount is the number of compute-equivalent units (H100e).
	UnitCount float64 `json:"unit_count"`

	// WattsPerUnit is the all-in power draw of one unit in Year.
	WattsPerUnit float64 `json:"watts_per_unit"`

	// OperationsPerUnit is the throughput of one unit in Year.
	OperationsPerUnit float64 `json:"operations_per_unit"`

	// OperationsPerSecond is UnitCount × OperationsPerUnit.
	OperationsPerSecond float64 `json:"operations_per_second"`
}

// CapexBreakdown splits capital expenditure into compute and non-compute.
// ComputeCapex + InfrastructureCapex == TotalCapex.
type CapexBreakdown struct {
	TotalCapex          float64 `json:"total_capex"`
	ComputeCapex        float64 `json:"compute_capex"`
	InfrastructureCapex float64 `json:"infrastructure_capex"`
	CapexPerWatt        float64 `json:"capex_per_watt"`
	CostPerUnit         float64 `json:"cost_per_unit"`
}

// SourceCapacity is the generation capacity one energy source must supply.
type SourceCapacity struct {
	Source string  `json:"source"`
	Share  float64 `json:"share"`

	// FirmMW is the average power the source delivers.
	FirmMW float64 `json:"firm_mw"`

	// NameplateMW is FirmMW divided by the source's capacity factor.
	NameplateMW float64 `json:"nameplate_mw"`
}

// EquipmentCount is the required number of units of one equipment category.
type EquipmentCount struct {
	Category string `json:"category"`

	// Source is empty for grid equipment that serves all power.
	Source string  `json:"source,omitempty"`
	Unit   string  `json:"unit"`
	Units  float64 `json:"units"`
}

// InfrastructureRequirement lists the physical equipment a power budget needs.
type InfrastructureRequirement struct {
	TotalMW   float64          `json:"total_mw"`
	Sources   []SourceCapacity `json:"sources"`
	Equipment []EquipmentCount `json:"equipment"`
}

// Units returns the required count for a category, or 0 if it is not listed.
func (r InfrastructureRequirement) Units(category string) float64 {
	for _, e := range r.Equipment {
		if e.Category == category {
			return e.Units
		}
	}
	return 0
}

// Source returns the capacity for a source and whether it is present.
func (r InfrastructureRequirement) Source(name string) (SourceCapacity, bool) {
	for _, s := range r.Sources {
		if s.Source == name {
			return s, true
		}
	}
	return SourceCapacity{}, false
}

// Status classifies a global resource fraction.
type Status string

const (
	StatusOK         Status = "ok"
	StatusStrained   Status = "strained"
	StatusInfeasible Status = "infeasible"
)

// ResourceFraction is a scenario quantity compared against its global baseline.
type ResourceFraction struct {
	Resource string  `json:"resource"`
	Quantity float64 `json:"quantity"`
	Baseline float64 `json:"baseline"`
	Fraction float64 `json:"fraction"`
	Status   Status  `json:"status"`
}

// GlobalFractions is the ordered set of resource fractions for a scenario.
type GlobalFractions struct {
	Resources []ResourceFraction `json:"resources"`
}

// Fraction returns the fraction for a resource, or 0 if it is not listed.
func (g GlobalFractions) Fraction(resource string) float64 {
	for _, r := range g.Resources {
		if r.Resource == resource {
			return r.Fraction
		}
	}
	return 0
}

// Bottlenecks returns every resource that is strained or infeasible.
func (g GlobalFractions) Bottlenecks() []ResourceFraction {
	var out []ResourceFraction
	for _, r := range g.Resources {
		if r.Status != StatusOK {
			out = append(out, r)
		}
	}
	return out
}

// Feasible reports whether no resource exceeds its global baseline.
func (g GlobalFractions) Feasible() bool {
	for _, r := range g.Resources {
		if r.Status == StatusInfeasible {
			return false
		}
	}
	return true
}

// TokenOutput is the inference capacity of a compute fleet.
type TokenOutput struct {
	EffectiveUnits  float64 `json:"effective_units"`
	TokensPerSecond float64 `json:"tokens_per_second"`
	AnnualTokens    float64 `json:"annual_tokens"`
}

// MixShare is one entry of a canonical, ordered energy mix.
type MixShare struct {
	Source string  `json:"source"`
	Share  float64 `json:"share"`
}

// EnergyMix maps a source name to its share of total power.
// Shares must sum to 1.0.
type EnergyMix map[string]float64

// Scenario is one complete evaluation at a (power, year, mix) point.
type Scenario struct {
	PowerWatts     float64                   `json:"power_watts"`
	Year           int                       `json:"year"`
	Mix            []MixShare                `json:"energy_mix"`
	Compute        ComputeCapacity           `json:"compute"`
	Capex          CapexBreakdown            `json:"capex"`
	Infrastructure InfrastructureRequirement `json:"infrastructure"`
	Tokens         TokenOutput               `json:"tokens"`
	Fractions      GlobalFractions           `json:"global_fractions"`
}

// MixShare returns the share of a source in the scenario's mix.
func (s Scenario) MixShare(source string) float64 {
	for _, m := range s.Mix {
		if m.Source == source {
			return m.Share
		}
	}
	return 0
}

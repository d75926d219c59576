package engine

import (
	"errors"
	"fmt"
	"math"
)

// Anchor is a control point of an efficiency curve.
type Anchor struct {
	Year int     `yaml:"year" json:"year"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// Curve is a yearly improvement rate interpolated between two anchors and
// compounded from BaseYear, where the curve's quantity equals BaseValue.
type Curve struct {
	BaseYear  int     `yaml:"base_year" json:"base_year"`
	BaseValue float64 `yaml:"base_value" json:"base_value"`
	Early     Anchor  `yaml:"early" json:"early"`
	Late      Anchor  `yaml:"late" json:"late"`
}

// CurveSet holds the three efficiency curves.
type CurveSet struct {
	// ComputeDensity compounds operations per unit (BaseValue in op/s).
	ComputeDensity Curve `yaml:"compute_density" json:"compute_density"`

	// PowerPerUnit divides watts per unit (BaseValue in W).
	PowerPerUnit Curve `yaml:"power_per_unit" json:"power_per_unit"`

	// CostPerUnit divides cost per unit (BaseValue in USD).
	CostPerUnit Curve `yaml:"cost_per_unit" json:"cost_per_unit"`
}

// YearRange is the inclusive window of years the engine accepts.
type YearRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// EnergySource is a generation source an energy mix may reference.
type EnergySource struct {
	Name string `yaml:"name" json:"name"`

	// CapacityFactor is average output over nameplate capacity, in (0, 1].
	CapacityFactor float64 `yaml:"capacity_factor" json:"capacity_factor"`
}

// CapexMode selects how non-compute capital is derived.
type CapexMode string

const (
	// CapexPerWatt multiplies power by a fixed USD/W.
	CapexPerWatt CapexMode = "per_watt"

	// CapexComputeRatio scales compute capex by ratio × growth^(year − base).
	CapexComputeRatio CapexMode = "compute_ratio"
)

// CapexAssumptions parameterize the non-compute share of capital.
type CapexAssumptions struct {
	Mode          CapexMode `yaml:"mode" json:"mode"`
	PerWatt       float64   `yaml:"per_watt" json:"per_watt"`
	Ratio         float64   `yaml:"ratio" json:"ratio"`
	Growth        float64   `yaml:"growth" json:"growth"`
	RatioBaseYear int       `yaml:"ratio_base_year" json:"ratio_base_year"`
}

// GlobalBaselines are annual world totals scenarios are compared against.
// Equipment baselines live on EquipmentCategory.
type GlobalBaselines struct {
	ElectricityWh float64 `yaml:"electricity_wh" json:"electricity_wh"`
	FinalEnergyWh float64 `yaml:"final_energy_wh" json:"final_energy_wh"`
	GDPUSD        float64 `yaml:"gdp_usd" json:"gdp_usd"`
}

// Thresholds classify resource fractions.
type Thresholds struct {
	Warn       float64 `yaml:"warn" json:"warn"`
	Infeasible float64 `yaml:"infeasible" json:"infeasible"`
}

// TokenAssumptions parameterize token output.
type TokenAssumptions struct {
	Utilization         float64 `yaml:"utilization" json:"utilization"`
	TokensPerUnitSecond float64 `yaml:"tokens_per_unit_second" json:"tokens_per_unit_second"`
}

// Assumptions is the full, immutable parameter set of an Engine.
type Assumptions struct {
	Curves     CurveSet            `yaml:"curves" json:"curves"`
	Years      YearRange           `yaml:"years" json:"years"`
	Sources    []EnergySource      `yaml:"sources" json:"sources"`
	Equipment  []EquipmentCategory `yaml:"equipment" json:"equipment"`
	Capex      CapexAssumptions    `yaml:"capex" json:"capex"`
	Baselines  GlobalBaselines     `yaml:"baselines" json:"baselines"`
	Thresholds Thresholds          `yaml:"thresholds" json:"thresholds"`
	Tokens     TokenAssumptions    `yaml:"tokens" json:"tokens"`
}

// DefaultAssumptions returns the reference parameter set.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Curves: CurveSet{
			ComputeDensity: Curve{
				BaseYear:  DensityBaseYear,
				BaseValue: H100OpsPerSecond,
				Early:     Anchor{Year: EarlyAnchorYear, Rate: 1.35},
				Late:      Anchor{Year: LateAnchorYear, Rate: 1.25},
			},
			PowerPerUnit: Curve{
				BaseYear:  EfficiencyBaseYear,
				BaseValue: H100Watts,
				Early:     Anchor{Year: EarlyAnchorYear, Rate: 1.3},
				Late:      Anchor{Year: LateAnchorYear, Rate: 1.2},
			},
			CostPerUnit: Curve{
				BaseYear:  EfficiencyBaseYear,
				BaseValue: H100CostUSD,
				Early:     Anchor{Year: EarlyAnchorYear, Rate: 1.3},
				Late:      Anchor{Year: LateAnchorYear, Rate: 1.2},
			},
		},
		Years: YearRange{Min: DefaultMinYear, Max: DefaultMaxYear},
		Sources: []EnergySource{
			// Solar needs 4× nameplate for its firm output.
			{Name: SourceSolar, CapacityFactor: 0.25},
			{Name: SourceGas, CapacityFactor: 1.0},
		},
		Equipment: DefaultEquipment(),
		Capex: CapexAssumptions{
			Mode:          CapexPerWatt,
			PerWatt:       DefaultInfrastructureCapexPerWatt,
			Ratio:         DefaultNonComputeRatio,
			Growth:        DefaultNonComputeGrowth,
			RatioBaseYear: EfficiencyBaseYear,
		},
		Baselines: GlobalBaselines{
			ElectricityWh: WorldElectricityWh,
			FinalEnergyWh: WorldFinalEnergyWh,
			GDPUSD:        WorldGDPUSD,
		},
		Thresholds: Thresholds{
			Warn:       DefaultWarnThreshold,
			Infeasible: DefaultInfeasibleThreshold,
		},
		Tokens: TokenAssumptions{
			Utilization:         DefaultUtilization,
			TokensPerUnitSecond: DefaultTokensPerUnitSecond,
		},
	}
}

// Clone returns a deep copy.
func (a Assumptions) Clone() Assumptions {
	out := a
	out.Sources = append([]EnergySource(nil), a.Sources...)
	out.Equipment = append([]EquipmentCategory(nil), a.Equipment...)
	return out
}

// Validate reports every inconsistency in the parameter set. Each returned
// error wraps ErrInvalidAssumptions.
func (a Assumptions) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidAssumptions}, args...)...))
	}

	for _, nc := range []struct {
		name string
		c    Curve
	}{
		{"compute_density", a.Curves.ComputeDensity},
		{"power_per_unit", a.Curves.PowerPerUnit},
		{"cost_per_unit", a.Curves.CostPerUnit},
	} {
		name, c := nc.name, nc.c
		if !positive(c.BaseValue) {
			fail("curve %s: base_value must be positive, got %v", name, c.BaseValue)
		}
		if c.Early.Year >= c.Late.Year {
			fail("curve %s: early anchor year %d must precede late anchor year %d", name, c.Early.Year, c.Late.Year)
		}
		if !positive(c.Early.Rate) || !positive(c.Late.Rate) {
			fail("curve %s: anchor rates must be positive, got %v and %v", name, c.Early.Rate, c.Late.Rate)
		}
	}

	if a.Years.Min > a.Years.Max {
		fail("years: min %d exceeds max %d", a.Years.Min, a.Years.Max)
	}

	sources := make(map[string]bool, len(a.Sources))
	for _, s := range a.Sources {
		if s.Name == "" {
			fail("sources: empty source name")
			continue
		}
		if sources[s.Name] {
			fail("sources: duplicate source %q", s.Name)
		}
		sources[s.Name] = true
		if !(s.CapacityFactor > 0 && s.CapacityFactor <= 1) {
			fail("sources: %s capacity_factor must be in (0, 1], got %v", s.Name, s.CapacityFactor)
		}
	}
	if len(sources) == 0 {
		fail("sources: at least one energy source is required")
	}

	categories := make(map[string]bool, len(a.Equipment))
	for _, e := range a.Equipment {
		switch {
		case e.Name == "":
			fail("equipment: empty category name")
			continue
		case e.Name == ResourceElectricity || e.Name == ResourceFinalEnergy || e.Name == ResourceGDP:
			fail("equipment: category %q collides with a global resource name", e.Name)
		case categories[e.Name]:
			fail("equipment: duplicate category %q", e.Name)
		}
		categories[e.Name] = true
		if e.Source != "" && !sources[e.Source] {
			fail("equipment: %s references unknown source %q", e.Name, e.Source)
		}
		if math.IsNaN(e.UnitsPerMW) || math.IsInf(e.UnitsPerMW, 0) || e.UnitsPerMW < 0 {
			fail("equipment: %s units_per_mw must be non-negative, got %v", e.Name, e.UnitsPerMW)
		}
		if !positive(e.GlobalAnnualProduction) {
			fail("equipment: %s global_annual_production must be positive, got %v", e.Name, e.GlobalAnnualProduction)
		}
	}

	switch a.Capex.Mode {
	case CapexPerWatt:
		if math.IsNaN(a.Capex.PerWatt) || math.IsInf(a.Capex.PerWatt, 0) || a.Capex.PerWatt < 0 {
			fail("capex: per_watt must be non-negative, got %v", a.Capex.PerWatt)
		}
	case CapexComputeRatio:
		if math.IsNaN(a.Capex.Ratio) || math.IsInf(a.Capex.Ratio, 0) || a.Capex.Ratio < 0 {
			fail("capex: ratio must be non-negative, got %v", a.Capex.Ratio)
		}
		if !positive(a.Capex.Growth) {
			fail("capex: growth must be positive, got %v", a.Capex.Growth)
		}
	default:
		fail("capex: unknown mode %q", a.Capex.Mode)
	}

	if !positive(a.Baselines.ElectricityWh) || !positive(a.Baselines.FinalEnergyWh) || !positive(a.Baselines.GDPUSD) {
		fail("baselines: electricity, final energy and GDP must be positive")
	}

	if !positive(a.Thresholds.Warn) || !positive(a.Thresholds.Infeasible) || a.Thresholds.Warn > a.Thresholds.Infeasible {
		fail("thresholds: need 0 < warn <= infeasible, got warn=%v infeasible=%v", a.Thresholds.Warn, a.Thresholds.Infeasible)
	}

	if !(a.Tokens.Utilization >= 0 && a.Tokens.Utilization <= 1) {
		fail("tokens: utilization must be in [0, 1], got %v", a.Tokens.Utilization)
	}
	if math.IsNaN(a.Tokens.TokensPerUnitSecond) || a.Tokens.TokensPerUnitSecond < 0 {
		fail("tokens: tokens_per_unit_second must be non-negative, got %v", a.Tokens.TokensPerUnitSecond)
	}

	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

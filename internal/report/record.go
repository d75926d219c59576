// Package report flattens evaluated scenarios into records and writes them
// as CSV or JSON Lines.
package report

import (
	"strconv"
	"strings"

	"github.com/rshade/aipower-model/internal/engine"
)

// Record is one scenario flattened for tabular output.
type Record struct {
	RunID   string `json:"run_id"`
	Index   int    `json:"index"`
	MixName string `json:"mix_name,omitempty"`

	PowerWatts float64 `json:"power_watts"`
	Year       int     `json:"year"`

	// Mix is the canonical mix as "source=share" pairs in source order.
	Mix string `json:"energy_mix"`

	UnitCount           float64 `json:"unit_count"`
	WattsPerUnit        float64 `json:"watts_per_unit"`
	OperationsPerUnit   float64 `json:"operations_per_unit"`
	OperationsPerSecond float64 `json:"operations_per_second"`

	TotalCapex          float64 `json:"total_capex"`
	ComputeCapex        float64 `json:"compute_capex"`
	InfrastructureCapex float64 `json:"infrastructure_capex"`
	CapexPerWatt        float64 `json:"capex_per_watt"`
	CostPerUnit         float64 `json:"cost_per_unit"`

	TotalMW float64 `json:"total_mw"`

	// Equipment maps category name to required units.
	Equipment map[string]float64 `json:"equipment"`

	EffectiveUnits  float64 `json:"effective_units"`
	TokensPerSecond float64 `json:"tokens_per_second"`
	AnnualTokens    float64 `json:"annual_tokens"`

	// Fractions and Statuses are keyed by resource name.
	Fractions map[string]float64       `json:"fractions"`
	Statuses  map[string]engine.Status `json:"statuses"`

	Feasible         bool     `json:"feasible"`
	FeasibilityScore float64  `json:"feasibility_score"`
	Bottlenecks      []string `json:"bottlenecks"`
}

// NewRecord flattens sc. index is the scenario's position in its sweep.
func NewRecord(runID string, index int, sc engine.Scenario) Record {
	r := Record{
		RunID:               runID,
		Index:               index,
		PowerWatts:          sc.PowerWatts,
		Year:                sc.Year,
		Mix:                 engine.FormatMix(sc.Mix),
		UnitCount:           sc.Compute.UnitCount,
		WattsPerUnit:        sc.Compute.WattsPerUnit,
		OperationsPerUnit:   sc.Compute.OperationsPerUnit,
		OperationsPerSecond: sc.Compute.OperationsPerSecond,
		TotalCapex:          sc.Capex.TotalCapex,
		ComputeCapex:        sc.Capex.ComputeCapex,
		InfrastructureCapex: sc.Capex.InfrastructureCapex,
		CapexPerWatt:        sc.Capex.CapexPerWatt,
		CostPerUnit:         sc.Capex.CostPerUnit,
		TotalMW:             sc.Infrastructure.TotalMW,
		Equipment:           make(map[string]float64, len(sc.Infrastructure.Equipment)),
		EffectiveUnits:      sc.Tokens.EffectiveUnits,
		TokensPerSecond:     sc.Tokens.TokensPerSecond,
		AnnualTokens:        sc.Tokens.AnnualTokens,
		Fractions:           make(map[string]float64, len(sc.Fractions.Resources)),
		Statuses:            make(map[string]engine.Status, len(sc.Fractions.Resources)),
		Feasible:            sc.Fractions.Feasible(),
		FeasibilityScore:    engine.FeasibilityScore(sc.Fractions.Fraction(engine.ResourceElectricity)),
		Bottlenecks:         []string{},
	}
	for _, e := range sc.Infrastructure.Equipment {
		r.Equipment[e.Category] = e.Units
	}
	for _, f := range sc.Fractions.Resources {
		r.Fractions[f.Resource] = f.Fraction
		r.Statuses[f.Resource] = f.Status
	}
	for _, b := range sc.Fractions.Bottlenecks() {
		r.Bottlenecks = append(r.Bottlenecks, b.Resource)
	}
	return r
}

// Resources lists every resource name a scenario reports for the given
// equipment categories, in report order.
func Resources(categories []string) []string {
	out := make([]string, 0, 3+len(categories))
	out = append(out, engine.ResourceElectricity, engine.ResourceFinalEnergy, engine.ResourceGDP)
	return append(out, categories...)
}

// Categories returns the equipment category names of an assumption set, in
// configuration order.
func Categories(a engine.Assumptions) []string {
	out := make([]string, len(a.Equipment))
	for i, e := range a.Equipment {
		out[i] = e.Name
	}
	return out
}

var fixedColumns = []string{
	"run_id", "index", "mix_name", "power_watts", "year", "energy_mix",
	"unit_count", "watts_per_unit", "operations_per_unit", "operations_per_second",
	"total_capex", "compute_capex", "infrastructure_capex", "capex_per_watt", "cost_per_unit",
	"total_mw",
	"effective_units", "tokens_per_second", "annual_tokens",
	"feasible", "feasibility_score", "bottlenecks",
}

// Header returns the CSV column names for the given equipment categories.
func Header(categories []string) []string {
	header := append([]string(nil), fixedColumns...)
	for _, c := range categories {
		header = append(header, c+"_units")
	}
	for _, res := range Resources(categories) {
		header = append(header, res+"_fraction", res+"_status")
	}
	return header
}

// Row renders r in Header(categories) column order. Floats keep full
// precision.
func (r Record) Row(categories []string) []string {
	row := []string{
		r.RunID,
		strconv.Itoa(r.Index),
		r.MixName,
		formatFloat(r.PowerWatts),
		strconv.Itoa(r.Year),
		r.Mix,
		formatFloat(r.UnitCount),
		formatFloat(r.WattsPerUnit),
		formatFloat(r.OperationsPerUnit),
		formatFloat(r.OperationsPerSecond),
		formatFloat(r.TotalCapex),
		formatFloat(r.ComputeCapex),
		formatFloat(r.InfrastructureCapex),
		formatFloat(r.CapexPerWatt),
		formatFloat(r.CostPerUnit),
		formatFloat(r.TotalMW),
		formatFloat(r.EffectiveUnits),
		formatFloat(r.TokensPerSecond),
		formatFloat(r.AnnualTokens),
		strconv.FormatBool(r.Feasible),
		formatFloat(r.FeasibilityScore),
		strings.Join(r.Bottlenecks, ";"),
	}
	for _, c := range categories {
		row = append(row, formatFloat(r.Equipment[c]))
	}
	for _, res := range Resources(categories) {
		row = append(row, formatFloat(r.Fractions[res]), string(r.Statuses[res]))
	}
	return row
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Package analysis summarizes evaluated sweeps: where demand crosses world
// electricity, which scenarios are infeasible, and how far the curves move.
package analysis

import (
	"cmp"
	"slices"

	"github.com/rshade/aipower-model/internal/engine"
)

// Threshold is the interpolated power at which a year's scenarios reach
// 100% of world electricity.
type Threshold struct {
	Year    int     `json:"year"`
	PowerGW float64 `json:"power_gw"`
}

// ElectricityThresholds finds, for each year, the first pair of consecutive
// power levels (ascending, restricted to mix) whose electricity fractions
// bracket 1.0, and interpolates linearly between them. Years that never
// cross are omitted. Results are ordered by year.
func ElectricityThresholds(rows []engine.Scenario, mix engine.EnergyMix) []Threshold {
	byYear := make(map[int][]engine.Scenario)
	for _, sc := range rows {
		if sameMix(sc, mix) {
			byYear[sc.Year] = append(byYear[sc.Year], sc)
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)

	var out []Threshold
	for _, y := range years {
		series := byYear[y]
		slices.SortFunc(series, func(a, b engine.Scenario) int {
			return cmp.Compare(a.PowerWatts, b.PowerWatts)
		})
		for i := 0; i+1 < len(series); i++ {
			p1, e1 := series[i].PowerWatts/1e9, series[i].Fractions.Fraction(engine.ResourceElectricity)
			p2, e2 := series[i+1].PowerWatts/1e9, series[i+1].Fractions.Fraction(engine.ResourceElectricity)
			if e1 < 1 && e2 > 1 {
				out = append(out, Threshold{Year: y, PowerGW: p1 + (1-e1)*(p2-p1)/(e2-e1)})
				break
			}
		}
	}
	return out
}

// Infeasible returns the scenarios whose electricity demand exceeds the
// infeasible threshold, in input order.
func Infeasible(rows []engine.Scenario) []engine.Scenario {
	var out []engine.Scenario
	for _, sc := range rows {
		for _, r := range sc.Fractions.Resources {
			if r.Resource == engine.ResourceElectricity && r.Status == engine.StatusInfeasible {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}

// Extremes are the scenarios with the largest electricity fraction and the
// largest total capex. The first maximum in input order wins ties.
type Extremes struct {
	MaxElectricity engine.Scenario `json:"max_electricity"`
	MaxCapex       engine.Scenario `json:"max_capex"`
}

// FindExtremes returns the extremes of rows and false when rows is empty.
func FindExtremes(rows []engine.Scenario) (Extremes, bool) {
	if len(rows) == 0 {
		return Extremes{}, false
	}
	ex := Extremes{MaxElectricity: rows[0], MaxCapex: rows[0]}
	for _, sc := range rows[1:] {
		if sc.Fractions.Fraction(engine.ResourceElectricity) > ex.MaxElectricity.Fractions.Fraction(engine.ResourceElectricity) {
			ex.MaxElectricity = sc
		}
		if sc.Capex.TotalCapex > ex.MaxCapex.Capex.TotalCapex {
			ex.MaxCapex = sc
		}
	}
	return ex, true
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r *Range) add(v float64) {
	r.Min = min(r.Min, v)
	r.Max = max(r.Max, v)
}

// Ranges spans the main outputs of a sweep.
type Ranges struct {
	Scenarios int   `json:"scenarios"`
	PowerGW   Range `json:"power_gw"`
	Capex     Range `json:"capex"`
	Units     Range `json:"units"`
}

// ComputeRanges returns the spans of rows. All ranges are zero when rows is
// empty.
func ComputeRanges(rows []engine.Scenario) Ranges {
	out := Ranges{Scenarios: len(rows)}
	if len(rows) == 0 {
		return out
	}
	first := rows[0]
	out.PowerGW = Range{Min: first.PowerWatts / 1e9, Max: first.PowerWatts / 1e9}
	out.Capex = Range{Min: first.Capex.TotalCapex, Max: first.Capex.TotalCapex}
	out.Units = Range{Min: first.Compute.UnitCount, Max: first.Compute.UnitCount}
	for _, sc := range rows[1:] {
		out.PowerGW.add(sc.PowerWatts / 1e9)
		out.Capex.add(sc.Capex.TotalCapex)
		out.Units.add(sc.Compute.UnitCount)
	}
	return out
}

// Improvement is the multiplier each curve delivers between two years.
type Improvement struct {
	From            int     `json:"from"`
	To              int     `json:"to"`
	ComputeDensity  float64 `json:"compute_density"`
	PowerEfficiency float64 `json:"power_efficiency"`
	CostEfficiency  float64 `json:"cost_efficiency"`
}

// EfficiencyImprovement returns each curve's cumulative factor at year to
// divided by its factor at year from.
func EfficiencyImprovement(curves *engine.CurveProvider, from, to int) (Improvement, error) {
	f, err := curves.Factors(from)
	if err != nil {
		return Improvement{}, err
	}
	t, err := curves.Factors(to)
	if err != nil {
		return Improvement{}, err
	}
	return Improvement{
		From:            from,
		To:              to,
		ComputeDensity:  t.ComputeDensity / f.ComputeDensity,
		PowerEfficiency: t.PowerEfficiency / f.PowerEfficiency,
		CostEfficiency:  t.CostEfficiency / f.CostEfficiency,
	}, nil
}

func sameMix(sc engine.Scenario, mix engine.EnergyMix) bool {
	for _, m := range sc.Mix {
		if mix[m.Source] != m.Share {
			return false
		}
	}
	return true
}

package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/aipower-model/internal/analysis"
	"github.com/rshade/aipower-model/internal/engine"
)

// analysisReport is the JSON form of `aipower analyze`.
type analysisReport struct {
	Mix         string                `json:"mix"`
	Thresholds  []analysis.Threshold  `json:"electricity_thresholds"`
	Infeasible  []engine.Scenario     `json:"infeasible"`
	Extremes    *analysis.Extremes    `json:"extremes,omitempty"`
	Ranges      analysis.Ranges       `json:"ranges"`
	Improvement *analysis.Improvement `json:"efficiency_improvement,omitempty"`
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		mixName string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate the configured grid in memory and summarize it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			grid := a.cfg.Grid
			mix, err := resolveMix(grid, mixName)
			if err != nil {
				return err
			}

			s, err := a.engine.Sweep(grid.PowersWatts(), grid.Years, grid.EnergyMixes())
			if err != nil {
				return fmt.Errorf("invalid grid: %w", err)
			}
			rows, err := s.Collect()
			if err != nil {
				return err
			}

			rep := analysisReport{
				Mix:        mixName,
				Thresholds: analysis.ElectricityThresholds(rows, mix),
				Infeasible: analysis.Infeasible(rows),
				Ranges:     analysis.ComputeRanges(rows),
			}
			if ex, ok := analysis.FindExtremes(rows); ok {
				rep.Extremes = &ex
			}
			if len(grid.Years) > 0 {
				imp, err := analysis.EfficiencyImprovement(a.engine.Curves(), slices.Min(grid.Years), slices.Max(grid.Years))
				if err != nil {
					return err
				}
				rep.Improvement = &imp
			}

			a.logger.Debug().Int("scenarios", len(rows)).Msg("grid analyzed")
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			return writeAnalysis(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().StringVar(&mixName, "mix", "Balanced", "mix used for electricity thresholds (grid name or source=share list)")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json)")
	return cmd
}

func writeAnalysis(w io.Writer, rep analysisReport) error {
	fmt.Fprintf(w, "Scenarios: %d\n", rep.Ranges.Scenarios)
	fmt.Fprintf(w, "Power: %.0f to %.0f GW\n", rep.Ranges.PowerGW.Min, rep.Ranges.PowerGW.Max)
	fmt.Fprintf(w, "Capex: $%.3g to $%.3g\n", rep.Ranges.Capex.Min, rep.Ranges.Capex.Max)
	fmt.Fprintf(w, "Units: %.3g to %.3g\n", rep.Ranges.Units.Min, rep.Ranges.Units.Max)

	fmt.Fprintf(w, "\nPower reaching 100%% of world electricity (%s):\n", rep.Mix)
	if len(rep.Thresholds) == 0 {
		fmt.Fprintln(w, "  not reached within the grid")
	}
	for _, t := range rep.Thresholds {
		fmt.Fprintf(w, "  %d: ~%.0f GW\n", t.Year, t.PowerGW)
	}

	fmt.Fprintf(w, "\nScenarios exceeding world electricity: %d\n", len(rep.Infeasible))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, sc := range rep.Infeasible {
		fmt.Fprintf(tw, "  %.0f GW\t%d\t%s\t%.1f%%\n",
			sc.PowerWatts/1e9, sc.Year, engine.FormatMix(sc.Mix), sc.Fractions.Fraction(engine.ResourceElectricity)*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if ex := rep.Extremes; ex != nil {
		fmt.Fprintf(w, "\nHighest electricity use: %.0f GW in %d = %.1f%% of world\n",
			ex.MaxElectricity.PowerWatts/1e9, ex.MaxElectricity.Year,
			ex.MaxElectricity.Fractions.Fraction(engine.ResourceElectricity)*100)
		fmt.Fprintf(w, "Highest capex: $%.3g for %.0f GW in %d\n",
			ex.MaxCapex.Capex.TotalCapex, ex.MaxCapex.PowerWatts/1e9, ex.MaxCapex.Year)
	}

	if imp := rep.Improvement; imp != nil {
		fmt.Fprintf(w, "\nEfficiency %d → %d: density %.1f×, power %.1f×, cost %.1f×\n",
			imp.From, imp.To, imp.ComputeDensity, imp.PowerEfficiency, imp.CostEfficiency)
	}
	return nil
}

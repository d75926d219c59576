package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/aipower-model/internal/engine"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		powerGW float64
		year    int
		mixArg  string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one power budget in one year",
		Example: `  # 100 GW in 2030, 30% solar
  aipower evaluate --power-gw 100 --year 2030 --mix solar=0.3,gas=0.7

  # Use a named mix from the grid and print JSON
  aipower evaluate --power-gw 1000 --year 2035 --mix "Pure Solar" --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			mix, err := resolveMix(a.cfg.Grid, mixArg)
			if err != nil {
				return err
			}

			sc, err := a.engine.Evaluate(powerGW*1e9, year, mix)
			if err != nil {
				return err
			}
			a.logger.Debug().
				Float64("power_gw", powerGW).
				Int("year", year).
				Str("mix", engine.FormatMix(sc.Mix)).
				Msg("scenario evaluated")

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), sc)
			}
			return writeScenario(cmd.OutOrStdout(), sc)
		},
	}

	cmd.Flags().Float64Var(&powerGW, "power-gw", 0, "continuous power budget in GW")
	cmd.Flags().IntVar(&year, "year", 2030, "year the compute is built")
	cmd.Flags().StringVar(&mixArg, "mix", "Balanced", "grid mix name or source=share list")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json)")
	_ = cmd.MarkFlagRequired("power-gw")
	return cmd
}

func checkFormat(format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q: want %s or %s", format, formatText, formatJSON)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeScenario(w io.Writer, sc engine.Scenario) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "power\t%.4g GW\n", sc.PowerWatts/1e9)
	fmt.Fprintf(tw, "year\t%d\n", sc.Year)
	fmt.Fprintf(tw, "energy mix\t%s\n", engine.FormatMix(sc.Mix))
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "units\t%.4g\n", sc.Compute.UnitCount)
	fmt.Fprintf(tw, "watts per unit\t%.4g W\n", sc.Compute.WattsPerUnit)
	fmt.Fprintf(tw, "operations per second\t%.4g\n", sc.Compute.OperationsPerSecond)
	fmt.Fprintf(tw, "tokens per year\t%.4g\n", sc.Tokens.AnnualTokens)
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "total capex\t$%.4g\n", sc.Capex.TotalCapex)
	fmt.Fprintf(tw, "compute capex\t$%.4g\n", sc.Capex.ComputeCapex)
	fmt.Fprintf(tw, "infrastructure capex\t$%.4g\n", sc.Capex.InfrastructureCapex)
	fmt.Fprintf(tw, "capex per watt\t$%.4g\n", sc.Capex.CapexPerWatt)
	fmt.Fprintf(tw, "cost per unit\t$%.4g\n", sc.Capex.CostPerUnit)
	fmt.Fprintln(tw, "\t")
	for _, e := range sc.Infrastructure.Equipment {
		fmt.Fprintf(tw, "%s\t%.4g %s\n", e.Category, e.Units, e.Unit)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return writeFractions(w, sc.Fractions)
}

func writeFractions(w io.Writer, g engine.GlobalFractions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RESOURCE\tQUANTITY\tBASELINE\tFRACTION\tSTATUS")
	for _, r := range g.Resources {
		fmt.Fprintf(tw, "%s\t%.4g\t%.4g\t%.2f%%\t%s\n", r.Resource, r.Quantity, r.Baseline, r.Fraction*100, r.Status)
	}
	fmt.Fprintf(tw, "feasibility score\t\t\t%.0f\t\n", engine.FeasibilityScore(g.Fraction(engine.ResourceElectricity)))
	return tw.Flush()
}

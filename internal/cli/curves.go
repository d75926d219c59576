package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/aipower-model/internal/analysis"
)

func newCurvesCmd(a *app) *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Print efficiency rates and cumulative factors by year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from > to {
				return fmt.Errorf("--from %d is after --to %d", from, to)
			}
			curves := a.engine.Curves()
			set := curves.Curves()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "YEAR\tDENSITY RATE\tPOWER RATE\tCOST RATE\tDENSITY ×\tPOWER ×\tCOST ×\tW/UNIT\tUSD/UNIT")
			for y := from; y <= to; y++ {
				rates, err := curves.Rates(float64(y))
				if err != nil {
					return err
				}
				factors, err := curves.Factors(y)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.2f\t%.2f\t%.2f\t%.1f\t%.0f\n",
					y,
					rates.ComputeDensityRate, rates.PowerPerUnitRate, rates.CostPerUnitRate,
					factors.ComputeDensity, factors.PowerEfficiency, factors.CostEfficiency,
					set.PowerPerUnit.BaseValue/factors.PowerEfficiency,
					set.CostPerUnit.BaseValue/factors.CostEfficiency,
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			imp, err := analysis.EfficiencyImprovement(curves, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d → %d: density %.1f×, power efficiency %.1f×, cost efficiency %.1f×\n",
				imp.From, imp.To, imp.ComputeDensity, imp.PowerEfficiency, imp.CostEfficiency)
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 2025, "first year")
	cmd.Flags().IntVar(&to, "to", 2040, "last year")
	return cmd
}

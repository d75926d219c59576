package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rshade/aipower-model/internal/batch"
	"github.com/rshade/aipower-model/internal/engine"
	"github.com/rshade/aipower-model/internal/report"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		outputDir   string
		workers     int
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate the configured grid and write CSV and JSON Lines results",
		Long: `Evaluates every (power, year, mix) point of the configured grid in parallel.
Records are written in grid order: power levels, then years, then mixes.`,
		Example: `  # Reference matrix into ./results
  aipower sweep --output-dir ./results

  # Export run metrics for node_exporter's textfile collector
  aipower sweep --metrics-file /var/lib/node_exporter/aipower.prom`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if outputDir != "" {
				cfg.Output.Dir = outputDir
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			s, err := a.engine.Sweep(cfg.Grid.PowersWatts(), cfg.Grid.Years, cfg.Grid.EnergyMixes())
			if err != nil {
				return fmt.Errorf("invalid grid: %w", err)
			}

			if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", cfg.Output.Dir, err)
			}

			var sinks report.MultiSink
			var outputs []string
			if cfg.Output.CSV != "" {
				path := filepath.Join(cfg.Output.Dir, cfg.Output.CSV)
				w, err := report.NewCSVWriter(path, report.Categories(a.engine.Assumptions()))
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				defer closeLogged(a, path, w.Close)
				sinks = append(sinks, w)
				outputs = append(outputs, path)
			}
			if cfg.Output.JSONL != "" {
				path := filepath.Join(cfg.Output.Dir, cfg.Output.JSONL)
				w, err := report.NewJSONLWriter(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				defer closeLogged(a, path, w.Close)
				sinks = append(sinks, w)
				outputs = append(outputs, path)
			}

			reg := prometheus.NewRegistry()
			runner := &batch.Runner{
				Workers: cfg.Workers,
				Logger:  a.logger,
				Metrics: batch.NewMetrics(reg),
				Label: func(sc engine.Scenario) string {
					return cfg.Grid.MixName(sc.Mix)
				},
			}

			summary, runErr := runner.Run(cmd.Context(), s, sinks)

			if metricsFile != "" {
				if err := batch.WriteTextfile(metricsFile, reg); err != nil {
					a.logger.Error().Err(err).Str("path", metricsFile).Msg("failed to write metrics")
				}
			}
			if runErr != nil {
				return runErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Evaluated %d scenarios (%d infeasible) in %s, run %s\n",
				summary.Scenarios, summary.Infeasible, summary.Duration, summary.RunID)
			for _, p := range outputs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (overrides config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent evaluations (overrides config)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus text-format metrics to this file")
	return cmd
}

func closeLogged(a *app, path string, closeFn func() error) {
	if err := closeFn(); err != nil {
		a.logger.Error().Err(err).Str("path", path).Msg("failed to close output")
	}
}

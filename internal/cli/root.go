// Package cli implements the aipower command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/aipower-model/internal/config"
	"github.com/rshade/aipower-model/internal/engine"
)

// EnvLogLevel sets the default --log-level.
const EnvLogLevel = "AIPOWER_LOG_LEVEL"

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile  string
	logLevel string
	logJSON  bool

	cfg    *config.Config
	logger zerolog.Logger
	engine *engine.Engine
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "aipower",
		Short: "Translate AI power budgets into compute, capital and world resource fractions",
		Long: `aipower models what an AI power budget buys: compute units and throughput,
capital expenditure, the generation and grid equipment it needs, and how each
of those compares with annual world totals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	defaultLevel := os.Getenv(EnvLogLevel)
	if defaultLevel == "" {
		defaultLevel = zerolog.InfoLevel.String()
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./aipower.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write logs as JSON instead of console text")

	rootCmd.AddCommand(
		newEvaluateCmd(a),
		newSweepCmd(a),
		newCurvesCmd(a),
		newAnalyzeCmd(a),
	)
	return rootCmd
}

// setup builds the logger, loads configuration and constructs the engine.
func (a *app) setup(stderr io.Writer) error {
	logger, err := newLogger(stderr, a.logLevel, a.logJSON)
	if err != nil {
		return err
	}
	a.logger = logger
	engine.SetLogger(logger.With().Str("component", "engine").Logger())

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(logger)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	e, err := engine.New(cfg.Assumptions)
	if err != nil {
		return err
	}
	a.engine = e

	logger.Debug().Str("config", a.cfgFile).Msg("engine ready")
	return nil
}

func newLogger(w io.Writer, level string, asJSON bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := w
	if !asJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

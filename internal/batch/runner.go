// Package batch evaluates scenario sweeps on a bounded worker pool and
// streams records to a sink in sweep order.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/aipower-model/internal/engine"
	"github.com/rshade/aipower-model/internal/report"
)

// windowPerWorker sizes the ordered window: a window holds this many
// scenarios per worker before being flushed to the sink.
const windowPerWorker = 4

// Runner evaluates a Sweep in parallel.
type Runner struct {
	// Workers bounds concurrent evaluations. Values below 1 mean 1.
	Workers int

	Logger zerolog.Logger

	// Metrics is optional.
	Metrics *Metrics

	// Label, if set, names each scenario's mix in its record.
	Label func(engine.Scenario) string
}

// Summary describes a completed run.
type Summary struct {
	RunID      string        `json:"run_id"`
	Scenarios  int           `json:"scenarios"`
	Infeasible int           `json:"infeasible"`
	Duration   time.Duration `json:"duration"`
}

// Run evaluates every scenario of s and writes its record to sink in sweep
// order, whatever the worker count. It stops at the first evaluation or
// sink error, or when ctx is done; records already written stay written.
func (r *Runner) Run(ctx context.Context, s *engine.Sweep, sink report.Sink) (Summary, error) {
	workers := max(r.Workers, 1)
	summary := Summary{RunID: uuid.NewString()}
	log := r.Logger.With().Str("run_id", summary.RunID).Logger()
	start := time.Now()

	log.Info().
		Int("scenarios", s.Len()).
		Int("workers", workers).
		Msg("sweep started")

	window := workers * windowPerWorker
	for lo := 0; lo < s.Len(); lo += window {
		hi := min(lo+window, s.Len())

		scenarios, err := r.evaluate(ctx, s, lo, hi, workers)
		if err != nil {
			log.Error().Err(err).Int("completed", summary.Scenarios).Msg("sweep failed")
			summary.Duration = time.Since(start)
			return summary, err
		}

		for i, sc := range scenarios {
			rec := report.NewRecord(summary.RunID, lo+i, sc)
			if r.Label != nil {
				rec.MixName = r.Label(sc)
			}
			if err := sink.Write(rec); err != nil {
				log.Error().Err(err).Int("index", lo+i).Msg("failed to write record")
				summary.Duration = time.Since(start)
				return summary, fmt.Errorf("write scenario %d: %w", lo+i, err)
			}
			summary.Scenarios++
			if !rec.Feasible {
				summary.Infeasible++
			}
		}
	}

	summary.Duration = time.Since(start)
	log.Info().
		Int("scenarios", summary.Scenarios).
		Int("infeasible", summary.Infeasible).
		Dur("duration", summary.Duration).
		Msg("sweep completed")
	return summary, nil
}

// evaluate computes scenarios [lo, hi) concurrently.
func (r *Runner) evaluate(ctx context.Context, s *engine.Sweep, lo, hi, workers int) ([]engine.Scenario, error) {
	out := make([]engine.Scenario, hi-lo)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := lo; i < hi; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			began := time.Now()
			sc, err := s.At(i)
			if r.Metrics != nil {
				r.Metrics.Duration.Observe(time.Since(began).Seconds())
				r.Metrics.Evaluations.Inc()
			}
			if err != nil {
				if r.Metrics != nil {
					r.Metrics.Failures.Inc()
				}
				return fmt.Errorf("scenario %d: %w", i, err)
			}

			if r.Metrics != nil {
				for _, res := range sc.Fractions.Resources {
					if res.Status == engine.StatusInfeasible {
						r.Metrics.Infeasible.WithLabelValues(res.Resource).Inc()
					}
				}
			}
			out[i-lo] = sc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

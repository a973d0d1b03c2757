package runner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cifi-tools/huntersim/internal/sim/build"
	"github.com/cifi-tools/huntersim/internal/sim/engine"
	"github.com/cifi-tools/huntersim/internal/sim/rng"
	"github.com/cifi-tools/huntersim/internal/sim/scaling"
)

// MaxWorkers is the hard cap on concurrent runs, matching common
// scheduler limits for process pools.
const MaxWorkers = 61

// ConfigRangeError reports a batch parameter outside its supported range.
// It is returned before any run starts.
type ConfigRangeError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *ConfigRangeError) Error() string {
	return fmt.Sprintf("runner: %s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// BatchConfig parameterizes one batch of independent runs.
type BatchConfig struct {
	// Runs is the number of independent runs; at least 1.
	Runs int
	// Workers bounds parallel dispatch; 0 or negative runs strictly
	// sequentially, and values above MaxWorkers are rejected.
	Workers int
	// Seed is the batch seed; 0 draws a fresh one, reported in the result
	// so the batch can be replayed.
	Seed uint64
	// Ceiling and MaxEvents are passed through to every orchestrator.
	Ceiling   int
	MaxEvents int
	// Recorder receives every run's combat trace when set. With Workers
	// above 1 it must be safe for concurrent use.
	Recorder engine.Recorder
}

func (c BatchConfig) validate() error {
	if c.Runs < 1 {
		return &ConfigRangeError{Field: "runs", Value: c.Runs, Min: 1, Max: 1 << 20}
	}
	if c.Workers > MaxWorkers {
		return &ConfigRangeError{Field: "workers", Value: c.Workers, Min: 0, Max: MaxWorkers}
	}
	return nil
}

// BatchResult collects a batch's completed runs. Results holds only runs
// that fully terminated, in run-index order; cancelled in-flight runs are
// discarded and failed runs are counted, never retried.
type BatchResult struct {
	Seed     uint64
	Results  []*RunResult
	Failures int
}

// RunBatch executes cfg.Runs independent runs of the given stat block.
//
// Every run gets its own random stream derived from (seed, run index), so
// a reported seed replays the whole batch bit-for-bit at any worker
// count. On cancellation the completed results are returned alongside the
// context error.
func RunBatch(ctx context.Context, sb *scaling.StatBlock, cfg BatchConfig) (*BatchResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rng.RandomSeed()
	}

	results := make([]*RunResult, cfg.Runs)
	var failures atomic.Int64

	runOne := func(ctx context.Context, i int) error {
		o := NewOrchestrator(sb, rng.NewSeeded(seed, uint64(i)))
		o.Ceiling = cfg.Ceiling
		o.MaxEvents = cfg.MaxEvents
		o.Recorder = cfg.Recorder
		o.seed, o.stream = seed, uint64(i)
		res, err := o.Run(ctx)
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil // discarded, not a failure
		case err != nil:
			failures.Add(1)
			return nil // failures never abort the batch
		}
		results[i] = res
		return nil
	}

	if cfg.Workers <= 0 {
		for i := 0; i < cfg.Runs; i++ {
			if ctx.Err() != nil {
				break
			}
			_ = runOne(ctx, i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for i := 0; i < cfg.Runs; i++ {
			g.Go(func() error { return runOne(gctx, i) })
		}
		_ = g.Wait() // runOne never returns an error
	}

	out := &BatchResult{Seed: seed, Failures: int(failures.Load())}
	for _, r := range results {
		if r != nil {
			out.Results = append(out.Results, r)
		}
	}
	return out, ctx.Err()
}

// Simulate is the build-level entry point: it resolves the build once and
// runs a batch over the shared, read-only stat block.
func Simulate(ctx context.Context, spec *build.Spec, cfg BatchConfig) (*BatchResult, error) {
	sb, err := scaling.Resolve(spec)
	if err != nil {
		return nil, err
	}
	return RunBatch(ctx, sb, cfg)
}

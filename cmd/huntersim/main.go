// Package main provides the simulator CLI: it loads one or two build
// files, executes a batch of runs for each, and prints the aggregated
// statistics or the comparison report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cifi-tools/huntersim/internal/config"
	"github.com/cifi-tools/huntersim/internal/observability"
	"github.com/cifi-tools/huntersim/internal/sim/build"
	"github.com/cifi-tools/huntersim/internal/sim/effect"
	"github.com/cifi-tools/huntersim/internal/sim/engine"
	"github.com/cifi-tools/huntersim/internal/sim/runner"
	"github.com/cifi-tools/huntersim/internal/sim/stats"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	buildPath := flag.String("build", "", "path to the build YAML file")
	comparePath := flag.String("compare", "", "path to a second build YAML file to compare against")
	runs := flag.Int("runs", 0, "number of runs per build (overrides config)")
	workers := flag.Int("workers", -1, "parallel workers, 0 = sequential (overrides config)")
	seed := flag.Uint64("seed", 0, "batch seed, 0 = draw a fresh one (overrides config)")
	ceiling := flag.Int("ceiling", -1, "stage ceiling, 0 = run to defeat (overrides config)")
	template := flag.String("template", "", "write a blank build template for the variant (borge, ozzy) and exit")
	verbose := flag.Bool("verbose", false, "debug logging with per-event combat traces")
	flag.Parse()

	if *template != "" {
		if err := build.WriteTemplate(os.Stdout, effect.Variant(*template)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if *buildPath == "" {
		fmt.Fprintln(os.Stderr, "usage: huntersim -build <file> [-compare <file>] [-runs N] [-workers N] [-seed N] [-ceiling N]")
		fmt.Fprintln(os.Stderr, "       huntersim -template <variant>")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *runs > 0 {
		cfg.Simulation.Runs = *runs
	}
	if *workers >= 0 {
		cfg.Simulation.Workers = *workers
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *ceiling >= 0 {
		cfg.Simulation.StageCeiling = *ceiling
	}
	if *verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "console"
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	batchCfg := cfg.Simulation.BatchConfig()
	if cfg.Logging.Trace || *verbose {
		batchCfg.Recorder = engine.ZapRecorder{Logger: logger}
	}
	logger.Info("starting simulation",
		zap.String("build", *buildPath),
		zap.Int("runs", batchCfg.Runs),
		zap.Int("workers", batchCfg.Workers),
	)

	resA, err := simulate(ctx, logger, *buildPath, batchCfg)
	if err != nil {
		fail(logger, err)
	}

	if *comparePath == "" {
		report := stats.Aggregate(resA.Results)
		printReport(os.Stdout, *buildPath, resA, report)
	} else {
		// the comparison reuses the first batch's seed so both builds face
		// identical random streams per run index
		batchCfg.Seed = resA.Seed
		resB, err := simulate(ctx, logger, *comparePath, batchCfg)
		if err != nil {
			fail(logger, err)
		}
		cmp := stats.Compare(resA.Results, resB.Results)
		printComparison(os.Stdout, *buildPath, *comparePath, resA, resB, cmp)
	}

	logger.Info("simulation complete",
		zap.Uint64("seed", resA.Seed),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadFromViper(config.Default())
	}
	return config.Load(path)
}

// simulate loads, validates, and runs one build file.
func simulate(ctx context.Context, logger *zap.Logger, path string, cfg runner.BatchConfig) (*runner.BatchResult, error) {
	spec, err := build.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := runner.Simulate(ctx, spec, cfg)
	if errors.Is(err, context.Canceled) && res != nil && len(res.Results) > 0 {
		// an interrupted batch still reports whatever completed
		logger.Warn("batch interrupted", zap.Int("completed", len(res.Results)))
		err = nil
	}
	if err != nil {
		return nil, err
	}
	if res.Failures > 0 {
		logger.Warn("runs failed", zap.String("build", path), zap.Int("failures", res.Failures))
	}
	return res, nil
}

// fail prints the error in its most useful shape and exits non-zero.
// Schema problems are listed per field; everything else prints as-is.
func fail(logger *zap.Logger, err error) {
	var schemaErr *build.SchemaError
	var rangeErr *runner.ConfigRangeError
	switch {
	case errors.As(err, &schemaErr):
		fmt.Fprintf(os.Stderr, "invalid build %s:\n", schemaErr.Path)
		for _, p := range schemaErr.Problems {
			fmt.Fprintf(os.Stderr, "  %s\n", p)
		}
	case errors.As(err, &rangeErr):
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", rangeErr)
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "interrupted")
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	logger.Sync()
	os.Exit(1)
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cifi-tools/huntersim/internal/sim/runner"
	"github.com/cifi-tools/huntersim/internal/sim/stats"
)

// printReport renders a single-build aggregate to w.
func printReport(w io.Writer, path string, batch *runner.BatchResult, rep stats.Report) {
	fmt.Fprintf(w, "build: %s\n", path)
	fmt.Fprintf(w, "seed: %d  runs: %d  defeats: %d  failures: %d\n", batch.Seed, rep.Runs, rep.Defeats, batch.Failures)
	if rep.NoData {
		fmt.Fprintln(w, "no data")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "metric\tmean\tstddev\tmin\tmax")
	for _, name := range stats.MetricNames {
		s := rep.Metrics[name]
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n", name, s.Mean, s.StdDev, s.Min, s.Max)
	}
	tw.Flush()
}

// printComparison renders both builds' aggregates and the per-metric
// win/tie/loss tally of A against B.
func printComparison(w io.Writer, pathA, pathB string, batchA, batchB *runner.BatchResult, cmp stats.Comparison) {
	printReport(w, pathA, batchA, cmp.A)
	fmt.Fprintln(w)
	printReport(w, pathB, batchB, cmp.B)
	fmt.Fprintln(w)

	mode := "by mean"
	if cmp.Pairwise {
		mode = "per run pair"
	}
	fmt.Fprintf(w, "comparison (%s, A = %s):\n", mode, pathA)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "metric\twins\tties\tlosses")
	for _, name := range stats.MetricNames {
		t := cmp.Tallies[name]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", name, t.Wins, t.Ties, t.Losses)
	}
	tw.Flush()
}

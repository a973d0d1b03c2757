// Package stats turns batches of run results into distribution summaries
// and two-build comparisons. It depends on run results only, never on
// simulation internals, and never mutates its inputs.
package stats

import (
	"math"

	"github.com/cifi-tools/huntersim/internal/sim/runner"
)

// MetricNames lists every aggregated metric in report order.
var MetricNames = []string{
	"highest_stage",
	"elapsed",
	"kills",
	"boss_kills",
	"loot",
	"loot_per_hour",
	"damage_dealt",
	"damage_taken",
	"healing_received",
	"revives_used",
}

// metricValue extracts the named metric from one run result.
func metricValue(name string, r *runner.RunResult) float64 {
	switch name {
	case "highest_stage":
		return float64(r.HighestStage)
	case "elapsed":
		return r.Elapsed
	case "kills":
		return float64(r.Kills)
	case "boss_kills":
		return float64(r.BossKills)
	case "loot":
		return r.Loot
	case "loot_per_hour":
		return r.LootPerHour
	case "damage_dealt":
		return r.DamageDealt
	case "damage_taken":
		return r.DamageTaken
	case "healing_received":
		return r.HealingReceived
	case "revives_used":
		return float64(r.RevivesUsed)
	default:
		return 0
	}
}

// Summary is the distribution of one metric over a batch.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for fewer than 2 runs
	Min    float64
	Max    float64
}

// Report aggregates one batch per metric. A Report built from zero
// results carries NoData and zero-valued summaries, never fabricated
// numbers.
type Report struct {
	NoData   bool
	Runs     int
	Defeats  int // runs that ended in death rather than at the ceiling
	Metrics  map[string]Summary
}

// Aggregate summarizes a batch of run results.
//
// Postcondition: results is unmodified; an empty batch yields a NoData
// report rather than an error.
func Aggregate(results []*runner.RunResult) Report {
	rep := Report{Runs: len(results), Metrics: make(map[string]Summary, len(MetricNames))}
	if len(results) == 0 {
		rep.NoData = true
		for _, name := range MetricNames {
			rep.Metrics[name] = Summary{}
		}
		return rep
	}

	for _, r := range results {
		if r.Termination == runner.TerminationDefeat {
			rep.Defeats++
		}
	}
	for _, name := range MetricNames {
		rep.Metrics[name] = summarize(name, results)
	}
	return rep
}

func summarize(name string, results []*runner.RunResult) Summary {
	s := Summary{Count: len(results), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, r := range results {
		v := metricValue(name, r)
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(s.Count)

	if s.Count > 1 {
		var sq float64
		for _, r := range results {
			d := metricValue(name, r) - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(s.Count-1))
	}
	return s
}

// Tally is a per-metric win/tie/loss count for build A against build B.
type Tally struct {
	Wins, Ties, Losses int
}

// Comparison holds both builds' reports and the per-metric tallies.
// Pairwise is true when the batches had equal run counts and were
// compared run-pair by run-pair; otherwise one mean-level comparison per
// metric was tallied.
type Comparison struct {
	A, B     Report
	Pairwise bool
	Tallies  map[string]Tally
}

// Compare evaluates build A's results against build B's. With matching
// run counts each metric is compared strictly-greater per run index;
// with mismatched counts the distribution means are compared instead.
func Compare(a, b []*runner.RunResult) Comparison {
	cmp := Comparison{
		A:        Aggregate(a),
		B:        Aggregate(b),
		Pairwise: len(a) == len(b) && len(a) > 0,
		Tallies:  make(map[string]Tally, len(MetricNames)),
	}

	for _, name := range MetricNames {
		var t Tally
		if cmp.Pairwise {
			for i := range a {
				va, vb := metricValue(name, a[i]), metricValue(name, b[i])
				switch {
				case va > vb:
					t.Wins++
				case va < vb:
					t.Losses++
				default:
					t.Ties++
				}
			}
		} else if len(a) > 0 && len(b) > 0 {
			ma, mb := cmp.A.Metrics[name].Mean, cmp.B.Metrics[name].Mean
			switch {
			case ma > mb:
				t.Wins++
			case ma < mb:
				t.Losses++
			default:
				t.Ties++
			}
		}
		cmp.Tallies[name] = t
	}
	return cmp
}

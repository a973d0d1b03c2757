package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cifi-tools/huntersim/internal/sim/build"
	"github.com/cifi-tools/huntersim/internal/sim/runner"
)

func TestRunBatchRejectsOutOfRangeConfig(t *testing.T) {
	sb := resolve(t, borgeSpec(t, nil))

	cases := []struct {
		name  string
		cfg   runner.BatchConfig
		field string
	}{
		{"zero runs", runner.BatchConfig{Runs: 0, Workers: 1}, "runs"},
		{"negative runs", runner.BatchConfig{Runs: -3, Workers: 1}, "runs"},
		{"too many workers", runner.BatchConfig{Runs: 1, Workers: runner.MaxWorkers + 1}, "workers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runner.RunBatch(context.Background(), sb, tc.cfg)
			var rangeErr *runner.ConfigRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tc.field, rangeErr.Field)
		})
	}
}

func TestRunBatchParallelMatchesSequential(t *testing.T) {
	sb := resolve(t, borgeSpec(t, map[string]int{"hp": 5}))
	base := runner.BatchConfig{Runs: 8, Seed: 11, Ceiling: 10}

	seqCfg := base
	seqCfg.Workers = 0
	seq, err := runner.RunBatch(context.Background(), sb, seqCfg)
	require.NoError(t, err)

	parCfg := base
	parCfg.Workers = 4
	par, err := runner.RunBatch(context.Background(), sb, parCfg)
	require.NoError(t, err)

	require.Len(t, seq.Results, 8)
	require.Len(t, par.Results, 8)
	assert.Zero(t, seq.Failures)
	for i := range seq.Results {
		s, p := seq.Results[i], par.Results[i]
		assert.Equal(t, s.Stream, p.Stream)
		assert.Equal(t, s.HighestStage, p.HighestStage)
		assert.Equal(t, s.Elapsed, p.Elapsed)
		assert.Equal(t, s.Loot, p.Loot)
		assert.Equal(t, s.Termination, p.Termination)
	}
}

func TestRunBatchStreamsAreIndependent(t *testing.T) {
	sb := resolve(t, borgeSpec(t, map[string]int{"hp": 5}))
	res, err := runner.RunBatch(context.Background(), sb, runner.BatchConfig{Runs: 16, Seed: 4, Ceiling: 50})
	require.NoError(t, err)
	require.Len(t, res.Results, 16)

	elapsed := make(map[float64]bool)
	for _, r := range res.Results {
		elapsed[r.Elapsed] = true
	}
	assert.Greater(t, len(elapsed), 1, "distinct streams should produce distinct runs")
}

func TestRunBatchDrawsSeedWhenUnset(t *testing.T) {
	sb := resolve(t, borgeSpec(t, nil))
	res, err := runner.RunBatch(context.Background(), sb, runner.BatchConfig{Runs: 1, Ceiling: 2})
	require.NoError(t, err)
	assert.NotZero(t, res.Seed, "a drawn seed must be reported for replay")
}

func TestRunBatchCancelledBeforeStartKeepsNothing(t *testing.T) {
	sb := resolve(t, borgeSpec(t, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := runner.RunBatch(ctx, sb, runner.BatchConfig{Runs: 4, Seed: 2})

	require.NotNil(t, res)
	assert.Empty(t, res.Results)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulateResolvesTheBuildOnce(t *testing.T) {
	spec := borgeSpec(t, map[string]int{"power": 3})
	res, err := runner.Simulate(context.Background(), spec, runner.BatchConfig{Runs: 2, Seed: 7, Ceiling: 5})
	require.NoError(t, err)
	assert.Len(t, res.Results, 2)
}

func TestSimulateRejectsUnknownVariant(t *testing.T) {
	spec := &build.Spec{Meta: build.Meta{Hunter: "knight"}}
	_, err := runner.Simulate(context.Background(), spec, runner.BatchConfig{Runs: 1})
	assert.Error(t, err)
}

package scaling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cifi-tools/huntersim/internal/sim/scaling"
)

// TestForStage_ReferenceValues pins the curve against externally specified
// values at low stage indices. These numbers come from the game, not from
// the formula — a formula change that shifts them is a regression.
func TestForStage_ReferenceValues(t *testing.T) {
	s1 := scaling.ForStage(1)
	assert.InDelta(t, 13.0, s1.Health, 1e-9)
	assert.InDelta(t, 3.2, s1.Power, 1e-9)
	assert.InDelta(t, 4.524, s1.AttackInterval(), 1e-9)
	assert.InDelta(t, 0.0, s1.Regen, 1e-9)
	assert.InDelta(t, 0.0326, s1.CritChance, 1e-9)
	assert.InDelta(t, 1.218, s1.CritDamage, 1e-9)
	assert.False(t, s1.Boss)
	assert.Zero(t, s1.DamageReduction)
	assert.Zero(t, s1.EvadeChance)

	s2 := scaling.ForStage(2)
	assert.InDelta(t, 17.0, s2.Health, 1e-9)
	assert.InDelta(t, 3.9, s2.Power, 1e-9)
	assert.InDelta(t, 0.08, s2.Regen, 1e-9)

	s10 := scaling.ForStage(10)
	assert.InDelta(t, 49.0, s10.Health, 1e-9)
	assert.InDelta(t, 9.5, s10.Power, 1e-9)
	assert.InDelta(t, 4.47, s10.AttackInterval(), 1e-9)
	assert.InDelta(t, 0.72, s10.Regen, 1e-9)
}

// TestForStage_Monotonic is the scaling contract: for s1 < s2, every field
// of ForStage(s2) >= the corresponding field of ForStage(s1).
func TestForStage_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(1, 5000).Draw(rt, "s1")
		b := rapid.IntRange(a, 5000).Draw(rt, "s2")

		lo, hi := scaling.ForStage(a), scaling.ForStage(b)
		assert.LessOrEqual(rt, lo.Health, hi.Health)
		assert.LessOrEqual(rt, lo.Power, hi.Power)
		assert.LessOrEqual(rt, lo.AttacksPerSecond, hi.AttacksPerSecond)
		assert.LessOrEqual(rt, lo.Regen, hi.Regen)
		assert.LessOrEqual(rt, lo.CritChance, hi.CritChance)
		assert.LessOrEqual(rt, lo.CritDamage, hi.CritDamage)
	})
}

// TestForStage_IntervalFloor verifies opponents stop speeding up once the
// swing time reaches the floor instead of going negative.
func TestForStage_IntervalFloor(t *testing.T) {
	deep := scaling.ForStage(100000)
	assert.InDelta(t, 1.0, deep.AttackInterval(), 1e-9)
	assert.Greater(t, deep.Health, 0.0)
}

func TestBossStages(t *testing.T) {
	assert.False(t, scaling.IsBossStage(1))
	assert.False(t, scaling.IsBossStage(99))
	assert.True(t, scaling.IsBossStage(100))
	assert.True(t, scaling.IsBossStage(300))

	base := scaling.ForStage(100)
	boss := scaling.BossForStage(100)
	require.True(t, boss.Boss)
	assert.InDelta(t, base.Health*12, boss.Health, 1e-9)
	assert.InDelta(t, base.Power*2.5, boss.Power, 1e-9)
	assert.Greater(t, boss.DamageReduction, 0.0)
	assert.Greater(t, boss.EvadeChance, 0.0)

	assert.True(t, scaling.StatsForStage(100).Boss)
	assert.False(t, scaling.StatsForStage(101).Boss)
}

func TestLootForStage(t *testing.T) {
	assert.InDelta(t, 1.1, scaling.LootForStage(1), 1e-9)
	assert.InDelta(t, 2.0, scaling.LootForStage(10), 1e-9)
	assert.InDelta(t, 110.0, scaling.LootForStage(100), 1e-9)
	assert.LessOrEqual(t, scaling.LootForStage(5), scaling.LootForStage(6))
}

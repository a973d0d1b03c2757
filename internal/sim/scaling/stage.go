// Package scaling holds the pure scaling tables of the simulated game:
// opponent statistics as a function of the stage index, loot yields, and
// the resolution of a hunter build into its runtime stat block.
//
// The curves are externally specified by the game and pinned by reference
// values in the tests; they are data, not tunables.
package scaling

import "math"

// BossInterval is the stage cadence of boss encounters: every 100th stage
// spawns a boss instead of a regular opponent.
const BossInterval = 100

// minAttackInterval floors the opponent swing time; beyond the stage where
// the curve would cross it, opponents stop speeding up.
const minAttackInterval = 1.0

// OpponentStats are the base statistics of the stage opponent. Every field
// is monotonic non-decreasing in the stage index (attack speed is exposed
// as a rate, not an interval, to keep that reading uniform).
type OpponentStats struct {
	Health           float64
	Power            float64
	AttacksPerSecond float64
	Regen            float64
	CritChance       float64
	CritDamage       float64
	// DamageReduction and EvadeChance are zero for regular opponents;
	// bosses carry both.
	DamageReduction float64
	EvadeChance     float64
	Boss            bool
}

// AttackInterval returns the seconds between attacks.
func (o OpponentStats) AttackInterval() float64 { return 1 / o.AttacksPerSecond }

// ForStage returns the base opponent statistics for a stage.
//
// Precondition: stage >= 1.
// Postcondition: pure; every field of ForStage(s+1) >= ForStage(s).
func ForStage(stage int) OpponentStats {
	s := float64(stage)
	interval := 4.53 - 0.006*s
	if interval < minAttackInterval {
		interval = minAttackInterval
	}
	regen := 0.0
	if stage > 1 {
		regen = 0.08 * (s - 1)
	}
	return OpponentStats{
		Health:           9 + 4*s,
		Power:            2.5 + 0.7*s,
		AttacksPerSecond: 1 / interval,
		Regen:            regen,
		CritChance:       0.0322 + 0.0004*s,
		CritDamage:       1.21 + 0.008*s,
	}
}

// IsBossStage reports whether stage spawns a boss.
func IsBossStage(stage int) bool {
	return stage > 0 && stage%BossInterval == 0
}

// BossForStage returns the boss statistics for a boss stage: the base
// curve at that stage with flat multipliers and defensive stats a regular
// opponent lacks.
//
// Precondition: IsBossStage(stage).
func BossForStage(stage int) OpponentStats {
	o := ForStage(stage)
	o.Health *= 12
	o.Power *= 2.5
	o.Regen *= 3
	o.DamageReduction = 0.05
	o.EvadeChance = 0.02
	o.Boss = true
	return o
}

// StatsForStage returns the opponent for a stage, boss or regular.
func StatsForStage(stage int) OpponentStats {
	if IsBossStage(stage) {
		return BossForStage(stage)
	}
	return ForStage(stage)
}

// LootForStage returns the base loot yield of a victory on a stage, before
// build multipliers. Monotonic non-decreasing; bosses pay a flat multiple.
func LootForStage(stage int) float64 {
	base := 1 + 0.1*float64(stage)
	if IsBossStage(stage) {
		return base * 10
	}
	return math.Round(base*100) / 100
}

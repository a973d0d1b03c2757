package engine

import (
	"github.com/cifi-tools/huntersim/internal/sim/scaling"
)

// Side distinguishes the simulated hunter from the stage opponent.
type Side int

const (
	SideHunter Side = iota
	SideOpponent
)

// String returns the side label used in trace records.
func (s Side) String() string {
	if s == SideHunter {
		return "hunter"
	}
	return "opponent"
}

// Combatant is the mutable runtime state of one side of an encounter. One
// instance exists per side per encounter and is owned by exactly one
// engine; nothing here is shared between runs.
//
// Scope tags: RevivesLeft is persistent — the orchestrator copies it out
// after each encounter and back into the next one. The cumulative totals
// are per-encounter and summed by the orchestrator. Everything else is
// per-encounter and dies with the encounter.
type Combatant struct {
	Name string
	Side Side

	MaxHealth       float64
	Health          float64
	Power           float64
	Regen           float64
	DamageReduction float64 // fraction of incoming damage removed, [0,1]
	EvadeChance     float64
	CritChance      float64
	CritDamage      float64 // damage multiplier on a crit
	Interval        float64 // seconds between action-ready events

	// effect package, zero-valued for combatants without the effect
	Lifesteal        float64
	EffectChance     float64
	StunSeconds      float64
	HasteSeconds     float64
	HasteCooldown    float64
	ReflectFraction  float64
	InhalerFraction  float64
	KillHealFraction float64
	RevivesLeft      int // persistent across encounters

	// cumulative totals for the encounter outcome
	DamageDealt     float64
	DamageTaken     float64
	HealingReceived float64
	Crits           int
	Evades          int
	StunProcs       int
	RevivesUsed     int

	// scheduling state owned by the engine
	pendingAt    float64            // simulated time of the pending action event
	gen          uint64             // schedule generation; stale action events are skipped
	stunnedUntil float64            // > clock while a stun effect is active
	hasteArmed   bool               // fires_of_war window open for the next swing
	cooldowns    map[string]float64 // effect ID -> earliest simulated time it may refire
}

// NewHunter builds the hunter-side combatant for one encounter from a
// resolved stat block. RevivesLeft starts from the block's charge count;
// the orchestrator overwrites it with the carried value on later stages.
func NewHunter(sb *scaling.StatBlock) *Combatant {
	return &Combatant{
		Name:             string(sb.Variant),
		Side:             SideHunter,
		MaxHealth:        sb.MaxHP,
		Health:           sb.MaxHP,
		Power:            sb.Power,
		Regen:            sb.Regen,
		DamageReduction:  sb.DamageReduction,
		EvadeChance:      sb.EvadeChance,
		CritChance:       sb.CritChance,
		CritDamage:       sb.CritDamage,
		Interval:         sb.AttackInterval,
		Lifesteal:        sb.Lifesteal,
		EffectChance:     sb.EffectChance,
		StunSeconds:      sb.StunSeconds,
		HasteSeconds:     sb.HasteSeconds,
		HasteCooldown:    sb.HasteCooldown,
		ReflectFraction:  sb.ReflectFraction,
		InhalerFraction:  sb.InhalerFraction,
		KillHealFraction: sb.KillHealFraction,
		RevivesLeft:      sb.ReviveCharges,
		cooldowns:        make(map[string]float64),
	}
}

// NewOpponent builds the stage opponent, with the hunter's static
// opponent-facing effects (omen_of_defeat regen cut, presence_of_god boss
// opening) already applied.
func NewOpponent(stage int, sb *scaling.StatBlock) *Combatant {
	stats := scaling.StatsForStage(stage)
	name := "enemy"
	if stats.Boss {
		name = "boss"
	}
	c := &Combatant{
		Name:            name,
		Side:            SideOpponent,
		MaxHealth:       stats.Health,
		Health:          stats.Health,
		Power:           stats.Power,
		Regen:           stats.Regen * (1 - sb.OpponentRegenCut),
		DamageReduction: stats.DamageReduction,
		EvadeChance:     stats.EvadeChance,
		CritChance:      stats.CritChance,
		CritDamage:      stats.CritDamage,
		Interval:        stats.AttackInterval(),
		cooldowns:       make(map[string]float64),
	}
	if stats.Boss && sb.BossOpening > 0 {
		c.Health = c.MaxHealth * (1 - sb.BossOpening)
	}
	return c
}

// Alive reports whether the combatant's health is above zero.
func (c *Combatant) Alive() bool { return c.Health > 0 }

// ApplyDamage reduces health by amount, clamping at zero. Negative health
// never persists.
//
// Precondition: amount >= 0.
func (c *Combatant) ApplyDamage(amount float64) {
	c.Health -= amount
	c.DamageTaken += amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// Heal raises health by amount, clamping at MaxHealth, and returns the
// amount actually restored.
//
// Precondition: amount >= 0.
func (c *Combatant) Heal(amount float64) float64 {
	missing := c.MaxHealth - c.Health
	if amount > missing {
		amount = missing
	}
	c.Health += amount
	c.HealingReceived += amount
	return amount
}

// MissingHealth returns MaxHealth - Health.
func (c *Combatant) MissingHealth() float64 { return c.MaxHealth - c.Health }

// onCooldown reports whether effect id may not fire before now.
func (c *Combatant) onCooldown(id string, now float64) bool {
	return c.cooldowns[id] > now
}

// startCooldown blocks effect id until now + d.
func (c *Combatant) startCooldown(id string, now, d float64) {
	c.cooldowns[id] = now + d
}

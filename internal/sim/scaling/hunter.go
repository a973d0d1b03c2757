package scaling

import (
	"fmt"
	"math"

	"github.com/cifi-tools/huntersim/internal/sim/build"
	"github.com/cifi-tools/huntersim/internal/sim/effect"
)

// StatBlock is the resolved runtime stat block of a hunter build: every
// base upgrade, talent, attribute, and inscription folded into the numbers
// the combat engine consumes. Resolution is deterministic per build, so
// one StatBlock serves every run of that build.
//
// Scope tags: ReviveCharges is the only persistent field — the orchestrator
// carries its remaining count across encounter boundaries. Everything else
// is per-encounter and re-read fresh from the block each encounter.
type StatBlock struct {
	Variant effect.Variant

	// per-encounter base stats
	MaxHP           float64
	Power           float64
	Regen           float64
	DamageReduction float64
	EvadeChance     float64
	EffectChance    float64
	CritChance      float64
	CritDamage      float64
	AttackInterval  float64 // seconds between attacks
	Lifesteal       float64 // fraction of damage dealt returned as health

	// per-encounter derived effect magnitudes
	StunSeconds      float64 // stun applied on an effect proc
	HasteSeconds     float64 // fires_of_war wind-up reduction after a stun proc
	HasteCooldown    float64 // fires_of_war cooldown, 0 when unallocated
	ReflectFraction  float64 // helltouch_barrier reflect on damage taken
	InhalerFraction  float64 // lifedrain_inhalers missing-health regen
	KillHealFraction float64 // unfair_advantage heal on kill
	OpponentRegenCut float64 // omen_of_defeat, capped at 1
	BossOpening      float64 // presence_of_god opening fraction of boss health
	LootMultiplier   float64 // 1 + call_me_lucky_loot
	BossLootBonus    float64 // timeless_mastery bonus fraction on boss loot
	TrampleLevel     int

	// persistent: carried across encounters by the orchestrator only
	ReviveCharges int

	// Magnitudes holds every allocated talent/attribute/mod magnitude
	// keyed by effect identifier, for reporting and traces.
	Magnitudes map[string]float64
}

// Resolve computes the stat block for a validated build specification.
//
// Precondition: spec passed build validation, so every allocation names a
// schema field. A registry miss past that point is a schema/registry
// mismatch and surfaces as an UnknownEffectError.
func Resolve(spec *build.Spec) (*StatBlock, error) {
	reg, err := effect.ForVariant(spec.Variant())
	if err != nil {
		return nil, err
	}

	mags := make(map[string]float64)
	points := make(map[string]int)
	for _, section := range []map[string]int{spec.Talents, spec.Attributes, spec.Mods} {
		for id, p := range section {
			m, err := reg.Magnitude(id, p)
			if err != nil {
				return nil, err
			}
			mags[id] = m
			points[id] = p
		}
	}

	sb := &StatBlock{
		Variant:    spec.Variant(),
		Magnitudes: mags,
	}
	switch spec.Variant() {
	case effect.Borge:
		resolveBorge(spec, points, mags, sb)
	case effect.Ozzy:
		resolveOzzy(spec, points, mags, sb)
	default:
		return nil, fmt.Errorf("scaling: no stat formulas for variant %q", spec.Variant())
	}

	// shared effect wiring
	sb.Lifesteal = mags["life_of_the_hunt"] + mags["book_of_baal"]
	sb.ReflectFraction = mags["helltouch_barrier"]
	sb.InhalerFraction = mags["lifedrain_inhalers"]
	sb.KillHealFraction = mags["unfair_advantage"]
	sb.OpponentRegenCut = math.Min(mags["omen_of_defeat"], 1)
	sb.BossOpening = mags["presence_of_god"]
	sb.LootMultiplier = 1 + mags["call_me_lucky_loot"]
	sb.BossLootBonus = mags["timeless_mastery"]
	sb.TrampleLevel = points["trample"]
	sb.ReviveCharges = points["death_is_my_companion"]
	if mags["fires_of_war"] > 0 {
		fow, err := reg.Get("fires_of_war")
		if err != nil {
			return nil, err
		}
		sb.HasteSeconds = mags["fires_of_war"]
		sb.HasteCooldown = fow.CooldownSec
	}
	return sb, nil
}

// resolveBorge applies Borge's base stat curves. The constants and the
// divisor breakpoints (hp/5, power/10, regen/30) come straight from the
// game's upgrade tables.
func resolveBorge(spec *build.Spec, points map[string]int, mags map[string]float64, sb *StatBlock) {
	hp := spec.Stat("hp")
	pw := spec.Stat("power")
	rg := spec.Stat("regen")

	sb.MaxHP = math.Round((42 +
		float64(hp)*(2.53+0.01*float64(hp/5)) +
		float64(spec.Inscriptions["i3"])*6 +
		float64(spec.Inscriptions["i27"])*24) *
		(1 + mags["soul_of_ares"]))
	sb.Power = (3 +
		float64(pw)*(0.5+0.01*float64(pw/10)) +
		float64(spec.Inscriptions["i13"]) +
		float64(points["impeccable_impacts"])*effect.ImpeccableImpactsPower) *
		(1 + float64(points["soul_of_ares"])*effect.SoulOfAresPower)
	sb.Regen = (0.02 +
		float64(rg)*(0.03+0.01*float64(rg/30)) +
		float64(points["essence_of_ylith"])*effect.EssenceOfYlithFlat) *
		(1 + mags["essence_of_ylith"])
	sb.DamageReduction = float64(spec.Stat("damage_reduction"))*0.0144 +
		mags["spartan_lineage"] +
		float64(spec.Inscriptions["i24"])*0.004
	sb.EvadeChance = 0.01 +
		float64(spec.Stat("evade_chance"))*0.0034 +
		mags["superior_sensors"]
	sb.EffectChance = 0.04 +
		float64(spec.Stat("effect_chance"))*0.005 +
		float64(points["superior_sensors"])*effect.SuperiorSensorsEffect +
		float64(spec.Inscriptions["i11"])*0.02
	sb.CritChance = 0.05 +
		float64(spec.Stat("special_chance"))*0.0018 +
		mags["explosive_punches"] +
		float64(spec.Inscriptions["i4"])*0.0065
	sb.CritDamage = 1.30 +
		float64(spec.Stat("special_damage"))*0.01 +
		float64(points["explosive_punches"])*effect.ExplosivePunchesCritDamage
	sb.AttackInterval = 5 -
		float64(spec.Stat("speed"))*0.03 -
		float64(spec.Inscriptions["i23"])*0.04
	sb.StunSeconds = mags["impeccable_impacts"]
}

// resolveOzzy applies Ozzy's base stat curves.
func resolveOzzy(spec *build.Spec, points map[string]int, mags map[string]float64, sb *StatBlock) {
	hp := spec.Stat("hp")
	pw := spec.Stat("power")
	rg := spec.Stat("regen")

	sb.MaxHP = math.Round(16+float64(hp)*(2+0.03*float64(hp/5))) *
		(1 + mags["soul_of_ares"])
	sb.Power = (2 + float64(pw)*(0.3+0.01*float64(pw/10))) *
		(1 + float64(points["soul_of_ares"])*effect.SoulOfAresPower)
	sb.Regen = (0.1 +
		float64(rg)*(0.05+0.01*float64(rg/30)) +
		float64(points["essence_of_ylith"])*effect.EssenceOfYlithFlat) *
		(1 + mags["essence_of_ylith"])
	sb.DamageReduction = float64(spec.Stat("damage_reduction")) * 0.0035
	sb.EvadeChance = 0.05 + float64(spec.Stat("evade_chance"))*0.0062
	sb.EffectChance = 0.04 + float64(spec.Stat("effect_chance"))*0.0035
	sb.CritChance = 0.05 + float64(spec.Stat("special_chance"))*0.0038
	sb.CritDamage = 1.25 + float64(spec.Stat("special_damage"))*0.01
	sb.AttackInterval = 4 - float64(spec.Stat("speed"))*0.02
	sb.StunSeconds = mags["thousand_needles"]
}

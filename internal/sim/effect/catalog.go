package effect

// Secondary facets of multi-facet effects. The registry magnitude covers an
// effect's primary combat facet; these constants cover the facet folded
// into the resolved stat block.
const (
	// ReviveFraction is the health fraction restored by a
	// death_is_my_companion revive.
	ReviveFraction = 0.8
	// ImpeccableImpactsPower is the flat power granted per point of
	// impeccable_impacts.
	ImpeccableImpactsPower = 2.0
	// SoulOfAresPower is the power multiplier granted per point of
	// soul_of_ares (the registry magnitude is the health facet).
	SoulOfAresPower = 0.002
	// EssenceOfYlithFlat is the flat regen granted per point of
	// essence_of_ylith (the registry magnitude is the percentage facet).
	EssenceOfYlithFlat = 0.03
	// ExplosivePunchesCritDamage is the crit damage granted per point of
	// explosive_punches (the registry magnitude is the crit chance facet).
	ExplosivePunchesCritDamage = 0.08
	// SuperiorSensorsEffect is the effect chance granted per point of
	// superior_sensors (the registry magnitude is the evade facet).
	SuperiorSensorsEffect = 0.012
)

// linear returns a magnitude function of per-point slope per.
func linear(per float64) func(int) float64 {
	return func(points int) float64 { return per * float64(points) }
}

// count returns the invested points unchanged, for charge-style effects.
func count(points int) float64 { return float64(points) }

var borgeRegistry = newRegistry(Borge, []Effect{
	// talents
	{ID: "death_is_my_companion", Trigger: OnHealthThreshold, Magnitude: count,
		Note: "each point is one revive charge; a revive restores 80% of max health"},
	{ID: "life_of_the_hunt", Trigger: OnDamageDealt, Magnitude: linear(0.06)},
	{ID: "unfair_advantage", Trigger: OnAction, Magnitude: linear(0.02),
		Note: "heals this fraction of max health on each kill"},
	{ID: "impeccable_impacts", Trigger: OnAction, Magnitude: linear(0.1),
		Note: "stun seconds per proc; also grants 2 flat power per point"},
	{ID: "omen_of_defeat", Trigger: PassiveStatic, Magnitude: linear(0.08),
		Note: "reduces opponent regeneration by this fraction, capped at 1"},
	{ID: "call_me_lucky_loot", Trigger: PassiveStatic, Magnitude: linear(0.2)},
	{ID: "presence_of_god", Trigger: PassiveStatic, Magnitude: linear(0.04),
		Note: "a boss opens the encounter at this fraction of its max health"},
	{ID: "fires_of_war", Trigger: OnAction, Magnitude: linear(0.1), CooldownSec: 30,
		Approximate: true,
		Note: "in-game formula not fully known; modeled as a flat wind-up " +
			"reduction of 0.1s per point on the attack after a stun proc, " +
			"error bound one full proc's reduction per cooldown window"},

	// attributes
	{ID: "soul_of_ares", Trigger: PassiveStatic, Magnitude: linear(0.01),
		Note: "health facet; power facet is 0.2% per point"},
	{ID: "essence_of_ylith", Trigger: PassiveStatic, Magnitude: linear(0.0075),
		Note: "percentage regen facet; flat facet is 0.03 per point"},
	{ID: "helltouch_barrier", Trigger: OnDamageTaken, Magnitude: linear(0.08),
		Approximate: true,
		Note: "reflects this fraction of post-mitigation damage taken; the " +
			"in-game wind-up refund after a reflect kill is approximated " +
			"by carrying the attacker's leftover wind-up into the next swing"},
	{ID: "lifedrain_inhalers", Trigger: Periodic, Magnitude: linear(0.0008),
		Note: "adds this fraction of missing health to every regen tick"},
	{ID: "spartan_lineage", Trigger: PassiveStatic, Magnitude: linear(0.015)},
	{ID: "explosive_punches", Trigger: PassiveStatic, Magnitude: linear(0.044),
		Note: "crit chance facet; crit damage facet is 0.08 per point"},
	{ID: "timeless_mastery", Trigger: PassiveStatic, Magnitude: linear(0.14),
		Note: "bonus loot fraction on boss kills"},
	{ID: "book_of_baal", Trigger: OnDamageDealt, Magnitude: linear(0.0111)},
	{ID: "superior_sensors", Trigger: PassiveStatic, Magnitude: linear(0.016),
		Note: "evade facet; effect chance facet is 0.012 per point"},

	// mods
	{ID: "trample", Trigger: PassiveStatic, Magnitude: count,
		Note: "crushes a trivially weak non-boss opponent outright"},
})

var ozzyRegistry = newRegistry(Ozzy, []Effect{
	{ID: "thousand_needles", Trigger: OnAction, Magnitude: linear(0.05),
		Note: "stun seconds per proc"},
	{ID: "unfair_advantage", Trigger: OnAction, Magnitude: linear(0.02),
		Note: "heals this fraction of max health on each kill"},
	{ID: "omen_of_defeat", Trigger: PassiveStatic, Magnitude: linear(0.08),
		Note: "reduces opponent regeneration by this fraction, capped at 1"},
	{ID: "call_me_lucky_loot", Trigger: PassiveStatic, Magnitude: linear(0.2)},

	{ID: "soul_of_ares", Trigger: PassiveStatic, Magnitude: linear(0.01),
		Note: "health facet; power facet is 0.2% per point"},
	{ID: "essence_of_ylith", Trigger: PassiveStatic, Magnitude: linear(0.0075),
		Note: "percentage regen facet; flat facet is 0.03 per point"},
})

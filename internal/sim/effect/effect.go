// Package effect catalogs the talent and attribute effects of each hunter
// variant and resolves their point-scaled magnitudes.
//
// Effects are pure data: a trigger class, a magnitude function of invested
// points, and optional cooldown/stack limits. They own no runtime state —
// cooldown timers and stack counters live on the combatant that carries the
// effect, so two concurrent runs can share one registry safely.
package effect

import "fmt"

// Variant identifies a hunter class. Each variant owns its own registry;
// a talent identifier only resolves within its owning variant.
type Variant string

const (
	Borge Variant = "borge"
	Ozzy  Variant = "ozzy"
)

// Valid reports whether v names a known hunter variant.
func (v Variant) Valid() bool { return v == Borge || v == Ozzy }

// Trigger classifies when an effect fires.
type Trigger int

const (
	// PassiveStatic effects are folded into the resolved stat block once
	// per run and never fire during combat.
	PassiveStatic Trigger = iota
	// OnAction fires when the owner lands an attack.
	OnAction
	// OnDamageDealt fires after the owner's damage is applied to a target.
	OnDamageDealt
	// OnDamageTaken fires after the owner receives unmitigated damage.
	OnDamageTaken
	// OnHealthThreshold fires when the owner's health crosses a threshold,
	// in practice the lethal zero-crossing.
	OnHealthThreshold
	// Periodic fires on the owner's regeneration tick.
	Periodic
)

// String returns the trigger label used in trace records.
func (t Trigger) String() string {
	switch t {
	case PassiveStatic:
		return "passive"
	case OnAction:
		return "on-action"
	case OnDamageDealt:
		return "on-damage-dealt"
	case OnDamageTaken:
		return "on-damage-taken"
	case OnHealthThreshold:
		return "on-health-threshold"
	case Periodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Effect is one named, point-scaled talent or attribute effect.
type Effect struct {
	ID      string
	Trigger Trigger
	// Magnitude maps invested points to the effect's primary magnitude.
	// It must be pure, and non-decreasing in points for any effect whose
	// scaling is strictly beneficial.
	Magnitude func(points int) float64
	// CooldownSec is the minimum simulated seconds between firings.
	// Zero means no cooldown.
	CooldownSec float64
	// MaxStacks limits concurrent applications of the effect on one
	// combatant. Zero means unstackable (a re-apply refreshes, never
	// stacks).
	MaxStacks int
	// Approximate marks effects whose in-game formula is not fully known.
	// Note documents the modeling choice and its error bound.
	Approximate bool
	Note        string
}

// UnknownEffectError reports a registry lookup miss: the effect ID does not
// exist in the owning variant's catalog. It indicates a schema/registry
// mismatch and is fatal to the affected build.
type UnknownEffectError struct {
	Variant Variant
	ID      string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("effect: unknown effect %q for variant %q", e.ID, e.Variant)
}

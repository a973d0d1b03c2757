// Package engine implements the discrete-event combat engine: a single
// encounter between the hunter and one stage opponent, driven off a
// time-ordered event queue with all randomness routed through one
// injectable source.
package engine

import (
	"fmt"

	"github.com/cifi-tools/huntersim/internal/sim/rng"
)

// State is the engine's lifecycle state.
type State int

const (
	Ready State = iota
	Running
	Victory
	Defeat
)

// String returns the state label.
func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// DefaultMaxEvents bounds a single encounter. A healthy encounter resolves
// in a few hundred events; hitting the bound means the engine stopped
// converging and is reported as an invariant violation, never masked.
const DefaultMaxEvents = 1_000_000

// InvariantError reports an unrecoverable engine defect with full state
// context for diagnosis. It aborts the affected run only.
type InvariantError struct {
	Reason         string
	Stage          int
	Clock          float64
	Events         int
	HunterHealth   float64
	OpponentHealth float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf(
		"engine: invariant violation at stage %d, t=%.3f after %d events (hunter hp %.2f, opponent hp %.2f): %s",
		e.Stage, e.Clock, e.Events, e.HunterHealth, e.OpponentHealth, e.Reason)
}

// Outcome is the terminal result of one encounter.
type Outcome struct {
	Stage         int
	Victor        Side
	Elapsed       float64 // simulated seconds
	Events        int     // events processed
	HunterDamage  float64 // damage dealt by the hunter
	HunterHealing float64 // healing the hunter received, regen included
	DamageTaken   float64 // damage the hunter received
	Crits         int
	StunProcs     int
	RevivesUsed   int
}

// Engine runs one encounter to its terminal state. It owns both combatant
// states and its event queue exclusively; nothing is shared with any other
// encounter or run.
type Engine struct {
	hunter   *Combatant
	opponent *Combatant
	stage    int
	src      rng.Source
	rec      Recorder // nil disables tracing

	state     State
	clock     float64
	queue     eventQueue
	seq       uint64
	processed int

	// MaxEvents overrides DefaultMaxEvents when set before Run.
	MaxEvents int
}

// New creates an engine in the Ready state for one encounter.
//
// Precondition: both combatants are alive with positive attack intervals;
// src is non-nil.
func New(stage int, hunter, opponent *Combatant, src rng.Source) *Engine {
	return &Engine{
		hunter:   hunter,
		opponent: opponent,
		stage:    stage,
		src:      src,
		state:    Ready,
	}
}

// SetRecorder attaches a trace recorder. Must be called before Run.
func (e *Engine) SetRecorder(rec Recorder) { e.rec = rec }

// State returns the engine's current lifecycle state.
func (e *Engine) State() State { return e.state }

// Run drives the encounter from Ready to Victory or Defeat.
//
// Postcondition: returns the terminal Outcome, or an *InvariantError with
// full state context if the engine detects an internal defect. A fixed
// random source reproduces the encounter bit-for-bit.
func (e *Engine) Run() (Outcome, error) {
	if e.state != Ready {
		return Outcome{}, fmt.Errorf("engine: Run called in state %s, want ready", e.state)
	}
	if err := e.start(); err != nil {
		return Outcome{}, err
	}

	maxEvents := e.MaxEvents
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}

	for e.state == Running {
		ev := e.pop()
		if ev == nil {
			return Outcome{}, e.invariant("event queue drained while running")
		}
		if ev.at < e.clock {
			return Outcome{}, e.invariant(fmt.Sprintf("event time %.3f behind clock %.3f", ev.at, e.clock))
		}
		e.clock = ev.at
		e.processed++
		if e.processed > maxEvents {
			return Outcome{}, e.invariant("event bound exceeded, encounter not converging")
		}

		switch ev.kind {
		case EventActionReady:
			e.handleAction(ev)
		case EventPeriodicTick:
			e.handleTick(ev)
		case EventEffectExpiry:
			e.handleExpiry(ev)
		}
		e.checkTerminal()
	}

	return Outcome{
		Stage:         e.stage,
		Victor:        e.victor(),
		Elapsed:       e.clock,
		Events:        e.processed,
		HunterDamage:  e.hunter.DamageDealt,
		HunterHealing: e.hunter.HealingReceived,
		DamageTaken:   e.hunter.DamageTaken,
		Crits:         e.hunter.Crits,
		StunProcs:     e.hunter.StunProcs,
		RevivesUsed:   e.hunter.RevivesUsed,
	}, nil
}

// start validates the combatants, transitions ready -> running, and seeds
// the queue with each side's first action at its attack interval plus both
// regeneration ticks at t=1.
func (e *Engine) start() error {
	for _, c := range []*Combatant{e.hunter, e.opponent} {
		if c.Interval <= 0 {
			return e.invariant(fmt.Sprintf("%s attack interval %.3f not positive", c.Name, c.Interval))
		}
		if c.StunSeconds < 0 || c.HasteSeconds < 0 || c.HasteCooldown < 0 {
			return e.invariant(fmt.Sprintf("%s has a negative effect duration", c.Name))
		}
		if c.cooldowns == nil {
			c.cooldowns = make(map[string]float64)
		}
	}

	e.state = Running
	e.schedule(e.hunter, e.hunter.Interval)
	e.schedule(e.opponent, e.opponent.Interval)
	e.push(&event{at: 1, kind: EventPeriodicTick, actor: e.hunter})
	e.push(&event{at: 1, kind: EventPeriodicTick, actor: e.opponent})
	return nil
}

// schedule books c's next action delay seconds from now, bumping its
// generation so any earlier pending action goes stale.
func (e *Engine) schedule(c *Combatant, delay float64) {
	c.pendingAt = e.clock + delay
	c.gen++
	e.push(&event{at: c.pendingAt, kind: EventActionReady, actor: c, gen: c.gen})
}

// handleAction resolves a basic action: independent evade and crit checks,
// mitigation, defensive triggers before offensive procs, then the actor's
// next action is rescheduled.
func (e *Engine) handleAction(ev *event) {
	a := ev.actor
	if ev.gen != a.gen {
		return // superseded by a stun reschedule
	}
	if !a.Alive() {
		return
	}

	t := e.target(a)
	e.resolveAttack(a, t)

	next := a.Interval
	if a.hasteArmed {
		next -= a.HasteSeconds
		if next < minSwing {
			next = minSwing
		}
		a.hasteArmed = false
	}
	e.schedule(a, next)
}

// minSwing floors a haste-shortened swing; the game never lets wind-up
// reach zero.
const minSwing = 0.5

// resolveAttack applies one attack from a to t and fires the triggered
// effects: the defender's damage-taken triggers first, then the attacker's
// offensive procs.
func (e *Engine) resolveAttack(a, t *Combatant) {
	if rng.Probability(e.src, t.EvadeChance) {
		t.Evades++
		e.trace(TraceRecord{Time: e.clock, Kind: "evade", Actor: t.Name, Target: a.Name, Health: t.Health})
		return
	}

	dmg := a.Power
	kind := "attack"
	if rng.Probability(e.src, a.CritChance) {
		dmg *= a.CritDamage
		a.Crits++
		kind = "crit"
	}
	final := dmg * (1 - clamp01(t.DamageReduction))
	a.DamageDealt += final
	e.hit(t, final)
	e.trace(TraceRecord{Time: e.clock, Kind: kind, Actor: a.Name, Target: t.Name, Magnitude: final, Health: t.Health})

	// defensive trigger: reflect a fraction of post-mitigation damage
	if t.ReflectFraction > 0 && final > 0 && t.Alive() {
		refl := final * t.ReflectFraction
		e.hit(a, refl)
		e.trace(TraceRecord{Time: e.clock, Kind: "reflect", Actor: t.Name, Target: a.Name, Magnitude: refl, Health: a.Health})
	}

	// offensive procs
	if a.Lifesteal > 0 && final > 0 && a.Alive() {
		if healed := a.Heal(final * a.Lifesteal); healed > 0 {
			e.trace(TraceRecord{Time: e.clock, Kind: "lifesteal", Actor: a.Name, Target: a.Name, Magnitude: healed, Health: a.Health})
		}
	}
	if a.StunSeconds > 0 && t.Alive() && rng.Probability(e.src, a.EffectChance) {
		e.applyStun(a, t)
	}
	if !t.Alive() && a.KillHealFraction > 0 {
		if healed := a.Heal(a.MaxHealth * a.KillHealFraction); healed > 0 {
			e.trace(TraceRecord{Time: e.clock, Kind: "heal", Actor: a.Name, Target: a.Name, Magnitude: healed, Health: a.Health})
		}
	}
}

// hit applies raw damage to c. A lethal hit on a combatant holding revive
// charges consumes one and restores a fraction of max health instead of
// killing.
func (e *Engine) hit(c *Combatant, damage float64) {
	c.ApplyDamage(damage)
	if !c.Alive() && c.RevivesLeft > 0 {
		c.RevivesLeft--
		c.RevivesUsed++
		c.Health = c.MaxHealth * reviveFraction
		e.trace(TraceRecord{Time: e.clock, Kind: "revive", Actor: c.Name, Target: c.Name, Magnitude: c.Health, Health: c.Health})
	}
}

// reviveFraction mirrors effect.ReviveFraction; kept local so the engine
// stays independent of the registry package.
const reviveFraction = 0.8

// applyStun puts a timed stun on t: its pending action slips by the stun
// duration and an expiry event clears the effect.
func (e *Engine) applyStun(a, t *Combatant) {
	d := a.StunSeconds
	a.StunProcs++
	t.stunnedUntil = e.clock + d
	t.pendingAt += d
	t.gen++
	e.push(&event{at: t.pendingAt, kind: EventActionReady, actor: t, gen: t.gen})
	e.push(&event{at: t.stunnedUntil, kind: EventEffectExpiry, actor: t, effectID: "stun"})
	e.trace(TraceRecord{Time: e.clock, Kind: "stun", Actor: a.Name, Target: t.Name, Magnitude: d, Health: t.Health})

	// fires_of_war: the swing after a stun proc winds up faster
	if a.HasteSeconds > 0 && !a.onCooldown("fires_of_war", e.clock) {
		a.hasteArmed = true
		a.startCooldown("fires_of_war", e.clock, a.HasteCooldown)
	}
}

// handleTick applies the combatant's regeneration and books the next tick.
func (e *Engine) handleTick(ev *event) {
	c := ev.actor
	if c.Alive() && c.MissingHealth() > 0 {
		heal := c.Regen
		if c.InhalerFraction > 0 {
			heal += c.InhalerFraction * c.MissingHealth()
		}
		if healed := c.Heal(heal); healed > 0 {
			e.trace(TraceRecord{Time: e.clock, Kind: "regen", Actor: c.Name, Target: c.Name, Magnitude: healed, Health: c.Health})
		}
	}
	e.push(&event{at: e.clock + 1, kind: EventPeriodicTick, actor: c})
}

// handleExpiry clears the named timed effect, restoring any state it held.
func (e *Engine) handleExpiry(ev *event) {
	if ev.effectID == "stun" && ev.actor.stunnedUntil <= e.clock {
		ev.actor.stunnedUntil = 0
		e.trace(TraceRecord{Time: e.clock, Kind: "expiry", Actor: ev.actor.Name, Target: ev.actor.Name, Health: ev.actor.Health})
	}
}

// checkTerminal moves the machine to a terminal state once a side is down.
// The opponent is checked first: a simultaneous zero-crossing resolves in
// the hunter's favor, matching the game's player-acts-first tie rule.
func (e *Engine) checkTerminal() {
	if !e.opponent.Alive() {
		e.state = Victory
		return
	}
	if !e.hunter.Alive() {
		e.state = Defeat
	}
}

// target returns the combatant on the other side.
func (e *Engine) target(c *Combatant) *Combatant {
	if c == e.hunter {
		return e.opponent
	}
	return e.hunter
}

// victor maps the terminal state to a side.
func (e *Engine) victor() Side {
	if e.state == Victory {
		return SideHunter
	}
	return SideOpponent
}

func (e *Engine) trace(r TraceRecord) {
	if e.rec != nil {
		e.rec.Record(r)
	}
}

func (e *Engine) invariant(reason string) *InvariantError {
	return &InvariantError{
		Reason:         reason,
		Stage:          e.stage,
		Clock:          e.clock,
		Events:         e.processed,
		HunterHealth:   e.hunter.Health,
		OpponentHealth: e.opponent.Health,
	}
}

// clamp01 clamps a fraction to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Package runner executes full progressions: the orchestrator drives one
// hunter from stage 1 through successive encounters to defeat or a stage
// ceiling, and the batch layer fans independent runs out over a bounded
// worker pool.
package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cifi-tools/huntersim/internal/sim/engine"
	"github.com/cifi-tools/huntersim/internal/sim/rng"
	"github.com/cifi-tools/huntersim/internal/sim/scaling"
)

// Termination names the condition that ended a run.
type Termination string

const (
	// TerminationDefeat means the hunter died mid-stage.
	TerminationDefeat Termination = "defeat"
	// TerminationCeiling means the run hit the configured stage ceiling.
	TerminationCeiling Termination = "ceiling"
)

// RunResult is the terminal result of one full progression. Results are
// immutable once returned and safe to share across goroutines.
type RunResult struct {
	RunID  uuid.UUID
	Seed   uint64 // batch seed the run's stream was derived from
	Stream uint64 // per-run stream index under the seed

	HighestStage int // last stage entered; the stage of death on defeat
	Termination  Termination
	Elapsed      float64 // cumulative simulated seconds
	Kills        int     // opponents downed, trampled ones included
	BossKills    int

	Loot        float64
	LootPerHour float64 // loot normalized to simulated hours

	DamageDealt     float64
	DamageTaken     float64
	HealingReceived float64
	Crits           int
	StunProcs       int
	RevivesUsed     int
}

// Orchestrator drives one run. It owns its random source and carries the
// persistent combatant fields (revive charges) across encounter
// boundaries; everything else is rebuilt fresh per encounter.
//
// An Orchestrator shares no mutable state with any other run and is not
// safe for concurrent use; batches hand each run its own instance.
type Orchestrator struct {
	sb  *scaling.StatBlock
	src rng.Source

	// Ceiling caps the run at a stage count; 0 or negative means the run
	// only ends on defeat.
	Ceiling int
	// MaxEvents bounds each encounter; 0 uses the engine default.
	MaxEvents int
	// Recorder receives the combat trace of every encounter when set.
	Recorder engine.Recorder

	seed, stream uint64
}

// NewOrchestrator builds a run orchestrator over a resolved stat block.
//
// Precondition: sb came from scaling.Resolve and src is owned exclusively
// by this orchestrator.
func NewOrchestrator(sb *scaling.StatBlock, src rng.Source) *Orchestrator {
	return &Orchestrator{sb: sb, src: src}
}

// Run executes the progression: encounters from stage 1, stage+1 per
// victory, terminating on defeat or the stage ceiling.
//
// Postcondition: returns exactly one RunResult, or the context error if
// cancelled between encounters, or an engine error with the failing stage
// attached. A cancelled run returns no partial result.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	res := &RunResult{
		RunID:  uuid.New(),
		Seed:   o.seed,
		Stream: o.stream,
	}
	revives := o.sb.ReviveCharges

	for stage := 1; ; stage++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if o.Ceiling > 0 && stage > o.Ceiling {
			res.HighestStage = o.Ceiling
			res.Termination = TerminationCeiling
			break
		}
		res.HighestStage = stage

		opponent := engine.NewOpponent(stage, o.sb)

		// trample: a swing that covers the opponent's full health bar
		// clears a regular stage outright. Bosses never trample.
		if o.sb.TrampleLevel > 0 && !scaling.IsBossStage(stage) && o.sb.Power >= opponent.MaxHealth {
			res.Elapsed += o.sb.AttackInterval
			res.DamageDealt += opponent.MaxHealth
			o.award(res, stage)
			continue
		}

		hunter := engine.NewHunter(o.sb)
		hunter.RevivesLeft = revives

		e := engine.New(stage, hunter, opponent, o.src)
		e.MaxEvents = o.MaxEvents
		if o.Recorder != nil {
			e.SetRecorder(o.Recorder)
		}
		out, err := e.Run()
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", res.RunID, err)
		}

		revives = hunter.RevivesLeft
		res.Elapsed += out.Elapsed
		res.DamageDealt += out.HunterDamage
		res.DamageTaken += out.DamageTaken
		res.HealingReceived += out.HunterHealing
		res.Crits += out.Crits
		res.StunProcs += out.StunProcs
		res.RevivesUsed += out.RevivesUsed

		if out.Victor != engine.SideHunter {
			res.Termination = TerminationDefeat
			break
		}
		o.award(res, stage)
	}

	if res.Elapsed > 0 {
		res.LootPerHour = res.Loot / (res.Elapsed / 3600)
	}
	return res, nil
}

// award credits the loot and kill counters for a cleared stage.
func (o *Orchestrator) award(res *RunResult, stage int) {
	loot := scaling.LootForStage(stage) * o.sb.LootMultiplier
	if scaling.IsBossStage(stage) {
		loot *= 1 + o.sb.BossLootBonus
		res.BossKills++
	}
	res.Loot += loot
	res.Kills++
}

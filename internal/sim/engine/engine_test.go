package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cifi-tools/huntersim/internal/sim/engine"
	"github.com/cifi-tools/huntersim/internal/sim/rng"
	"github.com/cifi-tools/huntersim/internal/sim/scaling"
)

// plainHunter returns a hunter with no chance-based stats, so encounters
// built from it resolve identically regardless of the random source.
func plainHunter(health, power, interval float64) *engine.Combatant {
	return &engine.Combatant{
		Name:      "borge",
		Side:      engine.SideHunter,
		MaxHealth: health,
		Health:    health,
		Power:     power,
		Interval:  interval,
	}
}

func plainOpponent(health, power, interval float64) *engine.Combatant {
	return &engine.Combatant{
		Name:      "enemy",
		Side:      engine.SideOpponent,
		MaxHealth: health,
		Health:    health,
		Power:     power,
		Interval:  interval,
	}
}

func run(t *testing.T, hunter, opponent *engine.Combatant) engine.Outcome {
	t.Helper()
	e := engine.New(1, hunter, opponent, rng.NewSeeded(1, 1))
	out, err := e.Run()
	require.NoError(t, err)
	return out
}

func TestRunDefeatAtExpectedTime(t *testing.T) {
	// 100 health against 10 damage every 1.0s: down on the tenth swing.
	hunter := plainHunter(100, 0, 5)
	opponent := plainOpponent(1000, 10, 1)

	out := run(t, hunter, opponent)

	assert.Equal(t, engine.SideOpponent, out.Victor)
	assert.InDelta(t, 10.0, out.Elapsed, 1e-9)
	assert.InDelta(t, 100.0, out.DamageTaken, 1e-9)
	assert.Equal(t, 0.0, hunter.Health)
}

func TestRunVictoryAgainstHarmlessOpponent(t *testing.T) {
	hunter := plainHunter(100, 10, 1)
	opponent := plainOpponent(100, 0, 1)

	out := run(t, hunter, opponent)

	assert.Equal(t, engine.SideHunter, out.Victor)
	assert.InDelta(t, 10.0, out.Elapsed, 1e-9)
	assert.InDelta(t, 100.0, out.HunterDamage, 1e-9)
	assert.Less(t, out.Events, 100)
}

func TestSimultaneousActionsResolveHunterFirst(t *testing.T) {
	// Both sides would land a lethal swing at t=1.0. The hunter's action
	// is ordered first, so the encounter ends in victory.
	hunter := plainHunter(1, 999, 1)
	opponent := plainOpponent(1, 999, 1)

	out := run(t, hunter, opponent)

	assert.Equal(t, engine.SideHunter, out.Victor)
	assert.InDelta(t, 1.0, out.Elapsed, 1e-9)
	assert.InDelta(t, 0.0, out.DamageTaken, 1e-9)
}

func TestStunDelaysOpponentActions(t *testing.T) {
	base := run(t, plainHunter(10, 0, 1), plainOpponent(1e9, 5, 2.5))
	require.Equal(t, engine.SideOpponent, base.Victor)

	stunner := plainHunter(10, 0, 1)
	stunner.EffectChance = 1
	stunner.StunSeconds = 0.5
	stunned := run(t, stunner, plainOpponent(1e9, 5, 2.5))

	require.Equal(t, engine.SideOpponent, stunned.Victor)
	assert.Greater(t, stunned.StunProcs, 0)
	assert.Greater(t, stunned.Elapsed, base.Elapsed,
		"stuns should push the opponent's swings later")
}

func TestHasteShortensSwingAfterStunProc(t *testing.T) {
	hunter := plainHunter(100, 10, 2)
	hunter.EffectChance = 1
	hunter.StunSeconds = 0.1
	hunter.HasteSeconds = 1
	hunter.HasteCooldown = 30
	opponent := plainOpponent(30, 0, 100)

	out := run(t, hunter, opponent)

	// Swings land at t=2 (stun, haste armed), t=3 (hastened, cooldown
	// holds), t=5. Without haste the third swing would land at t=6.
	assert.Equal(t, engine.SideHunter, out.Victor)
	assert.InDelta(t, 5.0, out.Elapsed, 1e-9)
}

func TestReviveConsumesChargeThenDies(t *testing.T) {
	hunter := plainHunter(10, 0, 5)
	hunter.RevivesLeft = 1
	opponent := plainOpponent(1000, 100, 1)

	out := run(t, hunter, opponent)

	assert.Equal(t, engine.SideOpponent, out.Victor)
	assert.Equal(t, 1, out.RevivesUsed)
	assert.Equal(t, 0, hunter.RevivesLeft)
	assert.InDelta(t, 2.0, out.Elapsed, 1e-9, "first lethal swing revives, second ends it")
}

func TestReflectCanWinTheEncounter(t *testing.T) {
	hunter := plainHunter(1000, 0, 50)
	hunter.ReflectFraction = 1
	opponent := plainOpponent(15, 10, 1)

	out := run(t, hunter, opponent)

	assert.Equal(t, engine.SideHunter, out.Victor)
	assert.InDelta(t, 2.0, out.Elapsed, 1e-9)
	assert.InDelta(t, 20.0, out.DamageTaken, 1e-9)
}

func TestLifestealAndRegenHealTheHunter(t *testing.T) {
	hunter := plainHunter(100, 10, 1)
	hunter.Health = 50
	hunter.Lifesteal = 0.5
	hunter.Regen = 5
	opponent := plainOpponent(30, 0, 100)

	out := run(t, hunter, opponent)

	require.Equal(t, engine.SideHunter, out.Victor)
	// Three swings steal 5 each; ticks at t=1 and t=2 restore 5 each.
	// The winning swing ends the encounter before the t=3 tick.
	assert.InDelta(t, 25.0, out.HunterHealing, 1e-9)
	assert.InDelta(t, 75.0, hunter.Health, 1e-9)
}

func TestRegenExtendsOpponentSurvival(t *testing.T) {
	base := run(t, plainHunter(1000, 10, 1), plainOpponent(25, 0, 100))

	regenerating := plainOpponent(25, 0, 100)
	regenerating.Regen = 3
	slow := run(t, plainHunter(1000, 10, 1), regenerating)

	assert.Equal(t, engine.SideHunter, base.Victor)
	assert.Equal(t, engine.SideHunter, slow.Victor)
	assert.Greater(t, slow.Elapsed, base.Elapsed)
}

func TestRunRejectsNonPositiveInterval(t *testing.T) {
	hunter := plainHunter(100, 10, 0)
	e := engine.New(3, hunter, plainOpponent(100, 10, 1), rng.NewSeeded(1, 1))

	_, err := e.Run()

	var inv *engine.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, 3, inv.Stage)
}

func TestRunRejectsSecondCall(t *testing.T) {
	e := engine.New(1, plainHunter(10, 10, 1), plainOpponent(10, 0, 1), rng.NewSeeded(1, 1))
	_, err := e.Run()
	require.NoError(t, err)

	_, err = e.Run()
	assert.Error(t, err)
}

func TestEventBoundReportsStalledEncounter(t *testing.T) {
	// Neither side can deal damage, so the encounter never terminates
	// and the event bound has to catch it.
	e := engine.New(1, plainHunter(100, 0, 1), plainOpponent(100, 0, 1), rng.NewSeeded(1, 1))
	e.MaxEvents = 500

	_, err := e.Run()

	var inv *engine.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Greater(t, inv.Events, 500)
}

// stochasticPair builds an encounter where every chance-based path can
// fire: crits, evades, stun procs, lifesteal and regen on both sides.
func stochasticPair() (*engine.Combatant, *engine.Combatant) {
	hunter := plainHunter(400, 12, 1.2)
	hunter.CritChance = 0.25
	hunter.CritDamage = 1.8
	hunter.EvadeChance = 0.1
	hunter.EffectChance = 0.3
	hunter.StunSeconds = 1
	hunter.Lifesteal = 0.1
	hunter.Regen = 2
	opponent := plainOpponent(500, 9, 1.5)
	opponent.CritChance = 0.2
	opponent.CritDamage = 1.5
	opponent.EvadeChance = 0.08
	opponent.Regen = 1
	return hunter, opponent
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	const seed, stream = 42, 7

	runOnce := func() (engine.Outcome, []engine.TraceRecord) {
		hunter, opponent := stochasticPair()
		e := engine.New(5, hunter, opponent, rng.NewSeeded(seed, stream))
		rec := &engine.MemoryRecorder{}
		e.SetRecorder(rec)
		out, err := e.Run()
		require.NoError(t, err)
		return out, rec.Records()
	}

	out1, trace1 := runOnce()
	out2, trace2 := runOnce()

	assert.Equal(t, out1, out2)
	assert.Equal(t, trace1, trace2)
	assert.NotEmpty(t, trace1)
}

func TestTraceNeverRecordsNegativeHealth(t *testing.T) {
	for stream := uint64(0); stream < 20; stream++ {
		hunter, opponent := stochasticPair()
		e := engine.New(5, hunter, opponent, rng.NewSeeded(99, stream))
		rec := &engine.MemoryRecorder{}
		e.SetRecorder(rec)
		_, err := e.Run()
		require.NoError(t, err)
		for _, r := range rec.Records() {
			require.GreaterOrEqual(t, r.Health, 0.0, "record %+v", r)
		}
	}
}

func TestNewOpponentAppliesStaticHunterEffects(t *testing.T) {
	raw := scaling.StatsForStage(scaling.BossInterval)
	require.True(t, raw.Boss)

	sb := &scaling.StatBlock{OpponentRegenCut: 0.5, BossOpening: 0.2}
	opp := engine.NewOpponent(scaling.BossInterval, sb)

	assert.InDelta(t, raw.Regen*0.5, opp.Regen, 1e-9)
	assert.InDelta(t, raw.Health*0.8, opp.Health, 1e-9)
	assert.InDelta(t, raw.Health, opp.MaxHealth, 1e-9)
	assert.Equal(t, "boss", opp.Name)
}

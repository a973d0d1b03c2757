package effect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cifi-tools/huntersim/internal/sim/effect"
)

func TestForVariant(t *testing.T) {
	for _, v := range []effect.Variant{effect.Borge, effect.Ozzy} {
		reg, err := effect.ForVariant(v)
		require.NoError(t, err)
		assert.Equal(t, v, reg.Variant())
		assert.NotEmpty(t, reg.IDs())
	}
	_, err := effect.ForVariant("gronk")
	assert.Error(t, err)
}

// TestMagnitude_KnownValues pins registry magnitudes against the reference
// per-point rates of the simulated game.
func TestMagnitude_KnownValues(t *testing.T) {
	reg, err := effect.ForVariant(effect.Borge)
	require.NoError(t, err)

	cases := []struct {
		id     string
		points int
		want   float64
	}{
		{"impeccable_impacts", 8, 0.8},
		{"life_of_the_hunt", 3, 0.18},
		{"death_is_my_companion", 2, 2},
		{"omen_of_defeat", 5, 0.4},
		{"call_me_lucky_loot", 1, 0.2},
		{"presence_of_god", 10, 0.4},
		{"helltouch_barrier", 1, 0.08},
		{"lifedrain_inhalers", 9, 0.0072},
		{"spartan_lineage", 2, 0.03},
		{"explosive_punches", 5, 0.22},
		{"book_of_baal", 10, 0.111},
		{"superior_sensors", 5, 0.08},
	}
	for _, tc := range cases {
		got, err := reg.Magnitude(tc.id, tc.points)
		require.NoError(t, err, tc.id)
		assert.InDelta(t, tc.want, got, 1e-9, "%s at %d points", tc.id, tc.points)
	}
}

// TestMagnitude_ZeroPoints verifies every effect is inert at zero points.
func TestMagnitude_ZeroPoints(t *testing.T) {
	for _, v := range []effect.Variant{effect.Borge, effect.Ozzy} {
		reg, err := effect.ForVariant(v)
		require.NoError(t, err)
		for _, id := range reg.IDs() {
			got, err := reg.Magnitude(id, 0)
			require.NoError(t, err)
			assert.Zero(t, got, "%s/%s must be inert at 0 points", v, id)
		}
	}
}

// TestMagnitude_NonDecreasing is the beneficial-scaling property: more
// invested points never yields a smaller magnitude.
func TestMagnitude_NonDecreasing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		variant := rapid.SampledFrom([]effect.Variant{effect.Borge, effect.Ozzy}).Draw(rt, "variant")
		reg, err := effect.ForVariant(variant)
		require.NoError(rt, err)

		id := rapid.SampledFrom(reg.IDs()).Draw(rt, "effect")
		p1 := rapid.IntRange(0, 200).Draw(rt, "p1")
		p2 := rapid.IntRange(p1, 400).Draw(rt, "p2")

		m1, err := reg.Magnitude(id, p1)
		require.NoError(rt, err)
		m2, err := reg.Magnitude(id, p2)
		require.NoError(rt, err)
		assert.LessOrEqual(rt, m1, m2, "%s/%s: magnitude(%d) > magnitude(%d)", variant, id, p1, p2)
	})
}

// TestCrossVariantLookupFails verifies a talent only resolves within its
// owning variant.
func TestCrossVariantLookupFails(t *testing.T) {
	ozzy, err := effect.ForVariant(effect.Ozzy)
	require.NoError(t, err)

	_, err = ozzy.Magnitude("impeccable_impacts", 3)
	require.Error(t, err)

	var unknown *effect.UnknownEffectError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, effect.Ozzy, unknown.Variant)
	assert.Equal(t, "impeccable_impacts", unknown.ID)
	assert.Contains(t, unknown.Error(), "impeccable_impacts")
}

// TestApproximateEffectsDocumented verifies every declared-approximate
// effect carries a note describing the modeling choice.
func TestApproximateEffectsDocumented(t *testing.T) {
	reg, err := effect.ForVariant(effect.Borge)
	require.NoError(t, err)

	approx := 0
	for _, id := range reg.IDs() {
		e, err := reg.Get(id)
		require.NoError(t, err)
		if e.Approximate {
			approx++
			assert.NotEmpty(t, e.Note, "approximate effect %s must document its error bound", id)
		}
	}
	assert.Equal(t, 2, approx, "fires_of_war and helltouch_barrier are the declared approximations")
}

package build

import (
	"fmt"

	"github.com/cifi-tools/huntersim/internal/sim/effect"
)

// Version is the build document schema version this loader validates
// against. Documents are rejected wholesale on any field drift, so a
// schema change here is a version bump, not a silent migration.
const Version = "v1"

// FieldSpec is one allocatable field of a build section: its name and the
// maximum points/levels the game allows in it.
type FieldSpec struct {
	Name string
	Max  int
}

// Schema is the fixed, versioned field set of one class variant's build
// documents. Every section must contain exactly the named fields.
type Schema struct {
	Variant      effect.Variant
	Stats        []FieldSpec
	Talents      []FieldSpec
	Attributes   []FieldSpec
	Mods         []FieldSpec
	Inscriptions []FieldSpec
	Relics       []FieldSpec
}

// statFields is shared by both variants: the nine base stat upgrades.
var statFields = []FieldSpec{
	{Name: "hp", Max: 999},
	{Name: "power", Max: 999},
	{Name: "regen", Max: 999},
	{Name: "damage_reduction", Max: 999},
	{Name: "evade_chance", Max: 999},
	{Name: "effect_chance", Max: 999},
	{Name: "special_chance", Max: 999},
	{Name: "special_damage", Max: 999},
	{Name: "speed", Max: 100},
}

var borgeSchema = &Schema{
	Variant: effect.Borge,
	Stats:   statFields,
	Talents: []FieldSpec{
		{Name: "death_is_my_companion", Max: 5},
		{Name: "life_of_the_hunt", Max: 10},
		{Name: "unfair_advantage", Max: 10},
		{Name: "impeccable_impacts", Max: 15},
		{Name: "omen_of_defeat", Max: 10},
		{Name: "call_me_lucky_loot", Max: 10},
		{Name: "presence_of_god", Max: 10},
		{Name: "fires_of_war", Max: 10},
	},
	Attributes: []FieldSpec{
		{Name: "soul_of_ares", Max: 20},
		{Name: "essence_of_ylith", Max: 20},
		{Name: "helltouch_barrier", Max: 10},
		{Name: "lifedrain_inhalers", Max: 10},
		{Name: "spartan_lineage", Max: 10},
		{Name: "explosive_punches", Max: 10},
		{Name: "timeless_mastery", Max: 5},
		{Name: "book_of_baal", Max: 10},
		{Name: "superior_sensors", Max: 10},
	},
	Mods: []FieldSpec{
		{Name: "trample", Max: 1},
	},
	Inscriptions: []FieldSpec{
		{Name: "i3", Max: 50},
		{Name: "i4", Max: 50},
		{Name: "i11", Max: 50},
		{Name: "i13", Max: 50},
		{Name: "i23", Max: 5},
		{Name: "i24", Max: 10},
		{Name: "i27", Max: 50},
	},
	Relics: []FieldSpec{
		{Name: "disk_of_dawn", Max: 3},
	},
}

var ozzySchema = &Schema{
	Variant: effect.Ozzy,
	Stats:   statFields,
	Talents: []FieldSpec{
		{Name: "thousand_needles", Max: 15},
		{Name: "unfair_advantage", Max: 10},
		{Name: "omen_of_defeat", Max: 10},
		{Name: "call_me_lucky_loot", Max: 10},
	},
	Attributes: []FieldSpec{
		{Name: "soul_of_ares", Max: 20},
		{Name: "essence_of_ylith", Max: 20},
	},
	Mods:         nil,
	Inscriptions: nil,
	Relics:       nil,
}

// SchemaFor returns the versioned schema for a class variant.
func SchemaFor(v effect.Variant) (*Schema, error) {
	switch v {
	case effect.Borge:
		return borgeSchema, nil
	case effect.Ozzy:
		return ozzySchema, nil
	default:
		return nil, fmt.Errorf("build: no schema for hunter variant %q", v)
	}
}

// sections pairs each schema section with its document map for validation
// and template generation.
func (s *Schema) sections() []struct {
	name   string
	fields []FieldSpec
} {
	return []struct {
		name   string
		fields []FieldSpec
	}{
		{"stats", s.Stats},
		{"talents", s.Talents},
		{"attributes", s.Attributes},
		{"mods", s.Mods},
		{"inscriptions", s.Inscriptions},
		{"relics", s.Relics},
	}
}

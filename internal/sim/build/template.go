package build

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cifi-tools/huntersim/internal/sim/effect"
)

// Template returns a blank, schema-complete Spec for the given variant:
// every field present, every value zero. A template round-trips through
// Load unchanged.
func Template(v effect.Variant) (*Spec, error) {
	schema, err := SchemaFor(v)
	if err != nil {
		return nil, err
	}
	zeroed := func(fields []FieldSpec) map[string]int {
		m := make(map[string]int, len(fields))
		for _, f := range fields {
			m[f.Name] = 0
		}
		return m
	}
	return &Spec{
		Meta:         Meta{Hunter: string(v)},
		Stats:        zeroed(schema.Stats),
		Talents:      zeroed(schema.Talents),
		Attributes:   zeroed(schema.Attributes),
		Mods:         zeroed(schema.Mods),
		Inscriptions: zeroed(schema.Inscriptions),
		Relics:       zeroed(schema.Relics),
	}, nil
}

// WriteTemplate writes a blank build document for variant v to w.
func WriteTemplate(w io.Writer, v effect.Variant) error {
	tpl, err := Template(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# blank %s build (schema %s)\n", v, Version); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tpl); err != nil {
		return fmt.Errorf("build: encoding template: %w", err)
	}
	return enc.Close()
}

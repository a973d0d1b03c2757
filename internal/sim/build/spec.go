// Package build defines the hunter build document: the schema each class
// variant's builds must match, the strict loader that validates documents
// against it, and the blank-template exporter that shares the same schema.
package build

import (
	"fmt"
	"strings"

	"github.com/cifi-tools/huntersim/internal/sim/effect"
)

// Meta identifies the build's class variant.
type Meta struct {
	Hunter string `yaml:"hunter"`
}

// Spec is one immutable hunter build: integer levels for base stat
// upgrades and integer point allocations for talents, attributes, mods,
// inscriptions, and relics. Every key must match the versioned schema of
// the chosen variant — unknown or missing keys are rejected, never
// defaulted.
type Spec struct {
	Meta         Meta           `yaml:"meta"`
	Stats        map[string]int `yaml:"stats"`
	Talents      map[string]int `yaml:"talents"`
	Attributes   map[string]int `yaml:"attributes"`
	Mods         map[string]int `yaml:"mods"`
	Inscriptions map[string]int `yaml:"inscriptions"`
	Relics       map[string]int `yaml:"relics"`
}

// Variant returns the build's class variant tag.
func (s *Spec) Variant() effect.Variant {
	return effect.Variant(strings.ToLower(s.Meta.Hunter))
}

// Stat returns the upgrade level for the named base stat.
//
// Precondition: s passed Validate, so every schema stat key is present.
func (s *Spec) Stat(name string) int { return s.Stats[name] }

// Problem describes one schema violation in a build document.
type Problem struct {
	Section string // "meta", "stats", "talents", ...
	Field   string
	Reason  string
	// Suggestion is the closest known field name for unknown-field
	// problems, empty otherwise.
	Suggestion string
}

func (p Problem) String() string {
	s := fmt.Sprintf("%s.%s: %s", p.Section, p.Field, p.Reason)
	if p.Suggestion != "" {
		s += fmt.Sprintf(" (did you mean %q?)", p.Suggestion)
	}
	return s
}

// SchemaError reports every way a build document deviates from its
// variant's schema. It is fatal to the affected build but never to a batch
// of otherwise-valid builds.
type SchemaError struct {
	Path     string // source path, empty for in-memory documents
	Problems []Problem
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	where := e.Path
	if where == "" {
		where = "build document"
	}
	return fmt.Sprintf("build: %s: %s", where, strings.Join(parts, "; "))
}

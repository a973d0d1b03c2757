package build

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a build document from path.
//
// Postcondition: returns a schema-valid *Spec, or a *SchemaError naming
// every offending field. An I/O or YAML syntax failure is returned as a
// plain wrapped error.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("build: reading %q: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			se.Path = path
			return nil, se
		}
		return nil, fmt.Errorf("build: parsing %q: %w", path, err)
	}
	return spec, nil
}

// Parse decodes and validates a build document held in memory.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks s against the versioned schema of its variant.
//
// Postcondition: returns nil, or a *SchemaError listing every unknown,
// missing, or out-of-range field. Unknown fields carry a closest-match
// suggestion when one is near enough.
func (s *Spec) Validate() error {
	var problems []Problem

	if !s.Variant().Valid() {
		problems = append(problems, Problem{
			Section: "meta", Field: "hunter",
			Reason: fmt.Sprintf("unknown hunter variant %q, want one of [borge, ozzy]", s.Meta.Hunter),
		})
		return &SchemaError{Problems: problems}
	}

	schema, err := SchemaFor(s.Variant())
	if err != nil {
		return err
	}

	docSections := map[string]map[string]int{
		"stats":        s.Stats,
		"talents":      s.Talents,
		"attributes":   s.Attributes,
		"mods":         s.Mods,
		"inscriptions": s.Inscriptions,
		"relics":       s.Relics,
	}
	for _, sec := range schema.sections() {
		problems = append(problems, checkSection(sec.name, sec.fields, docSections[sec.name])...)
	}

	if len(problems) > 0 {
		return &SchemaError{Problems: problems}
	}
	return nil
}

// checkSection diffs one document section against its schema field list.
func checkSection(section string, fields []FieldSpec, doc map[string]int) []Problem {
	var problems []Problem

	known := make(map[string]FieldSpec, len(fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		known[f.Name] = f
		names = append(names, f.Name)
	}

	for _, f := range fields {
		v, ok := doc[f.Name]
		if !ok {
			problems = append(problems, Problem{
				Section: section, Field: f.Name, Reason: "missing required field",
			})
			continue
		}
		if v < 0 {
			problems = append(problems, Problem{
				Section: section, Field: f.Name,
				Reason: fmt.Sprintf("value %d is negative", v),
			})
		} else if v > f.Max {
			problems = append(problems, Problem{
				Section: section, Field: f.Name,
				Reason: fmt.Sprintf("value %d exceeds maximum %d", v, f.Max),
			})
		}
	}

	extras := make([]string, 0)
	for name := range doc {
		if _, ok := known[name]; !ok {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		problems = append(problems, Problem{
			Section: section, Field: name,
			Reason:     "unknown field",
			Suggestion: closestName(name, names),
		})
	}
	return problems
}

// closestName returns the known field name nearest to input, or "" when
// nothing is close enough to be a plausible typo.
func closestName(input string, candidates []string) string {
	best, bestDist := "", len(input)
	for _, cand := range candidates {
		d := levenshtein.ComputeDistance(input, cand)
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	// A distance beyond a third of the name is a different word, not a typo.
	if best == "" || bestDist > len(best)/3+1 {
		return ""
	}
	return best
}

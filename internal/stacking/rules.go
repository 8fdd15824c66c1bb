// Package stacking selects a non-conflicting combination of scholarships that
// maximizes total award value, constrained by per-funding-source
// compatibility rules.
package stacking

import (
	_ "embed"
	"fmt"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

//go:embed rules.yaml
var rulesYAML []byte

// TypeRules describes what a funding-source type may be combined with.
type TypeRules struct {
	CanStackWith    []model.ScholarshipType `yaml:"can_stack_with"`
	CannotStackWith []model.ScholarshipType `yaml:"cannot_stack_with"`
	Rules           []string                `yaml:"rules"`
}

// RuleTable maps each scholarship type to its stacking constraints. It is
// immutable after load.
type RuleTable map[model.ScholarshipType]TypeRules

// LoadRules parses a rule table from YAML and validates that every known type
// has an entry and every referenced type is known.
func LoadRules(data []byte) (RuleTable, error) {
	var table RuleTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, eris.Wrap(err, "stacking: parse rule table")
	}

	for _, typ := range model.KnownTypes {
		entry, ok := table[typ]
		if !ok {
			return nil, eris.Errorf("stacking: rule table missing type %q", typ)
		}
		for _, ref := range append(entry.CanStackWith, entry.CannotStackWith...) {
			if _, ok := table[ref]; !ok {
				return nil, eris.Errorf("stacking: type %q references unknown type %q", typ, ref)
			}
		}
	}
	return table, nil
}

// DefaultRules returns the embedded rule table. The embedded YAML is
// validated by tests, so a parse failure here is a build defect.
func DefaultRules() RuleTable {
	table, err := LoadRules(rulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rule table invalid: %v", err))
	}
	return table
}

// Forbids reports whether either side's rules forbid combining the two types.
// The check is symmetric.
func (t RuleTable) Forbids(a, b model.ScholarshipType) bool {
	for _, x := range t[a].CannotStackWith {
		if x == b {
			return true
		}
	}
	for _, x := range t[b].CannotStackWith {
		if x == a {
			return true
		}
	}
	return false
}

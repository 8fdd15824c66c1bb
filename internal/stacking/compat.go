package stacking

import (
	"fmt"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

// Conflict records one forbidden pairing within a selection.
type Conflict struct {
	Scholarship1 string `json:"scholarship1"`
	Scholarship2 string `json:"scholarship2"`
	Reason       string `json:"reason"`
}

// Compatibility is the result of checking a hand-picked selection.
type Compatibility struct {
	Compatible  bool       `json:"compatible"`
	Conflicts   []Conflict `json:"conflicts"`
	Suggestions []string   `json:"suggestions"`
}

// AnalyzeCompatibility runs a pairwise scan over the selection, recording a
// conflict whenever either side's rules forbid the other's type.
func (o *Optimizer) AnalyzeCompatibility(selected []model.Scholarship) Compatibility {
	result := Compatibility{Conflicts: []Conflict{}}

	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			s1, s2 := selected[i], selected[j]
			if o.rules.Forbids(s1.Type, s2.Type) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Scholarship1: s1.Name,
					Scholarship2: s2.Name,
					Reason:       fmt.Sprintf("%s and %s scholarships typically cannot be combined", s1.Type, s2.Type),
				})
			}
		}
	}

	result.Compatible = len(result.Conflicts) == 0
	if result.Compatible {
		result.Suggestions = []string{
			"Your selected scholarships appear to be compatible",
			"Ensure you disclose all scholarships when applying as required",
		}
	} else {
		result.Suggestions = []string{
			"Consider applying for only one government scholarship (central or state)",
			"Focus on private and corporate scholarships to supplement government aid",
		}
	}
	return result
}

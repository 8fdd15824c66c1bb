// Package match implements scholarship eligibility checks, fit scoring, and
// near-miss analysis over in-memory scholarship and profile data.
package match

import (
	"github.com/vidyasetu/scholar-cli/internal/model"
)

// Eligible reports whether the profile passes the scholarship's stated
// constraints. A nil profile passes everything (anonymous browsing shows the
// full feed). Undeclared profile fields are treated as "no constraint": a
// profile with no declared income passes every income ceiling. That leniency
// is deliberate and covered by tests.
//
// Minimum percentage is a hard gate here, the one place the rule lives.
// Callers must not re-check it per endpoint.
func Eligible(s model.Scholarship, p *model.Profile) bool {
	if p == nil {
		return true
	}

	cats := s.Eligibility.Categories
	if len(cats) > 0 && !model.HasWildcard(cats) {
		if p.Category != "" && !model.ContainsFold(cats, p.Category) {
			return false
		}
	}

	if limit := s.Eligibility.IncomeLimit; limit > 0 && p.Income > 0 && p.Income > limit {
		return false
	}

	states := s.Eligibility.States
	if len(states) > 0 && !model.HasWildcard(states) {
		if p.State != "" && !model.ContainsFold(states, p.State) {
			return false
		}
	}

	if min := s.Eligibility.MinPercentage; min > 0 && p.Percentage > 0 && p.Percentage < min {
		return false
	}

	return true
}

// FilterEligible returns the subset of scholarships the profile qualifies for,
// preserving input order.
func FilterEligible(scholarships []model.Scholarship, p *model.Profile) []model.Scholarship {
	out := make([]model.Scholarship, 0, len(scholarships))
	for _, s := range scholarships {
		if Eligible(s, p) {
			out = append(out, s)
		}
	}
	return out
}

package stacking

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/config"
	"github.com/vidyasetu/scholar-cli/internal/model"
)

// Plan is the selected combination of awards for one applicant.
type Plan struct {
	PrimaryCentral   *model.Scholarship  `json:"primaryCentral,omitempty"`
	StateScholarship *model.Scholarship  `json:"stateScholarship,omitempty"`
	PrivateOptions   []model.Scholarship `json:"privateOptions"`
	TotalPotential   model.AmountRange   `json:"totalPotential"`
	Rules            []string            `json:"stackingRules"`
	Recommendations  []string            `json:"recommendations,omitempty"`
	Warnings         []string            `json:"warnings"`
}

// Selected returns every scholarship contributing to TotalPotential.
func (p *Plan) Selected() []model.Scholarship {
	var out []model.Scholarship
	if p.PrimaryCentral != nil {
		out = append(out, *p.PrimaryCentral)
	}
	if p.StateScholarship != nil {
		out = append(out, *p.StateScholarship)
	}
	return append(out, p.PrivateOptions...)
}

// Optimizer builds stacking plans against a rule table.
type Optimizer struct {
	rules RuleTable
	cfg   config.StackingConfig
}

// NewOptimizer creates an Optimizer. A nil table uses the embedded defaults.
func NewOptimizer(rules RuleTable, cfg config.StackingConfig) *Optimizer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Optimizer{rules: rules, cfg: cfg}
}

// Optimize partitions the eligible scholarships by funding source and picks a
// non-conflicting selection: the highest-value central anchors the plan; a
// state award is only taken when no central was, otherwise it is dropped with
// a warning naming both sides; private, corporate and college awards fill the
// remaining slots up to the configured caps. TotalPotential sums only what
// was actually selected.
func (o *Optimizer) Optimize(eligible []model.Scholarship, p *model.Profile) *Plan {
	plan := &Plan{
		PrivateOptions: []model.Scholarship{},
		Rules:          []string{},
		Warnings:       []string{},
	}

	buckets := o.partition(eligible)

	if central := buckets[model.TypeCentral]; len(central) > 0 {
		best := central[0]
		plan.PrimaryCentral = &best
		plan.TotalPotential = plan.TotalPotential.Add(best.Amount)
		plan.Rules = append(plan.Rules, o.rules[model.TypeCentral].Rules...)
	}

	if candidates := o.stateCandidates(buckets[model.TypeState], p); len(candidates) > 0 {
		best := candidates[0]
		if plan.PrimaryCentral == nil {
			plan.StateScholarship = &best
			plan.TotalPotential = plan.TotalPotential.Add(best.Amount)
			plan.Rules = append(plan.Rules, o.rules[model.TypeState].Rules...)
		} else {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf(
				"State scholarship %q cannot be combined with central scholarship %q",
				best.Name, plan.PrimaryCentral.Name,
			))
		}
	}

	for _, pick := range []struct {
		typ model.ScholarshipType
		cap int
	}{
		{model.TypePrivate, o.cfg.MaxPrivate},
		{model.TypeCorporate, o.cfg.MaxCorporate},
		{model.TypeCollege, o.cfg.MaxCollege},
	} {
		for _, s := range top(stackableOnly(buckets[pick.typ]), pick.cap) {
			plan.PrivateOptions = append(plan.PrivateOptions, s)
			plan.TotalPotential = plan.TotalPotential.Add(s.Amount)
		}
	}

	return plan
}

// partition groups scholarships by type, each bucket sorted by mean award
// value descending. Records outside the known enum are counted and skipped.
func (o *Optimizer) partition(scholarships []model.Scholarship) map[model.ScholarshipType][]model.Scholarship {
	buckets := make(map[model.ScholarshipType][]model.Scholarship, len(model.KnownTypes))
	uncategorized := 0
	for _, s := range scholarships {
		if _, ok := o.rules[s.Type]; !ok {
			uncategorized++
			continue
		}
		buckets[s.Type] = append(buckets[s.Type], s)
	}
	if uncategorized > 0 {
		zap.L().Warn("stacking: skipped uncategorized scholarships",
			zap.Int("count", uncategorized),
		)
	}
	for typ := range buckets {
		sortByValue(buckets[typ])
	}
	return buckets
}

// stateCandidates filters state awards to those open to the applicant's state.
func (o *Optimizer) stateCandidates(states []model.Scholarship, p *model.Profile) []model.Scholarship {
	var out []model.Scholarship
	for _, s := range states {
		if model.HasWildcard(s.Eligibility.States) {
			out = append(out, s)
			continue
		}
		if p != nil && p.State != "" && model.ContainsFold(s.Eligibility.States, p.State) {
			out = append(out, s)
		}
	}
	return out
}

func stackableOnly(scholarships []model.Scholarship) []model.Scholarship {
	out := make([]model.Scholarship, 0, len(scholarships))
	for _, s := range scholarships {
		if s.Stackable {
			out = append(out, s)
		}
	}
	return out
}

func sortByValue(scholarships []model.Scholarship) {
	sort.SliceStable(scholarships, func(i, j int) bool {
		return scholarships[i].Amount.Mean() > scholarships[j].Amount.Mean()
	})
}

func top(scholarships []model.Scholarship, n int) []model.Scholarship {
	if n <= 0 || len(scholarships) == 0 {
		return nil
	}
	if len(scholarships) > n {
		return scholarships[:n]
	}
	return scholarships
}

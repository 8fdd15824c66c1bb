package match

import (
	"sort"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

// Result pairs a scholarship with its ranking signals.
type Result struct {
	Scholarship        model.Scholarship `json:"scholarship"`
	MatchScore         int               `json:"matchScore"`
	SuccessProbability int               `json:"successProbability"`
}

// defaultApprovalRate substitutes for scholarships with no published stats.
const defaultApprovalRate = 40

// Score computes the 0-100 match score and 10-90 success probability for a
// scholarship/profile pair. Both are cheap linear ranking heuristics, not
// calibrated probabilities.
func Score(s model.Scholarship, p *model.Profile) Result {
	return Result{
		Scholarship:        s,
		MatchScore:         matchScore(s, p),
		SuccessProbability: successProbability(s, p),
	}
}

// matchScore starts at a neutral 50 and adds fixed bonuses per matching
// dimension plus a competition bonus (easier pools rank higher).
func matchScore(s model.Scholarship, p *model.Profile) int {
	if p == nil {
		return 50
	}

	score := 50

	cats := s.Eligibility.Categories
	if model.HasWildcard(cats) || len(cats) == 0 ||
		(p.Category != "" && model.ContainsFold(cats, p.Category)) {
		score += 15
	}

	if limit := s.Eligibility.IncomeLimit; limit == 0 || (p.Income > 0 && p.Income <= limit) {
		score += 15
	}

	states := s.Eligibility.States
	if model.HasWildcard(states) || len(states) == 0 ||
		(p.State != "" && model.ContainsFold(states, p.State)) {
		score += 10
	}

	switch s.CompetitionLevel {
	case model.CompetitionLow:
		score += 10
	case model.CompetitionMedium:
		score += 5
	}

	return clamp(score, 0, 100)
}

// successProbability starts from the historical approval rate, shifts by
// competition level, and rewards profile completeness.
func successProbability(s model.Scholarship, p *model.Profile) int {
	rate := defaultApprovalRate
	if s.Stats != nil && s.Stats.ApprovalRate > 0 {
		rate = int(s.Stats.ApprovalRate)
	}

	switch s.CompetitionLevel {
	case model.CompetitionLow:
		rate += 15
	case model.CompetitionHigh:
		rate -= 15
	}

	rate += p.CompletedFields() * 3

	return clamp(rate, 10, 90)
}

// Rank scores every eligible scholarship and returns results sorted by match
// score descending, capped at limit (0 = no cap).
func Rank(scholarships []model.Scholarship, p *model.Profile, limit int) []Result {
	eligible := FilterEligible(scholarships, p)
	results := make([]Result, 0, len(eligible))
	for _, s := range eligible {
		results = append(results, Score(s, p))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

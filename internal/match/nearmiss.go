package match

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vidyasetu/scholar-cli/internal/config"
	"github.com/vidyasetu/scholar-cli/internal/model"
)

// ErrProfileRequired is returned when an operation needs a declared profile.
var ErrProfileRequired = eris.New("match: profile required")

// Near-miss criteria names, reported so the applicant can see what to fix.
const (
	CriterionCategory   = "category"
	CriterionIncome     = "income"
	CriterionPercentage = "percentage"
	CriterionState      = "state"
)

// NearMiss describes a scholarship the applicant almost qualifies for.
type NearMiss struct {
	Scholarship     model.Scholarship `json:"scholarship"`
	MatchPercentage float64           `json:"matchPercentage"`
	CriteriaMatched int               `json:"criteriaMatched"`
	TotalCriteria   int               `json:"totalCriteria"`
	MissedCriteria  []string          `json:"missedCriteria"`
	Explanation     []string          `json:"explanation,omitempty"`
}

// Explainer produces applicant-facing guidance for a single near miss. It is
// best-effort enrichment; implementations must return a fallback rather than
// an error for degraded upstream services.
type Explainer interface {
	ExplainNearMiss(ctx context.Context, p model.Profile, nm NearMiss) ([]string, error)
}

// NearMisses finds scholarships whose criteria-match percentage falls inside
// the configured band: neither clearly out of reach nor already qualified.
// The band is inclusive on both ends. Results come back sorted with the
// closest-to-qualifying first, capped at cfg.Limit before any enrichment so
// external fan-out stays bounded.
func NearMisses(scholarships []model.Scholarship, p *model.Profile, cfg config.NearMissConfig) ([]NearMiss, error) {
	if p == nil {
		return nil, ErrProfileRequired
	}

	misses := make([]NearMiss, 0)
	for _, s := range scholarships {
		nm := evaluateCriteria(s, p)
		if nm.MatchPercentage >= cfg.MinPct && nm.MatchPercentage <= cfg.MaxPct {
			misses = append(misses, nm)
		}
	}

	sort.SliceStable(misses, func(i, j int) bool {
		return misses[i].MatchPercentage > misses[j].MatchPercentage
	})

	if cfg.Limit > 0 && len(misses) > cfg.Limit {
		misses = misses[:cfg.Limit]
	}
	return misses, nil
}

// evaluateCriteria runs the four binary checks. Unlike Eligible, these are
// strict: an undeclared profile field counts as a miss, since the point is to
// show the applicant exactly what stands between them and the award.
func evaluateCriteria(s model.Scholarship, p *model.Profile) NearMiss {
	nm := NearMiss{Scholarship: s, TotalCriteria: 4}

	cats := s.Eligibility.Categories
	if model.HasWildcard(cats) || len(cats) == 0 || model.ContainsFold(cats, p.Category) {
		nm.CriteriaMatched++
	} else {
		nm.MissedCriteria = append(nm.MissedCriteria, CriterionCategory)
	}

	if limit := s.Eligibility.IncomeLimit; limit == 0 || p.Income <= limit {
		nm.CriteriaMatched++
	} else {
		nm.MissedCriteria = append(nm.MissedCriteria, CriterionIncome)
	}

	if p.Percentage >= s.Eligibility.MinPercentage {
		nm.CriteriaMatched++
	} else {
		nm.MissedCriteria = append(nm.MissedCriteria, CriterionPercentage)
	}

	states := s.Eligibility.States
	if model.HasWildcard(states) || len(states) == 0 || model.ContainsFold(states, p.State) {
		nm.CriteriaMatched++
	} else {
		nm.MissedCriteria = append(nm.MissedCriteria, CriterionState)
	}

	nm.MatchPercentage = float64(nm.CriteriaMatched) / float64(nm.TotalCriteria) * 100
	return nm
}

// Explain enriches each near miss with generated guidance, fanning out one
// call per item in parallel. Enrichment failures degrade to an empty
// explanation; they never fail the batch.
func Explain(ctx context.Context, explainer Explainer, p model.Profile, misses []NearMiss) []NearMiss {
	if explainer == nil {
		return misses
	}

	g, ctx := errgroup.WithContext(ctx)
	out := make([]NearMiss, len(misses))
	for i, nm := range misses {
		out[i] = nm
		g.Go(func() error {
			lines, err := explainer.ExplainNearMiss(ctx, p, nm)
			if err != nil {
				zap.L().Warn("match: near-miss explanation failed",
					zap.String("scholarship", nm.Scholarship.ID),
					zap.Error(err),
				)
				return nil
			}
			out[i].Explanation = lines
			return nil
		})
	}
	_ = g.Wait()
	return out
}

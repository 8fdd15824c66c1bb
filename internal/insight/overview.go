// Package insight aggregates scholarship data into dashboard analytics and
// market intelligence. All functions are pure; the clock is injected.
package insight

import (
	"math"
	"sort"
	"time"

	"github.com/vidyasetu/scholar-cli/internal/match"
	"github.com/vidyasetu/scholar-cli/internal/model"
)

// deadlineWindow is how far ahead the overview looks for closing scholarships.
const deadlineWindow = 30 * 24 * time.Hour

// maxUpcomingDeadlines caps the deadline list in the overview.
const maxUpcomingDeadlines = 5

// UpcomingDeadline is one soon-closing scholarship in the overview.
type UpcomingDeadline struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Deadline time.Time         `json:"deadline"`
	Amount   model.AmountRange `json:"amount"`
	DaysLeft int               `json:"daysLeft"`
}

// ApplicationTally breaks applications down by status.
type ApplicationTally struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Overview is the per-user dashboard summary.
type Overview struct {
	TotalScholarships      int                              `json:"totalScholarships"`
	MatchedScholarships    int                              `json:"matchedScholarships"`
	SavedScholarships      int                              `json:"savedScholarships"`
	AppliedScholarships    int                              `json:"appliedScholarships"`
	SuccessfulApplications int                              `json:"successfulApplications"`
	TotalPotentialValue    int64                            `json:"totalPotentialValue"`
	ProfileCompleteness    int                              `json:"profileCompleteness"`
	UpcomingDeadlines      []UpcomingDeadline               `json:"upcomingDeadlines"`
	TypeBreakdown          map[model.ScholarshipType]int    `json:"typeBreakdown"`
	CompetitionBreakdown   map[model.CompetitionLevel]int   `json:"competitionBreakdown"`
	Applications           ApplicationTally                 `json:"applicationStats"`
}

// BuildOverview computes the dashboard summary for one user from fully
// materialized inputs.
func BuildOverview(
	scholarships []model.Scholarship,
	p *model.Profile,
	saved []model.SavedScholarship,
	applications []model.Application,
	now time.Time,
) Overview {
	matched := match.FilterEligible(scholarships, p)

	ov := Overview{
		TotalScholarships:    len(scholarships),
		MatchedScholarships:  len(matched),
		SavedScholarships:    len(saved),
		AppliedScholarships:  len(applications),
		ProfileCompleteness:  p.Completeness(),
		UpcomingDeadlines:    []UpcomingDeadline{},
		TypeBreakdown:        map[model.ScholarshipType]int{},
		CompetitionBreakdown: map[model.CompetitionLevel]int{},
	}

	for _, s := range matched {
		ov.TotalPotentialValue += s.Amount.Max
		ov.TypeBreakdown[s.Type]++
		ov.CompetitionBreakdown[s.CompetitionLevel]++
	}

	cutoff := now.Add(deadlineWindow)
	for _, s := range matched {
		if s.Deadline.IsZero() || s.Deadline.Before(now) || s.Deadline.After(cutoff) {
			continue
		}
		ov.UpcomingDeadlines = append(ov.UpcomingDeadlines, UpcomingDeadline{
			ID:       s.ID,
			Name:     s.Name,
			Deadline: s.Deadline,
			Amount:   s.Amount,
			DaysLeft: int(math.Ceil(s.Deadline.Sub(now).Hours() / 24)),
		})
	}
	sort.SliceStable(ov.UpcomingDeadlines, func(i, j int) bool {
		return ov.UpcomingDeadlines[i].Deadline.Before(ov.UpcomingDeadlines[j].Deadline)
	})
	if len(ov.UpcomingDeadlines) > maxUpcomingDeadlines {
		ov.UpcomingDeadlines = ov.UpcomingDeadlines[:maxUpcomingDeadlines]
	}

	for _, a := range applications {
		switch a.Status {
		case model.ApplicationPending:
			ov.Applications.Pending++
		case model.ApplicationApproved:
			ov.Applications.Approved++
			ov.SuccessfulApplications++
		case model.ApplicationRejected:
			ov.Applications.Rejected++
		}
	}

	return ov
}

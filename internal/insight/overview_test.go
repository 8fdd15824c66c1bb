package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func sch(id string, typ model.ScholarshipType, maxAmount int64, deadline time.Time) model.Scholarship {
	return model.Scholarship{
		ID:               id,
		Name:             id,
		Type:             typ,
		Amount:           model.AmountRange{Min: maxAmount / 2, Max: maxAmount},
		Deadline:         deadline,
		CompetitionLevel: model.CompetitionMedium,
		Stackable:        true,
	}
}

func TestBuildOverview(t *testing.T) {
	soon := sch("soon", model.TypeCentral, 50000, testNow.Add(10*24*time.Hour))
	later := sch("later", model.TypePrivate, 20000, testNow.Add(90*24*time.Hour))
	closed := sch("closed", model.TypeCollege, 10000, testNow.Add(-24*time.Hour))
	restricted := sch("restricted", model.TypeState, 90000, testNow.Add(5*24*time.Hour))
	restricted.Eligibility.Categories = []string{"ST"}

	p := &model.Profile{Category: "SC", Income: 300000, State: "Maharashtra"}

	saved := []model.SavedScholarship{{UserID: "u1", ScholarshipID: "soon"}}
	apps := []model.Application{
		{UserID: "u1", ScholarshipID: "soon", Status: model.ApplicationApproved},
		{UserID: "u1", ScholarshipID: "later", Status: model.ApplicationPending},
		{UserID: "u1", ScholarshipID: "closed", Status: model.ApplicationRejected},
	}

	ov := BuildOverview([]model.Scholarship{soon, later, closed, restricted}, p, saved, apps, testNow)

	assert.Equal(t, 4, ov.TotalScholarships)
	assert.Equal(t, 3, ov.MatchedScholarships, "ST-only scheme is filtered out")
	assert.Equal(t, 1, ov.SavedScholarships)
	assert.Equal(t, 3, ov.AppliedScholarships)
	assert.Equal(t, 1, ov.SuccessfulApplications)
	assert.Equal(t, int64(80000), ov.TotalPotentialValue)
	assert.Equal(t, 50, ov.ProfileCompleteness)

	require.Len(t, ov.UpcomingDeadlines, 1, "expired and far deadlines are excluded")
	assert.Equal(t, "soon", ov.UpcomingDeadlines[0].ID)
	assert.Equal(t, 10, ov.UpcomingDeadlines[0].DaysLeft)

	assert.Equal(t, 1, ov.TypeBreakdown[model.TypeCentral])
	assert.Equal(t, 1, ov.TypeBreakdown[model.TypePrivate])
	assert.Equal(t, ApplicationTally{Pending: 1, Approved: 1, Rejected: 1}, ov.Applications)
}

func TestBuildOverview_DeadlinesSortedAndCapped(t *testing.T) {
	var scholarships []model.Scholarship
	for i := 7; i >= 1; i-- {
		scholarships = append(scholarships, sch(
			string(rune('a'+i)), model.TypePrivate, 1000,
			testNow.Add(time.Duration(i)*24*time.Hour),
		))
	}

	ov := BuildOverview(scholarships, nil, nil, nil, testNow)
	require.Len(t, ov.UpcomingDeadlines, 5)
	for i := 1; i < len(ov.UpcomingDeadlines); i++ {
		assert.False(t, ov.UpcomingDeadlines[i].Deadline.Before(ov.UpcomingDeadlines[i-1].Deadline),
			"deadlines sorted soonest first")
	}
}

func TestBuildOverview_NilProfile(t *testing.T) {
	ov := BuildOverview([]model.Scholarship{sch("a", model.TypePrivate, 1000, time.Time{})}, nil, nil, nil, testNow)
	assert.Equal(t, 1, ov.MatchedScholarships, "anonymous users match everything")
	assert.Equal(t, 0, ov.ProfileCompleteness)
}

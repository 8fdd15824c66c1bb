package stacking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/scholar-cli/internal/config"
	"github.com/vidyasetu/scholar-cli/internal/model"
)

func stackingConfig() config.StackingConfig {
	return config.StackingConfig{MaxPrivate: 3, MaxCorporate: 2, MaxCollege: 1}
}

func award(id string, typ model.ScholarshipType, min, max int64) model.Scholarship {
	return model.Scholarship{
		ID:        id,
		Name:      id,
		Type:      typ,
		Amount:    model.AmountRange{Min: min, Max: max},
		Stackable: true,
	}
}

func TestOptimize_WorkedExample(t *testing.T) {
	// The canonical scenario: one central, one conflicting state, one private.
	s1 := award("S1", model.TypeCentral, 10000, 50000)
	s1.Eligibility = model.Eligibility{Categories: []string{"all"}, IncomeLimit: 800000}
	s2 := award("S2", model.TypeState, 5000, 20000)
	s2.Eligibility = model.Eligibility{States: []string{"Maharashtra"}, IncomeLimit: 500000}
	s3 := award("S3", model.TypePrivate, 1000, 15000)

	p := &model.Profile{Category: "SC", Income: 300000, State: "Maharashtra", Percentage: 72}

	opt := NewOptimizer(nil, stackingConfig())
	plan := opt.Optimize([]model.Scholarship{s1, s2, s3}, p)

	require.NotNil(t, plan.PrimaryCentral)
	assert.Equal(t, "S1", plan.PrimaryCentral.ID)
	assert.Nil(t, plan.StateScholarship)
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "S2")
	assert.Contains(t, plan.Warnings[0], "S1")
	require.Len(t, plan.PrivateOptions, 1)
	assert.Equal(t, "S3", plan.PrivateOptions[0].ID)
	assert.Equal(t, model.AmountRange{Min: 11000, Max: 65000}, plan.TotalPotential)
}

func TestOptimize_CentralStateExclusivity(t *testing.T) {
	central := award("central", model.TypeCentral, 10000, 20000)
	state := award("state", model.TypeState, 5000, 10000)
	state.Eligibility.States = []string{"Kerala"}
	p := &model.Profile{State: "Kerala"}

	opt := NewOptimizer(nil, stackingConfig())

	// Both present: central wins, state dropped with a warning.
	plan := opt.Optimize([]model.Scholarship{state, central}, p)
	assert.NotNil(t, plan.PrimaryCentral)
	assert.Nil(t, plan.StateScholarship)
	assert.Len(t, plan.Warnings, 1)
	assert.Equal(t, model.AmountRange{Min: 10000, Max: 20000}, plan.TotalPotential,
		"dropped state award never contributes")

	// State alone: selected, no warning.
	plan = opt.Optimize([]model.Scholarship{state}, p)
	require.NotNil(t, plan.StateScholarship)
	assert.Empty(t, plan.Warnings)
	assert.Equal(t, model.AmountRange{Min: 5000, Max: 10000}, plan.TotalPotential)
}

func TestOptimize_PicksHighestMeanValue(t *testing.T) {
	small := award("small", model.TypeCentral, 1000, 2000)
	big := award("big", model.TypeCentral, 20000, 40000)

	opt := NewOptimizer(nil, stackingConfig())
	plan := opt.Optimize([]model.Scholarship{small, big}, nil)

	require.NotNil(t, plan.PrimaryCentral)
	assert.Equal(t, "big", plan.PrimaryCentral.ID)
}

func TestOptimize_CapInvariants(t *testing.T) {
	var scholarships []model.Scholarship
	for i := 0; i < 6; i++ {
		scholarships = append(scholarships, award(fmt.Sprintf("pvt%d", i), model.TypePrivate, 1000, 2000))
	}
	for i := 0; i < 4; i++ {
		scholarships = append(scholarships, award(fmt.Sprintf("corp%d", i), model.TypeCorporate, 1000, 2000))
	}
	for i := 0; i < 3; i++ {
		scholarships = append(scholarships, award(fmt.Sprintf("col%d", i), model.TypeCollege, 1000, 2000))
	}

	opt := NewOptimizer(nil, stackingConfig())
	plan := opt.Optimize(scholarships, nil)

	counts := map[model.ScholarshipType]int{}
	for _, s := range plan.PrivateOptions {
		counts[s.Type]++
	}
	assert.Equal(t, 3, counts[model.TypePrivate])
	assert.Equal(t, 2, counts[model.TypeCorporate])
	assert.Equal(t, 1, counts[model.TypeCollege])
	assert.Equal(t, model.AmountRange{Min: 6000, Max: 12000}, plan.TotalPotential)
}

func TestOptimize_NonStackableExcluded(t *testing.T) {
	locked := award("locked", model.TypePrivate, 50000, 90000)
	locked.Stackable = false
	open := award("open", model.TypePrivate, 1000, 2000)

	opt := NewOptimizer(nil, stackingConfig())
	plan := opt.Optimize([]model.Scholarship{locked, open}, nil)

	require.Len(t, plan.PrivateOptions, 1)
	assert.Equal(t, "open", plan.PrivateOptions[0].ID)
}

func TestOptimize_StateFilteredToUserState(t *testing.T) {
	other := award("other", model.TypeState, 9000, 9000)
	other.Eligibility.States = []string{"Tamil Nadu"}
	open := award("open", model.TypeState, 1000, 1000)
	open.Eligibility.States = []string{"All India"}

	opt := NewOptimizer(nil, stackingConfig())
	plan := opt.Optimize([]model.Scholarship{other, open}, &model.Profile{State: "Kerala"})

	require.NotNil(t, plan.StateScholarship)
	assert.Equal(t, "open", plan.StateScholarship.ID, "wildcard state award is open to every state")
}

func TestOptimize_EmptyBucketsAreAbsentNotErrors(t *testing.T) {
	opt := NewOptimizer(nil, stackingConfig())
	plan := opt.Optimize(nil, nil)

	assert.Nil(t, plan.PrimaryCentral)
	assert.Nil(t, plan.StateScholarship)
	assert.Empty(t, plan.PrivateOptions)
	assert.Equal(t, model.AmountRange{}, plan.TotalPotential)
}

func TestOptimize_UncategorizedSkipped(t *testing.T) {
	odd := award("odd", model.ScholarshipType("trust"), 1000, 2000)
	ok := award("ok", model.TypePrivate, 1000, 2000)

	opt := NewOptimizer(nil, stackingConfig())
	plan := opt.Optimize([]model.Scholarship{odd, ok}, nil)

	require.Len(t, plan.PrivateOptions, 1)
	assert.Equal(t, "ok", plan.PrivateOptions[0].ID)
}

func TestOptimize_Idempotent(t *testing.T) {
	scholarships := []model.Scholarship{
		award("c", model.TypeCentral, 10000, 50000),
		award("p", model.TypePrivate, 1000, 15000),
	}
	opt := NewOptimizer(nil, stackingConfig())

	first := opt.Optimize(scholarships, nil)
	second := opt.Optimize(scholarships, nil)
	assert.Equal(t, first, second)
}

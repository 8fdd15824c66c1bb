package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		states []string
		want   ScholarshipType
		ok     bool
	}{
		{"central", "central", nil, TypeCentral, true},
		{"state", "state", nil, TypeState, true},
		{"private", "Private", nil, TypePrivate, true},
		{"corporate", "corporate", nil, TypeCorporate, true},
		{"college", "college", nil, TypeCollege, true},
		{"institutional alias", "institutional", nil, TypeCollege, true},
		{"government unscoped", "government", nil, TypeCentral, true},
		{"government all india", "government", []string{"All India"}, TypeCentral, true},
		{"government single state", "government", []string{"Maharashtra"}, TypeState, true},
		{"government multi state", "government", []string{"Maharashtra", "Gujarat"}, TypeCentral, true},
		{"unknown", "trust", nil, "", false},
		{"empty", "", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeType(tt.raw, tt.states)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScholarshipDocCanonical(t *testing.T) {
	doc := ScholarshipDoc{
		ID:       "s1",
		Name:     "Post Matric Scholarship",
		Provider: "Ministry of Social Justice",
		Type:     "government",
		Amount:   &AmountRange{Min: 50000, Max: 10000}, // inverted on purpose
		Deadline: "2026-10-31",
		Eligibility: Eligibility{
			Categories:  []string{"SC", "ST"},
			IncomeLimit: 250000,
		},
		CompetitionLevel: "HIGH",
	}

	s, ok := doc.Canonical()
	require.True(t, ok)
	assert.Equal(t, TypeCentral, s.Type)
	assert.Equal(t, AmountRange{Min: 10000, Max: 50000}, s.Amount, "inverted range is repaired")
	assert.Equal(t, CompetitionHigh, s.CompetitionLevel)
	assert.True(t, s.Stackable, "stackable defaults true")
	assert.Equal(t, 2026, s.Deadline.Year())
}

func TestScholarshipDocCanonical_Defensive(t *testing.T) {
	// Missing amount and malformed deadline must not fail.
	s, ok := ScholarshipDoc{ID: "s2", Type: "private", Deadline: "soon"}.Canonical()
	require.True(t, ok)
	assert.Equal(t, AmountRange{}, s.Amount)
	assert.True(t, s.Deadline.IsZero())
	assert.Equal(t, CompetitionMedium, s.CompetitionLevel, "unknown competition defaults to medium")

	_, ok = ScholarshipDoc{ID: "s3", Type: "trust fund"}.Canonical()
	assert.False(t, ok, "unknown type is rejected, not guessed")
}

func TestProfileDocCanonical_LegacySpellings(t *testing.T) {
	p := ProfileDoc{
		UserID:             "u1",
		Category:           "OBC",
		AnnualIncome:       450000,
		AcademicPercentage: 81.5,
		State:              " Karnataka ",
	}.Canonical()

	assert.Equal(t, int64(450000), p.Income)
	assert.Equal(t, 81.5, p.Percentage)
	assert.Equal(t, "Karnataka", p.State)

	// Canonical spelling wins when both are present.
	p = ProfileDoc{Income: 300000, AnnualIncome: 450000}.Canonical()
	assert.Equal(t, int64(300000), p.Income)
}

func TestProfileCompleteness(t *testing.T) {
	var nilProfile *Profile
	assert.Equal(t, 0, nilProfile.CompletedFields())

	p := &Profile{Category: "SC", Income: 300000, State: "Maharashtra"}
	assert.Equal(t, 3, p.CompletedFields())
	assert.Equal(t, 50, p.Completeness())

	full := &Profile{Category: "SC", Income: 1, Percentage: 1, State: "x", Gender: "female", Level: "ug"}
	assert.Equal(t, 100, full.Completeness())
}

func TestWildcardHelpers(t *testing.T) {
	assert.True(t, HasWildcard([]string{"SC", "all"}))
	assert.True(t, HasWildcard([]string{"All India"}))
	assert.False(t, HasWildcard([]string{"Maharashtra"}))
	assert.True(t, ContainsFold([]string{"sc", "ST"}, "SC"))
	assert.False(t, ContainsFold(nil, "SC"))
}

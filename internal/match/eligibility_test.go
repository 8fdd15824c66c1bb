package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

func scholarship(elig model.Eligibility) model.Scholarship {
	return model.Scholarship{
		ID:          "s1",
		Name:        "Test Scholarship",
		Type:        model.TypePrivate,
		Amount:      model.AmountRange{Min: 1000, Max: 10000},
		Eligibility: elig,
		Stackable:   true,
	}
}

func TestEligible_NilProfileSeesEverything(t *testing.T) {
	s := scholarship(model.Eligibility{
		Categories:  []string{"SC"},
		IncomeLimit: 100000,
		States:      []string{"Kerala"},
	})
	assert.True(t, Eligible(s, nil))
}

func TestEligible_CategoryWildcard(t *testing.T) {
	s := scholarship(model.Eligibility{Categories: []string{"all"}})
	for _, cat := range []string{"SC", "ST", "OBC", "EWS", "General", ""} {
		assert.True(t, Eligible(s, &model.Profile{Category: cat}), "wildcard admits category %q", cat)
	}
}

func TestEligible_Category(t *testing.T) {
	s := scholarship(model.Eligibility{Categories: []string{"SC", "ST"}})

	assert.True(t, Eligible(s, &model.Profile{Category: "sc"}), "case-insensitive")
	assert.False(t, Eligible(s, &model.Profile{Category: "OBC"}))
	assert.True(t, Eligible(s, &model.Profile{}), "undeclared category is not a constraint")
}

func TestEligible_Income(t *testing.T) {
	s := scholarship(model.Eligibility{IncomeLimit: 500000})

	assert.True(t, Eligible(s, &model.Profile{Income: 500000}), "at the ceiling passes")
	assert.False(t, Eligible(s, &model.Profile{Income: 500001}))
	// Missing income defaults to pass. Possibly-unintended leniency carried
	// over from the source data model; asserted so a change is deliberate.
	assert.True(t, Eligible(s, &model.Profile{}))

	noLimit := scholarship(model.Eligibility{})
	assert.True(t, Eligible(noLimit, &model.Profile{Income: 99000000}), "zero limit means no ceiling")
}

func TestEligible_StateWildcard(t *testing.T) {
	for _, wildcard := range []string{"all", "All India"} {
		s := scholarship(model.Eligibility{States: []string{wildcard}})
		assert.True(t, Eligible(s, &model.Profile{State: "Nagaland"}), "wildcard %q", wildcard)
	}
}

func TestEligible_State(t *testing.T) {
	s := scholarship(model.Eligibility{States: []string{"Maharashtra", "Gujarat"}})

	assert.True(t, Eligible(s, &model.Profile{State: "Maharashtra"}))
	assert.False(t, Eligible(s, &model.Profile{State: "Kerala"}))
	assert.True(t, Eligible(s, &model.Profile{}), "undeclared state is not a constraint")
}

func TestEligible_MinPercentageIsAHardGate(t *testing.T) {
	s := scholarship(model.Eligibility{MinPercentage: 75})

	assert.True(t, Eligible(s, &model.Profile{Percentage: 75}))
	assert.False(t, Eligible(s, &model.Profile{Percentage: 74.9}))
	assert.True(t, Eligible(s, &model.Profile{}), "undeclared percentage passes")
}

func TestEligible_Idempotent(t *testing.T) {
	s := scholarship(model.Eligibility{Categories: []string{"SC"}, IncomeLimit: 300000})
	p := &model.Profile{Category: "SC", Income: 250000}

	first := Eligible(s, p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Eligible(s, p))
	}
}

func TestFilterEligible_PreservesOrder(t *testing.T) {
	scholarships := []model.Scholarship{
		scholarship(model.Eligibility{Categories: []string{"SC"}}),
		scholarship(model.Eligibility{Categories: []string{"OBC"}}),
		scholarship(model.Eligibility{Categories: []string{"all"}}),
	}
	scholarships[0].ID = "a"
	scholarships[1].ID = "b"
	scholarships[2].ID = "c"

	got := FilterEligible(scholarships, &model.Profile{Category: "SC"})
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

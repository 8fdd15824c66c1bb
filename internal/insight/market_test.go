package insight

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

func TestBuildMarket_Empty(t *testing.T) {
	m := BuildMarket(nil, testNow)
	assert.Equal(t, 0, m.TotalScholarships)
	assert.Zero(t, m.TotalValue)
}

func TestBuildMarket(t *testing.T) {
	central := sch("central", model.TypeCentral, 40000, testNow.Add(10*24*time.Hour))
	central.Provider = "Ministry of Education"
	central.Eligibility = model.Eligibility{
		Categories:  []string{"SC", "ST"},
		IncomeLimit: 250000,
		Levels:      []string{"undergraduate"},
	}
	central.CompetitionLevel = model.CompetitionHigh

	private := sch("private", model.TypePrivate, 10000, testNow.Add(45*24*time.Hour))
	private.Provider = "Tata Trusts"
	private.Eligibility.IncomeLimit = 600000
	private.CompetitionLevel = model.CompetitionLow

	m := BuildMarket([]model.Scholarship{central, private}, testNow)

	assert.Equal(t, 2, m.TotalScholarships)
	assert.Equal(t, 1, m.GovernmentCount)
	assert.Equal(t, 1, m.PrivateCount)
	assert.Equal(t, 30000.0+7500, m.TotalValue)
	assert.Equal(t, 18750.0, m.AverageAmount)
	assert.Equal(t, 30000.0, m.MedianAmount)

	assert.Equal(t, 1, m.CategoryDistribution["SC"].Count)
	assert.Equal(t, 1, m.CategoryDistribution["ST"].Count)
	assert.Equal(t, 1, m.CategoryDistribution["All"].Count, "no categories means open to all")
	assert.Equal(t, 30000.0, m.CategoryDistribution["SC"].AvgAmount)

	assert.Equal(t, 1, m.IncomeDistribution.Below2L+m.IncomeDistribution.Between2L5L)
	assert.Equal(t, 1, m.IncomeDistribution.Between5L8L)

	assert.Equal(t, 1, m.CompetitionAnalysis[model.CompetitionHigh])
	assert.Equal(t, 1, m.CompetitionAnalysis[model.CompetitionLow])

	assert.Equal(t, 1, m.DeadlineAnalysis.ThisMonth)
	assert.Equal(t, 1, m.DeadlineAnalysis.NextMonth)

	require.Len(t, m.TopProviders, 2)
	assert.Equal(t, "Ministry of Education", m.TopProviders[0].Name, "ranked by total value")
}

func TestBuildMarket_TopProvidersCapped(t *testing.T) {
	var scholarships []model.Scholarship
	for i := 0; i < 14; i++ {
		s := sch(fmt.Sprintf("s%d", i), model.TypePrivate, int64(1000*(i+1)), time.Time{})
		s.Provider = fmt.Sprintf("Provider %d", i)
		scholarships = append(scholarships, s)
	}

	m := BuildMarket(scholarships, testNow)
	assert.Len(t, m.TopProviders, 10)
	assert.Equal(t, "Provider 13", m.TopProviders[0].Name)
}

func TestBucketDeadline(t *testing.T) {
	var bands DeadlineBands
	bucketDeadline(&bands, time.Time{}, testNow)
	bucketDeadline(&bands, testNow.Add(-time.Hour), testNow)
	assert.Equal(t, DeadlineBands{}, bands, "zero and past deadlines ignored")

	bucketDeadline(&bands, testNow.Add(24*time.Hour), testNow)
	bucketDeadline(&bands, testNow.AddDate(0, 1, 0), testNow)
	bucketDeadline(&bands, testNow.AddDate(0, 3, 0), testNow)
	bucketDeadline(&bands, testNow.AddDate(0, 6, 0), testNow)
	assert.Equal(t, DeadlineBands{ThisMonth: 1, NextMonth: 1, Next3Months: 1, Later: 1}, bands)
}

package insight

import (
	"sort"
	"time"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

// GroupStats aggregates count and value for one distribution bucket.
type GroupStats struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
	AvgAmount  float64 `json:"avgAmount"`
}

// ProviderStats ranks a provider by award volume.
type ProviderStats struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// IncomeBands buckets scholarships by income ceiling (rupees).
type IncomeBands struct {
	Below2L     int `json:"below2L"`
	Between2L5L int `json:"between2L5L"`
	Between5L8L int `json:"between5L8L"`
	Above8L     int `json:"above8L"`
}

// DeadlineBands buckets scholarships by time until deadline.
type DeadlineBands struct {
	ThisMonth   int `json:"thisMonth"`
	NextMonth   int `json:"nextMonth"`
	Next3Months int `json:"next3Months"`
	Later       int `json:"later"`
}

// Market is the scholarship-market intelligence summary.
type Market struct {
	TotalScholarships    int                            `json:"totalScholarships"`
	TotalValue           float64                        `json:"totalValue"`
	AverageAmount        float64                        `json:"averageAmount"`
	MedianAmount         float64                        `json:"medianAmount"`
	GovernmentCount      int                            `json:"governmentCount"`
	PrivateCount         int                            `json:"privateCount"`
	CategoryDistribution map[string]GroupStats          `json:"categoryDistribution"`
	StateDistribution    map[string]GroupStats          `json:"stateDistribution"`
	LevelDistribution    map[string]int                 `json:"levelDistribution"`
	IncomeDistribution   IncomeBands                    `json:"incomeDistribution"`
	CompetitionAnalysis  map[model.CompetitionLevel]int `json:"competitionAnalysis"`
	DeadlineAnalysis     DeadlineBands                  `json:"deadlineAnalysis"`
	TopProviders         []ProviderStats                `json:"topProviders"`
	Trends               []string                       `json:"trends,omitempty"`
	Insights             []string                       `json:"insights,omitempty"`
	Recommendations      []string                       `json:"recommendations,omitempty"`
}

// maxTopProviders caps the provider ranking.
const maxTopProviders = 10

// BuildMarket aggregates the full scholarship collection into market
// intelligence. Trends/Insights/Recommendations are left empty for the
// advisor to fill in.
func BuildMarket(scholarships []model.Scholarship, now time.Time) Market {
	m := Market{
		TotalScholarships:    len(scholarships),
		CategoryDistribution: map[string]GroupStats{},
		StateDistribution:    map[string]GroupStats{},
		LevelDistribution:    map[string]int{},
		CompetitionAnalysis:  map[model.CompetitionLevel]int{},
		TopProviders:         []ProviderStats{},
	}
	if len(scholarships) == 0 {
		return m
	}

	means := make([]float64, 0, len(scholarships))
	providers := map[string]*ProviderStats{}

	for _, s := range scholarships {
		mean := s.Amount.Mean()
		m.TotalValue += mean
		means = append(means, mean)

		switch s.Type {
		case model.TypeCentral, model.TypeState:
			m.GovernmentCount++
		default:
			m.PrivateCount++
		}

		for _, cat := range orDefault(s.Eligibility.Categories, "All") {
			g := m.CategoryDistribution[cat]
			g.Count++
			g.TotalValue += mean
			m.CategoryDistribution[cat] = g
		}
		for _, st := range orDefault(s.Eligibility.States, "All India") {
			g := m.StateDistribution[st]
			g.Count++
			g.TotalValue += mean
			m.StateDistribution[st] = g
		}
		for _, lvl := range orDefault(s.Eligibility.Levels, "All Levels") {
			m.LevelDistribution[lvl]++
		}

		switch limit := s.Eligibility.IncomeLimit; {
		case limit == 0:
			m.IncomeDistribution.Above8L++ // no ceiling
		case limit <= 200000:
			m.IncomeDistribution.Below2L++
		case limit <= 500000:
			m.IncomeDistribution.Between2L5L++
		case limit <= 800000:
			m.IncomeDistribution.Between5L8L++
		default:
			m.IncomeDistribution.Above8L++
		}

		m.CompetitionAnalysis[s.CompetitionLevel]++
		bucketDeadline(&m.DeadlineAnalysis, s.Deadline, now)

		name := s.Provider
		if name == "" {
			name = "Unknown"
		}
		if providers[name] == nil {
			providers[name] = &ProviderStats{Name: name}
		}
		providers[name].Count++
		providers[name].TotalValue += mean
	}

	m.AverageAmount = m.TotalValue / float64(len(scholarships))
	sort.Float64s(means)
	m.MedianAmount = means[len(means)/2]

	for name, g := range m.CategoryDistribution {
		g.AvgAmount = g.TotalValue / float64(g.Count)
		m.CategoryDistribution[name] = g
	}

	for _, p := range providers {
		m.TopProviders = append(m.TopProviders, *p)
	}
	sort.SliceStable(m.TopProviders, func(i, j int) bool {
		return m.TopProviders[i].TotalValue > m.TopProviders[j].TotalValue
	})
	if len(m.TopProviders) > maxTopProviders {
		m.TopProviders = m.TopProviders[:maxTopProviders]
	}

	return m
}

func bucketDeadline(bands *DeadlineBands, deadline time.Time, now time.Time) {
	if deadline.IsZero() || deadline.Before(now) {
		return
	}
	monthsDiff := (deadline.Year()-now.Year())*12 + int(deadline.Month()) - int(now.Month())
	switch {
	case monthsDiff <= 0:
		bands.ThisMonth++
	case monthsDiff == 1:
		bands.NextMonth++
	case monthsDiff <= 3:
		bands.Next3Months++
	default:
		bands.Later++
	}
}

func orDefault(list []string, def string) []string {
	if len(list) == 0 {
		return []string{def}
	}
	return list
}

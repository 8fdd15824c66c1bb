package advisor

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/scholar-cli/internal/config"
	"github.com/vidyasetu/scholar-cli/internal/insight"
	"github.com/vidyasetu/scholar-cli/internal/match"
	"github.com/vidyasetu/scholar-cli/internal/model"
	"github.com/vidyasetu/scholar-cli/internal/stacking"
	"github.com/vidyasetu/scholar-cli/pkg/anthropic"
)

type fakeClient struct {
	reply string
	err   error
	seen  []anthropic.MessageRequest
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.seen = append(f.seen, req)
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{Text: f.reply}, nil
}

func testConfig() config.AnthropicConfig {
	return config.AnthropicConfig{Model: "claude-haiku-4-5-20251001", MaxTokens: 1024}
}

func TestStackingRecommendations_ParsesArray(t *testing.T) {
	client := &fakeClient{reply: `Here are your tips:
["Apply to the central scheme first", "Stack the corporate award", "File income proof early"]`}
	a := New(client, testConfig())

	plan := &stacking.Plan{TotalPotential: model.AmountRange{Min: 1000, Max: 5000}}
	tips := a.StackingRecommendations(context.Background(), model.Profile{Income: 300000}, plan)

	require.Len(t, tips, 3)
	assert.Equal(t, "Apply to the central scheme first", tips[0])
	require.Len(t, client.seen, 1)
	assert.Contains(t, client.seen[0].Messages[0].Content, "Rs 300000")
}

func TestStackingRecommendations_Fallbacks(t *testing.T) {
	plan := &stacking.Plan{}
	p := model.Profile{}

	// API error.
	a := New(&fakeClient{err: eris.New("rate limited")}, testConfig())
	assert.Equal(t, fallbackStackingTips, a.StackingRecommendations(context.Background(), p, plan))

	// Unparsable reply.
	a = New(&fakeClient{reply: "I cannot provide JSON today."}, testConfig())
	assert.Equal(t, fallbackStackingTips, a.StackingRecommendations(context.Background(), p, plan))

	// No client configured.
	a = New(nil, testConfig())
	assert.Equal(t, fallbackStackingTips, a.StackingRecommendations(context.Background(), p, plan))
}

func TestExplainNearMiss_FallsBackToTemplates(t *testing.T) {
	a := New(&fakeClient{err: eris.New("down")}, testConfig())

	nm := match.NearMiss{
		Scholarship: model.Scholarship{
			Name: "Merit Scheme",
			Eligibility: model.Eligibility{
				IncomeLimit:   250000,
				MinPercentage: 80,
				Categories:    []string{"SC", "ST"},
			},
		},
		MissedCriteria: []string{match.CriterionIncome, match.CriterionPercentage},
	}

	lines, err := a.ExplainNearMiss(context.Background(), model.Profile{}, nm)
	require.NoError(t, err, "explanation failures never propagate")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Rs 250000")
	assert.Contains(t, lines[1], "80%")
}

func TestExplainNearMiss_UsesGeneratedLines(t *testing.T) {
	a := New(&fakeClient{reply: `["Your income is slightly over the cap"]`}, testConfig())

	lines, err := a.ExplainNearMiss(context.Background(), model.Profile{}, match.NearMiss{
		MissedCriteria: []string{match.CriterionIncome},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Your income is slightly over the cap"}, lines)
}

func TestEnrichMarket(t *testing.T) {
	a := New(&fakeClient{reply: `{"trends":["t"],"insights":["i"],"recommendations":["r"]}`}, testConfig())

	m := insight.Market{TotalScholarships: 10}
	a.EnrichMarket(context.Background(), &m)
	assert.Equal(t, []string{"t"}, m.Trends)
	assert.Equal(t, []string{"i"}, m.Insights)
	assert.Equal(t, []string{"r"}, m.Recommendations)
}

func TestEnrichMarket_Fallback(t *testing.T) {
	a := New(&fakeClient{reply: "no json here"}, testConfig())

	var m insight.Market
	a.EnrichMarket(context.Background(), &m)
	assert.Equal(t, fallbackMarket.Trends, m.Trends)
	assert.Len(t, m.Recommendations, 3)
}

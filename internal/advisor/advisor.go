// Package advisor generates applicant-facing guidance via the Anthropic API.
// Every call is best-effort: failures and unparsable replies degrade to fixed
// fallback text, never to an error the caller has to handle.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/config"
	"github.com/vidyasetu/scholar-cli/internal/insight"
	"github.com/vidyasetu/scholar-cli/internal/match"
	"github.com/vidyasetu/scholar-cli/internal/model"
	"github.com/vidyasetu/scholar-cli/internal/stacking"
	"github.com/vidyasetu/scholar-cli/pkg/anthropic"
)

var (
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*?\]`)
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// fallbackStackingTips is returned when generation fails.
var fallbackStackingTips = []string{
	"Apply for central government scholarships first as they typically offer higher amounts",
	"Check if your institution offers merit-cum-means scholarships that can be combined",
	"Keep documentation ready for income proof to speed up application processing",
}

// Advisor wraps an Anthropic client with domain prompts and fallbacks.
type Advisor struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
}

// New creates an Advisor. A nil client means every call returns its fallback
// immediately, which keeps the engine usable without an API key.
func New(client anthropic.Client, cfg config.AnthropicConfig) *Advisor {
	return &Advisor{client: client, cfg: cfg}
}

func (a *Advisor) generate(ctx context.Context, op, prompt string) (string, bool) {
	if a == nil || a.client == nil {
		return "", false
	}
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.cfg.Model,
		MaxTokens: a.cfg.MaxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("advisor: generation failed", zap.String("op", op), zap.Error(err))
		return "", false
	}
	resp.Usage.Log(a.cfg.Model, op)
	return resp.Text, true
}

// StackingRecommendations returns three actionable tips for the given plan.
func (a *Advisor) StackingRecommendations(ctx context.Context, p model.Profile, plan *stacking.Plan) []string {
	prompt := fmt.Sprintf(`As a scholarship expert, provide 3 brief recommendations for optimizing scholarship stacking for an Indian student with:
- Annual Income: Rs %d
- Category: %s
- State: %s
- Academic Score: %.1f%%

Selected scholarships:
- Central: %s
- State: %s
- Private/Corporate: %s

Total potential: Rs %d - Rs %d

Provide 3 actionable tips in a JSON array format like: ["tip1", "tip2", "tip3"]`,
		p.Income, orNone(p.Category), orNone(p.State), p.Percentage,
		scholarshipName(plan.PrimaryCentral), scholarshipName(plan.StateScholarship),
		joinNames(plan.PrivateOptions),
		plan.TotalPotential.Min, plan.TotalPotential.Max,
	)

	text, ok := a.generate(ctx, "stacking_recommendations", prompt)
	if !ok {
		return fallbackStackingTips
	}
	tips, err := extractStringArray(text)
	if err != nil || len(tips) == 0 {
		zap.L().Warn("advisor: unparsable stacking recommendations", zap.Error(err))
		return fallbackStackingTips
	}
	return tips
}

// ExplainNearMiss explains what stands between the applicant and one
// scholarship. It satisfies match.Explainer; the returned error is always nil
// because failure degrades to a deterministic explanation built from the
// missed criteria.
func (a *Advisor) ExplainNearMiss(ctx context.Context, p model.Profile, nm match.NearMiss) ([]string, error) {
	prompt := fmt.Sprintf(`A student almost qualifies for the scholarship %q (provider: %s). They meet %d of %d criteria; the gaps are: %s.
Student profile: category %s, annual income Rs %d, academic score %.1f%%, state %s.
In a JSON array of short strings, explain each gap and one concrete step to close it, like: ["explanation1", "explanation2"]`,
		nm.Scholarship.Name, nm.Scholarship.Provider,
		nm.CriteriaMatched, nm.TotalCriteria, strings.Join(nm.MissedCriteria, ", "),
		orNone(p.Category), p.Income, p.Percentage, orNone(p.State),
	)

	if text, ok := a.generate(ctx, "near_miss", prompt); ok {
		if lines, err := extractStringArray(text); err == nil && len(lines) > 0 {
			return lines, nil
		}
		zap.L().Warn("advisor: unparsable near-miss explanation",
			zap.String("scholarship", nm.Scholarship.ID),
		)
	}
	return fallbackNearMiss(nm), nil
}

// fallbackNearMiss templates an explanation per missed criterion.
func fallbackNearMiss(nm match.NearMiss) []string {
	out := make([]string, 0, len(nm.MissedCriteria))
	for _, c := range nm.MissedCriteria {
		switch c {
		case match.CriterionCategory:
			out = append(out, fmt.Sprintf("This scholarship is restricted to the %s categories",
				strings.Join(nm.Scholarship.Eligibility.Categories, "/")))
		case match.CriterionIncome:
			out = append(out, fmt.Sprintf("Your family income exceeds the ceiling of Rs %d",
				nm.Scholarship.Eligibility.IncomeLimit))
		case match.CriterionPercentage:
			out = append(out, fmt.Sprintf("A minimum academic score of %.0f%% is required",
				nm.Scholarship.Eligibility.MinPercentage))
		case match.CriterionState:
			out = append(out, fmt.Sprintf("Only applicants from %s are eligible",
				strings.Join(nm.Scholarship.Eligibility.States, "/")))
		}
	}
	return out
}

// marketReply is the JSON object shape requested from the model.
type marketReply struct {
	Trends          []string `json:"trends"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// fallbackMarket is used when market insight generation fails.
var fallbackMarket = marketReply{
	Trends: []string{
		"Government scholarships constitute the majority of high-value awards",
		"More scholarships available for SC/ST/OBC categories",
		"Engineering and medical students have the most options",
	},
	Insights: []string{
		"Students from lower income families have more scholarship opportunities",
		"State-specific scholarships often have less competition than national ones",
		"Many students miss deadlines due to lack of awareness",
	},
	Recommendations: []string{
		"Apply for both government and private scholarships to maximize chances",
		"Complete applications early to avoid last-minute technical issues",
		"Keep documents like income certificate and caste certificate ready",
	},
}

// EnrichMarket fills the market summary's trends, insights and
// recommendations in place.
func (a *Advisor) EnrichMarket(ctx context.Context, m *insight.Market) {
	prompt := fmt.Sprintf(`Analyze this Indian scholarship market data and provide insights:

Total Scholarships: %d
Total Value: Rs %.0f
Government: %d, Private: %d
Closing this month: %d, next month: %d, within 3 months: %d

Provide response as JSON with these arrays:
{"trends": ["t1","t2","t3"], "insights": ["i1","i2","i3"], "recommendations": ["r1","r2","r3"]}

Focus on actionable insights for Indian students seeking scholarships.`,
		m.TotalScholarships, m.TotalValue, m.GovernmentCount, m.PrivateCount,
		m.DeadlineAnalysis.ThisMonth, m.DeadlineAnalysis.NextMonth, m.DeadlineAnalysis.Next3Months,
	)

	reply := fallbackMarket
	if text, ok := a.generate(ctx, "market_insights", prompt); ok {
		if raw := jsonObjectRe.FindString(text); raw != "" {
			var parsed marketReply
			if err := json.Unmarshal([]byte(raw), &parsed); err == nil &&
				len(parsed.Trends)+len(parsed.Insights)+len(parsed.Recommendations) > 0 {
				reply = parsed
			} else {
				zap.L().Warn("advisor: unparsable market insights")
			}
		}
	}

	m.Trends = reply.Trends
	m.Insights = reply.Insights
	m.Recommendations = reply.Recommendations
}

// extractStringArray pulls the first JSON array out of free text.
func extractStringArray(text string) ([]string, error) {
	raw := jsonArrayRe.FindString(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in reply")
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func scholarshipName(s *model.Scholarship) string {
	if s == nil {
		return "None"
	}
	return s.Name
}

func joinNames(scholarships []model.Scholarship) string {
	if len(scholarships) == 0 {
		return "None"
	}
	names := make([]string, len(scholarships))
	for i, s := range scholarships {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func orNone(v string) string {
	if v == "" {
		return "None"
	}
	return v
}

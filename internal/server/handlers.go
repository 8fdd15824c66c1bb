package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/insight"
	"github.com/vidyasetu/scholar-cli/internal/match"
	"github.com/vidyasetu/scholar-cli/internal/model"
	"github.com/vidyasetu/scholar-cli/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]any{"status": "ok"})
}

// profileFor loads the canonical profile, returning nil without error when
// the user has none. Callers that require a profile check for nil themselves.
func (s *Server) profileFor(r *http.Request, userID string) (*model.Profile, error) {
	p, err := s.store.GetProfile(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		fail(w, http.StatusBadRequest, "User ID required")
		return
	}
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "overview"
	}

	ctx := r.Context()
	profile, err := s.profileFor(r, userID)
	if err != nil {
		s.internalError(w, "load profile", err)
		return
	}
	scholarships, err := s.store.ListScholarships(ctx)
	if err != nil {
		s.internalError(w, "list scholarships", err)
		return
	}

	switch kind {
	case "overview":
		saved, err := s.store.ListSaved(ctx, userID)
		if err != nil {
			s.internalError(w, "list saved", err)
			return
		}
		applications, err := s.store.ListApplications(ctx, userID)
		if err != nil {
			s.internalError(w, "list applications", err)
			return
		}
		ov := insight.BuildOverview(scholarships, profile, saved, applications, s.now())
		ok(w, map[string]any{"analytics": ov})

	case "recommendations":
		results := match.Rank(scholarships, profile, 10)
		ok(w, map[string]any{"recommendations": results})

	case "stacking":
		eligible := match.FilterEligible(scholarships, profile)
		plan := s.optimizer.Optimize(eligible, profile)
		ok(w, map[string]any{"stacking": plan, "totalEligible": len(eligible)})

	case "market":
		market := insight.BuildMarket(scholarships, s.now())
		ok(w, map[string]any{"market": market})

	default:
		fail(w, http.StatusBadRequest, "Invalid type")
	}
}

func (s *Server) handleStacking(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		fail(w, http.StatusBadRequest, "User ID required")
		return
	}

	ctx := r.Context()
	profile, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		fail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.internalError(w, "load profile", err)
		return
	}

	scholarships, err := s.store.ListScholarships(ctx)
	if err != nil {
		s.internalError(w, "list scholarships", err)
		return
	}

	eligible := match.FilterEligible(scholarships, profile)
	plan := s.optimizer.Optimize(eligible, profile)
	plan.Recommendations = s.advisor.StackingRecommendations(ctx, *profile, plan)

	ok(w, map[string]any{"stacking": plan, "totalEligible": len(eligible)})
}

func (s *Server) handleStackingCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScholarshipIDs []string `json:"scholarshipIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.ScholarshipIDs) == 0 {
		fail(w, http.StatusBadRequest, "Scholarship IDs required")
		return
	}

	ctx := r.Context()
	var selected []model.Scholarship
	for _, id := range req.ScholarshipIDs {
		sch, err := s.store.GetScholarship(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			s.internalError(w, "load scholarship", err)
			return
		}
		selected = append(selected, *sch)
	}

	ok(w, map[string]any{"compatibility": s.optimizer.AnalyzeCompatibility(selected)})
}

func (s *Server) handleWhyNotMe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string   `json:"userId"`
		MinPct *float64 `json:"minMatchPercentage"`
		MaxPct *float64 `json:"maxMatchPercentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		fail(w, http.StatusBadRequest, "User ID is required")
		return
	}

	ctx := r.Context()
	profile, err := s.store.GetProfile(ctx, req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		fail(w, http.StatusNotFound, "User profile not found")
		return
	}
	if err != nil {
		s.internalError(w, "load profile", err)
		return
	}

	scholarships, err := s.store.ListScholarships(ctx)
	if err != nil {
		s.internalError(w, "list scholarships", err)
		return
	}

	cfg := s.cfg.NearMiss
	if req.MinPct != nil {
		cfg.MinPct = *req.MinPct
	}
	if req.MaxPct != nil {
		cfg.MaxPct = *req.MaxPct
	}

	misses, err := match.NearMisses(scholarships, profile, cfg)
	if err != nil {
		s.internalError(w, "near miss analysis", err)
		return
	}
	misses = match.Explain(ctx, s.advisor, *profile, misses)

	ok(w, map[string]any{"data": misses, "count": len(misses)})
}

func (s *Server) handleIntelligence(w http.ResponseWriter, r *http.Request) {
	scholarships, err := s.store.ListScholarships(r.Context())
	if err != nil {
		s.internalError(w, "list scholarships", err)
		return
	}

	q := r.URL.Query()
	filtered := filterScholarships(scholarships, q.Get("category"), q.Get("state"), q.Get("level"))

	market := insight.BuildMarket(filtered, s.now())
	s.advisor.EnrichMarket(r.Context(), &market)

	ok(w, map[string]any{"intelligence": market, "totalAnalyzed": len(filtered)})
}

// filterScholarships narrows the set by the optional query filters. Wildcard
// eligibility lists always pass.
func filterScholarships(scholarships []model.Scholarship, category, state, level string) []model.Scholarship {
	out := make([]model.Scholarship, 0, len(scholarships))
	for _, sch := range scholarships {
		e := sch.Eligibility
		if category != "" && len(e.Categories) > 0 &&
			!model.HasWildcard(e.Categories) && !model.ContainsFold(e.Categories, category) {
			continue
		}
		if state != "" && len(e.States) > 0 &&
			!model.HasWildcard(e.States) && !model.ContainsFold(e.States, state) {
			continue
		}
		if level != "" && len(e.Levels) > 0 &&
			!model.HasWildcard(e.Levels) && !model.ContainsFold(e.Levels, level) {
			continue
		}
		out = append(out, sch)
	}
	return out
}

func (s *Server) internalError(w http.ResponseWriter, action string, err error) {
	zap.L().Error("server: "+action, zap.Error(err))
	fail(w, http.StatusInternalServerError, "Internal server error")
}

package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/advisor"
	"github.com/vidyasetu/scholar-cli/internal/model"
	"github.com/vidyasetu/scholar-cli/internal/store"
	"github.com/vidyasetu/scholar-cli/pkg/anthropic"
)

// appEnv bundles the long-lived dependencies commands share.
type appEnv struct {
	Store   store.Store
	Advisor *advisor.Advisor
}

func (e *appEnv) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("close store", zap.Error(err))
	}
}

// initEnv opens the store, runs migrations, and builds the advisor. The
// advisor works without an API key; it then serves canned guidance only.
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	var client anthropic.Client
	if cfg.Anthropic.Key != "" {
		client = anthropic.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Debug("SCHOLAR_ANTHROPIC_KEY not set, advisor falls back to canned guidance")
	}

	return &appEnv{
		Store:   st,
		Advisor: advisor.New(client, cfg.Anthropic),
	}, nil
}

// loadProfile fetches the canonical profile for a user, failing loudly when
// the user has none.
func loadProfile(ctx context.Context, st store.Store, userID string) (*model.Profile, error) {
	p, err := st.GetProfile(ctx, userID)
	if err != nil {
		return nil, eris.Wrapf(err, "load profile %s", userID)
	}
	return p, nil
}

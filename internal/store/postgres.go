package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it in
// tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS scholarships (
	id         TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS saved_scholarships (
	user_id        TEXT NOT NULL,
	scholarship_id TEXT NOT NULL,
	saved_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, scholarship_id)
);

CREATE TABLE IF NOT EXISTS applications (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	scholarship_id TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	applied_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_saved_user ON saved_scholarships(user_id);
CREATE INDEX IF NOT EXISTS idx_applications_user ON applications(user_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) UpsertScholarship(ctx context.Context, sch model.Scholarship) error {
	if sch.ID == "" {
		sch.ID = uuid.New().String()
	}
	doc, err := json.Marshal(sch.Doc())
	if err != nil {
		return eris.Wrap(err, "postgres: marshal scholarship")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO scholarships (id, doc, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		sch.ID, doc, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: upsert scholarship %s", sch.ID)
}

func (s *PostgresStore) GetScholarship(ctx context.Context, id string) (*model.Scholarship, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM scholarships WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get scholarship %s", id)
	}
	return decodeScholarship(id, raw)
}

func (s *PostgresStore) ListScholarships(ctx context.Context) ([]model.Scholarship, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, doc FROM scholarships ORDER BY updated_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list scholarships")
	}
	defer rows.Close()

	var out []model.Scholarship
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan scholarship")
		}
		sch, err := decodeScholarship(id, raw)
		if err != nil {
			zap.L().Warn("postgres: skipping malformed scholarship", zap.String("id", id), zap.Error(err))
			continue
		}
		out = append(out, *sch)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate scholarships")
}

func (s *PostgresStore) PutProfile(ctx context.Context, doc model.ProfileDoc) error {
	if doc.UserID == "" {
		return eris.New("postgres: profile requires user id")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal profile")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, doc, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		doc.UserID, raw, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: put profile %s", doc.UserID)
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM profiles WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get profile %s", userID)
	}
	return decodeProfile(userID, raw)
}

func (s *PostgresStore) SaveScholarship(ctx context.Context, userID, scholarshipID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO saved_scholarships (user_id, scholarship_id, saved_at) VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING`,
		userID, scholarshipID, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: save scholarship %s for %s", scholarshipID, userID)
}

func (s *PostgresStore) ListSaved(ctx context.Context, userID string) ([]model.SavedScholarship, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, scholarship_id, saved_at FROM saved_scholarships WHERE user_id = $1`, userID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list saved for %s", userID)
	}
	defer rows.Close()

	var out []model.SavedScholarship
	for rows.Next() {
		var sv model.SavedScholarship
		if err := rows.Scan(&sv.UserID, &sv.ScholarshipID, &sv.SavedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan saved")
		}
		out = append(out, sv)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate saved")
}

func (s *PostgresStore) RecordApplication(ctx context.Context, app model.Application) (*model.Application, error) {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if app.Status == "" {
		app.Status = model.ApplicationPending
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO applications (id, user_id, scholarship_id, status, applied_at) VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.UserID, app.ScholarshipID, string(app.Status), app.AppliedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: record application for %s", app.UserID)
	}
	return &app, nil
}

func (s *PostgresStore) ListApplications(ctx context.Context, userID string) ([]model.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, scholarship_id, status, applied_at FROM applications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list applications for %s", userID)
	}
	defer rows.Close()

	var out []model.Application
	for rows.Next() {
		var app model.Application
		var status string
		if err := rows.Scan(&app.ID, &app.UserID, &app.ScholarshipID, &status, &app.AppliedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan application")
		}
		app.Status = model.ApplicationStatus(status)
		out = append(out, app)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate applications")
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS scholarships (
	id         TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS saved_scholarships (
	user_id        TEXT NOT NULL,
	scholarship_id TEXT NOT NULL,
	saved_at       DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (user_id, scholarship_id)
);

CREATE TABLE IF NOT EXISTS applications (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	scholarship_id TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	applied_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_saved_user ON saved_scholarships(user_id);
CREATE INDEX IF NOT EXISTS idx_applications_user ON applications(user_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertScholarship(ctx context.Context, sch model.Scholarship) error {
	if sch.ID == "" {
		sch.ID = uuid.New().String()
	}
	doc, err := json.Marshal(sch.Doc())
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal scholarship")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scholarships (id, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		sch.ID, string(doc), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: upsert scholarship %s", sch.ID)
}

func (s *SQLiteStore) GetScholarship(ctx context.Context, id string) (*model.Scholarship, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM scholarships WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get scholarship %s", id)
	}
	return decodeScholarship(id, []byte(raw))
}

func (s *SQLiteStore) ListScholarships(ctx context.Context) ([]model.Scholarship, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, doc FROM scholarships ORDER BY updated_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scholarships")
	}
	defer rows.Close()

	var out []model.Scholarship
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan scholarship")
		}
		sch, err := decodeScholarship(id, []byte(raw))
		if err != nil {
			// Malformed rows are a data-quality problem, not a batch failure.
			zap.L().Warn("sqlite: skipping malformed scholarship", zap.String("id", id), zap.Error(err))
			continue
		}
		out = append(out, *sch)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate scholarships")
}

func (s *SQLiteStore) PutProfile(ctx context.Context, doc model.ProfileDoc) error {
	if doc.UserID == "" {
		return eris.New("sqlite: profile requires user id")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal profile")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		doc.UserID, string(raw), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: put profile %s", doc.UserID)
}

func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE user_id = ?`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get profile %s", userID)
	}
	return decodeProfile(userID, []byte(raw))
}

func (s *SQLiteStore) SaveScholarship(ctx context.Context, userID, scholarshipID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO saved_scholarships (user_id, scholarship_id, saved_at) VALUES (?, ?, ?)`,
		userID, scholarshipID, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save scholarship %s for %s", scholarshipID, userID)
}

func (s *SQLiteStore) ListSaved(ctx context.Context, userID string) ([]model.SavedScholarship, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, scholarship_id, saved_at FROM saved_scholarships WHERE user_id = ?`, userID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list saved for %s", userID)
	}
	defer rows.Close()

	var out []model.SavedScholarship
	for rows.Next() {
		var sv model.SavedScholarship
		if err := rows.Scan(&sv.UserID, &sv.ScholarshipID, &sv.SavedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan saved")
		}
		out = append(out, sv)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate saved")
}

func (s *SQLiteStore) RecordApplication(ctx context.Context, app model.Application) (*model.Application, error) {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if app.Status == "" {
		app.Status = model.ApplicationPending
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (id, user_id, scholarship_id, status, applied_at) VALUES (?, ?, ?, ?, ?)`,
		app.ID, app.UserID, app.ScholarshipID, string(app.Status), app.AppliedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: record application for %s", app.UserID)
	}
	return &app, nil
}

func (s *SQLiteStore) ListApplications(ctx context.Context, userID string) ([]model.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, scholarship_id, status, applied_at FROM applications WHERE user_id = ?`, userID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list applications for %s", userID)
	}
	defer rows.Close()

	var out []model.Application
	for rows.Next() {
		var app model.Application
		var status string
		if err := rows.Scan(&app.ID, &app.UserID, &app.ScholarshipID, &status, &app.AppliedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan application")
		}
		app.Status = model.ApplicationStatus(status)
		out = append(out, app)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate applications")
}

// decodeScholarship unmarshals a stored document and normalizes it.
func decodeScholarship(id string, raw []byte) (*model.Scholarship, error) {
	var doc model.ScholarshipDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrapf(err, "store: unmarshal scholarship %s", id)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	sch, ok := doc.Canonical()
	if !ok {
		return nil, eris.Errorf("store: scholarship %s has unknown type %q", id, doc.Type)
	}
	return &sch, nil
}

// decodeProfile unmarshals a stored profile document, collapsing legacy
// field spellings.
func decodeProfile(userID string, raw []byte) (*model.Profile, error) {
	var doc model.ProfileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrapf(err, "store: unmarshal profile %s", userID)
	}
	if doc.UserID == "" {
		doc.UserID = userID
	}
	p := doc.Canonical()
	return &p, nil
}

// Package store persists scholarships, applicant profiles, bookmarks and
// applications behind a backend-agnostic interface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface consumed by the engine's callers.
// Scholarship documents are normalized through model.ScholarshipDoc on write,
// so readers always see canonical records.
type Store interface {
	// Scholarships
	UpsertScholarship(ctx context.Context, s model.Scholarship) error
	GetScholarship(ctx context.Context, id string) (*model.Scholarship, error)
	ListScholarships(ctx context.Context) ([]model.Scholarship, error)

	// Profiles
	PutProfile(ctx context.Context, doc model.ProfileDoc) error
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)

	// Bookmarks and applications
	SaveScholarship(ctx context.Context, userID, scholarshipID string) error
	ListSaved(ctx context.Context, userID string) ([]model.SavedScholarship, error)
	RecordApplication(ctx context.Context, app model.Application) (*model.Application, error)
	ListApplications(ctx context.Context, userID string) ([]model.Application, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs a Store for the configured driver.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	}
	return nil, eris.Errorf("store: unknown driver %q", driver)
}

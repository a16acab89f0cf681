// Package store defines the persistence capability set for the four entity
// kinds and provides two interchangeable implementations: an in-memory
// variant (maps plus monotonic counters) and a GORM-backed variant. The
// implementation is selected once at startup.
package store

import (
	"context"
	"errors"

	"github.com/datatrail-io/datatrail/internal/models"
)

// ErrNotFound signals that a record does not exist. Absence is always a
// sentinel, never a panic.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername signals a username collision on user creation.
var ErrDuplicateUsername = errors.New("username already taken")

// DatasetStore persists datasets.
type DatasetStore interface {
	List(ctx context.Context) ([]models.Dataset, error)
	GetByID(ctx context.Context, id uint64) (*models.Dataset, error)
	Create(ctx context.Context, d *models.Dataset) (*models.Dataset, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (*models.Dataset, error)
}

// ModelStore persists models. Models have no mutable fields after creation.
type ModelStore interface {
	List(ctx context.Context) ([]models.Model, error)
	GetByID(ctx context.Context, id uint64) (*models.Model, error)
	Create(ctx context.Context, m *models.Model) (*models.Model, error)
}

// RelationshipStore persists dataset/model training relationships.
type RelationshipStore interface {
	List(ctx context.Context) ([]models.Relationship, error)
	ListByDataset(ctx context.Context, datasetID uint64) ([]models.Relationship, error)
	ListByModel(ctx context.Context, modelID uint64) ([]models.Relationship, error)
	GetByID(ctx context.Context, id uint64) (*models.Relationship, error)
	Create(ctx context.Context, r *models.Relationship) (*models.Relationship, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (*models.Relationship, error)
}

// UserStore persists dashboard accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store aggregates the per-entity stores behind one handle.
type Store interface {
	Datasets() DatasetStore
	Models() ModelStore
	Relationships() RelationshipStore
	Users() UserStore

	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error
	Close() error
}

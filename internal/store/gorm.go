package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datatrail-io/datatrail/internal/models"
	"gorm.io/gorm"
)

// GormStore is the relational variant of the store, backed by any dialect
// the database package can open.
type GormStore struct {
	db            *gorm.DB
	datasets      *gormDatasets
	models        *gormModels
	relationships *gormRelationships
	users         *gormUsers
}

// NewGormStore wraps an open GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:            db,
		datasets:      &gormDatasets{db: db},
		models:        &gormModels{db: db},
		relationships: &gormRelationships{db: db},
		users:         &gormUsers{db: db},
	}
}

func (s *GormStore) Datasets() DatasetStore           { return s.datasets }
func (s *GormStore) Models() ModelStore               { return s.models }
func (s *GormStore) Relationships() RelationshipStore { return s.relationships }
func (s *GormStore) Users() UserStore                 { return s.users }

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormDatasets struct {
	db *gorm.DB
}

func (g *gormDatasets) List(ctx context.Context) ([]models.Dataset, error) {
	var out []models.Dataset
	if err := g.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return out, nil
}

func (g *gormDatasets) GetByID(ctx context.Context, id uint64) (*models.Dataset, error) {
	var d models.Dataset
	err := g.db.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	return &d, nil
}

func (g *gormDatasets) Create(ctx context.Context, d *models.Dataset) (*models.Dataset, error) {
	rec := *d
	rec.ID = 0
	rec.UploadedAt = time.Now().UTC()
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	return &rec, nil
}

func (g *gormDatasets) UpdateStatus(ctx context.Context, id uint64, status string) (*models.Dataset, error) {
	res := g.db.WithContext(ctx).Model(&models.Dataset{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update dataset status: %w", res.Error)
	}
	// RowsAffected is zero both for an absent row and for an unchanged
	// status, so absence is decided by the follow-up fetch.
	return g.GetByID(ctx, id)
}

type gormModels struct {
	db *gorm.DB
}

func (g *gormModels) List(ctx context.Context) ([]models.Model, error) {
	var out []models.Model
	if err := g.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return out, nil
}

func (g *gormModels) GetByID(ctx context.Context, id uint64) (*models.Model, error) {
	var m models.Model
	err := g.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return &m, nil
}

func (g *gormModels) Create(ctx context.Context, m *models.Model) (*models.Model, error) {
	rec := *m
	rec.ID = 0
	rec.CreatedAt = time.Now().UTC()
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}
	return &rec, nil
}

type gormRelationships struct {
	db *gorm.DB
}

func (g *gormRelationships) List(ctx context.Context) ([]models.Relationship, error) {
	var out []models.Relationship
	if err := g.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return out, nil
}

func (g *gormRelationships) ListByDataset(ctx context.Context, datasetID uint64) ([]models.Relationship, error) {
	var out []models.Relationship
	if err := g.db.WithContext(ctx).Where("dataset_id = ?", datasetID).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list relationships by dataset: %w", err)
	}
	return out, nil
}

func (g *gormRelationships) ListByModel(ctx context.Context, modelID uint64) ([]models.Relationship, error) {
	var out []models.Relationship
	if err := g.db.WithContext(ctx).Where("model_id = ?", modelID).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list relationships by model: %w", err)
	}
	return out, nil
}

func (g *gormRelationships) GetByID(ctx context.Context, id uint64) (*models.Relationship, error) {
	var r models.Relationship
	err := g.db.WithContext(ctx).First(&r, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	return &r, nil
}

func (g *gormRelationships) Create(ctx context.Context, r *models.Relationship) (*models.Relationship, error) {
	rec := *r
	rec.ID = 0
	rec.UsageDate = time.Now().UTC()
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create relationship: %w", err)
	}
	return &rec, nil
}

func (g *gormRelationships) UpdateStatus(ctx context.Context, id uint64, status string) (*models.Relationship, error) {
	res := g.db.WithContext(ctx).Model(&models.Relationship{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update relationship status: %w", res.Error)
	}
	return g.GetByID(ctx, id)
}

type gormUsers struct {
	db *gorm.DB
}

func (g *gormUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	rec := *u
	rec.ID = 0
	rec.CreatedAt = time.Now().UTC()
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &rec, nil
}

func (g *gormUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

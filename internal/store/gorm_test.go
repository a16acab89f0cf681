package store

import (
	"context"
	"testing"

	"github.com/datatrail-io/datatrail/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupGormStore creates a migrated in-memory SQLite store
func setupGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Dataset{},
		&models.Model{},
		&models.Relationship{},
	)
	require.NoError(t, err, "Failed to migrate test database")

	return NewGormStore(db)
}

func TestGormDatasetLifecycle(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	created, err := st.Datasets().Create(ctx, &models.Dataset{
		Name:      "open-images",
		Size:      "18 GB",
		ContentID: "QmOpenImages",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.False(t, created.UploadedAt.IsZero())

	fetched, err := st.Datasets().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "open-images", fetched.Name)

	_, err = st.Datasets().GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormDatasetCreateIgnoresCallerID(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	created, err := st.Datasets().Create(ctx, &models.Dataset{
		ID:        777,
		Name:      "id-probe",
		ContentID: "QmProbe",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID, "store assigns ids, not the caller")
}

func TestGormDatasetUpdateStatus(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	created, err := st.Datasets().Create(ctx, &models.Dataset{
		Name:        "squad",
		Description: "question answering",
		ContentID:   "QmSquad",
	})
	require.NoError(t, err)

	updated, err := st.Datasets().UpdateStatus(ctx, created.ID, "verified")
	require.NoError(t, err)
	assert.Equal(t, "verified", updated.Status)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Description, updated.Description)

	_, err = st.Datasets().UpdateStatus(ctx, created.ID+100, "verified")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormListOrderedByID(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := st.Models().Create(ctx, &models.Model{Name: name, ContentID: "Qm" + name})
		require.NoError(t, err)
	}

	list, err := st.Models().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "third", list[2].Name)
}

func TestGormRelationshipLookups(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	mk := func(datasetID, modelID uint64) {
		_, err := st.Relationships().Create(ctx, &models.Relationship{
			DatasetID: datasetID,
			ModelID:   modelID,
		})
		require.NoError(t, err)
	}
	mk(1, 1)
	mk(1, 2)
	mk(2, 2)

	byDataset, err := st.Relationships().ListByDataset(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byDataset, 2)

	byModel, err := st.Relationships().ListByModel(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byModel, 2)

	updated, err := st.Relationships().UpdateStatus(ctx, byDataset[0].ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
	assert.Equal(t, byDataset[0].DatasetID, updated.DatasetID)
}

func TestGormUserDuplicateUsername(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	_, err := st.Users().Create(ctx, &models.User{Username: "bob", Password: "hash"})
	require.NoError(t, err)

	_, err = st.Users().Create(ctx, &models.User{Username: "bob", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	found, err := st.Users().GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", found.Username)

	_, err = st.Users().GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormPing(t *testing.T) {
	st := setupGormStore(t)
	assert.NoError(t, st.Ping(context.Background()))
}

package helpers

import (
	"context"
	"testing"

	"github.com/datatrail-io/datatrail/internal/models"
	"github.com/datatrail-io/datatrail/internal/store"
)

// CreateTestDataset registers a dataset and returns the stored record
func CreateTestDataset(t *testing.T, st store.Store, name, cid string) *models.Dataset {
	t.Helper()
	created, err := st.Datasets().Create(context.Background(), &models.Dataset{
		Name:        name,
		Description: "test dataset",
		Size:        "1.5 KB",
		ContentID:   cid,
	})
	if err != nil {
		t.Fatalf("Failed to create dataset: %v", err)
	}
	return created
}

// CreateTestModel registers a model and returns the stored record
func CreateTestModel(t *testing.T, st store.Store, name, cid string) *models.Model {
	t.Helper()
	created, err := st.Models().Create(context.Background(), &models.Model{
		Name:        name,
		Description: "test model",
		ContentID:   cid,
	})
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	return created
}

// CreateTestRelationship links a dataset to a model and returns the record
func CreateTestRelationship(t *testing.T, st store.Store, datasetID, modelID uint64) *models.Relationship {
	t.Helper()
	created, err := st.Relationships().Create(context.Background(), &models.Relationship{
		DatasetID: datasetID,
		ModelID:   modelID,
	})
	if err != nil {
		t.Fatalf("Failed to create relationship: %v", err)
	}
	return created
}

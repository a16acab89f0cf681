package integration_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/datatrail-io/datatrail/internal/config"
	"github.com/datatrail-io/datatrail/internal/database"
	"github.com/datatrail-io/datatrail/internal/handlers"
	"github.com/datatrail-io/datatrail/internal/models"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/tests/helpers"
	"github.com/gofiber/fiber/v2"
)

// TestWithMariaDB tests the store and handlers with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	mc := helpers.StartMariaDB(t)
	defer mc.Terminate(t)

	cfg := &config.Config{
		StoreType:         "database",
		DBType:            "mariadb",
		DBHost:            mc.Host,
		DBPort:            mc.Port,
		DBDatabase:        mc.Database,
		DBUser:            mc.User,
		DBPassword:        mc.Password,
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	st := store.NewGormStore(db)
	defer st.Close()

	t.Run("CreateAndRetrieveDataset", func(t *testing.T) {
		testCreateAndRetrieveDataset(t, st)
	})

	t.Run("RelationshipLookups", func(t *testing.T) {
		testRelationshipLookups(t, st)
	})

	t.Run("StatusUpdateOverHTTP", func(t *testing.T) {
		testStatusUpdateOverHTTP(t, st)
	})
}

func testCreateAndRetrieveDataset(t *testing.T, st store.Store) {
	ctx := context.Background()

	created := helpers.CreateTestDataset(t, st, "imagenet-subset", "QmIntegrationDataset")
	if created.ID == 0 {
		t.Fatal("Expected a non-zero ID after create")
	}
	if created.Status != models.StatusPending {
		t.Errorf("Expected status %q, got %q", models.StatusPending, created.Status)
	}
	if created.UploadedAt.IsZero() {
		t.Error("Expected uploadedAt to be assigned by the store")
	}

	fetched, err := st.Datasets().GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to fetch dataset: %v", err)
	}
	if fetched.Name != "imagenet-subset" || fetched.ContentID != "QmIntegrationDataset" {
		t.Errorf("Fetched dataset does not match created one: %+v", fetched)
	}

	if _, err := st.Datasets().GetByID(ctx, 999999); err != store.ErrNotFound {
		t.Errorf("Expected ErrNotFound for missing dataset, got: %v", err)
	}
}

func testRelationshipLookups(t *testing.T, st store.Store) {
	ctx := context.Background()

	ds := helpers.CreateTestDataset(t, st, "lookup-dataset", "QmLookupDS")
	m1 := helpers.CreateTestModel(t, st, "lookup-model-1", "QmLookupM1")
	m2 := helpers.CreateTestModel(t, st, "lookup-model-2", "QmLookupM2")

	helpers.CreateTestRelationship(t, st, ds.ID, m1.ID)
	helpers.CreateTestRelationship(t, st, ds.ID, m2.ID)

	byDataset, err := st.Relationships().ListByDataset(ctx, ds.ID)
	if err != nil {
		t.Fatalf("Failed to list by dataset: %v", err)
	}
	if len(byDataset) != 2 {
		t.Errorf("Expected 2 relationships for dataset, got %d", len(byDataset))
	}

	byModel, err := st.Relationships().ListByModel(ctx, m1.ID)
	if err != nil {
		t.Fatalf("Failed to list by model: %v", err)
	}
	if len(byModel) != 1 {
		t.Errorf("Expected 1 relationship for model, got %d", len(byModel))
	}
}

func testStatusUpdateOverHTTP(t *testing.T, st store.Store) {
	ds := helpers.CreateTestDataset(t, st, "http-status-dataset", "QmHTTPStatus")

	app := fiber.New()
	handler := &handlers.DatasetHandler{Store: st}
	app.Get("/api/datasets/:id", handler.GetDataset)
	app.Patch("/api/datasets/:id/status", handler.UpdateDatasetStatus)

	req := httptest.NewRequest("PATCH", "/api/datasets/"+itoa(ds.ID)+"/status", jsonBody(`{"status":"verified"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var updated models.Dataset
	helpers.ParseJSON(t, resp, &updated)
	if updated.Status != "verified" {
		t.Errorf("Expected status verified, got %q", updated.Status)
	}
	if updated.Name != ds.Name || updated.ContentID != ds.ContentID {
		t.Error("Status update must not alter other fields")
	}

	// Missing record gives the fixed 404 envelope
	req = httptest.NewRequest("PATCH", "/api/datasets/999999/status", jsonBody(`{"status":"verified"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

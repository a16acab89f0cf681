package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/datatrail-io/datatrail/internal/handlers"
	"github.com/datatrail-io/datatrail/internal/lineage"
	"github.com/datatrail-io/datatrail/internal/pinning"
	"github.com/gofiber/fiber/v2"
)

// fakePinningService records calls and serves canned results.
type fakePinningService struct {
	uploadResult *pinning.UploadResult
	uploadErr    error
	uploadsRaw   json.RawMessage
	uploadsErr   error
	known        map[string]bool

	gotPaths    []string
	gotContents []string
	gotMetadata map[string]interface{}
}

func (f *fakePinningService) Upload(_ context.Context, paths []string, metadata map[string]interface{}) (*pinning.UploadResult, error) {
	f.gotPaths = paths
	f.gotMetadata = metadata
	// Contents are read here because the handler removes its scratch dir
	// before returning.
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		f.gotContents = append(f.gotContents, string(data))
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *fakePinningService) Uploads(_ context.Context) (json.RawMessage, error) {
	if f.uploadsErr != nil {
		return nil, f.uploadsErr
	}
	return f.uploadsRaw, nil
}

func (f *fakePinningService) Exists(_ context.Context, cid string) (bool, error) {
	if f.uploadsErr != nil {
		return false, f.uploadsErr
	}
	return f.known[cid], nil
}

func setupPinningApp(t *testing.T, svc *fakePinningService) *fiber.App {
	t.Helper()
	app := fiber.New()
	handler := &handlers.PinningHandler{Service: svc, TmpDir: t.TempDir()}
	app.Post("/api/ipfs/upload", handler.UploadFiles)
	app.Get("/api/ipfs/uploads", handler.ListUploads)
	app.Get("/api/ipfs/check/:cid", handler.CheckCID)
	return app
}

func multipartBody(t *testing.T, files map[string]string, metadata string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if metadata != "" {
		if err := writer.WriteField("metadata", metadata); err != nil {
			t.Fatalf("Failed to write metadata field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadFiles(t *testing.T) {
	svc := &fakePinningService{
		uploadResult: &pinning.UploadResult{ContentID: "QmPinned", DisplaySize: "1.5 KB"},
	}
	app := setupPinningApp(t, svc)

	body, contentType := multipartBody(t,
		map[string]string{"weights.bin": "0123456789"},
		`{"name":"weights","description":"trained model"}`)

	req := httptest.NewRequest("POST", "/api/ipfs/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result pinning.UploadResult
	decode(t, resp, &result)
	if result.ContentID != "QmPinned" {
		t.Errorf("Expected CID QmPinned, got %q", result.ContentID)
	}
	if len(svc.gotPaths) != 1 {
		t.Errorf("Expected 1 saved file path, got %d", len(svc.gotPaths))
	}
	if svc.gotMetadata["name"] != "weights" {
		t.Errorf("Expected metadata to be forwarded, got %v", svc.gotMetadata)
	}
}

func TestUploadFilesDuplicateBasenames(t *testing.T) {
	svc := &fakePinningService{
		uploadResult: &pinning.UploadResult{ContentID: "QmPinned", DisplaySize: "20 Bytes"},
	}
	app := setupPinningApp(t, svc)

	// Two parts carrying the same filename must not clobber each other
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, content := range []string{"first copy", "second copy"} {
		part, err := writer.CreateFormFile("files", "weights.bin")
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/ipfs/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	if len(svc.gotPaths) != 2 {
		t.Fatalf("Expected 2 saved file paths, got %d", len(svc.gotPaths))
	}
	if svc.gotPaths[0] == svc.gotPaths[1] {
		t.Errorf("Expected distinct scratch paths, both were %q", svc.gotPaths[0])
	}
	for i, p := range svc.gotPaths {
		if filepath.Base(p) != "weights.bin" {
			t.Errorf("Path %d: expected original basename weights.bin, got %q", i, filepath.Base(p))
		}
	}
	want := []string{"first copy", "second copy"}
	for i, content := range svc.gotContents {
		if content != want[i] {
			t.Errorf("File %d: expected content %q, got %q", i, want[i], content)
		}
	}
}

func TestUploadFilesNoFiles(t *testing.T) {
	app := setupPinningApp(t, &fakePinningService{})

	body, contentType := multipartBody(t, nil, "")
	req := httptest.NewRequest("POST", "/api/ipfs/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	var env errorEnvelope
	decode(t, resp, &env)
	if env.Message != "No files provided" {
		t.Errorf("Unexpected message: %q", env.Message)
	}
}

func TestUploadFilesBadMetadata(t *testing.T) {
	app := setupPinningApp(t, &fakePinningService{})

	body, contentType := multipartBody(t, map[string]string{"a.txt": "x"}, "{not json")
	req := httptest.NewRequest("POST", "/api/ipfs/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for invalid metadata JSON, got %d", resp.StatusCode)
	}
}

func TestUploadFilesMissingCredential(t *testing.T) {
	svc := &fakePinningService{uploadErr: pinning.ErrMissingCredential}
	app := setupPinningApp(t, svc)

	body, contentType := multipartBody(t, map[string]string{"a.txt": "x"}, "")
	req := httptest.NewRequest("POST", "/api/ipfs/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	// A missing key is a server misconfiguration, not a caller mistake
	if resp.StatusCode != 500 {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
	var env errorEnvelope
	decode(t, resp, &env)
	if env.Message != "Internal server error" {
		t.Errorf("Internal details must not leak, got %q", env.Message)
	}
}

func TestListUploadsRelaysRawJSON(t *testing.T) {
	raw := `{"data":{"fileList":[{"cid":"QmOne"}]}}`
	svc := &fakePinningService{uploadsRaw: json.RawMessage(raw)}
	app := setupPinningApp(t, svc)

	req := httptest.NewRequest("GET", "/api/ipfs/uploads", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	got, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	resp.Body.Close()
	if string(got) != raw {
		t.Errorf("Expected listing to be relayed unchanged, got %s", string(got))
	}
}

func TestCheckCID(t *testing.T) {
	svc := &fakePinningService{known: map[string]bool{"QmKnown": true}}
	app := setupPinningApp(t, svc)

	req := httptest.NewRequest("GET", "/api/ipfs/check/QmKnown", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var result map[string]bool
	decode(t, resp, &result)
	if !result["exists"] {
		t.Error("Expected exists=true for QmKnown")
	}

	req = httptest.NewRequest("GET", "/api/ipfs/check/QmUnknown", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	decode(t, resp, &result)
	if result["exists"] {
		t.Error("Expected exists=false for QmUnknown")
	}
}

func TestCheckCIDServiceError(t *testing.T) {
	svc := &fakePinningService{uploadsErr: errors.New("service down")}
	app := setupPinningApp(t, svc)

	req := httptest.NewRequest("GET", "/api/ipfs/check/QmAny", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
}

func TestVerifyLineageEndpoint(t *testing.T) {
	svc := &fakePinningService{known: map[string]bool{
		"QmDataset": true,
		"QmModel":   true,
	}}
	app := fiber.New()
	handler := &handlers.LineageHandler{Verifier: lineage.NewVerifier(svc)}
	app.Get("/api/lineage/verify", handler.VerifyLineage)

	req := httptest.NewRequest("GET", "/api/lineage/verify?datasetCid=QmDataset&modelCid=QmModel", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var result map[string]bool
	decode(t, resp, &result)
	if !result["verified"] {
		t.Error("Expected verified=true")
	}

	// A missing artifact fails the claim
	req = httptest.NewRequest("GET", "/api/lineage/verify?datasetCid=QmDataset&modelCid=QmMissing", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	decode(t, resp, &result)
	if result["verified"] {
		t.Error("Expected verified=false for a missing model")
	}

	// No identifiers at all is a caller error
	req = httptest.NewRequest("GET", "/api/lineage/verify", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for an empty claim, got %d", resp.StatusCode)
	}
}

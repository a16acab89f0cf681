// Package pinning wraps the external upload/pinning service. Files are
// handed over as local paths; the service returns an opaque content
// identifier (CID) for the pinned bundle.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrMissingCredential is returned when no service API key is configured.
// Callers surface it as a server misconfiguration, not a client error.
var ErrMissingCredential = errors.New("pinning service credential is not configured")

const (
	uploadPath  = "/api/v0/add"
	uploadsPath = "/api/user/files_uploaded"
)

// Client talks to the pinning service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a pinning client. The API key may be empty; every call
// then fails with ErrMissingCredential before reaching the network.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// UploadResult is the caller-facing outcome of an upload.
type UploadResult struct {
	ContentID   string `json:"contentId"`
	DisplaySize string `json:"displaySize"`
}

// uploadResponse mirrors the service's upload reply envelope.
type uploadResponse struct {
	Data struct {
		Hash string `json:"Hash"`
	} `json:"data"`
}

// uploadsResponse mirrors the service's listing envelope. Depending on the
// service version the array arrives as "uploads" or "fileList".
type uploadsResponse struct {
	Data struct {
		Uploads  []uploadEntry `json:"uploads"`
		FileList []uploadEntry `json:"fileList"`
	} `json:"data"`
}

type uploadEntry struct {
	CID string `json:"cid"`
}

// Upload bundles a metadata JSON attachment with the given files, submits
// everything to the service, and reports the returned content identifier
// plus a human-readable total size. The size is the sum of the declared
// on-disk file sizes; content is not verified.
func (c *Client) Upload(ctx context.Context, paths []string, metadata map[string]interface{}) (*UploadResult, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	allPaths := paths
	if metadata != nil {
		metaPath, cleanup, err := writeMetadataFile(metadata)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		allPaths = append(append([]string{}, paths...), metaPath)
	}

	var totalSize int64
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, p := range allPaths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat upload file: %w", err)
		}
		totalSize += info.Size()

		part, err := writer.CreateFormFile("file", filepath.Base(p))
		if err != nil {
			return nil, fmt.Errorf("create multipart field: %w", err)
		}
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open upload file: %w", err)
		}
		_, err = io.Copy(part, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("copy upload file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinning upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pinning upload failed: unexpected status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.Data.Hash == "" {
		return nil, fmt.Errorf("pinning upload failed: response carried no content identifier")
	}

	return &UploadResult{
		ContentID:   parsed.Data.Hash,
		DisplaySize: FormatFileSize(totalSize),
	}, nil
}

// Uploads returns the account's raw upload listing as the service sent it.
func (c *Client) Uploads(ctx context.Context) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+uploadsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build uploads request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinning listing failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pinning listing failed: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read uploads response: %w", err)
	}
	return json.RawMessage(raw), nil
}

// Exists reports whether the account has an upload with exactly the given
// content identifier. This is a linear scan over the full upload listing
// with no pagination, so cost grows with account history; it is not meant
// for high-frequency polling.
func (c *Client) Exists(ctx context.Context, cid string) (bool, error) {
	raw, err := c.Uploads(ctx)
	if err != nil {
		return false, err
	}

	var parsed uploadsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return false, fmt.Errorf("decode uploads response: %w", err)
	}

	entries := parsed.Data.Uploads
	if len(entries) == 0 {
		entries = parsed.Data.FileList
	}
	for _, entry := range entries {
		if entry.CID == cid {
			return true, nil
		}
	}
	return false, nil
}

// writeMetadataFile serializes metadata to a scratch JSON file and returns
// its path with a best-effort cleanup func.
func writeMetadataFile(metadata map[string]interface{}) (string, func(), error) {
	blob, err := json.Marshal(metadata)
	if err != nil {
		return "", nil, fmt.Errorf("marshal metadata: %w", err)
	}

	f, err := os.CreateTemp("", "datatrail-metadata-*.json")
	if err != nil {
		return "", nil, fmt.Errorf("create metadata file: %w", err)
	}
	if _, err := f.Write(blob); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("write metadata file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("close metadata file: %w", err)
	}

	name := f.Name()
	return name, func() { os.Remove(name) }, nil
}

// Package validation declares the recognized create-payload schemas and
// checks incoming bodies against them. Validation is strict and fails
// closed: an unrecognized shape yields a list of field-level errors, never
// partial acceptance.
package validation

import (
	"github.com/datatrail-io/datatrail/internal/types"
)

// DatasetCreate is the accepted body for POST /api/datasets.
type DatasetCreate struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Size        string           `json:"size" validate:"required"`
	ContentID   string           `json:"contentId" validate:"required"`
	Status      string           `json:"status" validate:"omitempty,min=1"`
	Metadata    *DatasetMetadata `json:"metadata" validate:"omitempty"`
}

// ModelCreate is the accepted body for POST /api/models.
type ModelCreate struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ContentID   string `json:"contentId" validate:"required"`
}

// RelationshipCreate is the accepted body for POST /api/relationships.
// Ids arrive as JSON numbers or numeric strings.
type RelationshipCreate struct {
	DatasetID types.FlexUint64 `json:"datasetId" validate:"required"`
	ModelID   types.FlexUint64 `json:"modelId" validate:"required"`
	Status    string           `json:"status" validate:"omitempty,min=1"`
}

// UserCredentials is the accepted body for register and login.
type UserCredentials struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=4,max=128"`
}

// StatusUpdate is the accepted body for the PATCH :id/status endpoints.
// The status must be a non-empty JSON string; any other shape is rejected.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,min=1"`
}

// DatasetMetadata is the standalone metadata document bundled with uploads
// and checked by POST /api/validate/metadata. The descriptive fields live in
// a nested info block.
type DatasetMetadata struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Tags        []string      `json:"tags" validate:"omitempty,dive,min=1"`
	Info        *MetadataInfo `json:"info" validate:"omitempty"`
}

// MetadataInfo carries provenance details about the described dataset.
type MetadataInfo struct {
	Source  string `json:"source" validate:"omitempty,min=1"`
	License string `json:"license" validate:"omitempty,min=1"`
	Version string `json:"version" validate:"omitempty,min=1"`
}

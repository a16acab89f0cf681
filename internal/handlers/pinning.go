package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/datatrail-io/datatrail/internal/pinning"
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PinningService is the slice of the pinning client the HTTP layer uses.
type PinningService interface {
	Upload(ctx context.Context, paths []string, metadata map[string]interface{}) (*pinning.UploadResult, error)
	Uploads(ctx context.Context) (json.RawMessage, error)
	Exists(ctx context.Context, cid string) (bool, error)
}

// PinningHandler handles upload and existence-check routes
type PinningHandler struct {
	Service PinningService
	TmpDir  string
}

// UploadFiles handles POST /api/ipfs/upload
// @Summary Upload files to the pinning service
// @Description Multipart upload; an optional metadata form field (JSON) is bundled as an extra attachment. Files stream through a scratch directory that is removed on every outcome.
// @Tags IPFS
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to pin"
// @Param metadata formData string false "Metadata JSON document"
// @Success 200 {object} pinning.UploadResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ipfs/upload [post]
func (h *PinningHandler) UploadFiles(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, "Invalid multipart form", fiber.StatusBadRequest, "ipfs.upload.form")
	}

	var metadata map[string]interface{}
	if raw := c.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			return utils.ErrorResponse(c, "Metadata is not valid JSON", fiber.StatusBadRequest, "ipfs.upload.metadata")
		}
	}

	scratch := filepath.Join(h.TmpDir, "datatrail-upload-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o700); err != nil {
		log.Printf("ipfs.upload: create scratch dir: %v", err)
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "ipfs.upload")
	}
	// Cleanup is best-effort on every outcome; a leftover scratch dir is
	// logged, not escalated.
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			log.Printf("ipfs.upload: failed to remove scratch dir %s: %v", scratch, err)
		}
	}()

	// Each file gets its own numbered subdirectory so uploads sharing a
	// basename do not overwrite each other while the original name survives
	// for the pinning service.
	var paths []string
	for _, headers := range form.File {
		for _, fh := range headers {
			sub := filepath.Join(scratch, strconv.Itoa(len(paths)))
			if err := os.MkdirAll(sub, 0o700); err != nil {
				log.Printf("ipfs.upload: create scratch dir: %v", err)
				return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "ipfs.upload")
			}
			dst := filepath.Join(sub, filepath.Base(fh.Filename))
			if err := c.SaveFile(fh, dst); err != nil {
				log.Printf("ipfs.upload: save file: %v", err)
				return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "ipfs.upload")
			}
			paths = append(paths, dst)
		}
	}
	if len(paths) == 0 {
		return utils.ErrorResponse(c, "No files provided", fiber.StatusBadRequest, "ipfs.upload.empty")
	}

	result, err := h.Service.Upload(c.Context(), paths, metadata)
	if err != nil {
		if errors.Is(err, pinning.ErrMissingCredential) {
			log.Printf("ipfs.upload: %v", err)
			return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "ipfs.upload.credential")
		}
		log.Printf("ipfs.upload: %v", err)
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "ipfs.upload")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ListUploads handles GET /api/ipfs/uploads
// @Summary List account uploads
// @Description Relay the pinning service's upload listing unchanged
// @Tags IPFS
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ipfs/uploads [get]
func (h *PinningHandler) ListUploads(c *fiber.Ctx) error {
	raw, err := h.Service.Uploads(c.Context())
	if err != nil {
		log.Printf("ipfs.uploads: %v", err)
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "ipfs.uploads")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(raw)
}

// CheckCID handles GET /api/ipfs/check/:cid
// @Summary Check content existence
// @Description Report whether the account holds an upload with exactly this content identifier
// @Tags IPFS
// @Produce json
// @Param cid path string true "Content identifier"
// @Success 200 {object} map[string]bool
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ipfs/check/{cid} [get]
func (h *PinningHandler) CheckCID(c *fiber.Ctx) error {
	cid := c.Params("cid")

	exists, err := h.Service.Exists(c.Context(), cid)
	if err != nil {
		log.Printf("ipfs.check: %v", err)
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "ipfs.check")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"exists": exists})
}

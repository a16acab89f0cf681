package handlers

import (
	"encoding/json"

	"github.com/datatrail-io/datatrail/internal/models"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/datatrail-io/datatrail/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// DatasetHandler handles dataset routes
type DatasetHandler struct {
	Store store.Store
}

// ListDatasets handles GET /api/datasets
// @Summary List datasets
// @Description Get all registered datasets in insertion order
// @Tags Datasets
// @Produce json
// @Success 200 {array} models.Dataset
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /datasets [get]
func (h *DatasetHandler) ListDatasets(c *fiber.Ctx) error {
	datasets, err := h.Store.Datasets().List(c.Context())
	if err != nil {
		return storeErrorResponse(c, err, "Dataset", "datasets.list")
	}
	return c.Status(fiber.StatusOK).JSON(datasets)
}

// GetDataset handles GET /api/datasets/:id
// @Summary Get a dataset
// @Description Get a single dataset by id
// @Tags Datasets
// @Produce json
// @Param id path int true "Dataset ID"
// @Success 200 {object} models.Dataset
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /datasets/{id} [get]
func (h *DatasetHandler) GetDataset(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badIDResponse(c)
	}

	dataset, err := h.Store.Datasets().GetByID(c.Context(), id)
	if err != nil {
		return storeErrorResponse(c, err, "Dataset", "datasets.get")
	}
	return c.Status(fiber.StatusOK).JSON(dataset)
}

// CreateDataset handles POST /api/datasets
// @Summary Register a dataset
// @Description Register a dataset that was pinned to the storage network
// @Tags Datasets
// @Accept json
// @Produce json
// @Param body body validation.DatasetCreate true "Dataset to register"
// @Success 201 {object} models.Dataset
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /datasets [post]
func (h *DatasetHandler) CreateDataset(c *fiber.Ctx) error {
	var body validation.DatasetCreate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
	}
	if errs := validation.Struct(body); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}

	dataset := &models.Dataset{
		Name:        body.Name,
		Description: body.Description,
		Size:        body.Size,
		Status:      body.Status,
		ContentID:   body.ContentID,
	}
	if body.Metadata != nil {
		blob, err := json.Marshal(body.Metadata)
		if err != nil {
			return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
		}
		dataset.Metadata = blob
	}

	created, err := h.Store.Datasets().Create(c.Context(), dataset)
	if err != nil {
		return storeErrorResponse(c, err, "Dataset", "datasets.create")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateDatasetStatus handles PATCH /api/datasets/:id/status
// @Summary Update dataset status
// @Description Update the status field of a dataset; no other field is mutable
// @Tags Datasets
// @Accept json
// @Produce json
// @Param id path int true "Dataset ID"
// @Param body body validation.StatusUpdate true "New status"
// @Success 200 {object} models.Dataset
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /datasets/{id}/status [patch]
func (h *DatasetHandler) UpdateDatasetStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badIDResponse(c)
	}

	var body validation.StatusUpdate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
	}
	if errs := validation.Struct(body); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}

	updated, err := h.Store.Datasets().UpdateStatus(c.Context(), id, body.Status)
	if err != nil {
		return storeErrorResponse(c, err, "Dataset", "datasets.updateStatus")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

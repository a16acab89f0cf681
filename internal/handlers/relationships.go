package handlers

import (
	"errors"
	"fmt"

	"github.com/datatrail-io/datatrail/internal/models"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/datatrail-io/datatrail/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// RelationshipHandler handles training-relationship routes
type RelationshipHandler struct {
	Store store.Store
}

// ListRelationships handles GET /api/relationships
// @Summary List relationships
// @Description Get all training relationships in insertion order
// @Tags Relationships
// @Produce json
// @Success 200 {array} models.Relationship
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /relationships [get]
func (h *RelationshipHandler) ListRelationships(c *fiber.Ctx) error {
	list, err := h.Store.Relationships().List(c.Context())
	if err != nil {
		return storeErrorResponse(c, err, "Relationship", "relationships.list")
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// ListByDataset handles GET /api/relationships/dataset/:id
// @Summary List relationships for a dataset
// @Description Get all training relationships referencing the given dataset
// @Tags Relationships
// @Produce json
// @Param id path int true "Dataset ID"
// @Success 200 {array} models.Relationship
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /relationships/dataset/{id} [get]
func (h *RelationshipHandler) ListByDataset(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badIDResponse(c)
	}

	list, err := h.Store.Relationships().ListByDataset(c.Context(), id)
	if err != nil {
		return storeErrorResponse(c, err, "Relationship", "relationships.listByDataset")
	}
	if list == nil {
		list = []models.Relationship{}
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// ListByModel handles GET /api/relationships/model/:id
// @Summary List relationships for a model
// @Description Get all training relationships referencing the given model
// @Tags Relationships
// @Produce json
// @Param id path int true "Model ID"
// @Success 200 {array} models.Relationship
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /relationships/model/{id} [get]
func (h *RelationshipHandler) ListByModel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badIDResponse(c)
	}

	list, err := h.Store.Relationships().ListByModel(c.Context(), id)
	if err != nil {
		return storeErrorResponse(c, err, "Relationship", "relationships.listByModel")
	}
	if list == nil {
		list = []models.Relationship{}
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// CreateRelationship handles POST /api/relationships
// @Summary Record a training relationship
// @Description Record that a model was trained using a dataset. The referenced dataset is checked before the model; a missing reference is rejected with 400 naming the absent entity.
// @Tags Relationships
// @Accept json
// @Produce json
// @Param body body validation.RelationshipCreate true "Relationship to record"
// @Success 201 {object} models.Relationship
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /relationships [post]
func (h *RelationshipHandler) CreateRelationship(c *fiber.Ctx) error {
	var body validation.RelationshipCreate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
	}
	if errs := validation.Struct(body); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}

	// Existence pre-checks, dataset first. The order is a fixed tie-break:
	// when both references are missing the dataset is the one reported.
	if _, err := h.Store.Datasets().GetByID(c.Context(), body.DatasetID.Uint64()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.ErrorResponse(c,
				fmt.Sprintf("Referenced dataset %d does not exist", body.DatasetID.Uint64()),
				fiber.StatusBadRequest, "relationships.reference.dataset")
		}
		return storeErrorResponse(c, err, "Dataset", "relationships.create")
	}
	if _, err := h.Store.Models().GetByID(c.Context(), body.ModelID.Uint64()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.ErrorResponse(c,
				fmt.Sprintf("Referenced model %d does not exist", body.ModelID.Uint64()),
				fiber.StatusBadRequest, "relationships.reference.model")
		}
		return storeErrorResponse(c, err, "Model", "relationships.create")
	}

	created, err := h.Store.Relationships().Create(c.Context(), &models.Relationship{
		DatasetID: body.DatasetID.Uint64(),
		ModelID:   body.ModelID.Uint64(),
		Status:    body.Status,
	})
	if err != nil {
		return storeErrorResponse(c, err, "Relationship", "relationships.create")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateRelationshipStatus handles PATCH /api/relationships/:id/status
// @Summary Update relationship status
// @Description Update the status field of a relationship; no other field is mutable
// @Tags Relationships
// @Accept json
// @Produce json
// @Param id path int true "Relationship ID"
// @Param body body validation.StatusUpdate true "New status"
// @Success 200 {object} models.Relationship
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /relationships/{id}/status [patch]
func (h *RelationshipHandler) UpdateRelationshipStatus(c *fiber.Ctx) error {
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

	updated, err := h.Store.Relationships().UpdateStatus(c.Context(), id, body.Status)
	if err != nil {
		return storeErrorResponse(c, err, "Relationship", "relationships.updateStatus")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

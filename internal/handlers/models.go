package handlers

import (
	"github.com/datatrail-io/datatrail/internal/models"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/datatrail-io/datatrail/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// ModelHandler handles model routes
type ModelHandler struct {
	Store store.Store
}

// ListModels handles GET /api/models
// @Summary List models
// @Description Get all registered models in insertion order
// @Tags Models
// @Produce json
// @Success 200 {array} models.Model
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /models [get]
func (h *ModelHandler) ListModels(c *fiber.Ctx) error {
	list, err := h.Store.Models().List(c.Context())
	if err != nil {
		return storeErrorResponse(c, err, "Model", "models.list")
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// GetModel handles GET /api/models/:id
// @Summary Get a model
// @Description Get a single model by id
// @Tags Models
// @Produce json
// @Param id path int true "Model ID"
// @Success 200 {object} models.Model
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /models/{id} [get]
func (h *ModelHandler) GetModel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badIDResponse(c)
	}

	model, err := h.Store.Models().GetByID(c.Context(), id)
	if err != nil {
		return storeErrorResponse(c, err, "Model", "models.get")
	}
	return c.Status(fiber.StatusOK).JSON(model)
}

// CreateModel handles POST /api/models
// @Summary Register a model
// @Description Register a trained model artifact pinned to the storage network
// @Tags Models
// @Accept json
// @Produce json
// @Param body body validation.ModelCreate true "Model to register"
// @Success 201 {object} models.Model
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /models [post]
func (h *ModelHandler) CreateModel(c *fiber.Ctx) error {
	var body validation.ModelCreate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
	}
	if errs := validation.Struct(body); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}

	created, err := h.Store.Models().Create(c.Context(), &models.Model{
		Name:        body.Name,
		Description: body.Description,
		ContentID:   body.ContentID,
	})
	if err != nil {
		return storeErrorResponse(c, err, "Model", "models.create")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

package handlers

import (
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/datatrail-io/datatrail/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// ValidationHandler handles dry-run schema checks
type ValidationHandler struct{}

// ValidateMetadata handles POST /api/validate/metadata
// @Summary Validate a metadata document
// @Description Dry-run the dataset metadata schema without storing anything
// @Tags Validation
// @Accept json
// @Produce json
// @Param body body validation.DatasetMetadata true "Metadata document"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /validate/metadata [post]
func (h *ValidationHandler) ValidateMetadata(c *fiber.Ctx) error {
	var body validation.DatasetMetadata
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
	}
	if errs := validation.Struct(body); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"valid": true})
}

package handlers

import (
	"errors"
	"log"

	"github.com/datatrail-io/datatrail/internal/lineage"
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// LineageHandler handles lineage verification routes
type LineageHandler struct {
	Verifier *lineage.Verifier
}

// VerifyLineage handles GET /api/lineage/verify
// @Summary Verify a lineage claim
// @Description Check that every named content identifier resolves on the pinning service. Presence is treated as confirmation; there is no cryptographic linkage between the artifacts.
// @Tags Lineage
// @Produce json
// @Param datasetCid query string true "Dataset content identifier"
// @Param processingCid query string false "Processing-step content identifier"
// @Param modelCid query string true "Model content identifier"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /lineage/verify [get]
func (h *LineageHandler) VerifyLineage(c *fiber.Ctx) error {
	claim := lineage.Claim{
		DatasetCID:    c.Query("datasetCid"),
		ProcessingCID: c.Query("processingCid"),
		ModelCID:      c.Query("modelCid"),
	}

	verified, err := h.Verifier.Verify(c.Context(), claim)
	if err != nil {
		if errors.Is(err, lineage.ErrNoIdentifiers) {
			return utils.ErrorResponse(c, "At least one content identifier is required", fiber.StatusBadRequest, "lineage.verify.input")
		}
		log.Printf("lineage.verify: %v", err)
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "lineage.verify")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"verified": verified})
}

package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// errParseID distinguishes a malformed id path param from a store failure.
var errParseID = errors.New("invalid id")

// parseID extracts a positive numeric id from the named path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errParseID
	}
	return id, nil
}

// badIDResponse rejects a malformed id path param.
func badIDResponse(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, "Invalid id", fiber.StatusBadRequest, "validation.id")
}

// storeErrorResponse maps a store failure to the wire: absence becomes a
// fixed 404, anything else is logged and surfaced as a generic 500 with no
// internal detail.
func storeErrorResponse(c *fiber.Ctx, err error, entity, errorType string) error {
	if errors.Is(err, store.ErrNotFound) {
		return utils.NotFoundResponse(c, entity+" not found")
	}
	log.Printf("%s: %v", errorType, err)
	return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, errorType)
}

package handlers

import (
	"errors"
	"log"

	"github.com/datatrail-io/datatrail/internal/services"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/utils"
	"github.com/datatrail-io/datatrail/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles account routes
type AuthHandler struct {
	Store     store.Store
	JWTSecret string
}

// Register handles POST /api/auth/register
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body validation.UserCredentials true "Credentials"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body validation.UserCredentials
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
	}
	if errs := validation.Struct(body); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}

	user, err := services.RegisterUser(c.Context(), h.Store, body.Username, body.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return utils.ErrorResponse(c, "Username already taken", fiber.StatusBadRequest, "auth.register.duplicate")
		}
		log.Printf("auth.register: %v", err)
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "auth.register")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body validation.UserCredentials true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body validation.UserCredentials
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.input")
	}
	if errs := validation.Struct(body); errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}

	token, err := services.Authenticate(c.Context(), h.Store, h.JWTSecret, body.Username, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid username or password", fiber.StatusUnauthorized, "auth.login")
		}
		log.Printf("auth.login: %v", err)
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "auth.login")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
}

// Me handles GET /api/auth/me (requires the auth middleware)
// @Summary Current account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"username": username})
}

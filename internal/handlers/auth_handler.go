package handlers

import (
	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/check-status", middleware.AuthRequired(h.authService), h.HandleCheckStatus)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in models.RegisterInput
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}

	result, err := h.authService.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleLogin exchanges credentials for a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in models.LoginInput
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleCheckStatus returns the caller with a refreshed token.
func (h *AuthHandler) HandleCheckStatus(c *fiber.Ctx) error {
	result, err := h.authService.CheckAuthStatus(middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

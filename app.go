package main

import (
	"time"

	"teslo/internal/config"
	"teslo/internal/handlers"
	"teslo/internal/repositories"
	"teslo/internal/services"
	"teslo/pkg/logger"
	"teslo/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// appServices bundles what the commands need besides the HTTP app.
type appServices struct {
	users    repositories.UserRepository
	auth     *services.AuthService
	products *services.ProductService
}

func newServices(cfg *config.Config, db *gorm.DB, log *logger.Logger) *appServices {
	users := repositories.NewGORMUserRepository(db)
	return &appServices{
		users:    users,
		auth:     services.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL, log),
		products: services.NewProductService(repositories.NewGORMProductRepository(db), log),
	}
}

// NewApp wires repositories, services and handlers into a Fiber app.
func NewApp(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*fiber.App, *services.AuthService) {
	svc := newServices(cfg, db, log)
	m := metrics.New("teslo")

	app := fiber.New(fiber.Config{
		AppName:      "teslo",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	if cfg.AppEnv != "test" {
		app.Use(fiberlogger.New())
	}
	app.Use(m.Middleware())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(svc.auth).RegisterRoutes(apiV1)
	handlers.NewProductHandler(svc.products, svc.auth).RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", m.Handler())

	return app, svc.auth
}

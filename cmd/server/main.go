package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/datatrail-io/datatrail/internal/config"
	"github.com/datatrail-io/datatrail/internal/database"
	"github.com/datatrail-io/datatrail/internal/handlers"
	"github.com/datatrail-io/datatrail/internal/lineage"
	"github.com/datatrail-io/datatrail/internal/middleware"
	"github.com/datatrail-io/datatrail/internal/pinning"
	"github.com/datatrail-io/datatrail/internal/services"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/types"

	_ "github.com/datatrail-io/datatrail/docs/api" // Swagger docs
)

// @title DataTrail API
// @version 1.0.0
// @description Provenance tracking between AI training datasets and derived models, with payloads pinned to decentralized storage
// @contact.name API Support
// @contact.url https://github.com/datatrail-io/datatrail

// @license.name MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the selected store variant
	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	// Explicit process-wide bootstrap, constructed once and passed down
	if err := services.BootstrapDemoUser(context.Background(), st, cfg.DemoUser, cfg.DemoPassword); err != nil {
		log.Fatalf("Failed to bootstrap demo user: %v", err)
	}

	pinClient := pinning.NewClient(cfg.PinningAPIURL, cfg.PinningAPIKey)
	verifier := lineage.NewVerifier(pinClient)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    cfg.UploadMaxBytes,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("datatrail")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.APIVersion())

	// Create handlers
	datasetHandler := &handlers.DatasetHandler{Store: st}
	modelHandler := &handlers.ModelHandler{Store: st}
	relationshipHandler := &handlers.RelationshipHandler{Store: st}
	validationHandler := &handlers.ValidationHandler{}
	pinningHandler := &handlers.PinningHandler{Service: pinClient, TmpDir: cfg.UploadTmpDir}
	lineageHandler := &handlers.LineageHandler{Verifier: verifier}
	authHandler := &handlers.AuthHandler{Store: st, JWTSecret: cfg.JWTSecret}
	healthHandler := &handlers.HealthHandler{Config: cfg, Store: st}

	// Dataset routes
	api.Get("/datasets", datasetHandler.ListDatasets)
	api.Get("/datasets/:id", datasetHandler.GetDataset)
	api.Post("/datasets", datasetHandler.CreateDataset)
	api.Patch("/datasets/:id/status", datasetHandler.UpdateDatasetStatus)

	// Model routes
	api.Get("/models", modelHandler.ListModels)
	api.Get("/models/:id", modelHandler.GetModel)
	api.Post("/models", modelHandler.CreateModel)

	// Relationship routes
	api.Get("/relationships", relationshipHandler.ListRelationships)
	api.Get("/relationships/dataset/:id", relationshipHandler.ListByDataset)
	api.Get("/relationships/model/:id", relationshipHandler.ListByModel)
	api.Post("/relationships", relationshipHandler.CreateRelationship)
	api.Patch("/relationships/:id/status", relationshipHandler.UpdateRelationshipStatus)

	// Schema dry-run
	api.Post("/validate/metadata", validationHandler.ValidateMetadata)

	// Pinning routes
	api.Post("/ipfs/upload", pinningHandler.UploadFiles)
	api.Get("/ipfs/uploads", pinningHandler.ListUploads)
	api.Get("/ipfs/check/:cid", pinningHandler.CheckCID)

	// Lineage verification
	api.Get("/lineage/verify", lineageHandler.VerifyLineage)

	// Accounts
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	// Health
	api.Get("/health", healthHandler.GetHealth)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// openStore selects the persistence variant configured by STORE_TYPE.
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreType == "memory" {
		log.Println("Using in-memory store")
		return store.NewMemoryStore(), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return store.NewGormStore(db), nil
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if it's a typed application error
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/app"
	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/handlers"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/services"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analyzer, embedder, err := app.NewAnalyzer(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize analyzer", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService(cfg.Storage.MaxFileSize)
	validate := handlers.NewValidator()

	var catalog *app.Catalog
	if cfg.Catalog.Enabled {
		catalog, err = app.NewCatalog(ctx, cfg, embedder, zl)
		if err != nil {
			zl.Fatal("failed to initialize job description catalog", zap.Error(err))
		}
		catalog.Indexer.Start(ctx)
		zl.Info("job description catalog enabled")
	}

	var catalogService services.CatalogService
	if catalog != nil {
		catalogService = catalog.Service
	}

	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, catalogService, validate, zl.Named("analyze"))
	extractHandler := handlers.NewExtractHandler(pdfParser, cfg.Storage.MaxFileSize, zl.Named("extract"))

	server := fiber.New(fiber.Config{
		AppName:      "Resume Radar API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    handlers.UploadBodyLimit(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	server.Use(recover.New())
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	endpoints := []string{
		"POST /api/v1/analyze",
		"POST /api/v1/extract-text",
	}

	api := server.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":             "healthy",
			"time":               time.Now(),
			"embedding_provider": embedder.Name(),
			"grammar":            cfg.Grammar.Enabled,
			"catalog":            cfg.Catalog.Enabled,
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/extract-text", extractHandler.HandleExtractText)

	// The original web client posts to the root paths.
	server.Post("/analyze", analyzeHandler.HandleAnalyze)
	server.Post("/extract-text", extractHandler.HandleExtractText)

	if catalog != nil {
		jdHandler := handlers.NewJobDescriptionHandler(catalog.Service, catalog.Indexer, validate, zl.Named("job_descriptions"))

		jd := api.Group("/job-descriptions")
		jd.Post("/search", jdHandler.HandleSearch)
		jd.Post("/", jdHandler.HandleCreate)
		jd.Get("/", jdHandler.HandleList)
		jd.Get("/:id", jdHandler.HandleGet)
		jd.Delete("/:id", jdHandler.HandleDelete)

		endpoints = append(endpoints,
			"POST /api/v1/job-descriptions",
			"GET /api/v1/job-descriptions",
			"GET /api/v1/job-descriptions/:id",
			"DELETE /api/v1/job-descriptions/:id",
			"POST /api/v1/job-descriptions/search",
		)
	}

	server.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume Radar API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		if catalog != nil {
			catalog.Indexer.Stop()
		}
		cancel()
		if err := server.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := server.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

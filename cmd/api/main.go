package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const appName = "Smart Resume Analyzer API"

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize services
	storage := services.NewTempStorage(cfg.Storage.TempDir)
	if err := storage.EnsureDir(); err != nil {
		log.Fatalf("❌ Failed to create temp directory: %v", err)
	}
	extractor := services.NewDocumentExtractor(storage)
	prompts := services.NewPromptBuilder(cfg.Prompts.Dir)

	geminiOpts := services.GeminiOptions{
		APIKey:          cfg.GenAI.APIKey,
		Model:           cfg.GenAI.Model,
		EmbedModel:      cfg.GenAI.EmbedModel,
		EmbedDimensions: cfg.GenAI.EmbedDimensions,
	}

	geminiService, err := services.NewGeminiService(ctx, geminiOpts)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized (model %s)", geminiService.ModelName())

	// built on the first similarity request
	scorer := services.NewSimilarityScorer(func(ctx context.Context) (services.Embedder, error) {
		return services.NewGeminiService(ctx, geminiOpts)
	})

	deps := services.ResumeServiceDeps{
		Extractor: extractor,
		Prompts:   prompts,
		Generator: geminiService,
		Cleaner:   services.NewCleaner(),
		Scorer:    scorer,
	}

	// Optional reference index
	if cfg.Qdrant.Enabled {
		index, err := services.NewReferenceIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.GenAI.EmbedDimensions)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		defer index.Close()

		if err := index.InitCollection(ctx); err != nil {
			log.Printf("⚠️  Qdrant unavailable, rewrites run without reference material: %v", err)
		} else {
			deps.Index = index
			deps.Embedder = geminiService
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	resumeService := services.NewResumeService(deps)
	log.Println("✅ Services initialized successfully")

	// Optional audit log
	var requestLogRepo repositories.RequestLogRepository
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		requestLogRepo = repositories.NewRequestLogRepository(db)

		if cfg.Database.Retention > 0 {
			pruned, err := requestLogRepo.DeleteOlderThan(time.Now().Add(-cfg.Database.Retention))
			if err != nil {
				log.Printf("⚠️  %v", err)
			} else {
				log.Printf("🧹 Pruned %d request logs older than %s", pruned, cfg.Database.Retention)
			}
		}
	}

	// Initialize Handlers
	resumeHandler := handlers.NewResumeHandler(resumeService, cfg.Storage.MaxFileSize, cfg.Server.RequestTimeout)
	healthHandler := handlers.NewHealthHandler(appName, geminiService.ModelName(), handlers.Features{
		Similarity:     true,
		ReferenceIndex: deps.Index != nil,
		AuditLog:       requestLogRepo != nil,
	})
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 10*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api")
	if requestLogRepo != nil {
		api.Use(handlers.NewAuditMiddleware(requestLogRepo))
	}

	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/analyze", resumeHandler.HandleAnalyze)
	api.Post("/improve", resumeHandler.HandleImprove)
	api.Post("/rewrite", resumeHandler.HandleRewrite)
	if requestLogRepo != nil {
		api.Get("/requests/:request_id", handlers.NewRequestLogHandler(requestLogRepo).HandleGetRequestLog)
	}

	app.Get("/", healthHandler.HandleRoot)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

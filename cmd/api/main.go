package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-tailor/internal/config"
	"resume-tailor/internal/handlers"
	"resume-tailor/internal/repositories"
	"resume-tailor/internal/services"
)

func main() {
	setupOnly := flag.Bool("setup", false, "run idempotent schema setup and exit")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	if *setupOnly {
		if err := config.EnsureSchema(cfg); err != nil {
			log.Fatalf("❌ Schema setup failed: %v", err)
		}
		return
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize renderer
	rendererService, err := services.NewRendererService(
		cfg.Renderer.TemplateDir,
		cfg.Renderer.ChromePath,
		cfg.Renderer.Timeout,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize renderer: %v", err)
	}
	log.Println("✅ Renderer initialized successfully")

	// Initialize generator and chat
	generatorService := services.NewGeneratorService(
		userRepo,
		jobRepo,
		geminiService,
		cfg.Gemini.Model,
		cfg.Worker.RetryMaxAttempts,
	)

	chatService := services.NewChatService(
		jobRepo,
		geminiService,
		cfg.Gemini.ChatModel,
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Generator and chat services initialized")

	// Initialize worker
	worker := services.NewWorker(generatorService, cfg.Worker.Concurrency)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	userHandler := handlers.NewUserHandler(
		userRepo,
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobRepo, userRepo, worker)
	chatHandler := handlers.NewChatHandler(chatService)
	renderHandler := handlers.NewRenderHandler(jobRepo, rendererService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Tailor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/users", userHandler.HandleCreateUser)
	api.Get("/users/:id", userHandler.HandleGetUser)
	api.Get("/users/:id/jobs", jobHandler.HandleListJobs)
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Post("/jobs/:id/generate", jobHandler.HandleGenerate)
	api.Get("/jobs/:id/chat", chatHandler.HandleGetChat)
	api.Post("/jobs/:id/chat", chatHandler.HandleChat)
	api.Get("/jobs/:id/resume.pdf", renderHandler.HandleDownloadPDF)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Tailor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/users",
				"GET /api/v1/users/:id",
				"GET /api/v1/users/:id/jobs",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/jobs/:id/generate",
				"GET /api/v1/jobs/:id/chat",
				"POST /api/v1/jobs/:id/chat",
				"GET /api/v1/jobs/:id/resume.pdf",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

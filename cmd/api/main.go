package main

import (
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
	"github.com/joho/godotenv"

	"github.com/ovcommute/ovcommute_core/internal/api"
	"github.com/ovcommute/ovcommute_core/internal/cache"
	"github.com/ovcommute/ovcommute_core/internal/config"
	"github.com/ovcommute/ovcommute_core/internal/ovapi"
	"github.com/ovcommute/ovcommute_core/internal/transit"
)

func main() {
	log.Println("Starting OV commute API server...")

	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("✓ Configuration loaded")

	// Response cache fronting the upstream API; Redis when requested so
	// several instances share one TTL window, in-memory otherwise.
	var store cache.Store
	if getEnv("CACHE_BACKEND", "memory") == "redis" {
		redisStore, err := cache.NewRedisStore()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer cache.Close()
		store = redisStore
		log.Println("✓ Redis response cache connected")
	} else {
		store = cache.NewMemoryStore(cfg.OVAPI.CacheTTL())
		log.Println("✓ In-memory response cache initialized")
	}

	client := ovapi.NewClient(ovapi.Config{
		BaseURL:       cfg.OVAPI.BaseURL,
		UserAgent:     cfg.OVAPI.UserAgent,
		Timeout:       cfg.OVAPI.Timeout(),
		RetryAttempts: cfg.OVAPI.RetryAttempts,
		RetryBackoff:  cfg.OVAPI.RetryBackoff(),
		CacheTTL:      cfg.OVAPI.CacheTTL(),
	}, store)

	table := transit.NewDirectionTable(cfg.Directions)
	svc := transit.NewService(client, table)
	handler := api.NewHandler(svc, cfg.Commutes)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "OV Commute API",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	handler.Register(app)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error": "endpoint not found",
		})
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	// Start server
	log.Printf("🚀 Server listening on http://localhost%s", addr)
	log.Printf("📍 Morning commute: http://localhost%s/v1/commutes/morning", addr)
	log.Printf("❤️  Health check: http://localhost%s/health", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// customErrorHandler handles errors returned from handlers
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

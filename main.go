package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apptrack/cache"
	"apptrack/config"
	"apptrack/database"
	"apptrack/handlers"
	"apptrack/middleware"
	"apptrack/routes"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis (fail-open: caching and rate limits degrade to no-ops)
	cache.InitRedis(cfg.RedisURL)
	defer cache.Close()

	// Connect to database
	db := database.Connect(cfg)

	// Initialize handlers and middleware with config
	handlers.Init(db)
	handlers.InitAuthHandlers(cfg)
	middleware.InitMiddleware(cfg)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Application Tracker API",
	})

	// Middleware
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Prometheus metrics
	prom := fiberprometheus.New("apptrack")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Setup routes
	routes.Setup(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

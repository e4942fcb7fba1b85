// Package routes registers the HTTP route table.
package routes

import (
	"time"

	"apptrack/cache"
	"apptrack/handlers"
	"apptrack/middleware"

	"github.com/gofiber/fiber/v2"
)

// Setup registers all routes. The auth endpoints sit behind a fixed-window
// rate limit; middleware.AuthRequired is available but deliberately bound to
// no route until a product decision names the routes it should protect.
func Setup(app *fiber.App) {
	// Application routes
	app.Get("/applications", handlers.GetApplications)
	app.Post("/applications", handlers.CreateApplication)
	app.Put("/applications/:id", handlers.UpdateApplication)
	app.Delete("/applications/:id", handlers.DeleteApplication)

	// Auth routes
	app.Post("/register", middleware.RateLimit(cache.Client, 20, time.Minute, "register"), handlers.Register)
	app.Post("/login", middleware.RateLimit(cache.Client, 10, time.Minute, "login"), handlers.Login)
}

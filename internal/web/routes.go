package web

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"blogfront/internal/config"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, source ContentSource, cfg *config.Config) {
	// Initialize handlers
	handlers, err := NewHandlers(cfg, source)
	if err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	// Assets and health
	app.Get("/static/style.css", handlers.Style)
	app.Get("/health", handlers.HealthCheck)

	// Static pages
	app.Get("/", handlers.Home)
	app.Get("/about", handlers.About)
	app.Get("/contact", handlers.Contact)

	// Blog pages
	blog := app.Group("/blog")
	{
		blog.Get("", handlers.BlogIndex)      // Article list
		blog.Get("/:id", handlers.BlogDetail) // Article detail by documentId
	}

	// 404 Handler
	app.Use(handlers.NotFound)
}

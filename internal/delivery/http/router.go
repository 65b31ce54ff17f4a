package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/weatherwidget/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, widget *service.WidgetService, weather *service.WeatherService, repo service.DataRepository) {
	handler := NewHandler(widget, weather, repo)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Widget page
	app.Get("/", handler.Index)
	app.Post("/search", handler.Search)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/state", handler.GetState)
		api.Get("/weather", handler.GetWeather)
		api.Get("/lookups", handler.GetLookups)
	}
}

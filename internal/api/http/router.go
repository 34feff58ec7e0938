package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sheet-ticket-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	tickets := app.Group("/api/tickets")
	tickets.Post("/create", cfg.Tickets.CreateTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Get("/find/status/:status", cfg.Tickets.GetTicketsByStatus)
}

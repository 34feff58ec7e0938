package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sheet-ticket-service/internal/persistence"
)

// StorePinger reports reachability of the backing spreadsheet.
type StorePinger interface {
	Ping(ctx context.Context, spreadsheetID string) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName   string
	version       string
	store         StorePinger
	spreadsheetID string
	redis         *persistence.Redis
}

// NewHealthHandler returns a new handler instance. redis may be nil when the
// cache is disabled.
func NewHealthHandler(serviceName, version string, store StorePinger, spreadsheetID string, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName:   serviceName,
		version:       version,
		store:         store,
		spreadsheetID: spreadsheetID,
		redis:         redis,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.store.Ping(ctx, h.spreadsheetID); err != nil {
		depStatus["sheets"] = err.Error()
		ready = false
	} else {
		depStatus["sheets"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			depStatus["redis"] = err.Error()
			ready = false
		} else {
			depStatus["redis"] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

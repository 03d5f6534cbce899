package handler

import (
	"context"
	"time"

	"career-guidance/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports each dependency. The database is required; the
// cache is optional and only degrades the status.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok", "cache": "ok"}
	status := fiber.StatusOK
	msg := "ok"

	if h.db == nil || h.db.Ping(ctx) != nil {
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
		msg = "unhealthy"
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		checks["cache"] = "bypassed"
		if status == fiber.StatusOK {
			msg = "degraded"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, msg, checks)
	}
	return response.Success(c, status, msg, checks)
}

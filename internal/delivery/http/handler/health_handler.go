package handler

import (
	"context"
	"time"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports 503 only when the database is down; a missing cache
// degrades ranking to uncached.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	out := dto.HealthResponse{Status: "ok", Services: map[string]string{}}
	status := fiber.StatusOK

	out.Services["database"] = probe(ctx, h.db)
	if out.Services["database"] != "up" {
		out.Status = "unavailable"
		status = fiber.StatusServiceUnavailable
	}

	out.Services["redis"] = probe(ctx, h.cache)
	if out.Services["redis"] != "up" && status == fiber.StatusOK {
		out.Status = "degraded"
	}

	return response.Success(c, status, "", out)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

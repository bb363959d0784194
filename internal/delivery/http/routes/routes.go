package routes

import (
	"talent-match/internal/delivery/http/handler"
	v1 "talent-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	metrics fiber.Handler
	ws      fiber.Handler
	v1      v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, metrics, ws fiber.Handler, api v1.Handlers) *Registry {
	return &Registry{health: health, metrics: metrics, ws: ws, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	if r.metrics != nil {
		app.Get("/metrics", r.metrics)
	}
	if r.ws != nil {
		app.Get("/ws/matches", r.ws)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}

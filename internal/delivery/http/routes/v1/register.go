package v1

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth         *middleware.AuthMiddleware
	Match        *handler.MatchHandler
	Scoring      *handler.ScoringHandler
	Applications *handler.ApplicationHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.Auth == nil {
		return
	}

	protected := r.Group("", h.Auth.Middleware(jwt.RoleRecruiter, jwt.RoleAdmin))

	if h.Match != nil {
		h.Match.RegisterRoutes(protected)
	}
	if h.Scoring != nil {
		h.Scoring.RegisterRoutes(protected)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(protected)
	}
}

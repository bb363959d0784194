package app

import (
	"talent-match/internal/config"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	v1 "talent-match/internal/delivery/http/routes/v1"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.Name})

	registerGlobalMiddleware(f, c.Log)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects to the backing services and builds the HTTP app. The
// returned cleanup closes them.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(log.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	reg := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, cachePinger),
		adaptor.HTTPHandler(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})),
		ws.NewHandler(c.Hub, c.Log.Named("ws")).HandleMatchesWS,
		v1.Handlers{
			Auth:         middleware.NewAuthMiddleware(c.JWT),
			Match:        handler.NewMatchHandler(c.Matching, c.Ranking),
			Scoring:      handler.NewScoringHandler(c.Scoring),
			Applications: handler.NewApplicationHandler(c.Applications),
		},
	)
	reg.Register(app)
}

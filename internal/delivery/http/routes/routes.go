package routes

import (
	"career-guidance/internal/delivery/http/handler"
	"career-guidance/internal/delivery/http/middleware"
	v1 "career-guidance/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Health        *handler.HealthHandler
	V1            v1.Handlers
	Auth          *middleware.AuthMiddleware
	Notifications fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.Notifications == nil {
		return
	}
	app.Get("/ws/notifications", r.Auth.QueryMiddleware(), r.Notifications)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.V1, r.Auth.Middleware())
}

package app

import (
	"context"
	"fmt"
	"strings"

	"career-guidance/internal/config"
	"career-guidance/internal/delivery/http/handler"
	"career-guidance/internal/delivery/http/middleware"
	"career-guidance/internal/delivery/http/routes"
	v1 "career-guidance/internal/delivery/http/routes/v1"
	"career-guidance/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application around an existing container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	var health handler.Pinger
	if c.Cache != nil {
		health = c.Cache
	}
	reg := &routes.Registry{
		Health: handler.NewHealthHandler(c.DB, health),
		V1: v1.Handlers{
			Assessment: handler.NewAssessmentHandler(c.Assessment),
			Results:    handler.NewResultHandler(c.Assessment),
			Careers:    handler.NewCareerHandler(c.CareerSearch),
		},
		Auth:          middleware.NewAuthMiddleware(c.JWT),
		Notifications: ws.NewHandler(c.Hub, c.Logger).HandleNotifications,
	}
	reg.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects dependencies, starts the notification hub and returns
// the app with a cleanup func that stops both.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	if err := cfg.RequireJWT(); err != nil {
		return nil, nil, err
	}
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

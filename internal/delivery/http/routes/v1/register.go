package v1

import (
	"career-guidance/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Assessment *handler.AssessmentHandler
	Results    *handler.ResultHandler
	Careers    *handler.CareerHandler
}

// Register mounts the v1 API. Questions are public; everything else sits
// behind auth.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Assessment != nil {
		h.Assessment.RegisterPublicRoutes(r)
	}

	protected := r.Group("", auth)
	if h.Assessment != nil {
		h.Assessment.RegisterRoutes(protected)
	}
	if h.Results != nil {
		h.Results.RegisterRoutes(protected)
	}
	if h.Careers != nil {
		h.Careers.RegisterRoutes(protected)
	}
}

package ws

import (
	"net/http"

	"career-guidance/internal/delivery/http/middleware"
	"career-guidance/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub      *Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, log *zap.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger.OrNop(log).Named("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleNotifications upgrades an authenticated request and subscribes the
// connection to the caller's notifications.
func (h *Handler) HandleNotifications(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	ident := middleware.IdentityFrom(c)
	if !ident.Authenticated() {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("upgrade failed", zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn, ident.UserID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})
	return upgrade(c)
}

package ws

import (
	"context"
	"encoding/json"
	"sync"

	"career-guidance/internal/domain/notification"
	"career-guidance/internal/logger"

	"go.uber.org/zap"
)

type message struct {
	userID string
	data   []byte
}

// Hub routes notifications to the open connections of each user. Run owns
// the client set; everything else talks to it over channels. Once Run
// returns, Register and Unregister close the client instead of blocking.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	direct     chan message
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zap.Logger
}

var _ notification.Notifier = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		direct:     make(chan message, 1024),
		done:       make(chan struct{}),
		logger:     logger.OrNop(log).Named("ws"),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			h.drainRegistrations()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := len(set)
			h.mutex.Unlock()
			h.logger.Debug("client connected", zap.String("user_id", client.userID), zap.Int("user_clients", total))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.direct:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, c := range targets {
				select {
				case c.send <- msg.data:
				default:
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	client.closeSend()
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug("client disconnected", zap.String("user_id", client.userID))
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for uid, set := range h.clients {
		for c := range set {
			c.closeSend()
		}
		delete(h.clients, uid)
	}
}

// drainRegistrations closes clients queued after the final select.
func (h *Hub) drainRegistrations() {
	for {
		select {
		case c := <-h.register:
			if c != nil {
				c.closeSend()
			}
		default:
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
		return
	}
	// Run may have stopped between the send and here.
	select {
	case <-h.done:
		client.closeSend()
	default:
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
		client.closeSend()
	}
}

// Notify queues n for userID. Notifications for users without an open
// connection are dropped, and so are notifications that find the queue full.
func (h *Hub) Notify(userID string, n notification.Notification) {
	if h == nil || userID == "" {
		return
	}
	b, err := json.Marshal(n)
	if err != nil {
		h.logger.Warn("notification encode failed", zap.Error(err))
		return
	}
	select {
	case h.direct <- message{userID: userID, data: b}:
	default:
		h.logger.Warn("notification dropped", zap.String("user_id", userID), zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount(userID string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}

package http

import (
	"encoding/json"

	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/progress"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// ProgressWSHandler streams per-page sync progress events to websocket
// clients. One subscription per connection, scoped to a single hub.
type ProgressWSHandler struct {
	broker *progress.Broker
	log    logger.Logger
}

// NewProgressWSHandler creates a new ProgressWSHandler.
func NewProgressWSHandler(broker *progress.Broker, log logger.Logger) *ProgressWSHandler {
	return &ProgressWSHandler{
		broker: broker,
		log:    log.WithComponent("progress_ws"),
	}
}

// RegisterRoutes registers the websocket endpoint.
func (h *ProgressWSHandler) RegisterRoutes(router fiber.Router) {
	ws := router.Group("/api/v1/sync/progress")

	// Middleware to ensure it's a WebSocket upgrade request
	ws.Use("/:hubId", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("hubId", c.Params("hubId"))
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	ws.Get("/:hubId", websocket.New(h.handleConnection))
}

// wsMessage is the envelope sent to websocket clients.
type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// handleConnection pumps progress events to one connected client until
// the client disconnects or the subscription is torn down.
func (h *ProgressWSHandler) handleConnection(conn *websocket.Conn) {
	hubID, _ := conn.Locals("hubId").(string)
	if hubID == "" {
		_ = conn.Close()
		return
	}

	subscriberID, events := h.broker.Subscribe(hubID)
	defer h.broker.Unsubscribe(hubID, subscriberID)

	log := h.log.WithFields(map[string]interface{}{
		"hub_id":        hubID,
		"subscriber_id": subscriberID,
	})
	log.Info("Progress stream connected")

	// Reader goroutine: only watches for client disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(wsMessage{Type: "page_completed", Data: event})
			if err != nil {
				log.Errorf("Failed to encode progress event: %v", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Infof("Progress stream closed: %v", err)
				return
			}
		case <-done:
			log.Info("Progress stream disconnected")
			return
		}
	}
}

package handlers

import (
	"net/http"
	"sync"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// eventHub fans settlement events out to connected websocket clients.
type eventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

var hub = &eventHub{conns: make(map[*websocket.Conn]struct{})}

func (h *eventHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *eventHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	conn.Close()
}

func (h *eventHub) broadcast(event models.SettlementEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// InitEventStream wires the websocket hub into the settlement event stream.
// Call once at startup.
func InitEventStream() {
	business.RegisterEventSink(hub.broadcast)
}

// StreamEvents upgrades the connection and streams settlement events until
// the client disconnects
func StreamEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	hub.add(conn)

	// Reader loop only detects disconnects; the stream is one-way.
	go func() {
		defer hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

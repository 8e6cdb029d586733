package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"belediyeBack/internal/logger"
	"belediyeBack/internal/metrics"
)

const (
	readLimit     = 4 << 10
	readDeadline  = 60 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 25 * time.Second
)

// event is the frame pushed to admin dashboards.
type event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans events out to connected admin dashboards. All access to clients happens in Run.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	log        logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan event, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			metrics.WebSocketClients.Set(float64(len(h.clients)))

		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				_ = conn.Close()
				metrics.WebSocketClients.Set(float64(len(h.clients)))
			}

		case ev := <-h.broadcast:
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(ev); err != nil {
					h.log.Warning("websocket send failed", logger.String("event", ev.Type), logger.Error(err))
					delete(h.clients, conn)
					_ = conn.Close()
				}
			}
			metrics.WebSocketClients.Set(float64(len(h.clients)))

		case <-h.done:
			for conn := range h.clients {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
					time.Now().Add(writeDeadline))
				_ = conn.Close()
			}
			h.clients = map[*websocket.Conn]bool{}
			metrics.WebSocketClients.Set(0)
			return
		}
	}
}

// Broadcast queues an event. It drops the event when the queue is full or the hub is closed.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	select {
	case h.broadcast <- event{Type: eventType, Data: payload}:
	case <-h.done:
	default:
		h.log.Warning("websocket queue full, event dropped", logger.String("event", eventType))
	}
}

func (h *Hub) Close() {
	close(h.done)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebSocketHandler upgrades a staff request. Dashboards only listen; inbound frames are discarded.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.log.Warning("websocket upgrade", logger.Error(err))
		return
	}

	select {
	case app.hub.register <- conn:
	case <-app.hub.done:
		_ = conn.Close()
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	close(stop)

	select {
	case app.hub.unregister <- conn:
	case <-app.hub.done:
	}
}

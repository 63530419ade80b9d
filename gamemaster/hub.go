package gamemaster

import (
	"net/http"
	"sync"

	"territory/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Message is the envelope pushed to websocket subscribers.
type Message struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// Hub pushes state views to every connected render client. Clients may
// also send Commands over the socket; the outcome is broadcast to all.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	session *Session
}

func NewHub(session *Session) *Hub {
	if session == nil {
		panic("Must provide a session")
	}
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		session: session,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS upgrades the request, sends the current state and then serves
// commands until the client goes away.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade connection")
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	err = conn.WriteJSON(Message{Action: "state", Data: h.session.View()})
	h.mu.Unlock()
	if err != nil {
		h.drop(conn)
		return
	}
	log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("render client connected")

	defer h.drop(conn)
	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			log.Debug().Err(err).Msg("render client disconnected")
			return
		}
		view, err := h.session.Do(cmd)
		if err != nil {
			h.send(conn, Message{Action: "error", Data: err.Error()})
		}
		h.Broadcast(view)
	}
}

// Broadcast sends view to every subscriber, dropping the ones that fail.
func (h *Hub) Broadcast(view game.View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	message := Message{Action: "state", Data: view}
	for conn := range h.clients {
		if err := conn.WriteJSON(message); err != nil {
			log.Warn().Err(err).Msg("failed to send state")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) send(conn *websocket.Conn, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	if err := conn.WriteJSON(message); err != nil {
		log.Warn().Err(err).Msg("failed to send message")
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

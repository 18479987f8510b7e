package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/SzymonKubica/advent-of-code/runner/runs"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// AllPuzzles subscribes to every puzzle's events
	AllPuzzles = "*"

	EventRunCompleted = "run_completed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	Puzzle string    `json:"puzzle"`
	Event  string    `json:"event"`
	Run    *runs.Run `json:"run,omitempty"`
	Data   any       `json:"data,omitempty"`
}

// Client represents a WebSocket client subscribed to one puzzle
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	puzzle string
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by puzzle name
	topics map[string]map[*Client]bool
	mu     sync.RWMutex

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-h.done:
			return
		}
	}
}

// Stop ends the event loop
func (h *Hub) Stop() {
	close(h.done)
}

// ServeWS upgrades the request and subscribes the client to puzzle
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, puzzle string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		puzzle: puzzle,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// RunCompleted queues a run_completed event for the run's puzzle. A full
// queue drops the event rather than blocking the solver.
func (h *Hub) RunCompleted(run *runs.Run) {
	h.BroadcastEvent(run.Puzzle, EventRunCompleted, run)
}

// BroadcastEvent queues an event for the subscribers of puzzle
func (h *Hub) BroadcastEvent(puzzle, event string, data any) {
	message := &Message{Puzzle: puzzle, Event: event}
	if run, ok := data.(*runs.Run); ok {
		message.Run = run
	} else {
		message.Data = data
	}

	select {
	case h.broadcast <- message:
	default:
		logrus.WithFields(logrus.Fields{
			"puzzle": puzzle,
			"event":  event,
		}).Warn("WebSocket broadcast queue full, dropping event")
	}
}

// Clients returns the number of clients subscribed to puzzle
func (h *Hub) Clients(puzzle string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[puzzle])
}

// registerClient adds a client to its topic
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[client.puzzle] == nil {
		h.topics[client.puzzle] = make(map[*Client]bool)
	}
	h.topics[client.puzzle][client] = true

	logrus.WithFields(logrus.Fields{
		"puzzle":  client.puzzle,
		"clients": len(h.topics[client.puzzle]),
	}).Debug("Client registered")
}

// unregisterClient removes a client from its topic
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.topics[client.puzzle]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)

	// Clean up empty topics
	if len(clients) == 0 {
		delete(h.topics, client.puzzle)
	}

	logrus.WithFields(logrus.Fields{
		"puzzle":  client.puzzle,
		"clients": len(clients),
	}).Debug("Client unregistered")
}

// broadcastMessage sends a message to the puzzle's subscribers and to
// those of AllPuzzles
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		logrus.WithError(err).Warn("Failed to marshal broadcast message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	topics := []string{message.Puzzle}
	if message.Puzzle != AllPuzzles {
		topics = append(topics, AllPuzzles)
	}
	for _, topic := range topics {
		for client := range h.topics[topic] {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, drop it
				h.removeLocked(client)
			}
		}
	}
}

// leave unregisters the client unless the hub has stopped
func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Incoming messages are ignored; reading keeps the connection alive
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("WebSocket closed")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

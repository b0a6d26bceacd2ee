// Package wsserver exposes a Sheet over a websocket connection so a
// browser-based grid can watch it update live. One process owns the
// Sheet and is its only writer; connected clients are broadcast
// viewers that may also submit edits. Each connection is served on its
// own goroutine, and every edit is applied while holding the server's
// sheet mutex, so there is never more than one edit in flight at a time.
package wsserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vogtb/gosheet/internal/position"
	"github.com/vogtb/gosheet/internal/sheet"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server wraps a Sheet and broadcasts every edit to its connected
// clients.
type Server struct {
	log *log.Logger

	mu    sync.Mutex
	sheet *sheet.Sheet

	clientsMu sync.Mutex
	clients   map[uuid.UUID]*client

	presets map[string]Preset
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	out  chan Envelope
}

// New builds a Server around sheet, ready to accept connections.
func New(sh *sheet.Sheet, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		log:     logger,
		sheet:   sh,
		clients: make(map[uuid.UUID]*client),
		presets: builtinPresets(),
	}
}

// ClientMessage is the inbound wire shape a browser client sends.
type ClientMessage struct {
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
	Text    string `json:"text,omitempty"`
	Preset  string `json:"preset,omitempty"`
}

// Envelope is the outbound wire shape pushed to every client.
type Envelope struct {
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
	Raw     string `json:"raw,omitempty"`
	Display string `json:"display,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleWebSocket upgrades r and serves the connection until it closes.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{id: uuid.New(), conn: conn, out: make(chan Envelope, 64)}
	s.addClient(c)
	defer s.removeClient(c)

	go c.writeLoop(s.log)

	s.sendSnapshot(c)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.log.Printf("malformed client message: %v", err)
			continue
		}
		s.handle(msg)
	}
}

func (s *Server) addClient(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c.id] = c
	s.log.Printf("client connected: %s", c.id)
}

func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c.id)
	s.clientsMu.Unlock()
	close(c.out)
	s.log.Printf("client disconnected: %s", c.id)
}

func (c *client) writeLoop(logger *log.Logger) {
	for env := range c.out {
		if err := c.conn.WriteJSON(env); err != nil {
			logger.Printf("write to client %s failed: %v", c.id, err)
			return
		}
	}
}

func (s *Server) handle(msg ClientMessage) {
	switch msg.Type {
	case "set_cell":
		s.setCell(msg.Address, msg.Text)
	case "clear_cell":
		s.clearCell(msg.Address)
	case "load_preset":
		s.loadPreset(msg.Preset)
	default:
		s.log.Printf("unknown client message type: %q", msg.Type)
	}
}

func (s *Server) setCell(address, text string) {
	pos, err := position.Parse(address)
	if err != nil {
		s.broadcast(Envelope{Type: "cell_updated", Address: address, Error: err.Error()})
		return
	}

	s.mu.Lock()
	err = s.sheet.SetCell(pos, text)
	s.mu.Unlock()

	if err != nil {
		s.broadcast(Envelope{Type: "cell_updated", Address: address, Error: err.Error()})
		return
	}
	// A formula edit can ripple through an arbitrary set of dependents
	// that the Sheet API does not report individually, so the simplest
	// correct broadcast is a full resync rather than guessing which
	// cells changed.
	s.broadcastSnapshot()
}

func (s *Server) clearCell(address string) {
	pos, err := position.Parse(address)
	if err != nil {
		s.broadcast(Envelope{Type: "cell_updated", Address: address, Error: err.Error()})
		return
	}

	s.mu.Lock()
	err = s.sheet.ClearCell(pos)
	s.mu.Unlock()

	if err != nil {
		s.broadcast(Envelope{Type: "cell_updated", Address: address, Error: err.Error()})
		return
	}
	s.broadcastSnapshot()
}

func (s *Server) loadPreset(name string) {
	preset, ok := s.presets.clone(name)
	if !ok {
		s.log.Printf("unknown preset requested: %q", name)
		return
	}

	s.mu.Lock()
	s.sheet = sheet.New()
	for _, edit := range preset.Edits {
		pos, err := position.Parse(edit.Address)
		if err != nil {
			continue
		}
		if err := s.sheet.SetCell(pos, edit.Text); err != nil {
			s.log.Printf("preset %q edit %s rejected: %v", name, edit.Address, err)
		}
	}
	s.mu.Unlock()

	s.broadcastSnapshot()
}

func (s *Server) broadcast(env Envelope) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for _, c := range s.clients {
		select {
		case c.out <- env:
		default:
			s.log.Printf("dropping slow client %s", c.id)
		}
	}
}

func (s *Server) sendSnapshot(c *client) {
	s.mu.Lock()
	envs := s.snapshotLocked()
	s.mu.Unlock()
	for _, env := range envs {
		select {
		case c.out <- env:
		default:
		}
	}
}

func (s *Server) broadcastSnapshot() {
	s.mu.Lock()
	envs := s.snapshotLocked()
	s.mu.Unlock()
	s.broadcast(Envelope{Type: "reset"})
	for _, env := range envs {
		s.broadcast(env)
	}
}

func (s *Server) snapshotLocked() []Envelope {
	rows, cols := s.sheet.GetPrintableSize()
	var envs []Envelope
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := position.Position{Row: r, Col: c}
			cell, _ := s.sheet.GetCell(p)
			if cell == nil {
				continue
			}
			envs = append(envs, cellEnvelope(p, cell))
		}
	}
	return envs
}

func cellEnvelope(pos position.Position, cell *sheet.Cell) Envelope {
	if cell == nil {
		return Envelope{Type: "cell_updated", Address: position.Format(pos)}
	}
	return Envelope{
		Type:    "cell_updated",
		Address: position.Format(pos),
		Raw:     cell.GetRaw(),
		Display: cell.GetValue().String(),
	}
}

// RegisterRoutes mounts the websocket endpoint on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.HandleWebSocket)
}

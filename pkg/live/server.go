package live

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/senghongH/devdocs/pkg/vdom"
)

// Server handles WebSocket connections for server-driven components.
// Each connection gets its own session, scheduler and component instance;
// no state is shared between sessions.
type Server struct {
	upgrader websocket.Upgrader
	factory  ComponentFactory
	sessions map[string]*Session
	mu       sync.RWMutex
}

// Session represents one live connection
type Session struct {
	ID      string
	conn    *websocket.Conn
	mount   *Mount
	server  *Server
	lastSeq uint64

	sendChan  chan []byte
	closeChan chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

// NewServer creates a new live protocol server
func NewServer(factory ComponentFactory) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			// Sessions carry no credentials and drive build-time-authored
			// UI only, so cross-origin upgrades are acceptable here
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		factory:  factory,
		sessions: make(map[string]*Session),
	}
}

// HandleWebSocket handles WebSocket upgrade and session management.
// The session ID is the final path segment.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	sessionID := parts[len(parts)-1]
	if sessionID == "" || sessionID == "live" {
		http.Error(w, "session ID required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live] failed to upgrade connection: %v", err)
		return
	}

	session := &Session{
		ID:        sessionID,
		conn:      conn,
		server:    s,
		sendChan:  make(chan []byte, 256),
		closeChan: make(chan struct{}),
	}

	s.mu.Lock()
	if old, exists := s.sessions[sessionID]; exists {
		old.close()
	}
	s.sessions[sessionID] = session
	s.mu.Unlock()

	go session.handleConnection()
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// removeSession drops a session from the registry
func (s *Server) removeSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// handleConnection manages the WebSocket connection for a session
func (s *Session) handleConnection() {
	defer s.close()

	go s.writer()

	s.sendHello()

	s.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Live %s] unexpected close: %v", s.ID, err)
			}
			return
		}

		if messageType == websocket.BinaryMessage {
			s.handleBinaryMessage(data)
		}
	}
}

// close tears down the connection and the mounted component
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
		close(s.closeChan)
		s.mu.Lock()
		if s.mount != nil {
			s.mount.Close()
			s.mount = nil
		}
		s.mu.Unlock()
		s.server.removeSession(s.ID)
	})
}

// writer is the single goroutine allowed to write to the connection
func (s *Session) writer() {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-s.sendChan:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				log.Printf("[Live %s] write failed: %v", s.ID, err)
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.closeChan:
			return
		}
	}
}

// sendHello sends the initial server hello
func (s *Session) sendHello() {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)

	encoder.WriteBytes([]byte{byte(FrameControl)})
	encoder.WriteString("HELLO")
	encoder.WriteUvarint(s.lastSeq)

	s.enqueue(buf.Bytes())
}

// sendControl sends a control message
func (s *Session) sendControl(msgType string) {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)

	encoder.WriteBytes([]byte{byte(FrameControl)})
	encoder.WriteString(msgType)

	s.enqueue(buf.Bytes())
}

// enqueue queues a frame for the writer, dropping it if the buffer is full
func (s *Session) enqueue(frame []byte) bool {
	select {
	case s.sendChan <- frame:
		return true
	default:
		log.Printf("[Live %s] send buffer full, dropping frame", s.ID)
		return false
	}
}

// handleBinaryMessage processes binary protocol frames
func (s *Session) handleBinaryMessage(data []byte) {
	if len(data) == 0 {
		return
	}

	switch MessageType(data[0]) {
	case FrameEvent:
		event, err := DecodeEvent(data)
		if err != nil {
			log.Printf("[Live %s] failed to decode event: %v", s.ID, err)
			return
		}
		s.handleEvent(event)

	case FrameControl:
		s.handleControl(data[1:])
	}
}

// handleControl processes a control frame payload
func (s *Session) handleControl(payload []byte) {
	decoder := NewDecoder(bytes.NewReader(payload))
	msgType, err := decoder.ReadString()
	if err != nil {
		log.Printf("[Live %s] failed to decode control frame: %v", s.ID, err)
		return
	}

	switch msgType {
	case "HELLO":
		// Client hello names the component this session drives
		componentID, err := decoder.ReadString()
		if err != nil {
			log.Printf("[Live %s] malformed HELLO: %v", s.ID, err)
			return
		}
		s.mountComponent(componentID)

	case "PING":
		s.sendControl("PONG")
	}
}

// mountComponent creates the session's component instance
func (s *Session) mountComponent(componentID string) {
	if s.server.factory == nil {
		log.Printf("[Live %s] no component factory configured", s.ID)
		return
	}

	mount, err := NewMount(componentID, s.server.factory, s)
	if err != nil {
		log.Printf("[Live %s] mounting %q: %v", s.ID, componentID, err)
		return
	}

	s.mu.Lock()
	if s.mount != nil {
		s.mount.Close()
	}
	s.mount = mount
	s.mu.Unlock()

	log.Printf("[Live %s] mounted component %q", s.ID, componentID)
}

// handleEvent routes a client event to the mounted component
func (s *Session) handleEvent(event *Event) {
	s.mu.Lock()
	mount := s.mount
	s.mu.Unlock()

	if mount == nil {
		log.Printf("[Live %s] event before mount, dropping", s.ID)
		return
	}

	if err := mount.HandleEvent(event); err != nil {
		log.Printf("[Live %s] event for node %d: %v", s.ID, event.NodeID, err)
	}
}

// SendPatches encodes and queues a patch batch for the client
func (s *Session) SendPatches(patches []vdom.Patch) error {
	if len(patches) == 0 {
		return nil
	}

	data, err := EncodePatches(patches)
	if err != nil {
		return fmt.Errorf("encoding patches: %w", err)
	}

	if !s.enqueue(data) {
		return fmt.Errorf("send buffer full")
	}
	s.lastSeq++
	return nil
}

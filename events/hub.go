package events

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

const defaultWriteTimeout = 5 * time.Second

// Hub broadcasts events to every connected WebSocket client.
type Hub struct {
	mu           sync.Mutex
	peers        map[string]*peer
	writeTimeout time.Duration
}

type peer struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

// send fails once the client has stopped reading for longer than timeout.
func (p *peer) send(frame []byte, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return websocket.Message.Send(p.conn, string(frame))
}

func NewHub() *Hub {
	return &Hub{peers: make(map[string]*peer), writeTimeout: defaultWriteTimeout}
}

// Handler upgrades the request and keeps the connection registered until the
// client goes away. Clients are not expected to send anything; inbound frames
// are read and dropped so close frames are noticed.
func (h *Hub) Handler() http.Handler {
	return websocket.Server{
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler:   h.serve,
	}
}

func (h *Hub) serve(conn *websocket.Conn) {
	p := &peer{id: uuid.NewString(), conn: conn}
	h.mu.Lock()
	h.peers[p.id] = p
	h.mu.Unlock()
	defer h.drop(p.id)

	for {
		var discard string
		if err := websocket.Message.Receive(conn, &discard); err != nil {
			return
		}
	}
}

func (h *Hub) drop(id string) {
	h.mu.Lock()
	p, ok := h.peers[id]
	delete(h.peers, id)
	h.mu.Unlock()
	if ok {
		_ = p.conn.Close()
	}
}

// Len is the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

func (h *Hub) Publish(_ context.Context, ev Event) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return h.Broadcast(frame)
}

// Broadcast writes an already encoded frame to all peers. Peers that fail the
// write, or do not take it within the write timeout, are dropped.
func (h *Hub) Broadcast(frame []byte) error {
	h.mu.Lock()
	peers := make([]*peer, 0, len(h.peers))
	for _, p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		if err := p.send(frame, h.writeTimeout); err != nil {
			log.Printf("events: dropping client %s: %v", p.id, err)
			h.drop(p.id)
		}
	}
	return nil
}

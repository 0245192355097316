// Package hub implements the clipboard broker inside the wlclip daemon.
// It is transport-agnostic: the backend peer and every IPC watcher register,
// receive updates through Send, and publish new contents. There is exactly
// one selection, so the hub's state is the latest items and their origin.
package hub

import (
	"log/slog"
	"sync"

	"go.klb.dev/wlclip/internal/message"
)

// Event is a clipboard update delivered to a peer.
type Event struct {
	Source string
	Items  []message.Item
}

// Peer is anything that can receive clipboard updates from the hub.
type Peer interface {
	ID() string
	// Send delivers an event to the peer. Must be non-blocking.
	Send(Event)
}

// Hub routes clipboard updates between all registered peers.
type Hub struct {
	mu           sync.RWMutex
	peers        map[string]Peer
	latest       []message.Item
	latestSource string
}

// New returns an empty Hub.
func New() *Hub {
	return &Hub{peers: make(map[string]Peer)}
}

// Register adds a peer and immediately delivers the current contents, if any.
func (h *Hub) Register(p Peer) {
	h.mu.Lock()
	h.peers[p.ID()] = p
	latest, src := h.latest, h.latestSource
	total := len(h.peers)
	h.mu.Unlock()

	slog.Info("peer registered", "peer", p.ID(), "total", total)

	if len(latest) > 0 {
		p.Send(Event{Source: src, Items: latest})
	}
}

// Unregister removes a peer from the hub.
func (h *Hub) Unregister(p Peer) {
	h.mu.Lock()
	delete(h.peers, p.ID())
	total := len(h.peers)
	h.mu.Unlock()

	slog.Info("peer unregistered", "peer", p.ID(), "total", total)
}

// Publish stores items as the current contents and fans out to every peer
// except the origin.
func (h *Hub) Publish(items []message.Item, originID, source string) {
	h.mu.Lock()
	h.latest = items
	h.latestSource = source
	var targets []Peer
	for id, p := range h.peers {
		if id != originID {
			targets = append(targets, p)
		}
	}
	h.mu.Unlock()

	for _, p := range targets {
		p.Send(Event{Source: source, Items: items})
	}
}

// Latest returns the current contents and their source, optionally filtered
// by accepted MIME types.
func (h *Hub) Latest(accept []string) ([]message.Item, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return message.FilterItems(h.latest, accept), h.latestSource
}

// Watchers returns the number of registered peers.
func (h *Hub) Watchers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

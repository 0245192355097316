package daemon

import (
	"log/slog"
	"reflect"
	"sync"

	"go.klb.dev/wlclip/internal/clip"
	"go.klb.dev/wlclip/internal/hub"
	"go.klb.dev/wlclip/internal/message"
)

const backendPeerID = "backend"

// backendPeer is the hub.Peer that owns the daemon's clipboard backend.
type backendPeer struct {
	h       *hub.Hub
	backend clip.Backend
	source  string
	sendCh  chan hub.Event

	mu        sync.Mutex
	lastItems []message.Item
}

func newBackendPeer(h *hub.Hub, backend clip.Backend, source string) *backendPeer {
	return &backendPeer{
		h:       h,
		backend: backend,
		source:  source,
		sendCh:  make(chan hub.Event, 64),
	}
}

func (p *backendPeer) ID() string { return backendPeerID }

// Send implements hub.Peer — queues incoming updates for the backend writer.
func (p *backendPeer) Send(ev hub.Event) {
	select {
	case p.sendCh <- ev:
	default:
		slog.Warn("backend peer send channel full, dropping")
	}
}

// run registers with the hub and starts the watch + write loops.
// Blocks until the backend is closed; call in a goroutine.
func (p *backendPeer) run() {
	p.h.Register(p)
	defer p.h.Unregister(p)

	slog.Info("clipboard backend peer started", "backend", p.backend.Name())

	// Writer: apply published updates to the backend.
	go func() {
		for ev := range p.sendCh {
			if len(ev.Items) == 0 || p.seen(ev.Items) {
				continue
			}
			if err := p.backend.Write(ev.Items); err != nil {
				slog.Error("clipboard write failed", "err", err)
			} else {
				slog.Debug("clipboard updated", "source", ev.Source, "items", len(ev.Items))
			}
		}
	}()

	// Watcher: publish backend changes to the hub.
	for range p.backend.Watch() {
		items, err := p.backend.Read()
		if err != nil {
			slog.Error("clipboard read failed", "err", err)
			continue
		}
		if len(items) == 0 || p.seen(items) {
			continue
		}
		slog.Debug("clipboard changed, publishing", "items", len(items))
		p.h.Publish(items, backendPeerID, p.source)
	}
}

// seen records items as the latest contents and reports whether they already
// were — the dedup that stops watch/write echo loops.
func (p *backendPeer) seen(items []message.Item) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if reflect.DeepEqual(items, p.lastItems) {
		return true
	}
	p.lastItems = items
	return false
}

// watchPeer is a transient hub.Peer backed by one IPC WATCH subscription.
type watchPeer struct {
	id string
	ch chan hub.Event
}

func (p *watchPeer) ID() string { return p.id }

func (p *watchPeer) Send(ev hub.Event) {
	select {
	case p.ch <- ev:
	default:
		slog.Warn("watch peer channel full, dropping", "peer", p.id)
	}
}

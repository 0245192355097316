// Package daemon runs the wlclip hub process: it bridges the clipboard
// backend into the hub and serves the IPC socket that the CLI tools
// (and containers with the socket mounted) talk to.
package daemon

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"go.klb.dev/wlclip/internal/clip"
	"go.klb.dev/wlclip/internal/crypto"
	"go.klb.dev/wlclip/internal/hub"
	"go.klb.dev/wlclip/internal/message"
	"go.klb.dev/wlclip/internal/wire"
)

// Daemon couples one clipboard backend, one hub, and one IPC listener.
type Daemon struct {
	h       *hub.Hub
	backend clip.Backend
	source  string
	token   string
	key     *[32]byte // nil = plaintext IPC
}

// New builds a daemon. token may be empty: then connections are neither
// authenticated nor encrypted, which is fine for a socket only the local
// user can reach.
func New(h *hub.Hub, backend clip.Backend, source, token string) (*Daemon, error) {
	d := &Daemon{h: h, backend: backend, source: source, token: token}
	if token != "" {
		key, err := crypto.DeriveKey(token)
		if err != nil {
			return nil, fmt.Errorf("daemon: %w", err)
		}
		d.key = key
	}
	return d, nil
}

// Run serves IPC connections on ln and drives the backend until ln is
// closed. If the backend carries its own event loop (clip.Runner), it is
// driven here too.
func (d *Daemon) Run(ln net.Listener) error {
	if r, ok := d.backend.(clip.Runner); ok {
		go r.Run()
	}
	go newBackendPeer(d.h, d.backend, d.source).run()

	slog.Info("daemon listening", "addr", ln.Addr(), "backend", d.backend.Name(), "auth", d.token != "")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go d.handle(conn)
	}
}

// handle serves one IPC connection until it closes or subscribes.
func (d *Daemon) handle(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn, d.key)
	id := fmt.Sprintf("ipc/%p", conn)
	authed := d.token == ""

	for {
		msg, err := wc.ReadMsg()
		if err != nil {
			return
		}

		if !authed && msg.Type != message.TypeAuth {
			_ = wc.WriteMsg(&message.Message{Type: message.TypeError, Error: "authentication required"})
			return
		}

		switch msg.Type {
		case message.TypeAuth:
			tok, err := base64.StdEncoding.DecodeString(msg.Payload)
			if err != nil || string(tok) != d.token {
				_ = wc.WriteMsg(&message.Message{Type: message.TypeError, Error: "invalid token"})
				return
			}
			authed = true

		case message.TypeClipboard:
			src := msg.Source
			if src == "" {
				src = id
			}
			hub.LogItems("clipboard received", src, msg.Items)
			d.h.Publish(msg.Items, id, src)

		case message.TypePaste:
			items, src := d.h.Latest(msg.Accept)
			_ = wc.WriteMsg(&message.Message{
				Type:   message.TypePasteResponse,
				Source: src,
				Items:  items,
			})

		case message.TypeTargets:
			_ = wc.WriteMsg(&message.Message{
				Type:    message.TypeTargetsResponse,
				Targets: d.targets(),
			})

		case message.TypeStatus:
			_, src := d.h.Latest(nil)
			_ = wc.WriteMsg(&message.Message{
				Type: message.TypeStatusResponse,
				Status: &message.Status{
					Backend:  d.backend.Name(),
					Watchers: d.h.Watchers(),
					Targets:  d.targets(),
					Source:   src,
				},
			})

		case message.TypeWatch:
			d.serveWatch(wc, id)
			return

		default:
			_ = wc.WriteMsg(&message.Message{
				Type:  message.TypeError,
				Error: fmt.Sprintf("unexpected message type %q", msg.Type),
			})
		}
	}
}

// serveWatch streams clipboard updates until the connection breaks.
func (d *Daemon) serveWatch(wc *wire.Conn, id string) {
	wp := &watchPeer{id: id + "/watch", ch: make(chan hub.Event, 16)}
	d.h.Register(wp)
	defer d.h.Unregister(wp)

	for ev := range wp.ch {
		err := wc.WriteMsg(&message.Message{
			Type:   message.TypeClipboard,
			Source: ev.Source,
			Items:  ev.Items,
		})
		if err != nil {
			return
		}
	}
}

// targets lists the MIME types of the current selection: the backend's
// native enumeration when it has one, the latest published types otherwise.
func (d *Daemon) targets() []string {
	if tg, ok := d.backend.(clip.Targeter); ok {
		return tg.Targets()
	}
	items, _ := d.h.Latest(nil)
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.MIME)
	}
	return out
}

package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"go.klb.dev/wlclip/internal/crypto"
	"go.klb.dev/wlclip/internal/ipc"
	"go.klb.dev/wlclip/internal/message"
	"go.klb.dev/wlclip/internal/wire"
)

// defaultSource returns a human-readable identifier for this host, used to
// label where a clipboard update came from.
func defaultSource() string {
	for _, env := range []string{"WLCLIP_SOURCE", "CONTAINER_NAME", "HOSTNAME_FRIENDLY"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

// dialDaemon connects to the running daemon's IPC socket and authenticates
// if a token is set. Returns an error when no daemon is listening.
func dialDaemon(token string) (*wire.Conn, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}

	var key *[32]byte
	if token != "" {
		key, err = crypto.DeriveKey(token)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("key derivation: %w", err)
		}
	}

	wc := wire.New(conn, key)
	if token != "" {
		err := wc.WriteMsg(&message.Message{
			Type:    message.TypeAuth,
			Payload: base64.StdEncoding.EncodeToString([]byte(token)),
		})
		if err != nil {
			wc.Close()
			return nil, fmt.Errorf("auth: %w", err)
		}
	}
	return wc, nil
}

// roundTrip sends one request and reads one reply, failing on ERROR replies
// or a reply of the wrong type.
func roundTrip(wc *wire.Conn, req *message.Message, want message.Type) (*message.Message, error) {
	if err := wc.WriteMsg(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", req.Type, err)
	}
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if resp.Type == message.TypeError {
		return nil, fmt.Errorf("daemon: %s", resp.Error)
	}
	if resp.Type != want {
		return nil, fmt.Errorf("unexpected reply type %q", resp.Type)
	}
	return resp, nil
}

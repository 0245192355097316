// Package ipc provides the local Unix-socket channel used by the CLI tools
// (copy/paste/targets/status/watch) to talk to a running wlclip daemon
// instead of each opening its own compositor connection — the daemon is the
// single Wayland client, everything else goes through its socket.
package ipc

import (
	"net"
	"os"
	"path/filepath"
)

// SocketPath returns the path of the daemon's IPC socket.
//
// Resolution order: $WLCLIP_SOCKET, then $XDG_RUNTIME_DIR/wlclip.sock, then
// $TMPDIR/wlclip.sock.
func SocketPath() string {
	if s := os.Getenv("WLCLIP_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "wlclip.sock")
	}
	return filepath.Join(os.TempDir(), "wlclip.sock")
}

// IsRunning reports whether a wlclip daemon appears to be listening on the
// IPC socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.Dial("unix", SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates and returns a net.Listener on the IPC socket path, removing
// any stale socket file first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	// Remove stale socket from a previous (crashed) run.
	_ = os.Remove(path)
	return net.Listen("unix", path)
}

// Dial connects to the daemon's IPC socket.
func Dial() (net.Conn, error) {
	return net.Dial("unix", SocketPath())
}

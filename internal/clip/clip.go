// Package clip provides a unified clipboard interface with two backends:
//
//	wayland.go   — native selection handling over a compositor connection,
//	               built on internal/objects (preferred when a connection
//	               is available)
//	system.go    — golang.design/x/clipboard, polling for changes
//	headless.go  — no-display stub
package clip

import "go.klb.dev/wlclip/internal/message"

// Item mirrors message.Item for clipboard backend use.
type Item = message.Item

// Backend is the interface that all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard contents as a slice of typed items.
	// Returns nil, nil if the clipboard is empty or contains only
	// unsupported types.
	Read() ([]Item, error)

	// Write sets the clipboard contents to the provided items.
	Write(items []Item) error

	// Watch returns a channel that receives a signal whenever the clipboard
	// changes. The channel is never closed. The caller should call Read()
	// when it receives from the channel.
	Watch() <-chan struct{}

	// Close releases any resources held by the backend.
	Close()
}

// Runner is an optional interface a Backend may implement when it needs a
// blocking event loop of its own. The daemon runs it in a goroutine.
type Runner interface {
	Backend
	// Run blocks, driving the backend's event dispatch, until Close.
	Run()
}

// Targeter is an optional interface for backends that can enumerate the MIME
// types the current clipboard owner offers, beyond the types Read supports.
type Targeter interface {
	Backend
	Targets() []string
}

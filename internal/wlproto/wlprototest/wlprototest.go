// Package wlprototest provides an in-memory wlproto.Conn for tests: it mints
// handles, records every request verbatim, and lets tests inject events into
// registered listener tables the same way the real dispatch loop would.
package wlprototest

import (
	"fmt"

	"go.klb.dev/wlclip/internal/wlproto"
)

// Handle is the test implementation of wlproto.Object.
type Handle struct {
	id    uint32
	iface string
}

func (h *Handle) ID() uint32        { return h.id }
func (h *Handle) Interface() string { return h.iface }

// Request is one recorded SendRequest or SendConstructor call.
type Request struct {
	Obj    wlproto.Object
	Opcode uint16
	Args   []any
}

type registration struct {
	table wlproto.Listener
	ctx   any
}

// Conn is a recording, dispatchable wlproto.Conn. The zero value is ready to
// use. Not safe for concurrent use — the real dispatch model is
// single-threaded and tests follow it.
type Conn struct {
	nextID    uint32
	Requests  []Request
	listeners map[wlproto.Object]registration
	destroyed map[wlproto.Object]int

	// ListenerErr, when non-nil, is returned by the next AddListener call.
	ListenerErr error

	// Flushes and RoundTrips count the respective calls.
	Flushes    int
	RoundTrips int
}

// New returns an empty Conn.
func New() *Conn {
	return &Conn{
		listeners: make(map[wlproto.Object]registration),
		destroyed: make(map[wlproto.Object]int),
	}
}

// NewObject mints a fresh handle with the given interface name, as if the
// compositor had just created the object.
func (c *Conn) NewObject(iface string) wlproto.Object {
	c.nextID++
	return &Handle{id: c.nextID, iface: iface}
}

func (c *Conn) SendRequest(obj wlproto.Object, opcode uint16, args ...any) {
	c.Requests = append(c.Requests, Request{Obj: obj, Opcode: opcode, Args: args})
}

func (c *Conn) SendConstructor(obj wlproto.Object, opcode uint16, iface wlproto.Interface, args ...any) wlproto.Object {
	c.Requests = append(c.Requests, Request{Obj: obj, Opcode: opcode, Args: args})
	return c.NewObject(iface.Name)
}

func (c *Conn) AddListener(obj wlproto.Object, table wlproto.Listener, ctx any) error {
	if err := c.ListenerErr; err != nil {
		c.ListenerErr = nil
		return err
	}
	if _, ok := c.listeners[obj]; ok {
		return fmt.Errorf("wlprototest: %s@%d already has a listener", obj.Interface(), obj.ID())
	}
	c.listeners[obj] = registration{table: table, ctx: ctx}
	return nil
}

func (c *Conn) DestroyProxy(obj wlproto.Object) {
	c.destroyed[obj]++
	delete(c.listeners, obj)
}

func (c *Conn) Flush() error     { c.Flushes++; return nil }
func (c *Conn) RoundTrip() error { c.RoundTrips++; return nil }

// Dispatch delivers one event to obj's registered listener table, exactly as
// the real dispatch loop would: the registered context first, then the
// emitting object, then the event arguments. Panics if obj has no listener
// or the opcode is out of range, since both would be protocol bugs.
func (c *Conn) Dispatch(obj wlproto.Object, opcode uint16, args ...any) {
	reg, ok := c.listeners[obj]
	if !ok {
		panic(fmt.Sprintf("wlprototest: dispatch to %s@%d without listener", obj.Interface(), obj.ID()))
	}
	reg.table[opcode](reg.ctx, obj, args...)
}

// ListenerContext returns the context registered for obj, or nil if obj has
// no listener.
func (c *Conn) ListenerContext(obj wlproto.Object) any {
	return c.listeners[obj].ctx
}

// HasListener reports whether obj has a registered listener table.
func (c *Conn) HasListener(obj wlproto.Object) bool {
	_, ok := c.listeners[obj]
	return ok
}

// DestroyCount returns how many times DestroyProxy was called for obj.
func (c *Conn) DestroyCount(obj wlproto.Object) int {
	return c.destroyed[obj]
}

// RequestsFor returns the recorded requests sent on obj.
func (c *Conn) RequestsFor(obj wlproto.Object) []Request {
	var out []Request
	for _, r := range c.Requests {
		if r.Obj == obj {
			out = append(out, r)
		}
	}
	return out
}

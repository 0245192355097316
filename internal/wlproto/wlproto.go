// Package wlproto defines the boundary to the Wayland client library: opaque
// protocol-object handles, the connection interface used to send requests and
// register event listeners, and the opcode tables for the protocol objects
// this module speaks.
//
// The connection itself — socket setup, message marshalling, the dispatch
// loop — is a trusted black box behind the Conn interface. Everything above
// it (internal/wlobj, internal/objects) only ever sees handles and opcodes.
// Tests use the in-memory implementation in wlprototest.
package wlproto

// Object is an opaque handle to one protocol object instance, issued by the
// client library. Consumers treat it as an identity token: they never inspect
// it beyond its identity and hand it back on every request. A nil Object is
// the null handle.
type Object interface {
	// ID returns the protocol-level object identifier.
	ID() uint32

	// Interface returns the protocol interface name of the object,
	// e.g. "wl_data_offer".
	Interface() string
}

// Interface is the name/version identity of a protocol object kind.
type Interface struct {
	Name    string
	Version uint32
}

// EventFunc is the exact shape the dispatch loop invokes for one event:
// the context registered alongside the listener table, the object the event
// arrived on, and the event arguments in declaration order. Argument types
// are whatever the protocol guarantees for that event; handlers assert them
// back without coercion.
type EventFunc func(ctx any, obj Object, args ...any)

// Listener is an event listener table: one EventFunc per event opcode, in
// opcode order. Every slot must be non-nil — the dispatch loop calls slots
// unconditionally.
type Listener []EventFunc

// Conn is the connection to the display server as exposed by the client
// library. Request sends are buffered and asynchronous; per-request errors do
// not exist at this layer (fatal protocol errors surface on the connection,
// outside this module's scope).
type Conn interface {
	// SendRequest marshals a request on obj with the given arguments.
	SendRequest(obj Object, opcode uint16, args ...any)

	// SendConstructor marshals a request on obj that creates a new protocol
	// object of the given interface identity and returns its handle. Returns
	// nil if the client library could not allocate the proxy.
	SendConstructor(obj Object, opcode uint16, iface Interface, args ...any) Object

	// AddListener registers table as the event listener for obj. ctx is
	// stored by the library and handed back verbatim as the first argument
	// of every subsequent event dispatch for obj. Fails if obj already has
	// a listener. The registration cannot be changed or removed later.
	AddListener(obj Object, table Listener, ctx any) error

	// DestroyProxy releases the client-side proxy for obj without sending
	// any request. Valid for any protocol object.
	DestroyProxy(obj Object)

	// Flush writes buffered requests to the compositor.
	Flush() error

	// RoundTrip flushes and blocks until the compositor has processed all
	// pending requests, dispatching any events that arrive in the meantime.
	RoundTrip() error
}

package wlobj

import (
	"errors"
	"fmt"

	"go.klb.dev/wlclip/internal/wlproto"
)

var (
	// ErrNilHandle reports construction from a null native handle — the
	// underlying acquisition request already failed.
	ErrNilHandle = errors.New("nil object handle")

	// ErrListener reports a failed event-listener registration, usually a
	// client-library or protocol-version mismatch.
	ErrListener = errors.New("listener registration failed")
)

// Object owns exactly one protocol-object handle for the Spec S. It is only
// ever used through a pointer: if S declares the Listening capability, the
// value passed as recv at construction is registered with the client library
// as the dispatch context and must never be copied or relocated afterwards.
// Object itself carries a noCopy marker so go vet flags accidental copies.
type Object[S Spec] struct {
	noCopy noCopy

	spec      S
	conn      wlproto.Conn
	handle    wlproto.Object
	destroyed bool
}

// New wraps handle, which must be a live object of S's interface freshly
// acquired from the client library. If S declares the Listening capability,
// its table is registered with recv as the dispatch context — recv must be
// the value whose methods the table's handlers bind, and its address must
// stay stable for the object's lifetime. Specs without the capability ignore
// recv.
//
// Construction is atomic: on error (ErrNilHandle, ErrListener) nothing is
// owned and nothing was registered.
func New[S Spec](conn wlproto.Conn, spec S, handle wlproto.Object, recv any) (*Object[S], error) {
	iface := spec.Interface()
	if handle == nil {
		return nil, fmt.Errorf("%s: %w", iface.Name, ErrNilHandle)
	}

	if ls, ok := any(spec).(Listening); ok {
		if err := conn.AddListener(handle, ls.Listener(), recv); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", iface.Name, ErrListener, err)
		}
	}

	return &Object[S]{spec: spec, conn: conn, handle: handle}, nil
}

// Handle returns the owned native handle. Valid until Destroy.
func (o *Object[S]) Handle() wlproto.Object { return o.handle }

// Conn returns the connection the object lives on.
func (o *Object[S]) Conn() wlproto.Conn { return o.conn }

// Send forwards a request on the owned handle, arguments verbatim.
func (o *Object[S]) Send(opcode uint16, args ...any) {
	o.conn.SendRequest(o.handle, opcode, args...)
}

// SendConstructor forwards a child-object-creating request on the owned
// handle and returns the new handle.
func (o *Object[S]) SendConstructor(opcode uint16, iface wlproto.Interface, args ...any) wlproto.Object {
	return o.conn.SendConstructor(o.handle, opcode, iface, args...)
}

// Destroy releases the object: the Spec's custom destructor if it declares
// one, the generic proxy destruction otherwise. The destruction rule runs
// exactly once; further calls are no-ops and no other method may be used
// after the first.
func (o *Object[S]) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true

	if d, ok := any(o.spec).(Destroyer); ok {
		d.Destroy(o.conn, o.handle)
		return
	}
	o.conn.DestroyProxy(o.handle)
}

// noCopy makes `go vet -copylocks` report any value copy of the enclosing
// struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Package wlobj binds opaque protocol-object handles to lifetime-managed Go
// wrappers. A Spec describes one protocol object kind; Object[S] owns exactly
// one handle for that kind, applies the right destruction rule, and — when
// the Spec declares a listener table — registers it at construction with the
// consumer's address as the dispatch context.
package wlobj

import "go.klb.dev/wlclip/internal/wlproto"

// Spec is the base capability every protocol object kind must satisfy: its
// interface/version identity. One Spec type exists per object kind, and the
// generic wrapper Object[S] can only be instantiated with a Spec, so a type
// without the base capability fails to compile as a wrapper parameter.
type Spec interface {
	Interface() wlproto.Interface
}

// Destroyer is the optional custom-destructor capability. Specs for objects
// whose interface declares a destroy or release request implement it; the
// destructor typically sends that request before releasing the proxy. Specs
// without it get the generic proxy destruction fallback.
type Destroyer interface {
	Spec
	Destroy(conn wlproto.Conn, obj wlproto.Object)
}

// Listening is the optional event-listener capability. Specs for objects that
// emit events implement it; the returned table has one non-nil handler per
// event opcode. Declaring this capability pins the wrapper's consumer in
// place for its whole lifetime: the client library keeps the registered
// context as a raw back-reference with no way to update it.
type Listening interface {
	Spec
	Listener() wlproto.Listener
}

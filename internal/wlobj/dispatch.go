package wlobj

import "go.klb.dev/wlclip/internal/wlproto"

// The HandlerN adapters bridge "call method M on receiver R" to the shape the
// dispatch loop invokes. The returned EventFunc asserts the registered
// context back to *R, drops the emitting-object parameter (the receiver
// already identifies it), asserts each event argument to the type the
// protocol guarantees, and forwards them unchanged, in order.
//
// The method is taken as a method expression, so the receiver type is
// deduced from its signature:
//
//	wlobj.Handler1((*DataOffer).onOffer)

// Handler0 adapts an argument-free bound method.
func Handler0[R any](method func(*R)) wlproto.EventFunc {
	return func(ctx any, _ wlproto.Object, _ ...any) {
		method(ctx.(*R))
	}
}

// Handler1 adapts a one-argument bound method.
func Handler1[R, A1 any](method func(*R, A1)) wlproto.EventFunc {
	return func(ctx any, _ wlproto.Object, args ...any) {
		method(ctx.(*R), arg[A1](args[0]))
	}
}

// Handler2 adapts a two-argument bound method.
func Handler2[R, A1, A2 any](method func(*R, A1, A2)) wlproto.EventFunc {
	return func(ctx any, _ wlproto.Object, args ...any) {
		method(ctx.(*R), arg[A1](args[0]), arg[A2](args[1]))
	}
}

// Handler3 adapts a three-argument bound method.
func Handler3[R, A1, A2, A3 any](method func(*R, A1, A2, A3)) wlproto.EventFunc {
	return func(ctx any, _ wlproto.Object, args ...any) {
		method(ctx.(*R), arg[A1](args[0]), arg[A2](args[1]), arg[A3](args[2]))
	}
}

// Noop is the handler for events the consumer does not observe. The dispatch
// loop calls table slots unconditionally, so a nil slot is not an option.
func Noop(any, wlproto.Object, ...any) {}

// arg asserts one event argument to its protocol-guaranteed type. A nil
// argument (a null object in an event, for instance) yields A's zero value
// rather than a failed assertion.
func arg[A any](v any) A {
	if v == nil {
		var zero A
		return zero
	}
	return v.(A)
}

package wlobj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/wlclip/internal/wlobj"
	"go.klb.dev/wlclip/internal/wlproto"
)

// recorder records every adapted call with its arguments in order.
type recorder struct {
	calls [][]any
}

func (r *recorder) zero()                            { r.calls = append(r.calls, []any{}) }
func (r *recorder) one(a string)                     { r.calls = append(r.calls, []any{a}) }
func (r *recorder) two(a string, b int)              { r.calls = append(r.calls, []any{a, b}) }
func (r *recorder) three(a uint32, b string, c bool) { r.calls = append(r.calls, []any{a, b, c}) }
func (r *recorder) obj(o wlproto.Object)             { r.calls = append(r.calls, []any{o}) }

func TestHandlersRecoverReceiverAndForwardArgs(t *testing.T) {
	r := &recorder{}
	var emitting wlproto.Object // handlers must ignore it

	wlobj.Handler0((*recorder).zero)(r, emitting)
	wlobj.Handler1((*recorder).one)(r, emitting, "text/plain")
	wlobj.Handler2((*recorder).two)(r, emitting, "image/png", 7)
	wlobj.Handler3((*recorder).three)(r, emitting, uint32(3), "x", true)

	require.Len(t, r.calls, 4)
	assert.Equal(t, []any{}, r.calls[0])
	assert.Equal(t, []any{"text/plain"}, r.calls[1])
	assert.Equal(t, []any{"image/png", 7}, r.calls[2])
	assert.Equal(t, []any{uint32(3), "x", true}, r.calls[3])
}

func TestHandlerDistinguishesReceivers(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	h := wlobj.Handler1((*recorder).one)

	h(a, nil, "for-a")
	h(b, nil, "for-b")
	h(a, nil, "for-a-again")

	assert.Equal(t, [][]any{{"for-a"}, {"for-a-again"}}, a.calls)
	assert.Equal(t, [][]any{{"for-b"}}, b.calls)
}

func TestHandlerNilObjectArgument(t *testing.T) {
	// A null object in an event (a cleared selection, say) arrives as a nil
	// argument and must come through as a nil handle, not a panic.
	r := &recorder{}
	wlobj.Handler1((*recorder).obj)(r, nil, nil)

	require.Len(t, r.calls, 1)
	assert.Nil(t, r.calls[0][0])
}

func TestNoopIsCallable(t *testing.T) {
	assert.NotPanics(t, func() {
		wlobj.Noop(nil, nil)
		wlobj.Noop(&recorder{}, nil, "anything", 42)
	})
}

package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/wlclip/internal/message"
	"go.klb.dev/wlclip/internal/wlproto"
	"go.klb.dev/wlclip/internal/wlproto/wlprototest"
)

func newTestWayland(t *testing.T) (*waylandBackend, *wlprototest.Conn) {
	t.Helper()
	conn := wlprototest.New()
	b, err := NewWayland(conn,
		conn.NewObject("wl_data_device_manager"),
		conn.NewObject("wl_seat"),
		func() uint32 { return 7 },
	)
	require.NoError(t, err)
	return b.(*waylandBackend), conn
}

// announceSelection plays the compositor: a new offer, its types, selection.
func announceSelection(b *waylandBackend, conn *wlprototest.Conn, mimes ...string) wlproto.Object {
	dev := b.dev.Handle()
	oh := conn.NewObject("wl_data_offer")
	conn.Dispatch(dev, wlproto.DataDeviceEventDataOffer, oh)
	for _, m := range mimes {
		conn.Dispatch(oh, wlproto.DataOfferEventOffer, m)
	}
	conn.Dispatch(dev, wlproto.DataDeviceEventSelection, oh)
	return oh
}

func TestWaylandSelectionSignalsWatch(t *testing.T) {
	b, conn := newTestWayland(t)

	announceSelection(b, conn, "text/html", "text/plain")

	select {
	case <-b.Watch():
	default:
		t.Fatal("expected a watch signal after selection change")
	}
	assert.Equal(t, []string{"text/html", "text/plain"}, b.Targets())
}

func TestWaylandReadPullsKnownTypes(t *testing.T) {
	b, conn := newTestWayland(t)
	oh := announceSelection(b, conn, "text/plain", "application/pdf")

	items, err := b.Read()
	require.NoError(t, err)

	// Only the readable representation is pulled; the pdf is left to
	// Targets. The fake compositor writes nothing, so the payload is empty.
	require.Len(t, items, 1)
	assert.Equal(t, "text/plain", items[0].MIME)

	reqs := conn.RequestsFor(oh)
	require.Len(t, reqs, 1)
	assert.Equal(t, wlproto.DataOfferRequestReceive, reqs[0].Opcode)
	assert.Equal(t, "text/plain", reqs[0].Args[0])
	assert.IsType(t, 0, reqs[0].Args[1])
}

func TestWaylandReadWithoutSelection(t *testing.T) {
	b, _ := newTestWayland(t)

	items, err := b.Read()
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestWaylandWritePublishesSource(t *testing.T) {
	b, conn := newTestWayland(t)

	err := b.Write([]Item{message.NewTextItem("hello")})
	require.NoError(t, err)
	require.NotNil(t, b.ownSrc)

	sh := b.ownSrc.Handle()
	srcReqs := conn.RequestsFor(sh)
	require.Len(t, srcReqs, 1)
	assert.Equal(t, wlproto.DataSourceRequestOffer, srcReqs[0].Opcode)
	assert.Equal(t, []any{"text/plain"}, srcReqs[0].Args)

	devReqs := conn.RequestsFor(b.dev.Handle())
	require.Len(t, devReqs, 1)
	assert.Equal(t, wlproto.DataDeviceRequestSetSelection, devReqs[0].Opcode)
	assert.Equal(t, []any{sh, uint32(7)}, devReqs[0].Args)

	assert.GreaterOrEqual(t, conn.Flushes, 1)
}

func TestWaylandCancelledSourceIsDropped(t *testing.T) {
	b, conn := newTestWayland(t)

	require.NoError(t, b.Write([]Item{message.NewTextItem("hello")}))
	sh := b.ownSrc.Handle()

	conn.Dispatch(sh, wlproto.DataSourceEventCancelled)

	assert.Nil(t, b.ownSrc)
	assert.Equal(t, 1, conn.DestroyCount(sh))
}

func TestWaylandCloseReleasesObjects(t *testing.T) {
	b, conn := newTestWayland(t)
	dev, seat, mgr := b.dev.Handle(), b.seat.Handle(), b.mgr.Handle()

	b.Close()
	b.Close() // idempotent

	assert.Equal(t, 1, conn.DestroyCount(dev))
	assert.Equal(t, 1, conn.DestroyCount(seat))
	assert.Equal(t, 1, conn.DestroyCount(mgr))
}

func TestWaylandClearedSelection(t *testing.T) {
	b, conn := newTestWayland(t)
	announceSelection(b, conn, "text/plain")
	<-b.Watch()

	conn.Dispatch(b.dev.Handle(), wlproto.DataDeviceEventSelection, nil)

	select {
	case <-b.Watch():
	default:
		t.Fatal("expected a watch signal after selection clear")
	}
	assert.Empty(t, b.Targets())
	items, err := b.Read()
	require.NoError(t, err)
	assert.Nil(t, items)
}

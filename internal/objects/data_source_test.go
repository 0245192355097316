package objects

import (
	"io"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/wlclip/internal/wlproto"
	"go.klb.dev/wlclip/internal/wlproto/wlprototest"
)

func TestDataSourceOffersEachPayloadType(t *testing.T) {
	conn := wlprototest.New()
	h := conn.NewObject("wl_data_source")

	_, err := NewDataSource(conn, h, map[string][]byte{
		"text/plain": []byte("hello"),
		"image/png":  {0x89, 0x50},
	}, nil)
	require.NoError(t, err)

	reqs := conn.RequestsFor(h)
	require.Len(t, reqs, 2)
	for _, r := range reqs {
		assert.Equal(t, wlproto.DataSourceRequestOffer, r.Opcode)
	}
	// Offers go out in sorted order so behaviour is deterministic.
	assert.Equal(t, []any{"image/png"}, reqs[0].Args)
	assert.Equal(t, []any{"text/plain"}, reqs[1].Args)
}

// sendFd returns a write fd suitable for handing to the send event (the
// handler owns and closes it) and the read side for collecting the payload.
func sendFd(t *testing.T) (int, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	fd, err := syscall.Dup(int(w.Fd()))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return fd, r
}

func TestDataSourceSendWritesPayloadAndClosesFd(t *testing.T) {
	conn := wlprototest.New()
	h := conn.NewObject("wl_data_source")
	_, err := NewDataSource(conn, h, map[string][]byte{"text/plain": []byte("clip me")}, nil)
	require.NoError(t, err)

	fd, r := sendFd(t)
	conn.Dispatch(h, wlproto.DataSourceEventSend, "text/plain", fd)

	data, err := io.ReadAll(r) // EOF only if the handler closed its end
	require.NoError(t, err)
	assert.Equal(t, "clip me", string(data))
}

func TestDataSourceSendUnofferedTypeClosesFdEmpty(t *testing.T) {
	conn := wlprototest.New()
	h := conn.NewObject("wl_data_source")
	_, err := NewDataSource(conn, h, map[string][]byte{"text/plain": []byte("x")}, nil)
	require.NoError(t, err)

	fd, r := sendFd(t)
	conn.Dispatch(h, wlproto.DataSourceEventSend, "application/pdf", fd)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDataSourceCancelledDestroysAndNotifies(t *testing.T) {
	conn := wlprototest.New()
	h := conn.NewObject("wl_data_source")

	cancels := 0
	_, err := NewDataSource(conn, h, map[string][]byte{"text/plain": []byte("x")}, func() { cancels++ })
	require.NoError(t, err)

	conn.Dispatch(h, wlproto.DataSourceEventCancelled)

	assert.Equal(t, 1, cancels)
	assert.Equal(t, 1, conn.DestroyCount(h))

	reqs := conn.RequestsFor(h)
	require.Len(t, reqs, 2) // offer + destroy
	assert.Equal(t, wlproto.DataSourceRequestDestroy, reqs[1].Opcode)
}

func TestDataSourceIgnoresTargetAndDndEvents(t *testing.T) {
	conn := wlprototest.New()
	h := conn.NewObject("wl_data_source")
	_, err := NewDataSource(conn, h, map[string][]byte{"text/plain": []byte("x")}, nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		conn.Dispatch(h, wlproto.DataSourceEventTarget, "text/plain")
		conn.Dispatch(h, wlproto.DataSourceEventDndDropPerformed)
		conn.Dispatch(h, wlproto.DataSourceEventDndFinished)
		conn.Dispatch(h, wlproto.DataSourceEventAction, uint32(0))
	})
}

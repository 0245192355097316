package objects

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/wlclip/internal/wlproto"
	"go.klb.dev/wlclip/internal/wlproto/wlprototest"
)

func newTestOffer(t *testing.T, conn *wlprototest.Conn) (*DataOffer, wlproto.Object) {
	t.Helper()
	h := conn.NewObject("wl_data_offer")
	offer, err := NewDataOffer(conn, h)
	require.NoError(t, err)
	return offer, h
}

func mimesOf(offer *DataOffer) []string {
	var out []string
	offer.ForEachMIME(func(m string) { out = append(out, m) })
	sort.Strings(out)
	return out
}

func TestDataOfferAccumulatesMIMETypes(t *testing.T) {
	conn := wlprototest.New()
	offer, h := newTestOffer(t, conn)

	conn.Dispatch(h, wlproto.DataOfferEventOffer, "text/plain")
	conn.Dispatch(h, wlproto.DataOfferEventOffer, "text/uri-list")

	assert.Equal(t, []string{"text/plain", "text/uri-list"}, mimesOf(offer))
	assert.True(t, offer.Offers("text/plain"))
	assert.False(t, offer.Offers("image/png"))
}

func TestDataOfferDuplicateAdvertisementIsNoOp(t *testing.T) {
	conn := wlprototest.New()
	offer, h := newTestOffer(t, conn)

	conn.Dispatch(h, wlproto.DataOfferEventOffer, "text/plain")
	conn.Dispatch(h, wlproto.DataOfferEventOffer, "text/plain")

	assert.Equal(t, []string{"text/plain"}, mimesOf(offer))
}

func TestDataOfferReceiveForwardsWithoutMembershipCheck(t *testing.T) {
	conn := wlprototest.New()
	offer, h := newTestOffer(t, conn)

	// Never advertised — still forwarded verbatim.
	offer.Receive("text/plain", 5)

	reqs := conn.RequestsFor(h)
	require.Len(t, reqs, 1)
	assert.Equal(t, wlproto.DataOfferRequestReceive, reqs[0].Opcode)
	assert.Equal(t, []any{"text/plain", 5}, reqs[0].Args)
}

func TestDataOfferIgnoresActionEvents(t *testing.T) {
	conn := wlprototest.New()
	offer, h := newTestOffer(t, conn)

	conn.Dispatch(h, wlproto.DataOfferEventSourceActions, uint32(1))
	conn.Dispatch(h, wlproto.DataOfferEventAction, uint32(1))

	assert.Empty(t, mimesOf(offer))
}

func TestDataOfferDestroySendsDestroyRequestOnce(t *testing.T) {
	conn := wlprototest.New()
	offer, h := newTestOffer(t, conn)

	offer.Destroy()
	offer.Destroy()

	reqs := conn.RequestsFor(h)
	require.Len(t, reqs, 1)
	assert.Equal(t, wlproto.DataOfferRequestDestroy, reqs[0].Opcode)
	assert.Equal(t, 1, conn.DestroyCount(h))
}

// TestDataOfferEndToEnd walks the full life of an offer: announced with a
// mock handle, advertised two types, enumerated, then asked for a transfer.
func TestDataOfferEndToEnd(t *testing.T) {
	conn := wlprototest.New()
	offer, h := newTestOffer(t, conn)

	conn.Dispatch(h, wlproto.DataOfferEventOffer, "text/plain")
	conn.Dispatch(h, wlproto.DataOfferEventOffer, "image/png")

	visits := map[string]int{}
	offer.ForEachMIME(func(m string) { visits[m]++ })
	assert.Equal(t, map[string]int{"text/plain": 1, "image/png": 1}, visits)

	offer.Receive("image/png", 7)

	reqs := conn.RequestsFor(h)
	require.Len(t, reqs, 1)
	assert.Same(t, h, reqs[0].Obj)
	assert.Equal(t, wlproto.DataOfferRequestReceive, reqs[0].Opcode)
	assert.Equal(t, []any{"image/png", 7}, reqs[0].Args)
}

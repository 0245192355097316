package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/wlclip/internal/message"
)

type testPeer struct {
	id     string
	events []Event
}

func (p *testPeer) ID() string   { return p.id }
func (p *testPeer) Send(e Event) { p.events = append(p.events, e) }
func (p *testPeer) last() *Event { return &p.events[len(p.events)-1] }

func TestPublishFansOutExceptOrigin(t *testing.T) {
	h := New()
	a := &testPeer{id: "a"}
	b := &testPeer{id: "b"}
	h.Register(a)
	h.Register(b)

	items := []message.Item{message.NewTextItem("hello")}
	h.Publish(items, "a", "host1")

	assert.Empty(t, a.events)
	require.Len(t, b.events, 1)
	assert.Equal(t, "host1", b.last().Source)
	assert.Equal(t, items, b.last().Items)
}

func TestRegisterDeliversLatest(t *testing.T) {
	h := New()
	h.Publish([]message.Item{message.NewTextItem("early")}, "origin", "host1")

	p := &testPeer{id: "late"}
	h.Register(p)

	require.Len(t, p.events, 1)
	assert.Equal(t, "early", decodeText(t, p.last().Items[0]))
}

func TestRegisterWithEmptyHub(t *testing.T) {
	h := New()
	p := &testPeer{id: "p"}
	h.Register(p)
	assert.Empty(t, p.events)
}

func TestUnregisterStopsDelivery(t *testing.T) {
	h := New()
	p := &testPeer{id: "p"}
	h.Register(p)
	h.Unregister(p)

	h.Publish([]message.Item{message.NewTextItem("x")}, "origin", "host1")

	assert.Empty(t, p.events)
	assert.Equal(t, 0, h.Watchers())
}

func TestLatestFiltersByMIME(t *testing.T) {
	h := New()
	h.Publish([]message.Item{
		message.NewTextItem("text"),
		message.NewBinaryItem("image/png", []byte{1, 2}),
	}, "origin", "host1")

	items, src := h.Latest([]string{"image/png"})
	assert.Equal(t, "host1", src)
	require.Len(t, items, 1)
	assert.Equal(t, "image/png", items[0].MIME)

	all, _ := h.Latest(nil)
	assert.Len(t, all, 2)
}

func decodeText(t *testing.T, it message.Item) string {
	t.Helper()
	b, err := it.Decode()
	require.NoError(t, err)
	return string(b)
}

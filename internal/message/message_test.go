package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPayloadPicksTextItem(t *testing.T) {
	m := &Message{Items: []Item{
		NewBinaryItem("image/png", []byte{0x89}),
		NewTextItem("hello"),
	}}
	assert.Equal(t, "hello", m.TextPayload())

	empty := &Message{Items: []Item{NewBinaryItem("image/png", nil)}}
	assert.Equal(t, "", empty.TextPayload())
}

func TestFilterItems(t *testing.T) {
	items := []Item{
		NewTextItem("x"),
		NewBinaryItem("image/png", []byte{1}),
		NewBinaryItem("text/html", []byte("<b>")),
	}

	assert.Equal(t, items, FilterItems(items, nil))

	got := FilterItems(items, []string{"text/plain", "text/html"})
	require.Len(t, got, 2)
	assert.Equal(t, "text/plain", got[0].MIME)
	assert.Equal(t, "text/html", got[1].MIME)

	assert.Empty(t, FilterItems(items, []string{"application/pdf"}))
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestItemDecodeRejectsBadBase64(t *testing.T) {
	_, err := Item{MIME: "text/plain", Data: "not base64!"}.Decode()
	assert.Error(t, err)
}

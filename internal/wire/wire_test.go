package wire

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/wlclip/internal/crypto"
	"go.klb.dev/wlclip/internal/message"
)

func deriveKey(t *testing.T, token string) *[32]byte {
	t.Helper()
	key, err := crypto.DeriveKey(token)
	require.NoError(t, err)
	return key
}

func exchange(t *testing.T, wkey, rkey *[32]byte, msg *message.Message) (*message.Message, error) {
	t.Helper()
	cc, sc := net.Pipe()
	defer cc.Close()
	defer sc.Close()

	w := New(cc, wkey)
	r := New(sc, rkey)

	errCh := make(chan error, 1)
	go func() { errCh <- w.WriteMsg(msg) }()

	got, err := r.ReadMsg()
	require.NoError(t, <-errCh)
	return got, err
}

func TestPlaintextRoundTrip(t *testing.T) {
	sent := &message.Message{
		Type:   message.TypeClipboard,
		Source: "host1",
		Items:  []message.Item{message.NewTextItem("hello")},
	}

	got, err := exchange(t, nil, nil, sent)
	require.NoError(t, err)
	assert.Equal(t, message.TypeClipboard, got.Type)
	assert.Equal(t, "hello", got.TextPayload())
}

func TestEncryptedRoundTrip(t *testing.T) {
	key := deriveKey(t, "secret")
	sent := &message.Message{Type: message.TypePaste, Accept: []string{"text/plain"}}

	got, err := exchange(t, key, key, sent)
	require.NoError(t, err)
	assert.Equal(t, message.TypePaste, got.Type)
	assert.Equal(t, []string{"text/plain"}, got.Accept)
}

func TestKeyMismatchFailsRead(t *testing.T) {
	_, err := exchange(t, deriveKey(t, "right"), deriveKey(t, "wrong"),
		&message.Message{Type: message.TypeWatch})
	assert.Error(t, err)
}

func TestEncryptedReaderRejectsPlaintext(t *testing.T) {
	_, err := exchange(t, nil, deriveKey(t, "secret"),
		&message.Message{Type: message.TypeWatch})
	assert.Error(t, err)
}

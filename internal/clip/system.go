package clip

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"golang.design/x/clipboard"

	"go.klb.dev/wlclip/internal/message"
)

const systemPollInterval = 250 * time.Millisecond

// systemBackend reads and writes through golang.design/x/clipboard and
// detects changes by polling.
type systemBackend struct {
	watchCh  chan struct{}
	done     chan struct{}
	lastText []byte
	lastImg  []byte
}

// New returns the system clipboard backend, or a headless no-op backend if
// the display environment is unavailable. clipboard.Init is called here
// rather than in init() so that error handling stays with the caller that
// actually needs a clipboard.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return newHeadless()
	}
	b := &systemBackend{
		watchCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go b.poll()
	return b
}

func (b *systemBackend) Name() string { return "system clipboard (poll)" }

func (b *systemBackend) poll() {
	t := time.NewTicker(systemPollInterval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text := clipboard.Read(clipboard.FmtText)
			img := clipboard.Read(clipboard.FmtImage)
			if !bytes.Equal(text, b.lastText) || !bytes.Equal(img, b.lastImg) {
				b.lastText = text
				b.lastImg = img
				select {
				case b.watchCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (b *systemBackend) Read() ([]Item, error) {
	var items []Item
	if text := clipboard.Read(clipboard.FmtText); text != nil {
		items = append(items, message.NewTextItem(string(text)))
	}
	if img := clipboard.Read(clipboard.FmtImage); img != nil {
		items = append(items, message.NewBinaryItem("image/png", img))
	}
	return items, nil
}

func (b *systemBackend) Write(items []Item) error {
	for _, it := range items {
		data, err := it.Decode()
		if err != nil {
			return fmt.Errorf("decode %s item: %w", it.MIME, err)
		}
		switch it.MIME {
		case "text/plain":
			clipboard.Write(clipboard.FmtText, data)
		case "image/png":
			clipboard.Write(clipboard.FmtImage, data)
		default:
			return fmt.Errorf("unsupported MIME type: %s", it.MIME)
		}
	}
	return nil
}

func (b *systemBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *systemBackend) Close()                 { close(b.done) }

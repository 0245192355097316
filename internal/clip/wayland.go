package clip

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"go.klb.dev/wlclip/internal/message"
	"go.klb.dev/wlclip/internal/objects"
	"go.klb.dev/wlclip/internal/wlproto"
)

// readMIMEs are the representations Read pulls from a selection offer, in
// preference order. Targets still reports everything the owner advertises.
var readMIMEs = []string{"text/plain", "image/png"}

const dispatchInterval = 50 * time.Millisecond

// waylandBackend owns the data-device objects on an established compositor
// connection. Object construction and event dispatch stay on the Run
// goroutine, per the protocol's single-threaded model; Read and Write only
// submit requests and talk to the dispatch side through the snapshot kept
// under mu.
type waylandBackend struct {
	conn   wlproto.Conn
	serial func() uint32

	mgr  *objects.DataDeviceManager
	seat *objects.Seat
	dev  *objects.DataDevice

	watchCh chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	offer   *objects.DataOffer // current selection, nil when cleared
	ownSrc  *objects.DataSource
	targets []string
}

// NewWayland builds the selection machinery on conn: seat and data-device-
// manager wrappers around the already-bound handles, and the seat's data
// device. serial supplies the input-event serial for set_selection requests.
func NewWayland(conn wlproto.Conn, mgrHandle, seatHandle wlproto.Object, serial func() uint32) (Backend, error) {
	if serial == nil {
		serial = func() uint32 { return 0 }
	}
	b := &waylandBackend{
		conn:    conn,
		serial:  serial,
		watchCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	mgr, err := objects.NewDataDeviceManager(conn, mgrHandle)
	if err != nil {
		return nil, fmt.Errorf("data device manager: %w", err)
	}
	seat, err := objects.NewSeat(conn, seatHandle)
	if err != nil {
		mgr.Destroy()
		return nil, fmt.Errorf("seat: %w", err)
	}
	dev, err := mgr.GetDataDevice(seat)
	if err != nil {
		seat.Destroy()
		mgr.Destroy()
		return nil, fmt.Errorf("data device: %w", err)
	}
	b.mgr, b.seat, b.dev = mgr, seat, dev

	dev.OnSelection(b.onSelection)
	return b, nil
}

func (b *waylandBackend) Name() string { return "Wayland data device" }

// onSelection runs on the dispatch goroutine for every selection change.
func (b *waylandBackend) onSelection(offer *objects.DataOffer) {
	var targets []string
	if offer != nil {
		offer.ForEachMIME(func(m string) { targets = append(targets, m) })
		sort.Strings(targets)
	}

	b.mu.Lock()
	b.offer = offer
	b.targets = targets
	b.mu.Unlock()

	select {
	case b.watchCh <- struct{}{}:
	default:
	}
}

// Run drives event dispatch until Close. Implements Runner.
func (b *waylandBackend) Run() {
	t := time.NewTicker(dispatchInterval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			if err := b.conn.RoundTrip(); err != nil {
				slog.Error("wayland dispatch failed", "err", err)
				return
			}
		}
	}
}

func (b *waylandBackend) Read() ([]Item, error) {
	b.mu.Lock()
	offer := b.offer
	b.mu.Unlock()
	if offer == nil {
		return nil, nil
	}

	var items []Item
	for _, mime := range readMIMEs {
		if !offer.Offers(mime) {
			continue
		}
		data, err := b.receive(offer, mime)
		if err != nil {
			slog.Warn("selection read failed", "mime", mime, "err", err)
			continue
		}
		items = append(items, message.NewBinaryItem(mime, data))
	}
	return items, nil
}

// receive asks the selection owner to write one representation into a pipe
// and reads it to EOF. The write end is closed here once the request is
// flushed; the owner's copy keeps the pipe open until it finishes.
func (b *waylandBackend) receive(offer *objects.DataOffer, mime string) ([]byte, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}
	defer r.Close()

	offer.Receive(mime, int(w.Fd()))
	err = b.conn.Flush()
	w.Close()
	if err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	return io.ReadAll(r)
}

func (b *waylandBackend) Write(items []Item) error {
	payloads := make(map[string][]byte, len(items))
	for _, it := range items {
		data, err := it.Decode()
		if err != nil {
			return fmt.Errorf("decode %s item: %w", it.MIME, err)
		}
		payloads[it.MIME] = data
	}

	src, err := b.mgr.CreateDataSource(payloads, func() {
		// The compositor replaced our selection; drop the reference so
		// Close doesn't double-destroy.
		b.mu.Lock()
		b.ownSrc = nil
		b.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("data source: %w", err)
	}

	b.mu.Lock()
	b.ownSrc = src
	b.mu.Unlock()

	b.dev.SetSelection(src, b.serial())
	if err := b.conn.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Targets implements Targeter with every MIME type the current owner offers.
func (b *waylandBackend) Targets() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.targets...)
}

func (b *waylandBackend) Watch() <-chan struct{} { return b.watchCh }

func (b *waylandBackend) Close() {
	select {
	case <-b.done:
		return
	default:
	}
	close(b.done)

	b.mu.Lock()
	src := b.ownSrc
	b.ownSrc = nil
	b.mu.Unlock()
	if src != nil {
		src.Destroy()
	}
	b.dev.Destroy()
	b.seat.Destroy()
	b.mgr.Destroy()
	_ = b.conn.Flush()
}

package objects

import (
	"log/slog"
	"os"
	"sort"

	"go.klb.dev/wlclip/internal/wlobj"
	"go.klb.dev/wlclip/internal/wlproto"
)

type dataSourceSpec struct{}

func (dataSourceSpec) Interface() wlproto.Interface { return wlproto.DataSourceInterface }

func (dataSourceSpec) Destroy(conn wlproto.Conn, obj wlproto.Object) {
	conn.SendRequest(obj, wlproto.DataSourceRequestDestroy)
	conn.DestroyProxy(obj)
}

func (dataSourceSpec) Listener() wlproto.Listener {
	return wlproto.Listener{
		wlproto.DataSourceEventTarget:           wlobj.Noop,
		wlproto.DataSourceEventSend:             wlobj.Handler2((*DataSource).onSend),
		wlproto.DataSourceEventCancelled:        wlobj.Handler0((*DataSource).onCancelled),
		wlproto.DataSourceEventDndDropPerformed: wlobj.Noop,
		wlproto.DataSourceEventDndFinished:      wlobj.Noop,
		wlproto.DataSourceEventAction:           wlobj.Noop,
	}
}

// DataSource is the outbound mirror of DataOffer: it holds the payloads this
// client offers and serves them when a peer requests a transfer.
type DataSource struct {
	obj      *wlobj.Object[dataSourceSpec]
	payloads map[string][]byte
	onCancel func()
}

// NewDataSource wraps a freshly created wl_data_source handle and offers one
// MIME type per payloads entry. onCancel, if non-nil, runs after the
// compositor cancels the source (it has already been destroyed by then).
func NewDataSource(conn wlproto.Conn, handle wlproto.Object, payloads map[string][]byte, onCancel func()) (*DataSource, error) {
	s := &DataSource{payloads: payloads, onCancel: onCancel}
	obj, err := wlobj.New(conn, dataSourceSpec{}, handle, s)
	if err != nil {
		return nil, err
	}
	s.obj = obj

	mimes := make([]string, 0, len(payloads))
	for m := range payloads {
		mimes = append(mimes, m)
	}
	sort.Strings(mimes)
	for _, m := range mimes {
		obj.Send(wlproto.DataSourceRequestOffer, m)
	}
	return s, nil
}

// onSend writes the payload for mime to fd and closes it. An unknown mime
// (possible if the peer races a stale offer) just closes the fd so the reader
// sees EOF.
func (s *DataSource) onSend(mime string, fd int) {
	f := os.NewFile(uintptr(fd), "wl-data-source")
	if f == nil {
		return
	}
	defer f.Close()

	if data, ok := s.payloads[mime]; ok {
		if _, err := f.Write(data); err != nil {
			slog.Warn("data source write failed", "mime", mime, "err", err)
		}
	} else {
		slog.Debug("data source asked for unoffered type", "mime", mime)
	}
}

// onCancelled runs when the compositor replaces this source with a newer
// selection. The source can never be used again, so it destroys itself.
func (s *DataSource) onCancelled() {
	s.Destroy()
	if s.onCancel != nil {
		s.onCancel()
	}
}

// Handle returns the source's native handle.
func (s *DataSource) Handle() wlproto.Object { return s.obj.Handle() }

// Destroy releases the source.
func (s *DataSource) Destroy() { s.obj.Destroy() }

// Package objects implements the protocol objects wlclip speaks, each as a
// consumer of the wlobj wrapper framework: data offers and sources for
// clipboard contents, the data device that owns the selection, and the
// listener-free manager and seat objects used to mint them.
package objects

import (
	"log/slog"

	"go.klb.dev/wlclip/internal/wlobj"
	"go.klb.dev/wlclip/internal/wlproto"
)

type dataDeviceSpec struct{}

func (dataDeviceSpec) Interface() wlproto.Interface { return wlproto.DataDeviceInterface }

func (dataDeviceSpec) Destroy(conn wlproto.Conn, obj wlproto.Object) {
	conn.SendRequest(obj, wlproto.DataDeviceRequestRelease)
	conn.DestroyProxy(obj)
}

func (dataDeviceSpec) Listener() wlproto.Listener {
	return wlproto.Listener{
		wlproto.DataDeviceEventDataOffer: wlobj.Handler1((*DataDevice).onDataOffer),
		wlproto.DataDeviceEventEnter:     wlobj.Noop,
		wlproto.DataDeviceEventLeave:     wlobj.Noop,
		wlproto.DataDeviceEventMotion:    wlobj.Noop,
		wlproto.DataDeviceEventDrop:      wlobj.Noop,
		wlproto.DataDeviceEventSelection: wlobj.Handler1((*DataDevice).onSelection),
	}
}

// DataDevice tracks the selection for one seat. The compositor announces each
// new offer (and its MIME types) before attaching it to the selection; the
// device keeps the current selection offer alive and destroys superseded
// ones.
type DataDevice struct {
	obj       *wlobj.Object[dataDeviceSpec]
	pending   *DataOffer
	selection *DataOffer
	onChange  func(*DataOffer)
}

// NewDataDevice wraps a freshly created wl_data_device handle.
func NewDataDevice(conn wlproto.Conn, handle wlproto.Object) (*DataDevice, error) {
	d := &DataDevice{}
	obj, err := wlobj.New(conn, dataDeviceSpec{}, handle, d)
	if err != nil {
		return nil, err
	}
	d.obj = obj
	return d, nil
}

// OnSelection registers fn to run after every selection change, with the new
// selection offer (nil when the selection was cleared). fn runs on the
// dispatch goroutine.
func (d *DataDevice) OnSelection(fn func(*DataOffer)) { d.onChange = fn }

// Selection returns the current selection offer, or nil.
func (d *DataDevice) Selection() *DataOffer { return d.selection }

// onDataOffer wraps a newly announced offer. Its MIME-type events are
// dispatched between this event and the selection (or enter) event that
// attaches it.
func (d *DataDevice) onDataOffer(handle wlproto.Object) {
	offer, err := NewDataOffer(d.obj.Conn(), handle)
	if err != nil {
		slog.Error("data offer rejected", "err", err)
		return
	}
	if d.pending != nil {
		// Announced but never attached to a role: superseded already.
		d.pending.Destroy()
	}
	d.pending = offer
}

// onSelection attaches the pending offer as the new selection and destroys
// whatever it supersedes.
func (d *DataDevice) onSelection(handle wlproto.Object) {
	old := d.selection

	switch {
	case handle == nil:
		d.selection = nil
	case d.pending != nil && d.pending.Handle() == handle:
		d.selection = d.pending
		d.pending = nil
	default:
		slog.Warn("selection for unannounced offer, ignoring",
			"id", handle.ID(), "interface", handle.Interface())
		return
	}

	if old != nil {
		old.Destroy()
	}
	if d.onChange != nil {
		d.onChange(d.selection)
	}
}

// SetSelection makes src this seat's selection. serial is the input-event
// serial that authorizes the change; src may be nil to clear.
func (d *DataDevice) SetSelection(src *DataSource, serial uint32) {
	var h wlproto.Object
	if src != nil {
		h = src.Handle()
	}
	d.obj.Send(wlproto.DataDeviceRequestSetSelection, h, serial)
}

// Handle returns the device's native handle.
func (d *DataDevice) Handle() wlproto.Object { return d.obj.Handle() }

// Destroy releases the device and any offer it still holds.
func (d *DataDevice) Destroy() {
	if d.pending != nil {
		d.pending.Destroy()
		d.pending = nil
	}
	if d.selection != nil {
		d.selection.Destroy()
		d.selection = nil
	}
	d.obj.Destroy()
}

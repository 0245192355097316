package objects

import (
	"go.klb.dev/wlclip/internal/wlobj"
	"go.klb.dev/wlclip/internal/wlproto"
)

type dataOfferSpec struct{}

func (dataOfferSpec) Interface() wlproto.Interface { return wlproto.DataOfferInterface }

func (dataOfferSpec) Destroy(conn wlproto.Conn, obj wlproto.Object) {
	conn.SendRequest(obj, wlproto.DataOfferRequestDestroy)
	conn.DestroyProxy(obj)
}

func (dataOfferSpec) Listener() wlproto.Listener {
	return wlproto.Listener{
		wlproto.DataOfferEventOffer:         wlobj.Handler1((*DataOffer).onOffer),
		wlproto.DataOfferEventSourceActions: wlobj.Noop,
		wlproto.DataOfferEventAction:        wlobj.Noop,
	}
}

// DataOffer is one inbound data offer: the compositor advertises the MIME
// types the owning client can provide, and the contents can be requested in
// any of them.
type DataOffer struct {
	obj   *wlobj.Object[dataOfferSpec]
	mimes map[string]struct{}
}

// NewDataOffer wraps a freshly announced wl_data_offer handle. The offer's
// advertised MIME types accumulate as its events are dispatched.
func NewDataOffer(conn wlproto.Conn, handle wlproto.Object) (*DataOffer, error) {
	d := &DataOffer{mimes: make(map[string]struct{})}
	obj, err := wlobj.New(conn, dataOfferSpec{}, handle, d)
	if err != nil {
		return nil, err
	}
	d.obj = obj
	return d, nil
}

func (d *DataOffer) onOffer(mime string) {
	d.mimes[mime] = struct{}{}
}

// ForEachMIME calls fn once for every MIME type advertised so far, in
// unspecified order.
func (d *DataOffer) ForEachMIME(fn func(mime string)) {
	for m := range d.mimes {
		fn(m)
	}
}

// Offers reports whether mime has been advertised by this offer.
func (d *DataOffer) Offers(mime string) bool {
	_, ok := d.mimes[mime]
	return ok
}

// Receive asks the offer's owner to write the contents, in the given MIME
// type, to fd. The request is forwarded verbatim — mime is not checked
// against the advertised set, the compositor enforces validity — and the
// transfer itself is asynchronous: the caller reads fd until EOF after
// flushing the connection.
func (d *DataOffer) Receive(mime string, fd int) {
	d.obj.Send(wlproto.DataOfferRequestReceive, mime, fd)
}

// Handle returns the offer's native handle.
func (d *DataOffer) Handle() wlproto.Object { return d.obj.Handle() }

// Destroy releases the offer.
func (d *DataOffer) Destroy() { d.obj.Destroy() }

package objects

import (
	"go.klb.dev/wlclip/internal/wlobj"
	"go.klb.dev/wlclip/internal/wlproto"
)

// seatSpec declares a custom destructor (wl_seat.release) but no listener:
// wlclip only needs the seat as a capability token for the data device, not
// its capability/name events.
type seatSpec struct{}

func (seatSpec) Interface() wlproto.Interface { return wlproto.SeatInterface }

func (seatSpec) Destroy(conn wlproto.Conn, obj wlproto.Object) {
	conn.SendRequest(obj, wlproto.SeatRequestRelease)
	conn.DestroyProxy(obj)
}

// Seat wraps a wl_seat handle bound from the registry.
type Seat struct {
	obj *wlobj.Object[seatSpec]
}

// NewSeat wraps handle.
func NewSeat(conn wlproto.Conn, handle wlproto.Object) (*Seat, error) {
	obj, err := wlobj.New(conn, seatSpec{}, handle, nil)
	if err != nil {
		return nil, err
	}
	return &Seat{obj: obj}, nil
}

// Handle returns the seat's native handle.
func (s *Seat) Handle() wlproto.Object { return s.obj.Handle() }

// Destroy releases the seat.
func (s *Seat) Destroy() { s.obj.Destroy() }

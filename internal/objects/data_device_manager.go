package objects

import (
	"go.klb.dev/wlclip/internal/wlobj"
	"go.klb.dev/wlclip/internal/wlproto"
)

// dataDeviceManagerSpec has neither events nor a destroy request, so it gets
// the generic proxy-destruction fallback.
type dataDeviceManagerSpec struct{}

func (dataDeviceManagerSpec) Interface() wlproto.Interface {
	return wlproto.DataDeviceManagerInterface
}

// DataDeviceManager mints data sources and per-seat data devices.
type DataDeviceManager struct {
	obj *wlobj.Object[dataDeviceManagerSpec]
}

// NewDataDeviceManager wraps a wl_data_device_manager handle bound from the
// registry.
func NewDataDeviceManager(conn wlproto.Conn, handle wlproto.Object) (*DataDeviceManager, error) {
	obj, err := wlobj.New(conn, dataDeviceManagerSpec{}, handle, nil)
	if err != nil {
		return nil, err
	}
	return &DataDeviceManager{obj: obj}, nil
}

// CreateDataSource creates a source offering one MIME type per payloads
// entry. See NewDataSource for onCancel.
func (m *DataDeviceManager) CreateDataSource(payloads map[string][]byte, onCancel func()) (*DataSource, error) {
	h := m.obj.SendConstructor(wlproto.DataDeviceManagerRequestCreateDataSource, wlproto.DataSourceInterface)
	return NewDataSource(m.obj.Conn(), h, payloads, onCancel)
}

// GetDataDevice returns the data device for seat.
func (m *DataDeviceManager) GetDataDevice(seat *Seat) (*DataDevice, error) {
	h := m.obj.SendConstructor(wlproto.DataDeviceManagerRequestGetDataDevice, wlproto.DataDeviceInterface, seat.Handle())
	return NewDataDevice(m.obj.Conn(), h)
}

// Destroy releases the manager.
func (m *DataDeviceManager) Destroy() { m.obj.Destroy() }

// Handle returns the underlying protocol object.
func (m *DataDeviceManager) Handle() wlproto.Object { return m.obj.Handle() }

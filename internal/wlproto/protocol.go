package wlproto

// Interface identities for the protocol objects this module uses, at the
// versions it supports.
var (
	DataOfferInterface         = Interface{Name: "wl_data_offer", Version: 3}
	DataSourceInterface        = Interface{Name: "wl_data_source", Version: 3}
	DataDeviceInterface        = Interface{Name: "wl_data_device", Version: 3}
	DataDeviceManagerInterface = Interface{Name: "wl_data_device_manager", Version: 3}
	SeatInterface              = Interface{Name: "wl_seat", Version: 7}
)

// wl_data_offer requests.
const (
	DataOfferRequestAccept  uint16 = 0
	DataOfferRequestReceive uint16 = 1
	DataOfferRequestDestroy uint16 = 2
)

// wl_data_offer events. Event arguments:
//
//	Offer(mimeType string)
//	SourceActions(actions uint32)
//	Action(action uint32)
const (
	DataOfferEventOffer uint16 = iota
	DataOfferEventSourceActions
	DataOfferEventAction
	DataOfferEventCount
)

// wl_data_source requests.
const (
	DataSourceRequestOffer   uint16 = 0
	DataSourceRequestDestroy uint16 = 1
)

// wl_data_source events. Event arguments:
//
//	Target(mimeType string)     — mimeType may be ""
//	Send(mimeType string, fd int)
//	Cancelled()
//	DndDropPerformed()
//	DndFinished()
//	Action(action uint32)
const (
	DataSourceEventTarget uint16 = iota
	DataSourceEventSend
	DataSourceEventCancelled
	DataSourceEventDndDropPerformed
	DataSourceEventDndFinished
	DataSourceEventAction
	DataSourceEventCount
)

// wl_data_device requests.
const (
	DataDeviceRequestStartDrag    uint16 = 0
	DataDeviceRequestSetSelection uint16 = 1
	DataDeviceRequestRelease      uint16 = 2
)

// wl_data_device events. Event arguments:
//
//	DataOffer(offer Object)     — a freshly created wl_data_offer handle
//	Enter(serial uint32, surface Object, x, y float64, offer Object)
//	Leave()
//	Motion(time uint32, x, y float64)
//	Drop()
//	Selection(offer Object)     — nil when the selection is cleared
const (
	DataDeviceEventDataOffer uint16 = iota
	DataDeviceEventEnter
	DataDeviceEventLeave
	DataDeviceEventMotion
	DataDeviceEventDrop
	DataDeviceEventSelection
	DataDeviceEventCount
)

// wl_data_device_manager requests.
const (
	DataDeviceManagerRequestCreateDataSource uint16 = 0
	DataDeviceManagerRequestGetDataDevice    uint16 = 1
)

// wl_seat requests.
const (
	SeatRequestGetPointer  uint16 = 0
	SeatRequestGetKeyboard uint16 = 1
	SeatRequestGetTouch    uint16 = 2
	SeatRequestRelease     uint16 = 3
)

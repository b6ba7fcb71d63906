package bredr

// Identity is the last-known wire identity of a remote device.
type Identity struct {
	Address  string `json:"address"`
	Public   bool   `json:"public"`
	PageScan uint8  `json:"page_scan_repetition_mode"`
	ClockOff uint16 `json:"clock_offset"`
}

// IdentityCache resolves a device address to its last-known identity.
type IdentityCache interface {
	Store(mac Addr, id Identity, replace bool) error
	Load(mac Addr) (Identity, error)
	Clear() error
}

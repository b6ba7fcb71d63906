package cmd

// ReadFailedContactCounter implements Read Failed Contact Counter (0x05|0x0001) [Vol 2, Part E, 7.5.1].
type ReadFailedContactCounter struct {
	ConnectionHandle uint16
}

func (c *ReadFailedContactCounter) String() string {
	return "Read Failed Contact Counter (0x05|0x0001)"
}

func (c *ReadFailedContactCounter) OpCode() int { return 0x05<<10 | 0x0001 }

func (c *ReadFailedContactCounter) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ReadFailedContactCounter) Marshal(b []byte) error { return marshal(c, b) }

// ReadFailedContactCounterRP returns the return parameter of Read Failed Contact Counter.
type ReadFailedContactCounterRP struct {
	Status               uint8
	ConnectionHandle     uint16
	FailedContactCounter uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadFailedContactCounterRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ResetFailedContactCounter implements Reset Failed Contact Counter (0x05|0x0002) [Vol 2, Part E, 7.5.2].
type ResetFailedContactCounter struct {
	ConnectionHandle uint16
}

func (c *ResetFailedContactCounter) String() string {
	return "Reset Failed Contact Counter (0x05|0x0002)"
}

func (c *ResetFailedContactCounter) OpCode() int { return 0x05<<10 | 0x0002 }

func (c *ResetFailedContactCounter) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ResetFailedContactCounter) Marshal(b []byte) error { return marshal(c, b) }

// ResetFailedContactCounterRP returns the return parameter of Reset Failed Contact Counter.
type ResetFailedContactCounterRP struct {
	Status           uint8
	ConnectionHandle uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ResetFailedContactCounterRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadLinkQuality implements Read Link Quality (0x05|0x0003) [Vol 2, Part E, 7.5.3].
type ReadLinkQuality struct {
	ConnectionHandle uint16
}

func (c *ReadLinkQuality) String() string { return "Read Link Quality (0x05|0x0003)" }

func (c *ReadLinkQuality) OpCode() int { return 0x05<<10 | 0x0003 }

func (c *ReadLinkQuality) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ReadLinkQuality) Marshal(b []byte) error { return marshal(c, b) }

// ReadLinkQualityRP returns the return parameter of Read Link Quality.
type ReadLinkQualityRP struct {
	Status           uint8
	ConnectionHandle uint16
	LinkQuality      uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadLinkQualityRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadRSSI implements Read RSSI (0x05|0x0005) [Vol 2, Part E, 7.5.4].
type ReadRSSI struct {
	ConnectionHandle uint16
}

func (c *ReadRSSI) String() string { return "Read RSSI (0x05|0x0005)" }

func (c *ReadRSSI) OpCode() int { return 0x05<<10 | 0x0005 }

func (c *ReadRSSI) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ReadRSSI) Marshal(b []byte) error { return marshal(c, b) }

// ReadRSSIRP returns the return parameter of Read RSSI.
type ReadRSSIRP struct {
	Status           uint8
	ConnectionHandle uint16
	RSSI             int8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadRSSIRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadClock implements Read Clock (0x05|0x0007) [Vol 2, Part E, 7.5.6].
type ReadClock struct {
	ConnectionHandle uint16
	WhichClock       uint8
}

func (c *ReadClock) String() string { return "Read Clock (0x05|0x0007)" }

func (c *ReadClock) OpCode() int { return 0x05<<10 | 0x0007 }

func (c *ReadClock) Len() int { return 3 }

// Marshal serializes the command parameters into binary form.
func (c *ReadClock) Marshal(b []byte) error { return marshal(c, b) }

// ReadClockRP returns the return parameter of Read Clock.
type ReadClockRP struct {
	Status           uint8
	ConnectionHandle uint16
	Clock            uint32
	Accuracy         uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadClockRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

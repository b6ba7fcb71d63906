package cmd

// ReadBufferSize implements Read Buffer Size (0x04|0x0005) [Vol 2, Part E, 7.4.5].
type ReadBufferSize struct {
}

func (c *ReadBufferSize) String() string { return "Read Buffer Size (0x04|0x0005)" }

func (c *ReadBufferSize) OpCode() int { return 0x04<<10 | 0x0005 }

func (c *ReadBufferSize) Len() int { return 0 }

// Marshal serializes the command parameters into binary form.
func (c *ReadBufferSize) Marshal(b []byte) error { return marshal(c, b) }

// ReadBufferSizeRP returns the return parameter of Read Buffer Size.
type ReadBufferSizeRP struct {
	Status                   uint8
	HCACLDataPacketLength    uint16
	HCSCODataPacketLength    uint8
	HCTotalNumACLDataPackets uint16
	HCTotalNumSCODataPackets uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadBufferSizeRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadBDADDR implements Read BD_ADDR (0x04|0x0009) [Vol 2, Part E, 7.4.6].
type ReadBDADDR struct {
}

func (c *ReadBDADDR) String() string { return "Read BD_ADDR (0x04|0x0009)" }

func (c *ReadBDADDR) OpCode() int { return 0x04<<10 | 0x0009 }

func (c *ReadBDADDR) Len() int { return 0 }

// Marshal serializes the command parameters into binary form.
func (c *ReadBDADDR) Marshal(b []byte) error { return marshal(c, b) }

// ReadBDADDRRP returns the return parameter of Read BD_ADDR.
type ReadBDADDRRP struct {
	Status uint8
	BDADDR [6]byte
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadBDADDRRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

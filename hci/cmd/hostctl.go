package cmd

// SetEventMask implements Set Event Mask (0x03|0x0001) [Vol 2, Part E, 7.3.1].
type SetEventMask struct {
	EventMask uint64
}

func (c *SetEventMask) String() string { return "Set Event Mask (0x03|0x0001)" }

func (c *SetEventMask) OpCode() int { return 0x03<<10 | 0x0001 }

func (c *SetEventMask) Len() int { return 8 }

// Marshal serializes the command parameters into binary form.
func (c *SetEventMask) Marshal(b []byte) error { return marshal(c, b) }

// SetEventMaskRP returns the return parameter of Set Event Mask.
type SetEventMaskRP struct {
	Status uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *SetEventMaskRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// Reset implements Reset (0x03|0x0003) [Vol 2, Part E, 7.3.2].
type Reset struct {
}

func (c *Reset) String() string { return "Reset (0x03|0x0003)" }

func (c *Reset) OpCode() int { return 0x03<<10 | 0x0003 }

func (c *Reset) Len() int { return 0 }

// Marshal serializes the command parameters into binary form.
func (c *Reset) Marshal(b []byte) error { return marshal(c, b) }

// ResetRP returns the return parameter of Reset.
type ResetRP struct {
	Status uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ResetRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// Flush implements Flush (0x03|0x0008) [Vol 2, Part E, 7.3.4].
type Flush struct {
	ConnectionHandle uint16
}

func (c *Flush) String() string { return "Flush (0x03|0x0008)" }

func (c *Flush) OpCode() int { return 0x03<<10 | 0x0008 }

func (c *Flush) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *Flush) Marshal(b []byte) error { return marshal(c, b) }

// FlushRP returns the return parameter of Flush.
type FlushRP struct {
	Status           uint8
	ConnectionHandle uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *FlushRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadAutomaticFlushTimeout implements Read Automatic Flush Timeout (0x03|0x0027) [Vol 2, Part E, 7.3.29].
type ReadAutomaticFlushTimeout struct {
	ConnectionHandle uint16
}

func (c *ReadAutomaticFlushTimeout) String() string {
	return "Read Automatic Flush Timeout (0x03|0x0027)"
}

func (c *ReadAutomaticFlushTimeout) OpCode() int { return 0x03<<10 | 0x0027 }

func (c *ReadAutomaticFlushTimeout) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ReadAutomaticFlushTimeout) Marshal(b []byte) error { return marshal(c, b) }

// ReadAutomaticFlushTimeoutRP returns the return parameter of Read Automatic Flush Timeout.
type ReadAutomaticFlushTimeoutRP struct {
	Status           uint8
	ConnectionHandle uint16
	FlushTimeout     uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadAutomaticFlushTimeoutRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// WriteAutomaticFlushTimeout implements Write Automatic Flush Timeout (0x03|0x0028) [Vol 2, Part E, 7.3.30].
type WriteAutomaticFlushTimeout struct {
	ConnectionHandle uint16
	FlushTimeout     uint16
}

func (c *WriteAutomaticFlushTimeout) String() string {
	return "Write Automatic Flush Timeout (0x03|0x0028)"
}

func (c *WriteAutomaticFlushTimeout) OpCode() int { return 0x03<<10 | 0x0028 }

func (c *WriteAutomaticFlushTimeout) Len() int { return 4 }

// Marshal serializes the command parameters into binary form.
func (c *WriteAutomaticFlushTimeout) Marshal(b []byte) error { return marshal(c, b) }

// WriteAutomaticFlushTimeoutRP returns the return parameter of Write Automatic Flush Timeout.
type WriteAutomaticFlushTimeoutRP struct {
	Status           uint8
	ConnectionHandle uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *WriteAutomaticFlushTimeoutRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadTransmitPowerLevel implements Read Transmit Power Level (0x03|0x002D) [Vol 2, Part E, 7.3.35].
type ReadTransmitPowerLevel struct {
	ConnectionHandle uint16
	Type             uint8
}

func (c *ReadTransmitPowerLevel) String() string { return "Read Transmit Power Level (0x03|0x002D)" }

func (c *ReadTransmitPowerLevel) OpCode() int { return 0x03<<10 | 0x002D }

func (c *ReadTransmitPowerLevel) Len() int { return 3 }

// Marshal serializes the command parameters into binary form.
func (c *ReadTransmitPowerLevel) Marshal(b []byte) error { return marshal(c, b) }

// ReadTransmitPowerLevelRP returns the return parameter of Read Transmit Power Level.
type ReadTransmitPowerLevelRP struct {
	Status             uint8
	ConnectionHandle   uint16
	TransmitPowerLevel int8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadTransmitPowerLevelRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadLinkSupervisionTimeout implements Read Link Supervision Timeout (0x03|0x0036) [Vol 2, Part E, 7.3.41].
type ReadLinkSupervisionTimeout struct {
	ConnectionHandle uint16
}

func (c *ReadLinkSupervisionTimeout) String() string {
	return "Read Link Supervision Timeout (0x03|0x0036)"
}

func (c *ReadLinkSupervisionTimeout) OpCode() int { return 0x03<<10 | 0x0036 }

func (c *ReadLinkSupervisionTimeout) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ReadLinkSupervisionTimeout) Marshal(b []byte) error { return marshal(c, b) }

// ReadLinkSupervisionTimeoutRP returns the return parameter of Read Link Supervision Timeout.
type ReadLinkSupervisionTimeoutRP struct {
	Status                 uint8
	ConnectionHandle       uint16
	LinkSupervisionTimeout uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadLinkSupervisionTimeoutRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// WriteLinkSupervisionTimeout implements Write Link Supervision Timeout (0x03|0x0037) [Vol 2, Part E, 7.3.42].
type WriteLinkSupervisionTimeout struct {
	ConnectionHandle       uint16
	LinkSupervisionTimeout uint16
}

func (c *WriteLinkSupervisionTimeout) String() string {
	return "Write Link Supervision Timeout (0x03|0x0037)"
}

func (c *WriteLinkSupervisionTimeout) OpCode() int { return 0x03<<10 | 0x0037 }

func (c *WriteLinkSupervisionTimeout) Len() int { return 4 }

// Marshal serializes the command parameters into binary form.
func (c *WriteLinkSupervisionTimeout) Marshal(b []byte) error { return marshal(c, b) }

// WriteLinkSupervisionTimeoutRP returns the return parameter of Write Link Supervision Timeout.
type WriteLinkSupervisionTimeoutRP struct {
	Status           uint8
	ConnectionHandle uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *WriteLinkSupervisionTimeoutRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

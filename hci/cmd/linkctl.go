package cmd

// CreateConnection implements Create Connection (0x01|0x0005) [Vol 2, Part E, 7.1.5].
type CreateConnection struct {
	BDADDR                 [6]byte
	PacketType             uint16
	PageScanRepetitionMode uint8
	Reserved               uint8
	ClockOffset            uint16
	AllowRoleSwitch        uint8
}

func (c *CreateConnection) String() string { return "Create Connection (0x01|0x0005)" }

func (c *CreateConnection) OpCode() int { return 0x01<<10 | 0x0005 }

func (c *CreateConnection) Len() int { return 13 }

// Marshal serializes the command parameters into binary form.
func (c *CreateConnection) Marshal(b []byte) error { return marshal(c, b) }

// Disconnect implements Disconnect (0x01|0x0006) [Vol 2, Part E, 7.1.6].
type Disconnect struct {
	ConnectionHandle uint16
	Reason           uint8
}

func (c *Disconnect) String() string { return "Disconnect (0x01|0x0006)" }

func (c *Disconnect) OpCode() int { return 0x01<<10 | 0x0006 }

func (c *Disconnect) Len() int { return 3 }

// Marshal serializes the command parameters into binary form.
func (c *Disconnect) Marshal(b []byte) error { return marshal(c, b) }

// CreateConnectionCancel implements Create Connection Cancel (0x01|0x0008) [Vol 2, Part E, 7.1.7].
type CreateConnectionCancel struct {
	BDADDR [6]byte
}

func (c *CreateConnectionCancel) String() string { return "Create Connection Cancel (0x01|0x0008)" }

func (c *CreateConnectionCancel) OpCode() int { return 0x01<<10 | 0x0008 }

func (c *CreateConnectionCancel) Len() int { return 6 }

// Marshal serializes the command parameters into binary form.
func (c *CreateConnectionCancel) Marshal(b []byte) error { return marshal(c, b) }

// CreateConnectionCancelRP returns the return parameter of Create Connection Cancel.
type CreateConnectionCancelRP struct {
	Status uint8
	BDADDR [6]byte
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *CreateConnectionCancelRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// AcceptConnectionRequest implements Accept Connection Request (0x01|0x0009) [Vol 2, Part E, 7.1.8].
type AcceptConnectionRequest struct {
	BDADDR [6]byte
	Role   uint8
}

func (c *AcceptConnectionRequest) String() string { return "Accept Connection Request (0x01|0x0009)" }

func (c *AcceptConnectionRequest) OpCode() int { return 0x01<<10 | 0x0009 }

func (c *AcceptConnectionRequest) Len() int { return 7 }

// Marshal serializes the command parameters into binary form.
func (c *AcceptConnectionRequest) Marshal(b []byte) error { return marshal(c, b) }

// RejectConnectionRequest implements Reject Connection Request (0x01|0x000A) [Vol 2, Part E, 7.1.9].
type RejectConnectionRequest struct {
	BDADDR [6]byte
	Reason uint8
}

func (c *RejectConnectionRequest) String() string { return "Reject Connection Request (0x01|0x000A)" }

func (c *RejectConnectionRequest) OpCode() int { return 0x01<<10 | 0x000A }

func (c *RejectConnectionRequest) Len() int { return 7 }

// Marshal serializes the command parameters into binary form.
func (c *RejectConnectionRequest) Marshal(b []byte) error { return marshal(c, b) }

// ChangeConnectionPacketType implements Change Connection Packet Type (0x01|0x000F) [Vol 2, Part E, 7.1.14].
type ChangeConnectionPacketType struct {
	ConnectionHandle uint16
	PacketType       uint16
}

func (c *ChangeConnectionPacketType) String() string {
	return "Change Connection Packet Type (0x01|0x000F)"
}

func (c *ChangeConnectionPacketType) OpCode() int { return 0x01<<10 | 0x000F }

func (c *ChangeConnectionPacketType) Len() int { return 4 }

// Marshal serializes the command parameters into binary form.
func (c *ChangeConnectionPacketType) Marshal(b []byte) error { return marshal(c, b) }

// AuthenticationRequested implements Authentication Requested (0x01|0x0011) [Vol 2, Part E, 7.1.15].
type AuthenticationRequested struct {
	ConnectionHandle uint16
}

func (c *AuthenticationRequested) String() string { return "Authentication Requested (0x01|0x0011)" }

func (c *AuthenticationRequested) OpCode() int { return 0x01<<10 | 0x0011 }

func (c *AuthenticationRequested) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *AuthenticationRequested) Marshal(b []byte) error { return marshal(c, b) }

// SetConnectionEncryption implements Set Connection Encryption (0x01|0x0013) [Vol 2, Part E, 7.1.16].
type SetConnectionEncryption struct {
	ConnectionHandle uint16
	EncryptionEnable uint8
}

func (c *SetConnectionEncryption) String() string { return "Set Connection Encryption (0x01|0x0013)" }

func (c *SetConnectionEncryption) OpCode() int { return 0x01<<10 | 0x0013 }

func (c *SetConnectionEncryption) Len() int { return 3 }

// Marshal serializes the command parameters into binary form.
func (c *SetConnectionEncryption) Marshal(b []byte) error { return marshal(c, b) }

// ChangeConnectionLinkKey implements Change Connection Link Key (0x01|0x0015) [Vol 2, Part E, 7.1.17].
type ChangeConnectionLinkKey struct {
	ConnectionHandle uint16
}

func (c *ChangeConnectionLinkKey) String() string { return "Change Connection Link Key (0x01|0x0015)" }

func (c *ChangeConnectionLinkKey) OpCode() int { return 0x01<<10 | 0x0015 }

func (c *ChangeConnectionLinkKey) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ChangeConnectionLinkKey) Marshal(b []byte) error { return marshal(c, b) }

// ReadClockOffset implements Read Clock Offset (0x01|0x001F) [Vol 2, Part E, 7.1.24].
type ReadClockOffset struct {
	ConnectionHandle uint16
}

func (c *ReadClockOffset) String() string { return "Read Clock Offset (0x01|0x001F)" }

func (c *ReadClockOffset) OpCode() int { return 0x01<<10 | 0x001F }

func (c *ReadClockOffset) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ReadClockOffset) Marshal(b []byte) error { return marshal(c, b) }

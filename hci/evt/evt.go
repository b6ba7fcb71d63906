package evt

import "encoding/binary"

const ConnectionCompleteCode = 0x03

// ConnectionComplete implements Connection Complete (0x03) [Vol 2, Part E, 7.7.3].
type ConnectionComplete []byte

func (e ConnectionComplete) Status() uint8 { return e[0] }

func (e ConnectionComplete) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }

func (e ConnectionComplete) BDADDR() [6]byte {
	b := [6]byte{}
	copy(b[:], e[3:9])
	return b
}

func (e ConnectionComplete) LinkType() uint8 { return e[9] }

func (e ConnectionComplete) EncryptionEnabled() uint8 { return e[10] }

const ConnectionRequestCode = 0x04

// ConnectionRequest implements Connection Request (0x04) [Vol 2, Part E, 7.7.4].
type ConnectionRequest []byte

func (e ConnectionRequest) BDADDR() [6]byte {
	b := [6]byte{}
	copy(b[:], e[0:6])
	return b
}

func (e ConnectionRequest) ClassOfDevice() [3]byte {
	b := [3]byte{}
	copy(b[:], e[6:9])
	return b
}

func (e ConnectionRequest) LinkType() uint8 { return e[9] }

const DisconnectionCompleteCode = 0x05

// DisconnectionComplete implements Disconnection Complete (0x05) [Vol 2, Part E, 7.7.5].
type DisconnectionComplete []byte

func (e DisconnectionComplete) Status() uint8 { return e[0] }

func (e DisconnectionComplete) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }

func (e DisconnectionComplete) Reason() uint8 { return e[3] }

const AuthenticationCompleteCode = 0x06

// AuthenticationComplete implements Authentication Complete (0x06) [Vol 2, Part E, 7.7.6].
type AuthenticationComplete []byte

func (e AuthenticationComplete) Status() uint8 { return e[0] }

func (e AuthenticationComplete) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }

const EncryptionChangeCode = 0x08

// EncryptionChange implements Encryption Change (0x08) [Vol 2, Part E, 7.7.8].
type EncryptionChange []byte

func (e EncryptionChange) Status() uint8 { return e[0] }

func (e EncryptionChange) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }

func (e EncryptionChange) EncryptionEnabled() uint8 { return e[3] }

const ChangeConnectionLinkKeyCompleteCode = 0x09

// ChangeConnectionLinkKeyComplete implements Change Connection Link Key Complete (0x09) [Vol 2, Part E, 7.7.9].
type ChangeConnectionLinkKeyComplete []byte

func (e ChangeConnectionLinkKeyComplete) Status() uint8 { return e[0] }

func (e ChangeConnectionLinkKeyComplete) ConnectionHandle() uint16 {
	return binary.LittleEndian.Uint16(e[1:])
}

const QosSetupCompleteCode = 0x0D

// QosSetupComplete implements QoS Setup Complete (0x0D) [Vol 2, Part E, 7.7.13].
type QosSetupComplete []byte

func (e QosSetupComplete) Status() uint8 { return e[0] }

func (e QosSetupComplete) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }

func (e QosSetupComplete) Flags() uint8 { return e[3] }

func (e QosSetupComplete) ServiceType() uint8 { return e[4] }

func (e QosSetupComplete) TokenRate() uint32 { return binary.LittleEndian.Uint32(e[5:]) }

func (e QosSetupComplete) PeakBandwidth() uint32 { return binary.LittleEndian.Uint32(e[9:]) }

func (e QosSetupComplete) Latency() uint32 { return binary.LittleEndian.Uint32(e[13:]) }

func (e QosSetupComplete) DelayVariation() uint32 { return binary.LittleEndian.Uint32(e[17:]) }

const CommandCompleteCode = 0x0E

// CommandComplete implements Command Complete (0x0E) [Vol 2, Part E, 7.7.14].
type CommandComplete []byte

const CommandStatusCode = 0x0F

// CommandStatus implements Command Status (0x0F) [Vol 2, Part E, 7.7.15].
type CommandStatus []byte

func (e CommandStatus) Valid() bool { return len(e) >= 4 }

func (e CommandStatus) Status() uint8 { return e[0] }

func (e CommandStatus) NumHCICommandPackets() uint8 { return e[1] }

func (e CommandStatus) CommandOpcode() uint16 { return binary.LittleEndian.Uint16(e[2:]) }

const FlushOccurredCode = 0x11

// FlushOccurred implements Flush Occurred (0x11) [Vol 2, Part E, 7.7.17].
type FlushOccurred []byte

func (e FlushOccurred) Handle() uint16 { return binary.LittleEndian.Uint16(e[0:]) }

const NumberOfCompletedPacketsCode = 0x13

// NumberOfCompletedPackets implements Number Of Completed Packets (0x13) [Vol 2, Part E, 7.7.19].
type NumberOfCompletedPackets []byte

const ModeChangeCode = 0x14

// ModeChange implements Mode Change (0x14) [Vol 2, Part E, 7.7.20].
type ModeChange []byte

func (e ModeChange) Status() uint8 { return e[0] }

func (e ModeChange) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }

func (e ModeChange) CurrentMode() uint8 { return e[3] }

func (e ModeChange) Interval() uint16 { return binary.LittleEndian.Uint16(e[4:]) }

const ReadClockOffsetCompleteCode = 0x1C

// ReadClockOffsetComplete implements Read Clock Offset Complete (0x1C) [Vol 2, Part E, 7.7.23].
type ReadClockOffsetComplete []byte

func (e ReadClockOffsetComplete) Status() uint8 { return e[0] }

func (e ReadClockOffsetComplete) ConnectionHandle() uint16 { return binary.LittleEndian.Uint16(e[1:]) }

func (e ReadClockOffsetComplete) ClockOffset() uint16 { return binary.LittleEndian.Uint16(e[3:]) }

const ConnectionPacketTypeChangedCode = 0x1D

// ConnectionPacketTypeChanged implements Connection Packet Type Changed (0x1D) [Vol 2, Part E, 7.7.24].
type ConnectionPacketTypeChanged []byte

func (e ConnectionPacketTypeChanged) Status() uint8 { return e[0] }

func (e ConnectionPacketTypeChanged) ConnectionHandle() uint16 {
	return binary.LittleEndian.Uint16(e[1:])
}

func (e ConnectionPacketTypeChanged) PacketType() uint16 { return binary.LittleEndian.Uint16(e[3:]) }

const FlowSpecificationCompleteCode = 0x21

// FlowSpecificationComplete implements Flow Specification Complete (0x21) [Vol 2, Part E, 7.7.32].
type FlowSpecificationComplete []byte

func (e FlowSpecificationComplete) Status() uint8 { return e[0] }

func (e FlowSpecificationComplete) ConnectionHandle() uint16 {
	return binary.LittleEndian.Uint16(e[1:])
}

func (e FlowSpecificationComplete) Flags() uint8 { return e[3] }

func (e FlowSpecificationComplete) FlowDirection() uint8 { return e[4] }

func (e FlowSpecificationComplete) ServiceType() uint8 { return e[5] }

func (e FlowSpecificationComplete) TokenRate() uint32 { return binary.LittleEndian.Uint32(e[6:]) }

func (e FlowSpecificationComplete) TokenBucketSize() uint32 {
	return binary.LittleEndian.Uint32(e[10:])
}

func (e FlowSpecificationComplete) PeakBandwidth() uint32 { return binary.LittleEndian.Uint32(e[14:]) }

func (e FlowSpecificationComplete) AccessLatency() uint32 { return binary.LittleEndian.Uint32(e[18:]) }

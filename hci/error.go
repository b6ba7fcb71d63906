package hci

import "fmt"

// ErrCommand is the HCI status or reason code returned by a command or
// carried in an event [Vol 2, Part D, 1.3].
type ErrCommand byte

func (e ErrCommand) Error() string {
	if s, ok := errCmd[int(e)]; ok {
		return fmt.Sprintf("%s (0x%02X)", s, int(e))
	}
	return fmt.Sprintf("unknown status (0x%02X)", int(e))
}

const (
	ErrUnknownCommand        ErrCommand = 0x01
	ErrConnID                ErrCommand = 0x02
	ErrHardware              ErrCommand = 0x03
	ErrPageTimeout           ErrCommand = 0x04
	ErrAuthFailure           ErrCommand = 0x05
	ErrPINMissing            ErrCommand = 0x06
	ErrMemoryCapacity        ErrCommand = 0x07
	ErrConnTimeout           ErrCommand = 0x08
	ErrConnLimit             ErrCommand = 0x09
	ErrACLConnExists         ErrCommand = 0x0B
	ErrDisallowed            ErrCommand = 0x0C
	ErrLimitedResources      ErrCommand = 0x0D
	ErrSecurity              ErrCommand = 0x0E
	ErrUnacceptableBDAddr    ErrCommand = 0x0F
	ErrHostTimeout           ErrCommand = 0x10
	ErrUnsupportedParams     ErrCommand = 0x11
	ErrInvalidParams         ErrCommand = 0x12
	ErrRemoteUser            ErrCommand = 0x13
	ErrRemoteLowResources    ErrCommand = 0x14
	ErrRemotePowerOff        ErrCommand = 0x15
	ErrLocalHost             ErrCommand = 0x16
	ErrRepeatedAttempts      ErrCommand = 0x17
	ErrPairingNotAllowed     ErrCommand = 0x18
	ErrUnsupportedRemote     ErrCommand = 0x1A
	ErrUnspecified           ErrCommand = 0x1F
	ErrRoleChangeNotAllowed  ErrCommand = 0x21
	ErrLMPResponseTimeout    ErrCommand = 0x22
	ErrRoleSwitchPending     ErrCommand = 0x32
	ErrRoleSwitchFailed      ErrCommand = 0x35
	ErrConnFailedToEstablish ErrCommand = 0x3E
)

var errCmd = map[int]string{
	0x01: "unknown HCI command",
	0x02: "unknown connection identifier",
	0x03: "hardware failure",
	0x04: "page timeout",
	0x05: "authentication failure",
	0x06: "PIN or key missing",
	0x07: "memory capacity exceeded",
	0x08: "connection timeout",
	0x09: "connection limit exceeded",
	0x0A: "synchronous connection limit exceeded",
	0x0B: "connection already exists",
	0x0C: "command disallowed",
	0x0D: "connection rejected due to limited resources",
	0x0E: "connection rejected due to security reasons",
	0x0F: "connection rejected due to unacceptable BD_ADDR",
	0x10: "connection accept timeout exceeded",
	0x11: "unsupported feature or parameter value",
	0x12: "invalid HCI command parameters",
	0x13: "remote user terminated connection",
	0x14: "remote device terminated connection due to low resources",
	0x15: "remote device terminated connection due to power off",
	0x16: "connection terminated by local host",
	0x17: "repeated attempts",
	0x18: "pairing not allowed",
	0x1A: "unsupported remote feature",
	0x1F: "unspecified error",
	0x21: "role change not allowed",
	0x22: "LMP response timeout",
	0x28: "instant passed",
	0x32: "role switch pending",
	0x35: "role switch failed",
	0x3E: "connection failed to be established",
}

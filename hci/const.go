package hci

import "time"

// HCI Packet types
const (
	pktTypeCommand uint8 = 0x01
	pktTypeACLData uint8 = 0x02
	pktTypeSCOData uint8 = 0x03
	pktTypeEvent   uint8 = 0x04
	pktTypeVendor  uint8 = 0xFF
)

// Packet boundary flags of HCI ACL Data Packet [Vol 2, Part E, 5.4.2].
const (
	pbfFirstAutoFlushable    = 0x02 // Start of an automatically-flushable PDU.
	pbfContinuing            = 0x01 // Continuing fragment.
	pbfFirstNonAutoFlushable = 0x00
)

// Link types carried by connection request/complete events [Vol 2, Part E, 7.7.3].
const (
	LinkTypeSCO  uint8 = 0x00
	LinkTypeACL  uint8 = 0x01
	LinkTypeESCO uint8 = 0x02
)

const (
	roleMaster = 0x00
	roleSlave  = 0x01
)

// Default packet types offered on Create Connection: all DM/DH rates.
const defaultPacketType = 0xcc18

const (
	chCmdBufChanSize    = 16
	chCmdBufElementSize = 64
	chCmdBufTimeout     = time.Second * 5
	cmdResponseTimeout  = time.Second * 3
)

const (
	inQueueSize   = 16
	outQueueSize  = 64
	sktRxChanSize = 16
)

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConnectionMarshal(t *testing.T) {
	c := &CreateConnection{
		BDADDR:                 [6]byte{0xA6, 0xA5, 0xA4, 0xA3, 0xA2, 0xA1},
		PacketType:             0xcc18,
		PageScanRepetitionMode: 0x01,
		ClockOffset:            0x8123,
		AllowRoleSwitch:        0x01,
	}
	require.Equal(t, 13, c.Len())
	require.Equal(t, 0x0405, c.OpCode())

	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))

	want := []byte{
		0xA6, 0xA5, 0xA4, 0xA3, 0xA2, 0xA1,
		0x18, 0xCC,
		0x01,
		0x00,
		0x23, 0x81,
		0x01,
	}
	assert.Equal(t, want, b)
}

func TestDisconnectMarshal(t *testing.T) {
	c := &Disconnect{ConnectionHandle: 0x0123, Reason: 0x13}
	require.Equal(t, 3, c.Len())

	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	assert.Equal(t, []byte{0x23, 0x01, 0x13}, b)
}

func TestSniffModeMarshal(t *testing.T) {
	c := &SniffMode{
		ConnectionHandle: 0x0123,
		SniffMaxInterval: 0x0500,
		SniffMinInterval: 0x0020,
		SniffAttempt:     0x0004,
		SniffTimeout:     0x0001,
	}
	require.Equal(t, 10, c.Len())

	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	assert.Equal(t, []byte{0x23, 0x01, 0x00, 0x05, 0x20, 0x00, 0x04, 0x00, 0x01, 0x00}, b)
}

func TestReadBufferSizeUnmarshal(t *testing.T) {
	rp := &ReadBufferSizeRP{}
	require.NoError(t, rp.Unmarshal([]byte{0x00, 0xFD, 0x03, 0x40, 0x0A, 0x00, 0x08, 0x00}))

	assert.Equal(t, uint8(0x00), rp.Status)
	assert.Equal(t, uint16(1021), rp.HCACLDataPacketLength)
	assert.Equal(t, uint8(0x40), rp.HCSCODataPacketLength)
	assert.Equal(t, uint16(10), rp.HCTotalNumACLDataPackets)
	assert.Equal(t, uint16(8), rp.HCTotalNumSCODataPackets)
}

func TestReadRSSIUnmarshalNegative(t *testing.T) {
	rp := &ReadRSSIRP{}
	require.NoError(t, rp.Unmarshal([]byte{0x00, 0x23, 0x01, 0xC4}))

	assert.Equal(t, uint16(0x0123), rp.ConnectionHandle)
	assert.Equal(t, int8(-60), rp.RSSI)
}

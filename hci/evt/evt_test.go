package evt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionComplete(t *testing.T) {
	e := ConnectionComplete{0x00, 0x23, 0x01, 0xA6, 0xA5, 0xA4, 0xA3, 0xA2, 0xA1, 0x01, 0x00}

	assert.Equal(t, uint8(0x00), e.Status())
	assert.Equal(t, uint16(0x0123), e.ConnectionHandle())
	assert.Equal(t, [6]byte{0xA6, 0xA5, 0xA4, 0xA3, 0xA2, 0xA1}, e.BDADDR())
	assert.Equal(t, uint8(0x01), e.LinkType())
	assert.Equal(t, uint8(0x00), e.EncryptionEnabled())
}

func TestNumberOfCompletedPacketsInterleaved(t *testing.T) {
	// interleaved layout as delivered by deployed controllers:
	// NumOfHandle, HandleA, CompPktNumA, HandleB, CompPktNumB
	e := NumberOfCompletedPackets{0x02, 0x40, 0x00, 0x01, 0x00, 0x41, 0x00, 0x01, 0x00}

	require.Equal(t, uint8(2), e.NumberOfHandles())
	assert.Equal(t, uint16(0x0040), e.ConnectionHandle(0))
	assert.Equal(t, uint16(1), e.HCNumOfCompletedPackets(0))
	assert.Equal(t, uint16(0x0041), e.ConnectionHandle(1))
	assert.Equal(t, uint16(1), e.HCNumOfCompletedPackets(1))
}

func TestNumberOfCompletedPacketsTruncated(t *testing.T) {
	e := NumberOfCompletedPackets{0x02, 0x40, 0x00, 0x01, 0x00}

	_, err := e.ConnectionHandleWErr(1)
	assert.Error(t, err)

	// plain accessor falls back to defaults instead of panicking
	assert.Equal(t, uint16(0xffff), e.ConnectionHandle(1))
	assert.Equal(t, uint16(0), e.HCNumOfCompletedPackets(1))
}

func TestCommandCompleteAccessors(t *testing.T) {
	e := CommandComplete{0x01, 0x05, 0x04, 0x00, 0xAA}

	assert.Equal(t, uint8(1), e.NumHCICommandPackets())
	assert.Equal(t, uint16(0x0405), e.CommandOpcode())
	assert.Equal(t, []byte{0x00, 0xAA}, e.ReturnParameters())
}

func TestCommandStatusValid(t *testing.T) {
	assert.True(t, CommandStatus{0x00, 0x01, 0x05, 0x04}.Valid())
	assert.False(t, CommandStatus{0x00, 0x01}.Valid())
}

func TestModeChange(t *testing.T) {
	e := ModeChange{0x00, 0x23, 0x01, 0x02, 0x28, 0x00}

	assert.Equal(t, uint8(0x00), e.Status())
	assert.Equal(t, uint16(0x0123), e.ConnectionHandle())
	assert.Equal(t, uint8(0x02), e.CurrentMode())
	assert.Equal(t, uint16(0x0028), e.Interval())
}

func TestDisconnectionComplete(t *testing.T) {
	e := DisconnectionComplete{0x00, 0x23, 0x01, 0x13}

	assert.Equal(t, uint16(0x0123), e.ConnectionHandle())
	assert.Equal(t, uint8(0x13), e.Reason())
}

package h4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameAssembleEvent(t *testing.T) {
	out := make(chan []byte, 4)
	f := newFrame(out)

	f.Assemble([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})

	select {
	case pkt := <-out:
		assert.Equal(t, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}, pkt)
	default:
		t.Fatal("no frame assembled")
	}
}

func TestFrameAssembleSplit(t *testing.T) {
	out := make(chan []byte, 4)
	f := newFrame(out)

	// event delivered one byte at a time
	for _, b := range []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00} {
		f.Assemble([]byte{b})
	}

	select {
	case pkt := <-out:
		assert.Equal(t, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}, pkt)
	default:
		t.Fatal("no frame assembled")
	}
}

func TestFrameAssembleACL(t *testing.T) {
	out := make(chan []byte, 4)
	f := newFrame(out)

	f.Assemble([]byte{0x02, 0x23, 0x21, 0x03, 0x00, 0xAA, 0xBB, 0xCC})

	select {
	case pkt := <-out:
		assert.Equal(t, []byte{0x02, 0x23, 0x21, 0x03, 0x00, 0xAA, 0xBB, 0xCC}, pkt)
	default:
		t.Fatal("no acl frame assembled")
	}
}

func TestFrameAssembleBackToBack(t *testing.T) {
	out := make(chan []byte, 4)
	f := newFrame(out)

	// two packets in one chunk
	f.Assemble([]byte{
		0x04, 0x0F, 0x04, 0x00, 0x01, 0x05, 0x04,
		0x02, 0x23, 0x21, 0x01, 0x00, 0xEE,
	})

	require.Len(t, out, 2)
	assert.Equal(t, []byte{0x04, 0x0F, 0x04, 0x00, 0x01, 0x05, 0x04}, <-out)
	assert.Equal(t, []byte{0x02, 0x23, 0x21, 0x01, 0x00, 0xEE}, <-out)
}

func TestFrameSkipsGarbage(t *testing.T) {
	out := make(chan []byte, 4)
	f := newFrame(out)

	// leading noise before the start byte
	f.Assemble([]byte{0x00, 0xFF, 0x04, 0x0E, 0x03, 0x01, 0x03, 0x0C})

	select {
	case pkt := <-out:
		assert.Equal(t, []byte{0x04, 0x0E, 0x03, 0x01, 0x03, 0x0C}, pkt)
	default:
		t.Fatal("no frame assembled")
	}
}

package hci

import (
	"bytes"
	"encoding/binary"
	"sync/atomic"

	"github.com/pkg/errors"
)

// buildPacket frames one payload fragment as a full HCI ACL data packet.
func buildPacket(handle uint16, flags uint16, payload []byte) []byte {
	b := bytes.NewBuffer(make([]byte, 0, 1+4+len(payload)))
	b.WriteByte(pktTypeACLData)
	_ = binary.Write(b, binary.LittleEndian, handle|(flags<<12))
	_ = binary.Write(b, binary.LittleEndian, uint16(len(payload)))
	b.Write(payload)
	return b.Bytes()
}

// signalDrain wakes the drain loop. The channel holds one pending wakeup
// at most; a drain already scheduled covers any number of signals.
func (m *Manager) signalDrain() {
	select {
	case m.chDrain <- struct{}{}:
	default:
	}
}

func (m *Manager) drainLoop() {
	for {
		select {
		case <-m.done:
			return
		case <-m.chDrain:
		}
		m.drain()
	}
}

// drain walks the open links and flushes queued fragments for as long as
// controller buffers are available. Iterating round-robin keeps one
// chatty link from starving the others.
func (m *Manager) drain() {
	m.muConns.Lock()
	cc := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		cc = append(cc, c)
	}
	m.muConns.Unlock()

	progress := true
	for progress {
		progress = false
		for _, c := range cc {
			sent, err := c.txOne()
			if err != nil {
				m.dispatchError(err)
				return
			}
			progress = progress || sent
		}
	}
}

// txOne sends at most one queued fragment, reporting whether it did.
// A fragment that found no free buffer stays parked in txHead so the
// next drain retries it first, preserving fragment order on the link.
func (c *Conn) txOne() (bool, error) {
	c.muTx.Lock()
	defer c.muTx.Unlock()

	if atomic.LoadInt32(&c.state) == connClosed {
		return false, nil
	}

	if c.txHead == nil {
		select {
		case c.txHead = <-c.txq:
		default:
			return false, nil
		}
	}

	buf := c.txBuffer.TryGet()
	if buf == nil {
		// out of credits; txHead waits for the next completion
		return false, nil
	}

	buf.Write(c.txHead)
	if _, err := c.mgr.skt.Write(buf.Bytes()); err != nil {
		return false, errors.Wrapf(err, "link %04X tx", c.handle)
	}
	c.txHead = nil
	return true, nil
}

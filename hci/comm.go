package hci

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/edgebt/bredr/hci/evt"
)

// Send issues c and blocks until the controller answers with a command
// status or command complete event. A non-zero status is returned as
// ErrCommand; return parameters, when present, are unmarshaled into r.
func (m *Manager) Send(c Command, r CommandRP) error {
	b, err := m.send(c)
	if err != nil {
		return err
	}
	if len(b) > 0 && b[0] != 0x00 {
		return ErrCommand(b[0])
	}
	if r != nil {
		return r.Unmarshal(b)
	}
	return nil
}

func (m *Manager) checkOpCodeFree(opCode int) error {
	m.muSent.Lock()
	defer m.muSent.Unlock()

	_, ok := m.sent[opCode]
	if ok {
		return fmt.Errorf("command with opcode %v pending", opCode)
	}

	return nil
}

func (m *Manager) send(c Command) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}

	p := &pkt{c, make(chan []byte)}

	// verify the opcode is free before asking for a command buffer, so
	// the buffer is only taken if the command can be sent
	if m.checkOpCodeFree(c.OpCode()) != nil {
		return nil, fmt.Errorf("command with opcode %v pending", c.OpCode())
	}

	// get buffer w/timeout
	var b []byte
	select {
	case <-m.done:
		return nil, fmt.Errorf("hci closed")
	case b = <-m.chCmdBufs:
		//ok
	case <-time.After(chCmdBufTimeout):
		err := fmt.Errorf("chCmdBufs get timeout")
		m.dispatchError(err)
		return nil, err
	}

	//HCI header
	b[0] = pktTypeCommand
	b[1] = byte(c.OpCode())
	b[2] = byte(c.OpCode() >> 8)
	b[3] = byte(c.Len())
	if err := c.Marshal(b[4:]); err != nil {
		m.close(fmt.Errorf("hci: failed to marshal cmd"))
	}

	m.muSent.Lock()
	m.sent[c.OpCode()] = p
	m.muSent.Unlock()

	if !m.isOpen() {
		return nil, fmt.Errorf("hci closed")
	} else if n, err := m.skt.Write(b[:4+c.Len()]); err != nil {
		m.close(fmt.Errorf("hci: failed to send cmd"))
	} else if n != 4+c.Len() {
		m.close(fmt.Errorf("hci: failed to send whole cmd pkt to hci socket"))
	}

	var ret []byte
	var err error

	// emergency timeout to prevent calls from locking up if the
	// controller doesn't respond; responses should normally be fast
	select {
	case <-time.After(cmdResponseTimeout):
		err = fmt.Errorf("hci: no response to command %x (%s)", c.OpCode(), hex.EncodeToString(b[:4+c.Len()]))
		m.dispatchError(err)
		ret = nil
	case <-m.done:
		err = m.err
		ret = nil
	case b := <-p.done:
		err = nil
		ret = b
	}

	// clear the sent table when done; we sometimes get command complete
	// or command status messages with no matching send, which can access
	// stale packets in sent and fail or lock up
	m.muSent.Lock()
	delete(m.sent, c.OpCode())
	m.muSent.Unlock()

	return ret, err
}

func (m *Manager) sktProcessLoop() {
	defer m.cleanup()
	defer m.dispatchError(m.err)

	for {
		var p []byte
		var ok bool

		select {
		case <-m.done:
			m.err = io.EOF
			return

		case p, ok = <-m.sktRxChan:
			if !ok {
				m.err = io.EOF
				return
			}
			// process the bytes below
		}

		// malformed traffic is dropped; only transport failures (EOF,
		// read errors) take the stack down
		if err := m.handlePkt(p); err != nil {
			logger.Warn("hci", "dropping packet:", err)
		}
	}
}

func (m *Manager) sktReadLoop() {
	defer close(m.sktRxChan)

	b := make([]byte, 4096)

	for {
		n, err := m.skt.Read(b)

		switch {
		case n == 0 && err == nil:
			// read timeout
			select {
			case <-m.done:
				return
			default:
				continue
			}

		// callers depend on detecting io.EOF, don't wrap it
		case err == io.EOF:
			m.err = err
			return

		case err != nil:
			m.err = fmt.Errorf("skt read error: %v", err)
			return

		default:
			p := make([]byte, n)
			copy(p, b)
			m.sktRxChan <- p
		}
	}
}

func (m *Manager) close(err error) error {
	m.err = err
	return m.skt.Close()
}

func (m *Manager) handlePkt(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty packet")
	}

	// Strip the 1-byte HCI header and pass down the rest of the packet.
	t, b := b[0], b[1:]
	switch t {
	case pktTypeACLData:
		return m.handleACL(b)
	case pktTypeEvent:
		return m.handleEvt(b)
	case pktTypeSCOData:
		logger.Warn("hci", "unsupported sco packet:", fmt.Sprintf("% X", b))
		return nil
	case pktTypeVendor:
		logger.Warn("hci", "unsupported vendor packet:", fmt.Sprintf("% X", b))
		return nil
	default:
		return fmt.Errorf("invalid packet: 0x%02X % X", t, b)
	}
}

func (m *Manager) handleACL(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("truncated acl packet: % X", b)
	}
	handle := packet(b).handle()

	m.muConns.Lock()
	defer m.muConns.Unlock()

	c, ok := m.conns[handle]
	if !ok {
		logger.Warn("hci", "acl packet for unknown handle", fmt.Sprintf("%04X", handle))
		return nil
	}

	select {
	case c.chInPkt <- packet(b).data():
	default:
		// inbound queue full; dropping keeps the event loop alive
		logger.Warn("hci", "inbound queue full, dropping packet for handle", fmt.Sprintf("%04X", handle))
	}

	return nil
}

// Minimum parameter length per handled event code [Vol 2, Part E, 7.7].
// Shorter events would index past the view accessors; they are dropped
// before dispatch.
var evtMinLen = map[int]int{
	evt.ConnectionCompleteCode:              11,
	evt.ConnectionRequestCode:               10,
	evt.DisconnectionCompleteCode:           4,
	evt.AuthenticationCompleteCode:          3,
	evt.EncryptionChangeCode:                4,
	evt.ChangeConnectionLinkKeyCompleteCode: 3,
	evt.QosSetupCompleteCode:                21,
	evt.CommandCompleteCode:                 3,
	evt.CommandStatusCode:                   4,
	evt.FlushOccurredCode:                   2,
	evt.NumberOfCompletedPacketsCode:        1,
	evt.ModeChangeCode:                      6,
	evt.ReadClockOffsetCompleteCode:         5,
	evt.ConnectionPacketTypeChangedCode:     5,
	evt.FlowSpecificationCompleteCode:       22,
}

func (m *Manager) handleEvt(b []byte) error {
	// anything malformed is dropped, never fatal
	if len(b) < 2 {
		logger.Warn("hci", "truncated event packet:", fmt.Sprintf("% X", b))
		return nil
	}

	code, plen := int(b[0]), int(b[1])
	if plen != len(b[2:]) {
		logger.Warn("hci", "invalid event packet:", fmt.Sprintf("% X", b))
		return nil
	}
	if plen < evtMinLen[code] {
		logger.Warn("hci", "short event packet:", fmt.Sprintf("% X", b))
		return nil
	}

	if f := m.evth[code]; f != nil {
		return f(b[2:])
	}
	if code == 0xff { // Ignore vendor events
		return nil
	}

	logger.Debug("hci", "unhandled event packet:", fmt.Sprintf("% X", b))
	return nil
}

func (m *Manager) handleCommandComplete(b []byte) error {
	e := evt.CommandComplete(b)
	m.setAllowedCommands(int(e.NumHCICommandPackets()))

	// NOP command, used for flow control purpose [Vol 2, Part E, 4.4]
	// no handling other than setAllowedCommands needed
	if e.CommandOpcode() == 0x0000 {
		return nil
	}
	m.muSent.Lock()
	p, found := m.sent[int(e.CommandOpcode())]
	m.muSent.Unlock()

	if !found {
		logger.Warn("hci", "command complete with no matching send:", fmt.Sprintf("% X", e))
		return nil
	}

	select {
	case <-m.done:
		return fmt.Errorf("hci closed")
	case p.done <- e.ReturnParameters():
		return nil
	}
}

func (m *Manager) handleCommandStatus(b []byte) error {
	e := evt.CommandStatus(b)

	if !e.Valid() {
		logger.Warn("hci", "invalid command status:", fmt.Sprintf("% X", e))
		return nil
	}

	m.setAllowedCommands(int(e.NumHCICommandPackets()))

	m.muSent.Lock()
	p, found := m.sent[int(e.CommandOpcode())]
	m.muSent.Unlock()
	if !found {
		logger.Warn("hci", "command status with no matching send:", fmt.Sprintf("% X", e))
		return nil
	}

	select {
	case <-m.done:
		return fmt.Errorf("hci closed")
	case p.done <- []byte{e.Status()}:
		return nil
	}
}

func (m *Manager) setAllowedCommands(n int) {
	if n > chCmdBufChanSize {
		logger.Warn("hci", "setAllowedCommands: clamping", n, "->", chCmdBufChanSize)
		n = chCmdBufChanSize
	}

	// put with timeout
	for len(m.chCmdBufs) < n {
		select {
		case <-m.done:
			return
		case m.chCmdBufs <- make([]byte, chCmdBufElementSize):
			//ok
		case <-time.After(chCmdBufTimeout):
			m.dispatchError(fmt.Errorf("chCmdBufs put timeout"))
			return
		}
	}
}

func (m *Manager) dispatchError(e error) {
	switch {
	case e == nil:
		//nothing to do
	case m.errorHandler == nil:
		logger.Error("hci", e)
	case !m.isOpen():
		// don't dispatch while closing
		logger.Debug("hci closing:", e)
	default:
		m.errorHandler(e)
	}
}

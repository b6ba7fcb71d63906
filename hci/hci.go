package hci

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/edgebt/bredr"
	"github.com/edgebt/bredr/hci/cmd"
	"github.com/edgebt/bredr/hci/evt"
)

// Command ...
type Command interface {
	OpCode() int
	Len() int
	Marshal([]byte) error
}

// CommandRP ...
type CommandRP interface {
	Unmarshal(b []byte) error
}

type handlerFn func(b []byte) error

type pkt struct {
	cmd  Command
	done chan []byte
}

// NewManager returns an ACL connection manager bound to the transport
// selected through the options.
func NewManager(opts ...bredr.Option) (*Manager, error) {
	m := &Manager{
		chCmdBufs: make(chan []byte, chCmdBufChanSize),
		sent:      make(map[int]*pkt),
		muSent:    sync.Mutex{},

		evth: map[int]handlerFn{},

		muConns: sync.Mutex{},
		conns:   make(map[uint16]*Conn),
		pending: make(map[string]bredr.Addr),

		accepted: []uint8{LinkTypeACL},

		muClose: sync.Mutex{},
		done:    make(chan bool),

		sktRxChan: make(chan []byte, sktRxChanSize),
		chDrain:   make(chan struct{}, 1),
	}
	if err := m.Option(opts...); err != nil {
		return nil, errors.Wrap(err, "can't set options")
	}

	return m, nil
}

// Manager owns the transport and every ACL link riding on it. One
// Manager per controller.
type Manager struct {
	transport transport
	skt       io.ReadWriteCloser

	// Host to Controller command flow control [Vol 2, Part E, 4.4]
	chCmdBufs chan []byte
	muSent    sync.Mutex
	sent      map[int]*pkt

	// evtHub
	evth map[int]handlerFn

	// Controller ACL buffer geometry, read at startup.
	bufSize int
	bufCnt  int

	addr net.HardwareAddr

	// Packet-based host to controller data flow control [Vol 2, Part E, 4.3]
	pool *Pool

	// ACL links, keyed by connection handle, plus attempts that have no
	// handle yet, keyed by remote address.
	muConns sync.Mutex
	conns   map[uint16]*Conn
	pending map[string]bredr.Addr

	accepted []uint8

	muCB   sync.Mutex
	connCB bredr.ConnectionCallbacks

	cache bredr.IdentityCache

	errorHandler func(error)
	err          error

	muClose sync.Mutex
	done    chan bool

	sktRxChan chan []byte
	chDrain   chan struct{}
}

// Start opens the transport, brings up the controller and begins
// processing events.
func (m *Manager) Start() error {
	m.evth[evt.CommandCompleteCode] = m.handleCommandComplete
	m.evth[evt.CommandStatusCode] = m.handleCommandStatus
	m.evth[evt.ConnectionCompleteCode] = m.handleConnectionComplete
	m.evth[evt.ConnectionRequestCode] = m.handleConnectionRequest
	m.evth[evt.DisconnectionCompleteCode] = m.handleDisconnectionComplete
	m.evth[evt.NumberOfCompletedPacketsCode] = m.handleNumberOfCompletedPackets
	m.evth[evt.AuthenticationCompleteCode] = m.handleAuthenticationComplete
	m.evth[evt.EncryptionChangeCode] = m.handleEncryptionChange
	m.evth[evt.ChangeConnectionLinkKeyCompleteCode] = m.handleChangeConnectionLinkKeyComplete
	m.evth[evt.QosSetupCompleteCode] = m.handleQosSetupComplete
	m.evth[evt.FlushOccurredCode] = m.handleFlushOccurred
	m.evth[evt.ModeChangeCode] = m.handleModeChange
	m.evth[evt.ReadClockOffsetCompleteCode] = m.handleReadClockOffsetComplete
	m.evth[evt.ConnectionPacketTypeChangedCode] = m.handleConnectionPacketTypeChanged
	m.evth[evt.FlowSpecificationCompleteCode] = m.handleFlowSpecificationComplete

	if m.skt == nil {
		var err error
		m.skt, err = getTransport(m.transport)
		if err != nil {
			return err
		}
	}

	m.setAllowedCommands(1)

	go m.sktReadLoop()
	go m.sktProcessLoop()
	if err := m.init(); err != nil {
		return err
	}

	// Pre-allocate buffers with head room for the lower layer headers:
	// HCI header (1 byte) + ACL data header (4 bytes) + payload fragment.
	m.pool = NewPool(1+4+m.bufSize, m.bufCnt)

	go m.drainLoop()

	return nil
}

func (m *Manager) cleanup() {
	// close the socket
	m.close(nil)

	// get the list under lock, teardown later since it recycles buffers
	m.muConns.Lock()
	cc := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		cc = append(cc, c)
	}
	m.conns = make(map[uint16]*Conn)
	m.pending = make(map[string]bredr.Addr)
	m.muConns.Unlock()

	// kill all open links w/o disconnect; no callbacks past this point
	logger.Debug("hci", "cleanup: tearing down", len(cc), "links")
	for _, c := range cc {
		c.closed(uint8(ErrLocalHost), false)
	}

	m.muSent.Lock()
	for k := range m.sent {
		delete(m.sent, k)
	}
	m.muSent.Unlock()
}

// Stop shuts the manager down. Open links are torn down without
// invoking their disconnect handlers.
func (m *Manager) Stop() error {
	m.muClose.Lock()
	defer m.muClose.Unlock()

	select {
	case <-m.done:
		// already closed, nothing to do
	default:
		close(m.done)
	}

	return nil
}

// Error ...
func (m *Manager) Error() error {
	return m.err
}

// Option sets the options specified.
func (m *Manager) Option(opts ...bredr.Option) error {
	var err error
	for _, opt := range opts {
		err = opt(m)
	}
	return err
}

func (m *Manager) isOpen() bool {
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

func (m *Manager) init() error {
	logger.Info("hci reset")
	if err := m.Send(&cmd.Reset{}, nil); err != nil {
		return err
	}

	SetEventMaskRP := cmd.SetEventMaskRP{}
	if err := m.Send(&cmd.SetEventMask{EventMask: 0x3dbff807fffbffff}, &SetEventMaskRP); err != nil {
		return err
	}

	ReadBDADDRRP := cmd.ReadBDADDRRP{}
	if err := m.Send(&cmd.ReadBDADDR{}, &ReadBDADDRRP); err != nil {
		return err
	}

	a := ReadBDADDRRP.BDADDR
	m.addr = net.HardwareAddr([]byte{a[5], a[4], a[3], a[2], a[1], a[0]})

	ReadBufferSizeRP := cmd.ReadBufferSizeRP{}
	if err := m.Send(&cmd.ReadBufferSize{}, &ReadBufferSizeRP); err != nil {
		return err
	}

	m.bufCnt = int(ReadBufferSizeRP.HCTotalNumACLDataPackets)
	m.bufSize = int(ReadBufferSizeRP.HCACLDataPacketLength)

	return m.err
}

// Addr returns the controller's own address.
func (m *Manager) Addr() string {
	return m.addr.String()
}

// Identities returns the persisted identity cache, or nil when none was
// configured. Entries stored here feed page scan mode and clock offset
// hints into outgoing connection attempts.
func (m *Manager) Identities() bredr.IdentityCache {
	return m.cache
}

// RegisterCallbacks installs the connection outcome callbacks. Until it
// is called, incoming connection requests are rejected.
func (m *Manager) RegisterCallbacks(cb bredr.ConnectionCallbacks) {
	m.muCB.Lock()
	m.connCB = cb
	m.muCB.Unlock()
}

func (m *Manager) callbacks() bredr.ConnectionCallbacks {
	m.muCB.Lock()
	defer m.muCB.Unlock()
	return m.connCB
}

// Connect starts an outgoing connection attempt to a. It returns once
// the attempt is recorded; the outcome arrives through the registered
// ConnectionCallbacks. A Connect to an address that is already pending
// or already connected is a no-op.
func (m *Manager) Connect(a bredr.Addr) error {
	if !m.isOpen() {
		return errors.New("hci closed")
	}

	key := a.String()
	m.muConns.Lock()
	if _, ok := m.pending[key]; ok {
		m.muConns.Unlock()
		return nil
	}
	for _, c := range m.conns {
		if c.addr.String() == key {
			m.muConns.Unlock()
			return nil
		}
	}
	m.pending[key] = a
	m.muConns.Unlock()

	cc := &cmd.CreateConnection{
		BDADDR:          wireAddr(a),
		PacketType:      defaultPacketType,
		AllowRoleSwitch: 1,
	}
	if m.cache != nil {
		if id, err := m.cache.Load(a); err == nil {
			cc.PageScanRepetitionMode = id.PageScan
			if id.ClockOff != 0 {
				// top bit marks the offset as valid
				cc.ClockOffset = id.ClockOff | 0x8000
			}
		}
	}

	go func() {
		if err := m.Send(cc, nil); err != nil {
			m.muConns.Lock()
			delete(m.pending, key)
			m.muConns.Unlock()

			code := uint8(ErrUnspecified)
			if ec, ok := err.(ErrCommand); ok {
				code = uint8(ec)
			}
			if cb := m.callbacks(); cb != nil {
				cb.OnConnectFail(a, code)
			} else {
				m.dispatchError(errors.Wrap(err, "create connection"))
			}
		}
	}()

	return nil
}

// CancelConnect aborts a pending connection attempt. The attempt still
// resolves through OnConnectFail when the controller confirms the
// cancellation.
func (m *Manager) CancelConnect(a bredr.Addr) error {
	if !m.isOpen() {
		return errors.New("hci closed")
	}

	m.muConns.Lock()
	_, ok := m.pending[a.String()]
	m.muConns.Unlock()
	if !ok {
		return errors.Errorf("no pending connection to %v", a)
	}

	go func() {
		rp := cmd.CreateConnectionCancelRP{}
		if err := m.Send(&cmd.CreateConnectionCancel{BDADDR: wireAddr(a)}, &rp); err != nil {
			m.dispatchError(errors.Wrap(err, "create connection cancel"))
		}
	}()

	return nil
}

// Link returns the open link with the given connection handle.
func (m *Manager) Link(handle uint16) (bredr.Link, bool) {
	m.muConns.Lock()
	defer m.muConns.Unlock()
	c, ok := m.conns[handle]
	if !ok {
		return nil, false
	}
	return c, true
}

// LinkByAddr returns the open link to the given remote address.
func (m *Manager) LinkByAddr(a bredr.Addr) (bredr.Link, bool) {
	key := a.String()
	m.muConns.Lock()
	defer m.muConns.Unlock()
	for _, c := range m.conns {
		if c.addr.String() == key {
			return c, true
		}
	}
	return nil, false
}

// Links returns every open link.
func (m *Manager) Links() []bredr.Link {
	m.muConns.Lock()
	defer m.muConns.Unlock()
	ll := make([]bredr.Link, 0, len(m.conns))
	for _, c := range m.conns {
		ll = append(ll, c)
	}
	return ll
}

func (m *Manager) acceptsLinkType(lt uint8) bool {
	for _, t := range m.accepted {
		if t == lt {
			return true
		}
	}
	return false
}

func (m *Manager) connByHandle(handle uint16) (*Conn, bool) {
	m.muConns.Lock()
	defer m.muConns.Unlock()
	c, ok := m.conns[handle]
	return c, ok
}

func (m *Manager) handleConnectionComplete(b []byte) error {
	e := evt.ConnectionComplete(b)
	a := hostAddr(e.BDADDR())
	key := a.String()

	m.muConns.Lock()
	pa, wasPending := m.pending[key]
	if wasPending {
		delete(m.pending, key)
		a = pa
	}
	m.muConns.Unlock()

	cb := m.callbacks()

	if e.Status() != 0x00 {
		logger.Debug("hci", "connection to", key, "failed:", ErrCommand(e.Status()))
		if wasPending && cb != nil {
			cb.OnConnectFail(a, e.Status())
		}
		return nil
	}

	// m.pool is nil until the bring-up sequence has read the controller
	// buffer geometry; a link completing before that cannot be owned.
	if m.pool == nil || !m.acceptsLinkType(e.LinkType()) || cb == nil {
		// Nobody can own this link; close it right away.
		logger.Warn("hci", "dropping connection", key, "link type", e.LinkType())
		go func() {
			if err := m.Send(&cmd.Disconnect{
				ConnectionHandle: e.ConnectionHandle(),
				Reason:           uint8(ErrUnsupportedRemote),
			}, nil); err != nil {
				m.dispatchError(errors.Wrap(err, "disconnect unwanted link"))
			}
		}()
		return nil
	}

	c := newConn(m, a, e.ConnectionHandle(), e.LinkType())
	m.muConns.Lock()
	m.conns[e.ConnectionHandle()] = c
	m.muConns.Unlock()
	logger.Debug("hci", "connection complete", fmt.Sprintf("%04X", e.ConnectionHandle()), "addr", key)

	if m.cache != nil {
		// remember the device; keep any richer entry already stored
		_ = m.cache.Store(a, bredr.Identity{Address: key, Public: true}, false)
	}

	cb.OnConnectSuccess(c)
	return nil
}

func (m *Manager) handleConnectionRequest(b []byte) error {
	e := evt.ConnectionRequest(b)
	a := hostAddr(e.BDADDR())

	if m.callbacks() == nil || !m.acceptsLinkType(e.LinkType()) {
		logger.Warn("hci", "rejecting connection request from", a.String(), "link type", e.LinkType())
		go func() {
			if err := m.Send(&cmd.RejectConnectionRequest{
				BDADDR: e.BDADDR(),
				Reason: uint8(ErrLimitedResources),
			}, nil); err != nil {
				m.dispatchError(errors.Wrap(err, "reject connection request"))
			}
		}()
		return nil
	}

	go func() {
		if err := m.Send(&cmd.AcceptConnectionRequest{
			BDADDR: e.BDADDR(),
			Role:   roleSlave,
		}, nil); err != nil {
			m.dispatchError(errors.Wrap(err, "accept connection request"))
		}
	}()

	return nil
}

func (m *Manager) handleDisconnectionComplete(b []byte) error {
	e := evt.DisconnectionComplete(b)
	ch := e.ConnectionHandle()

	m.muConns.Lock()
	c, found := m.conns[ch]
	if found {
		delete(m.conns, ch)
	}
	m.muConns.Unlock()

	if !found {
		logger.Warn("hci", "disconnection complete for unknown handle", fmt.Sprintf("%04X", ch))
		return nil
	}

	logger.Debug("hci", "disconnection complete", fmt.Sprintf("%04X", ch), "reason", ErrCommand(e.Reason()))
	c.closed(e.Reason(), true)
	m.signalDrain()
	return nil
}

func (m *Manager) handleNumberOfCompletedPackets(b []byte) error {
	e := evt.NumberOfCompletedPackets(b)

	m.muConns.Lock()
	for i := 0; i < int(e.NumberOfHandles()); i++ {
		c, found := m.conns[e.ConnectionHandle(i)]
		if !found {
			continue
		}

		// Put the delivered buffers back to the pool.
		for j := 0; j < int(e.HCNumOfCompletedPackets(i)); j++ {
			c.txBuffer.Put()
		}
	}
	m.muConns.Unlock()

	m.signalDrain()
	return nil
}

func (m *Manager) handleAuthenticationComplete(b []byte) error {
	e := evt.AuthenticationComplete(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok {
		return nil
	}
	if e.Status() != 0x00 {
		m.dispatchError(errors.Wrap(ErrCommand(e.Status()), "authentication"))
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnAuthenticationComplete()
	}
	return nil
}

func (m *Manager) handleEncryptionChange(b []byte) error {
	e := evt.EncryptionChange(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok {
		return nil
	}
	if e.Status() != 0x00 {
		m.dispatchError(errors.Wrap(ErrCommand(e.Status()), "encryption change"))
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnEncryptionChange(e.EncryptionEnabled())
	}
	return nil
}

func (m *Manager) handleChangeConnectionLinkKeyComplete(b []byte) error {
	e := evt.ChangeConnectionLinkKeyComplete(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok || e.Status() != 0x00 {
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnChangeConnectionLinkKeyComplete()
	}
	return nil
}

func (m *Manager) handleQosSetupComplete(b []byte) error {
	e := evt.QosSetupComplete(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok || e.Status() != 0x00 {
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnQosSetupComplete(e.ServiceType(), e.TokenRate(), e.PeakBandwidth(), e.Latency(), e.DelayVariation())
	}
	return nil
}

func (m *Manager) handleFlushOccurred(b []byte) error {
	e := evt.FlushOccurred(b)
	c, ok := m.connByHandle(e.Handle())
	if !ok {
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnFlushOccurred()
	}
	return nil
}

func (m *Manager) handleModeChange(b []byte) error {
	e := evt.ModeChange(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok || e.Status() != 0x00 {
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnModeChange(e.CurrentMode(), e.Interval())
	}
	return nil
}

func (m *Manager) handleReadClockOffsetComplete(b []byte) error {
	e := evt.ReadClockOffsetComplete(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok || e.Status() != 0x00 {
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnReadClockOffsetComplete(e.ClockOffset())
	}
	return nil
}

func (m *Manager) handleConnectionPacketTypeChanged(b []byte) error {
	e := evt.ConnectionPacketTypeChanged(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok || e.Status() != 0x00 {
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnConnectionPacketTypeChanged(e.PacketType())
	}
	return nil
}

func (m *Manager) handleFlowSpecificationComplete(b []byte) error {
	e := evt.FlowSpecificationComplete(b)
	c, ok := m.connByHandle(e.ConnectionHandle())
	if !ok || e.Status() != 0x00 {
		return nil
	}
	if cb := c.mgmtCallbacks(); cb != nil {
		cb.OnFlowSpecificationComplete(e.FlowDirection(), e.ServiceType(),
			e.TokenRate(), e.TokenBucketSize(), e.PeakBandwidth(), e.AccessLatency())
	}
	return nil
}

// wireAddr converts an address to the little-endian order commands carry.
func wireAddr(a bredr.Addr) [6]byte {
	b := a.Bytes()
	var w [6]byte
	for i := 0; i < 6 && i < len(b); i++ {
		w[i] = b[5-i]
	}
	return w
}

func hostAddr(w [6]byte) bredr.Addr {
	return bredr.NewAddr(net.HardwareAddr([]byte{w[5], w[4], w[3], w[2], w[1], w[0]}).String())
}

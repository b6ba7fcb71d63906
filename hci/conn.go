package hci

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/edgebt/bredr"
	"github.com/edgebt/bredr/hci/cmd"
)

// Link states. A link is created open; the connecting phase lives in the
// manager's pending table, before a handle exists.
const (
	connOpen int32 = iota
	connDisconnecting
	connClosed
)

// Conn is one ACL link. It implements bredr.Link.
type Conn struct {
	mgr    *Manager
	addr   bredr.Addr
	handle uint16
	ltype  uint8

	state int32

	muCB         sync.Mutex
	mgmt         bredr.ManagementCallbacks
	onDisconnect bredr.DisconnectHandler

	chInPkt chan []byte

	// Outbound fragments wait here for controller buffer credits.
	// txHead holds the fragment that found no credit on the last drain.
	muTx   sync.Mutex
	txq    chan []byte
	txHead []byte

	// tracks the controller buffers occupied by this link
	txBuffer BufferPool

	chDone     chan struct{}
	closeOnce  sync.Once
	finishOnce sync.Once
}

func newConn(m *Manager, a bredr.Addr, handle uint16, ltype uint8) *Conn {
	return &Conn{
		mgr:      m,
		addr:     a,
		handle:   handle,
		ltype:    ltype,
		chInPkt:  make(chan []byte, inQueueSize),
		txq:      make(chan []byte, outQueueSize),
		txBuffer: NewClient(m.pool),
		chDone:   make(chan struct{}),
	}
}

func (c *Conn) Address() bredr.Addr { return c.addr }

func (c *Conn) Handle() uint16 { return c.handle }

// LinkType returns the link type reported by the connection complete
// event.
func (c *Conn) LinkType() uint8 { return c.ltype }

func (c *Conn) isOpen() bool {
	return atomic.LoadInt32(&c.state) == connOpen
}

func (c *Conn) requireOpen() error {
	if !c.isOpen() {
		return errors.Errorf("link %04X not open", c.handle)
	}
	return nil
}

// Write fragments p to the controller's ACL buffer length and queues the
// fragments for transmission. It never blocks on controller credits; it
// fails when the outbound queue cannot take the whole payload.
func (c *Conn) Write(p []byte) (int, error) {
	if err := c.requireOpen(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}

	frag := c.mgr.bufSize
	nfrags := (len(p) + frag - 1) / frag
	if len(c.txq)+nfrags > cap(c.txq) {
		return 0, errors.Errorf("link %04X outbound queue full", c.handle)
	}

	flags := uint16(pbfFirstAutoFlushable)
	for sent := 0; sent < len(p); {
		n := len(p) - sent
		if n > frag {
			n = frag
		}
		c.txq <- buildPacket(c.handle, flags, p[sent:sent+n])
		sent += n
		flags = pbfContinuing
	}

	c.mgr.signalDrain()
	return len(p), nil
}

// TryDequeue returns the next inbound packet payload, or nil when none
// is waiting.
func (c *Conn) TryDequeue() []byte {
	select {
	case p := <-c.chInPkt:
		return p
	default:
		return nil
	}
}

// Inbound exposes the inbound queue for select-based consumers. The
// channel is closed by Finish.
func (c *Conn) Inbound() <-chan []byte {
	return c.chInPkt
}

func (c *Conn) RegisterCallbacks(cb bredr.ManagementCallbacks) {
	c.muCB.Lock()
	c.mgmt = cb
	c.muCB.Unlock()
}

func (c *Conn) RegisterDisconnect(h bredr.DisconnectHandler) {
	c.muCB.Lock()
	c.onDisconnect = h
	c.muCB.Unlock()
}

func (c *Conn) mgmtCallbacks() bredr.ManagementCallbacks {
	c.muCB.Lock()
	defer c.muCB.Unlock()
	return c.mgmt
}

func (c *Conn) disconnectHandler() bredr.DisconnectHandler {
	c.muCB.Lock()
	defer c.muCB.Unlock()
	return c.onDisconnect
}

// Disconnect requests link termination with the given reason code. The
// link stays up until the disconnection complete event arrives.
func (c *Conn) Disconnect(reason uint8) error {
	if !atomic.CompareAndSwapInt32(&c.state, connOpen, connDisconnecting) {
		return errors.Errorf("link %04X not open", c.handle)
	}
	go func() {
		if err := c.mgr.Send(&cmd.Disconnect{
			ConnectionHandle: c.handle,
			Reason:           reason,
		}, nil); err != nil {
			c.mgr.dispatchError(errors.Wrapf(err, "disconnect %04X", c.handle))
		}
	}()
	return nil
}

// Disconnected is closed once the link reaches its terminal state.
func (c *Conn) Disconnected() <-chan struct{} {
	return c.chDone
}

// closed moves the link to its terminal state: queued transmissions are
// dropped, the link's controller buffers are recycled and, when notify
// is set, the registered disconnect handler runs with the reason code.
func (c *Conn) closed(reason uint8, notify bool) {
	c.closeOnce.Do(func() {
		// Everything under muTx so an in-flight txOne can't take a
		// buffer after the recycle below.
		c.muTx.Lock()
		atomic.StoreInt32(&c.state, connClosed)

		// drop anything still queued
		c.txHead = nil
		for {
			select {
			case <-c.txq:
				continue
			default:
			}
			break
		}

		// The controller reclaims the link's buffers on disconnection
		// without reporting completions for them [Vol 2, Part E, 4.3].
		c.txBuffer.PutAll()
		c.muTx.Unlock()

		if notify {
			if h := c.disconnectHandler(); h != nil {
				h(reason)
			}
		}
		close(c.chDone)
	})
}

// Finish releases the link once the application is done with it. Only
// valid after the link reached its terminal state.
func (c *Conn) Finish() {
	if atomic.LoadInt32(&c.state) != connClosed {
		logger.Warn("hci", "Finish on live link", c.handle)
		return
	}
	c.finishOnce.Do(func() {
		close(c.chInPkt)
	})
}

// issue sends a command whose completion arrives later as a dedicated
// event; only the command status is consumed here.
func (c *Conn) issue(cc Command) error {
	if err := c.requireOpen(); err != nil {
		return err
	}
	go func() {
		if err := c.mgr.Send(cc, nil); err != nil {
			c.mgr.dispatchError(errors.Wrapf(err, "link %04X", c.handle))
		}
	}()
	return nil
}

// issueRP sends a command answered by command complete and forwards the
// decoded return parameters through deliver.
func (c *Conn) issueRP(cc Command, r CommandRP, deliver func(bredr.ManagementCallbacks)) error {
	if err := c.requireOpen(); err != nil {
		return err
	}
	go func() {
		if err := c.mgr.Send(cc, r); err != nil {
			c.mgr.dispatchError(errors.Wrapf(err, "link %04X", c.handle))
			return
		}
		if cb := c.mgmtCallbacks(); cb != nil && c.isOpen() {
			deliver(cb)
		}
	}()
	return nil
}

func (c *Conn) ChangeConnectionPacketType(packetType uint16) error {
	return c.issue(&cmd.ChangeConnectionPacketType{ConnectionHandle: c.handle, PacketType: packetType})
}

func (c *Conn) AuthenticationRequested() error {
	return c.issue(&cmd.AuthenticationRequested{ConnectionHandle: c.handle})
}

func (c *Conn) SetConnectionEncryption(enable uint8) error {
	return c.issue(&cmd.SetConnectionEncryption{ConnectionHandle: c.handle, EncryptionEnable: enable})
}

func (c *Conn) ChangeConnectionLinkKey() error {
	return c.issue(&cmd.ChangeConnectionLinkKey{ConnectionHandle: c.handle})
}

func (c *Conn) ReadClockOffset() error {
	return c.issue(&cmd.ReadClockOffset{ConnectionHandle: c.handle})
}

func (c *Conn) HoldMode(maxInterval, minInterval uint16) error {
	return c.issue(&cmd.HoldMode{
		ConnectionHandle:    c.handle,
		HoldModeMaxInterval: maxInterval,
		HoldModeMinInterval: minInterval,
	})
}

func (c *Conn) SniffMode(maxInterval, minInterval, attempt, timeout uint16) error {
	return c.issue(&cmd.SniffMode{
		ConnectionHandle: c.handle,
		SniffMaxInterval: maxInterval,
		SniffMinInterval: minInterval,
		SniffAttempt:     attempt,
		SniffTimeout:     timeout,
	})
}

func (c *Conn) ExitSniffMode() error {
	return c.issue(&cmd.ExitSniffMode{ConnectionHandle: c.handle})
}

func (c *Conn) SniffSubrating(maxLatency, minRemoteTimeout, minLocalTimeout uint16) error {
	rp := &cmd.SniffSubratingRP{}
	return c.issueRP(&cmd.SniffSubrating{
		ConnectionHandle:     c.handle,
		MaximumLatency:       maxLatency,
		MinimumRemoteTimeout: minRemoteTimeout,
		MinimumLocalTimeout:  minLocalTimeout,
	}, rp, func(bredr.ManagementCallbacks) {})
}

func (c *Conn) QosSetup(serviceType uint8, tokenRate, peakBandwidth, latency, delayVariation uint32) error {
	return c.issue(&cmd.QosSetup{
		ConnectionHandle: c.handle,
		ServiceType:      serviceType,
		TokenRate:        tokenRate,
		PeakBandwidth:    peakBandwidth,
		Latency:          latency,
		DelayVariation:   delayVariation,
	})
}

func (c *Conn) FlowSpecification(direction, serviceType uint8, tokenRate, tokenBucketSize, peakBandwidth, accessLatency uint32) error {
	return c.issue(&cmd.FlowSpecification{
		ConnectionHandle: c.handle,
		FlowDirection:    direction,
		ServiceType:      serviceType,
		TokenRate:        tokenRate,
		TokenBucketSize:  tokenBucketSize,
		PeakBandwidth:    peakBandwidth,
		AccessLatency:    accessLatency,
	})
}

func (c *Conn) Flush() error {
	rp := &cmd.FlushRP{}
	return c.issueRP(&cmd.Flush{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnFlushOccurred()
	})
}

func (c *Conn) ReadAutomaticFlushTimeout() error {
	rp := &cmd.ReadAutomaticFlushTimeoutRP{}
	return c.issueRP(&cmd.ReadAutomaticFlushTimeout{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadAutomaticFlushTimeoutComplete(rp.FlushTimeout)
	})
}

func (c *Conn) WriteAutomaticFlushTimeout(flushTimeout uint16) error {
	rp := &cmd.WriteAutomaticFlushTimeoutRP{}
	return c.issueRP(&cmd.WriteAutomaticFlushTimeout{
		ConnectionHandle: c.handle,
		FlushTimeout:     flushTimeout,
	}, rp, func(bredr.ManagementCallbacks) {})
}

func (c *Conn) RoleDiscovery() error {
	rp := &cmd.RoleDiscoveryRP{}
	return c.issueRP(&cmd.RoleDiscovery{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnRoleDiscoveryComplete(rp.CurrentRole)
	})
}

func (c *Conn) ReadLinkPolicySettings() error {
	rp := &cmd.ReadLinkPolicySettingsRP{}
	return c.issueRP(&cmd.ReadLinkPolicySettings{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadLinkPolicySettingsComplete(rp.LinkPolicySettings)
	})
}

func (c *Conn) WriteLinkPolicySettings(settings uint16) error {
	rp := &cmd.WriteLinkPolicySettingsRP{}
	return c.issueRP(&cmd.WriteLinkPolicySettings{
		ConnectionHandle:   c.handle,
		LinkPolicySettings: settings,
	}, rp, func(bredr.ManagementCallbacks) {})
}

func (c *Conn) ReadTransmitPowerLevel(which uint8) error {
	rp := &cmd.ReadTransmitPowerLevelRP{}
	return c.issueRP(&cmd.ReadTransmitPowerLevel{
		ConnectionHandle: c.handle,
		Type:             which,
	}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadTransmitPowerLevelComplete(rp.TransmitPowerLevel)
	})
}

func (c *Conn) ReadLinkSupervisionTimeout() error {
	rp := &cmd.ReadLinkSupervisionTimeoutRP{}
	return c.issueRP(&cmd.ReadLinkSupervisionTimeout{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadLinkSupervisionTimeoutComplete(rp.LinkSupervisionTimeout)
	})
}

func (c *Conn) WriteLinkSupervisionTimeout(timeout uint16) error {
	rp := &cmd.WriteLinkSupervisionTimeoutRP{}
	return c.issueRP(&cmd.WriteLinkSupervisionTimeout{
		ConnectionHandle:       c.handle,
		LinkSupervisionTimeout: timeout,
	}, rp, func(bredr.ManagementCallbacks) {})
}

func (c *Conn) ReadFailedContactCounter() error {
	rp := &cmd.ReadFailedContactCounterRP{}
	return c.issueRP(&cmd.ReadFailedContactCounter{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadFailedContactCounterComplete(rp.FailedContactCounter)
	})
}

func (c *Conn) ResetFailedContactCounter() error {
	rp := &cmd.ResetFailedContactCounterRP{}
	return c.issueRP(&cmd.ResetFailedContactCounter{ConnectionHandle: c.handle}, rp, func(bredr.ManagementCallbacks) {})
}

func (c *Conn) ReadLinkQuality() error {
	rp := &cmd.ReadLinkQualityRP{}
	return c.issueRP(&cmd.ReadLinkQuality{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadLinkQualityComplete(rp.LinkQuality)
	})
}

func (c *Conn) ReadRssi() error {
	rp := &cmd.ReadRSSIRP{}
	return c.issueRP(&cmd.ReadRSSI{ConnectionHandle: c.handle}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadRssiComplete(rp.RSSI)
	})
}

func (c *Conn) ReadClock(which uint8) error {
	rp := &cmd.ReadClockRP{}
	return c.issueRP(&cmd.ReadClock{
		ConnectionHandle: c.handle,
		WhichClock:       which,
	}, rp, func(cb bredr.ManagementCallbacks) {
		cb.OnReadClockComplete(rp.Clock, rp.Accuracy)
	})
}

package hci

import (
	"encoding/binary"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgebt/bredr"
)

// Opcodes the tests look for on the wire.
const (
	opCreateConn       = 0x0405
	opDisconnect       = 0x0406
	opCreateConnCancel = 0x0408
	opAcceptConn       = 0x0409
	opRejectConn       = 0x040A
	opSniffMode        = 0x0803
	opExitSniffMode    = 0x0804
	opReadRSSI         = 0x1405
	opReset            = 0x0C03
	opSetEventMask     = 0x0C01
	opReadBDADDR       = 0x1009
	opReadBufferSize   = 0x1005
)

const (
	testHandle  = uint16(0x123)
	testBufSize = 27
	testBufCnt  = 2
)

var (
	remoteDisplay = "a1:a2:a3:a4:a5:a6"
	remoteWire    = [6]byte{0xA6, 0xA5, 0xA4, 0xA3, 0xA2, 0xA1}
)

type sentCmd struct {
	op     uint16
	params []byte
}

// fakeCtrl scripts a controller behind the manager's socket. Canned
// replies keyed by opcode are delivered on command write; everything the
// host sends is recorded for assertions.
type fakeCtrl struct {
	mu      sync.Mutex
	replies map[uint16][][]byte

	rx     chan []byte
	cmds   chan sentCmd
	acls   chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeCtrl() *fakeCtrl {
	f := &fakeCtrl{
		replies: map[uint16][][]byte{},
		rx:      make(chan []byte, 64),
		cmds:    make(chan sentCmd, 64),
		acls:    make(chan []byte, 64),
		closed:  make(chan struct{}),
	}

	// bring-up sequence
	f.reply(opReset, ccPkt(opReset, 0x00))
	f.reply(opSetEventMask, ccPkt(opSetEventMask, 0x00))
	f.reply(opReadBDADDR, ccPkt(opReadBDADDR, 0x00, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11))
	f.reply(opReadBufferSize, ccPkt(opReadBufferSize,
		0x00, testBufSize, 0x00, 0x40, testBufCnt, 0x00, 0x00, 0x00))

	return f
}

func (f *fakeCtrl) reply(op uint16, pkts ...[]byte) {
	f.mu.Lock()
	f.replies[op] = pkts
	f.mu.Unlock()
}

func (f *fakeCtrl) deliver(pkt []byte) {
	f.rx <- pkt
}

func (f *fakeCtrl) Read(p []byte) (int, error) {
	select {
	case <-f.closed:
		return 0, io.EOF
	case b := <-f.rx:
		return copy(p, b), nil
	case <-time.After(10 * time.Millisecond):
		return 0, nil
	}
}

func (f *fakeCtrl) Write(p []byte) (int, error) {
	b := make([]byte, len(p))
	copy(b, p)

	switch b[0] {
	case 0x01:
		op := binary.LittleEndian.Uint16(b[1:3])
		f.cmds <- sentCmd{op: op, params: b[4:]}
		f.mu.Lock()
		pkts := f.replies[op]
		f.mu.Unlock()
		for _, pkt := range pkts {
			f.deliver(pkt)
		}
	case 0x02:
		f.acls <- b
	}
	return len(p), nil
}

func (f *fakeCtrl) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeCtrl) nextCmd(t *testing.T, op uint16) sentCmd {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-f.cmds:
			if c.op == op {
				return c
			}
		case <-deadline:
			t.Fatalf("no command 0x%04X observed", op)
		}
	}
}

func (f *fakeCtrl) expectNoCmd(t *testing.T, op uint16, d time.Duration) {
	t.Helper()
	deadline := time.After(d)
	for {
		select {
		case c := <-f.cmds:
			if c.op == op {
				t.Fatalf("unexpected command 0x%04X observed", op)
			}
		case <-deadline:
			return
		}
	}
}

func (f *fakeCtrl) nextACL(t *testing.T) []byte {
	t.Helper()
	select {
	case b := <-f.acls:
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("no acl packet observed")
		return nil
	}
}

func (f *fakeCtrl) expectNoACL(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case b := <-f.acls:
		t.Fatalf("unexpected acl packet: % X", b)
	case <-time.After(d):
	}
}

func evtPkt(code byte, params ...byte) []byte {
	return append([]byte{0x04, code, byte(len(params))}, params...)
}

func ccPkt(op uint16, ret ...byte) []byte {
	params := append([]byte{0x01, byte(op), byte(op >> 8)}, ret...)
	return evtPkt(0x0E, params...)
}

func csPkt(status byte, op uint16) []byte {
	return evtPkt(0x0F, status, 0x01, byte(op), byte(op>>8))
}

func connCompletePkt(status byte, handle uint16, wire [6]byte, linkType byte) []byte {
	p := []byte{status, byte(handle), byte(handle >> 8)}
	p = append(p, wire[:]...)
	p = append(p, linkType, 0x00)
	return evtPkt(0x03, p...)
}

func connRequestPkt(wire [6]byte, linkType byte) []byte {
	p := append([]byte{}, wire[:]...)
	p = append(p, 0x00, 0x00, 0x00, linkType)
	return evtPkt(0x04, p...)
}

func disconnCompletePkt(handle uint16, reason byte) []byte {
	return evtPkt(0x05, 0x00, byte(handle), byte(handle>>8), reason)
}

func nocpPkt(handle uint16, completed uint16) []byte {
	return evtPkt(0x13, 0x01,
		byte(handle), byte(handle>>8),
		byte(completed), byte(completed>>8))
}

type failEvent struct {
	addr   bredr.Addr
	reason uint8
}

type connRecorder struct {
	chLink chan bredr.Link
	chFail chan failEvent
}

func newConnRecorder() *connRecorder {
	return &connRecorder{
		chLink: make(chan bredr.Link, 4),
		chFail: make(chan failEvent, 4),
	}
}

func (r *connRecorder) OnConnectSuccess(l bredr.Link) {
	r.chLink <- l
}

func (r *connRecorder) OnConnectFail(a bredr.Addr, reason uint8) {
	r.chFail <- failEvent{addr: a, reason: reason}
}

func (r *connRecorder) link(t *testing.T) bredr.Link {
	t.Helper()
	select {
	case l := <-r.chLink:
		return l
	case <-time.After(2 * time.Second):
		t.Fatal("no OnConnectSuccess")
		return nil
	}
}

func (r *connRecorder) fail(t *testing.T) failEvent {
	t.Helper()
	select {
	case f := <-r.chFail:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no OnConnectFail")
		return failEvent{}
	}
}

type mgmtEvent struct {
	name string
	args []interface{}
}

type mgmtRecorder struct {
	ch chan mgmtEvent
}

func newMgmtRecorder() *mgmtRecorder {
	return &mgmtRecorder{ch: make(chan mgmtEvent, 8)}
}

func (r *mgmtRecorder) record(name string, args ...interface{}) {
	r.ch <- mgmtEvent{name: name, args: args}
}

func (r *mgmtRecorder) next(t *testing.T, name string) mgmtEvent {
	t.Helper()
	select {
	case e := <-r.ch:
		if e.name != name {
			t.Fatalf("got callback %s, want %s", e.name, name)
		}
		return e
	case <-time.After(2 * time.Second):
		t.Fatalf("no %s callback", name)
		return mgmtEvent{}
	}
}

func (r *mgmtRecorder) OnConnectionPacketTypeChanged(packetType uint16) {
	r.record("ConnectionPacketTypeChanged", packetType)
}
func (r *mgmtRecorder) OnAuthenticationComplete() { r.record("AuthenticationComplete") }
func (r *mgmtRecorder) OnEncryptionChange(enabled uint8) {
	r.record("EncryptionChange", enabled)
}
func (r *mgmtRecorder) OnChangeConnectionLinkKeyComplete() {
	r.record("ChangeConnectionLinkKeyComplete")
}
func (r *mgmtRecorder) OnReadClockOffsetComplete(clockOffset uint16) {
	r.record("ReadClockOffsetComplete", clockOffset)
}
func (r *mgmtRecorder) OnModeChange(mode uint8, interval uint16) {
	r.record("ModeChange", mode, interval)
}
func (r *mgmtRecorder) OnQosSetupComplete(serviceType uint8, tokenRate, peakBandwidth, latency, delayVariation uint32) {
	r.record("QosSetupComplete", serviceType, tokenRate, peakBandwidth, latency, delayVariation)
}
func (r *mgmtRecorder) OnFlowSpecificationComplete(direction, serviceType uint8, tokenRate, tokenBucketSize, peakBandwidth, accessLatency uint32) {
	r.record("FlowSpecificationComplete", direction, serviceType, tokenRate, tokenBucketSize, peakBandwidth, accessLatency)
}
func (r *mgmtRecorder) OnFlushOccurred() { r.record("FlushOccurred") }
func (r *mgmtRecorder) OnRoleDiscoveryComplete(role uint8) {
	r.record("RoleDiscoveryComplete", role)
}
func (r *mgmtRecorder) OnReadLinkPolicySettingsComplete(settings uint16) {
	r.record("ReadLinkPolicySettingsComplete", settings)
}
func (r *mgmtRecorder) OnReadAutomaticFlushTimeoutComplete(flushTimeout uint16) {
	r.record("ReadAutomaticFlushTimeoutComplete", flushTimeout)
}
func (r *mgmtRecorder) OnReadTransmitPowerLevelComplete(level int8) {
	r.record("ReadTransmitPowerLevelComplete", level)
}
func (r *mgmtRecorder) OnReadLinkSupervisionTimeoutComplete(timeout uint16) {
	r.record("ReadLinkSupervisionTimeoutComplete", timeout)
}
func (r *mgmtRecorder) OnReadFailedContactCounterComplete(counter uint16) {
	r.record("ReadFailedContactCounterComplete", counter)
}
func (r *mgmtRecorder) OnReadLinkQualityComplete(quality uint8) {
	r.record("ReadLinkQualityComplete", quality)
}
func (r *mgmtRecorder) OnReadRssiComplete(rssi int8) { r.record("ReadRssiComplete", rssi) }
func (r *mgmtRecorder) OnReadClockComplete(clock uint32, accuracy uint16) {
	r.record("ReadClockComplete", clock, accuracy)
}

func newTestManager(t *testing.T, opts ...bredr.Option) (*Manager, *fakeCtrl) {
	t.Helper()

	f := newFakeCtrl()
	m, err := NewManager(opts...)
	require.NoError(t, err)
	m.skt = f
	require.NoError(t, m.Start())
	t.Cleanup(func() { _ = m.Stop() })

	return m, f
}

// openTestLink drives a connect through to an open link.
func openTestLink(t *testing.T, m *Manager, f *fakeCtrl, r *connRecorder) bredr.Link {
	t.Helper()

	f.reply(opCreateConn, csPkt(0x00, opCreateConn))
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.nextCmd(t, opCreateConn)
	f.deliver(connCompletePkt(0x00, testHandle, remoteWire, LinkTypeACL))
	return r.link(t)
}

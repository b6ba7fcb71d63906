package hci

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgebt/bredr"
)

func TestConnectSuccess(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))

	require.Equal(t, "11:22:33:44:55:66", m.Addr())

	f.reply(opCreateConn, csPkt(0x00, opCreateConn))
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))

	c := f.nextCmd(t, opCreateConn)
	require.True(t, bytes.Equal(c.params[0:6], remoteWire[:]), "create connection carries the wire address")

	f.deliver(connCompletePkt(0x00, testHandle, remoteWire, LinkTypeACL))

	l := r.link(t)
	assert.Equal(t, testHandle, l.Handle())
	assert.Equal(t, remoteDisplay, l.Address().String())

	got, ok := m.Link(testHandle)
	require.True(t, ok)
	assert.Equal(t, l, got)

	byAddr, ok := m.LinkByAddr(bredr.NewAddr(remoteDisplay))
	require.True(t, ok)
	assert.Equal(t, l, byAddr)
}

func TestConnectFail(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))

	f.reply(opCreateConn, csPkt(0x00, opCreateConn))
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.nextCmd(t, opCreateConn)

	// page timeout
	f.deliver(connCompletePkt(0x04, 0x0000, remoteWire, LinkTypeACL))

	fe := r.fail(t)
	assert.Equal(t, remoteDisplay, fe.addr.String())
	assert.Equal(t, uint8(0x04), fe.reason)

	select {
	case <-r.chLink:
		t.Fatal("OnConnectSuccess after failed attempt")
	case <-time.After(100 * time.Millisecond):
	}

	// the address is immediately eligible for a new attempt
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.nextCmd(t, opCreateConn)
}

func TestConnectPendingIsIdempotent(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))

	f.reply(opCreateConn, csPkt(0x00, opCreateConn))
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.nextCmd(t, opCreateConn)

	// second attempt to the same address must not hit the wire
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.expectNoCmd(t, opCreateConn, 200*time.Millisecond)

	f.deliver(connCompletePkt(0x00, testHandle, remoteWire, LinkTypeACL))
	r.link(t)

	// connected address is a no-op too
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.expectNoCmd(t, opCreateConn, 200*time.Millisecond)
}

func TestCancelConnect(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))

	f.reply(opCreateConn, csPkt(0x00, opCreateConn))
	f.reply(opCreateConnCancel, ccPkt(opCreateConnCancel,
		0x00, 0xA6, 0xA5, 0xA4, 0xA3, 0xA2, 0xA1))
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.nextCmd(t, opCreateConn)

	require.NoError(t, m.CancelConnect(bredr.NewAddr(remoteDisplay)))
	c := f.nextCmd(t, opCreateConnCancel)
	assert.True(t, bytes.Equal(c.params[0:6], remoteWire[:]))

	// controller confirms with a failed connection complete
	f.deliver(connCompletePkt(0x02, 0x0000, remoteWire, LinkTypeACL))
	fe := r.fail(t)
	assert.Equal(t, uint8(0x02), fe.reason)
}

func TestRejectRequestBeforeCallbacks(t *testing.T) {
	_, f := newTestManager(t)

	f.reply(opRejectConn, csPkt(0x00, opRejectConn))
	f.deliver(connRequestPkt(remoteWire, LinkTypeACL))

	c := f.nextCmd(t, opRejectConn)
	assert.True(t, bytes.Equal(c.params[0:6], remoteWire[:]))
	assert.Equal(t, uint8(ErrLimitedResources), c.params[6])
}

func TestRejectRequestWrongLinkType(t *testing.T) {
	r := newConnRecorder()
	_, f := newTestManager(t, bredr.OptConnectionCallbacks(r))

	f.reply(opRejectConn, csPkt(0x00, opRejectConn))
	f.deliver(connRequestPkt(remoteWire, LinkTypeSCO))

	f.nextCmd(t, opRejectConn)
}

func TestAcceptIncomingConnection(t *testing.T) {
	r := newConnRecorder()
	_, f := newTestManager(t, bredr.OptConnectionCallbacks(r))

	f.reply(opAcceptConn, csPkt(0x00, opAcceptConn))
	f.deliver(connRequestPkt(remoteWire, LinkTypeACL))

	c := f.nextCmd(t, opAcceptConn)
	assert.True(t, bytes.Equal(c.params[0:6], remoteWire[:]))
	assert.Equal(t, uint8(roleSlave), c.params[6])

	f.deliver(connCompletePkt(0x00, testHandle, remoteWire, LinkTypeACL))
	l := r.link(t)
	assert.Equal(t, remoteDisplay, l.Address().String())
}

func TestDisconnectLifecycle(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	l := openTestLink(t, m, f, r)

	chReason := make(chan uint8, 1)
	l.RegisterDisconnect(func(reason uint8) { chReason <- reason })

	f.reply(opDisconnect, csPkt(0x00, opDisconnect))
	require.NoError(t, l.Disconnect(uint8(ErrRemoteUser)))

	c := f.nextCmd(t, opDisconnect)
	assert.Equal(t, byte(testHandle&0xff), c.params[0])
	assert.Equal(t, byte(testHandle>>8), c.params[1])
	assert.Equal(t, uint8(ErrRemoteUser), c.params[2])

	// a second disconnect on a dying link fails locally
	assert.Error(t, l.Disconnect(uint8(ErrRemoteUser)))

	f.deliver(disconnCompletePkt(testHandle, uint8(ErrLocalHost)))

	select {
	case reason := <-chReason:
		assert.Equal(t, uint8(ErrLocalHost), reason)
	case <-time.After(2 * time.Second):
		t.Fatal("no disconnect handler call")
	}

	select {
	case <-l.Disconnected():
	case <-time.After(2 * time.Second):
		t.Fatal("Disconnected not closed")
	}

	_, ok := m.Link(testHandle)
	assert.False(t, ok, "handle still registered after disconnection")

	// the link object stays valid until the application lets go
	assert.Equal(t, testHandle, l.Handle())
	l.Finish()

	// the address can be dialed again
	require.NoError(t, m.Connect(bredr.NewAddr(remoteDisplay)))
	f.nextCmd(t, opCreateConn)
}

func TestCreditsPauseTransmission(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	l := openTestLink(t, m, f, r)

	// three fragments, two controller buffers
	payload := bytes.Repeat([]byte{0x5A}, 3*testBufSize)
	n, err := l.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	first := f.nextACL(t)
	second := f.nextACL(t)
	f.expectNoACL(t, 200*time.Millisecond)
	assert.Equal(t, testBufCnt, m.pool.Outstanding())

	// handle and boundary flags
	assert.Equal(t, byte(0x23), first[1])
	assert.Equal(t, byte(0x21), first[2], "first fragment is a start fragment")
	assert.Equal(t, byte(0x11), second[2], "second fragment is continuing")
	assert.Equal(t, testBufSize, int(first[3])|int(first[4])<<8)

	// one completion frees one buffer and releases the third fragment
	f.deliver(nocpPkt(testHandle, 1))
	third := f.nextACL(t)
	assert.Equal(t, byte(0x11), third[2])

	f.deliver(nocpPkt(testHandle, 2))
	require.Eventually(t, func() bool { return m.pool.Outstanding() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestDisconnectRecyclesCredits(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	l := openTestLink(t, m, f, r)

	_, err := l.Write(bytes.Repeat([]byte{0x01}, 2*testBufSize))
	require.NoError(t, err)
	f.nextACL(t)
	f.nextACL(t)
	require.Equal(t, testBufCnt, m.pool.Outstanding())

	// the controller never reports completions for a dead link
	f.deliver(disconnCompletePkt(testHandle, uint8(ErrConnTimeout)))

	select {
	case <-l.Disconnected():
	case <-time.After(2 * time.Second):
		t.Fatal("Disconnected not closed")
	}
	assert.Equal(t, 0, m.pool.Outstanding(), "buffers not recycled on teardown")

	_, err = l.Write([]byte{0x01})
	assert.Error(t, err, "write on closed link")
}

func TestInboundData(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	l := openTestLink(t, m, f, r)

	// data for an unknown handle is dropped, not fatal
	f.deliver([]byte{0x02, 0x99, 0x20, 0x01, 0x00, 0xEE})

	f.deliver([]byte{0x02, 0x23, 0x21, 0x03, 0x00, 0xAA, 0xBB, 0xCC})

	select {
	case p := <-l.Inbound():
		assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no inbound packet")
	}

	assert.Nil(t, l.TryDequeue(), "queue should be empty")

	// the event loop survived the unknown handle
	require.NoError(t, m.Connect(bredr.NewAddr("b1:b2:b3:b4:b5:b6")))
	f.nextCmd(t, opCreateConn)
}

func TestSniffModeRoundTrip(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	mr := newMgmtRecorder()
	l := openTestLink(t, m, f, r)
	l.RegisterCallbacks(mr)

	f.reply(opSniffMode, csPkt(0x00, opSniffMode))
	require.NoError(t, l.SniffMode(0x0500, 0x0020, 4, 1))

	c := f.nextCmd(t, opSniffMode)
	want := []byte{
		byte(testHandle & 0xff), byte(testHandle >> 8),
		0x00, 0x05,
		0x20, 0x00,
		0x04, 0x00,
		0x01, 0x00,
	}
	assert.Equal(t, want, c.params)

	// mode change: sniff, interval 0x0028
	f.deliver(evtPkt(0x14, 0x00, byte(testHandle&0xff), byte(testHandle>>8), 0x02, 0x28, 0x00))

	e := mr.next(t, "ModeChange")
	assert.Equal(t, uint8(0x02), e.args[0])
	assert.Equal(t, uint16(0x0028), e.args[1])
}

func TestReadRssiRoundTrip(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	mr := newMgmtRecorder()
	l := openTestLink(t, m, f, r)
	l.RegisterCallbacks(mr)

	// rssi -60 dBm
	f.reply(opReadRSSI, ccPkt(opReadRSSI, 0x00, byte(testHandle&0xff), byte(testHandle>>8), 0xC4))
	require.NoError(t, l.ReadRssi())

	e := mr.next(t, "ReadRssiComplete")
	assert.Equal(t, int8(-60), e.args[0])
}

func TestManagementOnClosedLink(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	l := openTestLink(t, m, f, r)

	f.deliver(disconnCompletePkt(testHandle, uint8(ErrConnTimeout)))
	<-l.Disconnected()

	assert.Error(t, l.ReadRssi())
	assert.Error(t, l.SniffMode(0x0500, 0x0020, 4, 1))
	assert.Error(t, l.AuthenticationRequested())
}

func TestMalformedEventsAreDropped(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))

	// declared parameter length disagrees with the bytes present
	f.deliver([]byte{0x04, 0x14, 0x05, 0x00, 0x01})
	// consistent length, but too short for a disconnection complete
	f.deliver(evtPkt(0x05, 0x00))
	// command status without its opcode
	f.deliver(evtPkt(0x0F, 0x00))
	// bare packet type, no event header at all
	f.deliver([]byte{0x04})
	// acl data packet cut off inside its header
	f.deliver([]byte{0x02, 0x23})

	// the manager stays serviceable through all of it
	l := openTestLink(t, m, f, r)
	assert.Equal(t, testHandle, l.Handle())

	select {
	case <-l.Disconnected():
		t.Fatal("link torn down by malformed event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConnectionCompleteBeforeBringUp(t *testing.T) {
	r := newConnRecorder()
	f := newFakeCtrl()
	f.reply(opDisconnect, csPkt(0x00, opDisconnect))

	// a connection complete queued ahead of the bring-up exchange finds
	// no buffer geometry to own it
	f.deliver(connCompletePkt(0x00, testHandle, remoteWire, LinkTypeACL))

	m, err := NewManager(bredr.OptConnectionCallbacks(r))
	require.NoError(t, err)
	m.skt = f
	require.NoError(t, m.Start())
	t.Cleanup(func() { _ = m.Stop() })

	c := f.nextCmd(t, opDisconnect)
	assert.Equal(t, byte(testHandle&0xff), c.params[0])
	assert.Equal(t, byte(testHandle>>8), c.params[1])

	select {
	case <-r.chLink:
		t.Fatal("OnConnectSuccess before bring-up finished")
	case <-time.After(100 * time.Millisecond):
	}

	// once up, the manager connects normally
	l := openTestLink(t, m, f, r)
	assert.Equal(t, testHandle, l.Handle())
}

func TestStopTearsDownWithoutCallbacks(t *testing.T) {
	r := newConnRecorder()
	m, f := newTestManager(t, bredr.OptConnectionCallbacks(r))
	l := openTestLink(t, m, f, r)

	chReason := make(chan uint8, 1)
	l.RegisterDisconnect(func(reason uint8) { chReason <- reason })

	require.NoError(t, m.Stop())

	select {
	case <-l.Disconnected():
	case <-time.After(2 * time.Second):
		t.Fatal("link not torn down on Stop")
	}

	select {
	case <-chReason:
		t.Fatal("disconnect handler invoked during Stop")
	case <-time.After(100 * time.Millisecond):
	}

	assert.Error(t, m.Connect(bredr.NewAddr(remoteDisplay)))
}

package h4

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

const rxQueueSize = 64

type h4 struct {
	sp  io.ReadWriteCloser
	rmu sync.Mutex
	wmu sync.Mutex

	frame   *frame
	rxQueue chan []byte

	done chan int
	cmu  sync.Mutex
}

// DefaultSerialOptions returns the serial settings commonly used by H4
// controllers. Callers set PortName and override as needed.
func DefaultSerialOptions() serial.OpenOptions {
	return serial.OpenOptions{
		BaudRate:   115200,
		DataBits:   8,
		StopBits:   1,
		ParityMode: serial.PARITY_NONE,
	}
}

// NewSerial opens an H4 UART transport.
func NewSerial(opts serial.OpenOptions) (io.ReadWriteCloser, error) {
	// force these; framing depends on short reads
	opts.MinimumReadSize = 0
	opts.InterCharacterTimeout = 100

	sp, err := serial.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "can't open serial port")
	}

	// drain whatever the controller buffered before we attached
	sp.Write([]byte{1, 3, 12, 0}) // dummy reset
	<-time.After(time.Millisecond * 250)
	b := make([]byte, 2048)
	if _, err := sp.Read(b); err != nil {
		sp.Close()
		return nil, errors.Wrap(err, "can't flush serial port")
	}

	return newH4(sp), nil
}

// NewSocket connects to an H4 server socket, as exposed by emulators and
// remote controller proxies.
func NewSocket(addr string, timeout time.Duration) (io.ReadWriteCloser, error) {
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "can't dial h4 socket")
	}
	return newH4(&connWithTimeout{c: c, timeout: timeout}), nil
}

func newH4(sp io.ReadWriteCloser) *h4 {
	h := &h4{
		sp:      sp,
		done:    make(chan int),
		rxQueue: make(chan []byte, rxQueueSize),
	}
	h.frame = newFrame(h.rxQueue)

	go h.rxLoop()

	return h
}

func (h *h4) Read(p []byte) (int, error) {
	if !h.isOpen() {
		return 0, io.EOF
	}

	h.rmu.Lock()
	defer h.rmu.Unlock()

	var t []byte
	select {
	case t = <-h.rxQueue:
		//ok
	case <-time.After(time.Second):
		// read timeout, let the caller poll again
		return 0, nil
	}

	if len(p) < len(t) {
		return 0, errors.New("buffer too small")
	}
	n := copy(p, t)

	// check if we are still open since the read could take a while
	if !h.isOpen() {
		return 0, io.EOF
	}
	return n, nil
}

func (h *h4) Write(p []byte) (int, error) {
	if !h.isOpen() {
		return 0, io.EOF
	}

	h.wmu.Lock()
	defer h.wmu.Unlock()
	n, err := h.sp.Write(p)

	return n, errors.Wrap(err, "can't write h4")
}

func (h *h4) Close() error {
	h.cmu.Lock()
	defer h.cmu.Unlock()

	select {
	case <-h.done:
		return nil

	default:
		close(h.done)
		h.rmu.Lock()
		err := h.sp.Close()
		h.rmu.Unlock()

		return errors.Wrap(err, "can't close h4")
	}
}

func (h *h4) isOpen() bool {
	select {
	case <-h.done:
		return false
	default:
		return h.sp != nil
	}
}

func (h *h4) rxLoop() {
	tmp := make([]byte, 512)
	for {
		select {
		case <-h.done:
			return
		default:
			if h.sp == nil {
				return
			}
		}

		n, err := h.sp.Read(tmp)
		if err != nil || n == 0 {
			continue
		}

		h.frame.Assemble(tmp[:n])
	}
}

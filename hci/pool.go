package hci

import (
	"bytes"
	"sync"
)

// BufferPool is the per-link view of the shared outbound ACL buffer pool.
// Every buffer held by a client stands for one packet the controller has
// accepted but not yet reported completed; pool exhaustion is how
// transmission pauses until credits return.
type BufferPool interface {
	// TryGet returns a free buffer, or nil when the controller owns
	// every buffer.
	TryGet() *bytes.Buffer

	// Put returns the client's oldest outstanding buffer to the pool.
	Put()

	// PutAll returns every buffer the client holds. Called when the
	// owning link is torn down, since the controller frees the link's
	// buffers without reporting completions for them.
	PutAll()

	// Occupied reports how many buffers the client currently holds.
	Occupied() int
}

// Pool holds bufCnt pre-allocated buffers sized to one full ACL data
// packet (type byte, 4-byte header, bufSize payload). The buffer count
// mirrors the controller's Total_Num_ACL_Data_Packets so that a buffer is
// available exactly when the controller can take another packet.
type Pool struct {
	mu   sync.Mutex
	free []*bytes.Buffer
	cnt  int
}

func NewPool(bufSize, bufCnt int) *Pool {
	p := &Pool{cnt: bufCnt}
	for i := 0; i < bufCnt; i++ {
		b := bytes.NewBuffer(make([]byte, 0, bufSize))
		p.free = append(p.free, b)
	}
	return p
}

// Capacity returns the total number of buffers the pool was created with.
func (p *Pool) Capacity() int { return p.cnt }

// Outstanding returns the number of buffers currently held by clients.
func (p *Pool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cnt - len(p.free)
}

func (p *Pool) tryGet() *bytes.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		return nil
	}
	b := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	b.Reset()
	return b
}

func (p *Pool) put(b *bytes.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, b)
}

// Client tracks the buffers one link has in flight, in issue order, so
// that completions can be matched oldest-first.
type Client struct {
	mu   sync.Mutex
	pool *Pool
	used []*bytes.Buffer
}

func NewClient(p *Pool) *Client {
	return &Client{pool: p}
}

func (c *Client) TryGet() *bytes.Buffer {
	b := c.pool.tryGet()
	if b == nil {
		return nil
	}
	c.mu.Lock()
	c.used = append(c.used, b)
	c.mu.Unlock()
	return b
}

func (c *Client) Put() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.used) == 0 {
		return
	}
	b := c.used[0]
	c.used = c.used[1:]
	c.pool.put(b)
}

func (c *Client) PutAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.used {
		c.pool.put(b)
	}
	c.used = nil
}

func (c *Client) Occupied() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.used)
}

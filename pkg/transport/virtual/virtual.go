// Package virtual provides an in-memory Pipe implementation used by tests
// and local development in place of real USB or SPI-slave hardware.
package virtual

import (
	"errors"
	"sync"

	"github.com/keembay/fastboot/pkg/transport"
)

func init() {
	transport.Register("virtual", New)
}

// Pipe is a buffered, in-process byte pipe. Host-to-device bytes are queued
// block-at-a-time by tests via Feed, the same way one USB bulk transfer (or
// one SPIS negotiation) arrives as a single block to Available/ReadBlock;
// device-to-host bytes accumulate in Sent as they are written. FlushCount
// lets a test assert that Flush was actually invoked, which matters on USB
// where flush is what pushes queued bytes onto the wire; on the virtual
// pipe itself writes are visible immediately.
type Pipe struct {
	mu     sync.Mutex
	blocks [][]byte

	// Sent accumulates every byte written so far.
	Sent []byte
	// FlushCount counts calls to Flush.
	FlushCount int
	// PrepCount counts calls to PrepResponse.
	PrepCount int

	prepResponseErr error
}

// New constructs a virtual Pipe. The channel argument is accepted for
// symmetry with the transport.NewFunc signature and ignored.
func New(channel string) (transport.Pipe, error) {
	return &Pipe{}, nil
}

// Feed queues b as the next inbound block, simulating one host transfer.
func (p *Pipe) Feed(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blocks = append(p.blocks, append([]byte(nil), b...))
}

// FailNextPrepResponse makes the next PrepResponse call return err.
func (p *Pipe) FailNextPrepResponse(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prepResponseErr = err
}

// Available returns the size of the next queued block, 0 if none is
// queued, mirroring how a real transport reports one transfer at a time.
func (p *Pipe) Available() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.blocks) == 0 {
		return 0
	}
	return uint32(len(p.blocks[0]))
}

func (p *Pipe) ReadBlock(dst []byte, n uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.blocks) == 0 || uint32(len(p.blocks[0])) < n {
		return errors.New("virtual: short read")
	}
	copy(dst, p.blocks[0][:n])
	if uint32(len(p.blocks[0])) == n {
		p.blocks = p.blocks[1:]
	} else {
		p.blocks[0] = p.blocks[0][n:]
	}
	return nil
}

// ReadBulk drains queued blocks in order until n bytes have been copied or
// the queue runs dry, flattening block boundaries the way a DMA-style bulk
// read would.
func (p *Pipe) ReadBulk(dst []byte, n uint32) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var total uint32
	for total < n && len(p.blocks) > 0 {
		b := p.blocks[0]
		need := n - total
		if uint32(len(b)) <= need {
			copy(dst[total:], b)
			total += uint32(len(b))
			p.blocks = p.blocks[1:]
		} else {
			copy(dst[total:total+need], b[:need])
			p.blocks[0] = b[need:]
			total += need
		}
	}
	return total, nil
}

func (p *Pipe) WriteByte(b byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, b)
	return nil
}

func (p *Pipe) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.FlushCount++
	return nil
}

func (p *Pipe) PrepResponse() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.PrepCount++
	if p.prepResponseErr != nil {
		err := p.prepResponseErr
		p.prepResponseErr = nil
		return err
	}
	return nil
}

// Package spis implements the Fastboot transport.Pipe over a synchronous
// SPI-slave framing layer. SPI-slave DMA primitives are out of scope for
// this module — this package wraps the hooks a real SPI-slave driver would
// expose: a single-shot bulk read (the host clocks the whole payload in one
// go), a byte write, and an explicit "arm for response" step the transport
// needs before the device can push a response frame back.
package spis

import (
	"fmt"

	"github.com/keembay/fastboot/pkg/transport"
)

// Hooks is the set of functions a real SPI-slave driver supplies.
type Hooks struct {
	// Available returns bytes already clocked in and waiting to be read.
	Available func() uint32
	// Read copies exactly n bytes already available into dst.
	Read func(dst []byte, n uint32) error
	// ReadBulk performs a single-shot DMA-style read of n bytes into dst,
	// returning the number of bytes actually transferred.
	ReadBulk func(dst []byte, n uint32) (uint32, error)
	// Write enqueues one outbound byte.
	Write func(b byte) error
	// PrepResponse arms the SPI-slave peripheral to clock out a response
	// frame.
	PrepResponse func() error
}

// Pipe adapts Hooks to transport.Pipe.
type Pipe struct {
	hooks Hooks
}

// New constructs a SPI-slave transport.Pipe from the given hooks.
func New(hooks Hooks) (transport.Pipe, error) {
	if hooks.Available == nil || hooks.Read == nil || hooks.ReadBulk == nil ||
		hooks.Write == nil || hooks.PrepResponse == nil {
		return nil, fmt.Errorf("spis: Available, Read, ReadBulk, Write and PrepResponse hooks are required")
	}
	return &Pipe{hooks: hooks}, nil
}

// RegisterHooks makes a concrete SPI-slave driver selectable by name
// through the transport registry under "spis", the counterpart of
// usb.RegisterHooks for the synchronous transport.
func RegisterHooks(hooks Hooks) {
	transport.Register(string(transport.SPIS), func(string) (transport.Pipe, error) {
		return New(hooks)
	})
}

func (p *Pipe) Available() uint32 {
	return p.hooks.Available()
}

func (p *Pipe) ReadBlock(dst []byte, n uint32) error {
	return p.hooks.Read(dst, n)
}

func (p *Pipe) ReadBulk(dst []byte, n uint32) (uint32, error) {
	return p.hooks.ReadBulk(dst, n)
}

func (p *Pipe) WriteByte(b byte) error {
	return p.hooks.Write(b)
}

// Flush is a USB-only concept; the SPI-slave framer pads and arms each
// frame explicitly instead.
func (p *Pipe) Flush() error {
	return nil
}

func (p *Pipe) PrepResponse() error {
	return p.hooks.PrepResponse()
}

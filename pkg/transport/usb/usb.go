// Package usb implements the Fastboot transport.Pipe over a USB bulk
// endpoint. The USB device stack, descriptor tables, and enumeration are
// out of scope for this module — this package only wraps the small set of
// hooks a real bulk-endpoint driver would expose: queue depth, a blocking
// block read, a byte write, and a flush that pushes queued bytes out on
// the IN endpoint.
package usb

import (
	"fmt"

	"github.com/keembay/fastboot/pkg/transport"
)

// Hooks is the set of functions a real USB bulk endpoint driver supplies.
// Available, Read and Write are required: New rejects Hooks with any of
// them nil. Flush is optional and defaults to a no-op (some embedders flush
// implicitly on every write).
type Hooks struct {
	// Available returns bytes queued on the OUT endpoint but not yet read.
	Available func() uint32
	// Read copies exactly n bytes from the OUT endpoint into dst.
	Read func(dst []byte, n uint32) error
	// Write enqueues one byte on the IN endpoint.
	Write func(b byte) error
	// Flush pushes queued IN-endpoint bytes onto the wire. Optional.
	Flush func() error
}

// Pipe adapts Hooks to transport.Pipe.
type Pipe struct {
	hooks Hooks
}

// New constructs a USB bulk transport.Pipe from the given hooks.
func New(hooks Hooks) (transport.Pipe, error) {
	if hooks.Available == nil || hooks.Read == nil || hooks.Write == nil {
		return nil, fmt.Errorf("usb: Available, Read and Write hooks are required")
	}
	return &Pipe{hooks: hooks}, nil
}

// RegisterHooks makes a concrete USB bulk endpoint driver selectable by
// name through the transport registry under "usb". Unlike the virtual
// pipe, USB hooks are board-specific function values rather than a plain
// channel string, so registration happens explicitly from board bring-up
// code instead of an init() in this package.
func RegisterHooks(hooks Hooks) {
	transport.Register(string(transport.USB), func(string) (transport.Pipe, error) {
		return New(hooks)
	})
}

func (p *Pipe) Available() uint32 {
	return p.hooks.Available()
}

func (p *Pipe) ReadBlock(dst []byte, n uint32) error {
	return p.hooks.Read(dst, n)
}

// ReadBulk is not meaningful for USB: the device learns the transfer size
// from Available() and reads data-phase blocks as they arrive.
func (p *Pipe) ReadBulk(dst []byte, n uint32) (uint32, error) {
	return 0, transport.ErrNotSupported
}

func (p *Pipe) WriteByte(b byte) error {
	return p.hooks.Write(b)
}

func (p *Pipe) Flush() error {
	if p.hooks.Flush == nil {
		return nil
	}
	return p.hooks.Flush()
}

// PrepResponse is a SPIS-only concept; USB has nothing to arm ahead of a
// response.
func (p *Pipe) PrepResponse() error {
	return nil
}

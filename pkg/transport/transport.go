// Package transport defines the abstract byte pipe the Fastboot session
// speaks over. It never touches USB descriptor machinery, SPI DMA engines,
// or any other hardware directly — those are external collaborators; a
// transport implementation only has to satisfy the capability set below.
package transport

import (
	"errors"
	"fmt"
)

// ErrNotSupported is returned by a capability a transport cannot provide
// (ReadBulk on a USB pipe). Capabilities that have nothing to do on a given
// transport (Flush on a SPI-slave pipe, PrepResponse on a USB pipe) return
// nil instead.
var ErrNotSupported = errors.New("transport: capability not supported")

// Kind names a transport the session can be configured for.
type Kind string

const (
	USB  Kind = "usb"
	SPIS Kind = "spis"
)

// Pipe is the capability set a transport implementation provides. Not every
// method is meaningful for every transport: Flush is USB-only, ReadBulk and
// PrepResponse are SPIS-only. On the other transport such a method either
// does nothing and returns nil or returns ErrNotSupported; the session only
// calls each of them on the transport it belongs to.
type Pipe interface {
	// Available returns the number of bytes queued by the host but not yet
	// consumed. It must return promptly with 0 when nothing is ready; it
	// never blocks indefinitely.
	Available() uint32

	// ReadBlock copies exactly n bytes from the receive queue into dst.
	ReadBlock(dst []byte, n uint32) error

	// ReadBulk performs a single-shot read of n bytes directly into dst
	// (SPIS only) and returns the number of bytes actually read.
	ReadBulk(dst []byte, n uint32) (uint32, error)

	// WriteByte enqueues one outbound byte.
	WriteByte(b byte) error

	// Flush pushes queued outbound bytes out on the wire (USB only).
	Flush() error

	// PrepResponse arms the transport for a response frame (SPIS only).
	PrepResponse() error
}

// NewFunc constructs a Pipe for a named transport kind, given a
// transport-specific channel/endpoint identifier.
type NewFunc func(channel string) (Pipe, error)

var registry = make(map[string]NewFunc)

// Register makes a transport implementation available under name. It is
// meant to be called from the init() function of the implementing package,
// mirroring how bus backends register themselves by name.
func Register(name string, fn NewFunc) {
	registry[name] = fn
}

// New constructs a registered transport by name.
func New(name string, channel string) (Pipe, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("transport: unsupported interface %q", name)
	}
	return fn(channel)
}

// Package fastboot implements the device side of the Fastboot wire
// protocol: a transport-agnostic state machine that answers variable
// queries, stages firmware downloads, and dispatches flash/erase/boot/
// reboot requests over a USB bulk pipe or a SPI-slave framing layer.
package fastboot

import (
	"log/slog"

	"github.com/keembay/fastboot/pkg/transport"
)

// BootStage names the boot chain stage the core is running under. BL1 is
// the ROM stage; later stages progressively relax security restrictions.
type BootStage string

const (
	BL1    BootStage = "bl1"
	BL2    BootStage = "bl2"
	BL31   BootStage = "bl31"
	BL32   BootStage = "bl32"
	BL33   BootStage = "bl33"
	MA2X8X BootStage = "ma2x8x"
)

type sessionPhase int

const (
	phaseExpectCommand sessionPhase = iota
	phaseExpectData
)

// Configuration is the read-only input to New: the transport, the stage
// buffer, the device identity, and the capabilities the dispatcher calls
// into. It is consumed once at construction and never mutated afterwards.
type Configuration struct {
	// Transport is the transport kind the Pipe below was constructed for;
	// it governs response padding/flush and download-completion semantics.
	Transport transport.Kind
	// Pipe is the byte pipe the session speaks over.
	Pipe transport.Pipe

	// Product is the string reported by getvar:product.
	Product string
	// SerialNumber is the raw device serial; nil/empty means "unsupported".
	SerialNumber []byte

	// StageBuffer is the RAM region downloads are written into. Its
	// length is the effective hard cap enforced on download negotiation.
	StageBuffer []byte
	// MaxDownloadSize is the advertised ceiling surfaced by
	// getvar:max-download-size.
	MaxDownloadSize uint32

	BootStage BootStage
	// Debug permits upload outside BL1.
	Debug bool
	Secure   bool
	Recovery bool

	// Watchdog and PartitionWriter default to no-op implementations when
	// left nil.
	Watchdog        Watchdog
	PartitionWriter PartitionWriter

	Logger *slog.Logger
}

// Session is one Fastboot protocol instance, good for exactly one call to
// Run. It is not safe for concurrent use: a single goroutine owns it for
// its entire lifetime.
type Session struct {
	cfg    Configuration
	logger *slog.Logger

	phase             sessionPhase
	downloadTotal     uint32
	downloadReceived  uint32
	stageValid        bool
	downloadSizeASCII [8]byte
	downloadSizeLen   int
	continueFlag      bool
	wdtTickled        bool
}

// New validates cfg and constructs a Session. It returns ErrMissingCapability
// or ErrUnknownTransport without touching the transport if cfg is
// incomplete — configuration errors never reach the wire.
func New(cfg Configuration) (*Session, error) {
	if cfg.Transport != transport.USB && cfg.Transport != transport.SPIS {
		return nil, ErrUnknownTransport
	}
	if cfg.Pipe == nil || cfg.StageBuffer == nil {
		return nil, ErrMissingCapability
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "fastboot")

	if cfg.Watchdog == nil {
		cfg.Watchdog = &NoopWatchdog{}
	}
	if cfg.PartitionWriter == nil {
		cfg.PartitionWriter = StubPartitionWriter{}
	}

	return &Session{
		cfg:    cfg,
		logger: logger,
		phase:  phaseExpectCommand,
	}, nil
}

// StageValid reports whether a download has completed since construction.
func (s *Session) StageValid() bool { return s.stageValid }

// ContinueLatched reports whether the session has latched continue_flag.
func (s *Session) ContinueLatched() bool { return s.continueFlag }

package fastboot

import "time"

// Watchdog is the capability the dispatcher drives: a one-shot tickle after
// the first completed command, and a zero-timeout Reset to force an
// immediate reboot. It is deliberately not a general periodic-refresh
// facility — see the design notes on watchdog semantics.
type Watchdog interface {
	// Tickle refreshes the hardware countdown with the given timeout.
	Tickle(timeout time.Duration) error
	// Reset forces an immediate reset (a zero-timeout tickle, in hardware
	// terms).
	Reset() error
}

// defaultWatchdogTimeout is halved on the first tickle, matching the
// original "refresh with half the default timeout" rule.
const defaultWatchdogTimeout = 2 * time.Second

// HookWatchdog adapts a pair of hook functions standing in for the real
// boot ROM watchdog register, the same way the USB and SPIS transports
// adapt hardware hooks to their capability interfaces.
type HookWatchdog struct {
	// TickleFunc refreshes the hardware countdown register.
	TickleFunc func(timeout time.Duration) error
	// ResetFunc forces an immediate reset. If nil, Reset calls TickleFunc
	// with a zero timeout.
	ResetFunc func() error
}

func (h HookWatchdog) Tickle(timeout time.Duration) error {
	if h.TickleFunc == nil {
		return nil
	}
	return h.TickleFunc(timeout)
}

func (h HookWatchdog) Reset() error {
	if h.ResetFunc != nil {
		return h.ResetFunc()
	}
	if h.TickleFunc == nil {
		return nil
	}
	return h.TickleFunc(0)
}

// NoopWatchdog satisfies Watchdog without touching any hardware; it is the
// default when a Configuration omits one, and is useful in tests.
type NoopWatchdog struct {
	Tickles []time.Duration
	Resets  int
}

func (n *NoopWatchdog) Tickle(timeout time.Duration) error {
	n.Tickles = append(n.Tickles, timeout)
	return nil
}

func (n *NoopWatchdog) Reset() error {
	n.Resets++
	return nil
}

package terminal

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Signal is the last asynchronous notification not yet handled.
type Signal int32

const (
	SignalNone Signal = iota
	SignalInterrupt
	SignalResize
)

func (s Signal) String() string {
	switch s {
	case SignalInterrupt:
		return "interrupt"
	case SignalResize:
		return "resize"
	default:
		return "none"
	}
}

// interruptSignals end the session; resizeSignals trigger a redraw.
var (
	interruptSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGQUIT, unix.SIGHUP}
	resizeSignals    = []os.Signal{unix.SIGWINCH}
)

// SignalBridge records interrupt and resize signals in a single word that
// the event loop reads and clears between reads. Repeated signals of the
// same kind collapse into one; a pending interrupt is never replaced by a
// resize.
//
// The loop sees a signal at most one iteration late. Wake shortens that
// by cutting the blocking read short.
type SignalBridge struct {
	state atomic.Int32

	mu   sync.Mutex
	ch   chan os.Signal
	done chan struct{}
	wake func()
}

// NewSignalBridge returns a bridge that is not yet listening.
func NewSignalBridge() *SignalBridge {
	return &SignalBridge{}
}

// Start registers for interrupt and resize signals. wake, if non-nil, is
// called after each signal is recorded.
func (b *SignalBridge) Start(wake func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ch != nil {
		return
	}
	b.wake = wake
	b.ch = make(chan os.Signal, 4)
	b.done = make(chan struct{})
	signal.Notify(b.ch, append(append([]os.Signal{}, interruptSignals...), resizeSignals...)...)

	go b.forward(b.ch, b.done)
}

func (b *SignalBridge) forward(ch <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case sig := <-ch:
			if sig == unix.SIGWINCH {
				b.Raise(SignalResize)
			} else {
				b.Raise(SignalInterrupt)
			}
		}
	}
}

// Raise records s as if the corresponding signal had arrived.
func (b *SignalBridge) Raise(s Signal) {
	switch s {
	case SignalInterrupt:
		b.state.Store(int32(SignalInterrupt))
	case SignalResize:
		b.state.CompareAndSwap(int32(SignalNone), int32(SignalResize))
	default:
		return
	}
	b.mu.Lock()
	wake := b.wake
	b.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Take returns the pending signal and clears it.
func (b *SignalBridge) Take() Signal {
	return Signal(b.state.Swap(int32(SignalNone)))
}

// Stop unregisters the handlers. Default signal behaviour is restored.
func (b *SignalBridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ch == nil {
		return
	}
	signal.Stop(b.ch)
	close(b.done)
	b.ch = nil
	b.wake = nil
}

package permissions

import (
	"sync/atomic"
	"time"

	"github.com/yunseo/TapNote/internal/logger"
)

// DefaultPrimeDelay is how long the primer lets the rest of startup settle
// before it may put a consent dialog on screen.
const DefaultPrimeDelay = 500 * time.Millisecond

// Primer performs the run-once, non-blocking microphone permission priming
// at process start. It is the only shared mutable state in this package:
// the started flag flips exactly once for the lifetime of the process.
type Primer struct {
	mgr     *Manager
	delay   time.Duration
	started atomic.Bool
	done    chan struct{}
}

// NewPrimer returns a primer over the given manager. The delay is applied
// before the background ensure runs.
func NewPrimer(m *Manager, delay time.Duration) *Primer {
	return &Primer{
		mgr:   m,
		delay: delay,
		done:  make(chan struct{}),
	}
}

// InitOnce schedules the background prime on the first call and is a no-op
// on every later call, including concurrent ones. It never blocks: startup
// must not stall on a user-driven OS dialog.
func (p *Primer) InitOnce() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.prime()
}

// Done is closed once the background prime has finished. Tests use it to
// observe completion instead of sleeping.
func (p *Primer) Done() <-chan struct{} { return p.done }

func (p *Primer) prime() {
	defer close(p.done)
	time.Sleep(p.delay)

	// Result is advisory only; failures here must never surface.
	if p.mgr.Ensure(Microphone) {
		logger.Info("microphone permission granted at startup")
	} else {
		logger.Warn("microphone permission not granted at startup")
	}
}

// Package feedback holds the transient direction/magnitude signal shown
// after a gesture. Each activation carries a generation token; a timer only
// clears the signal if its token still matches the latest activation.
package feedback

import (
	"sync"
	"time"

	"github.com/rpggio/swipecount/internal/gesture"
)

// DefaultDuration is how long a hint stays visible.
const DefaultDuration = 300 * time.Millisecond

// Token identifies one activation of the signal.
type Token uint64

// Hint is the advisory display state.
type Hint struct {
	Direction gesture.Direction
	Magnitude int
	// Committed is false for hints shown while a drag is still in progress.
	Committed bool
}

// Timer is a cancellable scheduled task.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules on the runtime timer.
var SystemScheduler Scheduler = systemScheduler{}

// Signal is safe for concurrent use; timers fire on their own goroutine.
type Signal struct {
	mu       sync.Mutex
	duration time.Duration
	sched    Scheduler
	onExpire func(Token)

	gen     Token
	hint    Hint
	visible bool
	timer   Timer
}

// Option configures a Signal.
type Option func(*Signal)

// WithScheduler replaces the runtime timer, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(sig *Signal) { sig.sched = s }
}

// WithExpireHook registers a callback invoked after a timer clears the
// signal. It is not called for stale timers.
func WithExpireHook(fn func(Token)) Option {
	return func(sig *Signal) { sig.onExpire = fn }
}

// NewSignal creates a Signal that clears itself after duration.
func NewSignal(duration time.Duration, opts ...Option) *Signal {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s := &Signal{duration: duration, sched: SystemScheduler}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show activates the signal, cancels the previous timer and schedules the
// auto-clear for the new generation.
func (s *Signal) Show(h Hint) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	tok := s.gen
	s.hint = h
	s.visible = true

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.sched.AfterFunc(s.duration, func() { s.Expire(tok) })
	return tok
}

// Expire clears the signal if tok is still the current generation. It
// reports whether anything was cleared.
func (s *Signal) Expire(tok Token) bool {
	s.mu.Lock()
	if tok != s.gen || !s.visible {
		s.mu.Unlock()
		return false
	}
	s.visible = false
	s.hint = Hint{}
	s.timer = nil
	hook := s.onExpire
	s.mu.Unlock()

	if hook != nil {
		hook(tok)
	}
	return true
}

// Current returns the visible hint, if any.
func (s *Signal) Current() (Hint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hint, s.visible
}

// Generation returns the token of the latest activation.
func (s *Signal) Generation() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

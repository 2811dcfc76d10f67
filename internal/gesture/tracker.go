package gesture

import (
	"math"
	"time"
)

// PointerKind is the phase of a raw pointer sample.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// Pointer is a raw pointer sample as delivered by the presentation layer.
type Pointer struct {
	Kind PointerKind
	X    float64
	Y    float64
	At   time.Time
}

// HitTest reports whether a position lies in a region that must not start
// gestures, such as the value label that opens the edit dialog.
type HitTest func(x, y float64) bool

// Tracker folds raw pointer samples into Event snapshots. It holds the
// state of at most one gesture at a time and is not safe for concurrent use.
type Tracker struct {
	cfg Config
	hit HitTest

	active   bool
	excluded bool
	start    Pointer
	prev     Pointer
	velocity Vector
}

// NewTracker creates a Tracker. hit may be nil.
func NewTracker(cfg Config, hit HitTest) *Tracker {
	return &Tracker{cfg: cfg, hit: hit}
}

// Active reports whether a gesture is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Observe consumes one sample. The second result is false when the sample
// does not belong to a gesture (a move or release with no preceding press).
func (t *Tracker) Observe(p Pointer) (Event, bool) {
	switch p.Kind {
	case PointerDown:
		t.active = true
		t.start = p
		t.prev = p
		t.velocity = Vector{}
		t.excluded = t.hit != nil && t.hit(p.X, p.Y)
		return Event{Active: true, TargetHitsExcludedRegion: t.excluded}, true

	case PointerMove:
		if !t.active {
			return Event{}, false
		}
		t.track(p)
		return Event{
			Movement:                 t.movement(p),
			Velocity:                 t.velocity,
			Active:                   true,
			TargetHitsExcludedRegion: t.excluded,
		}, true

	case PointerUp:
		if !t.active {
			return Event{}, false
		}
		t.track(p)
		movement := t.movement(p)
		ev := Event{
			Movement:                 movement,
			Velocity:                 t.velocity,
			Last:                     true,
			IsTap:                    t.isTap(movement, p.At.Sub(t.start.At)),
			TargetHitsExcludedRegion: t.excluded,
		}
		t.active = false
		return ev, true
	}
	return Event{}, false
}

// Reset abandons the gesture in progress.
func (t *Tracker) Reset() {
	t.active = false
	t.excluded = false
	t.velocity = Vector{}
}

func (t *Tracker) movement(p Pointer) Vector {
	return Vector{X: p.X - t.start.X, Y: p.Y - t.start.Y}
}

// track updates velocity from the displacement since the previous sample.
// A sample with no displacement keeps the last velocity so a release at the
// final move position still carries the fling speed.
func (t *Tracker) track(p Pointer) {
	dx, dy := p.X-t.prev.X, p.Y-t.prev.Y
	elapsed := float64(p.At.Sub(t.prev.At)) / float64(time.Millisecond)
	if (dx != 0 || dy != 0) && elapsed > 0 {
		t.velocity = Vector{X: dx / elapsed, Y: dy / elapsed}
	}
	t.prev = p
}

func (t *Tracker) isTap(movement Vector, held time.Duration) bool {
	if math.Hypot(movement.X, movement.Y) >= t.cfg.TapDistance {
		return false
	}
	return t.cfg.TapMaxDuration <= 0 || held <= t.cfg.TapMaxDuration
}

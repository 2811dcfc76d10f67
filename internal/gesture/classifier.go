package gesture

import (
	"math"
	"time"
)

// Vector is a 2D quantity in pointer-movement units.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector) finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Event is the per-event snapshot of a single-pointer drag. Movement is
// measured from the gesture start; Velocity is in units per millisecond.
type Event struct {
	Movement                 Vector
	Velocity                 Vector
	Active                   bool
	Last                     bool
	IsTap                    bool
	TargetHitsExcludedRegion bool
}

// Valid reports whether the snapshot can be classified.
func (e Event) Valid() bool {
	return e.Movement.finite() && e.Velocity.finite()
}

// Config holds the classifier thresholds.
type Config struct {
	// TapDistance and TapMaxDuration are consumed by the Tracker when it
	// decides whether a release was a tap.
	TapDistance    float64
	TapMaxDuration time.Duration

	SwitchDistance float64
	SwitchVelocity float64
	HintDistance   float64
	SwipeThreshold float64

	Step StepConfig
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		TapDistance:    5,
		TapMaxDuration: 250 * time.Millisecond,
		SwitchDistance: 100,
		SwitchVelocity: 0.1,
		HintDistance:   10,
		SwipeThreshold: 50,
		Step:           DefaultStepConfig(),
	}
}

// ExclusionFunc reports whether gestures must be suppressed, for example
// while an edit dialog is open.
type ExclusionFunc func(Event) bool

// Classify maps one event snapshot to an Intent. It never panics; malformed
// snapshots yield None.
func Classify(ev Event, cfg Config, excluded ExclusionFunc) Intent {
	if !ev.Valid() {
		return None()
	}
	if ev.TargetHitsExcludedRegion || (excluded != nil && excluded(ev)) {
		return None()
	}
	if ev.IsTap {
		return Increment(1)
	}

	if math.Abs(ev.Movement.X) > math.Abs(ev.Movement.Y) {
		return classifyHorizontal(ev, cfg)
	}
	return classifyVertical(ev, cfg)
}

func classifyHorizontal(ev Event, cfg Config) Intent {
	if !ev.Last {
		return None()
	}
	dx := ev.Movement.X
	if math.Abs(dx) <= cfg.SwitchDistance || math.Abs(ev.Velocity.X) <= cfg.SwitchVelocity {
		return None()
	}
	if dx > 0 {
		return SwitchPrev()
	}
	return SwitchNext()
}

func classifyVertical(ev Event, cfg Config) Intent {
	dy := ev.Movement.Y
	if ev.Last {
		if math.Abs(dy) <= cfg.SwipeThreshold {
			return None()
		}
		n := cfg.Step.Steps(dy)
		if dy > 0 {
			return Decrement(n)
		}
		return Increment(n)
	}

	if ev.Active && math.Abs(dy) > cfg.HintDistance {
		dir := DirectionUp
		if dy > 0 {
			dir = DirectionDown
		}
		return Hint(dir, cfg.Step.Steps(dy))
	}
	return None()
}

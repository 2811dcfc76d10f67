package gesture

import "fmt"

// Kind identifies the action an Intent asks for.
type Kind int

const (
	KindNone Kind = iota
	KindIncrement
	KindDecrement
	KindSwitchPrev
	KindSwitchNext
	KindFeedbackHint
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindIncrement:
		return "increment"
	case KindDecrement:
		return "decrement"
	case KindSwitchPrev:
		return "switch_prev"
	case KindSwitchNext:
		return "switch_next"
	case KindFeedbackHint:
		return "feedback_hint"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Direction is the vertical sense of a count change.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// Intent is the discrete action derived from one gesture event.
// Steps is set for Increment, Decrement and FeedbackHint; Direction only
// for FeedbackHint.
type Intent struct {
	Kind      Kind
	Steps     int
	Direction Direction
}

func None() Intent { return Intent{Kind: KindNone} }
func Increment(n int) Intent { return Intent{Kind: KindIncrement, Steps: n} }
func Decrement(n int) Intent { return Intent{Kind: KindDecrement, Steps: n} }
func SwitchPrev() Intent { return Intent{Kind: KindSwitchPrev} }
func SwitchNext() Intent { return Intent{Kind: KindSwitchNext} }
func Hint(dir Direction, n int) Intent {
	return Intent{Kind: KindFeedbackHint, Steps: n, Direction: dir}
}

// IsNone reports whether the intent asks for nothing.
func (i Intent) IsNone() bool {
	return i.Kind == KindNone
}

// Mutates reports whether applying the intent can change counter state.
func (i Intent) Mutates() bool {
	switch i.Kind {
	case KindIncrement, KindDecrement, KindSwitchPrev, KindSwitchNext:
		return true
	default:
		return false
	}
}

// CountDirection returns the direction a count change moves in.
func (i Intent) CountDirection() Direction {
	switch i.Kind {
	case KindIncrement:
		return DirectionUp
	case KindDecrement:
		return DirectionDown
	case KindFeedbackHint:
		return i.Direction
	default:
		return DirectionNone
	}
}

func (i Intent) String() string {
	switch i.Kind {
	case KindIncrement, KindDecrement:
		return fmt.Sprintf("%s(%d)", i.Kind, i.Steps)
	case KindFeedbackHint:
		return fmt.Sprintf("%s(%s,%d)", i.Kind, i.Direction, i.Steps)
	default:
		return i.Kind.String()
	}
}

package engine

import (
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/feedback"
)

// CounterView is one counter as presented.
type CounterView struct {
	counter.Counter
	Progress float64 `json:"progress"`
	Active   bool    `json:"active"`
}

// FeedbackView is the visible feedback hint.
type FeedbackView struct {
	Direction string `json:"direction"`
	Magnitude int    `json:"magnitude"`
	Committed bool   `json:"committed"`
}

// View is a consistent copy of the presentable state.
type View struct {
	Counters    []CounterView `json:"counters"`
	ActiveIndex int           `json:"activeIndex"`
	Feedback    *FeedbackView `json:"feedback,omitempty"`
	Editing     bool          `json:"editing"`
	// Dragging is true between a pointer press and its release.
	Dragging bool `json:"dragging"`
}

// Active returns the selected counter.
func (v View) Active() CounterView {
	return v.Counters[v.ActiveIndex]
}

// View returns the current state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	counters := e.store.Counters()
	active := e.store.ActiveIndex()
	v := View{
		Counters:    make([]CounterView, len(counters)),
		ActiveIndex: active,
		Editing:     e.editing,
		Dragging:    e.tracker.Active(),
	}
	for i, c := range counters {
		v.Counters[i] = CounterView{Counter: c, Progress: c.Progress(), Active: i == active}
	}
	if h, ok := e.signal.Current(); ok {
		v.Feedback = feedbackView(h)
	}
	return v
}

func feedbackView(h feedback.Hint) *FeedbackView {
	return &FeedbackView{Direction: h.Direction.String(), Magnitude: h.Magnitude, Committed: h.Committed}
}

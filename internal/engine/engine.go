// Package engine serializes every interaction with the counter collection.
//
// Gestures, direct controls and edits all pass through one Engine, which
// classifies, applies, raises feedback and hands snapshots to the persister
// while holding a single lock. Nothing under that lock performs I/O.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/feedback"
	"github.com/rpggio/swipecount/internal/gesture"
	"github.com/rpggio/swipecount/internal/observability"
)

// ErrEditing is returned by direct controls while an edit is open.
var ErrEditing = errors.New("an edit is in progress")

// Result describes what one gesture did.
type Result struct {
	Intent  gesture.Intent `json:"-"`
	Applied bool           `json:"applied"`
	// Token is the feedback activation raised by the gesture, or zero.
	Token feedback.Token `json:"-"`
}

// Engine is safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	store   *counter.Store
	signal  *feedback.Signal
	cfg     gesture.Config
	tracker *gesture.Tracker
	editing bool
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	cfg    gesture.Config
	hit    gesture.HitTest
	logger *slog.Logger
}

// WithConfig replaces the default classifier thresholds.
func WithConfig(cfg gesture.Config) Option {
	return func(o *engineOptions) { o.cfg = cfg }
}

// WithHitTest sets the excluded-region predicate for raw pointer input.
func WithHitTest(hit gesture.HitTest) Option {
	return func(o *engineOptions) { o.hit = hit }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

// New creates an Engine over store. signal may be nil to disable feedback.
func New(store *counter.Store, signal *feedback.Signal, opts ...Option) *Engine {
	o := engineOptions{cfg: gesture.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if signal == nil {
		signal = feedback.NewSignal(feedback.DefaultDuration)
	}
	return &Engine{
		store:   store,
		signal:  signal,
		cfg:     o.cfg,
		tracker: gesture.NewTracker(o.cfg, o.hit),
		logger:  o.logger,
	}
}

// HandleEvent classifies a gesture snapshot and applies the result.
func (e *Engine) HandleEvent(ev gesture.Event) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handle(ev)
}

// HandlePointer feeds a raw pointer sample through the tracker. Samples that
// do not belong to a gesture classify as malformed and do nothing.
func (e *Engine) HandlePointer(p gesture.Pointer) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, ok := e.tracker.Observe(p)
	if !ok {
		return Result{Intent: gesture.None()}
	}
	return e.handle(ev)
}

// Tap applies a completed tap.
func (e *Engine) Tap() Result {
	return e.HandleEvent(gesture.Event{Last: true, IsTap: true})
}

// Swipe applies a completed drag with the given total movement and final
// velocity.
func (e *Engine) Swipe(movement, velocity gesture.Vector) Result {
	return e.HandleEvent(gesture.Event{Movement: movement, Velocity: velocity, Last: true})
}

func (e *Engine) handle(ev gesture.Event) Result {
	editing := e.editing
	in := gesture.Classify(ev, e.cfg, func(ev gesture.Event) bool {
		return ev.TargetHitsExcludedRegion || editing
	})

	res := Result{Intent: in}
	switch {
	case in.Mutates():
		res.Applied = e.store.ApplyIntent(in)
		if res.Applied && in.CountDirection() != gesture.DirectionNone {
			res.Token = e.signal.Show(feedback.Hint{Direction: in.CountDirection(), Magnitude: in.Steps, Committed: true})
		}
	case in.Kind == gesture.KindFeedbackHint:
		res.Token = e.signal.Show(feedback.Hint{Direction: in.Direction, Magnitude: in.Steps})
	}

	observability.ObserveIntent(in.Kind.String(), res.Applied)
	if !in.IsNone() {
		e.logger.Debug("gesture", "intent", in.String(), "applied", res.Applied)
	}
	return res
}

// BeginEdit opens an edit. Gestures are ignored until EndEdit.
func (e *Engine) BeginEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
	e.tracker.Reset()
}

// EndEdit closes the edit without changing anything.
func (e *Engine) EndEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = false
}

// Editing reports whether an edit is open.
func (e *Engine) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// SetTarget parses raw as the new target of counter id. Anything other
// than an integer > 0 yields counter.ErrInvalidTarget and leaves the state
// unchanged. The count is not clamped to the new target.
func (e *Engine) SetTarget(id, raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %q", counter.ErrInvalidTarget, raw)
	}
	return e.Update(id, counter.Update{TargetValue: &n})
}

// SetLabel sets the display name and color of counter id. Nil leaves a
// field unchanged.
func (e *Engine) SetLabel(id string, name, color *string) error {
	return e.Update(id, counter.Update{Name: name, Color: color})
}

// Update validates and merges an explicit edit. An explicit count is
// clamped to the resulting target.
func (e *Engine) Update(id string, u counter.Update) error {
	if u.TargetValue != nil && *u.TargetValue <= 0 {
		return fmt.Errorf("%w: %d", counter.ErrInvalidTarget, *u.TargetValue)
	}
	if u.Count != nil && *u.Count < 0 {
		return fmt.Errorf("%w: %d", counter.ErrInvalidCount, *u.Count)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", counter.ErrCounterNotFound, id)
	}
	if u.Count != nil {
		target := c.TargetValue
		if u.TargetValue != nil {
			target = *u.TargetValue
		}
		n := min(*u.Count, target)
		u.Count = &n
	}
	e.store.UpdateCounter(id, u)
	return nil
}

// Add appends a new counter and selects it.
func (e *Engine) Add() (counter.Counter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing {
		return counter.Counter{}, ErrEditing
	}
	return e.store.AddCounter(), nil
}

// Remove deletes counter id. It reports false without error when id is the
// only counter left.
func (e *Engine) Remove(id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing {
		return false, ErrEditing
	}
	if _, ok := e.store.Get(id); !ok {
		return false, fmt.Errorf("%w: %s", counter.ErrCounterNotFound, id)
	}
	return e.store.RemoveCounter(id), nil
}

// Select makes the counter at index active. Out-of-range indexes are
// ignored.
func (e *Engine) Select(index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing {
		return false, ErrEditing
	}
	return e.store.SetActiveCounterIndex(index), nil
}

// ExpireFeedback clears the feedback raised under tok, if still current.
func (e *Engine) ExpireFeedback(tok feedback.Token) bool {
	return e.signal.Expire(tok)
}

package counter

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/rpggio/swipecount/internal/gesture"
)

// Store owns the ordered counter collection and the active selection.
//
// The collection is never empty and the active index always addresses an
// existing counter. Operations that would break either rule are no-ops and
// report false. Store is not safe for concurrent use; a single owner
// (see engine.Engine) serializes access.
type Store struct {
	counters []Counter
	active   int
	issued   map[string]struct{}

	newID     func() string
	persister Persister
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces uuid-based id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithPersister registers the sink for snapshots after each mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store from a restored collection. An empty or nil
// collection produces the default single counter, which is not persisted
// until the first mutation.
func NewStore(initial []Counter, opts ...Option) *Store {
	s := &Store{
		newID:  uuid.NewString,
		issued: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.counters = make([]Counter, 0, len(initial)+1)
	for _, c := range initial {
		if _, dup := s.issued[c.ID]; dup || c.ID == "" {
			continue
		}
		s.issued[c.ID] = struct{}{}
		s.counters = append(s.counters, c)
	}
	if len(s.counters) == 0 {
		s.counters = append(s.counters, s.fresh())
	}
	return s
}

// Counters returns a copy of the collection in creation order.
func (s *Store) Counters() []Counter {
	out := make([]Counter, len(s.counters))
	copy(out, s.counters)
	return out
}

// Len returns the number of counters.
func (s *Store) Len() int {
	return len(s.counters)
}

// ActiveIndex returns the position of the selected counter.
func (s *Store) ActiveIndex() int {
	return s.active
}

// Active returns the selected counter.
func (s *Store) Active() Counter {
	return s.counters[s.active]
}

// Get returns the counter with the given id.
func (s *Store) Get(id string) (Counter, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.counters[i], true
	}
	return Counter{}, false
}

// AddCounter appends a fresh counter and selects it.
func (s *Store) AddCounter() Counter {
	c := s.fresh()
	s.counters = append(s.counters, c)
	s.active = len(s.counters) - 1
	s.persist(Change{Kind: ChangeAdded, After: c})
	return c
}

// RemoveCounter deletes the counter with the given id. It refuses to remove
// the last remaining counter and ignores unknown ids.
func (s *Store) RemoveCounter(id string) bool {
	if len(s.counters) <= 1 {
		return false
	}
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	removed := s.counters[i]
	s.counters = append(s.counters[:i:i], s.counters[i+1:]...)
	if s.active >= len(s.counters) {
		s.active = max(0, len(s.counters)-1)
	}
	s.persist(Change{Kind: ChangeRemoved, Before: removed})
	return true
}

// UpdateCounter merges the present fields of u into the matching counter.
// It does not clamp Count against TargetValue; callers that derive counts
// from gestures go through ApplyIntent. It reports whether anything changed.
func (s *Store) UpdateCounter(id string, u Update) bool {
	i := s.indexOf(id)
	if i < 0 || u.Empty() {
		return false
	}

	before := s.counters[i]
	after := u.apply(before)
	if after == before {
		return false
	}
	s.counters[i] = after

	kind := ChangeUpdated
	if u.TargetValue == nil && u.Name == nil && u.Color == nil {
		kind = ChangeCountChanged
	}
	s.persist(Change{Kind: kind, Before: before, After: after})
	return true
}

// SetActiveCounterIndex selects the counter at index when it exists and
// reports whether the selection moved. The selection is not part of the
// persisted snapshot.
func (s *Store) SetActiveCounterIndex(index int) bool {
	if index < 0 || index >= len(s.counters) || index == s.active {
		return false
	}
	s.active = index
	return true
}

// ApplyIntent turns a gesture intent into a bounded mutation of the active
// counter or a change of selection. Count changes are clamped to
// [0, TargetValue] and only written when the value actually moves.
func (s *Store) ApplyIntent(in gesture.Intent) bool {
	switch in.Kind {
	case gesture.KindIncrement, gesture.KindDecrement:
		c := s.counters[s.active]
		next := c.Count + in.Steps
		if in.Kind == gesture.KindDecrement {
			next = c.Count - in.Steps
		}
		next = clamp(next, 0, max(c.TargetValue, 0))

		if in.Kind == gesture.KindIncrement && next <= c.Count {
			return false
		}
		if in.Kind == gesture.KindDecrement && next >= c.Count {
			return false
		}
		return s.UpdateCounter(c.ID, Update{Count: &next})

	case gesture.KindSwitchPrev:
		return s.SetActiveCounterIndex(s.active - 1)
	case gesture.KindSwitchNext:
		return s.SetActiveCounterIndex(s.active + 1)
	default:
		return false
	}
}

func (s *Store) fresh() Counter {
	id := s.newID()
	for {
		if _, used := s.issued[id]; !used && id != "" {
			break
		}
		id = s.newID()
	}
	s.issued[id] = struct{}{}
	return Counter{ID: id, Count: 0, TargetValue: DefaultTarget}
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.counters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(change Change) {
	if s.persister == nil {
		return
	}
	if s.logger != nil {
		s.logger.Debug("counter collection changed", "kind", change.Kind, "counter_id", change.CounterID())
	}
	s.persister.Persist(s.Counters(), change)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

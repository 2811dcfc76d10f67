// Package persist writes counter snapshots and activity entries off the
// interaction path.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/swipecount/internal/domain/activity"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/observability"
)

// DefaultRetryInterval is how long Run waits before retrying a failed
// snapshot write when nothing new has been queued.
const DefaultRetryInterval = time.Second

// Writer implements counter.Persister. Persist only records the latest
// snapshot and queues an activity entry; a background Run loop (or an
// explicit Flush) writes them. Snapshots coalesce so only the newest one is
// written; activity entries are written in order without loss.
type Writer struct {
	snapshots counter.Repository
	activity  *activity.Service
	logger    *slog.Logger
	retry     time.Duration

	mu       sync.Mutex
	pending  []counter.Counter
	dirty    bool
	entries  []activity.ActivityEntry
	wake     chan struct{}
	drainMu  sync.Mutex
	stopped  chan struct{}
	stopOnce sync.Once
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithRetryInterval sets the delay before a failed snapshot is retried.
func WithRetryInterval(d time.Duration) WriterOption {
	return func(w *Writer) {
		if d > 0 {
			w.retry = d
		}
	}
}

// NewWriter creates a Writer. activitySvc may be nil to skip the history.
func NewWriter(snapshots counter.Repository, activitySvc *activity.Service, logger *slog.Logger, opts ...WriterOption) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Writer{
		snapshots: snapshots,
		activity:  activitySvc,
		logger:    logger,
		retry:     DefaultRetryInterval,
		wake:      make(chan struct{}, 1),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Persist queues counters for writing and returns immediately.
func (w *Writer) Persist(counters []counter.Counter, change counter.Change) {
	w.mu.Lock()
	w.pending = counters
	w.dirty = true
	if w.activity != nil {
		w.entries = append(w.entries, entryFor(change))
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run drains queued work until ctx is cancelled, then performs a final
// drain with a detached context. A failed drain is retried after the retry
// interval even if nothing new is queued.
func (w *Writer) Run(ctx context.Context) {
	defer w.stopOnce.Do(func() { close(w.stopped) })

	retry := time.NewTimer(w.retry)
	retry.Stop()
	defer retry.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := w.drain(context.WithoutCancel(ctx)); err != nil {
				w.logger.Error("final snapshot flush failed", "error", err)
			}
			return
		case <-w.wake:
		case <-retry.C:
		}

		if err := w.drain(ctx); err != nil {
			w.logger.Error("snapshot write failed", "error", err, "retry_in", w.retry)
			retry.Reset(w.retry)
		}
	}
}

// Done is closed once Run has returned.
func (w *Writer) Done() <-chan struct{} {
	return w.stopped
}

// Flush synchronously writes everything queued so far.
func (w *Writer) Flush(ctx context.Context) error {
	return w.drain(ctx)
}

func (w *Writer) drain(ctx context.Context) error {
	w.drainMu.Lock()
	defer w.drainMu.Unlock()

	w.mu.Lock()
	snap, dirty := w.pending, w.dirty
	entries := w.entries
	w.pending, w.dirty, w.entries = nil, false, nil
	w.mu.Unlock()

	var saveErr error
	if dirty {
		saveErr = w.save(ctx, snap)
		observability.ObserveSnapshotWrite(saveErr)
		if saveErr != nil {
			w.requeue(snap)
		}
	}

	for i := range entries {
		err := w.activity.LogActivity(ctx, &entries[i])
		observability.ObserveActivityWrite(err)
		if err != nil {
			w.logger.Error("activity append failed", "type", entries[i].ActivityType, "error", err)
		}
	}
	return saveErr
}

func (w *Writer) save(ctx context.Context, counters []counter.Counter) error {
	data, err := counter.EncodeSnapshot(counters)
	if err != nil {
		return err
	}
	if err := w.snapshots.SaveSnapshot(ctx, data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	w.logger.Debug("snapshot saved", "counters", len(counters))
	return nil
}

// requeue restores a failed snapshot unless a newer one arrived meanwhile.
func (w *Writer) requeue(snap []counter.Counter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirty {
		w.pending = snap
		w.dirty = true
	}
}

func entryFor(change counter.Change) activity.ActivityEntry {
	id := change.CounterID()
	entry := activity.ActivityEntry{
		CounterID:    &id,
		ActivityType: activity.ActivityType(change.Kind),
	}

	switch change.Kind {
	case counter.ChangeAdded:
		entry.Summary = fmt.Sprintf("added counter %s", label(change.After))
	case counter.ChangeRemoved:
		entry.Summary = fmt.Sprintf("removed counter %s", label(change.Before))
	case counter.ChangeCountChanged:
		entry.Summary = fmt.Sprintf("%s count %d -> %d", label(change.After), change.Before.Count, change.After.Count)
	default:
		entry.Summary = fmt.Sprintf("updated counter %s", label(change.After))
	}

	details := struct {
		Before *counter.Counter `json:"before,omitempty"`
		After  *counter.Counter `json:"after,omitempty"`
	}{}
	if change.Before.ID != "" {
		details.Before = &change.Before
	}
	if change.After.ID != "" {
		details.After = &change.After
	}
	if data, err := json.Marshal(details); err == nil {
		entry.Details = string(data)
	}
	return entry
}

func label(c counter.Counter) string {
	if c.Name != "" {
		return fmt.Sprintf("%q", c.Name)
	}
	return c.ID
}

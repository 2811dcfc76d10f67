package gesture_test

import (
	"testing"
	"time"

	"github.com/rpggio/swipecount/internal/gesture"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sample(kind gesture.PointerKind, x, y float64, ms int) gesture.Pointer {
	return gesture.Pointer{Kind: kind, X: x, Y: y, At: t0.Add(time.Duration(ms) * time.Millisecond)}
}

func TestTracker_Tap(t *testing.T) {
	tr := gesture.NewTracker(gesture.DefaultConfig(), nil)

	ev, ok := tr.Observe(sample(gesture.PointerDown, 100, 100, 0))
	require.True(t, ok)
	require.True(t, ev.Active)
	require.True(t, tr.Active())

	ev, ok = tr.Observe(sample(gesture.PointerUp, 102, 101, 80))
	require.True(t, ok)
	require.True(t, ev.Last)
	require.False(t, ev.Active)
	require.True(t, ev.IsTap)
	require.False(t, tr.Active())
}

func TestTracker_LongPressIsNotTap(t *testing.T) {
	tr := gesture.NewTracker(gesture.DefaultConfig(), nil)
	tr.Observe(sample(gesture.PointerDown, 0, 0, 0))
	ev, _ := tr.Observe(sample(gesture.PointerUp, 1, 0, 900))
	require.False(t, ev.IsTap)
	require.Equal(t, gesture.None(), gesture.Classify(ev, gesture.DefaultConfig(), nil))
}

func TestTracker_MovementAndVelocity(t *testing.T) {
	tr := gesture.NewTracker(gesture.DefaultConfig(), nil)
	tr.Observe(sample(gesture.PointerDown, 300, 200, 0))

	ev, ok := tr.Observe(sample(gesture.PointerMove, 250, 200, 100))
	require.True(t, ok)
	require.Equal(t, gesture.Vector{X: -50, Y: 0}, ev.Movement)
	require.InDelta(t, -0.5, ev.Velocity.X, 1e-9)

	tr.Observe(sample(gesture.PointerMove, 150, 205, 200))

	// Release at the last move position keeps the fling velocity.
	ev, ok = tr.Observe(sample(gesture.PointerUp, 150, 205, 220))
	require.True(t, ok)
	require.Equal(t, gesture.Vector{X: -150, Y: 5}, ev.Movement)
	require.InDelta(t, -1.0, ev.Velocity.X, 1e-9)
	require.Equal(t, gesture.SwitchNext(), gesture.Classify(ev, gesture.DefaultConfig(), nil))
}

func TestTracker_ExcludedRegionLatchedAtStart(t *testing.T) {
	hit := func(x, y float64) bool { return y < 10 }
	tr := gesture.NewTracker(gesture.DefaultConfig(), hit)

	ev, _ := tr.Observe(sample(gesture.PointerDown, 50, 5, 0))
	require.True(t, ev.TargetHitsExcludedRegion)

	// Leaving the region does not lift the suppression.
	ev, _ = tr.Observe(sample(gesture.PointerMove, 50, 200, 50))
	require.True(t, ev.TargetHitsExcludedRegion)
	ev, _ = tr.Observe(sample(gesture.PointerUp, 50, 200, 60))
	require.True(t, ev.TargetHitsExcludedRegion)
	require.Equal(t, gesture.None(), gesture.Classify(ev, gesture.DefaultConfig(), nil))

	// The next gesture starts clean.
	ev, _ = tr.Observe(sample(gesture.PointerDown, 50, 100, 100))
	require.False(t, ev.TargetHitsExcludedRegion)
}

func TestTracker_OrphanSamples(t *testing.T) {
	tr := gesture.NewTracker(gesture.DefaultConfig(), nil)

	_, ok := tr.Observe(sample(gesture.PointerMove, 1, 1, 0))
	require.False(t, ok)
	_, ok = tr.Observe(sample(gesture.PointerUp, 1, 1, 0))
	require.False(t, ok)

	tr.Observe(sample(gesture.PointerDown, 0, 0, 0))
	tr.Reset()
	_, ok = tr.Observe(sample(gesture.PointerUp, 0, 0, 10))
	require.False(t, ok)
}

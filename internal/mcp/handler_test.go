package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rpggio/swipecount/internal/domain/activity"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/engine"
	"github.com/rpggio/swipecount/internal/feedback"
	"github.com/stretchr/testify/require"
)

type activityStub struct {
	listFn func(context.Context, activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

func (a activityStub) GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	return a.listFn(ctx, opts)
}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

type idleScheduler struct{}

func (idleScheduler) AfterFunc(time.Duration, func()) feedback.Timer { return idleTimer{} }

func newTestHandler(t *testing.T, initial []counter.Counter, activitySvc ActivityService) *Handler {
	t.Helper()
	store := counter.NewStore(initial)
	signal := feedback.NewSignal(feedback.DefaultDuration, feedback.WithScheduler(idleScheduler{}))
	return NewHandler(engine.New(store, signal), activitySvc)
}

func TestHandler_ListAndTap(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, []counter.Counter{{ID: "a", Count: 4, TargetValue: 5}}, nil)

	out, err := h.Handle(ctx, "list_counters", nil)
	require.NoError(t, err)
	state := out.(StateResponse)
	require.Len(t, state.Counters, 1)
	require.Equal(t, 0.8, state.Counters[0].Progress)
	require.True(t, state.Counters[0].Active)

	out, err = h.Handle(ctx, "tap", nil)
	require.NoError(t, err)
	gr := out.(GestureResponse)
	require.Equal(t, "increment(1)", gr.Intent)
	require.True(t, gr.Applied)
	require.Equal(t, 5, gr.State.Counters[0].Count)
	require.NotNil(t, gr.State.Feedback)
	require.Equal(t, "up", gr.State.Feedback.Direction)

	out, err = h.Handle(ctx, "tap", nil)
	require.NoError(t, err)
	require.False(t, out.(GestureResponse).Applied, "clamped at target")
}

func TestHandler_Swipe(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, []counter.Counter{
		{ID: "a", Count: 50, TargetValue: 100},
		{ID: "b", Count: 0, TargetValue: 100},
	}, nil)

	out, err := h.Handle(ctx, "swipe", json.RawMessage(`{"dx":0,"dy":500}`))
	require.NoError(t, err)
	gr := out.(GestureResponse)
	require.Equal(t, "decrement(4)", gr.Intent)
	require.Equal(t, 46, gr.State.Counters[0].Count)

	out, err = h.Handle(ctx, "swipe", json.RawMessage(`{"dx":-150,"dy":10,"vx":-0.4}`))
	require.NoError(t, err)
	gr = out.(GestureResponse)
	require.Equal(t, "switch_next", gr.Intent)
	require.Equal(t, 1, gr.State.ActiveIndex)

	out, err = h.Handle(ctx, "swipe", json.RawMessage(`{"dx":-150,"dy":10,"vx":-0.05}`))
	require.NoError(t, err)
	require.Equal(t, "none", out.(GestureResponse).Intent, "too slow to switch")
}

func TestHandler_Pointer(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, []counter.Counter{{ID: "a", Count: 0, TargetValue: 100}}, nil)

	_, err := h.Handle(ctx, "pointer", json.RawMessage(`{"kind":"down","x":10,"y":400,"at_ms":1000}`))
	require.NoError(t, err)
	out, err := h.Handle(ctx, "pointer", json.RawMessage(`{"kind":"up","x":11,"y":401,"at_ms":1100}`))
	require.NoError(t, err)
	require.Equal(t, 1, out.(GestureResponse).State.Counters[0].Count)

	_, err = h.Handle(ctx, "pointer", json.RawMessage(`{"kind":"hover"}`))
	apiErr := MapError(err)
	require.NotNil(t, apiErr)
	require.Equal(t, CodeInvalidParams, apiErr.Code)
}

func TestHandler_CounterLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, []counter.Counter{{ID: "a", TargetValue: 100}}, nil)

	out, err := h.Handle(ctx, "add_counter", nil)
	require.NoError(t, err)
	added := out.(AddCounterResponse)
	require.NotEmpty(t, added.Counter.ID)
	require.Equal(t, 100, added.Counter.TargetValue)
	require.Equal(t, 1, added.State.ActiveIndex)

	out, err = h.Handle(ctx, "update_counter", json.RawMessage(`{"id":"`+added.Counter.ID+`","count":250,"name":"Laps"}`))
	require.NoError(t, err)
	state := out.(StateResponse)
	require.Equal(t, 100, state.Counters[1].Count, "count is clamped to the target")
	require.Equal(t, "Laps", state.Counters[1].Name)

	out, err = h.Handle(ctx, "select_counter", json.RawMessage(`{"index":0}`))
	require.NoError(t, err)
	require.True(t, out.(ChangeResponse).Changed)

	out, err = h.Handle(ctx, "remove_counter", json.RawMessage(`{"id":"a"}`))
	require.NoError(t, err)
	removed := out.(ChangeResponse)
	require.True(t, removed.Changed)
	require.Len(t, removed.State.Counters, 1)

	out, err = h.Handle(ctx, "remove_counter", json.RawMessage(`{"id":"`+added.Counter.ID+`"}`))
	require.NoError(t, err)
	require.False(t, out.(ChangeResponse).Changed, "last counter is kept")
}

func TestHandler_SetTargetErrors(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, []counter.Counter{{ID: "a", TargetValue: 100}}, nil)

	_, err := h.Handle(ctx, "set_target", json.RawMessage(`{"id":"a","value":"zero"}`))
	require.Equal(t, CodeInvalidTarget, MapError(err).Code)

	_, err = h.Handle(ctx, "set_target", json.RawMessage(`{"id":"nope","value":"10"}`))
	require.Equal(t, CodeCounterNotFound, MapError(err).Code)

	_, err = h.Handle(ctx, "update_counter", json.RawMessage(`{"id":"a","count":-3}`))
	require.Equal(t, CodeInvalidCount, MapError(err).Code)

	out, err := h.Handle(ctx, "set_target", json.RawMessage(`{"id":"a","value":"12"}`))
	require.NoError(t, err)
	require.Equal(t, 12, out.(StateResponse).Counters[0].TargetValue)
}

func TestHandler_RecentActivity(t *testing.T) {
	ctx := context.Background()
	var got activity.ListActivityOptions
	counterID := "a"
	stub := activityStub{listFn: func(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
		got = opts
		return []activity.ActivityEntry{{
			ID:           7,
			CounterID:    &counterID,
			ActivityType: activity.TypeCountChanged,
			Summary:      "a count 1 -> 2",
			CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}}, nil
	}}
	h := newTestHandler(t, nil, stub)

	out, err := h.Handle(ctx, "recent_activity", json.RawMessage(`{"counter_id":"a","type":"count_changed","limit":5}`))
	require.NoError(t, err)
	resp := out.(RecentActivityResponse)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "a", resp.Entries[0].CounterID)
	require.Equal(t, "2026-01-02T03:04:05Z", resp.Entries[0].CreatedAt)

	require.Equal(t, "a", *got.CounterID)
	require.Equal(t, activity.TypeCountChanged, *got.ActivityType)
	require.Equal(t, 5, got.Limit)
}

func TestHandler_RecentActivityWithoutService(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	out, err := h.Handle(context.Background(), "recent_activity", nil)
	require.NoError(t, err)
	require.Empty(t, out.(RecentActivityResponse).Entries)
}

func TestHandler_UnknownMethodAndBadParams(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, nil, nil)

	_, err := h.Handle(ctx, "list_projects", nil)
	require.Equal(t, CodeMethodNotFound, MapError(err).Code)

	_, err = h.Handle(ctx, "select_counter", json.RawMessage(`{"index":"first"}`))
	require.Equal(t, CodeInvalidParams, MapError(err).Code)
}

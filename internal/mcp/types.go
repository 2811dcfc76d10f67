package mcp

import (
	"time"

	"github.com/rpggio/swipecount/internal/domain/activity"
	"github.com/rpggio/swipecount/internal/engine"
)

type ListCountersParams struct{}

type AddCounterParams struct{}

type RemoveCounterParams struct {
	ID string `json:"id" jsonschema:"counter identifier"`
}

type UpdateCounterParams struct {
	ID          string  `json:"id" jsonschema:"counter identifier"`
	Count       *int    `json:"count,omitempty" jsonschema:"new count (not clamped to the target)"`
	TargetValue *int    `json:"targetValue,omitempty" jsonschema:"new target, an integer greater than zero"`
	Name        *string `json:"name,omitempty" jsonschema:"display name"`
	Color       *string `json:"color,omitempty" jsonschema:"display color"`
}

type SetTargetParams struct {
	ID    string `json:"id" jsonschema:"counter identifier"`
	Value string `json:"value" jsonschema:"target as typed by the user; must parse as an integer greater than zero"`
}

type SelectCounterParams struct {
	Index int `json:"index" jsonschema:"zero-based position of the counter to select"`
}

type TapParams struct{}

type SwipeParams struct {
	DX float64 `json:"dx" jsonschema:"total horizontal movement; positive is rightward"`
	DY float64 `json:"dy" jsonschema:"total vertical movement; positive is downward"`
	VX float64 `json:"vx,omitempty" jsonschema:"horizontal release velocity in units per millisecond"`
	VY float64 `json:"vy,omitempty" jsonschema:"vertical release velocity in units per millisecond"`
}

type PointerParams struct {
	Kind string  `json:"kind" jsonschema:"down, move or up"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	AtMs int64   `json:"at_ms,omitempty" jsonschema:"sample time in unix milliseconds; defaults to now"`
}

type RecentActivityParams struct {
	CounterID *string `json:"counter_id,omitempty" jsonschema:"only entries for this counter"`
	Type      *string `json:"type,omitempty" jsonschema:"counter_added, counter_removed, counter_updated or count_changed"`
	Limit     int     `json:"limit,omitempty" jsonschema:"maximum entries to return"`
	Offset    int     `json:"offset,omitempty" jsonschema:"entries to skip"`
}

type CounterResponse struct {
	ID          string  `json:"id"`
	Count       int     `json:"count"`
	TargetValue int     `json:"targetValue"`
	Name        string  `json:"name,omitempty"`
	Color       string  `json:"color,omitempty"`
	Progress    float64 `json:"progress"`
	Active      bool    `json:"active"`
}

type StateResponse struct {
	Counters    []CounterResponse    `json:"counters"`
	ActiveIndex int                  `json:"activeIndex"`
	Feedback    *engine.FeedbackView `json:"feedback,omitempty"`
}

type AddCounterResponse struct {
	Counter CounterResponse `json:"counter"`
	State   StateResponse   `json:"state"`
}

type ChangeResponse struct {
	Changed bool          `json:"changed"`
	State   StateResponse `json:"state"`
}

type GestureResponse struct {
	Intent  string        `json:"intent"`
	Applied bool          `json:"applied"`
	State   StateResponse `json:"state"`
}

type ActivityEntryResponse struct {
	ID        int64  `json:"id"`
	CounterID string `json:"counter_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}

type RecentActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

func stateResponse(v engine.View) StateResponse {
	resp := StateResponse{
		Counters:    make([]CounterResponse, 0, len(v.Counters)),
		ActiveIndex: v.ActiveIndex,
		Feedback:    v.Feedback,
	}
	for _, c := range v.Counters {
		resp.Counters = append(resp.Counters, CounterResponse{
			ID:          c.ID,
			Count:       c.Count,
			TargetValue: c.TargetValue,
			Name:        c.Name,
			Color:       c.Color,
			Progress:    c.Progress,
			Active:      c.Active,
		})
	}
	return resp
}

func activityResponse(entries []activity.ActivityEntry) RecentActivityResponse {
	resp := RecentActivityResponse{Entries: make([]ActivityEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ActivityEntryResponse{
			ID:        e.ID,
			CounterID: stringValue(e.CounterID),
			Type:      string(e.ActivityType),
			Summary:   e.Summary,
			Details:   e.Details,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return resp
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/swipecount/internal/domain/activity"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/engine"
	"github.com/rpggio/swipecount/internal/gesture"
)

// Engine defines the counter operations needed by MCP.
type Engine interface {
	View() engine.View
	Tap() engine.Result
	Swipe(movement, velocity gesture.Vector) engine.Result
	HandlePointer(p gesture.Pointer) engine.Result
	Add() (counter.Counter, error)
	Remove(id string) (bool, error)
	Update(id string, u counter.Update) error
	SetTarget(id, raw string) error
	Select(index int) (bool, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Handler dispatches MCP commands.
type Handler struct {
	engine   Engine
	activity ActivityService
	now      func() time.Time
}

// NewHandler creates a new MCP handler. activitySvc may be nil, in which
// case recent_activity returns no entries.
func NewHandler(eng Engine, activitySvc ActivityService) *Handler {
	return &Handler{engine: eng, activity: activitySvc, now: time.Now}
}

// Handle dispatches JSON-RPC requests by method name.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_counters":
		return h.ListCounters(ctx)
	case "add_counter":
		return h.AddCounter(ctx)
	case "remove_counter":
		var req RemoveCounterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.RemoveCounter(ctx, req)
	case "update_counter":
		var req UpdateCounterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.UpdateCounter(ctx, req)
	case "set_target":
		var req SetTargetParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.SetTarget(ctx, req)
	case "select_counter":
		var req SelectCounterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.SelectCounter(ctx, req)
	case "tap":
		return h.Tap(ctx)
	case "swipe":
		var req SwipeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.Swipe(ctx, req)
	case "pointer":
		var req PointerParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.Pointer(ctx, req)
	case "recent_activity":
		var req RecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.RecentActivity(ctx, req)
	default:
		return nil, &APIError{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", method)}
	}
}

func (h *Handler) ListCounters(_ context.Context) (StateResponse, error) {
	return stateResponse(h.engine.View()), nil
}

func (h *Handler) AddCounter(_ context.Context) (AddCounterResponse, error) {
	c, err := h.engine.Add()
	if err != nil {
		return AddCounterResponse{}, mapError(err)
	}
	state := stateResponse(h.engine.View())
	resp := AddCounterResponse{State: state}
	for _, cr := range state.Counters {
		if cr.ID == c.ID {
			resp.Counter = cr
		}
	}
	return resp, nil
}

func (h *Handler) RemoveCounter(_ context.Context, req RemoveCounterParams) (ChangeResponse, error) {
	removed, err := h.engine.Remove(req.ID)
	if err != nil {
		return ChangeResponse{}, mapError(err)
	}
	return ChangeResponse{Changed: removed, State: stateResponse(h.engine.View())}, nil
}

func (h *Handler) UpdateCounter(_ context.Context, req UpdateCounterParams) (StateResponse, error) {
	err := h.engine.Update(req.ID, counter.Update{
		Count:       req.Count,
		TargetValue: req.TargetValue,
		Name:        req.Name,
		Color:       req.Color,
	})
	if err != nil {
		return StateResponse{}, mapError(err)
	}
	return stateResponse(h.engine.View()), nil
}

func (h *Handler) SetTarget(_ context.Context, req SetTargetParams) (StateResponse, error) {
	if err := h.engine.SetTarget(req.ID, req.Value); err != nil {
		return StateResponse{}, mapError(err)
	}
	return stateResponse(h.engine.View()), nil
}

func (h *Handler) SelectCounter(_ context.Context, req SelectCounterParams) (ChangeResponse, error) {
	moved, err := h.engine.Select(req.Index)
	if err != nil {
		return ChangeResponse{}, mapError(err)
	}
	return ChangeResponse{Changed: moved, State: stateResponse(h.engine.View())}, nil
}

func (h *Handler) Tap(_ context.Context) (GestureResponse, error) {
	return h.gestureResponse(h.engine.Tap()), nil
}

func (h *Handler) Swipe(_ context.Context, req SwipeParams) (GestureResponse, error) {
	res := h.engine.Swipe(gesture.Vector{X: req.DX, Y: req.DY}, gesture.Vector{X: req.VX, Y: req.VY})
	return h.gestureResponse(res), nil
}

func (h *Handler) Pointer(_ context.Context, req PointerParams) (GestureResponse, error) {
	var kind gesture.PointerKind
	switch req.Kind {
	case "down":
		kind = gesture.PointerDown
	case "move":
		kind = gesture.PointerMove
	case "up":
		kind = gesture.PointerUp
	default:
		return GestureResponse{}, invalidParams(fmt.Errorf("pointer kind must be down, move or up, got %q", req.Kind))
	}
	at := h.now()
	if req.AtMs > 0 {
		at = time.UnixMilli(req.AtMs)
	}
	res := h.engine.HandlePointer(gesture.Pointer{Kind: kind, X: req.X, Y: req.Y, At: at})
	return h.gestureResponse(res), nil
}

func (h *Handler) RecentActivity(ctx context.Context, req RecentActivityParams) (RecentActivityResponse, error) {
	if h.activity == nil {
		return activityResponse(nil), nil
	}
	opts := activity.ListActivityOptions{
		CounterID: req.CounterID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}
	if req.Type != nil {
		t := activity.ActivityType(*req.Type)
		opts.ActivityType = &t
	}
	entries, err := h.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return RecentActivityResponse{}, mapError(err)
	}
	return activityResponse(entries), nil
}

func (h *Handler) gestureResponse(res engine.Result) GestureResponse {
	return GestureResponse{
		Intent:  res.Intent.String(),
		Applied: res.Applied,
		State:   stateResponse(h.engine.View()),
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams(err)
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func stringValue(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}

package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_counters",
		Description: "List all counters in order, with the active index and any visible feedback",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListCountersParams) (*sdkmcp.CallToolResult, StateResponse, error) {
		resp, err := h.ListCounters(ctx)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_counter",
		Description: "Append a new counter (count 0, target 100) and make it active",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ AddCounterParams) (*sdkmcp.CallToolResult, AddCounterResponse, error) {
		resp, err := h.AddCounter(ctx)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_counter",
		Description: "Remove a counter by id. The last remaining counter is never removed",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveCounterParams) (*sdkmcp.CallToolResult, ChangeResponse, error) {
		resp, err := h.RemoveCounter(ctx, in)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_counter",
		Description: "Merge fields into a counter. An explicit count is clamped to the counter's target",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateCounterParams) (*sdkmcp.CallToolResult, StateResponse, error) {
		resp, err := h.UpdateCounter(ctx, in)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_target",
		Description: "Set a counter's target from user-entered text; rejects anything but an integer greater than zero",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetTargetParams) (*sdkmcp.CallToolResult, StateResponse, error) {
		resp, err := h.SetTarget(ctx, in)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_counter",
		Description: "Make the counter at a zero-based index active; out-of-range indexes are ignored",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SelectCounterParams) (*sdkmcp.CallToolResult, ChangeResponse, error) {
		resp, err := h.SelectCounter(ctx, in)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "tap",
		Description: "Tap the active counter: increments by one, never past the target",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ TapParams) (*sdkmcp.CallToolResult, GestureResponse, error) {
		resp, err := h.Tap(ctx)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "swipe",
		Description: "Apply a completed drag. Vertical drags past 50 units change the count by a step that grows with distance (up increments); horizontal drags past 100 units with speed above 0.1 switch counters",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SwipeParams) (*sdkmcp.CallToolResult, GestureResponse, error) {
		resp, err := h.Swipe(ctx, in)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent counter changes, newest first, optionally filtered by counter or type",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, RecentActivityResponse, error) {
		resp, err := h.RecentActivity(ctx, in)
		return nil, resp, err
	})
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLogger logs MCP messages at debug. Tool calls carry the tool name
// so a swipe can be followed from the wire to the engine's gesture line.
type trafficLogger struct {
	logger    *slog.Logger
	direction string
	mode      string
}

func (t trafficLogger) middleware(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
	return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		if t.logger == nil || !t.logger.Enabled(ctx, slog.LevelDebug) {
			return next(ctx, method, req)
		}

		sessionID, params := requestInfo(req)
		attrs := []any{"direction", t.direction, "method", method, "session_id", sessionID, "mode", t.mode}
		if tool := toolName(params); tool != "" {
			attrs = append(attrs, "tool", tool)
		}
		t.logger.Debug("mcp traffic", append(attrs[:len(attrs):len(attrs)], "stage", "request", "params", formatPayload(params))...)

		start := time.Now()
		result, err := next(ctx, method, req)
		if strings.HasPrefix(method, "notifications/") {
			return result, err
		}

		attrs = append(attrs, "stage", "response", "elapsed", time.Since(start), "result", formatPayload(result))
		if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
			attrs = append(attrs, "tool_error", true)
		}
		if err != nil {
			attrs = append(attrs, "error", err)
		}
		t.logger.Debug("mcp traffic", attrs...)
		return result, err
	}
}

// requestInfo extracts what it can from req. Requests built outside a live
// session can panic on access, so a panic leaves the remaining values empty.
func requestInfo(req sdkmcp.Request) (sessionID string, params any) {
	if req == nil {
		return "", nil
	}
	defer func() { _ = recover() }()
	params = req.GetParams()
	if session := req.GetSession(); session != nil {
		sessionID = session.ID()
	}
	return sessionID, params
}

func toolName(params any) string {
	switch p := params.(type) {
	case *sdkmcp.CallToolParamsRaw:
		if p != nil {
			return p.Name
		}
	case *sdkmcp.CallToolParams:
		if p != nil {
			return p.Name
		}
	}
	return ""
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}

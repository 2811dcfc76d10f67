package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, h *Handler) *sdkmcp.ClientSession {
	t.Helper()
	return connectWith(t, Config{Handler: h, TransportMode: "stdio"})
}

func connectWith(t *testing.T, cfg Config) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	server := NewServer(cfg)
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func decodeStructured(t *testing.T, res *sdkmcp.CallToolResult, out any) {
	t.Helper()
	require.False(t, res.IsError, "tool returned error: %+v", res.Content)
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestServer_ListsTools(t *testing.T) {
	session := connect(t, newTestHandler(t, nil, nil))

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_counters", "add_counter", "remove_counter", "update_counter",
		"set_target", "select_counter", "tap", "swipe", "recent_activity",
	}, names)
}

func TestServer_SwipeTool(t *testing.T) {
	session := connect(t, newTestHandler(t, []counter.Counter{{ID: "a", Count: 10, TargetValue: 100}}, nil))
	ctx := context.Background()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "swipe",
		Arguments: map[string]any{"dx": 0, "dy": -120},
	})
	require.NoError(t, err)

	var out GestureResponse
	decodeStructured(t, res, &out)
	require.True(t, out.Applied)
	require.Equal(t, 11, out.State.Counters[0].Count)
}

func TestServer_ToolErrorsAreReported(t *testing.T) {
	session := connect(t, newTestHandler(t, []counter.Counter{{ID: "a", TargetValue: 100}}, nil))

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "set_target",
		Arguments: map[string]any{"id": "a", "value": "-4"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestServer_ReadsDocs(t *testing.T) {
	session := connect(t, newTestHandler(t, nil, nil))

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "swipecount://docs/gestures"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "floor(1.15^(|dy|/50))")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServer_TrafficLogNamesTool(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newTestHandler(t, []counter.Counter{{ID: "a", TargetValue: 100}}, nil)
	session := connectWith(t, Config{Handler: h, TransportMode: "http", Logger: logger})

	_, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "tap", Arguments: map[string]any{}})
	require.NoError(t, err)

	var request, response string
	for _, line := range strings.Split(out.String(), "\n") {
		if !strings.Contains(line, "method=tools/call") || !strings.Contains(line, "direction=inbound") {
			continue
		}
		if strings.Contains(line, "stage=request") {
			request = line
		}
		if strings.Contains(line, "stage=response") {
			response = line
		}
	}
	require.Contains(t, request, "tool=tap")
	require.Contains(t, request, "mode=http")
	require.Contains(t, response, "tool=tap")
	require.Contains(t, response, "elapsed=")
	require.NotContains(t, response, "tool_error")
}

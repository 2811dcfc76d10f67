package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/swipecount/internal/app"
	"github.com/rpggio/swipecount/internal/config"
	"github.com/rpggio/swipecount/internal/mcp"
	"github.com/rpggio/swipecount/internal/observability"
	"github.com/rpggio/swipecount/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	MCP    *sdkmcp.Server
}

// New starts the full HTTP surface over a private in-memory database.
func New(t *testing.T) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	a, err := app.Open(context.Background(), cfg, nil, app.Options{})
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{Handler: a.Handler, TransportMode: config.TransportHTTP})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(a.Handler, transport.Options{
		MCP:     mcpHandler,
		Metrics: observability.Handler(),
	}))

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a, MCP: mcpServer}
}

// Flush waits for queued snapshot and activity writes.
func (ts *TestServer) Flush(t *testing.T) {
	t.Helper()
	require.NoError(t, ts.App.Writer.Flush(context.Background()))
}

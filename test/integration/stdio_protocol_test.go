package integration_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func serverBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/swipecount-server", "../../bin/swipecount-server"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("Server binary not found. Run 'go build -o bin/swipecount-server ./cmd/server' first.")
	return ""
}

func stdioEnv() []string {
	return append(os.Environ(),
		"SWIPECOUNT_TRANSPORT=stdio",
		"SWIPECOUNT_DB_PATH=:memory:",
		"SWIPECOUNT_CONFIG_PATH=",
		"SWIPECOUNT_LOG_PATH=",
	)
}

// TestStdioProtocolCompliance drives the server binary over stdio with the
// SDK client.
func TestStdioProtocolCompliance(t *testing.T) {
	binaryPath := serverBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = stdioEnv()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err, "Failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.NotNil(t, initResult.ServerInfo)
		require.Equal(t, "swipecount", initResult.ServerInfo.Name)
		require.Equal(t, "0.1.0", initResult.ServerInfo.Version)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err, "tools/list failed")

		toolNames := make(map[string]bool)
		for _, tool := range tools.Tools {
			toolNames[tool.Name] = true
		}
		for _, name := range []string{
			"list_counters",
			"add_counter",
			"remove_counter",
			"update_counter",
			"set_target",
			"select_counter",
			"tap",
			"swipe",
			"recent_activity",
		} {
			require.True(t, toolNames[name], "Missing expected tool: %s", name)
		}
	})

	t.Run("CallTap", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "tap"})
		require.NoError(t, err, "tools/call tap failed")
		require.False(t, result.IsError, "tap returned error: %v", result)

		raw, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var out struct {
			Intent  string `json:"intent"`
			Applied bool   `json:"applied"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Equal(t, "increment(1)", out.Intent)
		require.True(t, out.Applied)
	})

	t.Run("CallSetTargetInvalid", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "set_target",
			Arguments: map[string]any{"id": "missing", "value": "ten"},
		})
		require.NoError(t, err)
		require.True(t, result.IsError)
	})
}

// TestStdioProtocol_StdoutHygiene verifies that the server doesn't write
// anything to stdout except JSON-RPC messages.
func TestStdioProtocol_StdoutHygiene(t *testing.T) {
	binaryPath := serverBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(stdioEnv(), "SWIPECOUNT_LOG_LEVEL=debug")

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	initReq := `{"jsonrpc":"2.0","method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}},"id":1}`
	_, err = stdin.Write([]byte(initReq + "\n"))
	require.NoError(t, err)

	lines := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(stdout)
		if scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	select {
	case line, ok := <-lines:
		require.True(t, ok, "Server produced no stdout output")
		var msg map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &msg), "stdout line is not JSON: %q", line)
		require.Equal(t, "2.0", msg["jsonrpc"])
		require.Contains(t, msg, "result")
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout waiting for server response")
	}

	_ = stdin.Close()
}

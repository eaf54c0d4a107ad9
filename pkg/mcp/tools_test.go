package mcp

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mholzen/threadtree/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExposeList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty selects all", raw: "", expected: allTools},
		{name: "all group", raw: "all", expected: allTools},
		{name: "short names", raw: "show, traverse", expected: []string{ToolShow, ToolTraverse}},
		{name: "full names deduplicated", raw: "threadtree_leaves,leaves", expected: []string{ToolLeaves}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExposeList(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseExposeList("delete")
	assert.Error(t, err)
}

func TestToolBuilder_Traverse(t *testing.T) {
	b := NewToolBuilder(0)

	run, err := b.Traverse("V0:left,V0:right", "in", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"V1", "V0", "V2"}, run.Visited)

	run, err = b.Traverse("V0:left,V0:right", "in", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"V1", "V0", "V2"}, run.Visited)
	assert.Len(t, run.Threads, 2)

	run, err = b.Traverse("", "post", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"V0"}, run.Visited)

	_, err = b.Traverse("V0:left", "sideways", false)
	assert.Error(t, err)

	_, err = b.Traverse("V0:left,V0:left", "pre", false)
	assert.ErrorIs(t, err, session.ErrOccupied)
}

func TestToolBuilder_Outline(t *testing.T) {
	b := NewToolBuilder(0)

	outline, err := b.Outline("V0:left", "")
	require.NoError(t, err)
	assert.Equal(t, "- V0\n  - L: V1", outline)

	outline, err = b.Outline("V0:left", "in")
	require.NoError(t, err)
	assert.Equal(t, "- V0\n  - L: V1\n    - L~> nil\n    - R~> V0\n  - R~> nil", outline)
}

func TestBuildTools(t *testing.T) {
	tools, err := NewToolBuilder(0).BuildTools(allTools)
	require.NoError(t, err)
	require.Len(t, tools, 3)
	assert.Equal(t, ToolTraverse, tools[0].Tool.Name)

	_, err = NewToolBuilder(0).BuildTools([]string{"nope"})
	assert.Error(t, err)
}

func TestTraverseHandler(t *testing.T) {
	tools, err := NewToolBuilder(0).BuildTools([]string{ToolTraverse})
	require.NoError(t, err)

	req := mcptypes.CallToolRequest{}
	req.Params.Name = ToolTraverse
	req.Params.Arguments = map[string]any{"attach": "V0:right", "mode": "pre", "threaded": true}
	result, err := tools[0].Handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	req.Params.Arguments = map[string]any{"attach": "V0:up", "mode": "pre"}
	result, err = tools[0].Handler(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Origin", "https://example.com")
		rr := httptest.NewRecorder()
		corsMiddleware([]string{"https://example.com"})(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Origin", "https://evil.example")
		rr := httptest.NewRecorder()
		corsMiddleware([]string{"https://example.com"})(next).ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
		req.Header.Set("Origin", "https://example.com")
		rr := httptest.NewRecorder()
		corsMiddleware(nil)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestNewHTTPHandler(t *testing.T) {
	handler, err := NewHTTPHandler(HTTPConfig{Config: Config{Expose: "all", Version: "test"}})
	require.NoError(t, err)
	assert.NotNil(t, handler)

	_, err = NewHTTPHandler(HTTPConfig{Config: Config{Expose: "bogus"}})
	assert.Error(t, err)
}

func TestRunHTTPServer_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = RunHTTPServer(context.Background(), HTTPConfig{
		Config: Config{Expose: "all"},
		Addr:   ln.Addr().String(),
	})
	assert.Error(t, err)
}

func TestRunHTTPServer_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunHTTPServer(ctx, HTTPConfig{
			Config: Config{Expose: "all"},
			Addr:   "127.0.0.1:0",
		})
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

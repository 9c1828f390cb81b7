package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"studypro/internal/bootstrap"
	"studypro/internal/platform/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return NewServer("test", app.TimerCLI, app.LedgerCLI, app.SyllabusCLI, app.StatsCLI)
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func decode[T any](t *testing.T, result *mcp.CallToolResult, err error) T {
	t.Helper()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result.Content)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	var out T
	if err := json.Unmarshal([]byte(text.Text), &out); err != nil {
		t.Fatalf("decode %q: %v", text.Text, err)
	}
	return out
}

func TestTimerToolsStartStatusStop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestServer(t)

	result, err := s.handleTimerStart(ctx, call(map[string]any{"mode": "coaching"}))
	started := decode[TimerResponse](t, result, err)
	if !started.Started || started.Mode != "coaching" {
		t.Fatalf("unexpected start: %+v", started)
	}

	result, err = s.handleTimerStatus(ctx, call(nil))
	status := decode[TimerResponse](t, result, err)
	if !status.Running || status.StatusText != "Recording Coaching Session..." {
		t.Fatalf("unexpected status: %+v", status)
	}

	result, err = s.handleTimerStop(ctx, call(map[string]any{"subject": "Physics"}))
	stopped := decode[StopResponse](t, result, err)
	if !stopped.WasRunning {
		t.Fatalf("expected running timer to stop: %+v", stopped)
	}
	if stopped.Committed != (stopped.Seconds > 1) {
		t.Fatalf("commit must follow the one second threshold: %+v", stopped)
	}
}

func TestTimerStartRequiresMode(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	result, err := s.handleTimerStart(context.Background(), call(map[string]any{}))
	if err != nil || !result.IsError {
		t.Fatalf("expected a tool error, got %+v %v", result, err)
	}
	result, err = s.handleTimerStart(context.Background(), call(map[string]any{"mode": "nap"}))
	if err != nil || !result.IsError {
		t.Fatalf("expected invalid mode to be a tool error, got %+v %v", result, err)
	}
}

func TestSyllabusToolsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestServer(t)

	result, err := s.handleSyllabusAdd(ctx, call(map[string]any{"text": "  Optics  "}))
	added := decode[ChangeResponse](t, result, err)
	if !added.Changed || added.Topic == nil || added.Topic.Text != "Optics" {
		t.Fatalf("unexpected add: %+v", added)
	}

	result, err = s.handleSyllabusToggle(ctx, call(map[string]any{"id": added.Topic.ID}))
	toggled := decode[ChangeResponse](t, result, err)
	if !toggled.Changed || !toggled.Topic.Done {
		t.Fatalf("unexpected toggle: %+v", toggled)
	}

	result, err = s.handleSyllabusList(ctx, call(nil))
	list := decode[SyllabusResponse](t, result, err)
	if list.Total != 1 || list.Percent != 100 {
		t.Fatalf("unexpected list: %+v", list)
	}

	result, err = s.handleSyllabusRemove(ctx, call(map[string]any{"id": "missing"}))
	removed := decode[ChangeResponse](t, result, err)
	if removed.Changed {
		t.Fatalf("unknown id must not change anything")
	}
}

func TestEmptyReadsCarryPlaceholders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestServer(t)

	result, err := s.handleRecentLogs(ctx, call(map[string]any{"limit": float64(3)}))
	recent := decode[RecentResponse](t, result, err)
	if recent.Placeholder != "No activity recorded yet. Start a session!" || len(recent.Logs) != 0 {
		t.Fatalf("unexpected recent: %+v", recent)
	}

	result, err = s.handleStats(ctx, call(nil))
	stats := decode[StatsResponse](t, result, err)
	if stats.Placeholder != "No data to display." || stats.TotalHours != "0.0h" || stats.GoalHours != 6 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestParseLimitCaps(t *testing.T) {
	t.Parallel()
	if got := parseLimit(map[string]interface{}{"limit": float64(500)}, 5, maxRecentLimit); got != maxRecentLimit {
		t.Fatalf("expected cap, got %d", got)
	}
	if got := parseLimit(map[string]interface{}{}, 5, maxRecentLimit); got != 5 {
		t.Fatalf("expected default, got %d", got)
	}
}

func TestServeIOStopsWhenContextEnds(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	in, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeIO(ctx, in, io.Discard) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled serve should return cleanly, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not return after cancel")
	}
}

func TestServeIOReturnsOnClosedInput(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	if err := s.ServeIO(context.Background(), strings.NewReader(""), io.Discard); err != nil {
		t.Fatalf("closed input should end serve cleanly, got %v", err)
	}
}

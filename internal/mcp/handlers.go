package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	ledgerdto "studypro/internal/modules/ledger/dto"
	statsdto "studypro/internal/modules/stats/dto"
	syllabusdto "studypro/internal/modules/syllabus/dto"
)

const maxRecentLimit = 100

type TimerResponse struct {
	Running    bool       `json:"running"`
	Started    bool       `json:"started,omitempty"`
	Mode       string     `json:"mode,omitempty"`
	Seconds    int        `json:"seconds"`
	Clock      string     `json:"clock,omitempty"`
	StatusText string     `json:"status_text,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
}

type StopResponse struct {
	WasRunning bool         `json:"was_running"`
	Seconds    int          `json:"seconds"`
	Committed  bool         `json:"committed"`
	Log        *LogResponse `json:"log,omitempty"`
}

type LogResponse struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"`
	Minutes  int       `json:"minutes"`
	Type     string    `json:"type"`
	Subject  string    `json:"subject"`
}

type RecentResponse struct {
	Logs        []LogResponse `json:"logs"`
	Total       int           `json:"total"`
	Placeholder string        `json:"placeholder,omitempty"`
}

type SubjectResponse struct {
	Subject string  `json:"subject"`
	Hours   string  `json:"hours"`
	Percent float64 `json:"percent"`
	Share   string  `json:"share"`
}

type StatsResponse struct {
	SelfStudyHours string            `json:"self_study_hours"`
	CoachingHours  string            `json:"coaching_hours"`
	TotalHours     string            `json:"total_hours"`
	GoalHours      int               `json:"goal_hours"`
	GoalPercent    float64           `json:"goal_percent"`
	Subjects       []SubjectResponse `json:"subjects"`
	Placeholder    string            `json:"placeholder,omitempty"`
}

type TopicResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type SyllabusResponse struct {
	Topics    []TopicResponse `json:"topics"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Percent   int             `json:"percent"`
}

type ChangeResponse struct {
	Changed bool           `json:"changed"`
	Topic   *TopicResponse `json:"topic,omitempty"`
}

func stringArg(arguments map[string]interface{}, name string) string {
	v, _ := arguments[name].(string)
	return strings.TrimSpace(v)
}

// parseLimit returns defaultVal when absent and caps at maxVal.
func parseLimit(arguments map[string]interface{}, defaultVal, maxVal int) int {
	if l, ok := arguments["limit"].(float64); ok && l > 0 {
		return min(int(l), maxVal)
	}
	return defaultVal
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleTimerStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := stringArg(req.Params.Arguments, "mode")
	if mode == "" {
		return mcp.NewToolResultError("mode parameter is required"), nil
	}
	out, err := s.timer.StartDetached(ctx, mode)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
	}
	resp := TimerResponse{Running: true, Started: out.Started, Mode: out.Mode, StatusText: out.StatusText}
	if !out.StartedAt.IsZero() {
		at := out.StartedAt
		resp.StartedAt = &at
	}
	return jsonResult(resp)
}

func (s *Server) handleTimerStop(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.timer.StopDetached(ctx, stringArg(req.Params.Arguments, "subject"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stop failed: %v", err)), nil
	}
	resp := StopResponse{WasRunning: out.WasRunning, Seconds: out.Seconds, Committed: out.Committed}
	if out.Committed {
		resp.Log = &LogResponse{
			ID: out.Log.ID, Date: out.Log.Date, Duration: out.Log.Duration,
			Minutes: out.Log.Minutes, Type: out.Log.Type, Subject: out.Log.Subject,
		}
	}
	return jsonResult(resp)
}

func (s *Server) handleTimerStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.timer.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status failed: %v", err)), nil
	}
	resp := TimerResponse{Running: out.Running, Mode: out.Mode, Seconds: out.Seconds, Clock: out.Clock, StatusText: out.StatusText}
	if !out.StartedAt.IsZero() {
		at := out.StartedAt
		resp.StartedAt = &at
	}
	return jsonResult(resp)
}

func (s *Server) handleRecentLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.ledger.Recent(ctx, parseLimit(req.Params.Arguments, 0, maxRecentLimit))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read logs: %v", err)), nil
	}
	resp := RecentResponse{Logs: make([]LogResponse, 0, len(out.Logs)), Total: out.Total}
	if out.Empty {
		resp.Placeholder = ledgerdto.EmptyPlaceholder
	}
	for _, log := range out.Logs {
		resp.Logs = append(resp.Logs, LogResponse{
			ID: log.ID, Date: log.Date, Duration: log.Duration,
			Minutes: log.Minutes, Type: log.Type, Subject: log.Subject,
		})
	}
	return jsonResult(resp)
}

func (s *Server) handleStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.stats.Summary(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute stats: %v", err)), nil
	}
	resp := StatsResponse{
		SelfStudyHours: out.SelfHours,
		CoachingHours:  out.CoachHours,
		TotalHours:     out.TotalHours,
		GoalHours:      out.GoalHours,
		GoalPercent:    out.GoalPercent,
		Subjects:       make([]SubjectResponse, 0, len(out.Subjects)),
	}
	if out.Empty {
		resp.Placeholder = statsdto.EmptyPlaceholder
	}
	for _, sub := range out.Subjects {
		resp.Subjects = append(resp.Subjects, SubjectResponse{
			Subject: sub.Subject, Hours: sub.Hours, Percent: sub.Percent, Share: sub.PercentText,
		})
	}
	return jsonResult(resp)
}

func (s *Server) handleSyllabusList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.syllabus.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list syllabus: %v", err)), nil
	}
	resp := SyllabusResponse{Topics: make([]TopicResponse, 0, len(out.Items)), Completed: out.Completed, Total: out.Total, Percent: out.Percent}
	for _, item := range out.Items {
		resp.Topics = append(resp.Topics, topicResponse(item))
	}
	return jsonResult(resp)
}

func (s *Server) handleSyllabusAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := stringArg(req.Params.Arguments, "text")
	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	out, err := s.syllabus.Add(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("add failed: %v", err)), nil
	}
	return changeResult(out.Created, out.Item)
}

func (s *Server) handleSyllabusToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req.Params.Arguments, "id")
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	out, err := s.syllabus.Toggle(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("toggle failed: %v", err)), nil
	}
	return changeResult(out.Found, out.Item)
}

func (s *Server) handleSyllabusRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req.Params.Arguments, "id")
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	out, err := s.syllabus.Remove(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("remove failed: %v", err)), nil
	}
	return changeResult(out.Found, out.Item)
}

func changeResult(changed bool, item syllabusdto.ItemOutput) (*mcp.CallToolResult, error) {
	resp := ChangeResponse{Changed: changed}
	if changed {
		t := topicResponse(item)
		resp.Topic = &t
	}
	return jsonResult(resp)
}

func topicResponse(item syllabusdto.ItemOutput) TopicResponse {
	return TopicResponse{ID: item.ID, Text: item.Text, Done: item.Done}
}

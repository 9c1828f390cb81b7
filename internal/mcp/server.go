// Package mcp exposes studypro over the Model Context Protocol so assistants
// can run the timer, read the log and edit the syllabus. Clear-all is not
// exposed.
package mcp

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	ledgerdto "studypro/internal/modules/ledger/dto"
	statsdto "studypro/internal/modules/stats/dto"
	syllabusdto "studypro/internal/modules/syllabus/dto"
	timerdto "studypro/internal/modules/timer/dto"
)

type TimerPort interface {
	StartDetached(ctx context.Context, mode string) (timerdto.StartOutput, error)
	StopDetached(ctx context.Context, subject string) (timerdto.StopOutput, error)
	Status(ctx context.Context) (timerdto.StatusOutput, error)
}

type LedgerPort interface {
	Recent(ctx context.Context, n int) (ledgerdto.RecentOutput, error)
}

type SyllabusPort interface {
	Add(ctx context.Context, text string) (syllabusdto.AddOutput, error)
	Toggle(ctx context.Context, id string) (syllabusdto.ChangeOutput, error)
	Remove(ctx context.Context, id string) (syllabusdto.ChangeOutput, error)
	List(ctx context.Context) (syllabusdto.ListOutput, error)
}

type StatsPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
}

type Server struct {
	timer    TimerPort
	ledger   LedgerPort
	syllabus SyllabusPort
	stats    StatsPort
	server   *server.MCPServer
}

func NewServer(version string, timer TimerPort, ledger LedgerPort, syllabus SyllabusPort, stats StatsPort) *Server {
	s := &Server{timer: timer, ledger: ledger, syllabus: syllabus, stats: stats}
	s.server = server.NewMCPServer(
		"studypro",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Serve speaks MCP over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.ServeIO(ctx, os.Stdin, os.Stdout)
}

// ServeIO speaks MCP over the given streams. Cancelling ctx is a clean shutdown.
func (s *Server) ServeIO(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.server)
	stdio.SetErrorLogger(log.Default())
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) registerTools() {
	s.server.AddTool(timerStartTool(), s.handleTimerStart)
	s.server.AddTool(timerStopTool(), s.handleTimerStop)
	s.server.AddTool(timerStatusTool(), s.handleTimerStatus)
	s.server.AddTool(recentLogsTool(), s.handleRecentLogs)
	s.server.AddTool(statsTool(), s.handleStats)
	s.server.AddTool(syllabusListTool(), s.handleSyllabusList)
	s.server.AddTool(syllabusAddTool(), s.handleSyllabusAdd)
	s.server.AddTool(syllabusToggleTool(), s.handleSyllabusToggle)
	s.server.AddTool(syllabusRemoveTool(), s.handleSyllabusRemove)
}

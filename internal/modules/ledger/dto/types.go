package dto

import "time"

// EmptyPlaceholder is shown instead of an empty recent-activity table.
const EmptyPlaceholder = "No activity recorded yet. Start a session!"

// Session type values carried in LogOutput.Type.
const (
	TypeSelfStudy = "self-study"
	TypeCoaching  = "coaching"
)

type AppendInput struct {
	ID       string
	Date     time.Time
	Duration int
	Type     string
	Subject  string
}

type LogOutput struct {
	ID       string
	Date     time.Time
	Duration int
	Minutes  int
	Type     string
	Subject  string
}

type RecentOutput struct {
	Logs  []LogOutput
	Total int
	Empty bool
}

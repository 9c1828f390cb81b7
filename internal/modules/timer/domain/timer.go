package domain

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeSelfStudy Mode = "self-study"
	ModeCoaching  Mode = "coaching"
)

const IdleStatus = "Select a mode to begin"

func (m Mode) Validate() error {
	switch m {
	case ModeSelfStudy, ModeCoaching:
		return nil
	default:
		return fmt.Errorf("unsupported timer mode %q", string(m))
	}
}

// StatusText is the banner shown while a timer in this mode runs.
func (m Mode) StatusText() string {
	if m == ModeCoaching {
		return "Recording Coaching Session..."
	}
	return "Focus Mode Active"
}

// State is the stopwatch. The zero value is idle.
type State struct {
	Seconds   int
	IsRunning bool
	Mode      Mode
}

type Stopped struct {
	WasRunning bool
	Seconds    int
	Mode       Mode
}

// Start reports false and leaves s untouched when already running.
func (s *State) Start(mode Mode) bool {
	if s.IsRunning {
		return false
	}
	s.IsRunning = true
	s.Mode = mode
	return true
}

func (s *State) Tick() bool {
	if !s.IsRunning {
		return false
	}
	s.Seconds++
	return true
}

// Stop captures the elapsed seconds and resets the counter, running or not.
func (s *State) Stop() Stopped {
	out := Stopped{WasRunning: s.IsRunning, Seconds: s.Seconds, Mode: s.Mode}
	s.IsRunning = false
	s.Seconds = 0
	return out
}

// ShouldCommit reports whether a stopped session is long enough to be logged.
func ShouldCommit(seconds int) bool {
	return seconds > 1
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// ActiveTimer is the shared record of the one running timer. Every process
// claims it before starting, so at most one timer runs per data dir.
type ActiveTimer struct {
	ID        string    `json:"id,omitempty"`
	Mode      Mode      `json:"mode"`
	StartedAt time.Time `json:"started_at"`
}

// ElapsedSeconds is the whole number of seconds from start to now, never negative.
func ElapsedSeconds(start, now time.Time) int {
	secs := int(now.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

type CompletedSession struct {
	ID      string
	EndedAt time.Time
	Seconds int
	Mode    Mode
	Subject string
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

type SessionType string

const (
	SessionTypeSelfStudy SessionType = "self-study"
	SessionTypeCoaching  SessionType = "coaching"
)

const (
	// RecordKey is the storage key of the log collection.
	RecordKey = "study_pro_logs"
	// MinDuration is the shortest session, in seconds, that is ever recorded.
	MinDuration = 2
)

// SessionLog is immutable once created.
type SessionLog struct {
	ID       string      `json:"id"`
	Date     time.Time   `json:"date"`
	Duration int         `json:"duration"`
	Type     SessionType `json:"type"`
	Subject  string      `json:"subject"`
}

func (t SessionType) Validate() error {
	switch t {
	case SessionTypeSelfStudy, SessionTypeCoaching:
		return nil
	default:
		return fmt.Errorf("unsupported session type %q", string(t))
	}
}

func (l SessionLog) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if err := l.Type.Validate(); err != nil {
		return err
	}
	if l.Duration < MinDuration {
		return fmt.Errorf("duration %ds is below the %ds minimum", l.Duration, MinDuration)
	}
	return nil
}

// Prepend returns a new slice with log in front; the ledger is newest-first.
func Prepend(logs []SessionLog, log SessionLog) []SessionLog {
	out := make([]SessionLog, 0, len(logs)+1)
	out = append(out, log)
	return append(out, logs...)
}

// Recent returns at most n entries from the front of logs.
func Recent(logs []SessionLog, n int) []SessionLog {
	if n < 0 {
		n = 0
	}
	if n > len(logs) {
		n = len(logs)
	}
	out := make([]SessionLog, n)
	copy(out, logs[:n])
	return out
}

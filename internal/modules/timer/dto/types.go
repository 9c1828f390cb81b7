package dto

import (
	"time"

	ledgerdto "studypro/internal/modules/ledger/dto"
)

type StartInput struct {
	Mode string
}

type StartOutput struct {
	Started    bool
	Mode       string
	StatusText string
	StartedAt  time.Time
}

type StopInput struct {
	Subject string
}

type StopOutput struct {
	WasRunning bool
	Seconds    int
	Committed  bool
	Log        ledgerdto.LogOutput
}

type StatusOutput struct {
	Running    bool
	Detached   bool
	Mode       string
	Seconds    int
	Clock      string
	StatusText string
	StartedAt  time.Time
}

package usecase

import (
	"context"

	"studypro/internal/modules/ledger/domain"
	"studypro/internal/modules/ledger/dto"
	ledgerin "studypro/internal/modules/ledger/port/in"
	"studypro/internal/modules/ledger/service"
)

type Interactor struct {
	svc         *service.LedgerService
	recentLimit int
}

// NewInteractor wires the ledger. recentLimit is used by Recent when the caller passes n <= 0.
func NewInteractor(svc *service.LedgerService, recentLimit int) ledgerin.Usecase {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &Interactor{svc: svc, recentLimit: recentLimit}
}

func (i *Interactor) Append(ctx context.Context, input dto.AppendInput) (dto.LogOutput, error) {
	log, err := i.svc.Append(ctx, domain.SessionLog{
		ID:       input.ID,
		Date:     input.Date,
		Duration: input.Duration,
		Type:     domain.SessionType(input.Type),
		Subject:  input.Subject,
	})
	if err != nil {
		return dto.LogOutput{}, err
	}
	return toOutput(log), nil
}

func (i *Interactor) Recent(ctx context.Context, n int) (dto.RecentOutput, error) {
	if n <= 0 {
		n = i.recentLimit
	}
	logs, total, err := i.svc.Recent(ctx, n)
	if err != nil {
		return dto.RecentOutput{}, err
	}
	out := dto.RecentOutput{Logs: make([]dto.LogOutput, 0, len(logs)), Total: total, Empty: total == 0}
	for _, log := range logs {
		out.Logs = append(out.Logs, toOutput(log))
	}
	return out, nil
}

func (i *Interactor) All(ctx context.Context) ([]dto.LogOutput, error) {
	logs, err := i.svc.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LogOutput, 0, len(logs))
	for _, log := range logs {
		out = append(out, toOutput(log))
	}
	return out, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func toOutput(log domain.SessionLog) dto.LogOutput {
	return dto.LogOutput{
		ID:       log.ID,
		Date:     log.Date,
		Duration: log.Duration,
		Minutes:  log.Duration / 60,
		Type:     string(log.Type),
		Subject:  log.Subject,
	}
}

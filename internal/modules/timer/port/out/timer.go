package out

import (
	"context"

	ledgerdto "studypro/internal/modules/ledger/dto"
	"studypro/internal/modules/timer/domain"
)

type LedgerWriter interface {
	Append(ctx context.Context, input ledgerdto.AppendInput) (ledgerdto.LogOutput, error)
}

type ActiveTimerStore interface {
	// ClaimActive records active unless a timer is already recorded, in which
	// case it returns the existing record and false.
	ClaimActive(ctx context.Context, active domain.ActiveTimer) (domain.ActiveTimer, bool, error)
	// LoadActive returns apperrors.ErrNoActiveTimer when nothing is running.
	LoadActive(ctx context.Context) (domain.ActiveTimer, error)
	ClearActive(ctx context.Context) error
}

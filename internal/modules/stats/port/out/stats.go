package out

import (
	"context"

	ledgerdto "studypro/internal/modules/ledger/dto"
)

// LogSource exposes the full ledger, newest-first.
type LogSource interface {
	All(ctx context.Context) ([]ledgerdto.LogOutput, error)
}

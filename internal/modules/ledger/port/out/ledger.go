package out

import (
	"context"

	"studypro/internal/modules/ledger/domain"
)

type LogStore interface {
	// Load returns an empty slice when nothing has been stored yet.
	Load(ctx context.Context) ([]domain.SessionLog, error)
	// Update applies fn to the stored ledger and writes the result in one
	// atomic step, returning what was written.
	Update(ctx context.Context, fn func([]domain.SessionLog) ([]domain.SessionLog, error)) ([]domain.SessionLog, error)
	// Remove deletes the record from storage rather than writing an empty list.
	Remove(ctx context.Context) error
}

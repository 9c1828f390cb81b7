package in

import (
	"context"

	"studypro/internal/modules/ledger/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) (dto.LogOutput, error)
	Recent(ctx context.Context, n int) (dto.RecentOutput, error)
	All(ctx context.Context) ([]dto.LogOutput, error)
	Clear(ctx context.Context) error
}

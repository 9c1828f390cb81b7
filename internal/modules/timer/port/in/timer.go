package in

import (
	"context"

	"studypro/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	StartDetached(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	StopDetached(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
	// Clear discards any running timer without logging it.
	Clear(ctx context.Context) error
}

package in

import (
	"context"

	"studypro/internal/modules/syllabus/dto"
)

type Usecase interface {
	Add(ctx context.Context, text string) (dto.AddOutput, error)
	Toggle(ctx context.Context, id string) (dto.ChangeOutput, error)
	Remove(ctx context.Context, id string) (dto.ChangeOutput, error)
	List(ctx context.Context) (dto.ListOutput, error)
	Clear(ctx context.Context) error
}

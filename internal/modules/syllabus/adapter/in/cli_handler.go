package in

import (
	"context"

	"studypro/internal/modules/syllabus/dto"
	syllabusin "studypro/internal/modules/syllabus/port/in"
)

type CLIHandler struct {
	usecase syllabusin.Usecase
}

func NewCLIHandler(usecase syllabusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, text string) (dto.AddOutput, error) {
	return h.usecase.Add(ctx, text)
}

func (h CLIHandler) Toggle(ctx context.Context, id string) (dto.ChangeOutput, error) {
	return h.usecase.Toggle(ctx, id)
}

func (h CLIHandler) Remove(ctx context.Context, id string) (dto.ChangeOutput, error) {
	return h.usecase.Remove(ctx, id)
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx)
}

package in

import (
	"context"

	"studypro/internal/modules/timer/dto"
	timerin "studypro/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, mode string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Mode: mode})
}

func (h CLIHandler) Stop(ctx context.Context, subject string) (dto.StopOutput, error) {
	return h.usecase.Stop(ctx, dto.StopInput{Subject: subject})
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) StartDetached(ctx context.Context, mode string) (dto.StartOutput, error) {
	return h.usecase.StartDetached(ctx, dto.StartInput{Mode: mode})
}

func (h CLIHandler) StopDetached(ctx context.Context, subject string) (dto.StopOutput, error) {
	return h.usecase.StopDetached(ctx, dto.StopInput{Subject: subject})
}

package in

import (
	"context"

	"studypro/internal/modules/ledger/dto"
	ledgerin "studypro/internal/modules/ledger/port/in"
)

type CLIHandler struct {
	usecase ledgerin.Usecase
}

func NewCLIHandler(usecase ledgerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Recent(ctx context.Context, n int) (dto.RecentOutput, error) {
	return h.usecase.Recent(ctx, n)
}

func (h CLIHandler) All(ctx context.Context) ([]dto.LogOutput, error) {
	return h.usecase.All(ctx)
}

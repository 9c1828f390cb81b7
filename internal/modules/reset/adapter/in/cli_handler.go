package in

import (
	"context"

	"studypro/internal/modules/reset/dto"
	resetin "studypro/internal/modules/reset/port/in"
)

type CLIHandler struct {
	usecase resetin.Usecase
}

func NewCLIHandler(usecase resetin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// ClearAll prompts on the terminal unless assumeYes is set.
func (h CLIHandler) ClearAll(ctx context.Context, assumeYes bool) (dto.ClearOutput, error) {
	var confirmer resetin.Confirmer = Prompter{}
	if assumeYes {
		confirmer = Assume(true)
	}
	return h.usecase.ClearAll(ctx, confirmer)
}

// ClearWith uses a caller-supplied confirmer, such as a TUI dialog that already asked.
func (h CLIHandler) ClearWith(ctx context.Context, confirmer resetin.Confirmer) (dto.ClearOutput, error) {
	return h.usecase.ClearAll(ctx, confirmer)
}

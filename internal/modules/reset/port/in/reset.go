package in

import (
	"context"

	"studypro/internal/modules/reset/dto"
)

// Confirmer is asked before anything is deleted. Callers supply it per call.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type Usecase interface {
	// ClearAll wipes every record once confirmer agrees. A refusal changes nothing.
	ClearAll(ctx context.Context, confirmer Confirmer) (dto.ClearOutput, error)
}

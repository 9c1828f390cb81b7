package in

import (
	"context"

	"studypro/internal/modules/stats/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
}

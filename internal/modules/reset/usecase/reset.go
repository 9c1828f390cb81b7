package usecase

import (
	"context"
	"fmt"

	"studypro/internal/modules/reset/domain"
	"studypro/internal/modules/reset/dto"
	resetin "studypro/internal/modules/reset/port/in"
	resetout "studypro/internal/modules/reset/port/out"
	"studypro/internal/platform/logging"
	"studypro/internal/platform/notify"
)

type Interactor struct {
	targets   []resetout.Target
	publisher notify.Publisher
}

func NewInteractor(publisher notify.Publisher, targets ...resetout.Target) resetin.Usecase {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &Interactor{targets: targets, publisher: publisher}
}

func (i *Interactor) ClearAll(ctx context.Context, confirmer resetin.Confirmer) (dto.ClearOutput, error) {
	if confirmer == nil {
		return dto.ClearOutput{}, fmt.Errorf("clear all: no confirmer")
	}
	ok, err := confirmer.Confirm(ctx, domain.ConfirmPrompt)
	if err != nil {
		return dto.ClearOutput{}, fmt.Errorf("confirm clear: %w", err)
	}
	if !ok {
		return dto.ClearOutput{}, nil
	}
	out := dto.ClearOutput{Cleared: true}
	for _, target := range i.targets {
		if err := target.Clearer.Clear(ctx); err != nil {
			return dto.ClearOutput{}, fmt.Errorf("clear %s: %w", target.Name, err)
		}
		out.Targets = append(out.Targets, target.Name)
	}
	logging.Printf("reset: cleared %v", out.Targets)
	i.publisher.Publish(notify.TopicReset)
	return out, nil
}

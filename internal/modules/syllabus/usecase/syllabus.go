package usecase

import (
	"context"

	"studypro/internal/modules/syllabus/domain"
	"studypro/internal/modules/syllabus/dto"
	syllabusin "studypro/internal/modules/syllabus/port/in"
	"studypro/internal/modules/syllabus/service"
)

type Interactor struct {
	svc *service.SyllabusService
}

func NewInteractor(svc *service.SyllabusService) syllabusin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, text string) (dto.AddOutput, error) {
	item, created, err := i.svc.Add(ctx, text)
	if err != nil {
		return dto.AddOutput{}, err
	}
	return dto.AddOutput{Created: created, Item: toOutput(item)}, nil
}

func (i *Interactor) Toggle(ctx context.Context, id string) (dto.ChangeOutput, error) {
	item, found, err := i.svc.Toggle(ctx, id)
	if err != nil {
		return dto.ChangeOutput{}, err
	}
	return dto.ChangeOutput{Found: found, Item: toOutput(item)}, nil
}

func (i *Interactor) Remove(ctx context.Context, id string) (dto.ChangeOutput, error) {
	item, found, err := i.svc.Remove(ctx, id)
	if err != nil {
		return dto.ChangeOutput{}, err
	}
	return dto.ChangeOutput{Found: found, Item: toOutput(item)}, nil
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{
		Items:     make([]dto.ItemOutput, 0, len(items)),
		Completed: domain.Completed(items),
		Total:     len(items),
		Percent:   domain.Progress(items),
	}
	for _, item := range items {
		out.Items = append(out.Items, toOutput(item))
	}
	return out, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func toOutput(item domain.Item) dto.ItemOutput {
	return dto.ItemOutput{ID: item.ID, Text: item.Text, Done: item.Done}
}

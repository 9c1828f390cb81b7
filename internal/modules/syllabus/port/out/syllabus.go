package out

import (
	"context"

	"studypro/internal/modules/syllabus/domain"
)

type ItemStore interface {
	Load(ctx context.Context) ([]domain.Item, error)
	// Update applies fn to the stored list and writes the result atomically.
	// An error from fn aborts without writing.
	Update(ctx context.Context, fn func([]domain.Item) ([]domain.Item, error)) ([]domain.Item, error)
	Remove(ctx context.Context) error
}

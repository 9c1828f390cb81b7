package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"studypro/internal/modules/syllabus/domain"
	syllabusout "studypro/internal/modules/syllabus/port/out"
	apperrors "studypro/internal/platform/errors"
	"studypro/internal/platform/kv"
	"studypro/internal/platform/logging"
)

type RecordItemStore struct {
	kv kv.Store
}

func NewRecordItemStore(store kv.Store) syllabusout.ItemStore {
	return &RecordItemStore{kv: store}
}

func (s *RecordItemStore) Load(ctx context.Context) ([]domain.Item, error) {
	payload, err := s.kv.Get(ctx, domain.RecordKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.Item{}, nil
		}
		return nil, err
	}
	return decodeItems(payload)
}

func (s *RecordItemStore) Update(ctx context.Context, fn func([]domain.Item) ([]domain.Item, error)) ([]domain.Item, error) {
	var written []domain.Item
	err := s.kv.Update(ctx, domain.RecordKey, func(current []byte) ([]byte, error) {
		items := []domain.Item{}
		if current != nil {
			decoded, err := decodeItems(current)
			if err != nil {
				logging.Errorf("syllabus: %v; overwriting", err)
			} else {
				items = decoded
			}
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []domain.Item{}
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("marshal syllabus: %w", err)
		}
		written = next
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

func decodeItems(payload []byte) ([]domain.Item, error) {
	items := []domain.Item{}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode syllabus: %w: %v", apperrors.ErrCorruptRecord, err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

func (s *RecordItemStore) Remove(ctx context.Context) error {
	return s.kv.Delete(ctx, domain.RecordKey)
}

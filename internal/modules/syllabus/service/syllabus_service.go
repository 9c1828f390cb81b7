package service

import (
	"context"
	"errors"
	"sync"

	"studypro/internal/modules/syllabus/domain"
	syllabusout "studypro/internal/modules/syllabus/port/out"
	apperrors "studypro/internal/platform/errors"
	"studypro/internal/platform/id"
	"studypro/internal/platform/logging"
	"studypro/internal/platform/notify"
)

// errNoItem aborts a store update when the target id is not in the list.
var errNoItem = errors.New("syllabus: no such item")

// SyllabusService caches the stored list. Reads refresh it from the store and
// every mutation is applied to the current record in one store update.
type SyllabusService struct {
	idGen     id.Generator
	store     syllabusout.ItemStore
	publisher notify.Publisher

	mu    sync.Mutex
	items []domain.Item
}

func NewSyllabusService(idGen id.Generator, store syllabusout.ItemStore, publisher notify.Publisher) *SyllabusService {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &SyllabusService{idGen: idGen, store: store, publisher: publisher}
}

func (s *SyllabusService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *SyllabusService) loadLocked(ctx context.Context) error {
	items, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptRecord) {
			return err
		}
		logging.Errorf("syllabus: %v; starting with an empty syllabus", err)
		items = []domain.Item{}
	}
	s.items = items
	return nil
}

// updateLocked applies fn to the stored list and caches what was written.
func (s *SyllabusService) updateLocked(ctx context.Context, fn func([]domain.Item) ([]domain.Item, error)) error {
	next, err := s.store.Update(ctx, fn)
	if err != nil {
		return err
	}
	s.items = next
	return nil
}

// Add appends a new undone item. Blank text is ignored and reported as not created.
func (s *SyllabusService) Add(ctx context.Context, text string) (domain.Item, bool, error) {
	text, ok := domain.NormalizeText(text)
	if !ok {
		return domain.Item{}, false, nil
	}
	item := domain.Item{ID: s.idGen.New(), Text: text}
	s.mu.Lock()
	err := s.updateLocked(ctx, func(current []domain.Item) ([]domain.Item, error) {
		next := make([]domain.Item, 0, len(current)+1)
		next = append(next, current...)
		return append(next, item), nil
	})
	s.mu.Unlock()
	if err != nil {
		return domain.Item{}, false, err
	}

	s.publisher.Publish(notify.TopicSyllabus)
	return item, true, nil
}

// Toggle flips the done flag. An unknown id is a silent no-op with no write.
func (s *SyllabusService) Toggle(ctx context.Context, itemID string) (domain.Item, bool, error) {
	var item domain.Item
	s.mu.Lock()
	err := s.updateLocked(ctx, func(current []domain.Item) ([]domain.Item, error) {
		idx := indexOf(current, itemID)
		if idx < 0 {
			return nil, errNoItem
		}
		next := make([]domain.Item, len(current))
		copy(next, current)
		next[idx].Done = !next[idx].Done
		item = next[idx]
		return next, nil
	})
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, errNoItem) {
			return domain.Item{}, false, nil
		}
		return domain.Item{}, false, err
	}

	s.publisher.Publish(notify.TopicSyllabus)
	return item, true, nil
}

func (s *SyllabusService) Remove(ctx context.Context, itemID string) (domain.Item, bool, error) {
	var removed domain.Item
	s.mu.Lock()
	err := s.updateLocked(ctx, func(current []domain.Item) ([]domain.Item, error) {
		idx := indexOf(current, itemID)
		if idx < 0 {
			return nil, errNoItem
		}
		removed = current[idx]
		next := make([]domain.Item, 0, len(current)-1)
		next = append(next, current[:idx]...)
		return append(next, current[idx+1:]...), nil
	})
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, errNoItem) {
			return domain.Item{}, false, nil
		}
		return domain.Item{}, false, err
	}

	s.publisher.Publish(notify.TopicSyllabus)
	return removed, true, nil
}

func (s *SyllabusService) List(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *SyllabusService) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Remove(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = []domain.Item{}
	s.mu.Unlock()

	logging.Printf("syllabus: cleared")
	s.publisher.Publish(notify.TopicSyllabus)
	return nil
}

func indexOf(items []domain.Item, itemID string) int {
	for i, item := range items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

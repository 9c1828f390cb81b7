package service

import (
	"context"
	"errors"
	"sync"

	"studypro/internal/modules/ledger/domain"
	ledgerout "studypro/internal/modules/ledger/port/out"
	apperrors "studypro/internal/platform/errors"
	"studypro/internal/platform/logging"
	"studypro/internal/platform/notify"
)

// LedgerService caches the stored log collection. Other processes share the
// store, so reads refresh the cache and mutations run as a store update
// against the current record before the cache is replaced.
type LedgerService struct {
	store     ledgerout.LogStore
	publisher notify.Publisher

	mu   sync.Mutex
	logs []domain.SessionLog
}

func NewLedgerService(store ledgerout.LogStore, publisher notify.Publisher) *LedgerService {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &LedgerService{store: store, publisher: publisher}
}

// Load reads the stored ledger. A corrupt record is treated as an empty ledger.
func (s *LedgerService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *LedgerService) loadLocked(ctx context.Context) error {
	logs, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptRecord) {
			return err
		}
		logging.Errorf("ledger: %v; starting with an empty ledger", err)
		logs = []domain.SessionLog{}
	}
	s.logs = logs
	return nil
}

func (s *LedgerService) Append(ctx context.Context, log domain.SessionLog) (domain.SessionLog, error) {
	if err := log.Validate(); err != nil {
		return domain.SessionLog{}, errors.Join(apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	next, err := s.store.Update(ctx, func(current []domain.SessionLog) ([]domain.SessionLog, error) {
		return domain.Prepend(current, log), nil
	})
	if err != nil {
		s.mu.Unlock()
		return domain.SessionLog{}, err
	}
	s.logs = next
	s.mu.Unlock()

	logging.Printf("ledger: appended %s %ds %s", log.Type, log.Duration, log.Subject)
	s.publisher.Publish(notify.TopicLedger)
	s.publisher.Publish(notify.TopicStats)
	return log, nil
}

func (s *LedgerService) Recent(ctx context.Context, n int) ([]domain.SessionLog, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, 0, err
	}
	return domain.Recent(s.logs, n), len(s.logs), nil
}

func (s *LedgerService) All(ctx context.Context) ([]domain.SessionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return domain.Recent(s.logs, len(s.logs)), nil
}

func (s *LedgerService) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Remove(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.logs = []domain.SessionLog{}
	s.mu.Unlock()

	logging.Printf("ledger: cleared")
	s.publisher.Publish(notify.TopicLedger)
	s.publisher.Publish(notify.TopicStats)
	return nil
}

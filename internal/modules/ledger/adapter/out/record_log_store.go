package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"studypro/internal/modules/ledger/domain"
	ledgerout "studypro/internal/modules/ledger/port/out"
	apperrors "studypro/internal/platform/errors"
	"studypro/internal/platform/kv"
	"studypro/internal/platform/logging"
)

// RecordLogStore keeps the whole ledger as one JSON array under domain.RecordKey.
type RecordLogStore struct {
	kv kv.Store
}

func NewRecordLogStore(store kv.Store) ledgerout.LogStore {
	return &RecordLogStore{kv: store}
}

func (s *RecordLogStore) Load(ctx context.Context) ([]domain.SessionLog, error) {
	payload, err := s.kv.Get(ctx, domain.RecordKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.SessionLog{}, nil
		}
		return nil, err
	}
	return decodeLogs(payload)
}

// Update replaces a corrupt stored record rather than failing on it.
func (s *RecordLogStore) Update(ctx context.Context, fn func([]domain.SessionLog) ([]domain.SessionLog, error)) ([]domain.SessionLog, error) {
	var written []domain.SessionLog
	err := s.kv.Update(ctx, domain.RecordKey, func(current []byte) ([]byte, error) {
		logs := []domain.SessionLog{}
		if current != nil {
			decoded, err := decodeLogs(current)
			if err != nil {
				logging.Errorf("ledger: %v; overwriting", err)
			} else {
				logs = decoded
			}
		}
		next, err := fn(logs)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []domain.SessionLog{}
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("marshal logs: %w", err)
		}
		written = next
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

func decodeLogs(payload []byte) ([]domain.SessionLog, error) {
	logs := []domain.SessionLog{}
	if err := json.Unmarshal(payload, &logs); err != nil {
		return nil, fmt.Errorf("decode logs: %w: %v", apperrors.ErrCorruptRecord, err)
	}
	if logs == nil {
		logs = []domain.SessionLog{}
	}
	return logs, nil
}

func (s *RecordLogStore) Remove(ctx context.Context) error {
	return s.kv.Delete(ctx, domain.RecordKey)
}

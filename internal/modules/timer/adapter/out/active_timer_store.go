package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"studypro/internal/modules/timer/domain"
	timerout "studypro/internal/modules/timer/port/out"
	apperrors "studypro/internal/platform/errors"
)

type FileActiveTimerStore struct {
	path string
}

func NewFileActiveTimerStore(path string) timerout.ActiveTimerStore {
	return &FileActiveTimerStore{path: path}
}

// claimAttempts bounds retries when the existing record vanishes or is unreadable.
const claimAttempts = 3

// ClaimActive writes the record to a temp file and hard-links it into place,
// which fails when another process already holds the record.
func (s *FileActiveTimerStore) ClaimActive(ctx context.Context, active domain.ActiveTimer) (domain.ActiveTimer, bool, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.ActiveTimer{}, false, fmt.Errorf("create active timer dir: %w", err)
	}
	payload, err := json.MarshalIndent(active, "", "  ")
	if err != nil {
		return domain.ActiveTimer{}, false, fmt.Errorf("marshal active timer: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "active-timer.*.tmp")
	if err != nil {
		return domain.ActiveTimer{}, false, fmt.Errorf("create active timer: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return domain.ActiveTimer{}, false, fmt.Errorf("write active timer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.ActiveTimer{}, false, fmt.Errorf("close active timer: %w", err)
	}

	for range claimAttempts {
		err := os.Link(tmpPath, s.path)
		if err == nil {
			return active, true, nil
		}
		if !os.IsExist(err) {
			return domain.ActiveTimer{}, false, fmt.Errorf("claim active timer: %w", err)
		}
		existing, loadErr := s.LoadActive(ctx)
		if loadErr == nil {
			return existing, false, nil
		}
		if !errors.Is(loadErr, apperrors.ErrNoActiveTimer) {
			return domain.ActiveTimer{}, false, loadErr
		}
		// Unreadable leftovers do not block a new timer.
		if err := s.ClearActive(ctx); err != nil {
			return domain.ActiveTimer{}, false, err
		}
	}
	return domain.ActiveTimer{}, false, fmt.Errorf("claim active timer: record kept changing")
}

func (s *FileActiveTimerStore) LoadActive(_ context.Context) (domain.ActiveTimer, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveTimer{}, apperrors.ErrNoActiveTimer
		}
		return domain.ActiveTimer{}, fmt.Errorf("read active timer: %w", err)
	}
	active := domain.ActiveTimer{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveTimer{}, fmt.Errorf("decode active timer: %w: %v", apperrors.ErrNoActiveTimer, err)
	}
	if active.Mode.Validate() != nil || active.StartedAt.IsZero() {
		return domain.ActiveTimer{}, apperrors.ErrNoActiveTimer
	}
	return active, nil
}

func (s *FileActiveTimerStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active timer: %w", err)
	}
	return nil
}

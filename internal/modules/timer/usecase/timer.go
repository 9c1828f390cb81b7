package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	ledgerdto "studypro/internal/modules/ledger/dto"
	"studypro/internal/modules/timer/domain"
	"studypro/internal/modules/timer/dto"
	timerin "studypro/internal/modules/timer/port/in"
	timerout "studypro/internal/modules/timer/port/out"
	"studypro/internal/modules/timer/service"
	apperrors "studypro/internal/platform/errors"
	"studypro/internal/platform/logging"
)

// Interactor runs at most one timer per data dir. The in-process stopwatch and
// detached timers both hold the shared active record while they run.
type Interactor struct {
	svc            *service.TimerService
	ledger         timerout.LedgerWriter
	activeStore    timerout.ActiveTimerStore
	defaultSubject string

	mu sync.Mutex
	// owned is the id of the active record claimed by the in-process stopwatch.
	owned string
}

// NewInteractor wires the timer. defaultSubject is recorded when a stop names no subject.
func NewInteractor(svc *service.TimerService, ledger timerout.LedgerWriter, activeStore timerout.ActiveTimerStore, defaultSubject string) timerin.Usecase {
	return &Interactor{svc: svc, ledger: ledger, activeStore: activeStore, defaultSubject: defaultSubject}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	mode, err := parseMode(input.Mode)
	if err != nil {
		return dto.StartOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.syncLocked(ctx); err != nil {
		return dto.StartOutput{}, err
	}
	if state := i.svc.Status(); state.IsRunning {
		return dto.StartOutput{Started: false, Mode: string(state.Mode), StatusText: state.Mode.StatusText()}, nil
	}
	if i.activeStore != nil {
		claim := i.svc.NewActive(mode)
		existing, claimed, err := i.activeStore.ClaimActive(ctx, claim)
		if err != nil {
			return dto.StartOutput{}, err
		}
		if !claimed {
			return startOutput(false, existing), nil
		}
		i.owned = claim.ID
	}
	started := i.svc.Start(mode)
	state := i.svc.Status()
	return dto.StartOutput{Started: started, Mode: string(state.Mode), StatusText: state.Mode.StatusText()}, nil
}

// Stop ends the in-process stopwatch only; a timer held elsewhere is left running.
func (i *Interactor) Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stopInProcessLocked(ctx, input.Subject)
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.syncLocked(ctx); err != nil {
		return dto.StatusOutput{}, err
	}
	state := i.svc.Status()
	if state.IsRunning {
		return dto.StatusOutput{
			Running:    true,
			Mode:       string(state.Mode),
			Seconds:    state.Seconds,
			Clock:      domain.FormatClock(state.Seconds),
			StatusText: state.Mode.StatusText(),
		}, nil
	}
	active, ok, err := i.loadActive(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	if ok {
		secs := i.svc.Elapsed(active)
		return dto.StatusOutput{
			Running:    true,
			Detached:   true,
			Mode:       string(active.Mode),
			Seconds:    secs,
			Clock:      domain.FormatClock(secs),
			StatusText: active.Mode.StatusText(),
			StartedAt:  active.StartedAt,
		}, nil
	}
	return dto.StatusOutput{Clock: domain.FormatClock(0), StatusText: domain.IdleStatus}, nil
}

func (i *Interactor) StartDetached(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	mode, err := parseMode(input.Mode)
	if err != nil {
		return dto.StartOutput{}, err
	}
	if i.activeStore == nil {
		return dto.StartOutput{}, errors.New("active timer store is not configured")
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.syncLocked(ctx); err != nil {
		return dto.StartOutput{}, err
	}
	if state := i.svc.Status(); state.IsRunning {
		return dto.StartOutput{Started: false, Mode: string(state.Mode), StatusText: state.Mode.StatusText()}, nil
	}
	claim := i.svc.NewActive(mode)
	existing, claimed, err := i.activeStore.ClaimActive(ctx, claim)
	if err != nil {
		return dto.StartOutput{}, err
	}
	return startOutput(claimed, existing), nil
}

// StopDetached stops whichever timer holds the active record, including a
// stopwatch running in another process.
func (i *Interactor) StopDetached(ctx context.Context, input dto.StopInput) (dto.StopOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.svc.Status().IsRunning {
		return i.stopInProcessLocked(ctx, input.Subject)
	}
	active, ok, err := i.loadActive(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	if !ok {
		return dto.StopOutput{}, nil
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return dto.StopOutput{}, err
	}
	return i.commit(ctx, i.svc.StopActive(active), input.Subject)
}

func (i *Interactor) Clear(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.svc.Stop()
	i.owned = ""
	if i.activeStore == nil {
		return nil
	}
	return i.activeStore.ClearActive(ctx)
}

// stopInProcessLocked commits only while this process still holds the active
// record; otherwise another process already stopped and logged the session.
func (i *Interactor) stopInProcessLocked(ctx context.Context, subject string) (dto.StopOutput, error) {
	if !i.svc.Status().IsRunning {
		return dto.StopOutput{}, nil
	}
	held, err := i.holdsRecordLocked(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	stopped := i.svc.Stop()
	if held && i.activeStore != nil {
		if err := i.activeStore.ClearActive(ctx); err != nil {
			return dto.StopOutput{}, err
		}
	}
	i.owned = ""
	if !held {
		logging.Printf("timer: %s session was stopped by another process", stopped.Mode)
		return dto.StopOutput{WasRunning: stopped.WasRunning, Seconds: stopped.Seconds}, nil
	}
	return i.commit(ctx, stopped, subject)
}

// syncLocked resets the in-process stopwatch when its record was taken away.
func (i *Interactor) syncLocked(ctx context.Context) error {
	if !i.svc.Status().IsRunning {
		return nil
	}
	held, err := i.holdsRecordLocked(ctx)
	if err != nil || held {
		return err
	}
	stopped := i.svc.Stop()
	i.owned = ""
	logging.Printf("timer: %s session was stopped by another process after %ds", stopped.Mode, stopped.Seconds)
	return nil
}

func (i *Interactor) holdsRecordLocked(ctx context.Context) (bool, error) {
	if i.activeStore == nil {
		return true, nil
	}
	active, ok, err := i.loadActive(ctx)
	if err != nil {
		return false, err
	}
	return ok && active.ID == i.owned, nil
}

func startOutput(started bool, active domain.ActiveTimer) dto.StartOutput {
	return dto.StartOutput{Started: started, Mode: string(active.Mode), StatusText: active.Mode.StatusText(), StartedAt: active.StartedAt}
}

func (i *Interactor) commit(ctx context.Context, stopped domain.Stopped, subject string) (dto.StopOutput, error) {
	out := dto.StopOutput{WasRunning: stopped.WasRunning, Seconds: stopped.Seconds}
	session, ok := i.svc.Seal(stopped, i.subject(subject))
	if !ok {
		if stopped.WasRunning {
			logging.Printf("timer: discarded %ds %s session", stopped.Seconds, stopped.Mode)
		}
		return out, nil
	}
	if i.ledger == nil {
		return dto.StopOutput{}, errors.New("ledger is not configured")
	}
	log, err := i.ledger.Append(ctx, ledgerdto.AppendInput{
		ID:       session.ID,
		Date:     session.EndedAt,
		Duration: session.Seconds,
		Type:     string(session.Mode),
		Subject:  session.Subject,
	})
	if err != nil {
		return dto.StopOutput{}, err
	}
	out.Committed = true
	out.Log = log
	return out, nil
}

func (i *Interactor) loadActive(ctx context.Context) (domain.ActiveTimer, bool, error) {
	if i.activeStore == nil {
		return domain.ActiveTimer{}, false, nil
	}
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveTimer) {
			return domain.ActiveTimer{}, false, nil
		}
		return domain.ActiveTimer{}, false, err
	}
	return active, true, nil
}

func (i *Interactor) subject(subject string) string {
	if s := strings.TrimSpace(subject); s != "" {
		return s
	}
	return i.defaultSubject
}

func parseMode(raw string) (domain.Mode, error) {
	mode := domain.Mode(strings.TrimSpace(raw))
	if err := mode.Validate(); err != nil {
		return "", errors.Join(apperrors.ErrInvalidInput, err)
	}
	return mode, nil
}

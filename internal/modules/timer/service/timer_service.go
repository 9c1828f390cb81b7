package service

import (
	"context"
	"sync"
	"time"

	"studypro/internal/modules/timer/domain"
	"studypro/internal/platform/clock"
	"studypro/internal/platform/id"
	"studypro/internal/platform/notify"
)

// TickInterval is the stopwatch resolution.
const TickInterval = time.Second

// TimerService owns the in-process stopwatch. While running, one goroutine
// ticks it; Stop cancels that goroutine and waits for it to exit, so a
// stopped timer never advances again.
type TimerService struct {
	clock     clock.Clock
	idGen     id.Generator
	publisher notify.Publisher

	mu     sync.Mutex
	state  domain.State
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTimerService(clock clock.Clock, idGen id.Generator, publisher notify.Publisher) *TimerService {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &TimerService{clock: clock, idGen: idGen, publisher: publisher}
}

// Start begins ticking in mode. It returns false, changing nothing, if already running.
func (s *TimerService) Start(mode domain.Mode) bool {
	s.mu.Lock()
	if !s.state.Start(mode) {
		s.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ticker := s.clock.NewTicker(TickInterval)
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go s.run(ctx, ticker, done)
	s.publisher.Publish(notify.TopicTimer)
	return true
}

func (s *TimerService) run(ctx context.Context, ticker clock.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			s.Tick()
		}
	}
}

// Tick advances a running timer by one second.
func (s *TimerService) Tick() bool {
	s.mu.Lock()
	ok := s.state.Tick()
	s.mu.Unlock()
	if ok {
		s.publisher.Publish(notify.TopicTimer)
	}
	return ok
}

// Stop halts the timer and resets the counter. Calling it on an idle timer is
// harmless. Subscribers must not call Stop from inside a timer notification.
func (s *TimerService) Stop() domain.Stopped {
	s.mu.Lock()
	stopped := s.state.Stop()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	s.publisher.Publish(notify.TopicTimer)
	return stopped
}

func (s *TimerService) Status() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Seal turns a stopped timer into a loggable session. It reports false when the
// session is too short to keep.
func (s *TimerService) Seal(stopped domain.Stopped, subject string) (domain.CompletedSession, bool) {
	if !domain.ShouldCommit(stopped.Seconds) {
		return domain.CompletedSession{}, false
	}
	return domain.CompletedSession{
		ID:      s.idGen.New(),
		EndedAt: s.clock.Now(),
		Seconds: stopped.Seconds,
		Mode:    stopped.Mode,
		Subject: subject,
	}, true
}

func (s *TimerService) NewActive(mode domain.Mode) domain.ActiveTimer {
	return domain.ActiveTimer{ID: s.idGen.New(), Mode: mode, StartedAt: s.clock.Now()}
}

// StopActive measures a persisted timer against the clock.
func (s *TimerService) StopActive(active domain.ActiveTimer) domain.Stopped {
	return domain.Stopped{
		WasRunning: true,
		Seconds:    domain.ElapsedSeconds(active.StartedAt, s.clock.Now()),
		Mode:       active.Mode,
	}
}

func (s *TimerService) Elapsed(active domain.ActiveTimer) int {
	return domain.ElapsedSeconds(active.StartedAt, s.clock.Now())
}

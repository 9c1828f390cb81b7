package service_test

import (
	"sync"
	"testing"
	"time"

	"studypro/internal/modules/timer/domain"
	"studypro/internal/modules/timer/service"
	"studypro/internal/platform/clock"
	"studypro/internal/platform/notify"
)

type manualTicker struct {
	ch      chan time.Time
	once    sync.Once
	stopped chan struct{}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() { m.once.Do(func() { close(m.stopped) }) }

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) NewTicker(time.Duration) clock.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *fakeClock) ticker(t *testing.T) *manualTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tickers) == 0 {
		t.Fatalf("no ticker created")
	}
	return f.tickers[len(f.tickers)-1]
}

type fakeID struct{}

func (fakeID) New() string { return "log-1" }

type chanPublisher struct {
	ch chan notify.Topic
}

func (c chanPublisher) Publish(topic notify.Topic) { c.ch <- topic }

func newService() (*service.TimerService, *fakeClock, chanPublisher) {
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	pub := chanPublisher{ch: make(chan notify.Topic, 64)}
	return service.NewTimerService(clk, fakeID{}, pub), clk, pub
}

func tick(t *testing.T, clk *fakeClock, pub chanPublisher) {
	t.Helper()
	clk.ticker(t).ch <- time.Time{}
	select {
	case <-pub.ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("tick was not processed")
	}
}

func TestTickerAdvancesRunningTimer(t *testing.T) {
	t.Parallel()
	svc, clk, pub := newService()
	if !svc.Start(domain.ModeSelfStudy) {
		t.Fatalf("expected start to succeed")
	}
	<-pub.ch

	for range 3 {
		tick(t, clk, pub)
	}
	if got := svc.Status(); got.Seconds != 3 || !got.IsRunning {
		t.Fatalf("expected 3 running seconds, got %+v", got)
	}

	stopped := svc.Stop()
	if !stopped.WasRunning || stopped.Seconds != 3 || stopped.Mode != domain.ModeSelfStudy {
		t.Fatalf("unexpected stop result: %+v", stopped)
	}
	if got := svc.Status(); got.Seconds != 0 || got.IsRunning {
		t.Fatalf("expected reset after stop, got %+v", got)
	}
	select {
	case <-clk.ticker(t).stopped:
	default:
		t.Fatalf("expected ticker to be stopped")
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	t.Parallel()
	svc, clk, pub := newService()
	svc.Start(domain.ModeCoaching)
	<-pub.ch
	tick(t, clk, pub)

	if svc.Start(domain.ModeSelfStudy) {
		t.Fatalf("expected second start to be rejected")
	}
	got := svc.Status()
	if got.Mode != domain.ModeCoaching || got.Seconds != 1 {
		t.Fatalf("expected coaching timer untouched, got %+v", got)
	}
	clk.mu.Lock()
	tickers := len(clk.tickers)
	clk.mu.Unlock()
	if tickers != 1 {
		t.Fatalf("expected one ticker, got %d", tickers)
	}
	svc.Stop()
}

func TestStopOnIdleTimerIsHarmless(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService()
	stopped := svc.Stop()
	if stopped.WasRunning || stopped.Seconds != 0 {
		t.Fatalf("unexpected stop on idle timer: %+v", stopped)
	}
	if svc.Tick() {
		t.Fatalf("idle timer must not tick")
	}
}

func TestSealSkipsShortSessions(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService()
	if _, ok := svc.Seal(domain.Stopped{WasRunning: true, Seconds: 1, Mode: domain.ModeSelfStudy}, "Physics"); ok {
		t.Fatalf("expected 1s session to be discarded")
	}
	session, ok := svc.Seal(domain.Stopped{WasRunning: true, Seconds: 2, Mode: domain.ModeCoaching}, "Physics")
	if !ok {
		t.Fatalf("expected 2s session to be kept")
	}
	if session.ID != "log-1" || session.Seconds != 2 || session.Mode != domain.ModeCoaching || session.Subject != "Physics" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestStopActiveMeasuresAgainstClock(t *testing.T) {
	t.Parallel()
	svc, clk, _ := newService()
	active := svc.NewActive(domain.ModeSelfStudy)
	clk.mu.Lock()
	clk.now = clk.now.Add(90*time.Second + 700*time.Millisecond)
	clk.mu.Unlock()

	stopped := svc.StopActive(active)
	if stopped.Seconds != 90 || !stopped.WasRunning {
		t.Fatalf("expected 90 whole seconds, got %+v", stopped)
	}
}

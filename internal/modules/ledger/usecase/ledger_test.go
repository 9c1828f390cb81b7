package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	ledgerout "studypro/internal/modules/ledger/adapter/out"
	"studypro/internal/modules/ledger/dto"
	ledgerin "studypro/internal/modules/ledger/port/in"
	"studypro/internal/modules/ledger/service"
	"studypro/internal/modules/ledger/usecase"
	apperrors "studypro/internal/platform/errors"
	"studypro/internal/platform/kv"
	"studypro/internal/platform/notify"
)

type recordingPublisher struct {
	topics []notify.Topic
}

func (r *recordingPublisher) Publish(topic notify.Topic) { r.topics = append(r.topics, topic) }

func newFileStore(t *testing.T) kv.Store {
	t.Helper()
	store, err := kv.NewFileStore(filepath.Join(t.TempDir(), "records"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	return store
}

func newLedger(store kv.Store, pub notify.Publisher) (*service.LedgerService, func() ledgerin.Usecase) {
	svc := service.NewLedgerService(ledgerout.NewRecordLogStore(store), pub)
	return svc, func() ledgerin.Usecase { return usecase.NewInteractor(svc, 5) }
}

func logInput(id string, seconds int, kind, subject string) dto.AppendInput {
	return dto.AppendInput{
		ID:       id,
		Date:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration: seconds,
		Type:     kind,
		Subject:  subject,
	}
}

func TestAppendPrependsAndPersistsWholeCollection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFileStore(t)
	pub := &recordingPublisher{}
	_, build := newLedger(store, pub)
	uc := build()

	if _, err := uc.Append(ctx, logInput("a", 120, "self-study", "Physics")); err != nil {
		t.Fatalf("append a: %v", err)
	}
	if _, err := uc.Append(ctx, logInput("b", 60, "coaching", "Biology")); err != nil {
		t.Fatalf("append b: %v", err)
	}

	all, err := uc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("expected [b a], got %+v", all)
	}
	if all[1].Minutes != 2 {
		t.Fatalf("expected 2 minutes for 120s, got %d", all[1].Minutes)
	}

	raw, err := store.Get(ctx, "study_pro_logs")
	if err != nil {
		t.Fatalf("read stored record: %v", err)
	}
	var stored []map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored record must be a JSON array: %v", err)
	}
	if len(stored) != 2 || stored[0]["id"] != "b" || stored[0]["type"] != "coaching" || stored[0]["duration"].(float64) != 60 {
		t.Fatalf("unexpected stored logs: %v", stored)
	}
	if _, ok := stored[0]["date"].(string); !ok {
		t.Fatalf("date must be stored as a string: %v", stored[0])
	}

	want := []notify.Topic{notify.TopicLedger, notify.TopicStats, notify.TopicLedger, notify.TopicStats}
	if len(pub.topics) != len(want) {
		t.Fatalf("expected topics %v, got %v", want, pub.topics)
	}
}

func TestAppendRejectsShortOrUntypedLogs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFileStore(t)
	_, build := newLedger(store, nil)
	uc := build()

	if _, err := uc.Append(ctx, logInput("a", 1, "self-study", "Physics")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for 1s log, got %v", err)
	}
	if _, err := uc.Append(ctx, logInput("b", 30, "break", "Physics")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown type, got %v", err)
	}
	if _, err := store.Get(ctx, "study_pro_logs"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("rejected logs must not be persisted, got %v", err)
	}
}

func TestRecentUsesDefaultLimitAndFlagsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, build := newLedger(newFileStore(t), nil)
	uc := build()

	empty, err := uc.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !empty.Empty || len(empty.Logs) != 0 {
		t.Fatalf("expected empty recent output, got %+v", empty)
	}

	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		if _, err := uc.Append(ctx, logInput(id, 10, "self-study", "Physics")); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}
	recent, err := uc.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if recent.Empty || recent.Total != 7 || len(recent.Logs) != 5 {
		t.Fatalf("expected 5 of 7 logs, got %+v", recent)
	}
	if recent.Logs[0].ID != "7" || recent.Logs[4].ID != "3" {
		t.Fatalf("expected newest-first window 7..3, got %+v", recent.Logs)
	}
	two, err := uc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent(2): %v", err)
	}
	if len(two.Logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(two.Logs))
	}
}

func TestClearRemovesRecordSoFreshLoadIsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFileStore(t)
	_, build := newLedger(store, nil)
	uc := build()
	if _, err := uc.Append(ctx, logInput("a", 90, "self-study", "Physics")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := uc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx, "study_pro_logs"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("clear must delete the record, got %v", err)
	}

	fresh, buildFresh := newLedger(store, nil)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("fresh load: %v", err)
	}
	all, err := buildFresh().All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty ledger after clear, got %d", len(all))
	}
}

func TestLoadTreatsCorruptRecordAsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFileStore(t)
	if err := store.Put(ctx, "study_pro_logs", []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}
	svc, build := newLedger(store, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load should tolerate corrupt data: %v", err)
	}
	uc := build()
	if _, err := uc.Append(ctx, logInput("a", 5, "coaching", "Chemistry")); err != nil {
		t.Fatalf("append after corrupt load: %v", err)
	}
	all, err := uc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[0].ID != "a" {
		t.Fatalf("expected only the new log, got %+v", all)
	}
}

func TestTwoLedgersOnOneStoreKeepEachOthersLogs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFileStore(t)
	first, buildFirst := newLedger(store, nil)
	second, buildSecond := newLedger(store, nil)
	if err := first.Load(ctx); err != nil {
		t.Fatalf("load first: %v", err)
	}
	if err := second.Load(ctx); err != nil {
		t.Fatalf("load second: %v", err)
	}

	if _, err := buildSecond().Append(ctx, logInput("b", 10, "self-study", "Physics")); err != nil {
		t.Fatalf("append b: %v", err)
	}
	if _, err := buildFirst().Append(ctx, logInput("a", 10, "coaching", "Chemistry")); err != nil {
		t.Fatalf("append a: %v", err)
	}

	recent, err := buildSecond().Recent(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if recent.Total != 2 || recent.Logs[0].ID != "a" || recent.Logs[1].ID != "b" {
		t.Fatalf("expected [a b] from either instance, got %+v", recent.Logs)
	}

	if err := buildSecond().Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, err := buildFirst().All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("history cleared elsewhere must not come back, got %d", len(all))
	}
}

package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	syllabusout "studypro/internal/modules/syllabus/adapter/out"
	"studypro/internal/modules/syllabus/service"
	"studypro/internal/modules/syllabus/usecase"
	apperrors "studypro/internal/platform/errors"
	"studypro/internal/platform/kv"
	"studypro/internal/platform/notify"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("item-%d", s.n)
}

type countingPublisher struct{ count int }

func (c *countingPublisher) Publish(notify.Topic) { c.count++ }

func newStore(t *testing.T) kv.Store {
	t.Helper()
	store, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), "studypro.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddRejectsBlankAndCreatesUndoneItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	pub := &countingPublisher{}
	uc := usecase.NewInteractor(service.NewSyllabusService(&seqID{}, syllabusout.NewRecordItemStore(store), pub))

	for _, text := range []string{"", "   "} {
		out, err := uc.Add(ctx, text)
		if err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
		if out.Created {
			t.Fatalf("blank text %q must not create an item", text)
		}
	}
	if _, err := store.Get(ctx, "study_pro_syllabus"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("blank adds must not write storage, got %v", err)
	}
	if pub.count != 0 {
		t.Fatalf("blank adds must not notify, got %d", pub.count)
	}

	out, err := uc.Add(ctx, "Read Ch.1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !out.Created || out.Item.Done || out.Item.Text != "Read Ch.1" {
		t.Fatalf("unexpected add output %+v", out)
	}
	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 || list.Percent != 0 {
		t.Fatalf("expected one undone item, got %+v", list)
	}
	if pub.count != 1 {
		t.Fatalf("expected one notification, got %d", pub.count)
	}
}

func TestToggleRemoveAndProgressKeepInsertionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	uc := usecase.NewInteractor(service.NewSyllabusService(&seqID{}, syllabusout.NewRecordItemStore(store), nil))

	for _, text := range []string{"Kinematics", "Optics", "Thermo"} {
		if _, err := uc.Add(ctx, text); err != nil {
			t.Fatalf("add %s: %v", text, err)
		}
	}
	toggled, err := uc.Toggle(ctx, "item-2")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Found || !toggled.Item.Done {
		t.Fatalf("expected item-2 done, got %+v", toggled)
	}
	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Items[0].ID != "item-1" || list.Items[1].ID != "item-2" || list.Items[2].ID != "item-3" {
		t.Fatalf("toggle must not reorder: %+v", list.Items)
	}
	if list.Percent != 33 {
		t.Fatalf("expected 33%%, got %d", list.Percent)
	}

	removed, err := uc.Remove(ctx, "item-3")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed.Found || removed.Item.Text != "Thermo" {
		t.Fatalf("unexpected remove output %+v", removed)
	}
	list, err = uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 2 || list.Completed != 1 || list.Percent != 50 {
		t.Fatalf("expected 1 of 2 done (50%%), got %+v", list)
	}

	back, err := uc.Toggle(ctx, "item-2")
	if err != nil {
		t.Fatalf("untoggle: %v", err)
	}
	if back.Item.Done {
		t.Fatalf("second toggle should flip back to undone")
	}
}

func TestUnknownIDsAreSilentNoops(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pub := &countingPublisher{}
	uc := usecase.NewInteractor(service.NewSyllabusService(&seqID{}, syllabusout.NewRecordItemStore(newStore(t)), pub))
	if _, err := uc.Add(ctx, "Read"); err != nil {
		t.Fatalf("add: %v", err)
	}
	before := pub.count

	toggled, err := uc.Toggle(ctx, "missing")
	if err != nil || toggled.Found {
		t.Fatalf("toggle unknown id should be a no-op, got %+v err=%v", toggled, err)
	}
	removed, err := uc.Remove(ctx, "missing")
	if err != nil || removed.Found {
		t.Fatalf("remove unknown id should be a no-op, got %+v err=%v", removed, err)
	}
	if pub.count != before {
		t.Fatalf("no-ops must not notify")
	}
	list, _ := uc.List(ctx)
	if list.Total != 1 || list.Items[0].Done {
		t.Fatalf("state must be untouched: %+v", list)
	}
}

func TestStateSurvivesReloadAndClearEmptiesStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	ids := &seqID{}
	uc := usecase.NewInteractor(service.NewSyllabusService(ids, syllabusout.NewRecordItemStore(store), nil))
	if _, err := uc.Add(ctx, "Vectors"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.Toggle(ctx, "item-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	reloadedSvc := service.NewSyllabusService(ids, syllabusout.NewRecordItemStore(store), nil)
	if err := reloadedSvc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	reloaded := usecase.NewInteractor(reloadedSvc)
	list, err := reloaded.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 || !list.Items[0].Done || list.Percent != 100 {
		t.Fatalf("expected persisted done item, got %+v", list)
	}

	if err := reloaded.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx, "study_pro_syllabus"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("clear must delete the record, got %v", err)
	}
	list, _ = reloaded.List(ctx)
	if list.Total != 0 || list.Percent != 0 {
		t.Fatalf("expected empty syllabus after clear, got %+v", list)
	}
}

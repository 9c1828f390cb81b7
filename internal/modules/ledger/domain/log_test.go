package domain_test

import (
	"testing"
	"time"

	"studypro/internal/modules/ledger/domain"
	"studypro/internal/modules/ledger/dto"
)

func TestDTOTypeValuesMatchSessionTypes(t *testing.T) {
	t.Parallel()
	if dto.TypeSelfStudy != string(domain.SessionTypeSelfStudy) || dto.TypeCoaching != string(domain.SessionTypeCoaching) {
		t.Fatalf("dto type constants drifted from domain session types")
	}
}

func TestSessionLogValidate(t *testing.T) {
	t.Parallel()
	base := domain.SessionLog{
		ID:       "log-1",
		Date:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Duration: 2,
		Type:     domain.SessionTypeSelfStudy,
		Subject:  "Physics",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("log should be valid: %v", err)
	}
	short := base
	short.Duration = 1
	if err := short.Validate(); err == nil {
		t.Fatalf("1 second log should fail")
	}
	badType := base
	badType.Type = "nap"
	if err := badType.Validate(); err == nil {
		t.Fatalf("unknown type should fail")
	}
	missingID := base
	missingID.ID = ""
	if err := missingID.Validate(); err == nil {
		t.Fatalf("missing id should fail")
	}
}

func TestPrependKeepsNewestFirst(t *testing.T) {
	t.Parallel()
	a := domain.SessionLog{ID: "a"}
	b := domain.SessionLog{ID: "b"}
	logs := domain.Prepend(nil, a)
	logs = domain.Prepend(logs, b)
	if len(logs) != 2 || logs[0].ID != "b" || logs[1].ID != "a" {
		t.Fatalf("expected [b a], got %+v", logs)
	}
}

func TestRecentBounds(t *testing.T) {
	t.Parallel()
	logs := []domain.SessionLog{{ID: "3"}, {ID: "2"}, {ID: "1"}}
	if got := domain.Recent(logs, 2); len(got) != 2 || got[0].ID != "3" || got[1].ID != "2" {
		t.Fatalf("unexpected recent(2): %+v", got)
	}
	if got := domain.Recent(logs, 10); len(got) != 3 {
		t.Fatalf("recent beyond length should return all, got %d", len(got))
	}
	if got := domain.Recent(logs, -1); len(got) != 0 {
		t.Fatalf("negative n should return none, got %d", len(got))
	}
	got := domain.Recent(logs, 1)
	got[0].ID = "changed"
	if logs[0].ID != "3" {
		t.Fatalf("recent must not alias the ledger")
	}
}

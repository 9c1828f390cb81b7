package domain_test

import (
	"math"
	"testing"

	"studypro/internal/modules/stats/domain"
)

func TestAggregateTotalsAndGoal(t *testing.T) {
	t.Parallel()
	summary := domain.Aggregate([]domain.Entry{
		{Kind: domain.KindSelfStudy, Subject: "Physics", Duration: 3600},
		{Kind: domain.KindCoaching, Subject: "Biology", Duration: 1800},
	})
	if got := domain.FormatHours(summary.SelfSeconds); got != "1.0h" {
		t.Fatalf("expected 1.0h self, got %s", got)
	}
	if got := domain.FormatHours(summary.CoachSeconds); got != "0.5h" {
		t.Fatalf("expected 0.5h coaching, got %s", got)
	}
	if summary.TotalSeconds != 5400 {
		t.Fatalf("expected 5400 total seconds, got %d", summary.TotalSeconds)
	}
	if summary.GoalPercent != 25 {
		t.Fatalf("expected 25%% goal progress, got %v", summary.GoalPercent)
	}
}

func TestGoalPercentIsClamped(t *testing.T) {
	t.Parallel()
	for _, secs := range []int{6 * 3600, 7 * 3600, 1000 * 3600} {
		if got := domain.GoalPercent(secs); got != 100 {
			t.Fatalf("%ds: expected 100, got %v", secs, got)
		}
	}
	if got := domain.GoalPercent(0); got != 0 {
		t.Fatalf("expected 0 for no time, got %v", got)
	}
}

func TestSubjectBreakdownSortsAndSumsToHundred(t *testing.T) {
	t.Parallel()
	summary := domain.Aggregate([]domain.Entry{
		{Kind: domain.KindSelfStudy, Subject: "Chemistry", Duration: 600},
		{Kind: domain.KindSelfStudy, Subject: "Physics", Duration: 1200},
		{Kind: domain.KindCoaching, Subject: "Biology", Duration: 600},
		{Kind: domain.KindCoaching, Subject: "Physics", Duration: 300},
		{Kind: domain.KindSelfStudy, Subject: "Mathematics", Duration: 7},
	})
	want := []string{"Physics", "Chemistry", "Biology", "Mathematics"}
	if len(summary.Subjects) != len(want) {
		t.Fatalf("expected %d subjects, got %+v", len(want), summary.Subjects)
	}
	for i, subject := range want {
		if summary.Subjects[i].Subject != subject {
			t.Fatalf("position %d: expected %s, got %+v", i, subject, summary.Subjects)
		}
	}
	if summary.Subjects[0].Seconds != 1500 {
		t.Fatalf("physics should merge both types, got %d", summary.Subjects[0].Seconds)
	}
	total := 0.0
	for _, s := range summary.Subjects {
		total += s.Percent
	}
	if math.Abs(total-100) > 0.001 {
		t.Fatalf("percentages should sum to 100, got %v", total)
	}
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()
	summary := domain.Aggregate(nil)
	if !summary.Empty() {
		t.Fatalf("no logs should be empty")
	}
	if len(summary.Subjects) != 0 {
		t.Fatalf("empty summary must not emit subject bars")
	}
	if domain.Percent(5, 0) != 0 {
		t.Fatalf("zero denominator must yield 0")
	}
	if domain.FormatHours(0) != "0.0h" {
		t.Fatalf("expected 0.0h, got %s", domain.FormatHours(0))
	}
}

func TestFormatOneDecimalMatchesExactBinaryRounding(t *testing.T) {
	t.Parallel()
	// Expected values are what Number.prototype.toFixed(1) prints.
	cases := []struct {
		in   float64
		want string
	}{
		{0.25, "0.3"},
		{0.75, "0.8"},
		{1.25, "1.3"},
		{0.05, "0.1"},
		{0.15, "0.1"},
		{1.45, "1.4"},
		{2.449, "2.4"},
		{12.5, "12.5"},
		{0, "0.0"},
	}
	for _, tc := range cases {
		if got := domain.FormatOneDecimal(tc.in); got != tc.want {
			t.Fatalf("%v: expected %s, got %s", tc.in, tc.want, got)
		}
	}
	hours := map[int]string{
		900:  "0.3h",
		5220: "1.4h",
		5400: "1.5h",
		8820: "2.5h",
	}
	for secs, want := range hours {
		if got := domain.FormatHours(secs); got != want {
			t.Fatalf("%ds: expected %s, got %s", secs, want, got)
		}
	}
}

func TestGoalPercentUsesDisplayedHours(t *testing.T) {
	t.Parallel()
	// 5220s displays as 1.4h, so the goal is 1.4/6.
	if got, want := domain.GoalPercent(5220), 1.4/6*100; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

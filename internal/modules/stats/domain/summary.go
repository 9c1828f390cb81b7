package domain

import (
	"math"
	"sort"
	"strconv"
)

// DailyGoalHours is the fixed reference used for goal progress.
const DailyGoalHours = 6

type Kind int

const (
	KindOther Kind = iota
	KindSelfStudy
	KindCoaching
)

type Entry struct {
	Kind     Kind
	Subject  string
	Duration int
}

type SubjectShare struct {
	Subject string
	Seconds int
	Percent float64
}

type Summary struct {
	SelfSeconds  int
	CoachSeconds int
	TotalSeconds int
	GoalPercent  float64
	Subjects     []SubjectShare
}

func (s Summary) Empty() bool { return s.TotalSeconds == 0 }

// Aggregate derives the summary from the ledger entries, which arrive newest-first.
// Subjects are ordered by total seconds descending; ties keep encounter order.
func Aggregate(entries []Entry) Summary {
	summary := Summary{}
	order := []string{}
	perSubject := map[string]int{}
	for _, e := range entries {
		switch e.Kind {
		case KindSelfStudy:
			summary.SelfSeconds += e.Duration
		case KindCoaching:
			summary.CoachSeconds += e.Duration
		}
		if _, seen := perSubject[e.Subject]; !seen {
			order = append(order, e.Subject)
		}
		perSubject[e.Subject] += e.Duration
	}
	summary.TotalSeconds = summary.SelfSeconds + summary.CoachSeconds
	summary.GoalPercent = GoalPercent(summary.TotalSeconds)
	if summary.Empty() {
		return summary
	}

	summary.Subjects = make([]SubjectShare, 0, len(order))
	for _, subject := range order {
		secs := perSubject[subject]
		summary.Subjects = append(summary.Subjects, SubjectShare{
			Subject: subject,
			Seconds: secs,
			Percent: Percent(secs, summary.TotalSeconds),
		})
	}
	sort.SliceStable(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].Seconds > summary.Subjects[j].Seconds
	})
	return summary
}

// GoalPercent measures the displayed (one decimal) hours against the daily goal, capped at 100.
func GoalPercent(totalSeconds int) float64 {
	hours := RoundOneDecimal(Hours(totalSeconds))
	return math.Min(hours/DailyGoalHours*100, 100)
}

// Percent returns part/whole*100, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func Hours(seconds int) float64 {
	return float64(seconds) / 3600
}

// RoundOneDecimal returns the value FormatOneDecimal displays.
func RoundOneDecimal(v float64) float64 {
	rounded, _ := strconv.ParseFloat(FormatOneDecimal(v), 64)
	return rounded
}

// FormatOneDecimal rounds the exact binary value of v to one decimal. Only
// multiples of 0.25 sit exactly halfway; those round away from zero.
func FormatOneDecimal(v float64) string {
	if q := math.Abs(v) * 4; q == math.Trunc(q) && math.Mod(q, 2) == 1 {
		return strconv.FormatFloat(math.Copysign(math.Ceil(math.Abs(v)*10)/10, v), 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatHours renders seconds as hours with one decimal, e.g. "1.5h".
func FormatHours(seconds int) string {
	return FormatOneDecimal(Hours(seconds)) + "h"
}

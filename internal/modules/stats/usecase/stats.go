package usecase

import (
	"context"
	"fmt"

	ledgerdto "studypro/internal/modules/ledger/dto"
	"studypro/internal/modules/stats/domain"
	"studypro/internal/modules/stats/dto"
	statsin "studypro/internal/modules/stats/port/in"
	statsout "studypro/internal/modules/stats/port/out"
)

// Interactor recomputes the summary from the ledger on every call; it keeps no state.
type Interactor struct {
	logs statsout.LogSource
}

func NewInteractor(logs statsout.LogSource) statsin.Usecase {
	return &Interactor{logs: logs}
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	if i.logs == nil {
		return dto.SummaryOutput{}, fmt.Errorf("log source is not configured")
	}
	logs, err := i.logs.All(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	summary := domain.Aggregate(toEntries(logs))

	out := dto.SummaryOutput{
		SelfSeconds:  summary.SelfSeconds,
		CoachSeconds: summary.CoachSeconds,
		TotalSeconds: summary.TotalSeconds,
		SelfHours:    domain.FormatHours(summary.SelfSeconds),
		CoachHours:   domain.FormatHours(summary.CoachSeconds),
		TotalHours:   domain.FormatHours(summary.TotalSeconds),
		GoalHours:    domain.DailyGoalHours,
		GoalPercent:  summary.GoalPercent,
		Empty:        summary.Empty(),
	}
	for _, s := range summary.Subjects {
		out.Subjects = append(out.Subjects, dto.SubjectOutput{
			Subject:     s.Subject,
			Seconds:     s.Seconds,
			Hours:       domain.FormatHours(s.Seconds),
			Percent:     s.Percent,
			PercentText: domain.FormatOneDecimal(s.Percent) + "%",
		})
	}
	return out, nil
}

func toEntries(logs []ledgerdto.LogOutput) []domain.Entry {
	entries := make([]domain.Entry, 0, len(logs))
	for _, log := range logs {
		kind := domain.KindOther
		switch log.Type {
		case ledgerdto.TypeSelfStudy:
			kind = domain.KindSelfStudy
		case ledgerdto.TypeCoaching:
			kind = domain.KindCoaching
		}
		entries = append(entries, domain.Entry{Kind: kind, Subject: log.Subject, Duration: log.Duration})
	}
	return entries
}

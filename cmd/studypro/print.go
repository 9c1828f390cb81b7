package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	ledgerdto "studypro/internal/modules/ledger/dto"
	statsdto "studypro/internal/modules/stats/dto"
	syllabusdto "studypro/internal/modules/syllabus/dto"
	"studypro/internal/ui/components"
	"studypro/internal/ui/theme"
)

const barWidth = 30

func printStop(cmd *cobra.Command, wasRunning, committed bool, seconds int, subject string) {
	w := cmd.OutOrStdout()
	switch {
	case !wasRunning:
		_, _ = fmt.Fprintln(w, "no timer running")
	case !committed:
		_, _ = fmt.Fprintf(w, "session discarded (%ds is too short to log)\n", seconds)
	default:
		_, _ = fmt.Fprintf(w, "logged %d mins of %s\n", seconds/60, subject)
	}
}

func printRecent(w io.Writer, out ledgerdto.RecentOutput) {
	if out.Empty {
		_, _ = fmt.Fprintln(w, ledgerdto.EmptyPlaceholder)
		return
	}
	for _, log := range out.Logs {
		_, _ = fmt.Fprintf(w, "%-14s %-10s %-12s %4d mins\n",
			humanize.Time(log.Date), log.Type, log.Subject, log.Minutes)
	}
	if out.Total > len(out.Logs) {
		_, _ = fmt.Fprintf(w, "... %d older sessions\n", out.Total-len(out.Logs))
	}
}

func printSyllabus(w io.Writer, out syllabusdto.ListOutput) {
	for _, item := range out.Items {
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		_, _ = fmt.Fprintf(w, "%s %s  %s\n", mark, item.Text, item.ID)
	}
	_, _ = fmt.Fprintf(w, "%d%% Completed (%d/%d)\n", out.Percent, out.Completed, out.Total)
}

func printStats(w io.Writer, out statsdto.SummaryOutput) {
	_, _ = fmt.Fprintf(w, "Self Study: %s\nCoaching:   %s\nTotal:      %s\n", out.SelfHours, out.CoachHours, out.TotalHours)
	_, _ = fmt.Fprintf(w, "Daily goal (%dh): %s %.0f%%\n", out.GoalHours, bar(out.GoalPercent), out.GoalPercent)
	if out.Empty {
		_, _ = fmt.Fprintln(w, statsdto.EmptyPlaceholder)
		return
	}
	for _, s := range out.Subjects {
		_, _ = fmt.Fprintf(w, "%-14s %s %s (%s)\n", s.Subject, bar(s.Percent), s.PercentText, s.Hours)
	}
}

func bar(percent float64) string {
	return components.Bar(percent, barWidth, theme.Green)
}

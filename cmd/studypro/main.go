package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"studypro/internal/bootstrap"
	"studypro/internal/mcp"
	"studypro/internal/platform/config"
	"studypro/internal/platform/logging"
	"studypro/internal/platform/notify"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version))
	stop()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "studypro",
		Short:         "Track study sessions, a syllabus checklist and daily goals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if strings.TrimSpace(flags.dataDir) == "" {
				return fmt.Errorf("--data-dir is required")
			}
			cfg, err := config.New(flags.dataDir)
			if err != nil {
				return err
			}
			return logging.Init(cfg.LogPath, flags.verbose)
		},
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory holding records, config and logs")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "mirror log lines to stderr")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newTimerCmd(flags))
	root.AddCommand(newLogCmd(flags))
	root.AddCommand(newSyllabusCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newClearCmd(flags))
	root.AddCommand(newSubjectsCmd(flags))
	root.AddCommand(newMCPCmd(flags))
	return root
}

// withApp opens the app for the duration of fn.
func withApp(ctx context.Context, flags *globalFlags, fn func(app *bootstrap.App) error) error {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			logging.Errorf("close store: %v", cerr)
		}
	}()
	return fn(app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studypro terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(cmd.Context(), app)
			})
		},
	}
}

func newTimerCmd(flags *globalFlags) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Study session timer"}

	var startMode string
	start := &cobra.Command{
		Use:   "start --mode self-study|coaching",
		Short: "Start a timer that keeps running between invocations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.TimerCLI.StartDetached(cmd.Context(), startMode)
				if err != nil {
					return err
				}
				if !out.Started {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer already running: %s since %s\n", out.Mode, out.StartedAt.Local().Format("15:04:05"))
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) started at %s\n", out.StatusText, out.Mode, out.StartedAt.Local().Format("15:04:05"))
				return nil
			})
		},
	}
	start.Flags().StringVar(&startMode, "mode", "self-study", "timer mode: self-study|coaching")

	var stopSubject string
	stop := &cobra.Command{
		Use:   "stop [--subject S]",
		Short: "Stop the running timer and log the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.TimerCLI.StopDetached(cmd.Context(), stopSubject)
				if err != nil {
					return err
				}
				printStop(cmd, out.WasRunning, out.Committed, out.Seconds, out.Log.Subject)
				return nil
			})
		},
	}
	stop.Flags().StringVar(&stopSubject, "subject", "", "subject to record (defaults to the first configured subject)")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.TimerCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				if !out.Running {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.Clock, out.StatusText)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", out.Clock, out.StatusText, out.Mode)
				return nil
			})
		},
	}

	var runMode, runSubject string
	run := &cobra.Command{
		Use:   "run --mode self-study|coaching [--subject S]",
		Short: "Run a foreground timer; Ctrl-C stops and logs it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, flags, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				unsubscribe := app.Bus.Subscribe(func(topic notify.Topic) {
					if topic != notify.TopicTimer {
						return
					}
					status, err := app.TimerCLI.Status(context.Background())
					if err != nil || !status.Running {
						return
					}
					_, _ = fmt.Fprintf(w, "\r%s %s", status.Clock, status.StatusText)
				})
				defer unsubscribe()

				out, err := app.TimerCLI.Start(ctx, runMode)
				if err != nil {
					return err
				}
				if !out.Started {
					_, _ = fmt.Fprintf(w, "timer already running: %s\n", out.Mode)
					return nil
				}
				<-ctx.Done()
				_, _ = fmt.Fprintln(w)

				stopped, err := app.TimerCLI.Stop(context.Background(), runSubject)
				if err != nil {
					return err
				}
				printStop(cmd, stopped.WasRunning, stopped.Committed, stopped.Seconds, stopped.Log.Subject)
				return nil
			})
		},
	}
	run.Flags().StringVar(&runMode, "mode", "self-study", "timer mode: self-study|coaching")
	run.Flags().StringVar(&runSubject, "subject", "", "subject to record (defaults to the first configured subject)")

	timer.AddCommand(start, stop, status, run)
	return timer
}

func newLogCmd(flags *globalFlags) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Study log"}

	var limit int
	recent := &cobra.Command{
		Use:   "recent [-n N]",
		Short: "Show the most recent sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.LedgerCLI.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				printRecent(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	recent.Flags().IntVarP(&limit, "limit", "n", 0, "number of sessions (defaults to recent_limit)")

	logCmd.AddCommand(recent)
	return logCmd
}

func newSyllabusCmd(flags *globalFlags) *cobra.Command {
	syllabus := &cobra.Command{Use: "syllabus", Short: "Syllabus checklist"}

	syllabus.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.SyllabusCLI.Add(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if !out.Created {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing added: topic text is empty")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s %q\n", out.Item.ID, out.Item.Text)
				return nil
			})
		},
	})

	syllabus.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a topic between done and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.SyllabusCLI.Toggle(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !out.Found {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no topic %s\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %q done=%t\n", out.Item.ID, out.Item.Text, out.Item.Done)
				return nil
			})
		},
	})

	syllabus.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.SyllabusCLI.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !out.Found {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no topic %s\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s %q\n", out.Item.ID, out.Item.Text)
				return nil
			})
		},
	})

	syllabus.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List topics and completion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.SyllabusCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				printSyllabus(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return syllabus
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, the daily goal and the subject breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.StatsCLI.Summary(cmd.Context())
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newClearCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear [--yes]",
		Short: "Delete all logs and syllabus topics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.ResetCLI.ClearAll(cmd.Context(), yes)
				if err != nil {
					return err
				}
				if !out.Cleared {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing cleared")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", strings.Join(out.Targets, ", "))
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return clearCmd
}

func newSubjectsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List the configured subject options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(flags.dataDir)
			if err != nil {
				return err
			}
			for i, s := range cfg.Subjects {
				marker := " "
				if i == 0 {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, s)
			}
			return nil
		},
	}
}

func newMCPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve timer, log, syllabus and stats tools over MCP (stdio)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				server := mcp.NewServer(version, app.TimerCLI, app.LedgerCLI, app.SyllabusCLI, app.StatsCLI)
				logging.Printf("mcp: serving on stdio")
				return server.Serve(cmd.Context())
			})
		},
	}
}

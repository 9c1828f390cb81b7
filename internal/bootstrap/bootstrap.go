package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	ledgerinadapter "studypro/internal/modules/ledger/adapter/in"
	ledgeroutadapter "studypro/internal/modules/ledger/adapter/out"
	ledgerservice "studypro/internal/modules/ledger/service"
	ledgerusecase "studypro/internal/modules/ledger/usecase"
	resetinadapter "studypro/internal/modules/reset/adapter/in"
	resetout "studypro/internal/modules/reset/port/out"
	resetusecase "studypro/internal/modules/reset/usecase"
	statsinadapter "studypro/internal/modules/stats/adapter/in"
	statsusecase "studypro/internal/modules/stats/usecase"
	syllabusinadapter "studypro/internal/modules/syllabus/adapter/in"
	syllabusoutadapter "studypro/internal/modules/syllabus/adapter/out"
	syllabusservice "studypro/internal/modules/syllabus/service"
	syllabususecase "studypro/internal/modules/syllabus/usecase"
	timerinadapter "studypro/internal/modules/timer/adapter/in"
	timeroutadapter "studypro/internal/modules/timer/adapter/out"
	timerservice "studypro/internal/modules/timer/service"
	timerusecase "studypro/internal/modules/timer/usecase"
	"studypro/internal/platform/clock"
	"studypro/internal/platform/config"
	"studypro/internal/platform/id"
	"studypro/internal/platform/kv"
	"studypro/internal/platform/notify"
	uiapp "studypro/internal/ui/app"
)

type App struct {
	Config      config.Config
	Bus         *notify.Bus
	TimerCLI    timerinadapter.CLIHandler
	LedgerCLI   ledgerinadapter.CLIHandler
	SyllabusCLI syllabusinadapter.CLIHandler
	StatsCLI    statsinadapter.CLIHandler
	ResetCLI    resetinadapter.CLIHandler

	store kv.Store
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.TimeOrdered{}
	bus := notify.NewBus()

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	ledgerSvc := ledgerservice.NewLedgerService(ledgeroutadapter.NewRecordLogStore(store), bus)
	if err := ledgerSvc.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load logs: %w", err)
	}
	ledgerUC := ledgerusecase.NewInteractor(ledgerSvc, cfg.RecentLimit)

	syllabusSvc := syllabusservice.NewSyllabusService(ids, syllabusoutadapter.NewRecordItemStore(store), bus)
	if err := syllabusSvc.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load syllabus: %w", err)
	}
	syllabusUC := syllabususecase.NewInteractor(syllabusSvc)

	timerUC := timerusecase.NewInteractor(
		timerservice.NewTimerService(clk, ids, bus),
		ledgerUC,
		timeroutadapter.NewFileActiveTimerStore(cfg.ActiveTimerPath),
		cfg.DefaultSubject(),
	)

	statsUC := statsusecase.NewInteractor(ledgerUC)

	resetUC := resetusecase.NewInteractor(bus,
		resetout.Target{Name: "timer", Clearer: timerUC},
		resetout.Target{Name: "logs", Clearer: ledgerUC},
		resetout.Target{Name: "syllabus", Clearer: syllabusUC},
	)

	return &App{
		Config:      cfg,
		Bus:         bus,
		TimerCLI:    timerinadapter.NewCLIHandler(timerUC),
		LedgerCLI:   ledgerinadapter.NewCLIHandler(ledgerUC),
		SyllabusCLI: syllabusinadapter.NewCLIHandler(syllabusUC),
		StatsCLI:    statsinadapter.NewCLIHandler(statsUC),
		ResetCLI:    resetinadapter.NewCLIHandler(resetUC),
		store:       store,
	}, nil
}

func openStore(cfg config.Config) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		store, err := kv.NewFileStore(cfg.RecordsDir)
		if err != nil {
			return nil, fmt.Errorf("open file records: %w", err)
		}
		return store, nil
	default:
		store, err := kv.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite records: %w", err)
		}
		return store, nil
	}
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, uiapp.Deps{
		Timer:    app.TimerCLI,
		Ledger:   app.LedgerCLI,
		Syllabus: app.SyllabusCLI,
		Stats:    app.StatsCLI,
		Reset:    app.ResetCLI,
		Bus:      app.Bus,
		Subjects: app.Config.Subjects,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

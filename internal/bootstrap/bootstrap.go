package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	hooksinadapter "studychef/internal/modules/hooks/adapter/in"
	hooksoutadapter "studychef/internal/modules/hooks/adapter/out"
	hooksservice "studychef/internal/modules/hooks/service"
	hooksusecase "studychef/internal/modules/hooks/usecase"
	kitcheninadapter "studychef/internal/modules/kitchen/adapter/in"
	kitchenoutadapter "studychef/internal/modules/kitchen/adapter/out"
	"studychef/internal/modules/kitchen/domain"
	kitchendto "studychef/internal/modules/kitchen/dto"
	kitchenservice "studychef/internal/modules/kitchen/service"
	kitchenusecase "studychef/internal/modules/kitchen/usecase"
	"studychef/internal/platform/clock"
	"studychef/internal/platform/config"
	"studychef/internal/platform/id"
	"studychef/internal/platform/logging"
	"studychef/internal/platform/random"
	"studychef/internal/platform/tx"
	uiapp "studychef/internal/ui/app"
)

type App struct {
	KitchenCLI kitcheninadapter.CLIHandler
	KitchenTUI kitcheninadapter.TUIHandler
	HooksCLI   hooksinadapter.CLIHandler
	Logger     hclog.Logger
	Opened     kitchendto.OpenOutput

	tick    time.Duration
	closers []io.Closer
}

// New wires every module from cfg and restores the saved kitchen.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, logFile, err := logging.New(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		return nil, err
	}
	app := &App{Logger: logger, tick: cfg.TickInterval, closers: []io.Closer{logFile}}

	catalog, err := kitchenoutadapter.NewYAMLCatalogSource(cfg.CatalogPath).Load(ctx)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	rnd, err := random.New(cfg.Seed)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("seed random source: %w", err)
	}
	logger.Debug("random source ready", "seed", rnd.Seed())

	settings := domain.Settings{
		FocusMinutes: cfg.FocusMinutes,
		BreakMinutes: cfg.BreakMinutes,
		Scheme:       domain.Scheme(cfg.Scheme),
	}
	ids := id.NewULID()
	kitchenSvc := kitchenservice.NewKitchenService(
		clock.SystemClock{Location: cfg.Location},
		tx.NewMutexManager(),
		ids,
		domain.NewKitchen(catalog, rnd, cfg.Location, settings),
		settings,
	)

	history, err := kitchenoutadapter.NewSQLiteHistoryStore(cfg.DBPath, ids, cfg.Location)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new history store: %w", err)
	}
	app.closers = append(app.closers, history)

	kinds := make([]string, 0, len(domain.EventKinds()))
	for _, k := range domain.EventKinds() {
		kinds = append(kinds, string(k))
	}
	hooksUC := hooksusecase.NewInteractor(hooksservice.NewHooksService(
		hooksoutadapter.NewFileManifestStore(cfg.HooksPath),
		hooksoutadapter.NewGRPCHost(logger.Named("hooks")),
		logger.Named("hooks"),
	).WithEventKinds(kinds))

	publisher := kitchenoutadapter.NewFanoutPublisher().Add("history", history)
	if cfg.Journal {
		publisher.Add("journal", kitchenoutadapter.NewVaultJournal(cfg.JournalPath, cfg.Location, catalog))
	}
	publisher.Add("hooks", kitchenoutadapter.NewHookPublisher(hooksUC))

	kitchenUC := kitchenusecase.NewInteractor(kitchenSvc, kitchenusecase.Options{
		Store:     kitchenoutadapter.NewFileSnapshotStore(cfg.SnapshotPath),
		Publisher: publisher,
		History:   history,
		Logger:    logger.Named("kitchen"),
		Autosave:  cfg.Autosave,
	})

	app.KitchenCLI = kitcheninadapter.NewCLIHandler(kitchenUC)
	app.KitchenTUI = kitcheninadapter.NewTUIHandler(kitchenUC)
	app.HooksCLI = hooksinadapter.NewCLIHandler(hooksUC)

	opened, err := app.KitchenCLI.Open(ctx)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open kitchen: %w", err)
	}
	app.Opened = opened
	return app, nil
}

// Close releases the history database and the log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI blocks until the user quits, then saves once more.
func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(app.KitchenTUI, app.tick)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()
	saveErr := app.KitchenTUI.Save(ctx)
	if saveErr != nil {
		app.Logger.Error("final save failed", "error", saveErr)
	}
	return errors.Join(runErr, saveErr)
}

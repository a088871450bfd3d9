package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"rps/internal/console"
	gameinadapter "rps/internal/modules/game/adapter/in"
	gameoutadapter "rps/internal/modules/game/adapter/out"
	gamein "rps/internal/modules/game/port/in"
	gameout "rps/internal/modules/game/port/out"
	gameservice "rps/internal/modules/game/service"
	gameusecase "rps/internal/modules/game/usecase"
	"rps/internal/platform/clock"
	"rps/internal/platform/config"
	"rps/internal/platform/id"
	uiapp "rps/internal/ui/app"
	"rps/internal/ui/theme"
)

type App struct {
	Game    gamein.Usecase
	GameCLI gameinadapter.CLIHandler

	logger *slog.Logger
	closed bool
}

// New opens the store and the opponent and wires the game module. Any
// storage failure here is fatal.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opponent, err := openOpponent(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	svc := gameservice.NewGameService(store, opponent, clock.SystemClock{}, logger)
	uc := gameusecase.NewInteractor(svc)
	if err := uc.LoadSavedCount(ctx); err != nil {
		_ = uc.Close()
		return nil, err
	}
	logger.Info("app ready", "store", cfg.Store.Driver, "capacity", cfg.Store.Capacity, "plugin", cfg.Opponent.Plugin)

	return &App{
		Game:    uc,
		GameCLI: gameinadapter.NewCLIHandler(uc),
		logger:  logger,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (gameout.SessionStore, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		store, err := gameoutadapter.NewPostgresSessionStore(ctx, cfg.Store.DSN, cfg.Store.Capacity, id.UUID{})
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := gameoutadapter.NewSQLiteSessionStore(ctx, cfg.Store.Path, cfg.Store.Capacity, id.UUID{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	}
}

func openOpponent(ctx context.Context, cfg *config.Config) (gameout.Opponent, error) {
	if cfg.Opponent.Plugin == "" {
		return gameoutadapter.NewRandomOpponent(cfg.Game.Seed), nil
	}
	opp, err := gameoutadapter.NewPluginOpponent(ctx, cfg.Opponent.Plugin, cfg.Opponent.Timeout)
	if err != nil {
		return nil, err
	}
	return opp, nil
}

// Close releases the store and the opponent. Interactive runs close through
// the panel machine instead.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.Game.Close()
}

func (a *App) newMachine(out io.Writer) *console.Machine {
	return console.NewMachine(a.Game, console.NewTextRenderer(out), a.logger)
}

// RunConsole plays in line mode until a quit token or EOF.
func RunConsole(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	m := app.newMachine(out)
	defer func() { _ = m.Close() }()
	err := m.Run(ctx, in, out)
	app.closed = true
	return err
}

// RunTUI plays in the full-screen UI, or in line mode when stdin or stdout
// is not a terminal.
func RunTUI(ctx context.Context, app *App) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		app.logger.Info("not a terminal, falling back to line mode")
		return RunConsole(ctx, app, os.Stdin, os.Stdout)
	}

	m := app.newMachine(os.Stdout)
	defer func() { _ = m.Close() }()
	app.closed = true

	model := uiapp.NewModel(ctx, m, theme.NewStyles(lipgloss.NewRenderer(os.Stdout)))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(uiapp.Model); ok && fm.Farewell() != "" {
		_, _ = fmt.Fprintln(os.Stdout, fm.Farewell())
	}
	return nil
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gamein "rps/internal/modules/game/port/in"
)

// Reply is the result of one submitted line. Output is only set when the
// session ends.
type Reply struct {
	Output string
	Done   bool
}

// Machine sequences the panels. It is driven either by Run for line input
// or by the TUI through Prompt and Submit.
type Machine struct {
	uc      gamein.Usecase
	render  Renderer
	logger  *slog.Logger
	flags   *Flags
	panel   PanelID
	routers map[PanelID]*Router
	pending string
	closed  bool
}

func NewMachine(uc gamein.Usecase, render Renderer, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	flags := &Flags{}
	base := controller{uc: uc, flags: flags, render: render}
	return &Machine{
		uc:     uc,
		render: render,
		logger: logger,
		flags:  flags,
		panel:  MainMenu,
		routers: map[PanelID]*Router{
			MainMenu:         mainMenuController{base}.router(),
			GameIDInput:      gameIDController{base}.router(),
			RoundAmountInput: roundAmountController{base}.router(),
			InGame:           inGameController{base}.router(),
			ContinueGame:     continueGameController{base}.router(),
		},
	}
}

func (m *Machine) Panel() PanelID { return m.panel }

// Tokens lists the literal inputs the current panel accepts.
func (m *Machine) Tokens() []string { return m.routers[m.panel].Tokens() }

// Flags returns a copy of the decision flags.
func (m *Machine) Flags() Flags { return *m.flags }

// Prompt renders the current panel, preceded by any message left by the
// previous input. One-shot notices are consumed.
func (m *Machine) Prompt(ctx context.Context) string {
	panel := m.renderPanel(ctx)
	if m.pending == "" {
		return panel
	}
	msg := m.pending
	m.pending = ""
	return msg + "\n\n" + panel
}

func (m *Machine) renderPanel(ctx context.Context) string {
	switch m.panel {
	case GameIDInput:
		return m.render.GameIDInput(m.flags.WantsLoad)
	case RoundAmountInput:
		return m.render.RoundAmount()
	case InGame:
		return m.render.InGame(m.uc.Snapshot(), m.uc.TakeSavedNotice())
	case ContinueGame:
		return m.render.ContinueGame(m.uc.Snapshot())
	}

	v := MainMenuView{DeletedID: m.uc.TakeDeletedNotice()}
	var failure string
	if m.flags.WantsListSaved {
		m.flags.WantsListSaved = false
		list, err := m.uc.ListSaved(ctx)
		if err != nil {
			m.logger.Error("list saved games", "error", err)
			failure = m.render.Failure(err) + "\n\n"
		} else {
			v.ShowSaved = true
			v.Saved = list
		}
	}
	if m.flags.WantsGameRules {
		m.flags.WantsGameRules = false
		v.ShowRules = true
	}
	return failure + m.render.MainMenu(v)
}

// Submit routes one line of input on the current panel and moves to the
// next panel.
func (m *Machine) Submit(ctx context.Context, input string) Reply {
	if m.closed {
		return Reply{Done: true}
	}
	from := m.panel
	err := m.routers[m.panel].Dispatch(ctx, input)

	var (
		exit    *ExitError
		invalid *InvalidInputError
		notice  *Notice
	)
	switch {
	case err == nil:
		m.advance()
	case errors.As(err, &exit):
		if cerr := m.Close(); cerr != nil {
			m.logger.Error("close session", "error", cerr)
		}
		m.logger.Info("session ended", "panel", from.String())
		return Reply{Output: exit.Farewell, Done: true}
	case errors.As(err, &invalid):
		m.pending = m.render.Invalid(invalid.Input, invalid.Suggestion)
	case errors.As(err, &notice):
		m.logger.Warn("panel notice", "panel", from.String(), "error", notice.Err)
		m.pending = notice.Text
	default:
		m.logger.Error("panel operation failed", "panel", from.String(), "error", err)
		m.pending = m.render.Failure(err)
	}
	if from != m.panel {
		m.logger.Debug("panel transition", "from", from.String(), "to", m.panel.String())
	}
	return Reply{}
}

func (m *Machine) advance() {
	switch m.panel {
	case MainMenu:
		switch {
		case m.flags.WantsListSaved, m.flags.WantsGameRules:
		case m.flags.WantsLoad, m.flags.WantsDelete:
			m.panel = GameIDInput
		default:
			m.panel = RoundAmountInput
		}
	case GameIDInput:
		switch {
		case m.backToMainMenu():
		case m.flags.RoundsConfigured:
			m.enterGame()
		default:
			m.panel = RoundAmountInput
		}
	case RoundAmountInput:
		if !m.backToMainMenu() {
			m.enterGame()
		}
	case InGame:
		if m.backToMainMenu() {
			return
		}
		if m.uc.IsLastRound() {
			m.uc.FinishGame()
			m.panel = ContinueGame
		}
	case ContinueGame:
		if !m.backToMainMenu() {
			m.enterGame()
		}
	}
}

// enterGame opens the in-game panel, or the continue panel when the game
// is already decided.
func (m *Machine) enterGame() {
	if m.uc.IsLastRound() {
		m.uc.FinishGame()
		m.panel = ContinueGame
		return
	}
	m.panel = InGame
}

func (m *Machine) backToMainMenu() bool {
	if !m.flags.WantsBackToMainMenu {
		return false
	}
	m.flags.WantsBackToMainMenu = false
	m.panel = MainMenu
	return true
}

// Close releases the store and the opponent. It is safe to call twice.
func (m *Machine) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.uc.Close()
}

// Run drives the machine from line input until a quit token or EOF.
func (m *Machine) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			_ = m.Close()
			return err
		}
		if _, err := fmt.Fprint(out, m.Prompt(ctx)); err != nil {
			_ = m.Close()
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := m.Close(); err != nil {
				return err
			}
			return scanner.Err()
		}
		reply := m.Submit(ctx, strings.TrimSuffix(scanner.Text(), "\r"))
		fmt.Fprintln(out)
		if reply.Done {
			fmt.Fprintln(out, strings.TrimRight(reply.Output, "\n"))
			return nil
		}
	}
}

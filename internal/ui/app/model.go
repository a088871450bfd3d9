package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rps/internal/console"
	"rps/internal/ui/components"
	"rps/internal/ui/theme"
)

// machinePort is what the TUI needs from the panel machine.
type machinePort interface {
	Prompt(ctx context.Context) string
	Submit(ctx context.Context, input string) console.Reply
	Panel() console.PanelID
	Tokens() []string
	Close() error
}

type keyMap struct {
	Submit key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Help:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abort")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear},
		{k.Help, k.Quit},
	}
}

// Model is the root Bubble Tea model. It shows the current panel above a
// line input and hands every submitted line to the machine.
type Model struct {
	ctx     context.Context
	machine machinePort
	st      theme.Styles

	input    components.LineInput
	keys     keyMap
	help     help.Model
	showHelp bool

	screen   string
	farewell string
	done     bool
	width    int
	height   int
}

func NewModel(ctx context.Context, machine machinePort, st theme.Styles) Model {
	m := Model{
		ctx:     ctx,
		machine: machine,
		st:      st,
		input:   components.NewLineInput(st),
		keys:    defaultKeys(),
		help:    help.New(),
	}
	m.refresh()
	return m
}

// Farewell is the text left by the quit path, empty when the session was
// aborted.
func (m Model) Farewell() string { return m.farewell }

func (m Model) Done() bool { return m.done }

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.input.SetWidth(min(m.width, 80))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Submit):
			var line string
			m.input, line = m.input.Take()
			return m.submit(line)
		case key.Matches(msg, m.keys.Quit):
			_ = m.machine.Close()
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands one line to the machine before the next key is read.
func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	reply := m.machine.Submit(m.ctx, line)
	if reply.Done {
		m.done = true
		m.farewell = reply.Output
		return m, tea.Quit
	}
	m.refresh()
	return m, nil
}

func (m *Model) refresh() {
	m.screen = m.machine.Prompt(m.ctx)
	m.input.SetHints(m.machine.Tokens())
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	header := m.st.Title.Render("rock paper scissors") + m.st.Muted.Render("  "+panelTitle(m.machine.Panel()))
	body := m.st.Pane.Render(strings.TrimRight(m.screen, " "))
	if m.showHelp {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
	}
	footer := m.st.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.input.View(), footer)
}

func panelTitle(p console.PanelID) string {
	switch p {
	case console.GameIDInput:
		return "game id"
	case console.RoundAmountInput:
		return "new game"
	case console.InGame:
		return "in game"
	case console.ContinueGame:
		return "game over"
	}
	return "main menu"
}

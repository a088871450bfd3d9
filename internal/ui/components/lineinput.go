package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rps/internal/ui/theme"
)

// LineInput is the single-line prompt under the panel, backed by
// bubbles/textinput. It stays focused for the whole session.
type LineInput struct {
	input textinput.Model
	st    theme.Styles
	hints []string
	width int
}

func NewLineInput(st theme.Styles) LineInput {
	ti := textinput.New()
	ti.Placeholder = "type here…"
	ti.CharLimit = 64
	ti.Prompt = "> "
	ti.Focus()
	return LineInput{input: ti, st: st}
}

// SetHints sets the inputs the current panel accepts.
func (l *LineInput) SetHints(hints []string) { l.hints = hints }

func (l *LineInput) SetWidth(w int) { l.width = w }

func (l LineInput) Value() string { return l.input.Value() }

// Take returns the typed line and clears the field.
func (l LineInput) Take() (LineInput, string) {
	val := l.input.Value()
	l.input.SetValue("")
	return l, val
}

func (l LineInput) Update(msg tea.Msg) (LineInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		l.input.SetValue("")
		return l, nil
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l LineInput) View() string {
	var sb strings.Builder
	sb.WriteString(l.input.View())
	if len(l.hints) > 0 {
		sb.WriteString("\n")
		sb.WriteString(l.st.Muted.Render("accepts: " + strings.Join(l.hints, " ")))
	}
	w := l.width
	if w < 20 {
		w = 64
	}
	return l.st.Input.Width(w - 2).Render(sb.String())
}

func (l LineInput) Init() tea.Cmd { return textinput.Blink }

package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	gamedto "rps/internal/modules/game/dto"
	"rps/internal/ui/theme"
)

// MainMenuView is what the main menu shows on one render.
type MainMenuView struct {
	DeletedID string
	ShowRules bool
	ShowSaved bool
	Saved     []gamedto.SavedGameOutput
}

// Renderer turns panel state into text.
type Renderer interface {
	MainMenu(v MainMenuView) string
	GameIDInput(loading bool) string
	RoundAmount() string
	InGame(v gamedto.SessionView, savedID string) string
	ContinueGame(v gamedto.SessionView) string

	Invalid(input, suggestion string) string
	NotFound(id string) string
	CapacityReached(capacity int) string
	Failure(err error) string
	FinalStats(v gamedto.SessionView) string
	Goodbye() string
}

// TextRenderer renders panels as styled plain text. Colour is dropped when
// the target writer is not a terminal.
type TextRenderer struct {
	st theme.Styles
}

var _ Renderer = TextRenderer{}

func NewTextRenderer(w io.Writer) TextRenderer {
	return TextRenderer{st: theme.NewStyles(lipgloss.NewRenderer(w))}
}

func (r TextRenderer) MainMenu(v MainMenuView) string {
	var b strings.Builder
	if v.DeletedID != "" {
		b.WriteString(r.st.Hot.Render(fmt.Sprintf("The game with the game id -> %s was deleted!", v.DeletedID)))
		b.WriteString("\n\n")
	}
	if v.ShowSaved {
		b.WriteString(r.savedGames(v.Saved))
		b.WriteString("\n\n")
	}
	if v.ShowRules {
		b.WriteString(r.rules())
		b.WriteString("\n\n")
	}
	b.WriteString(r.st.Title.Render("Welcome to the main menu! Pick an option (number)..."))
	b.WriteString("\n")
	for _, line := range []string{
		"1) Start a new game",
		"2) Load a game (you need to provide the game id)",
		"3) Delete a game (you need to provide the game id)",
		"4) List all saved games",
		"5) Display the game rules",
		"6) Quit the game",
	} {
		b.WriteString(line + "\n")
	}
	b.WriteString("Type here: ")
	return b.String()
}

func (r TextRenderer) savedGames(list []gamedto.SavedGameOutput) string {
	if len(list) == 0 {
		return r.st.Muted.Render("You don't have any saved games yet!")
	}
	lines := []string{r.st.Title.Render("Your saved game ids:")}
	for i, g := range list {
		lines = append(lines, fmt.Sprintf("%d) [ %s ]; The game stats -> won: %d lost: %d", i+1, g.ID, g.GamesWon, g.GamesLost))
	}
	return strings.Join(lines, "\n")
}

func (r TextRenderer) rules() string {
	return strings.Join([]string{
		r.st.Title.Render("Game rules:"),
		"- Rock beats scissors, scissors beats paper and paper beats rock.",
		"- A game is played over 3, 5, 7 or 9 rounds. Whoever wins more than half of them wins the game, e.g. 2 out of 3 or 3 out of 5.",
		"- A game ends as soon as one side reaches that number, so 3/0-2 means the game is over.",
		"- A draw is not counted as a round, the round counter only moves on a win or a loss.",
		"- In a game type r, p or s to play, S to save, qm to go back to the main menu and q to quit.",
	}, "\n")
}

func (r TextRenderer) GameIDInput(loading bool) string {
	title := "Delete a game"
	if loading {
		title = "Load a game"
	}
	return r.st.Title.Render(title) + "\n" +
		`Enter the game id here (type "qm" to go back to the main menu): `
}

func (r TextRenderer) RoundAmount() string {
	return r.st.Title.Render("New game") + "\n" +
		`Type the number of rounds (3, 5, 7 or 9) or "qm" to go back to the main menu: `
}

func (r TextRenderer) InGame(v gamedto.SessionView, savedID string) string {
	var b strings.Builder
	if savedID != "" {
		b.WriteString(r.st.Hot.Render("The game saved successfully! Here is the game id: " + savedID))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Game stats: won %d, lost %d\n", v.GamesWon, v.GamesLost)
	b.WriteString(r.st.Title.Render(fmt.Sprintf("Round: %d/%d", v.CurrentRound, v.MaxRounds)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Your choice: %s   PC choice: %s\n", r.choice(v.UserChoice), r.choice(v.OpponentChoice))
	fmt.Fprintf(&b, "Rounds won: %d   Rounds lost: %d   Total draws: %d\n", v.RoundsWon, v.RoundsLost, v.TotalDraws)
	b.WriteString(r.st.Muted.Render(fmt.Sprintf(
		"r = rock, p = paper, s = scissors | S save (saved games -> %d/%d) | qm main menu | q quit",
		v.SavedCount, v.Capacity)))
	b.WriteString("\nType here: ")
	return b.String()
}

func (r TextRenderer) choice(c string) string {
	switch c {
	case "r":
		return "[ rock ]"
	case "p":
		return "[ paper ]"
	case "s":
		return "[ scissors ]"
	default:
		return r.st.Muted.Render("Not set yet!")
	}
}

func (r TextRenderer) ContinueGame(v gamedto.SessionView) string {
	var b strings.Builder
	switch v.Winner {
	case "player":
		b.WriteString(r.st.Good.Render("[ YOU ] have won!"))
	case "opponent":
		b.WriteString(r.st.Bad.Render("[ PC ] has won!"))
	default:
		b.WriteString(r.st.Muted.Render("The game is over."))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Rounds won: %d   Rounds lost: %d   Total draws: %d\n", v.RoundsWon, v.RoundsLost, v.TotalDraws)
	fmt.Fprintf(&b, "Game stats: won %d, lost %d\n", v.GamesWon, v.GamesLost)
	b.WriteString(`Wanna play again? Type "y" to play again, "qm" to go back to the main menu or "q" to quit: `)
	return b.String()
}

func (r TextRenderer) Invalid(input, suggestion string) string {
	msg := fmt.Sprintf("This input -> [ %s ] is invalid, try again!", input)
	if suggestion != "" {
		msg += fmt.Sprintf(" Did you mean [ %s ]?", suggestion)
	}
	return r.st.Bad.Render(msg)
}

func (r TextRenderer) NotFound(id string) string {
	return r.st.Bad.Render("There is no game with this game id -> " + id)
}

func (r TextRenderer) CapacityReached(capacity int) string {
	return r.st.Bad.Render(fmt.Sprintf("You have reached the max number of saved games! (%d)", capacity))
}

func (r TextRenderer) Failure(err error) string {
	return r.st.Bad.Render("Something went wrong: " + err.Error())
}

func (r TextRenderer) FinalStats(v gamedto.SessionView) string {
	return r.st.Title.Render("You have finished the game. Here are your final stats:") + "\n" +
		fmt.Sprintf("Won: %d\nLost: %d", v.GamesWon, v.GamesLost)
}

func (r TextRenderer) Goodbye() string {
	return r.st.Title.Render("Good bye!")
}

package console

type PanelID int

const (
	MainMenu PanelID = iota
	GameIDInput
	RoundAmountInput
	InGame
	ContinueGame
)

func (p PanelID) String() string {
	switch p {
	case MainMenu:
		return "main_menu"
	case GameIDInput:
		return "game_id_input"
	case RoundAmountInput:
		return "round_amount_input"
	case InGame:
		return "in_game"
	case ContinueGame:
		return "continue_game"
	default:
		return "unknown"
	}
}

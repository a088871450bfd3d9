package console

// Flags coordinate intent between panels. One value is shared by pointer
// between every controller and the machine; each field lists its writers.
type Flags struct {
	// Set by main menu "2". Cleared by the game id panel on a successful
	// restore or on "qm".
	WantsLoad bool
	// Set by main menu "3". Cleared by the game id panel on a successful
	// delete or on "qm".
	WantsDelete bool
	// Set by main menu "4". Cleared when the main menu renders the listing.
	WantsListSaved bool
	// Set by main menu "5". Cleared when the main menu renders the rules.
	WantsGameRules bool
	// Set by every "qm" and by a successful delete. Cleared by the machine
	// when it switches to the main menu.
	WantsBackToMainMenu bool
	// Set by the round amount panel and by a successful restore. Cleared by
	// every "qm" that leaves a game.
	RoundsConfigured bool
}

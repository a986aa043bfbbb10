package game

// TurnStats records what happened during a single turn.
type TurnStats struct {
	Turn          int `json:"turn"`
	CardsDrawn    int `json:"cards_drawn"`
	CardsPlayed   int `json:"cards_played"`
	CardsInHand   int `json:"cards_in_hand"`
	LandsPlayed   int `json:"lands_played"`
	LandsCheated  int `json:"lands_cheated"`
	// ManaAvailable and ManaSpent count filters like signets net of the
	// mana used to activate them.
	ManaAvailable int `json:"mana_available"`
	ManaSpent     int `json:"mana_spent"`
	Actions       int `json:"actions"`
}

// Stats is the outcome of one game.
type Stats struct {
	MulliganCount int `json:"mulligan_count"`
	// CommanderTurn is the turn the commander was cast, 0 if never.
	CommanderTurn int         `json:"commander_turn"`
	OutOfCards    bool        `json:"out_of_cards"`
	Turns         []TurnStats `json:"turns"`
	// FirstPlayed maps card names to the turn they were first played.
	FirstPlayed map[string]int `json:"first_played,omitempty"`
}

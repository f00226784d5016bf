package game

// PublicPlayer is a player as seen by everyone else: hand exposed as a count
// only, never card identities.
type PublicPlayer struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"card_count"`
	IsBot     bool   `json:"is_bot"`
}

// PublicState is the room-wide projection of a session that gets broadcast
// after every accepted mutation. This projection is the engine's only privacy
// guarantee, so nothing card-identifying about other hands may ever be added
// here.
type PublicState struct {
	RoomId           string         `json:"room_id"`
	Players          []PublicPlayer `json:"players"`
	TopCard          *Card          `json:"top_card,omitempty"`
	ActiveColor      CardColor      `json:"active_color,omitempty"`
	CurrentPlayerId  string         `json:"current_player_id,omitempty"`
	Direction        int            `json:"direction"`
	PendingDraw      int            `json:"pending_draw"`
	DrawPileCount    int            `json:"draw_pile_count"`
	DiscardPileCount int            `json:"discard_pile_count"`
	Started          bool           `json:"started"`
	WinnerId         string         `json:"winner_id,omitempty"`
}

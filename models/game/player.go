package game

// Player is a seated participant of a game session. Bots share this exact
// representation, only the flag differs.
type Player struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Hand  []Card `json:"hand"`
	IsBot bool   `json:"is_bot"`
}

// HandCardById returns the index of the card in the player's hand, -1 if the
// player doesn't hold it.
func (p *Player) HandCardById(cardId int) int {
	for i, c := range p.Hand {
		if c.Id == cardId {
			return i
		}
	}
	return -1
}

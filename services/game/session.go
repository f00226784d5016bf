package game

import (
	"sync"

	game_constants "Cuatrico/constants/game"
	game_models "Cuatrico/models/game"
)

// Session is the authoritative state machine of one room's game. All
// mutations are serialized through the session lock: the socket handlers (and
// the bot processor, which goes through the exact same operations) hold it
// across the mutation AND the broadcasts it produces, so no client can ever
// receive a state older than one it already got.
type Session struct {
	RoomId      string
	MaxPlayers  int
	Players     []*game_models.Player
	DrawPile    []game_models.Card
	DiscardPile []game_models.Card

	CurrentPlayerId string
	Direction       int // +1 or -1
	ActiveColor     game_models.CardColor
	PendingDraw     int
	Started         bool
	WinnerId        string

	mu sync.Mutex
}

func NewSession(roomId string, maxPlayers int) *Session {
	return &Session{
		RoomId:     roomId,
		MaxPlayers: maxPlayers,
		Direction:  1,
	}
}

// Lock/Unlock expose the per-room single-writer lock. Handlers hold it across
// mutation + emits; the session methods below assume it is held.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Finished reports whether the game reached its terminal state.
func (s *Session) Finished() bool { return s.WinnerId != "" }

// AddPlayer seats a player. Returns false (no-op) when the game already
// started or the room is full. Duplicate ids are also a no-op.
func (s *Session) AddPlayer(id, name string, isBot bool) bool {
	if s.Started || len(s.Players) >= s.MaxPlayers {
		return false
	}
	if s.playerById(id) != nil {
		return false
	}
	s.Players = append(s.Players, &game_models.Player{Id: id, Name: name, IsBot: isBot})
	return true
}

// RemovePlayer unseats a player and returns their hand to the bottom of the
// draw pile (card conservation: every card stays in exactly one pile). If the
// removed player held the turn, the turn advances first. When a running game
// is left with a single player, that player wins by forfeit.
func (s *Session) RemovePlayer(id string) bool {
	idx := -1
	for i, p := range s.Players {
		if p.Id == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	if s.Started && !s.Finished() && s.CurrentPlayerId == id {
		s.advanceTurn(1)
	}

	leaving := s.Players[idx]
	s.DrawPile = append(s.DrawPile, leaving.Hand...)
	leaving.Hand = nil
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)

	if s.Started && !s.Finished() && len(s.Players) == 1 {
		s.WinnerId = s.Players[0].Id
		s.CurrentPlayerId = s.Players[0].Id
	}
	return true
}

// StartGame transitions NotStarted -> InProgress: builds and shuffles the
// deck, deals the initial hands and flips a numeral starting discard.
func (s *Session) StartGame() error {
	if s.Started {
		return game_models.NewConflictError("game already started")
	}
	if len(s.Players) < game_constants.MinRoomCapacity {
		return game_models.NewValidationError("at least 2 players are needed to start")
	}

	// 1. Build and shuffle the full deck
	s.DrawPile = NewDeck()
	shuffleCards(s.DrawPile)

	// 2. Deal the initial hands
	for _, p := range s.Players {
		p.Hand = make([]game_models.Card, 0, game_constants.InitialHandSize)
		for i := 0; i < game_constants.InitialHandSize; i++ {
			p.Hand = append(p.Hand, s.popDraw())
		}
	}

	// 3. Flip the starting discard. Wilds and action cards can't open the
	// game: push them back somewhere in the pile and retry.
	for {
		card := s.popDraw()
		if card.IsNumeral() {
			s.DiscardPile = []game_models.Card{card}
			s.ActiveColor = card.Color
			break
		}
		s.DrawPile = append(s.DrawPile, card)
		shuffleCards(s.DrawPile)
	}

	s.CurrentPlayerId = s.Players[0].Id
	s.Direction = 1
	s.PendingDraw = 0
	s.Started = true
	return nil
}

// PlayResult is the snapshot a handler broadcasts after an accepted play. It
// is captured while the session lock is still held.
type PlayResult struct {
	Card        game_models.Card
	ChosenColor game_models.CardColor
	PlayerId    string
	WinnerId    string
	Public      *game_models.PublicState
	Hand        []game_models.Card // the playing player's remaining hand
}

// PlayCard validates and applies one play. Validation completes fully before
// the first write: an illegal attempt leaves the session untouched.
func (s *Session) PlayCard(playerId string, cardId int, chosenColor game_models.CardColor) (*PlayResult, error) {
	if !s.Started {
		return nil, game_models.NewConflictError("game has not started")
	}
	if s.Finished() {
		return nil, game_models.NewConflictError("game is already over")
	}
	if playerId != s.CurrentPlayerId {
		return nil, game_models.NewConflictError("not your turn")
	}

	player := s.playerById(playerId)
	if player == nil {
		return nil, game_models.NewNotFoundError("player is not in this game")
	}

	idx := player.HandCardById(cardId)
	if idx == -1 {
		return nil, game_models.NewValidationError("card is not in your hand")
	}
	card := player.Hand[idx]

	if !s.isPlayable(card) {
		return nil, game_models.NewConflictError("card cannot be played on the current discard")
	}
	if card.IsWild() {
		if !game_models.IsPlayableColor(chosenColor) {
			return nil, game_models.NewValidationError("a color must be chosen for a wild card")
		}
	} else {
		chosenColor = card.Color
	}

	// Validation done, mutate: hand -> discard, color, effects, turn
	player.Hand = append(player.Hand[:idx], player.Hand[idx+1:]...)
	s.DiscardPile = append(s.DiscardPile, card)
	s.ActiveColor = chosenColor
	s.applyCardEffects(card)

	if len(player.Hand) == 0 {
		s.WinnerId = player.Id
	}

	return &PlayResult{
		Card:        card,
		ChosenColor: chosenColor,
		PlayerId:    player.Id,
		WinnerId:    s.WinnerId,
		Public:      s.PublicState(),
		Hand:        append([]game_models.Card(nil), player.Hand...),
	}, nil
}

// applyCardEffects advances the turn according to the played card.
// Two-player reverse is implemented as a skip: the direction flips and the
// turn advances two steps, landing back on the player who played it.
func (s *Session) applyCardEffects(card game_models.Card) {
	switch card.Value {
	case game_models.ValueSkip:
		s.advanceTurn(2)
	case game_models.ValueReverse:
		s.Direction = -s.Direction
		if len(s.Players) == 2 {
			s.advanceTurn(2)
		} else {
			s.advanceTurn(1)
		}
	case game_models.ValueDrawTwo, game_models.ValueWildDrawFour:
		s.PendingDraw += card.DrawPenalty()
		s.advanceTurn(1)
	default:
		s.advanceTurn(1)
	}
}

// DrawResult mirrors PlayResult for draws.
type DrawResult struct {
	PlayerId string
	Cards    []game_models.Card
	Public   *game_models.PublicState
	Hand     []game_models.Card
}

// DrawCard resolves the current player's draw. With a pending penalty the
// player draws the whole accumulated amount and forfeits the turn; otherwise
// exactly one card is drawn and the turn advances regardless of playability.
// When both piles run dry mid-draw the turn is conceded with whatever was
// drawn, it never fails.
func (s *Session) DrawCard(playerId string) (*DrawResult, error) {
	if !s.Started {
		return nil, game_models.NewConflictError("game has not started")
	}
	if s.Finished() {
		return nil, game_models.NewConflictError("game is already over")
	}
	if playerId != s.CurrentPlayerId {
		return nil, game_models.NewConflictError("not your turn")
	}
	player := s.playerById(playerId)
	if player == nil {
		return nil, game_models.NewNotFoundError("player is not in this game")
	}

	count := 1
	if s.PendingDraw > 0 {
		count = s.PendingDraw
	}

	drawn := s.drawUpTo(count)
	player.Hand = append(player.Hand, drawn...)
	s.PendingDraw = 0
	s.advanceTurn(1)

	return &DrawResult{
		PlayerId: player.Id,
		Cards:    drawn,
		Public:   s.PublicState(),
		Hand:     append([]game_models.Card(nil), player.Hand...),
	}, nil
}

// PublicState projects the session for a room broadcast (opponents' hands as
// counts only).
func (s *Session) PublicState() *game_models.PublicState {
	state := &game_models.PublicState{
		RoomId:           s.RoomId,
		Players:          make([]game_models.PublicPlayer, 0, len(s.Players)),
		ActiveColor:      s.ActiveColor,
		CurrentPlayerId:  s.CurrentPlayerId,
		Direction:        s.Direction,
		PendingDraw:      s.PendingDraw,
		DrawPileCount:    len(s.DrawPile),
		DiscardPileCount: len(s.DiscardPile),
		Started:          s.Started,
		WinnerId:         s.WinnerId,
	}
	for _, p := range s.Players {
		state.Players = append(state.Players, game_models.PublicPlayer{
			Id:        p.Id,
			Name:      p.Name,
			CardCount: len(p.Hand),
			IsBot:     p.IsBot,
		})
	}
	if top := s.topCard(); top != nil {
		c := *top
		state.TopCard = &c
	}
	return state
}

// HandOf returns a copy of the player's private hand, nil if unknown.
func (s *Session) HandOf(playerId string) []game_models.Card {
	p := s.playerById(playerId)
	if p == nil {
		return nil
	}
	return append([]game_models.Card(nil), p.Hand...)
}

// CurrentPlayer returns the player holding the turn (nil before start).
func (s *Session) CurrentPlayer() *game_models.Player {
	return s.playerById(s.CurrentPlayerId)
}

// HasPlayer reports whether the id is seated in this session.
func (s *Session) HasPlayer(id string) bool {
	return s.playerById(id) != nil
}

func (s *Session) PlayerCount() int { return len(s.Players) }

// BotCount counts seated bots (used to number newly added ones).
func (s *Session) BotCount() int {
	n := 0
	for _, p := range s.Players {
		if p.IsBot {
			n++
		}
	}
	return n
}

// HasHumans reports whether any non-bot player is still seated. A room with
// only bots left has nobody to play for and gets torn down.
func (s *Session) HasHumans() bool {
	for _, p := range s.Players {
		if !p.IsBot {
			return true
		}
	}
	return false
}

// IsPlayable checks a card against (top card, active color, pending draw).
// Exported so the bot policy scans with the exact rule the validator applies.
func (s *Session) IsPlayable(card game_models.Card) bool {
	return s.isPlayable(card)
}

func (s *Session) isPlayable(card game_models.Card) bool {
	top := s.topCard()
	if top == nil {
		return false
	}
	// With a pending penalty only stacking the same draw value is legal
	if s.PendingDraw > 0 {
		return card.DrawPenalty() > 0 && card.Value == top.Value
	}
	if card.IsWild() {
		return true
	}
	return card.Color == s.ActiveColor || card.Value == top.Value
}

func (s *Session) topCard() *game_models.Card {
	if len(s.DiscardPile) == 0 {
		return nil
	}
	return &s.DiscardPile[len(s.DiscardPile)-1]
}

func (s *Session) playerById(id string) *game_models.Player {
	for _, p := range s.Players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (s *Session) advanceTurn(steps int) {
	if len(s.Players) == 0 {
		s.CurrentPlayerId = ""
		return
	}
	idx := 0
	for i, p := range s.Players {
		if p.Id == s.CurrentPlayerId {
			idx = i
			break
		}
	}
	n := len(s.Players)
	idx = ((idx+s.Direction*steps)%n + n) % n
	s.CurrentPlayerId = s.Players[idx].Id
}

// popDraw pops the top of the draw pile, reshuffling the discard (minus its
// top card) back in when it runs out. Zero-value card when truly nothing is
// left; callers use drawUpTo to stay safe.
func (s *Session) popDraw() game_models.Card {
	if len(s.DrawPile) == 0 {
		s.reshuffleDiscard()
	}
	if len(s.DrawPile) == 0 {
		return game_models.Card{}
	}
	card := s.DrawPile[len(s.DrawPile)-1]
	s.DrawPile = s.DrawPile[:len(s.DrawPile)-1]
	return card
}

// drawUpTo draws at most n cards, stopping early when both piles are
// exhausted.
func (s *Session) drawUpTo(n int) []game_models.Card {
	drawn := make([]game_models.Card, 0, n)
	for i := 0; i < n; i++ {
		if len(s.DrawPile) == 0 {
			s.reshuffleDiscard()
		}
		if len(s.DrawPile) == 0 {
			break
		}
		drawn = append(drawn, s.popDraw())
	}
	return drawn
}

// reshuffleDiscard turns the discard pile (preserving its top card) back into
// the draw pile.
func (s *Session) reshuffleDiscard() {
	if len(s.DiscardPile) <= 1 {
		return
	}
	top := s.DiscardPile[len(s.DiscardPile)-1]
	s.DrawPile = append(s.DrawPile, s.DiscardPile[:len(s.DiscardPile)-1]...)
	s.DiscardPile = []game_models.Card{top}
	shuffleCards(s.DrawPile)
}

package bots

import (
	"log"
	"sync"
	"time"

	game_models "Cuatrico/models/game"
	"Cuatrico/services/game"
)

// Coordinator schedules the think-delay before every bot move. At most one
// outstanding deferral exists per room; the next one is only scheduled after
// the prior move completed, so chained bot turns never recurse. Teardown
// cancels the room's pending deferral.
type Coordinator struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	delay   time.Duration
	act     func(roomId string)
}

func NewCoordinator(delay time.Duration) *Coordinator {
	return &Coordinator{
		pending: make(map[string]*time.Timer),
		delay:   delay,
	}
}

// SetActFunc wires the function that performs one bot move. The function must
// treat a missing room as a no-op: teardown can race with the timer.
func (c *Coordinator) SetActFunc(fn func(roomId string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.act = fn
}

// Schedule queues the bot's move after the think-delay. A room with a
// deferral already pending is left alone.
func (c *Coordinator) Schedule(roomId string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.pending[roomId]; exists {
		return
	}
	c.pending[roomId] = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		delete(c.pending, roomId)
		fn := c.act
		c.mu.Unlock()
		if fn != nil {
			fn(roomId)
		}
	})
}

// Cancel stops the room's pending deferral, if any.
func (c *Coordinator) Cancel(roomId string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timer, exists := c.pending[roomId]; exists {
		timer.Stop()
		delete(c.pending, roomId)
		log.Printf("[BOT] Cancelled pending bot turn for room %s", roomId)
	}
}

// HasPending reports whether a deferral is outstanding for the room.
func (c *Coordinator) HasPending(roomId string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.pending[roomId]
	return exists
}

// Move is the decision of the bot policy for one turn.
type Move struct {
	Draw        bool
	CardId      int
	ChosenColor game_models.CardColor
}

// ChooseMove picks the bot's move under the same legality rule the session
// validator applies: first legal card in hand order, draw when none is. For a
// wild the chosen color is the most frequent color left in the hand (red when
// the hand has no colored cards). Caller must hold the session lock.
func ChooseMove(session *game.Session, playerId string) Move {
	hand := session.HandOf(playerId)
	for _, card := range hand {
		if !session.IsPlayable(card) {
			continue
		}
		move := Move{CardId: card.Id}
		if card.IsWild() {
			move.ChosenColor = mostFrequentColor(hand, card.Id)
		}
		return move
	}
	return Move{Draw: true}
}

func mostFrequentColor(hand []game_models.Card, playedCardId int) game_models.CardColor {
	counts := make(map[game_models.CardColor]int)
	for _, card := range hand {
		if card.Id == playedCardId || card.IsWild() {
			continue
		}
		counts[card.Color]++
	}

	best := game_models.ColorRed
	bestCount := 0
	for _, color := range game_models.PlayableColors {
		if counts[color] > bestCount {
			best = color
			bestCount = counts[color]
		}
	}
	return best
}

package bots

import (
	"testing"
	"time"

	game_models "Cuatrico/models/game"
	"Cuatrico/services/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(id int, color game_models.CardColor, value game_models.CardValue) game_models.Card {
	return game_models.Card{Id: id, Color: color, Value: value}
}

func botSession(hand []game_models.Card, top game_models.Card) *game.Session {
	s := game.NewSession("room-1", 4)
	s.Players = []*game_models.Player{
		{Id: "bot-1", Name: "Cuatriquito 1", IsBot: true, Hand: hand},
		{Id: "ana", Name: "ana", Hand: []game_models.Card{card(90, game_models.ColorGreen, "1")}},
	}
	s.DiscardPile = []game_models.Card{top}
	s.ActiveColor = top.Color
	s.CurrentPlayerId = "bot-1"
	s.Direction = 1
	s.Started = true
	return s
}

func TestChooseMove(t *testing.T) {
	t.Run("plays the first legal card in hand order", func(t *testing.T) {
		s := botSession([]game_models.Card{
			card(1, game_models.ColorBlue, "3"),
			card(2, game_models.ColorRed, "7"),
			card(3, game_models.ColorRed, "9"),
		}, card(100, game_models.ColorRed, "5"))

		move := ChooseMove(s, "bot-1")
		assert.False(t, move.Draw)
		assert.Equal(t, 2, move.CardId)
	})

	t.Run("draws when nothing is playable", func(t *testing.T) {
		s := botSession([]game_models.Card{
			card(1, game_models.ColorBlue, "3"),
			card(2, game_models.ColorGreen, "7"),
		}, card(100, game_models.ColorRed, "5"))

		move := ChooseMove(s, "bot-1")
		assert.True(t, move.Draw)
	})

	t.Run("picks the most frequent hand color for a wild", func(t *testing.T) {
		s := botSession([]game_models.Card{
			card(1, game_models.ColorWild, game_models.ValueWild),
			card(2, game_models.ColorBlue, "7"),
			card(3, game_models.ColorBlue, "2"),
			card(4, game_models.ColorGreen, "4"),
		}, card(100, game_models.ColorRed, "5"))

		move := ChooseMove(s, "bot-1")
		require.False(t, move.Draw)
		assert.Equal(t, 1, move.CardId)
		assert.Equal(t, game_models.ColorBlue, move.ChosenColor)
	})

	t.Run("defaults to red when only wilds remain", func(t *testing.T) {
		s := botSession([]game_models.Card{
			card(1, game_models.ColorWild, game_models.ValueWild),
			card(2, game_models.ColorWild, game_models.ValueWild),
		}, card(100, game_models.ColorRed, "5"))

		move := ChooseMove(s, "bot-1")
		require.False(t, move.Draw)
		assert.Equal(t, game_models.ColorRed, move.ChosenColor)
	})

	t.Run("respects a pending penalty", func(t *testing.T) {
		s := botSession([]game_models.Card{
			card(1, game_models.ColorRed, "7"),
			card(2, game_models.ColorBlue, game_models.ValueDrawTwo),
		}, card(100, game_models.ColorRed, game_models.ValueDrawTwo))
		s.PendingDraw = 2

		move := ChooseMove(s, "bot-1")
		require.False(t, move.Draw)
		assert.Equal(t, 2, move.CardId, "only stacking the penalty is legal")
	})
}

func TestScheduling(t *testing.T) {
	t.Run("fires the act func after the delay", func(t *testing.T) {
		c := NewCoordinator(10 * time.Millisecond)
		acted := make(chan string, 1)
		c.SetActFunc(func(roomId string) { acted <- roomId })

		c.Schedule("room-1")
		assert.True(t, c.HasPending("room-1"))

		select {
		case roomId := <-acted:
			assert.Equal(t, "room-1", roomId)
		case <-time.After(time.Second):
			t.Fatal("scheduled bot turn never fired")
		}
		assert.False(t, c.HasPending("room-1"))
	})

	t.Run("at most one deferral per room", func(t *testing.T) {
		c := NewCoordinator(20 * time.Millisecond)
		acted := make(chan string, 4)
		c.SetActFunc(func(roomId string) { acted <- roomId })

		c.Schedule("room-1")
		c.Schedule("room-1")
		c.Schedule("room-1")

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, 1, len(acted))
	})

	t.Run("cancel stops the pending deferral", func(t *testing.T) {
		c := NewCoordinator(20 * time.Millisecond)
		acted := make(chan string, 1)
		c.SetActFunc(func(roomId string) { acted <- roomId })

		c.Schedule("room-1")
		c.Cancel("room-1")
		assert.False(t, c.HasPending("room-1"))

		time.Sleep(50 * time.Millisecond)
		select {
		case <-acted:
			t.Fatal("cancelled deferral still fired")
		default:
		}
	})
}

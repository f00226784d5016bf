package game

import (
	"math/rand"

	game_models "Cuatrico/models/game"
)

// NewDeck builds the full 108-card deck with stable sequential ids:
// per color one "0", two each of "1".."9", "skip", "reverse" and "draw_two",
// plus four "wild" and four "wild_draw_four".
func NewDeck() []game_models.Card {
	var deck []game_models.Card
	id := 0

	add := func(color game_models.CardColor, value game_models.CardValue, n int) {
		for i := 0; i < n; i++ {
			deck = append(deck, game_models.Card{Id: id, Color: color, Value: value})
			id++
		}
	}

	for _, color := range game_models.PlayableColors {
		add(color, game_models.CardValue("0"), 1)
		for v := '1'; v <= '9'; v++ {
			add(color, game_models.CardValue(string(v)), 2)
		}
		add(color, game_models.ValueSkip, 2)
		add(color, game_models.ValueReverse, 2)
		add(color, game_models.ValueDrawTwo, 2)
	}
	add(game_models.ColorWild, game_models.ValueWild, 4)
	add(game_models.ColorWild, game_models.ValueWildDrawFour, 4)

	return deck
}

func shuffleCards(cards []game_models.Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

package game

type CardColor string

const (
	ColorRed    CardColor = "red"
	ColorBlue   CardColor = "blue"
	ColorGreen  CardColor = "green"
	ColorYellow CardColor = "yellow"
	ColorWild   CardColor = "wild"
)

type CardValue string

const (
	ValueSkip         CardValue = "skip"
	ValueReverse      CardValue = "reverse"
	ValueDrawTwo      CardValue = "draw_two"
	ValueWild         CardValue = "wild"
	ValueWildDrawFour CardValue = "wild_draw_four"
)

// Card is one of the 108 cards of a session's deck. Ids are assigned when the
// deck is built and are stable for the whole game.
type Card struct {
	Id    int       `json:"id"`
	Color CardColor `json:"color"`
	Value CardValue `json:"value"`
}

// PlayableColors are the colors a wild card can be resolved to.
var PlayableColors = []CardColor{ColorRed, ColorBlue, ColorGreen, ColorYellow}

func (c Card) IsWild() bool {
	return c.Value == ValueWild || c.Value == ValueWildDrawFour
}

// IsNumeral reports whether the card is a plain number card (legal as the
// starting discard).
func (c Card) IsNumeral() bool {
	switch c.Value {
	case ValueSkip, ValueReverse, ValueDrawTwo, ValueWild, ValueWildDrawFour:
		return false
	}
	return true
}

// DrawPenalty is the number of cards the played card forces onto the next
// player (0 for non-draw cards).
func (c Card) DrawPenalty() int {
	switch c.Value {
	case ValueDrawTwo:
		return 2
	case ValueWildDrawFour:
		return 4
	}
	return 0
}

func IsPlayableColor(color CardColor) bool {
	for _, c := range PlayableColors {
		if c == color {
			return true
		}
	}
	return false
}

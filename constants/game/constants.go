package game_constants

import "time"

// Room limits
const MinRoomCapacity = 2
const MaxRoomCapacity = 4
const MaxRoomNameLength = 32
const JoinCodeLength = 6
const JoinCodeMaxAttempts = 5

// Deck composition: per color one "0", two of "1".."9" and of each action
// card, plus 4 wilds and 4 wild-draw-fours => 108 cards
const DeckSize = 108
const InitialHandSize = 7

// Timings
const BotThinkDelay = 1 * time.Second
const RoomInactivityTimeout = 2 * time.Minute
const RateLimitSweepInterval = 1 * time.Minute

// Rate limiting tuning per category (window / max requests / block duration)
const (
	GlobalWindow = 10 * time.Second
	GlobalMax    = 30
	GlobalBlock  = 30 * time.Second

	RoomCreateWindow = 1 * time.Minute
	RoomCreateMax    = 5
	RoomCreateBlock  = 2 * time.Minute

	GameActionWindow = 5 * time.Second
	GameActionMax    = 10
	GameActionBlock  = 15 * time.Second
)

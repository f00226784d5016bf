package game

import "time"

// Room is the registry's metadata for a lobby. The live game state lives in
// the session service, this struct is what gets stored/listed.
type Room struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"` // 6-char alphanumeric join code
	MaxPlayers int       `json:"max_players"`
	HostId     string    `json:"host_id"`
	CreatedAt  time.Time `json:"created_at"`
}

package store

import "fmt"

const RoomKeyPrefix = "room:"

// FormatRoomKey builds the store key for a room's metadata.
// Key format: "room:{id}"
func FormatRoomKey(roomId string) string {
	return fmt.Sprintf("%s%s", RoomKeyPrefix, roomId)
}

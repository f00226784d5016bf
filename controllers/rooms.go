package controllers

import (
	"net/http"

	"Cuatrico/services/game"
	"Cuatrico/services/registry"

	"github.com/gin-gonic/gin"
)

// @Summary Lists all rooms.
// @Description Returns the open rooms together with their live occupancy so a
// lobby browser can show which ones can still be joined.
// @Tags rooms
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} object{error=string}
// @Router /rooms [get]
func ListRooms(reg *registry.Registry, games *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := reg.ListRooms()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rooms"})
			return
		}

		out := make([]gin.H, 0, len(rooms))
		for _, room := range rooms {
			entry := gin.H{
				"room_id":     room.Id,
				"name":        room.Name,
				"code":        room.Code,
				"max_players": room.MaxPlayers,
				"host_id":     room.HostId,
				"created_at":  room.CreatedAt,
			}
			if session, exists := games.Get(room.Id); exists {
				session.Lock()
				entry["player_count"] = session.PlayerCount()
				entry["started"] = session.Started
				session.Unlock()
			}
			out = append(out, entry)
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Resolves a join code to its room.
// @Description Lets a client translate a shareable 6-char code into the room
// id before opening the socket connection.
// @Tags rooms
// @Produce json
// @Param code path string true "Join code"
// @Success 200 {object} object
// @Failure 404 {object} object{error=string}
// @Router /rooms/{code} [get]
func GetRoomByCode(reg *registry.Registry, games *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		room, err := reg.GetRoomByCode(code)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		entry := gin.H{
			"room_id":     room.Id,
			"name":        room.Name,
			"code":        room.Code,
			"max_players": room.MaxPlayers,
			"host_id":     room.HostId,
		}
		if session, exists := games.Get(room.Id); exists {
			session.Lock()
			entry["player_count"] = session.PlayerCount()
			entry["started"] = session.Started
			session.Unlock()
		}
		c.JSON(http.StatusOK, entry)
	}
}

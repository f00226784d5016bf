package handlers

import (
	"log"

	socketio_types "Cuatrico/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle socket.io client disconnections. Before a game starts
// the player is simply unseated; mid-game the seat survives in a grace period
// governed by the room's inactivity timer, so a reconnect via join_room picks
// the game right back up.
func HandleDisconnecting(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting started - User: %s", username)

		binding, bound := services.Sessions.Unbind(string(client.Id()))
		if bound {
			session, exists := services.Games.Get(binding.RoomId)
			if exists {
				session.Lock()
				if !session.Started {
					// Lobby phase: unseat like a voluntary leave
					session.RemovePlayer(username)
					state := session.PublicState()
					hasHumans := session.HasHumans()
					sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("player_left", gin.H{
						"player_id": username,
						"room_id":   binding.RoomId,
						"reason":    "disconnected",
					})
					sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("game_state", state)
					session.Unlock()

					if !hasHumans {
						TeardownRoom(services, sio, binding.RoomId, "empty")
					}
				} else {
					// Mid-game: keep the seat, the inactivity timer decides
					log.Printf("[DISCONNECT] User %s left mid-game in room %s, grace period running",
						username, binding.RoomId)
					sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("player_disconnected", gin.H{
						"player_id": username,
						"room_id":   binding.RoomId,
					})
					session.Unlock()
				}
			}
		}

		// Finally remove connection from map
		sio.RemoveConnection(username)
		log.Printf("[DISCONNECT-DONE] User disconnected: %s", username)
	}
}

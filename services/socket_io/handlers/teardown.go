package handlers

import (
	"log"

	socketio_types "Cuatrico/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// TeardownRoom is the single forced-removal path: inactivity expiry, emptied
// rooms and any future administrative kill all land here. Room existence is
// re-checked first because teardown can race with a normal deletion, and a
// missing room must be a no-op.
func TeardownRoom(services *socketio_types.Services, sio *socketio_types.SocketServer,
	roomId string, reason string) {

	if _, err := services.Registry.GetRoom(roomId); err != nil {
		log.Printf("[TEARDOWN] Room %s already gone (%s), nothing to do", roomId, reason)
		return
	}

	log.Printf("[TEARDOWN] Tearing down room %s (reason: %s)", roomId, reason)

	// 1. Stop the bot chain and the inactivity timer, drop all bindings
	services.Bots.Cancel(roomId)
	services.Sessions.CancelRoom(roomId)

	// 2. Destroy the session together with its room
	services.Games.Delete(roomId)
	if err := services.Registry.DeleteRoom(roomId); err != nil {
		log.Printf("[TEARDOWN-ERROR] Error deleting room %s: %v", roomId, err)
	}

	// 3. Tell whoever is still connected
	sio.Sio_server.To(socket.Room(roomId)).Emit("room_terminated", gin.H{
		"room_id": roomId,
		"reason":  reason,
	})

	log.Printf("[TEARDOWN-SUCCESS] Room %s removed", roomId)
}

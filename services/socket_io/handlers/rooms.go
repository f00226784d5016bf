package handlers

import (
	"fmt"
	"log"

	"Cuatrico/services/ratelimit"
	socketio_types "Cuatrico/services/socket_io/types"
	socketio_utils "Cuatrico/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle the creation of a new room. The creator is seated as the
// host immediately, so `create_room` doubles as their join.
func HandleCreateRoom(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[ROOM-CREATE] HandleCreateRoom started - User: %s, Socket ID: %s", username, client.Id())

		if !socketio_utils.Admit(services.Limiter, client, username,
			ratelimit.CategoryGlobal, ratelimit.CategoryRoomCreation) {
			return
		}

		payload, ok := socketio_utils.ObjectArg(args)
		if !ok {
			log.Printf("[ROOM-CREATE-ERROR] Missing payload from user %s", username)
			client.Emit("error", gin.H{"error": "Missing room data", "kind": "validation"})
			return
		}

		name := socketio_utils.StringField(payload, "room_name")
		capacity, _ := socketio_utils.IntField(payload, "max_players")

		// 1. Register the room (validates name and capacity)
		room, err := services.Registry.CreateRoom(name, capacity, username)
		if err != nil {
			log.Printf("[ROOM-CREATE-ERROR] %v", err)
			socketio_utils.EmitError(client, err)
			return
		}

		// 2. Create the session lazily bound to the room and seat the host
		session := services.Games.Create(room.Id, room.MaxPlayers)
		session.Lock()
		session.AddPlayer(username, username, false)
		state := session.PublicState()
		session.Unlock()

		// 3. Bind the connection and start the inactivity clock
		services.Sessions.Bind(string(client.Id()), room.Id, username)
		services.Sessions.Touch(string(client.Id()), room.Id)
		client.Join(socket.Room(room.Id))

		log.Printf("[ROOM-CREATE-SUCCESS] Room %s (code %s) created by %s", room.Id, room.Code, username)
		client.Emit("room_created", gin.H{
			"room_id":     room.Id,
			"code":        room.Code,
			"name":        room.Name,
			"max_players": room.MaxPlayers,
		})
		client.Emit("game_state", state)
	}
}

// Function to handle joining an existing room, by id or by join code. A
// player already seated in the room is treated as a reconnection: rebind the
// new connection and resend the state they missed.
func HandleJoinRoom(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinRoom started - User: %s, Args: %v, Socket ID: %s",
			username, args, client.Id())

		if !socketio_utils.Admit(services.Limiter, client, username, ratelimit.CategoryGlobal) {
			return
		}

		payload, ok := socketio_utils.ObjectArg(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing room id or code", "kind": "validation"})
			return
		}

		// 1. Resolve the room, by id first and by join code as fallback
		roomId := socketio_utils.StringField(payload, "room_id")
		var roomErr error
		var targetRoomId string
		if roomId != "" {
			targetRoom, e := services.Registry.GetRoom(roomId)
			roomErr = e
			if e == nil {
				targetRoomId = targetRoom.Id
			}
		} else if code := socketio_utils.StringField(payload, "code"); code != "" {
			targetRoom, e := services.Registry.GetRoomByCode(code)
			roomErr = e
			if e == nil {
				targetRoomId = targetRoom.Id
			}
		} else {
			client.Emit("error", gin.H{"error": "Missing room id or code", "kind": "validation"})
			return
		}
		if roomErr != nil {
			log.Printf("[JOIN-ERROR] Room lookup failed for user %s: %v", username, roomErr)
			socketio_utils.EmitError(client, roomErr)
			return
		}

		session, exists := services.Games.Get(targetRoomId)
		if !exists {
			client.Emit("error", gin.H{"error": "Room not found", "kind": "not_found"})
			return
		}

		session.Lock()

		// 2. Reconnection: the identity is already seated, just rebind
		if session.HasPlayer(username) {
			state := session.PublicState()
			hand := session.HandOf(username)
			started := session.Started
			session.Unlock()

			services.Sessions.Bind(string(client.Id()), targetRoomId, username)
			client.Join(socket.Room(targetRoomId))

			log.Printf("[JOIN-RECONNECT] User %s reconnected to room %s", username, targetRoomId)
			client.Emit("joined_room", gin.H{"room_id": targetRoomId, "reconnected": true})
			client.Emit("game_state", state)
			if started {
				client.Emit("hand_update", gin.H{"cards": hand})
			}
			return
		}

		// 3. Fresh join: adjudicate against capacity and started flag
		if err := services.Registry.CanJoin(targetRoomId, session.Started, session.PlayerCount()); err != nil {
			session.Unlock()
			log.Printf("[JOIN-ERROR] User %s rejected from room %s: %v", username, targetRoomId, err)
			socketio_utils.EmitError(client, err)
			return
		}
		session.AddPlayer(username, username, false)
		state := session.PublicState()

		services.Sessions.Bind(string(client.Id()), targetRoomId, username)
		client.Join(socket.Room(targetRoomId))

		log.Printf("[JOIN-SUCCESS] User %s joined room %s", username, targetRoomId)
		client.Emit("joined_room", gin.H{"room_id": targetRoomId})
		client.Emit("game_state", state)
		sio.Sio_server.To(socket.Room(targetRoomId)).Emit("player_joined", gin.H{
			"player_id": username,
			"name":      username,
			"is_bot":    false,
		})
		sio.Sio_server.To(socket.Room(targetRoomId)).Emit("game_state", state)
		session.Unlock()
	}
}

// Function to handle a voluntary exit. The leaver's cards go back to the draw
// pile; an emptied room (no humans left) is torn down.
func HandleLeaveRoom(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[LEAVE] HandleLeaveRoom started - User: %s", username)

		if !socketio_utils.Admit(services.Limiter, client, username, ratelimit.CategoryGlobal) {
			return
		}

		binding, bound := services.Sessions.Unbind(string(client.Id()))
		if !bound {
			client.Emit("error", gin.H{"error": "You are not in a room", "kind": "not_found"})
			return
		}

		session, exists := services.Games.Get(binding.RoomId)
		if !exists {
			client.Leave(socket.Room(binding.RoomId))
			return
		}

		session.Lock()
		session.RemovePlayer(username)
		state := session.PublicState()
		winnerId := session.WinnerId
		hasHumans := session.HasHumans()

		client.Leave(socket.Room(binding.RoomId))
		sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("player_left", gin.H{
			"player_id": username,
			"room_id":   binding.RoomId,
			"reason":    "left",
		})
		sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("game_state", state)
		if winnerId != "" && session.Started {
			sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("game_over", gin.H{
				"winner_id": winnerId,
				"reason":    "forfeit",
			})
		}
		session.Unlock()

		log.Printf("[LEAVE-SUCCESS] User %s left room %s", username, binding.RoomId)

		if !hasHumans {
			TeardownRoom(services, sio, binding.RoomId, "empty")
		}
	}
}

// Function to seat an automated player. Host only; bots play through the same
// contract as everyone else, the flag is all that differs.
func HandleAddBot(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[ADD-BOT] HandleAddBot started - User: %s", username)

		if !socketio_utils.Admit(services.Limiter, client, username, ratelimit.CategoryGlobal) {
			return
		}

		binding, bound := services.Sessions.BindingFor(string(client.Id()))
		if !bound {
			client.Emit("error", gin.H{"error": "You are not in a room", "kind": "not_found"})
			return
		}

		room, err := services.Registry.GetRoom(binding.RoomId)
		if err != nil {
			socketio_utils.EmitError(client, err)
			return
		}
		if room.HostId != username {
			client.Emit("error", gin.H{"error": "Only the host can add bots", "kind": "conflict"})
			return
		}

		session, exists := services.Games.Get(binding.RoomId)
		if !exists {
			client.Emit("error", gin.H{"error": "Room not found", "kind": "not_found"})
			return
		}

		session.Lock()
		botNumber := session.BotCount() + 1
		botId := fmt.Sprintf("bot-%d", botNumber)
		botName := fmt.Sprintf("Cuatriquito %d", botNumber)
		if !session.AddPlayer(botId, botName, true) {
			session.Unlock()
			client.Emit("error", gin.H{"error": "Room is full or the game already started", "kind": "conflict"})
			return
		}
		state := session.PublicState()

		log.Printf("[ADD-BOT-SUCCESS] Bot %s added to room %s by %s", botId, binding.RoomId, username)
		sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("player_joined", gin.H{
			"player_id": botId,
			"name":      botName,
			"is_bot":    true,
		})
		sio.Sio_server.To(socket.Room(binding.RoomId)).Emit("game_state", state)
		session.Unlock()
	}
}

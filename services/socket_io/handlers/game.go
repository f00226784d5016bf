package handlers

import (
	"log"

	game_models "Cuatrico/models/game"
	"Cuatrico/services/game"
	"Cuatrico/services/ratelimit"
	socketio_types "Cuatrico/services/socket_io/types"
	socketio_utils "Cuatrico/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// resolveSession maps the connection to its bound room's session, emitting
// the error itself when the player isn't in one.
func resolveSession(services *socketio_types.Services, client *socket.Socket) (string, *game.Session, bool) {
	binding, bound := services.Sessions.BindingFor(string(client.Id()))
	if !bound {
		client.Emit("error", gin.H{"error": "You are not in a room", "kind": "not_found"})
		return "", nil, false
	}
	session, exists := services.Games.Get(binding.RoomId)
	if !exists {
		client.Emit("error", gin.H{"error": "Room not found", "kind": "not_found"})
		return "", nil, false
	}
	return binding.RoomId, session, true
}

// Function to handle the host starting the game: shuffle, deal, flip the
// starting discard and push every player their private hand.
func HandleStartGame(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[START] HandleStartGame started - User: %s", username)

		if !socketio_utils.Admit(services.Limiter, client, username,
			ratelimit.CategoryGlobal, ratelimit.CategoryGameAction) {
			return
		}

		roomId, session, ok := resolveSession(services, client)
		if !ok {
			return
		}

		room, err := services.Registry.GetRoom(roomId)
		if err != nil {
			socketio_utils.EmitError(client, err)
			return
		}
		if room.HostId != username {
			client.Emit("error", gin.H{"error": "Only the host can start the game", "kind": "conflict"})
			return
		}

		session.Lock()
		if err := session.StartGame(); err != nil {
			session.Unlock()
			log.Printf("[START-ERROR] Room %s: %v", roomId, err)
			socketio_utils.EmitError(client, err)
			return
		}
		state := session.PublicState()

		// game_started fires exactly once: a second start_game fails above
		// with a Conflict before reaching this point
		log.Printf("[START-SUCCESS] Game started in room %s, first turn: %s", roomId, state.CurrentPlayerId)
		sio.Sio_server.To(socket.Room(roomId)).Emit("game_started", gin.H{
			"room_id":           roomId,
			"current_player_id": state.CurrentPlayerId,
		})
		sio.Sio_server.To(socket.Room(roomId)).Emit("game_state", state)

		// Private hand push, one per connected human player
		for _, p := range state.Players {
			if p.IsBot {
				continue
			}
			if conn, connected := sio.GetConnection(p.Id); connected {
				conn.Emit("hand_update", gin.H{"cards": session.HandOf(p.Id)})
			}
		}

		currentIsBot := session.CurrentPlayer() != nil && session.CurrentPlayer().IsBot
		session.Unlock()

		services.Sessions.Touch(string(client.Id()), roomId)
		if currentIsBot {
			services.Bots.Schedule(roomId)
		}
	}
}

// Function to handle a play attempt. Validation is all-or-nothing inside the
// session: a rejected play emits only to the mover and broadcasts nothing.
func HandlePlayCard(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[PLAY] HandlePlayCard started - User: %s, Args: %v", username, args)

		if !socketio_utils.Admit(services.Limiter, client, username,
			ratelimit.CategoryGlobal, ratelimit.CategoryGameAction) {
			return
		}

		payload, ok := socketio_utils.ObjectArg(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing card data", "kind": "validation"})
			return
		}
		cardId, hasCard := socketio_utils.IntField(payload, "card_id")
		if !hasCard {
			client.Emit("error", gin.H{"error": "Missing card id", "kind": "validation"})
			return
		}
		chosenColor := game_models.CardColor(socketio_utils.StringField(payload, "chosen_color"))

		roomId, session, ok := resolveSession(services, client)
		if !ok {
			return
		}

		session.Lock()
		result, err := session.PlayCard(username, cardId, chosenColor)
		if err != nil {
			session.Unlock()
			log.Printf("[PLAY-ERROR] User %s in room %s: %v", username, roomId, err)
			socketio_utils.EmitError(client, err)
			return
		}

		log.Printf("[PLAY-SUCCESS] User %s played %s %s in room %s",
			username, result.Card.Color, result.Card.Value, roomId)
		sio.Sio_server.To(socket.Room(roomId)).Emit("card_played", gin.H{
			"player_id":    result.PlayerId,
			"card":         result.Card,
			"chosen_color": result.ChosenColor,
		})
		sio.Sio_server.To(socket.Room(roomId)).Emit("game_state", result.Public)
		client.Emit("hand_update", gin.H{"cards": result.Hand})
		if result.WinnerId != "" {
			log.Printf("[GAME-OVER] %s won in room %s", result.WinnerId, roomId)
			sio.Sio_server.To(socket.Room(roomId)).Emit("game_over", gin.H{
				"winner_id": result.WinnerId,
			})
		}
		nextIsBot := result.WinnerId == "" &&
			session.CurrentPlayer() != nil && session.CurrentPlayer().IsBot
		session.Unlock()

		services.Sessions.Touch(string(client.Id()), roomId)
		if nextIsBot {
			services.Bots.Schedule(roomId)
		}
	}
}

// Function to handle a draw. With a pending penalty the full amount is drawn
// and the turn is forfeited; otherwise one card, turn advances either way.
func HandleDrawCard(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DRAW] HandleDrawCard started - User: %s", username)

		if !socketio_utils.Admit(services.Limiter, client, username,
			ratelimit.CategoryGlobal, ratelimit.CategoryGameAction) {
			return
		}

		roomId, session, ok := resolveSession(services, client)
		if !ok {
			return
		}

		session.Lock()
		result, err := session.DrawCard(username)
		if err != nil {
			session.Unlock()
			log.Printf("[DRAW-ERROR] User %s in room %s: %v", username, roomId, err)
			socketio_utils.EmitError(client, err)
			return
		}

		log.Printf("[DRAW-SUCCESS] User %s drew %d card(s) in room %s", username, len(result.Cards), roomId)
		// The drawer gets the card identities, the room only the count
		client.Emit("card_drawn", gin.H{
			"cards": result.Cards,
			"count": len(result.Cards),
		})
		client.Emit("hand_update", gin.H{"cards": result.Hand})
		sio.Sio_server.To(socket.Room(roomId)).Emit("cards_drawn", gin.H{
			"player_id": result.PlayerId,
			"count":     len(result.Cards),
		})
		sio.Sio_server.To(socket.Room(roomId)).Emit("game_state", result.Public)
		nextIsBot := session.CurrentPlayer() != nil && session.CurrentPlayer().IsBot
		session.Unlock()

		services.Sessions.Touch(string(client.Id()), roomId)
		if nextIsBot {
			services.Bots.Schedule(roomId)
		}
	}
}

// Function to resend the caller's private hand (e.g. after a client reload).
func HandleRequestHand(services *socketio_types.Services, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if !socketio_utils.Admit(services.Limiter, client, username, ratelimit.CategoryGlobal) {
			return
		}

		_, session, ok := resolveSession(services, client)
		if !ok {
			return
		}

		session.Lock()
		hand := session.HandOf(username)
		session.Unlock()

		client.Emit("hand_update", gin.H{"cards": hand})
	}
}

package handlers

import (
	"log"

	"Cuatrico/services/bots"
	socketio_types "Cuatrico/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// PlayBotTurn performs one automated move after the think-delay elapsed. Bots
// go through the identical PlayCard/DrawCard contract as human input, there
// is no privileged path. The room may have been torn down while the deferral
// was pending, that's a plain no-op.
func PlayBotTurn(services *socketio_types.Services, sio *socketio_types.SocketServer, roomId string) {
	session, exists := services.Games.Get(roomId)
	if !exists {
		log.Printf("[BOT] Room %s is gone, skipping scheduled bot turn", roomId)
		return
	}

	session.Lock()
	if !session.Started || session.Finished() {
		session.Unlock()
		return
	}
	current := session.CurrentPlayer()
	if current == nil || !current.IsBot {
		session.Unlock()
		return
	}

	move := bots.ChooseMove(session, current.Id)

	if move.Draw {
		result, err := session.DrawCard(current.Id)
		if err != nil {
			session.Unlock()
			log.Printf("[BOT-ERROR] Bot %s draw failed in room %s: %v", current.Id, roomId, err)
			return
		}
		log.Printf("[BOT] %s drew %d card(s) in room %s", current.Id, len(result.Cards), roomId)
		sio.Sio_server.To(socket.Room(roomId)).Emit("cards_drawn", gin.H{
			"player_id": result.PlayerId,
			"count":     len(result.Cards),
		})
		sio.Sio_server.To(socket.Room(roomId)).Emit("game_state", result.Public)
	} else {
		result, err := session.PlayCard(current.Id, move.CardId, move.ChosenColor)
		if err != nil {
			session.Unlock()
			log.Printf("[BOT-ERROR] Bot %s play failed in room %s: %v", current.Id, roomId, err)
			return
		}
		log.Printf("[BOT] %s played %s %s in room %s",
			current.Id, result.Card.Color, result.Card.Value, roomId)
		sio.Sio_server.To(socket.Room(roomId)).Emit("card_played", gin.H{
			"player_id":    result.PlayerId,
			"card":         result.Card,
			"chosen_color": result.ChosenColor,
		})
		sio.Sio_server.To(socket.Room(roomId)).Emit("game_state", result.Public)
		if result.WinnerId != "" {
			log.Printf("[GAME-OVER] Bot %s won in room %s", result.WinnerId, roomId)
			sio.Sio_server.To(socket.Room(roomId)).Emit("game_over", gin.H{
				"winner_id": result.WinnerId,
			})
		}
	}

	// Chain the next bot turn (scheduled, never recursive-synchronous)
	chainNext := !session.Finished() &&
		session.CurrentPlayer() != nil && session.CurrentPlayer().IsBot
	session.Unlock()

	// A completed bot move is a qualifying action for the inactivity timer
	services.Sessions.TouchRoom(roomId)
	if chainNext {
		services.Bots.Schedule(roomId)
	}
}

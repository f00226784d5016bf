package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Cuatrico/services/socket_io/handlers"
	socketio_types "Cuatrico/services/socket_io/types"
	socketio_utils "Cuatrico/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, services *socketio_types.Services) {
	log.DEBUG = os.Getenv("PROD") != "true"
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the map, otherwise it panics
	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)

	// Wire the deferred callbacks that need the live server: inactivity
	// expiry tears the room down, the bot coordinator plays through the
	// same handlers as humans.
	services.Sessions.SetExpireFunc(func(roomId string) {
		handlers.TeardownRoom(services, (*socketio_types.SocketServer)(sio), roomId, "inactivity")
	})
	services.Bots.SetActFunc(func(roomId string) {
		handlers.PlayBotTurn(services, (*socketio_types.SocketServer)(sio), roomId)
	})

	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Identity arrives verified in the handshake, the engine trusts it
		username, err := socketio_utils.GetUsernameFromClient(client)
		if err != nil {
			return
		}

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)
		fmt.Println("An individual just connected!: ", username)

		s := (*socketio_types.SocketServer)(sio)

		// Create a room and get seated as its host
		client.On("create_room", handlers.HandleCreateRoom(services, client, username, s))

		// Join an existing room by id or join code (also the reconnect path)
		client.On("join_room", handlers.HandleJoinRoom(services, client, username, s))

		// Leave voluntarily
		client.On("leave_room", handlers.HandleLeaveRoom(services, client, username, s))

		// Seat an automated player (host only)
		client.On("add_bot", handlers.HandleAddBot(services, client, username, s))

		// Start the game
		client.On("start_game", handlers.HandleStartGame(services, client, username, s))

		// Play a card from the hand
		client.On("play_card", handlers.HandlePlayCard(services, client, username, s))

		// Draw from the pile (or resolve a pending penalty)
		client.On("draw_card", handlers.HandleDrawCard(services, client, username, s))

		// Resend the private hand
		client.On("request_hand", handlers.HandleRequestHand(services, client, username, s))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(services, client, username, s))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}

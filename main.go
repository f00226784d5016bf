package main

import (
	"fmt"
	"log"
	"os"

	game_constants "Cuatrico/constants/game"
	"Cuatrico/middleware"
	"Cuatrico/routes"
	"Cuatrico/services/bots"
	"Cuatrico/services/game"
	"Cuatrico/services/ratelimit"
	"Cuatrico/services/registry"
	"Cuatrico/services/session_manager"
	"Cuatrico/services/socket_io"
	socketio_types "Cuatrico/services/socket_io/types"
	"Cuatrico/services/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env, in production the variables come from the environment itself
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Room metadata store: in-memory by default, Redis when configured
	var roomStore store.Store
	if os.Getenv("ROOM_STORE") == "redis" {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisStore, err := store.NewRedisStore(addr, 0)
		if err != nil {
			log.Fatalf("Error connecting to Redis at %s: %v", addr, err)
		}
		defer redisStore.Close()
		roomStore = redisStore
		log.Printf("Using Redis room store at %s", addr)
	} else {
		roomStore = store.NewMemoryStore()
	}

	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfigs())
	limiter.StartSweeper(game_constants.RateLimitSweepInterval)
	defer limiter.Close()

	services := &socketio_types.Services{
		Registry: registry.NewRegistry(roomStore),
		Games:    game.NewService(),
		Sessions: session_manager.NewManager(game_constants.RoomInactivityTimeout),
		Bots:     bots.NewCoordinator(game_constants.BotThinkDelay),
		Limiter:  limiter,
	}

	router := gin.Default()
	middleware.SetUpMiddleware(router)
	routes.SetupRoutes(router, services.Registry, services.Games)

	var sio socket_io.MySocketServer
	sio.Start(router, services)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Println("Server running on port:", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

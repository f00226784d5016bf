package routes

import (
	"net/http"

	"Cuatrico/controllers"
	"Cuatrico/services/game"
	"Cuatrico/services/registry"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts the small REST sidecar next to the socket endpoint:
// lobby browsing and join-code resolution happen over plain HTTP, everything
// stateful goes through socket.io.
func SetupRoutes(router *gin.Engine, reg *registry.Registry, games *game.Service) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/rooms", controllers.ListRooms(reg, games))
	router.GET("/rooms/:code", controllers.GetRoomByCode(reg, games))
}

package socketio_utils

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// GetUsernameFromClient reads the username out of the socket handshake auth
// data. Identity verification happens upstream (the gateway that issued this
// connection); the engine trusts what arrives here, that's the external
// contract.
func GetUsernameFromClient(client *socket.Socket) (string, error) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return "", errors.New("authentication data missing")
	}

	username, exists := authData["username"].(string)
	if !exists || username == "" {
		fmt.Println("No username provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing username"})
		return "", errors.New("username not found in authentication")
	}

	return username, nil
}

package socketio_utils

import (
	"errors"
	"log"

	game_models "Cuatrico/models/game"
	"Cuatrico/services/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// EmitError converts a service failure into the non-fatal `error` event sent
// only to the originating client. The three taxonomy types map to a kind tag
// the frontend switches on; anything else is reported as internal.
func EmitError(client *socket.Socket, err error) {
	kind := "internal"

	var validationErr *game_models.ValidationError
	var notFoundErr *game_models.NotFoundError
	var conflictErr *game_models.ConflictError
	switch {
	case errors.As(err, &validationErr):
		kind = "validation"
	case errors.As(err, &notFoundErr):
		kind = "not_found"
	case errors.As(err, &conflictErr):
		kind = "conflict"
	}

	client.Emit("error", gin.H{"error": err.Error(), "kind": kind})
}

// Admit runs the rate limiter for every given category, in order, before a
// handler touches any state. One rejection rejects the whole event.
func Admit(limiter *ratelimit.Limiter, client *socket.Socket, username string, categories ...ratelimit.Category) bool {
	for _, category := range categories {
		if !limiter.Allow(username, category) {
			log.Printf("[RATELIMIT] Rejected %s event from user %s", category, username)
			client.Emit("error", gin.H{"error": "Too many requests, slow down", "kind": "rate_limited"})
			return false
		}
	}
	return true
}

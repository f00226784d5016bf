package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Cuatrico/services/game"
	"Cuatrico/services/registry"
	"Cuatrico/services/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() (*gin.Engine, *registry.Registry, *game.Service) {
	gin.SetMode(gin.TestMode)
	reg := registry.NewRegistry(store.NewMemoryStore())
	games := game.NewService()

	router := gin.New()
	router.GET("/rooms", ListRooms(reg, games))
	router.GET("/rooms/:code", GetRoomByCode(reg, games))
	return router, reg, games
}

func TestListRooms(t *testing.T) {
	router, reg, games := setupTestRouter()

	room, err := reg.CreateRoom("mesa", 4, "ana")
	require.NoError(t, err)
	session := games.Create(room.Id, room.MaxPlayers)
	session.AddPlayer("ana", "ana", false)
	session.AddPlayer("bea", "bea", false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/rooms", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, 1, len(out))
	assert.Equal(t, room.Id, out[0]["room_id"])
	assert.Equal(t, float64(2), out[0]["player_count"])
	assert.Equal(t, false, out[0]["started"])
}

func TestGetRoomByCode(t *testing.T) {
	router, reg, games := setupTestRouter()

	room, err := reg.CreateRoom("mesa", 4, "ana")
	require.NoError(t, err)
	games.Create(room.Id, room.MaxPlayers)

	t.Run("known code resolves", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rooms/"+room.Code, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, room.Id, out["room_id"])
	})

	t.Run("unknown code is a 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rooms/ZZZZZZ", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

package registry

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	game_constants "Cuatrico/constants/game"
	game_models "Cuatrico/models/game"
	"Cuatrico/services/store"

	"github.com/google/uuid"
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Registry is the in-memory catalog of room metadata. It is an explicitly
// constructed service (no package-level singleton): the composition root
// builds one and injects it wherever rooms are needed.
type Registry struct {
	store store.Store
}

func NewRegistry(s store.Store) *Registry {
	return &Registry{store: s}
}

// CreateRoom validates the input, generates the room id and a unique join
// code and persists the metadata.
func (r *Registry) CreateRoom(name string, capacity int, hostId string) (*game_models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, game_models.NewValidationError("room name is required")
	}
	if len(name) > game_constants.MaxRoomNameLength {
		return nil, game_models.NewValidationError("room name is too long")
	}
	if capacity < game_constants.MinRoomCapacity || capacity > game_constants.MaxRoomCapacity {
		return nil, game_models.NewValidationError(fmt.Sprintf("capacity must be between %d and %d",
			game_constants.MinRoomCapacity, game_constants.MaxRoomCapacity))
	}

	code, err := r.generateJoinCode()
	if err != nil {
		return nil, err
	}

	room := &game_models.Room{
		Id:         uuid.NewString(),
		Name:       name,
		Code:       code,
		MaxPlayers: capacity,
		HostId:     hostId,
		CreatedAt:  time.Now(),
	}
	if err := r.saveRoom(room); err != nil {
		return nil, err
	}
	return room, nil
}

// generateJoinCode draws 6-char alphanumeric codes, regenerating on collision
// (checked against the live room list) up to a small bound.
func (r *Registry) generateJoinCode() (string, error) {
	for attempt := 0; attempt < game_constants.JoinCodeMaxAttempts; attempt++ {
		b := make([]byte, game_constants.JoinCodeLength)
		for i := range b {
			b[i] = joinCodeAlphabet[rand.Intn(len(joinCodeAlphabet))]
		}
		code := string(b)
		if _, err := r.GetRoomByCode(code); err != nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique join code")
}

func (r *Registry) GetRoom(id string) (*game_models.Room, error) {
	data, exists, err := r.store.Get(store.FormatRoomKey(id))
	if err != nil {
		return nil, fmt.Errorf("error reading room %s: %v", id, err)
	}
	if !exists {
		return nil, game_models.NewNotFoundError("room not found")
	}
	var room game_models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling room %s: %v", id, err)
	}
	return &room, nil
}

// GetRoomByCode scans the room list for the first code match. Linear, fine at
// this scale; codes are unique by construction.
func (r *Registry) GetRoomByCode(code string) (*game_models.Room, error) {
	rooms, err := r.ListRooms()
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		if room.Code == code {
			return room, nil
		}
	}
	return nil, game_models.NewNotFoundError("room not found")
}

func (r *Registry) ListRooms() ([]*game_models.Room, error) {
	values, err := r.store.List(store.RoomKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("error listing rooms: %v", err)
	}
	rooms := make([]*game_models.Room, 0, len(values))
	for _, data := range values {
		var room game_models.Room
		if err := json.Unmarshal(data, &room); err != nil {
			return nil, fmt.Errorf("error unmarshaling room: %v", err)
		}
		rooms = append(rooms, &room)
	}
	return rooms, nil
}

func (r *Registry) DeleteRoom(id string) error {
	return r.store.Delete(store.FormatRoomKey(id))
}

// CanJoin adjudicates a join attempt against the room's current occupancy.
func (r *Registry) CanJoin(id string, started bool, currentCount int) error {
	room, err := r.GetRoom(id)
	if err != nil {
		return err
	}
	if started {
		return game_models.NewConflictError("game already started")
	}
	if currentCount >= room.MaxPlayers {
		return game_models.NewConflictError("room is full")
	}
	return nil
}

func (r *Registry) saveRoom(room *game_models.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %v", err)
	}
	return r.store.Put(store.FormatRoomKey(room.Id), data)
}

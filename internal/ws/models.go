package ws

import (
	"encoding/json"

	"github.com/lk16/flippy/burst/internal/models"
)

const (
	EventNewGame         = "new_game"
	EventGetState        = "get_state"
	EventPlaceMove       = "place_move"
	EventActivateSpecial = "activate_special"
	EventReset           = "reset"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID   int `json:"id"`
	Data any `json:"data"`
}

// GameRequest is the data of every event that acts on an existing game.
type GameRequest struct {
	GameID string `json:"game_id"`
}

// PlaceMoveRequest is the data of a place_move event.
type PlaceMoveRequest struct {
	GameID string `json:"game_id"`
	models.MoveRequest
}

package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/flippy/burst/internal/games"
	"github.com/lk16/flippy/burst/internal/match"
	"github.com/lk16/flippy/burst/internal/models"
	"github.com/lk16/flippy/burst/internal/sage"
)

const (
	eventTimeout = 5 * time.Second
)

type Handler struct {
	games *games.Service
	ws    *websocket.Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, games *games.Service) *Handler {
	return &Handler{games: games, ws: ws}
}

func decodeMessage(msgType int, msg []byte) (*Incoming, error) {
	var req Incoming

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err := json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// Handle reads events until the connection breaks. Failed events are answered with an error
// message and do not close the connection.
func (h *Handler) Handle() error {
	for {
		msgType, msg, err := h.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		slog.Debug("read ws message", "msgType", msgType, "msg", msg)

		if err = h.writeMessage(h.process(msgType, msg)); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

// process answers a single frame. Frames that cannot be decoded get an error without an ID.
func (h *Handler) process(msgType int, msg []byte) *Outgoing {
	req, err := decodeMessage(msgType, msg)
	if err != nil {
		slog.Debug("ws message rejected", "error", err)
		return &Outgoing{Data: models.ErrorResponse{Error: err.Error()}}
	}

	return h.respond(req)
}

func (h *Handler) respond(req *Incoming) *Outgoing {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	resp, err := h.handleMessage(ctx, req)
	if err != nil {
		slog.Debug("ws event failed", "event", req.Event, "error", err)
		return &Outgoing{
			ID:   req.ID,
			Data: models.ErrorResponse{Error: err.Error()},
		}
	}

	return resp
}

func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	var m *match.Match
	var err error

	switch req.Event {
	case EventNewGame:
		m, err = h.handleNewGame(ctx, req)
	case EventGetState:
		m, err = h.handleGameEvent(ctx, req, h.games.Get)
	case EventPlaceMove:
		m, err = h.handlePlaceMove(ctx, req)
	case EventActivateSpecial:
		m, err = h.handleGameEvent(ctx, req, h.games.ActivateSpecial)
	case EventReset:
		m, err = h.handleGameEvent(ctx, req, h.games.Reset)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}

	if err != nil {
		return nil, err
	}

	return &Outgoing{ID: req.ID, Data: models.NewGameResponse(m)}, nil
}

func unmarshalData(req *Incoming, v any) error {
	if len(req.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(req.Data, v); err != nil {
		return fmt.Errorf("ws %s data unmarshal error: %w", req.Event, err)
	}

	return nil
}

func (h *Handler) handleNewGame(ctx context.Context, req *Incoming) (*match.Match, error) {
	var reqData models.NewGameRequest
	if err := unmarshalData(req, &reqData); err != nil {
		return nil, err
	}

	side, err := reqData.Side()
	if err != nil {
		return nil, err
	}

	return h.games.Create(ctx, side, sage.ParseLanguage(reqData.Language))
}

func (h *Handler) handleGameEvent(
	ctx context.Context,
	req *Incoming,
	action func(context.Context, string) (*match.Match, error),
) (*match.Match, error) {
	var reqData GameRequest
	if err := unmarshalData(req, &reqData); err != nil {
		return nil, err
	}

	if reqData.GameID == "" {
		return nil, errors.New("game_id is required")
	}

	return action(ctx, reqData.GameID)
}

func (h *Handler) handlePlaceMove(ctx context.Context, req *Incoming) (*match.Match, error) {
	var reqData PlaceMoveRequest
	if err := unmarshalData(req, &reqData); err != nil {
		return nil, err
	}

	if reqData.GameID == "" {
		return nil, errors.New("game_id is required")
	}

	move, err := reqData.ToMove()
	if err != nil {
		return nil, err
	}

	return h.games.PlaceMove(ctx, reqData.GameID, move)
}

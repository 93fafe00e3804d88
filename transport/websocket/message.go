package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	ActionNewGame = "game:new"
	ActionTurn    = "game:turn"
	ActionReset   = "game:reset"
	ActionState   = "game:state"

	ActionBoard  = "game:board"
	ActionStatus = "game:status"
	ActionError  = "game:error"
)

const (
	CodeInvalidMove = "invalid_move"
	CodeOutOfRange  = "out_of_range"
	CodeNoSession   = "no_session"
	CodeBadRequest  = "bad_request"
	CodeInternal    = "internal"

	writeTimeout = 5 * time.Second
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type TurnRequest struct {
	Cell *int `json:"cell"`
}

type Payload struct {
	Session *entity.Snapshot `json:"session,omitempty"`
	Board   *entity.Board    `json:"board,omitempty"`
	Status  string           `json:"status,omitempty"`
	Action  string           `json:"action,omitempty"`
	Error   string           `json:"error,omitempty"`
	Code    string           `json:"code,omitempty"`
}

// client is one WebSocket connection; it is also the observer of its session.
type client struct {
	conn   *websocket.Conn
	logger *slog.Logger

	writeMu   sync.Mutex
	sessionMu sync.RWMutex
	sessionID string
}

func newClient(conn *websocket.Conn, logger *slog.Logger) *client {
	return &client{
		conn:   conn,
		logger: logger.With("component", "websocket_client"),
	}
}

func (that *client) SessionID() string {
	that.sessionMu.RLock()
	defer that.sessionMu.RUnlock()

	return that.sessionID
}

func (that *client) setSessionID(id string) {
	that.sessionMu.Lock()
	that.sessionID = id
	that.sessionMu.Unlock()
}

// OnBoardChanged - pushes the board of the connection's own session only.
func (that *client) OnBoardChanged(sessionID string, board entity.Board) {
	if sessionID != that.SessionID() {
		return
	}

	if err := that.send(ActionBoard, Payload{Board: &board}); err != nil {
		that.logger.Debug("failed to push board", "session", sessionID, "error", err)
	}
}

func (that *client) OnStatusChanged(sessionID string, status string) {
	if sessionID != that.SessionID() {
		return
	}

	if err := that.send(ActionStatus, Payload{Status: status}); err != nil {
		that.logger.Debug("failed to push status", "session", sessionID, "error", err)
	}
}

func (that *client) send(action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: payloadJSON})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendError(action string, cause error) {
	payload := Payload{
		Action: action,
		Error:  cause.Error(),
		Code:   errorCode(cause),
	}

	if err := that.send(ActionError, payload); err != nil {
		that.logger.Debug("failed to send error", "error", err)
	}
}

func (that *client) close() {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.conn.Close()
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, apperror.ErrOutOfRangeIndex):
		return CodeOutOfRange
	case errors.Is(err, apperror.ErrInvalidMove):
		return CodeInvalidMove
	case errors.Is(err, errNoSession), errors.Is(err, apperror.ErrSessionNotFound):
		return CodeNoSession
	case errors.Is(err, errMalformedMessage), errors.Is(err, errUnknownAction), errors.Is(err, errCellRequired):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}

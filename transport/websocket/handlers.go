package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errMalformedMessage = errors.New("malformed message")
	errUnknownAction    = errors.New("unknown action")
	errNoSession        = errors.New("no game started, send game:new first")
	errCellRequired     = errors.New("cell is required")
)

// handleNewGame - starts a fresh session for the connection, replacing the previous one.
func (that *Server) handleNewGame(ctx context.Context, msg *Message, client *client) error {
	if previous := client.SessionID(); previous != "" {
		if err := that.gameUseCase.CloseSession(ctx, previous); err != nil {
			that.logger.Warn("failed to close previous session", "session", previous, "error", err)
		}
	}

	snapshot, err := that.gameUseCase.CreateSession(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	client.setSessionID(snapshot.ID)

	return client.send(msg.Action, Payload{Session: &snapshot})
}

// handleGameTurn - submitMove.
func (that *Server) handleGameTurn(ctx context.Context, msg *Message, client *client) error {
	sessionID := client.SessionID()
	if sessionID == "" {
		return errNoSession
	}

	var request TurnRequest
	if err := json.Unmarshal(msg.Payload, &request); err != nil {
		return fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	if request.Cell == nil {
		return errCellRequired
	}

	if _, err := that.gameUseCase.MakeTurn(ctx, sessionID, *request.Cell); err != nil {
		return err
	}

	return nil
}

// handleReset - requestReset.
func (that *Server) handleReset(ctx context.Context, _ *Message, client *client) error {
	sessionID := client.SessionID()
	if sessionID == "" {
		return errNoSession
	}

	if _, err := that.gameUseCase.Reset(ctx, sessionID); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleState(ctx context.Context, msg *Message, client *client) error {
	sessionID := client.SessionID()
	if sessionID == "" {
		return errNoSession
	}

	snapshot, err := that.gameUseCase.GetSnapshot(ctx, sessionID)
	if err != nil {
		return err
	}

	return client.send(msg.Action, Payload{Session: &snapshot})
}

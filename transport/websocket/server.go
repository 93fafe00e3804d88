package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	CreateSession(ctx context.Context, observer tictactoe.Observer) (entity.Snapshot, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (entity.Snapshot, error)
	Reset(ctx context.Context, sessionID string) (entity.Snapshot, error)
	GetSnapshot(ctx context.Context, sessionID string) (entity.Snapshot, error)
	CloseSession(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, message *Message, client *client) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionNewGame] = server.handleNewGame
	server.handlers[ActionTurn] = server.handleGameTurn
	server.handlers[ActionReset] = server.handleReset
	server.handlers[ActionState] = server.handleState

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(conn, that.logger)
	defer that.closeClient(ctx, client)

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(ctx, client); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until the connection closes.
func (that *Server) handleMessages(ctx context.Context, client *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			client.sendError(ActionError, errMalformedMessage)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			client.sendError(message.Action, fmt.Errorf("%w: %q", errUnknownAction, message.Action))
			continue
		}

		if err = handler(ctx, &message, client); err != nil {
			log.Debug("request rejected", "action", message.Action, "error", err)
			client.sendError(message.Action, err)
		}
	}
}

func (that *Server) closeClient(ctx context.Context, client *client) {
	log := that.logger.With("method", "closeClient")

	if sessionID := client.SessionID(); sessionID != "" {
		if err := that.gameUseCase.CloseSession(ctx, sessionID); err != nil {
			log.Error("failed to close session", "session", sessionID, "error", err)
		}
	}

	client.close()

	log.Info("WebSocket connection closed")
}

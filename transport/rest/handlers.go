package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	SessionHandler(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger   *slog.Logger
	sessions snapshotReader
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHandlers(logger *slog.Logger, sessions snapshotReader) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// SessionHandler - returns the current snapshot of one session.
func (that *handlers) SessionHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "SessionHandler")

	snapshot, err := that.sessions.GetSnapshot(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get session", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

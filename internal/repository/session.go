package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, controller *tictactoe.GameController) error
	GetByID(ctx context.Context, id string) (*tictactoe.GameController, error)
	DeleteByID(ctx context.Context, id string) error
}

// memorySessions keeps sessions only for the lifetime of the process.
type memorySessions struct {
	mu       sync.RWMutex
	sessions map[string]*tictactoe.GameController
}

func NewSessionRepository() SessionRepository {
	return &memorySessions{
		sessions: make(map[string]*tictactoe.GameController),
	}
}

func (that *memorySessions) CreateOrUpdate(_ context.Context, controller *tictactoe.GameController) error {
	if controller.ID() == "" {
		return apperror.ErrSessionIDRequired
	}

	that.mu.Lock()
	that.sessions[controller.ID()] = controller
	that.mu.Unlock()

	return nil
}

func (that *memorySessions) GetByID(_ context.Context, id string) (*tictactoe.GameController, error) {
	that.mu.RLock()
	controller, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return controller, nil
}

func (that *memorySessions) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

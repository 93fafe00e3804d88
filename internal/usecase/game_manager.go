package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, controller *tictactoe.GameController) error
	GetByID(ctx context.Context, id string) (*tictactoe.GameController, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	ChooseCell(board entity.Board) (int, error)
}

type GameManager struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	botService  botService

	// sinks are attached to every session next to the caller's own observer.
	sinks         []tictactoe.Observer
	opponentDelay time.Duration
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, botService botService, opponentDelay time.Duration, sinks ...tictactoe.Observer) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo:   sessionRepo,
		botService:    botService,
		sinks:         sinks,
		opponentDelay: opponentDelay,
	}
}

// CreateSession - starts a new game and registers it under a fresh ID.
func (that *GameManager) CreateSession(ctx context.Context, observer tictactoe.Observer) (entity.Snapshot, error) {
	id := uuid.NewString()

	observers := make(tictactoe.Observers, 0, len(that.sinks)+1)
	if observer != nil {
		observers = append(observers, observer)
	}
	observers = append(observers, that.sinks...)

	controller := tictactoe.NewGameController(id, that.botService, observers,
		tictactoe.WithOpponentDelay(that.opponentDelay),
		tictactoe.WithLogger(that.logger),
	)

	if err := that.sessionRepo.CreateOrUpdate(ctx, controller); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session", id)

	return controller.Snapshot(), nil
}

func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, cell int) (entity.Snapshot, error) {
	controller, err := that.getSession(ctx, sessionID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	if err = controller.ApplyMove(cell); err != nil {
		return controller.Snapshot(), fmt.Errorf("failed to make turn: %w", err)
	}

	return controller.Snapshot(), nil
}

func (that *GameManager) Reset(ctx context.Context, sessionID string) (entity.Snapshot, error) {
	controller, err := that.getSession(ctx, sessionID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	controller.Reset()

	return controller.Snapshot(), nil
}

func (that *GameManager) GetSnapshot(ctx context.Context, sessionID string) (entity.Snapshot, error) {
	controller, err := that.getSession(ctx, sessionID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	return controller.Snapshot(), nil
}

// CloseSession - drops the session once any pending opponent reply has run.
func (that *GameManager) CloseSession(ctx context.Context, sessionID string) error {
	log := that.logger.With("method", "CloseSession", "session", sessionID)

	controller, err := that.getSession(ctx, sessionID)
	if err != nil {
		return err
	}

	controller.Wait()

	if err = that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info("session closed")

	return nil
}

func (that *GameManager) getSession(ctx context.Context, id string) (*tictactoe.GameController, error) {
	controller, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return controller, nil
}

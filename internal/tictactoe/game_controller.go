package tictactoe

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const DefaultOpponentDelay = 500 * time.Millisecond

type opponent interface {
	ChooseCell(board entity.Board) (int, error)
}

// Observer receives every state change of a session.
type Observer interface {
	OnBoardChanged(sessionID string, board entity.Board)
	OnStatusChanged(sessionID string, status string)
}

// Scheduler runs fn once after delay.
type Scheduler func(delay time.Duration, fn func())

type Option func(*GameController)

func WithOpponentDelay(delay time.Duration) Option {
	return func(that *GameController) {
		that.delay = delay
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(that *GameController) {
		that.logger = logger
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(that *GameController) {
		that.schedule = scheduler
	}
}

type GameController struct {
	id       string
	logger   *slog.Logger
	opponent opponent
	observer Observer
	delay    time.Duration
	schedule Scheduler

	mu      sync.Mutex
	session *entity.Session
	// generation changes on every reset; pending replies from an older generation are dropped.
	generation uint64
	// seq numbers every transition in the order it was applied.
	seq     uint64
	pending sync.WaitGroup

	notifyMu  sync.Mutex
	delivered uint64
}

func NewGameController(id string, opponent opponent, observer Observer, opts ...Option) *GameController {
	controller := &GameController{
		id:       id,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		opponent: opponent,
		observer: observer,
		delay:    DefaultOpponentDelay,
		schedule: afterFunc,
		session:  entity.NewSession(id),
	}

	for _, opt := range opts {
		opt(controller)
	}

	if controller.observer == nil {
		controller.observer = Observers{}
	}

	controller.logger = controller.logger.With("session", id)

	return controller
}

func (that *GameController) ID() string {
	return that.id
}

// ApplyMove - places the human mark and, if the game goes on, schedules the opponent reply.
func (that *GameController) ApplyMove(cell int) error {
	log := that.logger.With("method", "ApplyMove", "cell", cell)

	that.mu.Lock()

	if err := that.validateMove(cell); err != nil {
		that.mu.Unlock()
		log.Debug("move rejected", "error", err)
		return err
	}

	if err := that.session.Place(entity.PlayerX, cell); err != nil {
		that.mu.Unlock()
		log.Debug("move rejected", "error", err)
		return fmt.Errorf("invalid turn: %w", err)
	}

	finished := !that.session.Active
	if !finished {
		that.session.Locked = true
		that.pending.Add(1)
	}

	generation := that.generation
	seq, snapshot := that.transition()
	that.mu.Unlock()

	that.notify(seq, snapshot)

	if finished {
		log.Info("game finished", "outcome", snapshot.Outcome.String())
		return nil
	}

	that.schedule(that.delay, func() {
		defer that.pending.Done()
		that.opponentTurn(generation)
	})

	return nil
}

// Reset - discards the current game and starts a fresh one. Always succeeds.
func (that *GameController) Reset() {
	that.mu.Lock()
	that.generation++
	that.session = entity.NewSession(that.id)
	seq, snapshot := that.transition()
	that.mu.Unlock()

	that.logger.Info("session reset")

	that.notify(seq, snapshot)
}

func (that *GameController) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.Snapshot()
}

// Wait - blocks until no opponent reply is pending.
func (that *GameController) Wait() {
	that.pending.Wait()
}

// validateMove - checks the parts of a human move that depend on the session state.
func (that *GameController) validateMove(cell int) error {
	if !entity.ValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRangeIndex, cell)
	}

	if !that.session.Active {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	}

	if that.session.Locked {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrOpponentThinking)
	}

	if that.session.Stalled {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrOpponentFailed)
	}

	if that.session.Turn != entity.PlayerX {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrNotYourTurn)
	}

	return nil
}

func (that *GameController) opponentTurn(generation uint64) {
	log := that.logger.With("method", "opponentTurn")

	that.mu.Lock()

	if generation != that.generation {
		that.mu.Unlock()
		log.Debug("session was reset, dropping opponent reply")
		return
	}

	that.session.Locked = false

	cell, err := that.opponent.ChooseCell(that.session.Board)
	if err == nil {
		err = that.session.Place(entity.PlayerO, cell)
	}

	if err != nil {
		that.session.Stalled = true
	}

	seq, snapshot := that.transition()
	that.mu.Unlock()

	if err != nil {
		log.Error("opponent failed to make turn", "error", err)
		that.notify(seq, snapshot)
		return
	}

	log.Debug("opponent moved", "cell", cell, "state", snapshot.State)

	if snapshot.State == entity.StateEnded {
		log.Info("game finished", "outcome", snapshot.Outcome.String())
	}

	that.notify(seq, snapshot)
}

// transition - numbers the change just applied and copies the session. Must be called with mu held.
func (that *GameController) transition() (uint64, entity.Snapshot) {
	that.seq++
	return that.seq, that.session.Snapshot()
}

// notify - delivers transitions in the order they were applied. A snapshot older than
// the last delivered one is dropped, so observers always end on the current board.
func (that *GameController) notify(seq uint64, snapshot entity.Snapshot) {
	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	if seq < that.delivered {
		that.logger.Debug("dropping stale notification", "seq", seq, "delivered", that.delivered)
		return
	}
	that.delivered = seq

	that.observer.OnBoardChanged(snapshot.ID, snapshot.Board)
	that.observer.OnStatusChanged(snapshot.ID, snapshot.Status)
}

func afterFunc(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// Observers fans notifications out to several observers in order.
type Observers []Observer

func (that Observers) OnBoardChanged(sessionID string, board entity.Board) {
	for _, observer := range that {
		observer.OnBoardChanged(sessionID, board)
	}
}

func (that Observers) OnStatusChanged(sessionID string, status string) {
	for _, observer := range that {
		observer.OnStatusChanged(sessionID, status)
	}
}

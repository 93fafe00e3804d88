package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

type SessionState string

const (
	StateAwaitingFirst  SessionState = "awaiting_first"
	StateAwaitingSecond SessionState = "awaiting_second"
	StateEnded          SessionState = "ended"
)

const (
	statusThinking = "Opponent is thinking..."
	statusDraw     = "Game ended in a draw!"
	statusStalled  = "Opponent failed to move. Reset to play again."
)

// Session is the mutable state of a single human-vs-opponent game.
type Session struct {
	ID     string `json:"id"`
	Board  Board  `json:"board"`
	Turn   Mark   `json:"player_turn"`
	Active bool   `json:"active"`
	// Locked is set while the opponent reply is pending.
	Locked bool `json:"locked"`
	// Stalled is set when the opponent could not reply; only a reset clears it.
	Stalled bool `json:"stalled"`
}

// Snapshot is a read-only copy of a session handed out to observers and transports.
type Snapshot struct {
	ID      string       `json:"id"`
	Board   Board        `json:"board"`
	Turn    Mark         `json:"player_turn,omitempty"`
	State   SessionState `json:"state"`
	Outcome Outcome      `json:"outcome"`
	Status  string       `json:"status"`
	Active  bool         `json:"active"`
	Locked  bool         `json:"locked"`
	Stalled bool         `json:"stalled,omitempty"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Board:  Board{},
		Turn:   PlayerX,
		Active: true,
	}
}

func (that *Session) Outcome() Outcome {
	return that.Board.Evaluate()
}

func (that *Session) State() SessionState {
	switch {
	case !that.Active:
		return StateEnded
	case that.Turn == PlayerO:
		return StateAwaitingSecond
	default:
		return StateAwaitingFirst
	}
}

// Place - puts the mark on the board, switches the turn and recomputes Active.
func (that *Session) Place(mark Mark, cell int) error {
	if !ValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRangeIndex, cell)
	}

	if !that.Active {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	}

	if that.Turn != mark {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrNotYourTurn)
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = mark

	if that.Outcome().IsTerminal() {
		that.Active = false
		that.Turn = EmptyCell
		return nil
	}

	that.Turn = mark.Opponent()

	return nil
}

func (that *Session) StatusText() string {
	outcome := that.Outcome()

	switch outcome.Status {
	case StatusWin:
		if outcome.Winner == PlayerX {
			return fmt.Sprintf("Player %s wins!", PlayerX)
		}
		return fmt.Sprintf("Opponent (%s) wins!", outcome.Winner)
	case StatusDraw:
		return statusDraw
	}

	if that.Stalled {
		return statusStalled
	}

	if that.Locked {
		return statusThinking
	}

	return fmt.Sprintf("Player %s's turn", that.Turn)
}

func (that *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:      that.ID,
		Board:   that.Board,
		Turn:    that.Turn,
		State:   that.State(),
		Outcome: that.Outcome(),
		Status:  that.StatusText(),
		Active:  that.Active,
		Locked:  that.Locked,
		Stalled: that.Stalled,
	}
}

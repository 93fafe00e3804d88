package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrBoardFinished    = errors.New("board is already decided")
	ErrUnknownMover     = errors.New("unknown mover")
)

const (
	scoreOWins = 1
	scoreXWins = -1
	scoreDraw  = 0
)

// BestMove - returns the optimal cell for mover. O maximizes and X minimizes;
// among equally good cells the lowest index is chosen.
func BestMove(board entity.Board, mover entity.Mark) (int, error) {
	if !mover.IsPlayer() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMover, mover)
	}

	if board.Evaluate().IsTerminal() {
		return 0, ErrBoardFinished
	}

	cells := board.EmptyCells()
	if len(cells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	maximizing := mover == entity.PlayerO

	bestCell := -1
	var bestScore int
	for _, cell := range cells {
		next := board
		next[cell] = mover

		score := minimax(next, !maximizing)
		if bestCell == -1 || better(score, bestScore, maximizing) {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, nil
}

// boardScore - returns the minimax value of board with the given side to move.
func boardScore(board entity.Board, mover entity.Mark) int {
	return minimax(board, mover == entity.PlayerO)
}

func minimax(board entity.Board, maximizing bool) int {
	if score, ok := terminalScore(board); ok {
		return score
	}

	mark := entity.PlayerX
	if maximizing {
		mark = entity.PlayerO
	}

	first := true
	var best int
	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		// board is a copy, so the trial placement never leaks to the caller
		board[i] = mark
		score := minimax(board, !maximizing)
		board[i] = entity.EmptyCell

		if first || better(score, best, maximizing) {
			best, first = score, false
		}
	}

	return best
}

func better(score, best int, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

func terminalScore(board entity.Board) (int, bool) {
	outcome := board.Evaluate()

	switch outcome.Status {
	case entity.StatusWin:
		if outcome.Winner == entity.PlayerO {
			return scoreOWins, true
		}
		return scoreXWins, true
	case entity.StatusDraw:
		return scoreDraw, true
	default:
		return 0, false
	}
}

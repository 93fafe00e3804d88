package entity

import "fmt"

type Mark string

const (
	EmptyCell Mark = ""

	// PlayerX always moves first and is the human side.
	PlayerX Mark = "X"
	// PlayerO is the automated opponent.
	PlayerO Mark = "O"
)

const BoardSize = 9

type OutcomeStatus string

const (
	StatusInProgress OutcomeStatus = "in_progress"
	StatusWin        OutcomeStatus = "win"
	StatusDraw       OutcomeStatus = "draw"
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid in row-major order.
type Board [BoardSize]Mark

// Outcome is derived from a Board and never stored on its own.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Mark          `json:"winner,omitempty"`
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Evaluate - reports whether the board is won, drawn or still in progress.
func (that Board) Evaluate() Outcome {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Status: StatusWin, Winner: a}
		}
	}

	// the game will continue until all the squares are full
	if that.HasEmptyCell() {
		return Outcome{Status: StatusInProgress}
	}

	return Outcome{Status: StatusDraw}
}

func (that Board) HasEmptyCell() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return true
		}
	}
	return false
}

// EmptyCells returns the free indexes in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that Board) MarkCount() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}
	return count
}

func (that Board) String() string {
	out := make([]byte, 0, BoardSize+2)
	for i, cell := range that {
		if i > 0 && i%3 == 0 {
			out = append(out, '/')
		}
		if cell == EmptyCell {
			out = append(out, '.')
			continue
		}
		out = append(out, cell[0])
	}
	return string(out)
}

func ValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Outcome) IsTerminal() bool {
	return that.Status != StatusInProgress
}

func (that Outcome) String() string {
	switch that.Status {
	case StatusWin:
		return fmt.Sprintf("win(%s)", that.Winner)
	case StatusDraw:
		return "draw"
	default:
		return "in progress"
	}
}

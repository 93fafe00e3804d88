package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

func TestNewSession(t *testing.T) {
	// Given: create a new session
	session := NewSession("123")

	// Then: the session should correspond to the expected initial state
	expected := &Session{
		ID:     "123",
		Board:  Board{},
		Turn:   PlayerX,
		Active: true,
	}

	require.Equal(t, expected, session)
	assert.Equal(t, StateAwaitingFirst, session.State())
	assert.Equal(t, "Player X's turn", session.StatusText())
}

func TestSession_Place(t *testing.T) {
	t.Run("Successful move switches turn", func(t *testing.T) {
		// Given: a new session
		session := NewSession("123")

		// When: player X makes a valid move
		err := session.Place(X, 0)
		require.NoError(t, err)

		// Then: the board reflects the move and the turn passes to O
		expected := &Session{
			ID:     "123",
			Board:  Board{X, E, E, E, E, E, E, E, E},
			Turn:   PlayerO,
			Active: true,
		}

		require.Equal(t, expected, session)
		assert.Equal(t, StateAwaitingSecond, session.State())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a session where cell 0 is taken by X
		session := NewSession("123")
		require.NoError(t, session.Place(X, 0))

		// When: O tries to move to the same cell
		err := session.Place(O, 0)

		// Then: the move is invalid because the cell is occupied
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		// And: the session is unchanged
		assert.Equal(t, Board{X, E, E, E, E, E, E, E, E}, session.Board)
		assert.Equal(t, PlayerO, session.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new session where it is X's turn
		session := NewSession("123")

		// When: O tries to move
		err := session.Place(O, 1)

		// Then: ErrNotYourTurn is reported as an invalid move
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, session.Board)
	})

	t.Run("Error on out of range cells", func(t *testing.T) {
		session := NewSession("123")

		for _, cell := range []int{-1, 9, 20} {
			// When: an index outside the board is passed
			err := session.Place(X, cell)

			// Then: ErrOutOfRangeIndex is returned and it is not an invalid move
			require.ErrorIs(t, err, apperror.ErrOutOfRangeIndex)
			assert.NotErrorIs(t, err, apperror.ErrInvalidMove)
		}

		assert.Equal(t, Board{}, session.Board)
	})

	t.Run("Winning move ends the session", func(t *testing.T) {
		// Given: X has two in the top row
		session := &Session{
			ID:     "123",
			Board:  Board{X, X, E, O, O, E, E, E, E},
			Turn:   PlayerX,
			Active: true,
		}

		// When: X completes the row
		require.NoError(t, session.Place(X, 2))

		// Then: the session is ended with X as the winner
		assert.False(t, session.Active)
		assert.Equal(t, StateEnded, session.State())
		assert.Equal(t, Outcome{Status: StatusWin, Winner: X}, session.Outcome())
		assert.Equal(t, "Player X wins!", session.StatusText())
	})

	t.Run("Move after the game finished", func(t *testing.T) {
		// Given: a finished session
		session := &Session{
			Board:  Board{X, X, X, E, O, E, E, O, E},
			Active: false,
		}

		// When: someone tries to move
		err := session.Place(O, 3)

		// Then: the move is rejected as finished
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestSession_StatusText(t *testing.T) {
	t.Run("Opponent wins", func(t *testing.T) {
		session := &Session{Board: Board{O, O, O, X, X, E, X, E, E}}
		assert.Equal(t, "Opponent (O) wins!", session.StatusText())
	})

	t.Run("Draw", func(t *testing.T) {
		session := &Session{Board: Board{X, O, X, O, X, O, O, X, O}}
		assert.Equal(t, "Game ended in a draw!", session.StatusText())
	})

	t.Run("Thinking while locked", func(t *testing.T) {
		session := &Session{Board: Board{X}, Turn: PlayerO, Active: true, Locked: true}
		assert.Equal(t, "Opponent is thinking...", session.StatusText())
	})

	t.Run("Stalled opponent asks for a reset", func(t *testing.T) {
		session := &Session{Board: Board{X}, Turn: PlayerO, Active: true, Stalled: true}
		assert.Equal(t, "Opponent failed to move. Reset to play again.", session.StatusText())
	})
}

func TestSession_Snapshot(t *testing.T) {
	// Given: a session after one move
	session := NewSession("abc")
	require.NoError(t, session.Place(X, 4))

	// When: taking a snapshot
	snapshot := session.Snapshot()

	// Then: the snapshot mirrors the session
	assert.Equal(t, "abc", snapshot.ID)
	assert.Equal(t, X, snapshot.Board[4])
	assert.Equal(t, StateAwaitingSecond, snapshot.State)
	assert.Equal(t, StatusInProgress, snapshot.Outcome.Status)
	assert.Equal(t, "Player O's turn", snapshot.Status)

	// And: mutating the snapshot does not touch the session
	snapshot.Board[0] = O
	assert.Equal(t, E, session.Board[0])
}

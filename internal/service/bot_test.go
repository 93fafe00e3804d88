package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

func TestBotService_ChooseCell(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("Blocks the human", func(t *testing.T) {
		// Given: X threatens the left column
		botService := NewBotService(logger)
		board := entity.Board{
			entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
			entity.PlayerX, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		// When: the bot chooses a cell
		cell, err := botService.ChooseCell(board)

		// Then: it blocks at cell 6
		require.NoError(t, err)
		assert.Equal(t, 6, cell)
	})

	t.Run("Returns error on a finished board", func(t *testing.T) {
		botService := NewBotService(logger)
		board := entity.Board{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		_, err := botService.ChooseCell(board)

		require.ErrorIs(t, err, tictactoe.ErrBoardFinished)
	})
}

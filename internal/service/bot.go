package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type BotService interface {
	ChooseCell(board entity.Board) (int, error)
}

type botService struct {
	logger *slog.Logger
	mark   entity.Mark
}

// NewBotService - creates the automated opponent, which always plays O.
func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		mark:   entity.PlayerO,
	}
}

func (that *botService) ChooseCell(board entity.Board) (int, error) {
	cell, err := tictactoe.BestMove(board, that.mark)
	if err != nil {
		return 0, fmt.Errorf("bot failed to choose cell: %w", err)
	}

	that.logger.Debug("bot chose cell", "board", board.String(), "cell", cell)

	return cell, nil
}

package rules

import (
	"errors"
	"fmt"

	"github.com/valarcon42madrid/Gomoku/internal/board"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfBounds = fmt.Errorf("%w: out of bounds", ErrIllegalMove)
	ErrOccupied    = fmt.Errorf("%w: occupied", ErrIllegalMove)
	ErrDoubleThree = fmt.Errorf("%w: forbidden double three", ErrIllegalMove)
)

// CheckMove reports why symbol may not play move, or nil when it may.
func CheckMove(s *GameState, move board.Move, symbol board.Symbol) error {
	if !move.In(s.Grid.Size()) {
		return ErrOutOfBounds
	}
	if s.Grid.At(move.Row, move.Col) != board.CellEmpty {
		return ErrOccupied
	}
	if IntroducesDoubleThree(s, move, symbol) {
		return ErrDoubleThree
	}
	return nil
}

func IsLegalMove(s *GameState, move board.Move, symbol board.Symbol) bool {
	return CheckMove(s, move, symbol) == nil
}

// IntroducesDoubleThree evaluates the placement hypothetically: the grid
// is only read, the candidate cell counts as filled.
func IntroducesDoubleThree(s *GameState, move board.Move, symbol board.Symbol) bool {
	cell := board.CellOf(symbol)
	openThrees := 0
	for _, axis := range board.Axes {
		forward, forwardOpen := s.Grid.Ray(move.Row, move.Col, axis, cell, 4)
		backward, backwardOpen := s.Grid.Ray(move.Row, move.Col, axis.Reverse(), cell, 4)
		if 1+forward+backward == 3 && forwardOpen && backwardOpen {
			openThrees++
			if openThrees >= 2 {
				return true
			}
		}
	}
	return false
}

package ai

import (
	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

// RandomSource picks the last-resort move; x/exp/rand's *Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

func findCornerMove(state *rules.GameState, symbol board.Symbol) (board.Move, bool) {
	last := state.Size() - 1
	corners := [4]board.Move{{Row: 0, Col: 0}, {Row: 0, Col: last}, {Row: last, Col: 0}, {Row: last, Col: last}}
	for _, corner := range corners {
		if rules.IsLegalMove(state, corner, symbol) {
			return corner, true
		}
	}
	return board.Move{}, false
}

// findEdgeMove tries the top and bottom rows first, then the left and
// right columns.
func findEdgeMove(state *rules.GameState, symbol board.Symbol) (board.Move, bool) {
	size := state.Size()
	for _, row := range [2]int{0, size - 1} {
		for col := 0; col < size; col++ {
			if move := board.NewMove(row, col); rules.IsLegalMove(state, move, symbol) {
				return move, true
			}
		}
	}
	for _, col := range [2]int{0, size - 1} {
		for row := 0; row < size; row++ {
			if move := board.NewMove(row, col); rules.IsLegalMove(state, move, symbol) {
				return move, true
			}
		}
	}
	return board.Move{}, false
}

func findAdjacentMove(state *rules.GameState, symbol board.Symbol) (board.Move, bool) {
	opponent := board.CellOf(symbol.Opponent())
	return scanEmpty(state, func(move board.Move) bool {
		for _, d := range board.Directions {
			next := move.Step(d, 1)
			if next.In(state.Size()) && state.Grid.Get(next) == opponent {
				return rules.IsLegalMove(state, move, symbol)
			}
		}
		return false
	})
}

func findRandomMove(state *rules.GameState, symbol board.Symbol, random RandomSource) (board.Move, bool) {
	var legal []board.Move
	for _, move := range rules.EmptyPositions(state) {
		if rules.IsLegalMove(state, move, symbol) {
			legal = append(legal, move)
		}
	}
	if len(legal) == 0 {
		return board.Move{}, false
	}
	return legal[random.Intn(len(legal))], true
}

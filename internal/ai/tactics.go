package ai

import (
	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

// longestRun is the longest line symbol would own through an empty cell.
func longestRun(state *rules.GameState, move board.Move, symbol board.Symbol) int {
	g := state.Grid
	cell := board.CellOf(symbol)
	longest := 0
	for _, axis := range board.Axes {
		forward, _ := g.Ray(move.Row, move.Col, axis, cell, g.Size())
		backward, _ := g.Ray(move.Row, move.Col, axis.Reverse(), cell, g.Size())
		if run := 1 + forward + backward; run > longest {
			longest = run
		}
	}
	return longest
}

// completesFive ignores openness: five closed on both sides still wins.
func completesFive(state *rules.GameState, move board.Move, symbol board.Symbol) bool {
	return longestRun(state, move, symbol) >= rules.AlignLength
}

func makesOpenFour(state *rules.GameState, move board.Move, symbol board.Symbol) bool {
	g := state.Grid
	cell := board.CellOf(symbol)
	for _, axis := range board.Axes {
		forward, forwardOpen := g.Ray(move.Row, move.Col, axis, cell, g.Size())
		backward, backwardOpen := g.Ray(move.Row, move.Col, axis.Reverse(), cell, g.Size())
		if 1+forward+backward == rules.AlignLength-1 && forwardOpen && backwardOpen {
			return true
		}
	}
	return false
}

func findWinningMove(state *rules.GameState, symbol board.Symbol) (board.Move, bool) {
	return scanEmpty(state, func(move board.Move) bool {
		return completesFive(state, move, symbol) && rules.IsLegalMove(state, move, symbol)
	})
}

func findCaptureMove(state *rules.GameState, symbol board.Symbol) (board.Move, bool) {
	return scanEmpty(state, func(move board.Move) bool {
		return rules.WouldCapture(state, move, symbol) && rules.IsLegalMove(state, move, symbol)
	})
}

// findBlockMove occupies the cell where the opponent would complete five;
// failing that, the cell where the opponent would make an open four.
func findBlockMove(state *rules.GameState, symbol board.Symbol) (board.Move, bool) {
	opponent := symbol.Opponent()
	var four board.Move
	haveFour := false
	five, ok := scanEmpty(state, func(move board.Move) bool {
		if !rules.IsLegalMove(state, move, symbol) || !rules.IsLegalMove(state, move, opponent) {
			return false
		}
		if completesFive(state, move, opponent) {
			return true
		}
		if !haveFour && makesOpenFour(state, move, opponent) {
			four = move
			haveFour = true
		}
		return false
	})
	if ok {
		return five, true
	}
	return four, haveFour
}

// scanEmpty visits empty cells in row-major order and returns the first
// one accepted by match.
func scanEmpty(state *rules.GameState, match func(board.Move) bool) (board.Move, bool) {
	size := state.Grid.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if state.Grid.At(row, col) != board.CellEmpty {
				continue
			}
			move := board.Move{Row: row, Col: col}
			if match(move) {
				return move, true
			}
		}
	}
	return board.Move{}, false
}

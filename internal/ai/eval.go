package ai

import (
	"math"

	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

const (
	stoneWeight   = 10
	captureWeight = 100
	maxScore      = math.MaxInt32
)

// Evaluate scores the position from mover's point of view: material on the
// board plus captured stones, captures weighing ten times a stone.
func Evaluate(state *rules.GameState, mover board.Symbol) int {
	opponent := mover.Opponent()
	score := (state.Grid.Stones(mover) - state.Grid.Stones(opponent)) * stoneWeight
	score += (state.Captures(mover) - state.Captures(opponent)) * captureWeight
	return score
}

package rules

import "github.com/valarcon42madrid/Gomoku/internal/board"

const (
	AlignLength             = 5
	CaptureSize             = 2
	CaptureWinStones        = 10
	EndgameCaptureThreshold = 8
)

// GameState owns one grid and the capture tally of both symbols. Engines
// receive it by pointer and never keep a reference after returning.
type GameState struct {
	Grid     board.Grid
	captures [2]int
}

func NewGameState(size int) *GameState {
	return &GameState{Grid: board.NewGrid(size)}
}

func (s *GameState) Size() int {
	return s.Grid.Size()
}

// Captures returns the number of opponent stones symbol has removed.
func (s *GameState) Captures(symbol board.Symbol) int {
	return s.captures[symbol]
}

// SetCaptures overwrites a tally. It exists for drivers restoring a
// position and for tests; play never calls it.
func (s *GameState) SetCaptures(symbol board.Symbol, count int) {
	s.captures[symbol] = count
}

// Hash is the zobrist key of stones and tallies, excluding side to move.
func (s *GameState) Hash() uint64 {
	return s.Grid.Hash() ^
		board.CaptureKey(board.First, s.captures[board.First]) ^
		board.CaptureKey(board.Second, s.captures[board.Second])
}

func (s *GameState) Clone() *GameState {
	clone := *s
	clone.Grid = s.Grid.Clone()
	return &clone
}

// Place writes a stone without any rule check. Used to set up positions.
func (s *GameState) Place(row, col int, symbol board.Symbol) {
	s.Grid.Set(row, col, board.CellOf(symbol))
}

// EmptyPositions lists every empty cell in row-major order.
func EmptyPositions(s *GameState) []board.Move {
	size := s.Grid.Size()
	moves := make([]board.Move, 0, s.Grid.CountEmpty())
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if s.Grid.At(row, col) == board.CellEmpty {
				moves = append(moves, board.Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

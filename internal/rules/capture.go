package rules

import "github.com/valarcon42madrid/Gomoku/internal/board"

const maxCapturedPerMove = len(board.Directions) * CaptureSize

// Delta records one applied move so it can be reverted exactly, including
// the stones it captured.
type Delta struct {
	Move     board.Move
	Symbol   board.Symbol
	captured [maxCapturedPerMove]board.Move
	n        int
}

func (d Delta) Captured() []board.Move {
	return append([]board.Move(nil), d.captured[:d.n]...)
}

func (d Delta) CapturedCount() int {
	return d.n
}

// ApplyMove places the stone when the move is legal and executes every
// capture it closes. The state is untouched when it returns false.
func ApplyMove(s *GameState, move board.Move, symbol board.Symbol) bool {
	_, err := Apply(s, move, symbol)
	return err == nil
}

// Apply is ApplyMove returning what changed.
func Apply(s *GameState, move board.Move, symbol board.Symbol) (Delta, error) {
	if err := CheckMove(s, move, symbol); err != nil {
		return Delta{}, err
	}
	delta := Delta{Move: move, Symbol: symbol}
	s.Grid.Set(move.Row, move.Col, board.CellOf(symbol))
	executeCaptures(s, move, symbol, &delta)
	return delta, nil
}

// Revert undoes a Delta produced by Apply on the same state. Deltas must
// be reverted in reverse order of application.
func Revert(s *GameState, d Delta) {
	opponent := board.CellOf(d.Symbol.Opponent())
	for i := 0; i < d.n; i++ {
		s.Grid.Set(d.captured[i].Row, d.captured[i].Col, opponent)
	}
	s.captures[d.Symbol] -= d.n
	s.Grid.Remove(d.Move.Row, d.Move.Col)
}

// UndoMove clears the cell at move. Captured stones are not restored; use
// Revert to backtrack through a capturing move.
func UndoMove(s *GameState, move board.Move) {
	if move.In(s.Grid.Size()) {
		s.Grid.Remove(move.Row, move.Col)
	}
}

func executeCaptures(s *GameState, move board.Move, symbol board.Symbol, delta *Delta) {
	for _, d := range board.Directions {
		if !flanksPair(s, move, d, symbol) {
			continue
		}
		first := move.Step(d, 1)
		second := move.Step(d, 2)
		s.Grid.Remove(first.Row, first.Col)
		s.Grid.Remove(second.Row, second.Col)
		s.captures[symbol] += CaptureSize
		delta.captured[delta.n] = first
		delta.captured[delta.n+1] = second
		delta.n += CaptureSize
	}
}

// flanksPair reports whether the three cells stepping out of move along d
// read [opponent, opponent, symbol].
func flanksPair(s *GameState, move board.Move, d board.Direction, symbol board.Symbol) bool {
	far := move.Step(d, 3)
	if !far.In(s.Grid.Size()) {
		return false
	}
	opponent := board.CellOf(symbol.Opponent())
	return s.Grid.Get(move.Step(d, 1)) == opponent &&
		s.Grid.Get(move.Step(d, 2)) == opponent &&
		s.Grid.Get(far) == board.CellOf(symbol)
}

// CaptureTargets lists the stones symbol would remove by playing move,
// without modifying the state.
func CaptureTargets(s *GameState, move board.Move, symbol board.Symbol) []board.Move {
	var targets []board.Move
	if !move.In(s.Grid.Size()) {
		return targets
	}
	for _, d := range board.Directions {
		if flanksPair(s, move, d, symbol) {
			targets = append(targets, move.Step(d, 1), move.Step(d, 2))
		}
	}
	return targets
}

func WouldCapture(s *GameState, move board.Move, symbol board.Symbol) bool {
	if !move.In(s.Grid.Size()) {
		return false
	}
	for _, d := range board.Directions {
		if flanksPair(s, move, d, symbol) {
			return true
		}
	}
	return false
}

package rules

import "github.com/valarcon42madrid/Gomoku/internal/board"

type Reason string

const (
	ReasonAlignment Reason = "alignment"
	ReasonCapture   Reason = "capture"
)

// HasFiveAlignment reports whether symbol has AlignLength consecutive
// stones on any axis. Capture safety is not considered.
func HasFiveAlignment(s *GameState, symbol board.Symbol) bool {
	_, _, ok := findWindow(s, symbol, false)
	return ok
}

// IsCaptureSafe reports whether none of the AlignLength stones starting at
// (row, col) along (dr, dc) belongs to a pair the opponent could capture on
// the next move, in any of the eight directions.
func IsCaptureSafe(s *GameState, row, col, dr, dc int, symbol board.Symbol) bool {
	g := s.Grid
	own := board.CellOf(symbol)
	opponent := board.CellOf(symbol.Opponent())
	start := board.Move{Row: row, Col: col}
	axis := board.Direction{DR: dr, DC: dc}
	for step := 0; step < AlignLength; step++ {
		stone := start.Step(axis, step)
		if !stone.In(g.Size()) || g.Get(stone) != own {
			continue
		}
		for _, d := range board.Directions {
			mate := stone.Step(d, 1)
			prev := stone.Step(d, -1)
			next := stone.Step(d, 2)
			if !prev.In(g.Size()) || !next.In(g.Size()) || g.Get(mate) != own {
				continue
			}
			before := g.Get(prev)
			after := g.Get(next)
			if before == opponent && after == board.CellEmpty {
				return false
			}
			if before == board.CellEmpty && after == opponent {
				return false
			}
		}
	}
	return true
}

// CheckWinner applies both winning conditions. An alignment does not win
// while it can be broken by a capture, nor while the opponent is one pair
// away from winning by captures.
func CheckWinner(s *GameState, symbol board.Symbol) bool {
	if s.captures[symbol] >= CaptureWinStones {
		return true
	}
	if s.captures[symbol.Opponent()] >= EndgameCaptureThreshold {
		return false
	}
	_, _, ok := findWindow(s, symbol, true)
	return ok
}

func IsDraw(s *GameState) bool {
	return s.Grid.CountEmpty() == 0
}

func IsGameOver(s *GameState) bool {
	if s.captures[board.First] >= CaptureWinStones || s.captures[board.Second] >= CaptureWinStones {
		return true
	}
	if CheckWinner(s, board.First) || CheckWinner(s, board.Second) {
		return true
	}
	return IsDraw(s)
}

// Winner reports who has won and how. Capture wins are checked first.
func Winner(s *GameState) (board.Symbol, Reason, bool) {
	for _, symbol := range [2]board.Symbol{board.First, board.Second} {
		if s.captures[symbol] >= CaptureWinStones {
			return symbol, ReasonCapture, true
		}
	}
	for _, symbol := range [2]board.Symbol{board.First, board.Second} {
		if CheckWinner(s, symbol) {
			return symbol, ReasonAlignment, true
		}
	}
	return board.First, "", false
}

// AlignmentLine returns the cells of the first capture-safe window.
func AlignmentLine(s *GameState, symbol board.Symbol) ([]board.Move, bool) {
	start, axis, ok := findWindow(s, symbol, true)
	if !ok {
		return nil, false
	}
	line := make([]board.Move, 0, AlignLength)
	for step := 0; step < AlignLength; step++ {
		line = append(line, start.Step(axis, step))
	}
	return line, true
}

// IsWinningMove is the local form of CheckWinner for a move that was just
// applied: only alignments through move are inspected.
func IsWinningMove(s *GameState, move board.Move, symbol board.Symbol) bool {
	if s.captures[symbol] >= CaptureWinStones {
		return true
	}
	if s.captures[symbol.Opponent()] >= EndgameCaptureThreshold {
		return false
	}
	g := s.Grid
	if !move.In(g.Size()) || g.Get(move) != board.CellOf(symbol) {
		return false
	}
	own := board.CellOf(symbol)
	for _, axis := range board.Axes {
		forward, _ := g.Ray(move.Row, move.Col, axis, own, g.Size())
		backward, _ := g.Ray(move.Row, move.Col, axis.Reverse(), own, g.Size())
		if 1+forward+backward < AlignLength {
			continue
		}
		// Every window of AlignLength inside the run that contains move.
		for offset := -backward; offset+AlignLength-1 <= forward; offset++ {
			if offset > 0 || offset+AlignLength-1 < 0 {
				continue
			}
			start := move.Step(axis, offset)
			if IsCaptureSafe(s, start.Row, start.Col, axis.DR, axis.DC, symbol) {
				return true
			}
		}
	}
	return false
}

func findWindow(s *GameState, symbol board.Symbol, requireSafe bool) (board.Move, board.Direction, bool) {
	g := s.Grid
	own := board.CellOf(symbol)
	size := g.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if g.At(row, col) != own {
				continue
			}
			for _, axis := range board.Axes {
				count, _ := g.Ray(row, col, axis, own, AlignLength-1)
				if count < AlignLength-1 {
					continue
				}
				if requireSafe && !IsCaptureSafe(s, row, col, axis.DR, axis.DC, symbol) {
					continue
				}
				return board.Move{Row: row, Col: col}, axis, true
			}
		}
	}
	return board.Move{}, board.Direction{}, false
}

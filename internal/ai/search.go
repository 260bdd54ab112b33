package ai

import (
	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

// searcher runs minimax with alpha-beta pruning on one GameState, applying
// and reverting moves in place. A move is always reverted before its
// sibling is tried, so the state is never seen half-applied.
type searcher struct {
	state *rules.GameState
	mover board.Symbol
	tt    *TranspositionTable
	keys  *board.ZobristTable
	nodes int
}

type searchResult struct {
	move  board.Move
	score int
	nodes int
	found bool
}

// run searches every empty cell in row-major order. Only a strictly
// better score replaces the current best, so the first of equal moves wins.
func (s *searcher) run(depth int) searchResult {
	best := -maxScore
	result := searchResult{}
	s.eachEmpty(func(move board.Move) bool {
		delta, err := rules.Apply(s.state, move, s.mover)
		if err != nil {
			return true
		}
		score := s.minimax(move, s.mover, depth-1, best, maxScore, false)
		rules.Revert(s.state, delta)
		if !result.found || score > best {
			best = score
			result.move = move
			result.score = score
			result.found = true
		}
		return true
	})
	result.nodes = s.nodes
	return result
}

func (s *searcher) minimax(last board.Move, lastSymbol board.Symbol, depth, alpha, beta int, maximizing bool) int {
	s.nodes++
	if depth == 0 {
		return Evaluate(s.state, s.mover)
	}
	if rules.IsWinningMove(s.state, last, lastSymbol) || rules.IsDraw(s.state) {
		return Evaluate(s.state, s.mover)
	}

	toMove := s.mover
	if !maximizing {
		toMove = s.mover.Opponent()
	}
	var key uint64
	if s.tt != nil {
		key = s.state.Hash() ^ s.keys.SideKey(toMove)
		if entry, ok := s.tt.Probe(key); ok && entry.Depth >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLower:
				if score > alpha {
					alpha = score
				}
			case TTUpper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	alphaOrig, betaOrig := alpha, beta
	best := maxScore
	if maximizing {
		best = -maxScore
	}
	var bestMove board.Move
	found := false
	s.eachEmpty(func(move board.Move) bool {
		delta, err := rules.Apply(s.state, move, toMove)
		if err != nil {
			return true
		}
		score := s.minimax(move, toMove, depth-1, alpha, beta, !maximizing)
		rules.Revert(s.state, delta)
		if maximizing {
			if !found || score > best {
				best, bestMove = score, move
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if !found || score < best {
				best, bestMove = score, move
			}
			if best < beta {
				beta = best
			}
		}
		found = true
		return alpha < beta
	})
	if !found {
		return Evaluate(s.state, s.mover)
	}

	if s.tt != nil {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpper
		} else if best >= betaOrig {
			flag = TTLower
		}
		s.tt.Store(key, depth, best, flag, bestMove)
	}
	return best
}

// eachEmpty visits empty cells in row-major order until visit returns
// false. The grid must be identical before and after each visit.
func (s *searcher) eachEmpty(visit func(board.Move) bool) {
	size := s.state.Grid.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if s.state.Grid.At(row, col) != board.CellEmpty {
				continue
			}
			if !visit(board.Move{Row: row, Col: col}) {
				return
			}
		}
	}
}

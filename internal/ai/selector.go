package ai

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"

	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

const (
	DefaultDepth  = 2
	defaultTTSize = 1 << 16
	ttBuckets     = 2
)

// ErrNoLegalMove is returned when a move is requested on a position with
// nothing left to play. Drivers check rules.IsGameOver first.
var ErrNoLegalMove = errors.New("no legal move")

type Stage string

const (
	StageWin      Stage = "win"
	StageCapture  Stage = "capture"
	StageBlock    Stage = "block"
	StageSearch   Stage = "search"
	StageCorner   Stage = "corner"
	StageEdge     Stage = "edge"
	StageAdjacent Stage = "adjacent"
	StageRandom   Stage = "random"
)

type Decision struct {
	Move  board.Move
	Stage Stage
	Score int
	Nodes int
}

type Option func(*Selector)

// WithDepth sets the minimax depth in plies. Zero skips the search stage.
func WithDepth(depth int) Option {
	return func(s *Selector) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

func WithRandom(random RandomSource) Option {
	return func(s *Selector) {
		s.random = random
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Selector) {
		s.random = rand.New(rand.NewSource(seed))
	}
}

// WithTTSize sets the transposition table slots used by searches deeper
// than DefaultDepth.
func WithTTSize(size int) Option {
	return func(s *Selector) {
		if size > 0 {
			s.ttSize = size
		}
	}
}

// Selector picks moves through a fixed chain: win, capture, block,
// minimax, then positional fallbacks. A Selector is not safe for
// concurrent use; give each goroutine its own.
type Selector struct {
	depth  int
	random RandomSource
	ttSize int
	tt     *TranspositionTable
}

func NewSelector(opts ...Option) *Selector {
	s := &Selector{depth: DefaultDepth, ttSize: defaultTTSize}
	for _, opt := range opts {
		opt(s)
	}
	if s.random == nil {
		s.random = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

func (s *Selector) Depth() int {
	return s.depth
}

func (s *Selector) SelectMove(state *rules.GameState, symbol board.Symbol) (board.Move, error) {
	decision, err := s.Decide(state, symbol)
	if err != nil {
		return board.Move{}, err
	}
	return decision.Move, nil
}

// Decide runs the priority chain and reports which stage produced the
// move. The state is restored to its original contents before returning.
func (s *Selector) Decide(state *rules.GameState, symbol board.Symbol) (Decision, error) {
	if state.Grid.CountEmpty() == 0 {
		return Decision{}, ErrNoLegalMove
	}
	if move, ok := findWinningMove(state, symbol); ok {
		return Decision{Move: move, Stage: StageWin}, nil
	}
	if move, ok := findCaptureMove(state, symbol); ok {
		return Decision{Move: move, Stage: StageCapture}, nil
	}
	if move, ok := findBlockMove(state, symbol); ok {
		return Decision{Move: move, Stage: StageBlock}, nil
	}
	if s.depth > 0 {
		result := s.search(state, symbol)
		if result.found {
			return Decision{Move: result.move, Stage: StageSearch, Score: result.score, Nodes: result.nodes}, nil
		}
	}
	if move, ok := findCornerMove(state, symbol); ok {
		return Decision{Move: move, Stage: StageCorner}, nil
	}
	if move, ok := findEdgeMove(state, symbol); ok {
		return Decision{Move: move, Stage: StageEdge}, nil
	}
	if move, ok := findAdjacentMove(state, symbol); ok {
		return Decision{Move: move, Stage: StageAdjacent}, nil
	}
	if move, ok := findRandomMove(state, symbol, s.random); ok {
		return Decision{Move: move, Stage: StageRandom}, nil
	}
	return Decision{}, ErrNoLegalMove
}

func (s *Selector) search(state *rules.GameState, symbol board.Symbol) searchResult {
	sr := &searcher{
		state: state,
		mover: symbol,
		keys:  board.GetZobrist(state.Size()),
	}
	// The table is cleared per call so repeated calls on one position agree.
	if s.depth > DefaultDepth {
		if s.tt == nil {
			s.tt = NewTranspositionTable(uint64(s.ttSize), ttBuckets)
		}
		s.tt.Clear()
		sr.tt = s.tt
	}
	return sr.run(s.depth)
}

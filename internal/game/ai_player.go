package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/valarcon42madrid/Gomoku/internal/ai"
	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

// Thought is the outcome of one move selection.
type Thought struct {
	Decision ai.Decision
	Err      error
	Elapsed  time.Duration
}

// AIPlayer runs its Selector on a private copy of the position, either
// synchronously through Choose or in a worker goroutine started by
// StartThinking. Only one selection runs at a time.
type AIPlayer struct {
	selector   *ai.Selector
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	ready      Thought
}

func NewAIPlayer(opts ...ai.Option) *AIPlayer {
	return &AIPlayer{selector: ai.NewSelector(opts...)}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) Depth() int {
	return a.selector.Depth()
}

func (a *AIPlayer) Choose(state *rules.GameState, symbol board.Symbol) Thought {
	a.waitWorker()
	return a.think(state.Clone(), symbol)
}

func (a *AIPlayer) StartThinking(state *rules.GameState, symbol board.Symbol) {
	if a.thinking.Load() {
		return
	}
	a.waitWorker()
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		thought := a.think(stateCopy, symbol)
		if a.stopSignal.Load() {
			a.thinking.Store(false)
			return
		}
		a.moveMutex.Lock()
		a.ready = thought
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() Thought {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.ready
}

// StopThinking discards the result of the running selection. The worker
// still finishes its search in the background.
func (a *AIPlayer) StopThinking() {
	a.stopSignal.Store(true)
	a.moveReady.Store(false)
}

func (a *AIPlayer) think(state *rules.GameState, symbol board.Symbol) Thought {
	start := time.Now()
	decision, err := a.selector.Decide(state, symbol)
	return Thought{Decision: decision, Err: err, Elapsed: time.Since(start)}
}

func (a *AIPlayer) waitWorker() {
	if a.workerDone != nil {
		<-a.workerDone
	}
}

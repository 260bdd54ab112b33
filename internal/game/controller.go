package game

import (
	"sync"

	"github.com/valarcon42madrid/Gomoku/internal/board"
)

// Controller serializes access to one Game for concurrent callers such as
// HTTP handlers and the tick loop.
type Controller struct {
	mu   sync.Mutex
	game *Game
}

func NewController(settings Settings) *Controller {
	return &Controller{game: NewGame(settings)}
}

func (gc *Controller) ApplyHumanMove(move board.Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.Status() != StatusRunning {
		return false, "game not running"
	}
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyMove(move)
}

func (gc *Controller) SubmitHumanMove(move board.Move) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(move)
}

func (gc *Controller) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *Controller) Snapshot() Snapshot {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Snapshot()
}

func (gc *Controller) Settings() Settings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *Controller) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *Controller) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.history.Last()
}

func (gc *Controller) Reset(settings Settings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *Controller) StartGame(settings Settings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
}

// UpdateSettings switches player types in place, keeping the board and the
// history, unless reset is set.
func (gc *Controller) UpdateSettings(update Settings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset || update.BoardSize != gc.game.settings.BoardSize {
		gc.game.Reset(update)
		return
	}
	gc.game.stopThinking()
	gc.game.settings = update
	gc.game.createPlayers()
}

package game

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/valarcon42madrid/Gomoku/internal/ai"
	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

// Game drives one match: turn order, player input, the end condition and
// the move log. It is not safe for concurrent use; see Controller.
type Game struct {
	id          uuid.UUID
	settings    Settings
	state       *rules.GameState
	toMove      board.Symbol
	status      Status
	reason      rules.Reason
	winningLine []board.Move
	lastMove    board.Move
	hasLastMove bool
	lastMessage string
	history     MoveHistory
	players     [2]Player
	turnStart   time.Time
	logger      zerolog.Logger
}

// Snapshot is a copy of the game taken at one instant.
type Snapshot struct {
	ID          uuid.UUID
	Settings    Settings
	State       *rules.GameState
	ToMove      board.Symbol
	Status      Status
	Reason      rules.Reason
	WinningLine []board.Move
	LastMove    board.Move
	HasLastMove bool
	LastMessage string
	AiThinking  bool
	TurnStarted time.Time
}

func NewGame(settings Settings) *Game {
	g := &Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings Settings) {
	g.stopThinking()
	g.id = uuid.New()
	g.settings = settings
	g.state = rules.NewGameState(settings.BoardSize)
	g.toMove = board.Second
	if settings.FirstStarts {
		g.toMove = board.First
	}
	g.status = StatusNotStarted
	g.reason = ""
	g.winningLine = nil
	g.lastMove = board.Move{}
	g.hasLastMove = false
	g.lastMessage = ""
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logger = log.With().Str("game", g.id.String()).Logger()
	g.logger.Info().
		Int("board_size", settings.BoardSize).
		Stringer("first", settings.FirstType).
		Stringer("second", settings.SecondType).
		Stringer("starts", g.toMove).
		Msg("game reset")
}

func (g *Game) Start() {
	if g.status != StatusNotStarted {
		return
	}
	g.status = StatusRunning
	g.turnStart = time.Now()
	g.logger.Info().Msg("game started")
	g.endIfStuck()
}

func (g *Game) ID() uuid.UUID {
	return g.id
}

func (g *Game) Settings() Settings {
	return g.settings
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) ToMove() board.Symbol {
	return g.toMove
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:          g.id,
		Settings:    g.settings,
		State:       g.state.Clone(),
		ToMove:      g.toMove,
		Status:      g.status,
		Reason:      g.reason,
		WinningLine: append([]board.Move(nil), g.winningLine...),
		LastMove:    g.lastMove,
		HasLastMove: g.hasLastMove,
		LastMessage: g.lastMessage,
		AiThinking:  g.AiThinking(),
		TurnStarted: g.turnStart,
	}
}

// TryApplyMove plays move for the side to move. On rejection it returns
// false and the reason, and the game is unchanged.
func (g *Game) TryApplyMove(move board.Move) (bool, string) {
	player := g.currentPlayer()
	isAi := player != nil && !player.IsHuman()
	return g.applyMove(move, isAi, "")
}

// SubmitHumanMove queues move for the next Tick when a human is to move.
func (g *Game) SubmitHumanMove(move board.Move) bool {
	if g.status != StatusRunning {
		return false
	}
	human, ok := g.currentPlayer().(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

// Tick advances the game by at most one move and reports whether the game
// changed.
func (g *Game) Tick() bool {
	if g.status != StatusRunning {
		return false
	}
	switch player := g.currentPlayer().(type) {
	case *HumanPlayer:
		if !player.HasPendingMove() {
			return false
		}
		applied, _ := g.TryApplyMove(player.TakePendingMove())
		return applied
	case *AIPlayer:
		if player.HasMoveReady() {
			return g.applyThought(player.TakeMove())
		}
		if !player.IsThinking() {
			player.StartThinking(g.state, g.toMove)
		}
	}
	return false
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	if player, ok := g.currentPlayer().(*AIPlayer); ok {
		return player.IsThinking()
	}
	return false
}

func (g *Game) applyThought(thought Thought) bool {
	if thought.Err != nil {
		if errors.Is(thought.Err, ai.ErrNoLegalMove) {
			g.finishDraw("no legal move for " + g.toMove.String())
		} else {
			g.logger.Error().Err(thought.Err).Stringer("player", g.toMove).Msg("move selection failed")
			g.finishDraw("engine error")
		}
		return true
	}
	decision := thought.Decision
	g.logger.Debug().
		Stringer("player", g.toMove).
		Stringer("move", decision.Move).
		Str("stage", string(decision.Stage)).
		Int("score", decision.Score).
		Int("nodes", decision.Nodes).
		Dur("elapsed", thought.Elapsed).
		Msg("ai decision")
	applied, reason := g.applyMove(decision.Move, true, decision.Stage)
	if !applied {
		g.logger.Error().Stringer("move", decision.Move).Str("reason", reason).Msg("ai move rejected")
	}
	return applied
}

func (g *Game) applyMove(move board.Move, isAi bool, stage ai.Stage) (bool, string) {
	if g.status != StatusRunning {
		return false, "game not running"
	}
	mover := g.toMove
	delta, err := rules.Apply(g.state, move, mover)
	if err != nil {
		g.lastMessage = err.Error()
		return false, g.lastMessage
	}
	g.stopThinking()
	g.lastMessage = ""
	g.lastMove = move
	g.hasLastMove = true

	entry := HistoryEntry{
		Move:      move,
		Player:    mover,
		Captured:  delta.Captured(),
		ElapsedMs: float64(time.Since(g.turnStart).Microseconds()) / 1000,
		IsAi:      isAi,
		Stage:     stage,
	}
	g.history.Push(entry)
	g.logger.Info().
		Int("ply", g.history.Size()).
		Stringer("player", mover).
		Int("row", move.Row).
		Int("col", move.Col).
		Int("captured", len(entry.Captured)).
		Int("captures_total", g.state.Captures(mover)).
		Bool("ai", isAi).
		Float64("elapsed_ms", entry.ElapsedMs).
		Msg("move played")

	if rules.CheckWinner(g.state, mover) {
		g.status = wonBy(mover)
		g.reason = rules.ReasonAlignment
		if g.state.Captures(mover) >= rules.CaptureWinStones {
			g.reason = rules.ReasonCapture
		} else if line, ok := rules.AlignmentLine(g.state, mover); ok {
			g.winningLine = line
		}
		g.logger.Info().Stringer("winner", mover).Str("reason", string(g.reason)).Int("plies", g.history.Size()).Msg("game over")
		return true, ""
	}
	if rules.IsDraw(g.state) {
		g.finishDraw("board full")
		return true, ""
	}
	g.toMove = mover.Opponent()
	g.turnStart = time.Now()
	g.endIfStuck()
	return true, ""
}

// endIfStuck ends the game as a draw when the side to move has only
// forbidden cells left.
func (g *Game) endIfStuck() {
	if g.status != StatusRunning {
		return
	}
	for _, move := range rules.EmptyPositions(g.state) {
		if rules.IsLegalMove(g.state, move, g.toMove) {
			return
		}
	}
	g.finishDraw("no legal move for " + g.toMove.String())
}

func (g *Game) finishDraw(why string) {
	g.status = StatusDraw
	g.lastMessage = why
	g.logger.Info().Str("reason", why).Int("plies", g.history.Size()).Msg("game drawn")
}

func (g *Game) currentPlayer() Player {
	return g.players[g.toMove]
}

func (g *Game) createPlayers() {
	types := [2]PlayerType{g.settings.FirstType, g.settings.SecondType}
	for i, kind := range types {
		if kind == PlayerHuman {
			g.players[i] = NewHumanPlayer()
			continue
		}
		opts := []ai.Option{ai.WithDepth(g.settings.AiDepth), ai.WithTTSize(g.settings.AiTtSize)}
		if g.settings.AiSeed != 0 {
			opts = append(opts, ai.WithSeed(g.settings.AiSeed+uint64(i)))
		}
		g.players[i] = NewAIPlayer(opts...)
	}
}

func (g *Game) stopThinking() {
	for _, player := range g.players {
		if bot, ok := player.(*AIPlayer); ok {
			bot.StopThinking()
		}
	}
}

package game

import (
	"context"
	"errors"
)

var (
	ErrHumanTurn    = errors.New("human player to move")
	ErrMoveLimit    = errors.New("move limit reached")
	ErrRejectedMove = errors.New("ai move rejected")
)

// PlayOut plays an all-AI game synchronously until it ends, ctx is done,
// or maxMoves moves were applied (maxMoves <= 0 means no limit). It returns
// the number of moves applied by this call.
func PlayOut(ctx context.Context, g *Game, maxMoves int) (int, error) {
	if g.status == StatusNotStarted {
		g.Start()
	}
	played := 0
	for g.status == StatusRunning {
		if err := ctx.Err(); err != nil {
			return played, err
		}
		if maxMoves > 0 && played >= maxMoves {
			return played, ErrMoveLimit
		}
		player, ok := g.currentPlayer().(*AIPlayer)
		if !ok {
			return played, ErrHumanTurn
		}
		before := g.history.Size()
		if !g.applyThought(player.Choose(g.state, g.toMove)) {
			return played, ErrRejectedMove
		}
		played += g.history.Size() - before
	}
	return played, nil
}

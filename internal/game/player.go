package game

import "github.com/valarcon42madrid/Gomoku/internal/board"

type Player interface {
	IsHuman() bool
}

// HumanPlayer holds at most one move submitted by the caller until the
// next Tick picks it up.
type HumanPlayer struct {
	pending     bool
	pendingMove board.Move
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) SetPendingMove(move board.Move) {
	h.pendingMove = move
	h.pending = true
}

func (h *HumanPlayer) HasPendingMove() bool {
	return h.pending
}

func (h *HumanPlayer) TakePendingMove() board.Move {
	h.pending = false
	return h.pendingMove
}

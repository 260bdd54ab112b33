package game

import "github.com/valarcon42madrid/Gomoku/internal/board"

type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusFirstWon
	StatusSecondWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusFirstWon:
		return "first_won"
	case StatusSecondWon:
		return "second_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func (s Status) Finished() bool {
	return s == StatusFirstWon || s == StatusSecondWon || s == StatusDraw
}

// Winner reports the winning symbol for a won game.
func (s Status) Winner() (board.Symbol, bool) {
	switch s {
	case StatusFirstWon:
		return board.First, true
	case StatusSecondWon:
		return board.Second, true
	default:
		return board.First, false
	}
}

func wonBy(symbol board.Symbol) Status {
	if symbol == board.First {
		return StatusFirstWon
	}
	return StatusSecondWon
}

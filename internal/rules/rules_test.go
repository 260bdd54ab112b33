package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valarcon42madrid/Gomoku/internal/board"
)

func TestNewGameStateIsEmpty(t *testing.T) {
	state := NewGameState(19)
	require.Equal(t, 19, state.Size())
	require.Len(t, EmptyPositions(state), 361)
	require.Zero(t, state.Captures(board.First))
	require.Zero(t, state.Captures(board.Second))
	require.False(t, IsGameOver(state))
}

func TestEmptyPositionsRowMajor(t *testing.T) {
	state := NewGameState(3)
	state.Place(0, 1, board.First)
	state.Place(2, 0, board.Second)

	got := EmptyPositions(state)
	want := []board.Move{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}
	require.Equal(t, want, got)
}

func TestCheckMoveReasons(t *testing.T) {
	state := NewGameState(9)
	state.Place(4, 4, board.First)

	require.ErrorIs(t, CheckMove(state, board.NewMove(-1, 0), board.First), ErrOutOfBounds)
	require.ErrorIs(t, CheckMove(state, board.NewMove(0, 9), board.First), ErrIllegalMove)
	require.ErrorIs(t, CheckMove(state, board.NewMove(4, 4), board.Second), ErrOccupied)
	require.NoError(t, CheckMove(state, board.NewMove(0, 0), board.Second))
}

func TestIsLegalMoveIsPure(t *testing.T) {
	state := NewGameState(19)
	state.Place(5, 6, board.First)
	state.Place(5, 7, board.First)
	state.Place(6, 5, board.First)
	state.Place(7, 5, board.First)
	state.Place(9, 9, board.Second)
	before := state.Grid.String()
	hash := state.Hash()

	for i := 0; i < 5; i++ {
		require.False(t, IsLegalMove(state, board.NewMove(5, 5), board.First))
		require.True(t, IsLegalMove(state, board.NewMove(10, 10), board.First))
	}
	require.Equal(t, before, state.Grid.String())
	require.Equal(t, hash, state.Hash())
}

func TestDoubleThree(t *testing.T) {
	t.Run("two open twos through the point are rejected", func(t *testing.T) {
		state := NewGameState(19)
		state.Place(5, 6, board.First)
		state.Place(5, 7, board.First)
		state.Place(6, 5, board.First)
		state.Place(7, 5, board.First)

		require.True(t, IntroducesDoubleThree(state, board.NewMove(5, 5), board.First))
		require.ErrorIs(t, CheckMove(state, board.NewMove(5, 5), board.First), ErrDoubleThree)
		require.False(t, ApplyMove(state, board.NewMove(5, 5), board.First))
		require.Equal(t, board.CellEmpty, state.Grid.At(5, 5))
	})

	t.Run("a single open three is accepted", func(t *testing.T) {
		state := NewGameState(19)
		state.Place(5, 6, board.First)
		state.Place(5, 7, board.First)

		require.True(t, IsLegalMove(state, board.NewMove(5, 5), board.First))
	})

	t.Run("restriction only looks at the mover's stones", func(t *testing.T) {
		state := NewGameState(19)
		state.Place(5, 6, board.First)
		state.Place(5, 7, board.First)
		state.Place(6, 5, board.First)
		state.Place(7, 5, board.First)

		require.True(t, IsLegalMove(state, board.NewMove(5, 5), board.Second))
	})

	t.Run("a closed end does not count as open", func(t *testing.T) {
		state := NewGameState(19)
		state.Place(5, 6, board.First)
		state.Place(5, 7, board.First)
		state.Place(5, 8, board.Second)
		state.Place(6, 5, board.First)
		state.Place(7, 5, board.First)

		require.True(t, IsLegalMove(state, board.NewMove(5, 5), board.First))
	})

	t.Run("the board edge closes a line", func(t *testing.T) {
		state := NewGameState(19)
		state.Place(0, 1, board.First)
		state.Place(0, 2, board.First)
		state.Place(1, 0, board.First)
		state.Place(2, 0, board.First)

		require.True(t, IsLegalMove(state, board.NewMove(0, 0), board.First))
	})
}

func TestCaptureInEveryDirection(t *testing.T) {
	for _, d := range board.Directions {
		d := d
		t.Run(d2s(d), func(t *testing.T) {
			state := NewGameState(19)
			origin := board.NewMove(9, 9)
			state.Place(origin.Step(d, 3).Row, origin.Step(d, 3).Col, board.First)
			state.Place(origin.Step(d, 1).Row, origin.Step(d, 1).Col, board.Second)
			state.Place(origin.Step(d, 2).Row, origin.Step(d, 2).Col, board.Second)

			require.True(t, WouldCapture(state, origin, board.First))
			require.ElementsMatch(t, []board.Move{origin.Step(d, 1), origin.Step(d, 2)}, CaptureTargets(state, origin, board.First))

			require.True(t, ApplyMove(state, origin, board.First))
			require.Equal(t, board.CellEmpty, state.Grid.Get(origin.Step(d, 1)))
			require.Equal(t, board.CellEmpty, state.Grid.Get(origin.Step(d, 2)))
			require.Equal(t, 2, state.Captures(board.First))
			require.Zero(t, state.Captures(board.Second))
			require.Zero(t, state.Grid.Stones(board.Second))
		})
	}
}

func TestMultipleCapturesFromOnePlacement(t *testing.T) {
	state := NewGameState(19)
	state.Place(9, 10, board.Second)
	state.Place(9, 11, board.Second)
	state.Place(9, 12, board.First)
	state.Place(10, 9, board.Second)
	state.Place(11, 9, board.Second)
	state.Place(12, 9, board.First)

	delta, err := Apply(state, board.NewMove(9, 9), board.First)
	require.NoError(t, err)
	require.Equal(t, 4, delta.CapturedCount())
	require.Equal(t, 4, state.Captures(board.First))
	require.Zero(t, state.Grid.Stones(board.Second))
}

func TestNoCaptureOfSingleOrTriple(t *testing.T) {
	state := NewGameState(19)
	state.Place(9, 10, board.Second)
	state.Place(9, 11, board.First)
	state.Place(3, 4, board.Second)
	state.Place(3, 5, board.Second)
	state.Place(3, 6, board.Second)
	state.Place(3, 7, board.First)

	require.True(t, ApplyMove(state, board.NewMove(9, 9), board.First))
	require.True(t, ApplyMove(state, board.NewMove(3, 3), board.First))
	require.Zero(t, state.Captures(board.First))
	require.Equal(t, 4, state.Grid.Stones(board.Second))
}

func TestMovingIntoAFlankedPairIsSafe(t *testing.T) {
	state := NewGameState(19)
	state.Place(4, 4, board.First)
	state.Place(4, 5, board.Second)
	state.Place(4, 7, board.First)

	require.True(t, ApplyMove(state, board.NewMove(4, 6), board.Second))
	require.Equal(t, board.CellSecond, state.Grid.At(4, 5))
	require.Equal(t, board.CellSecond, state.Grid.At(4, 6))
	require.Zero(t, state.Captures(board.First))
}

func TestApplyPlacesOneStoneAndRemovesPairs(t *testing.T) {
	state := NewGameState(9)
	sequence := []struct {
		move   board.Move
		symbol board.Symbol
	}{
		{board.NewMove(4, 4), board.First},
		{board.NewMove(4, 5), board.Second},
		{board.NewMove(3, 3), board.First},
		{board.NewMove(4, 6), board.Second},
		{board.NewMove(4, 7), board.First},
		{board.NewMove(5, 5), board.Second},
		{board.NewMove(6, 6), board.First},
		{board.NewMove(2, 2), board.Second},
	}
	for _, step := range sequence {
		own := state.Grid.Stones(step.symbol)
		opp := state.Grid.Stones(step.symbol.Opponent())
		tally := state.Captures(step.symbol)

		require.True(t, ApplyMove(state, step.move, step.symbol), "move %v", step.move)

		require.Equal(t, own+1, state.Grid.Stones(step.symbol))
		removed := opp - state.Grid.Stones(step.symbol.Opponent())
		require.Zero(t, removed%2)
		require.Equal(t, tally+removed, state.Captures(step.symbol))
	}
	require.Equal(t, 2, state.Captures(board.First))
}

func TestEndToEndOpening(t *testing.T) {
	state := NewGameState(19)
	require.True(t, ApplyMove(state, board.NewMove(9, 9), board.First))
	require.True(t, ApplyMove(state, board.NewMove(9, 10), board.Second))
	require.True(t, ApplyMove(state, board.NewMove(10, 9), board.First))

	require.Len(t, EmptyPositions(state), 358)
	require.Zero(t, state.Captures(board.First))
	require.Zero(t, state.Captures(board.Second))
}

func TestEndToEndCapture(t *testing.T) {
	state := NewGameState(19)
	state.Place(5, 5, board.First)
	state.Place(5, 6, board.Second)
	state.Place(5, 7, board.Second)

	require.True(t, ApplyMove(state, board.NewMove(5, 8), board.First))
	require.Equal(t, board.CellEmpty, state.Grid.At(5, 6))
	require.Equal(t, board.CellEmpty, state.Grid.At(5, 7))
	require.Equal(t, 2, state.Captures(board.First))
}

func TestRevertRestoresCaptures(t *testing.T) {
	state := NewGameState(19)
	state.Place(5, 5, board.First)
	state.Place(5, 6, board.Second)
	state.Place(5, 7, board.Second)
	before := state.Clone()

	delta, err := Apply(state, board.NewMove(5, 8), board.First)
	require.NoError(t, err)
	require.Equal(t, []board.Move{{Row: 5, Col: 7}, {Row: 5, Col: 6}}, delta.Captured())

	Revert(state, delta)
	require.Equal(t, before.Grid.String(), state.Grid.String())
	require.Equal(t, before.Hash(), state.Hash())
	require.Zero(t, state.Captures(board.First))
}

func TestUndoMoveOnlyClearsTheCell(t *testing.T) {
	state := NewGameState(19)
	state.Place(5, 5, board.First)
	state.Place(5, 6, board.Second)
	state.Place(5, 7, board.Second)
	require.True(t, ApplyMove(state, board.NewMove(5, 8), board.First))

	UndoMove(state, board.NewMove(5, 8))
	UndoMove(state, board.NewMove(40, 40))

	require.Equal(t, board.CellEmpty, state.Grid.At(5, 8))
	require.Equal(t, board.CellEmpty, state.Grid.At(5, 6))
	require.Equal(t, 2, state.Captures(board.First))
}

func TestAlignmentAndWinner(t *testing.T) {
	five := func(state *GameState, symbol board.Symbol) {
		for col := 2; col < 7; col++ {
			state.Place(3, col, symbol)
		}
	}

	t.Run("safe five wins", func(t *testing.T) {
		state := NewGameState(19)
		five(state, board.First)
		require.True(t, HasFiveAlignment(state, board.First))
		require.True(t, CheckWinner(state, board.First))
		require.False(t, CheckWinner(state, board.Second))
		require.True(t, IsGameOver(state))

		winner, reason, ok := Winner(state)
		require.True(t, ok)
		require.Equal(t, board.First, winner)
		require.Equal(t, ReasonAlignment, reason)

		line, ok := AlignmentLine(state, board.First)
		require.True(t, ok)
		require.Equal(t, []board.Move{{Row: 3, Col: 2}, {Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 3, Col: 5}, {Row: 3, Col: 6}}, line)
	})

	t.Run("four is not an alignment", func(t *testing.T) {
		state := NewGameState(19)
		for col := 2; col < 6; col++ {
			state.Place(3, col, board.First)
		}
		require.False(t, HasFiveAlignment(state, board.First))
		require.False(t, CheckWinner(state, board.First))
	})

	t.Run("diagonal alignment", func(t *testing.T) {
		state := NewGameState(19)
		for i := 0; i < 5; i++ {
			state.Place(10+i, 8-i, board.Second)
		}
		require.True(t, HasFiveAlignment(state, board.Second))
		require.True(t, CheckWinner(state, board.Second))
	})

	t.Run("opponent at endgame threshold denies the alignment", func(t *testing.T) {
		state := NewGameState(19)
		five(state, board.First)
		state.SetCaptures(board.Second, EndgameCaptureThreshold)
		require.True(t, HasFiveAlignment(state, board.First))
		require.False(t, CheckWinner(state, board.First))

		state.SetCaptures(board.Second, EndgameCaptureThreshold-2)
		require.True(t, CheckWinner(state, board.First))
	})

	t.Run("capturable alignment does not win", func(t *testing.T) {
		state := NewGameState(19)
		five(state, board.First)
		state.Place(4, 2, board.First)
		state.Place(5, 2, board.Second)

		require.True(t, HasFiveAlignment(state, board.First))
		require.False(t, IsCaptureSafe(state, 3, 2, 0, 1, board.First))
		require.False(t, CheckWinner(state, board.First))
		require.False(t, IsWinningMove(state, board.NewMove(3, 4), board.First))
	})

	t.Run("six in a row has a safe window", func(t *testing.T) {
		state := NewGameState(19)
		for col := 2; col < 8; col++ {
			state.Place(3, col, board.First)
		}
		require.True(t, CheckWinner(state, board.First))
		require.True(t, IsWinningMove(state, board.NewMove(3, 7), board.First))
	})
}

func TestWinByCapture(t *testing.T) {
	state := NewGameState(19)
	state.SetCaptures(board.First, 8)
	state.Place(5, 5, board.First)
	state.Place(5, 6, board.Second)
	state.Place(5, 7, board.Second)
	require.False(t, CheckWinner(state, board.First))

	require.True(t, ApplyMove(state, board.NewMove(5, 8), board.First))
	require.Equal(t, CaptureWinStones, state.Captures(board.First))
	require.True(t, CheckWinner(state, board.First))
	require.True(t, IsWinningMove(state, board.NewMove(5, 8), board.First))
	require.True(t, IsGameOver(state))

	winner, reason, ok := Winner(state)
	require.True(t, ok)
	require.Equal(t, board.First, winner)
	require.Equal(t, ReasonCapture, reason)
}

func TestDrawOnFullBoard(t *testing.T) {
	state := NewGameState(3)
	symbols := []board.Symbol{board.First, board.Second}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			state.Place(row, col, symbols[(row+col)%2])
		}
	}
	require.True(t, IsDraw(state))
	require.True(t, IsGameOver(state))
	_, _, ok := Winner(state)
	require.False(t, ok)
}

func TestHashTracksStonesAndTallies(t *testing.T) {
	a := NewGameState(9)
	b := NewGameState(9)
	a.Place(1, 1, board.First)
	a.Place(2, 2, board.Second)
	b.Place(2, 2, board.Second)
	b.Place(1, 1, board.First)
	require.Equal(t, a.Hash(), b.Hash())

	b.SetCaptures(board.First, 2)
	require.NotEqual(t, a.Hash(), b.Hash())
}

func d2s(d board.Direction) string {
	return board.NewMove(d.DR, d.DC).String()
}

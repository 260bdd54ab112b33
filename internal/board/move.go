package board

import "fmt"

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) In(size int) bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < size && m.Col < size
}

// Step returns the cell n steps away along d.
func (m Move) Step(d Direction, n int) Move {
	return Move{Row: m.Row + d.DR*n, Col: m.Col + d.DC*n}
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

type Direction struct {
	DR int
	DC int
}

func (d Direction) Reverse() Direction {
	return Direction{DR: -d.DR, DC: -d.DC}
}

// Axes are the four line orientations: a line and its reverse share an axis.
var Axes = [4]Direction{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

var Directions = [8]Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}}

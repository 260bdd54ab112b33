package board

import "strings"

// Grid is a square matrix of cells. The size is fixed at construction.
// Stone counts and the zobrist hash are maintained on every write.
type Grid struct {
	size   int
	cells  []Cell
	stones [2]int
	hash   uint64
	keys   *ZobristTable
}

func NewGrid(size int) Grid {
	return Grid{
		size:  size,
		cells: make([]Cell, size*size),
		keys:  GetZobrist(size),
	}
}

func (g Grid) Size() int {
	return g.size
}

func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.size && col < g.size
}

func (g Grid) At(row, col int) Cell {
	return g.cells[g.index(row, col)]
}

// Get returns CellEmpty for out-of-bounds coordinates; callers must not
// read an out-of-bounds Empty as an open end.
func (g Grid) Get(m Move) Cell {
	if !g.InBounds(m.Row, m.Col) {
		return CellEmpty
	}
	return g.cells[g.index(m.Row, m.Col)]
}

func (g Grid) IsEmpty(row, col int) bool {
	return g.InBounds(row, col) && g.At(row, col) == CellEmpty
}

func (g *Grid) Set(row, col int, value Cell) {
	idx := g.index(row, col)
	old := g.cells[idx]
	if old == value {
		return
	}
	if sym, ok := old.Symbol(); ok {
		g.stones[sym]--
		g.hash ^= g.keys.stone(idx, sym)
	}
	if sym, ok := value.Symbol(); ok {
		g.stones[sym]++
		g.hash ^= g.keys.stone(idx, sym)
	}
	g.cells[idx] = value
}

func (g *Grid) Remove(row, col int) {
	g.Set(row, col, CellEmpty)
}

func (g Grid) Stones(symbol Symbol) int {
	return g.stones[symbol]
}

func (g Grid) CountEmpty() int {
	return len(g.cells) - g.stones[First] - g.stones[Second]
}

func (g Grid) Hash() uint64 {
	return g.hash
}

func (g Grid) Clone() Grid {
	clone := g
	clone.cells = make([]Cell, len(g.cells))
	copy(clone.cells, g.cells)
	return clone
}

// Ray walks from (row, col) along d for at most limit steps while the
// visited cells equal target. It returns the number of matching cells and
// whether the walk stopped on an in-bounds empty cell.
func (g Grid) Ray(row, col int, d Direction, target Cell, limit int) (count int, open bool) {
	r := row + d.DR
	c := col + d.DC
	for step := 0; step < limit; step++ {
		if !g.InBounds(r, c) {
			return count, false
		}
		cell := g.At(r, c)
		if cell != target {
			return count, cell == CellEmpty
		}
		count++
		r += d.DR
		c += d.DC
	}
	return count, false
}

func (g Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			b.WriteString(g.At(row, col).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g Grid) index(row, col int) int {
	return row*g.size + col
}

package board

type Symbol int

const (
	First Symbol = iota
	Second
)

// Opponent returns the other of the two symbols.
func (s Symbol) Opponent() Symbol {
	if s == First {
		return Second
	}
	return First
}

func (s Symbol) String() string {
	if s == First {
		return "X"
	}
	return "O"
}

func (s Symbol) Valid() bool {
	return s == First || s == Second
}

type Cell uint8

const (
	CellEmpty Cell = iota
	CellFirst
	CellSecond
)

func CellOf(symbol Symbol) Cell {
	if symbol == First {
		return CellFirst
	}
	return CellSecond
}

// Symbol reports the owner of a stone; ok is false for an empty cell.
func (c Cell) Symbol() (Symbol, bool) {
	switch c {
	case CellFirst:
		return First, true
	case CellSecond:
		return Second, true
	default:
		return First, false
	}
}

func (c Cell) String() string {
	switch c {
	case CellFirst:
		return "X"
	case CellSecond:
		return "O"
	default:
		return "."
	}
}

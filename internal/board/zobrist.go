package board

import "sync"

type ZobristTable struct {
	size  int
	cells []uint64
	side  uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*ZobristTable)}

// GetZobrist returns the shared key table for a board size. Keys are
// derived from a fixed seed so hashes are stable across runs.
func GetZobrist(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	table := &ZobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.side = rng.next()
	zobristTables.tables[size] = table
	return table
}

func (z *ZobristTable) stone(idx int, symbol Symbol) uint64 {
	return z.cells[idx*2+int(symbol)]
}

// SideKey is mixed into a position key when Second is to move.
func (z *ZobristTable) SideKey(toMove Symbol) uint64 {
	if toMove == Second {
		return z.side
	}
	return 0
}

func CaptureKey(symbol Symbol, count int) uint64 {
	seed := uint64(count)<<1 | uint64(symbol&1)
	rng := splitmix64{state: seed + 0x9e3779b97f4a7c15}
	return rng.next()
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

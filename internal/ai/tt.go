package ai

import "github.com/valarcon42madrid/Gomoku/internal/board"

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

type TTEntry struct {
	Key      uint64
	Depth    int
	Score    int32
	Flag     TTFlag
	BestMove board.Move
	Valid    bool
}

// TranspositionTable is a set-associative cache of search results. It is
// owned by one Selector and is not safe for concurrent use.
type TranspositionTable struct {
	mask    uint64
	buckets int
	entries []TTEntry
}

func NewTranspositionTable(size uint64, buckets int) *TranspositionTable {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if (size & (size - 1)) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &TranspositionTable{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]TTEntry, int(size)*buckets),
	}
}

func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		entry := tt.entries[start+i]
		if entry.Valid && entry.Key == key {
			return entry, true
		}
	}
	return TTEntry{}, false
}

func (tt *TranspositionTable) Store(key uint64, depth int, score int, flag TTFlag, best board.Move) bool {
	start := tt.bucketIndex(key)
	fresh := TTEntry{
		Key:      key,
		Depth:    depth,
		Score:    clampScore(score),
		Flag:     flag,
		BestMove: best,
		Valid:    true,
	}

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !entry.Valid || entry.Key != key {
			continue
		}
		if replacementClass(entry, depth, flag) == 0 {
			return false
		}
		tt.entries[idx] = fresh
		return true
	}

	victim := -1
	victimClass := 0
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !entry.Valid {
			victim = idx
			break
		}
		class := replacementClass(entry, depth, flag)
		if class == 0 {
			continue
		}
		if victim == -1 || class < victimClass {
			victim = idx
			victimClass = class
		}
	}
	if victim == -1 {
		return false
	}
	tt.entries[victim] = fresh
	return true
}

func (tt *TranspositionTable) Count() int {
	count := 0
	for i := range tt.entries {
		if tt.entries[i].Valid {
			count++
		}
	}
	return count
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return len(tt.entries)
}

func (tt *TranspositionTable) bucketIndex(key uint64) int {
	return int(key&tt.mask) * tt.buckets
}

// replacementClass ranks how willingly an entry gives way; 0 keeps it.
func replacementClass(entry TTEntry, depth int, flag TTFlag) int {
	if depth > entry.Depth {
		return 1
	}
	if depth == entry.Depth && flag == TTExact && entry.Flag != TTExact {
		return 2
	}
	return 0
}

func clampScore(value int) int32 {
	if value > maxScore {
		return maxScore
	}
	if value < -maxScore {
		return -maxScore
	}
	return int32(value)
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}

package game

import (
	"github.com/valarcon42madrid/Gomoku/internal/ai"
	"github.com/valarcon42madrid/Gomoku/internal/board"
)

type HistoryEntry struct {
	Move      board.Move
	Player    board.Symbol
	Captured  []board.Move
	ElapsedMs float64
	IsAi      bool
	Stage     ai.Stage
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

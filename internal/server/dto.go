package server

import (
	"fmt"

	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/config"
	"github.com/valarcon42madrid/Gomoku/internal/game"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

const (
	modeAIvsAI       = "ai_vs_ai"
	modeHumanVsHuman = "human_vs_human"
	modeAIvsHuman    = "ai_vs_human"
)

type StatusResponse struct {
	GameID           string            `json:"game_id"`
	Settings         SettingsDTO       `json:"settings"`
	Config           config.Config     `json:"config"`
	NextPlayer       int               `json:"next_player"`
	Winner           int               `json:"winner"`
	BoardSize        int               `json:"board_size"`
	Board            [][]int           `json:"board"`
	Status           string            `json:"status"`
	History          []historyEntryDTO `json:"history"`
	WinReason        string            `json:"win_reason"`
	WinningLine      []board.Move      `json:"winning_line"`
	Captures         [2]int            `json:"captures"`
	CaptureWinStones int               `json:"capture_win_stones"`
	AiThinking       bool              `json:"ai_thinking"`
	LastMessage      string            `json:"last_message,omitempty"`
	TurnStartedAtMs  int64             `json:"turn_started_at_ms"`
}

// SettingsDTO carries the match mode. HumanPlayer is 1 or 2 and only
// matters for ai_vs_human.
type SettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
}

type apiMove struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type historyEntryDTO struct {
	Row       int          `json:"row"`
	Col       int          `json:"col"`
	Player    int          `json:"player"`
	ElapsedMs float64      `json:"elapsed_ms"`
	IsAi      bool         `json:"is_ai"`
	Stage     string       `json:"stage,omitempty"`
	Captured  []board.Move `json:"captured"`
	Changes   []cellChange `json:"changes"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type cellChange struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

type settingsPayload struct {
	Settings SettingsDTO   `json:"settings"`
	Config   config.Config `json:"config"`
}

func statusFromSnapshot(snap game.Snapshot, history game.MoveHistory, cfg config.Config) StatusResponse {
	return StatusResponse{
		GameID:           snap.ID.String(),
		Settings:         settingsToDTO(snap.Settings),
		Config:           cfg,
		NextPlayer:       playerToInt(snap.ToMove),
		Winner:           winnerFromStatus(snap.Status),
		BoardSize:        snap.State.Size(),
		Board:            gridToSlice(snap.State.Grid),
		Status:           snap.Status.String(),
		History:          historyToDTO(history),
		WinReason:        string(snap.Reason),
		WinningLine:      append([]board.Move{}, snap.WinningLine...),
		Captures:         [2]int{snap.State.Captures(board.First), snap.State.Captures(board.Second)},
		CaptureWinStones: rules.CaptureWinStones,
		AiThinking:       snap.AiThinking,
		LastMessage:      snap.LastMessage,
		TurnStartedAtMs:  snap.TurnStarted.UnixMilli(),
	}
}

func settingsFromDTO(dto SettingsDTO, base game.Settings) (game.Settings, error) {
	settings := base
	switch dto.Mode {
	case "":
	case modeAIvsAI:
		settings.FirstType = game.PlayerAI
		settings.SecondType = game.PlayerAI
	case modeHumanVsHuman:
		settings.FirstType = game.PlayerHuman
		settings.SecondType = game.PlayerHuman
	case modeAIvsHuman:
		if dto.HumanPlayer == 2 {
			settings.FirstType = game.PlayerAI
			settings.SecondType = game.PlayerHuman
		} else {
			settings.FirstType = game.PlayerHuman
			settings.SecondType = game.PlayerAI
		}
	default:
		return base, fmt.Errorf("unknown mode %q", dto.Mode)
	}
	return settings, nil
}

func settingsToDTO(settings game.Settings) SettingsDTO {
	switch {
	case settings.FirstType == game.PlayerAI && settings.SecondType == game.PlayerAI:
		return SettingsDTO{Mode: modeAIvsAI}
	case settings.FirstType == game.PlayerHuman && settings.SecondType == game.PlayerHuman:
		return SettingsDTO{Mode: modeHumanVsHuman, HumanPlayer: 1}
	case settings.FirstType == game.PlayerHuman:
		return SettingsDTO{Mode: modeAIvsHuman, HumanPlayer: 1}
	default:
		return SettingsDTO{Mode: modeAIvsHuman, HumanPlayer: 2}
	}
}

func gridToSlice(g board.Grid) [][]int {
	size := g.Size()
	rows := make([][]int, size)
	for r := 0; r < size; r++ {
		rows[r] = make([]int, size)
		for c := 0; c < size; c++ {
			rows[r][c] = cellToInt(g.At(r, c))
		}
	}
	return rows
}

func cellToInt(cell board.Cell) int {
	switch cell {
	case board.CellFirst:
		return 1
	case board.CellSecond:
		return 2
	default:
		return 0
	}
}

func playerToInt(symbol board.Symbol) int {
	if symbol == board.First {
		return 1
	}
	return 2
}

func winnerFromStatus(status game.Status) int {
	if winner, ok := status.Winner(); ok {
		return playerToInt(winner)
	}
	return 0
}

func historyToDTO(history game.MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry game.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Row:       entry.Move.Row,
		Col:       entry.Move.Col,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Stage:     string(entry.Stage),
		Captured:  append([]board.Move{}, entry.Captured...),
		Changes:   changesFromEntry(entry),
	}
}

func changesFromEntry(entry game.HistoryEntry) []cellChange {
	changes := []cellChange{{
		Row:   entry.Move.Row,
		Col:   entry.Move.Col,
		Value: playerToInt(entry.Player),
	}}
	for _, captured := range entry.Captured {
		changes = append(changes, cellChange{Row: captured.Row, Col: captured.Col})
	}
	return changes
}

package game

import (
	"github.com/valarcon42madrid/Gomoku/internal/ai"
	"github.com/valarcon42madrid/Gomoku/internal/config"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

func (t PlayerType) String() string {
	if t == PlayerAI {
		return "ai"
	}
	return "human"
}

type Settings struct {
	BoardSize   int        `json:"board_size"`
	FirstType   PlayerType `json:"-"`
	SecondType  PlayerType `json:"-"`
	FirstStarts bool       `json:"first_starts"`
	AiDepth     int        `json:"ai_depth"`
	AiSeed      uint64     `json:"ai_seed"`
	AiTtSize    int        `json:"ai_tt_size"`
}

func DefaultSettings() Settings {
	return Settings{
		BoardSize:   19,
		FirstType:   PlayerHuman,
		SecondType:  PlayerAI,
		FirstStarts: true,
		AiDepth:     ai.DefaultDepth,
		AiTtSize:    1 << 16,
	}
}

// SettingsFromConfig keeps the player types of DefaultSettings and takes
// the board and engine parameters from cfg.
func SettingsFromConfig(cfg config.Config) Settings {
	settings := DefaultSettings()
	settings.BoardSize = cfg.BoardSize
	settings.AiDepth = cfg.AiDepth
	settings.AiSeed = cfg.AiSeed
	settings.AiTtSize = cfg.AiTtSize
	return settings
}

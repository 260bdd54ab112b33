package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	MinBoardSize = 5
	MaxBoardSize = 19
)

type Config struct {
	ListenAddr     string `json:"listen_addr"`
	BoardSize      int    `json:"board_size"`
	AiDepth        int    `json:"ai_depth"`
	AiSeed         uint64 `json:"ai_seed"`
	AiTtSize       int    `json:"ai_tt_size"`
	TickIntervalMs int    `json:"tick_interval_ms"`
	LogLevel       string `json:"log_level"`
	LogPretty      bool   `json:"log_pretty"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8080",
		BoardSize:      19,
		AiDepth:        2,
		AiSeed:         0, // 0 seeds from the clock
		AiTtSize:       1 << 16,
		TickIntervalMs: 50,
		LogLevel:       "info",
		LogPretty:      false,
	}
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func (c Config) Validate() error {
	var errs []error
	if c.BoardSize < MinBoardSize || c.BoardSize > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board_size %d outside [%d, %d]", c.BoardSize, MinBoardSize, MaxBoardSize))
	}
	if c.AiDepth < 0 {
		errs = append(errs, fmt.Errorf("ai_depth %d is negative", c.AiDepth))
	}
	if c.AiTtSize <= 0 {
		errs = append(errs, fmt.Errorf("ai_tt_size %d must be positive", c.AiTtSize))
	}
	if c.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval_ms %d must be positive", c.TickIntervalMs))
	}
	return errors.Join(errs...)
}

// Load reads a JSON document over the defaults. Keys missing from the file
// keep their default values. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

type Store struct {
	mu     sync.RWMutex
	config Config
}

func NewStore(cfg Config) *Store {
	return &Store{config: cfg}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Store) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return nil
}

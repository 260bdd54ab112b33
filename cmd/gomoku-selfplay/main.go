package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/config"
	"github.com/valarcon42madrid/Gomoku/internal/game"
	"github.com/valarcon42madrid/Gomoku/internal/logging"
	"github.com/valarcon42madrid/Gomoku/internal/rules"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	games := flag.Int("games", 10, "number of games to play")
	seed := flag.Uint64("seed", 1, "seed for openings and engine fallbacks")
	openingPlies := flag.Int("opening", 2, "random opening plies per game")
	maxMoves := flag.Int("max-moves", 0, "move limit per game, 0 for none")
	size := flag.Int("size", 0, "board size, overrides board_size")
	depth := flag.Int("depth", -1, "minimax depth, overrides ai_depth")
	pretty := flag.Bool("pretty", false, "human readable logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *size > 0 {
		cfg.BoardSize = *size
	}
	if *depth >= 0 {
		cfg.AiDepth = *depth
	}
	if *pretty {
		cfg.LogPretty = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("setup logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	random := rand.New(rand.NewSource(*seed))
	results := map[game.Status]int{}
	failed := false
	start := time.Now()
	log.Info().Int("games", *games).Uint64("seed", *seed).Int("board_size", cfg.BoardSize).Int("ai_depth", cfg.AiDepth).Msg("starting selfplay")
	for i := 0; i < *games; i++ {
		settings := game.SettingsFromConfig(cfg)
		settings.FirstType = game.PlayerAI
		settings.SecondType = game.PlayerAI
		settings.AiSeed = random.Uint64() | 1

		g := game.NewGame(settings)
		g.Start()
		if err := playOpening(g, random, *openingPlies); err != nil {
			log.Error().Err(err).Int("game", i+1).Msg("opening failed")
			failed = true
			continue
		}
		played, err := game.PlayOut(ctx, g, *maxMoves)
		if err != nil && ctx.Err() != nil {
			log.Warn().Err(err).Msg("selfplay interrupted")
			break
		}
		if err != nil {
			log.Error().Err(err).Int("game", i+1).Int("moves", played).Msg("game aborted")
			failed = true
			continue
		}
		snap := g.Snapshot()
		results[snap.Status]++
		log.Info().
			Int("game", i+1).
			Str("id", snap.ID.String()).
			Stringer("result", snap.Status).
			Str("reason", string(snap.Reason)).
			Int("plies", g.History().Size()).
			Int("captures_first", snap.State.Captures(board.First)).
			Int("captures_second", snap.State.Captures(board.Second)).
			Msg("game finished")
	}
	log.Info().
		Int("first_won", results[game.StatusFirstWon]).
		Int("second_won", results[game.StatusSecondWon]).
		Int("draws", results[game.StatusDraw]).
		Dur("elapsed", time.Since(start)).
		Msg("selfplay complete")
	if failed {
		os.Exit(1)
	}
}

// playOpening places plies random legal stones through the regular move
// path so they are logged and recorded like any other move.
func playOpening(g *game.Game, random *rand.Rand, plies int) error {
	for i := 0; i < plies && g.Status() == game.StatusRunning; i++ {
		snap := g.Snapshot()
		var legal []board.Move
		for _, move := range rules.EmptyPositions(snap.State) {
			if rules.IsLegalMove(snap.State, move, snap.ToMove) {
				legal = append(legal, move)
			}
		}
		if len(legal) == 0 {
			return nil
		}
		if applied, reason := g.TryApplyMove(legal[random.Intn(len(legal))]); !applied {
			return errors.New(reason)
		}
	}
	return nil
}

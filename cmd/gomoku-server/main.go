package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/valarcon42madrid/Gomoku/internal/config"
	"github.com/valarcon42madrid/Gomoku/internal/game"
	"github.com/valarcon42madrid/Gomoku/internal/logging"
	"github.com/valarcon42madrid/Gomoku/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "listen address, overrides listen_addr")
	depth := flag.Int("depth", -1, "minimax depth, overrides ai_depth")
	pretty := flag.Bool("pretty", false, "human readable logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *depth >= 0 {
		cfg.AiDepth = *depth
	}
	if *pretty {
		cfg.LogPretty = true
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("setup logging")
	}

	store := config.NewStore(cfg)
	controller := game.NewController(game.SettingsFromConfig(cfg))
	srv := server.New(controller, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", cfg.ListenAddr).Int("board_size", cfg.BoardSize).Int("ai_depth", cfg.AiDepth).Msg("server listening")
	exitCode := 0
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			log.Error().Err(err).Msg("server error")
			exitCode = 1
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := httpServer.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error().Err(closeErr).Msg("forced close failed")
		}
	}
	cancel()
	log.Info().Msg("server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

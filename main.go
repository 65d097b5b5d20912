package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/httpserver"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.Logging)

	list, err := words.Load(cfg.Words.AnswersFile, cfg.Words.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	answers, accepted := list.Stats()
	log.Info().Int("answers", answers).Int("allowed", accepted).Msg("word lists loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	go sweep(ctx, mem, cfg.Session.TTL, cfg.Session.SweepInterval)

	srv := httpserver.New(mem, list, words.NewCryptoSource(), httpserver.Options{
		ClientOrigin:  cfg.Server.ClientOrigin,
		SessionSecret: []byte(cfg.Session.Secret),
		SessionTTL:    cfg.Session.TTL,
		Secure:        cfg.IsProduction(),
		DailySalt:     cfg.Words.DailySalt,
		ShareLink:     cfg.Server.ShareLink,
	})
	log.Info().Str("port", cfg.Server.Port).Msg("starting go-server")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(c config.LoggingConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sweep evicts games idle for longer than ttl until ctx is done.
func sweep(ctx context.Context, st store.Store, ttl, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(ctx, time.Now().Add(-ttl)); n > 0 {
				log.Info().Int("evicted", n).Int("live", st.Len()).Msg("swept idle games")
			}
		}
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	stdlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"people/config"
	"people/db"
	"people/http"
	"people/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdlog.Warn().Err(err).Msg("could not read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		stdlog.Fatal().Err(err).Msg("failed to build logger")
	}

	seed := db.Seed()
	log.Info().Str("id", seed.ID.String()).Msg("seeded person")

	store := db.NewMemoryStore(cfg.Store.Shards, seed)

	cache, err := handler.NewPersonCache(cfg.Cache.MaxCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create person cache")
	}
	defer cache.Close()

	router := handler.NewRouter(handler.New(store, cache, log), log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, srv, cfg.Server.ShutdownTimeout, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}

	log.Info().Msg("server stopped")
}

// run serves until ctx is done, then drains in-flight requests for at most
// shutdownTimeout.
func run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/itizir/ranked/interaction"
	"github.com/itizir/ranked/leaderboard"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	register = flag.Bool("register", false, "register bot commands with discord and exit; add the -cleanup flag to first remove any old commands")
	cleanup  = flag.Bool("cleanup", false, "when running with -register, also first remove any previously registered commands")
)

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig(ctx, newSecretAccessor)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	s, err := newSession(cfg.BotToken)
	if err != nil {
		return err
	}

	if *register {
		reg := newRegistrar(s, cfg, newCommandRouter(nil, cfg.StoreTimeout).Commands())
		if *cleanup {
			if err := reg.cleanupCommands(ctx); err != nil {
				return err
			}
		}
		_, err := reg.registerCommands(ctx)
		return err
	}

	store, err := leaderboard.OpenStore(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info().Str("driver", cfg.DBDriver).Msg("connected to database")

	router := newCommandRouter(store, cfg.StoreTimeout)
	reg := newRegistrar(s, cfg, router.Commands())

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           newHTTPHandler(interaction.NewEndpoint(cfg.PublicKey, router), reg, store),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

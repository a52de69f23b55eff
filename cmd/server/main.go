package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/villicusbot/web/botapi"
	"github.com/villicusbot/web/discord"
	"github.com/villicusbot/web/internal/config"
	"github.com/villicusbot/web/server"
	"github.com/villicusbot/web/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	// A missing .env is fine; the environment may carry everything already.
	_ = godotenv.Load()

	c := config.New()
	setupLogger(c)
	displayAppname(c.GetAppName())

	sessions, cleanup, err := newSessionManager(c)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}
	defer cleanup()

	discordClient := discord.New(discord.Config{
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		RedirectURI:  c.GetRedirectURI(),
		Scopes:       c.GetScopes(),
	})
	botClient := botapi.New(c.GetBotAPIURL(), c.GetBotAPIKey(), nil)

	handler := server.New(c, discordClient, botClient, sessions, log.Logger)
	srv := &http.Server{Addr: c.GetAddr(), Handler: handler}

	go listenAndServe(srv)
	waitForStopSignal()
	return shutdown(srv)
}

func setupLogger(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// newSessionManager picks the session backend once at startup: Redis-backed
// sessions when REDIS_URL is set, direct signed-cookie sessions otherwise.
func newSessionManager(c config.Config) (*session.Manager, func(), error) {
	codec := session.NewCodec(c.GetSessionSecret())

	redisURL := c.GetRedisURL()
	if redisURL == "" {
		log.Info().Msg("no REDIS_URL configured, sessions will live in signed cookies")
		return session.NewManager(codec, nil, log.Logger), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := session.NewRedisStore(ctx, redisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("sessions backed by redis")
	return session.NewManager(codec, store, log.Logger), func() { _ = store.Close() }, nil
}

func listenAndServe(srv *http.Server) {
	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/fakeapi"
	"github.com/jrsteele09/safisaude-console/internal/config"
	"github.com/jrsteele09/safisaude-console/internal/logging"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %s\n", err)
	}
	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())

	if err := run(c); err != nil {
		log.Fatal().Err(err).Msg("fake API stopped")
	}
}

func run(c config.Config) error {
	api := fakeapi.New(c.GetFakeAPISecret())
	if err := api.Seed(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	for _, route := range api.Routes() {
		log.Debug().Msg(route)
	}
	log.Info().
		Str("password", fakeapi.SeedPassword).
		Strs("accounts", []string{
			fakeapi.SeedSuperAdmin, fakeapi.SeedSuporteAdmin, fakeapi.SeedFinanceiroAdmin,
			fakeapi.SeedSecretario, fakeapi.SeedFinanceiro, fakeapi.SeedVisualizador,
		}).
		Msg("seeded accounts")

	server := &http.Server{Addr: c.GetFakeAPIPort(), Handler: api, ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("base", fakeapi.BasePath).Msg("fake API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errs:
		return fmt.Errorf("server.ListenAndServe: %w", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

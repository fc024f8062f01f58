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
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/internal/config"
	"github.com/jrsteele09/safisaude-console/internal/logging"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %s\n", err)
	}
	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())

	if err := run(c); err != nil {
		log.Fatal().Err(err).Msg("console stopped")
	}
	log.Info().Msg("console stopped")
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())

	store, closeStore, err := kvstore.Open(context.Background(), c)
	if err != nil {
		return fmt.Errorf("open %s store: %w", c.GetStorageDriver(), err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Err(err).Msg("failed to close store")
		}
	}()

	console := server.New(c, store)
	defer console.Close()

	httpServer := &http.Server{Addr: c.GetPort(), Handler: console, ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() {
		errs <- listenAndServe(httpServer, c)
	}()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func listenAndServe(httpServer *http.Server, c config.Config) error {
	log.Info().
		Str("addr", httpServer.Addr).
		Str("api", c.GetAPIBaseURL()).
		Str("storage", c.GetStorageDriver()).
		Msg("console listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpiface "github.com/equityscan/equityscan/internal/interfaces/http"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the screen API over HTTP",
		Long:  "Starts the HTTP server with /screens, /health and /metrics endpoints.",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "Listen address override (defaults to config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc, symbols, cleanup, err := buildScreener(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	serverCfg := httpiface.ServerConfig{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		serverCfg.Addr = addr
	}

	handlers := httpiface.NewHandlers(sc, symbols, log.Logger)
	server := httpiface.NewServer(serverCfg, handlers, log.Logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSec)*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

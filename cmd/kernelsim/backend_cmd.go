package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fentz26/kernelsim/internal/logging"
	"github.com/fentz26/kernelsim/internal/simulator"
	"github.com/spf13/cobra"
)

var listenAddr string

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Serve the built-in simulation backend",
	Long:  `Starts a local HTTP simulation backend (POST /simulate, GET /health) for development and demos.`,
	RunE:  runBackend,
}

func init() {
	backendCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides backend.listen)")
}

func runBackend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Backend.Listen = listenAddr
	}

	log := logging.New(os.Stderr, cfg.Log.Level)
	server := simulator.NewServer(cfg.Backend.Listen, log)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		err := server.Start()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			log.Error("server error", "err", err)
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown error", "err", err)
	}
	log.Info("shutdown complete")
	return nil
}

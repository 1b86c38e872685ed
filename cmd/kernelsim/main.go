package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fentz26/kernelsim/internal/config"
	"github.com/fentz26/kernelsim/internal/logging"
	"github.com/fentz26/kernelsim/internal/store"
	"github.com/fentz26/kernelsim/internal/workspace"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kernelsim",
	Short: "kernelsim - kernel workspace and simulation dispatcher",
	Long: `kernelsim keeps one editable draft per language (CUDA C++, C++ 20, Python 3.12),
saves named snapshots of them, and dispatches the active draft to a simulation backend.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

var (
	configPath string
	dbPath     string
	backendURL string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides storage.path)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Simulation backend URL (overrides backend.url)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(backendCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// session bundles the durable workspace state opened by a command.
type session struct {
	store   *store.Store
	drafts  *workspace.Drafts
	archive *workspace.Archive
	log     *slog.Logger
	logFile io.Closer
}

// openSession opens the database and restores drafts and snapshots. Logs go
// to the configured file so the terminal stays clean.
func openSession(cfg *config.Config) (*session, error) {
	log, logFile, err := logging.OpenFile(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	s, err := store.New(cfg.Storage.Path)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	drafts := workspace.LoadDrafts(s, log)
	return &session{
		store:   s,
		drafts:  drafts,
		archive: workspace.LoadArchive(s, drafts, log),
		log:     log,
		logFile: logFile,
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("close database", "err", err)
	}
	s.logFile.Close()
}

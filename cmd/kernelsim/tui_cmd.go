package main

import (
	"fmt"

	"github.com/fentz26/kernelsim/internal/audit"
	"github.com/fentz26/kernelsim/internal/backend"
	"github.com/fentz26/kernelsim/internal/dispatch"
	"github.com/fentz26/kernelsim/internal/logbuf"
	"github.com/fentz26/kernelsim/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive workspace (default)",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	logs := logbuf.New()
	orch := dispatch.New(client, sess.drafts, logs, dispatch.Options{
		Linger:   cfg.UI.VisualizationLinger,
		Logger:   sess.log,
		Recorder: audit.NewJournal(sess.store, sess.log),
	})

	sess.log.Info("starting workspace", "backend", cfg.Backend.URL, "db", cfg.Storage.Path)
	app := tui.New(tui.Deps{
		Drafts:       sess.drafts,
		Archive:      sess.archive,
		Orchestrator: orch,
		Logs:         logs,
		Health:       client,
		UI:           cfg.UI,
		Log:          sess.log,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

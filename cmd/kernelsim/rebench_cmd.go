package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fentz26/kernelsim/internal/audit"
	"github.com/fentz26/kernelsim/internal/backend"
	"github.com/fentz26/kernelsim/internal/models"
	"github.com/fentz26/kernelsim/internal/scheduler"
	"github.com/spf13/cobra"
)

var (
	rebenchLang    string
	rebenchWorkers int
)

var rebenchCmd = &cobra.Command{
	Use:   "rebench",
	Short: "Re-dispatch saved snapshots and record their new times",
	RunE:  runRebench,
}

func init() {
	rebenchCmd.Flags().StringVar(&rebenchLang, "lang", "", "Only re-run snapshots of this language")
	rebenchCmd.Flags().IntVar(&rebenchWorkers, "workers", 0, "Concurrent dispatches (overrides scheduler.global_max)")
	rootCmd.AddCommand(rebenchCmd)
}

func runRebench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if rebenchWorkers > 0 {
		cfg.Scheduler.GlobalMax = rebenchWorkers
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	snaps := sess.archive.All()
	if rebenchLang != "" {
		lang, err := models.ParseLanguage(rebenchLang)
		if err != nil {
			return err
		}
		snaps = sess.archive.List(lang)
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots to re-run.")
		return nil
	}

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	sch := scheduler.New(client, audit.NewJournal(sess.store, sess.log), cfg.Scheduler, sess.log)
	results := sch.Run(cmd.Context(), snaps)

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLANGUAGE\tBEFORE\tAFTER")
	for _, r := range results {
		before := r.Snapshot.ExecutionTime
		if before == "" {
			before = "-"
		}
		after := r.Metric
		switch {
		case r.Err != nil:
			failed++
			after = "error: " + r.Err.Error()
		case r.Metric == "":
			after = "-"
		default:
			sess.archive.RefreshMetric(r.Snapshot.ID, r.Metric)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Snapshot.Name, r.Snapshot.Language, before, after)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failed, len(results))
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fentz26/kernelsim/internal/leaderboard"
	"github.com/fentz26/kernelsim/internal/models"
	"github.com/spf13/cobra"
)

var snapshotsLang string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved snapshots",
	RunE:  runSnapshots,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the best recorded time per language",
	RunE:  runLeaderboard,
}

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotsLang, "lang", "", "Only list snapshots of this language")
	rootCmd.AddCommand(leaderboardCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	snaps := sess.archive.All()
	if snapshotsLang != "" {
		lang, err := models.ParseLanguage(snapshotsLang)
		if err != nil {
			return err
		}
		snaps = sess.archive.List(lang)
	}

	if len(snaps) == 0 {
		fmt.Println("No snapshots found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLANGUAGE\tTIME\tSAVED")
	for _, s := range snaps {
		metric := s.ExecutionTime
		if metric == "" {
			metric = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(s.ID), s.Name, s.Language, metric, humanize.Time(s.CreatedAt))
	}
	return w.Flush()
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tBEST\tRELATIVE")
	for _, e := range leaderboard.Compute(sess.archive.All(), nil) {
		if e.Label == leaderboard.CurrentLabel {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.0f%%\n", e.Label, e.Display(), e.Width)
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent dispatches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of dispatches to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	recs, err := sess.store.ListDispatches(historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No dispatches recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tLANGUAGE\tOUTCOME\tTIME\tSOURCE\tDETAILS")
	for _, r := range recs {
		metric := r.ExecutionTime
		if metric == "" {
			metric = "-"
		}
		details := r.Details
		if len(details) > 60 {
			details = details[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", humanize.Time(r.Timestamp), r.Language, r.Outcome, metric, shortID(r.SourceHash), details)
	}
	return w.Flush()
}

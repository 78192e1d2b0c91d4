package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent pipeline runs from the run-history ledger",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer db.Close()

	runs, err := db.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, r := range runs {
		started := time.UnixMilli(r.StartedAt).Format("2006-01-02 15:04:05")
		note := ""
		if r.DryRun {
			note = " (dry-run)"
		}
		fmt.Printf("%s  %-7s %-8s%s  weeks %d/%d/%d  files %d/%d/%d\n",
			started, r.Mode, r.Status, note,
			r.Counts.WeeksDone, r.Counts.WeeksSkipped, r.Counts.WeeksFailed,
			r.Counts.FilesArchived, r.Counts.FilesSkipped, r.Counts.FilesFailed)
	}
	return nil
}

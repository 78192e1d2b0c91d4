package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/banna-commits/winnow/internal/decay"
	"github.com/banna-commits/winnow/internal/llm"
)

var digestDate string

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Extract a structured daily digest from one day's memory file",
	Long: "Digest asks the summarizer for the day's decisions, incidents, lessons\n" +
		"and updates as strict JSON and appends them to the week's rollup file.\n" +
		"Lessons are also mirrored to the lessons.md ledger.",
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().StringVar(&digestDate, "date", "", "day to digest as YYYY-MM-DD (default today)")
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	date := time.Now()
	if digestDate != "" {
		date, err = time.Parse("2006-01-02", digestDate)
		if err != nil {
			return fmt.Errorf("parse --date: %w", err)
		}
	}

	d := dirsFromConfig(cfg)
	if err := d.EnsureOutputs(); err != nil {
		return err
	}
	dd := &decay.DailyDigester{Dirs: d, LLM: llm.NewClient(cfg.LLM)}

	if err := dd.Run(cmd.Context(), date); err != nil {
		return err
	}
	fmt.Printf("digest %s: written to %s\n", date.Format("2006-01-02"), decay.WeekOf(date))
	return nil
}

package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/banna-commits/winnow/internal/decay"
)

var categorizeDryRun bool

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Bucket memory files by age and write the pending work lists",
	Long: "Categorize classifies every date-named memory file as fresh, recent or old\n" +
		"and writes the pending work lists that `winnow run --resume` consumes.\n" +
		"With --dry-run the buckets are only reported.",
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().BoolVar(&categorizeDryRun, "dry-run", false, "report buckets without writing pending work lists")
}

func runCategorize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m := cfg.Memory
	b, err := decay.Categorize(m.Dir, time.Now(), m.FreshDays, m.OldDays)
	if err != nil {
		return err
	}

	fmt.Printf("memory dir: %s\n", m.Dir)
	fmt.Printf("fresh (< %dd):  %d files\n", m.FreshDays, len(b.Fresh))
	for _, f := range b.Fresh {
		fmt.Printf("  %s\n", f)
	}

	weeks := make([]string, 0, len(b.Weeks))
	for week := range b.Weeks {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)
	fmt.Printf("recent (%d-%dd): %d files in %d weeks\n", m.FreshDays, m.OldDays, len(b.Recent()), len(weeks))
	for _, week := range weeks {
		fmt.Printf("  %s: %d files\n", week, len(b.Weeks[week]))
	}

	fmt.Printf("old (>= %dd):   %d files\n", m.OldDays, len(b.Old))
	for _, f := range b.Old {
		fmt.Printf("  %s\n", f)
	}

	if categorizeDryRun {
		return nil
	}
	if err := decay.WritePending(m.PendingDir, b); err != nil {
		return err
	}
	fmt.Printf("pending work lists written to %s\n", m.PendingDir)
	return nil
}

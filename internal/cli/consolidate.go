package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banna-commits/winnow/internal/decay"
)

var consolidateDryRun bool

var consolidateCmd = &cobra.Command{
	Use:   "consolidate <week>",
	Short: "Consolidate one ISO week's daily files into a digest",
	Long: "Consolidate summarizes all daily files belonging to the given ISO week\n" +
		"(e.g. 2025-W05) into a single weekly digest, then moves the sources to\n" +
		"cold storage. An existing digest makes this a no-op.",
	Args: cobra.ExactArgs(1),
	RunE: runConsolidate,
}

func init() {
	consolidateCmd.Flags().BoolVar(&consolidateDryRun, "dry-run", false, "report what would happen without calling the summarizer or moving files")
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	week := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, _, err := newConsolidator(cfg)
	if err != nil {
		return err
	}

	files, err := decay.FilesForWeek(cfg.Memory.Dir, week)
	if err != nil {
		return err
	}

	outcome, err := c.Week(cmd.Context(), week, files, consolidateDryRun)
	if err != nil {
		return err
	}
	fmt.Printf("consolidate %s: %s (%d files)\n", week, outcome, len(files))
	return nil
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/banna-commits/winnow/internal/decay"
)

var (
	runDryRun bool
	runResume bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full decay pipeline: categorize, consolidate, archive",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "report what would happen without calling the summarizer or moving files")
	runCmd.Flags().BoolVar(&runResume, "resume", false, "process leftover pending work from a previous run without re-categorizing")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	if p.History != nil {
		defer p.History.Close()
	}

	var res decay.Result
	if runResume {
		res, err = p.Auto(cmd.Context(), runDryRun)
	} else {
		res, err = p.Run(cmd.Context(), time.Now(), runDryRun)
	}

	fmt.Printf("weeks: %d consolidated, %d skipped, %d failed\n", res.WeeksDone, res.WeeksSkipped, res.WeeksFailed)
	fmt.Printf("files: %d archived, %d skipped, %d failed\n", res.FilesArchived, res.FilesSkipped, res.FilesFailed)
	return err
}

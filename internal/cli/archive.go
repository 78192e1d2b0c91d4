package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banna-commits/winnow/internal/decay"
	"github.com/banna-commits/winnow/internal/llm"
)

var archiveDryRun bool

var archiveCmd = &cobra.Command{
	Use:   "archive <file>",
	Short: "Extract highlights from one memory file and move it to cold storage",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

func init() {
	archiveCmd.Flags().BoolVar(&archiveDryRun, "dry-run", false, "report what would happen without calling the summarizer or moving files")
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := dirsFromConfig(cfg)
	if err := d.EnsureOutputs(); err != nil {
		return err
	}
	a := &decay.Archiver{Dirs: d, LLM: llm.NewClient(cfg.LLM)}

	outcome, err := a.File(cmd.Context(), args[0], archiveDryRun)
	if err != nil {
		return err
	}
	fmt.Printf("archive %s: %s\n", args[0], outcome)
	return nil
}

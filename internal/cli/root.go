package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "winnow",
	Short: "Memory consolidation and decay for daily note files",
	Long: "Winnow scores, consolidates and archives date-named markdown memory files.\n" +
		"Fresh files are left alone, recent weeks are consolidated into digests,\n" +
		"and old files are reduced to highlights and moved to cold storage.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to winnow.toml (defaults apply when missing)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(categorizeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(consolidateCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

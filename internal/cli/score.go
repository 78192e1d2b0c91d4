package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/banna-commits/winnow/internal/score"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score unseen sections of recent memory files by importance",
	RunE:  runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := &score.Scorer{
		Dir:        cfg.Memory.Dir,
		Store:      score.LoadStore(cfg.Score.Path),
		Heuristic:  score.NewHeuristic(cfg.Score.People),
		WindowDays: cfg.Score.WindowDays,
	}

	sum, err := s.Run(time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("scored %d files, %d new sections (%d total, avg %.1f)\n",
		sum.Files, sum.New, sum.Total, sum.Average)
	if len(sum.Top) > 0 {
		fmt.Println("top sections:")
		for _, e := range sum.Top {
			fmt.Printf("  %2d  %s (%s)\n", e.Score, e.Key, e.Reason)
		}
	}
	return nil
}

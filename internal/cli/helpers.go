package cli

import (
	"fmt"
	"os"

	"github.com/banna-commits/winnow/internal/config"
	"github.com/banna-commits/winnow/internal/decay"
	"github.com/banna-commits/winnow/internal/llm"
	"github.com/banna-commits/winnow/internal/score"
	"github.com/banna-commits/winnow/internal/store"
)

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func dirsFromConfig(cfg config.Config) decay.Dirs {
	return decay.Dirs{
		Memory:  cfg.Memory.Dir,
		Archive: cfg.Memory.ArchiveDir,
		Weekly:  cfg.Memory.WeeklyDir,
		Digests: cfg.Memory.DigestsDir,
		Pending: cfg.Memory.PendingDir,
	}
}

func newConsolidator(cfg config.Config) (*decay.Consolidator, decay.Dirs, error) {
	d := dirsFromConfig(cfg)
	if err := d.EnsureOutputs(); err != nil {
		return nil, d, err
	}
	return &decay.Consolidator{
		Dirs:   d,
		Scores: score.LoadStore(cfg.Score.Path),
		LLM:    llm.NewClient(cfg.LLM),
	}, d, nil
}

func newPipeline(cfg config.Config) (*decay.Pipeline, error) {
	c, d, err := newConsolidator(cfg)
	if err != nil {
		return nil, err
	}
	p := &decay.Pipeline{
		Consolidator: c,
		Archiver:     &decay.Archiver{Dirs: d, LLM: c.LLM},
		FreshDays:    cfg.Memory.FreshDays,
		OldDays:      cfg.Memory.OldDays,
	}

	// History is best-effort: a broken ledger never blocks decay work.
	db, err := openHistory(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
	} else {
		p.History = db
	}
	return p, nil
}

func openHistory(cfg config.Config) (*store.DB, error) {
	path := cfg.History.Path
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(path)
}

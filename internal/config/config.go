package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all winnow configuration.
type Config struct {
	Memory  MemoryConfig  `toml:"memory"`
	Score   ScoreConfig   `toml:"score"`
	LLM     LLMConfig     `toml:"llm"`
	History HistoryConfig `toml:"history"`
	Server  ServerConfig  `toml:"server"`
}

// MemoryConfig describes the daily-log directory layout and age thresholds.
type MemoryConfig struct {
	Dir        string `toml:"dir"`         // daily log files (YYYY-MM-DD*.md)
	ArchiveDir string `toml:"archive_dir"` // cold storage, default <dir>/archive
	WeeklyDir  string `toml:"weekly_dir"`  // consolidation digests + ledgers, default <dir>/weekly
	DigestsDir string `toml:"digests_dir"` // daily digest rollups, default <dir>/digests
	PendingDir string `toml:"pending_dir"` // transient work lists, default <dir>/.pending
	FreshDays  int    `toml:"fresh_days"`  // files younger than this are left alone
	OldDays    int    `toml:"old_days"`    // files at least this old are archived
}

// ScoreConfig controls the importance scorer.
type ScoreConfig struct {
	Path       string   `toml:"path"`        // score store, default <dir>/importance-scores.json
	WindowDays int      `toml:"window_days"` // only score files within this window
	People     []string `toml:"people"`      // names that raise a section's score
}

// LLMConfig points at the local summarization service.
type LLMConfig struct {
	OllamaURL   string  `toml:"ollama_url"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	NumPredict  int     `toml:"num_predict"`
	Stream      bool    `toml:"stream"`
	TimeoutSecs int     `toml:"timeout_secs"`
}

// HistoryConfig locates the run-history database.
type HistoryConfig struct {
	Path string `toml:"path"` // default ~/.winnow/winnow.db
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

// Default returns a Config with sensible defaults. Memory.Dir defaults to
// ./memory so a fresh checkout works without a config file.
func Default() Config {
	return Config{
		Memory: MemoryConfig{
			Dir:       "memory",
			FreshDays: 7,
			OldDays:   30,
		},
		Score: ScoreConfig{
			WindowDays: 14,
		},
		LLM: LLMConfig{
			OllamaURL:   "http://127.0.0.1:11434",
			Model:       "qwen3-fast",
			Temperature: 0.3,
			NumPredict:  1024,
			TimeoutSecs: 120,
		},
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37778,
		},
	}
}

// Load reads the config file at path, layered over Default(). A missing
// file is not an error — defaults apply. Derived paths are filled in
// after decoding so explicit settings win.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.fillDerived()
	return cfg, nil
}

func (c *Config) fillDerived() {
	if c.Memory.ArchiveDir == "" {
		c.Memory.ArchiveDir = filepath.Join(c.Memory.Dir, "archive")
	}
	if c.Memory.WeeklyDir == "" {
		c.Memory.WeeklyDir = filepath.Join(c.Memory.Dir, "weekly")
	}
	if c.Memory.DigestsDir == "" {
		c.Memory.DigestsDir = filepath.Join(c.Memory.Dir, "digests")
	}
	if c.Memory.PendingDir == "" {
		c.Memory.PendingDir = filepath.Join(c.Memory.Dir, ".pending")
	}
	if c.Score.Path == "" {
		c.Score.Path = filepath.Join(c.Memory.Dir, "importance-scores.json")
	}
	if c.History.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.History.Path = filepath.Join(home, ".winnow", "winnow.db")
		}
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDerivedPaths(t *testing.T) {
	cfg := Default()
	cfg.fillDerived()

	if cfg.Memory.ArchiveDir != filepath.Join("memory", "archive") {
		t.Errorf("ArchiveDir = %q", cfg.Memory.ArchiveDir)
	}
	if cfg.Memory.WeeklyDir != filepath.Join("memory", "weekly") {
		t.Errorf("WeeklyDir = %q", cfg.Memory.WeeklyDir)
	}
	if cfg.Memory.DigestsDir != filepath.Join("memory", "digests") {
		t.Errorf("DigestsDir = %q", cfg.Memory.DigestsDir)
	}
	if cfg.Score.Path != filepath.Join("memory", "importance-scores.json") {
		t.Errorf("Score.Path = %q", cfg.Score.Path)
	}
	if cfg.Memory.FreshDays != 7 || cfg.Memory.OldDays != 30 {
		t.Errorf("age thresholds = %d/%d, want 7/30", cfg.Memory.FreshDays, cfg.Memory.OldDays)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Model != "qwen3-fast" {
		t.Errorf("Model = %q, want qwen3-fast", cfg.LLM.Model)
	}
	if cfg.LLM.TimeoutSecs != 120 {
		t.Errorf("TimeoutSecs = %d, want 120", cfg.LLM.TimeoutSecs)
	}
}

func TestLoadOverridesAndDerives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "winnow.toml")
	content := `
[memory]
dir = "/data/mem"
fresh_days = 5

[score]
people = ["Ada", "Linus"]

[llm]
model = "llama3.2"
stream = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Memory.Dir != "/data/mem" {
		t.Errorf("Dir = %q", cfg.Memory.Dir)
	}
	if cfg.Memory.FreshDays != 5 {
		t.Errorf("FreshDays = %d, want 5", cfg.Memory.FreshDays)
	}
	if cfg.Memory.OldDays != 30 {
		t.Errorf("OldDays = %d, want default 30", cfg.Memory.OldDays)
	}
	if cfg.Memory.ArchiveDir != filepath.Join("/data/mem", "archive") {
		t.Errorf("ArchiveDir = %q, want derived from dir", cfg.Memory.ArchiveDir)
	}
	if len(cfg.Score.People) != 2 || cfg.Score.People[0] != "Ada" {
		t.Errorf("People = %v", cfg.Score.People)
	}
	if cfg.LLM.Model != "llama3.2" || !cfg.LLM.Stream {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[memory\ndir="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

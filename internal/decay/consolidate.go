package decay

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/banna-commits/winnow/internal/llm"
	"github.com/banna-commits/winnow/internal/score"
)

const (
	preserveMinScore = 7
	preserveMaxHints = 10
)

// Consolidator merges a week of daily files into one digest document and
// relocates the sources to cold storage.
type Consolidator struct {
	Dirs   Dirs
	Scores *score.Store
	LLM    llm.Client
}

// DigestPath returns the digest document path for a week.
func (c *Consolidator) DigestPath(week string) string {
	return filepath.Join(c.Dirs.Weekly, week+".md")
}

// Week consolidates the given files into the week's digest. The digest's
// existence is the idempotency guard: if it is already there the week is
// done and nothing happens. The digest is written before any source file
// moves; on any failure no file has been touched and the week stays
// pending.
func (c *Consolidator) Week(ctx context.Context, week string, files []string, dryRun bool) (Outcome, error) {
	digest := c.DigestPath(week)
	if _, err := os.Stat(digest); err == nil {
		log.Printf("consolidate: %s already exists, skipping", week)
		return Skipped, nil
	}

	contents := c.readFiles(files)
	if len(contents) == 0 {
		log.Printf("consolidate: no files found for %s", week)
		return Skipped, nil
	}

	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)

	if dryRun {
		log.Printf("consolidate: would merge %d files into %s", len(names), filepath.Base(digest))
		for _, name := range names {
			log.Printf("consolidate:   - %s", name)
		}
		return Done, nil
	}

	var hints []string
	if c.Scores != nil {
		hints = c.Scores.HighImportance(names, preserveMinScore, preserveMaxHints)
	}

	blocks := make([]string, len(names))
	for i, name := range names {
		blocks[i] = fmt.Sprintf("## %s\n%s", name, contents[name])
	}
	combined := strings.Join(blocks, "\n\n---\n\n")

	log.Printf("consolidate: summarizing %d files for %s", len(names), week)
	resp, err := c.LLM.Complete(ctx, llm.ConsolidationPrompt(week, hints, combined))
	if err != nil {
		return Failed, fmt.Errorf("summarize %s: %w", week, err)
	}

	header := fmt.Sprintf("# Weekly Digest: %s\n\n*Consolidated from %d daily files on %s*\n\n",
		week, len(names), time.Now().Format("2006-01-02"))
	if err := writeFileAtomic(digest, []byte(header+resp.Content)); err != nil {
		return Failed, fmt.Errorf("write digest %s: %w", week, err)
	}
	log.Printf("consolidate: written %s", filepath.Base(digest))

	// Digest is durable; only now do the sources leave working memory.
	for _, name := range names {
		src := filepath.Join(c.Dirs.Memory, name)
		dst := filepath.Join(c.Dirs.Archive, name)
		if err := os.Rename(src, dst); err != nil {
			return Failed, fmt.Errorf("relocate %s: %w", name, err)
		}
		log.Printf("consolidate: archived %s", name)
	}

	return Done, nil
}

func (c *Consolidator) readFiles(files []string) map[string]string {
	contents := make(map[string]string)
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(c.Dirs.Memory, name))
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("consolidate: read %s: %v", name, err)
			}
			continue
		}
		contents[name] = string(data)
	}
	return contents
}

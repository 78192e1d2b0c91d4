package decay

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banna-commits/winnow/internal/llm"
)

const highlightsLedgerName = "highlights-archive.md"

// Archiver extracts durable highlights from an old daily file, appends
// them to the highlights ledger, and relocates the file to cold storage.
type Archiver struct {
	Dirs Dirs
	LLM  llm.Client
}

// LedgerPath returns the highlights ledger path.
func (a *Archiver) LedgerPath() string {
	return filepath.Join(a.Dirs.Weekly, highlightsLedgerName)
}

// File archives one old daily file. A missing file is a skip (it was
// already processed or removed out of band). The ledger append happens
// before the move; on any failure neither has happened and the file stays
// pending for the next run.
func (a *Archiver) File(ctx context.Context, name string, dryRun bool) (Outcome, error) {
	src := filepath.Join(a.Dirs.Memory, name)
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("archive: %s not found, skipping", name)
			return Skipped, nil
		}
		return Failed, fmt.Errorf("read %s: %w", name, err)
	}

	if dryRun {
		log.Printf("archive: would extract highlights from %s", name)
		return Done, nil
	}

	log.Printf("archive: extracting highlights from %s", name)
	resp, err := a.LLM.Complete(ctx, llm.HighlightsPrompt(string(data)))
	if err != nil {
		return Failed, fmt.Errorf("highlights for %s: %w", name, err)
	}

	entry := fmt.Sprintf("\n## %s\n%s\n", name, resp.Content)
	if err := appendToFile(a.LedgerPath(), entry); err != nil {
		return Failed, fmt.Errorf("ledger append for %s: %w", name, err)
	}

	if err := os.Rename(src, filepath.Join(a.Dirs.Archive, name)); err != nil {
		return Failed, fmt.Errorf("relocate %s: %w", name, err)
	}
	log.Printf("archive: archived %s, highlights saved", name)
	return Done, nil
}

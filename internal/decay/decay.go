// Package decay ages out daily memory files: fresh files are left alone,
// recent files are consolidated into weekly digests, old files have their
// highlights extracted and are moved to cold storage. All outputs are
// written before any source file is relocated, so an interrupted run
// always leaves the pipeline in a retryable pending state.
package decay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrDuplicateEntry is returned when a digest entry for a date that
// already has one would be appended. This indicates a double-run bug, not
// a normal retry, so it is fatal rather than a skip.
var ErrDuplicateEntry = errors.New("digest entry already exists")

// Dirs is the directory layout the pipeline operates on.
type Dirs struct {
	Memory  string // active daily files
	Archive string // cold storage
	Weekly  string // weekly digests + highlights ledger
	Digests string // structured daily digest entries
	Pending string // transient work lists
}

// EnsureOutputs creates the output directories if needed. The memory dir
// itself is owned by the agent and never created here.
func (d Dirs) EnsureOutputs() error {
	for _, dir := range []string{d.Archive, d.Weekly, d.Digests} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Outcome reports how a single unit of work ended. Failed always comes
// paired with a non-nil error carrying the cause.
type Outcome int

const (
	Done Outcome = iota
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "done"
	}
}

var dateNameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

// writeFileAtomic writes data to path via a temp file and rename, so a
// crash never leaves a half-written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".winnow-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// appendToFile appends text to an append-only ledger, creating it if
// missing. The ledger is never truncated or rewritten.
func appendToFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return f.Close()
}

package decay

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pending-work artifacts are the hand-off between the categorizer and the
// orchestrator: one week-<id>.txt per recent week and one old.txt, each a
// whitespace-separated list of file names. They are deleted only after
// their unit of work succeeds, so a failed run is retried as-is.

const (
	weekListPrefix = "week-"
	oldListName    = "old.txt"
)

// PendingWork is the parsed content of the pending dir.
type PendingWork struct {
	Weeks map[string][]string
	Old   []string
}

// WritePending persists the recent-week groups and the old-file list as
// transient artifacts. Empty lists produce no artifact.
func WritePending(dir string, b Buckets) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create pending dir: %w", err)
	}

	for week, files := range b.Weeks {
		if len(files) == 0 {
			continue
		}
		path := filepath.Join(dir, weekListPrefix+week+".txt")
		if err := writeFileAtomic(path, []byte(strings.Join(files, " "))); err != nil {
			return fmt.Errorf("write week list %s: %w", week, err)
		}
	}

	if len(b.Old) > 0 {
		path := filepath.Join(dir, oldListName)
		if err := writeFileAtomic(path, []byte(strings.Join(b.Old, " "))); err != nil {
			return fmt.Errorf("write old list: %w", err)
		}
	}
	return nil
}

// ReadPending loads all pending artifacts. A missing pending dir means no
// work; an unreadable artifact is logged and treated as empty.
func ReadPending(dir string) (PendingWork, error) {
	w := PendingWork{Weeks: make(map[string][]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return w, fmt.Errorf("read pending dir: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasPrefix(name, weekListPrefix) && strings.HasSuffix(name, ".txt"):
			week := strings.TrimSuffix(strings.TrimPrefix(name, weekListPrefix), ".txt")
			files := readFileList(filepath.Join(dir, name))
			if len(files) > 0 {
				w.Weeks[week] = files
			}
		case name == oldListName:
			w.Old = readFileList(filepath.Join(dir, name))
		}
	}
	return w, nil
}

func readFileList(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("pending: read %s: %v", path, err)
		return nil
	}
	files := strings.Fields(string(data))
	sort.Strings(files)
	return files
}

// RemoveWeek deletes the artifact for a processed week.
func RemoveWeek(dir, week string) error {
	err := os.Remove(filepath.Join(dir, weekListPrefix+week+".txt"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RewriteOldList replaces the old-file list with the names still pending.
// An empty list removes the artifact.
func RewriteOldList(dir string, files []string) error {
	path := filepath.Join(dir, oldListName)
	if len(files) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return writeFileAtomic(path, []byte(strings.Join(files, " ")))
}

package decay

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Buckets is the result of one categorization pass over the memory dir.
type Buckets struct {
	Fresh []string            // age < fresh threshold, left untouched
	Weeks map[string][]string // recent files grouped by ISO week
	Old   []string            // past the old threshold, pending archival
}

// Recent flattens the week groups back into a sorted file list.
func (b Buckets) Recent() []string {
	var all []string
	for _, files := range b.Weeks {
		all = append(all, files...)
	}
	sort.Strings(all)
	return all
}

// WeekOf returns the ISO year-week identifier for a date, e.g. 2025-W01.
func WeekOf(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Categorize classifies every date-named .md file in dir by calendar age.
// Each file lands in exactly one bucket. It never mutates anything; pair
// with WritePending to hand the result to the orchestrator.
func Categorize(dir string, now time.Time, freshDays, oldDays int) (Buckets, error) {
	b := Buckets{Weeks: make(map[string][]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return b, fmt.Errorf("read memory dir: %w", err)
	}

	freshCutoff := now.AddDate(0, 0, -freshDays)
	oldCutoff := now.AddDate(0, 0, -oldDays)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		m := dateNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		fileDate, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			continue
		}

		switch {
		case !fileDate.Before(freshCutoff):
			b.Fresh = append(b.Fresh, e.Name())
		case !fileDate.Before(oldCutoff):
			week := WeekOf(fileDate)
			b.Weeks[week] = append(b.Weeks[week], e.Name())
		default:
			b.Old = append(b.Old, e.Name())
		}
	}

	sort.Strings(b.Fresh)
	sort.Strings(b.Old)
	for _, files := range b.Weeks {
		sort.Strings(files)
	}
	return b, nil
}

// FilesForWeek returns the date-named files in dir whose date falls in the
// given ISO week. Used when consolidating a single week directly, without
// a pending artifact.
func FilesForWeek(dir, week string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read memory dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		m := dateNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		fileDate, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			continue
		}
		if WeekOf(fileDate) == week {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

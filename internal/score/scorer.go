package score

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var dateNameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

// Scorer indexes daily log sections into the importance store.
type Scorer struct {
	Dir        string
	Store      *Store
	Heuristic  *Heuristic
	WindowDays int // only files dated within this window are scored
}

// TopEntry is one of the highest-scored records, for reporting.
type TopEntry struct {
	Key    string
	Score  int
	Reason string
}

// Summary reports the outcome of one scoring run.
type Summary struct {
	Files   int
	New     int
	Total   int
	Average float64
	Top     []TopEntry
}

// Run scores every unseen section of each eligible daily file and then
// persists the store once. Existing records are never re-scored, so
// repeated runs are additive only.
func (s *Scorer) Run(now time.Time) (Summary, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return Summary{}, fmt.Errorf("read memory dir: %w", err)
	}

	cutoff := now.AddDate(0, 0, -s.WindowDays)

	var sum Summary
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
		if fileDate.Before(cutoff) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			log.Printf("score: read %s: %v", e.Name(), err)
			continue
		}
		sum.Files++

		ageDays := int(now.Sub(fileDate).Hours() / 24)
		for _, sec := range ExtractSections(string(data)) {
			key := Key(e.Name(), sec.Title)
			if s.Store.Has(key) {
				continue
			}
			val, reason := s.Heuristic.Score(sec.Title, sec.Body, ageDays)
			s.Store.Put(key, Record{
				Score:    val,
				Reason:   reason,
				ScoredAt: now.Format(time.RFC3339),
			})
			sum.New++
		}
	}

	if err := s.Store.Save(); err != nil {
		return sum, fmt.Errorf("save score store: %w", err)
	}

	sum.Total = len(s.Store.Scores)
	if sum.Total > 0 {
		total := 0
		for _, r := range s.Store.Scores {
			total += r.Score
		}
		sum.Average = float64(total) / float64(sum.Total)
	}
	sum.Top = s.topEntries(5)
	return sum, nil
}

func (s *Scorer) topEntries(n int) []TopEntry {
	all := make([]TopEntry, 0, len(s.Store.Scores))
	for key, r := range s.Store.Scores {
		all = append(all, TopEntry{Key: key, Score: r.Score, Reason: r.Reason})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Key < all[j].Key
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

package score

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Record is one scored section, keyed by "<file>#<section title>".
// Access counters are reserved for retrieval-side boosting and are not
// read by the pipeline itself.
type Record struct {
	Score        int     `json:"score"`
	Reason       string  `json:"reason"`
	ScoredAt     string  `json:"scoredAt"`
	AccessCount  int     `json:"accessCount"`
	LastAccessed *string `json:"lastAccessed"`
}

// Store is the append-only importance index. Keys are never overwritten:
// once a section is scored, its record is stable for the life of the store.
type Store struct {
	path   string
	Scores map[string]Record
}

type storeFile struct {
	Scores    map[string]Record `json:"scores"`
	UpdatedAt string            `json:"updatedAt"`
}

// Key builds the store key for a file/section pair.
func Key(file, section string) string {
	return file + "#" + section
}

// LoadStore reads the score store at path. A missing file yields an empty
// store; a corrupt file is treated as empty with a warning rather than
// aborting the run.
func LoadStore(path string) *Store {
	s := &Store{path: path, Scores: make(map[string]Record)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("score: store %s is corrupt (%v), starting empty", path, err)
		return s
	}
	if f.Scores != nil {
		s.Scores = f.Scores
	}
	return s
}

// Has reports whether key is already scored.
func (s *Store) Has(key string) bool {
	_, ok := s.Scores[key]
	return ok
}

// Put records a score for key. Existing keys are left untouched; the
// return value reports whether the record was added.
func (s *Store) Put(key string, r Record) bool {
	if s.Has(key) {
		return false
	}
	s.Scores[key] = r
	return true
}

// Save persists the whole store atomically: write to a temp file in the
// same directory, then rename over the target.
func (s *Store) Save() error {
	f := storeFile{
		Scores:    s.Scores,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// HighImportance returns preserve hints for the consolidator: records
// whose key starts with one of the given file names and whose score is at
// least minScore, highest score first, capped at max entries.
func (s *Store) HighImportance(files []string, minScore, max int) []string {
	type hit struct {
		key string
		rec Record
	}
	var hits []hit
	for key, rec := range s.Scores {
		if rec.Score < minScore {
			continue
		}
		for _, f := range files {
			if strings.HasPrefix(key, f) {
				hits = append(hits, hit{key, rec})
				break
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].rec.Score != hits[j].rec.Score {
			return hits[i].rec.Score > hits[j].rec.Score
		}
		return hits[i].key < hits[j].key
	})
	if len(hits) > max {
		hits = hits[:max]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = fmt.Sprintf("[IMPORTANT] %s: %s", h.key, h.rec.Reason)
	}
	return out
}

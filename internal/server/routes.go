package server

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/banna-commits/winnow/internal/decay"
	"github.com/banna-commits/winnow/internal/score"
)

// handleStatus previews what a decay run would do right now: which files
// are fresh, which weeks would be consolidated, which files archived.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	m := s.cfg.Memory
	b, err := decay.Categorize(m.Dir, time.Now(), m.FreshDays, m.OldDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	weeks := make(map[string]int, len(b.Weeks))
	for week, files := range b.Weeks {
		weeks[week] = len(files)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"memory_dir": m.Dir,
		"fresh":      len(b.Fresh),
		"recent":     len(b.Recent()),
		"old":        len(b.Old),
		"weeks":      weeks,
		"old_files":  b.Old,
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	st := score.LoadStore(s.cfg.Score.Path)

	type entry struct {
		Key    string `json:"key"`
		Score  int    `json:"score"`
		Reason string `json:"reason"`
	}
	entries := make([]entry, 0, len(st.Scores))
	total := 0
	for key, rec := range st.Scores {
		entries = append(entries, entry{Key: key, Score: rec.Score, Reason: rec.Reason})
		total += rec.Score
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Key < entries[j].Key
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	avg := 0.0
	if len(st.Scores) > 0 {
		avg = float64(total) / float64(len(st.Scores))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"path":    s.cfg.Score.Path,
		"total":   len(st.Scores),
		"average": avg,
		"top":     entries,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "run history not configured")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.db.RecentRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (s *Server) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "run history not configured")
		return
	}

	runID := chi.URLParam(r, "runID")
	units, err := s.db.RunUnits(runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": runID,
		"units":  units,
		"count":  len(units),
	})
}

package decay

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/banna-commits/winnow/internal/store"
)

// Pipeline drives a full decay batch: categorize, consolidate pending
// weeks, archive pending old files. Units are processed best-effort — one
// failed week or file never blocks its siblings — and pending artifacts
// are removed only for units that succeeded, so the next run retries
// exactly what is still outstanding.
type Pipeline struct {
	Consolidator *Consolidator
	Archiver     *Archiver
	History      *store.DB // optional run-history ledger
	FreshDays    int
	OldDays      int
}

// Result counts unit outcomes for one batch.
type Result struct {
	WeeksDone     int
	WeeksSkipped  int
	WeeksFailed   int
	FilesArchived int
	FilesSkipped  int
	FilesFailed   int
}

func (r Result) failed() int {
	return r.WeeksFailed + r.FilesFailed
}

func (r Result) counts() store.RunCounts {
	return store.RunCounts{
		WeeksDone:     r.WeeksDone,
		WeeksSkipped:  r.WeeksSkipped,
		WeeksFailed:   r.WeeksFailed,
		FilesArchived: r.FilesArchived,
		FilesSkipped:  r.FilesSkipped,
		FilesFailed:   r.FilesFailed,
	}
}

// Run executes the whole batch: categorize now, persist the pending work
// lists, then process them. In dry-run mode the buckets are processed
// directly in preview mode and no artifacts are written.
func (p *Pipeline) Run(ctx context.Context, now time.Time, dryRun bool) (Result, error) {
	runID := p.beginRun("run", dryRun)

	b, err := Categorize(p.Consolidator.Dirs.Memory, now, p.FreshDays, p.OldDays)
	if err != nil {
		p.finishRun(runID, Result{}, "failed")
		return Result{}, err
	}
	log.Printf("run: %d fresh, %d recent in %d weeks, %d old",
		len(b.Fresh), len(b.Recent()), len(b.Weeks), len(b.Old))

	if !dryRun {
		if err := WritePending(p.Consolidator.Dirs.Pending, b); err != nil {
			p.finishRun(runID, Result{}, "failed")
			return Result{}, err
		}
	}

	res := p.process(ctx, runID, b.Weeks, b.Old, dryRun, !dryRun)
	return p.finish(runID, res)
}

// Auto processes whatever pending artifacts a previous categorization
// left behind, without re-categorizing.
func (p *Pipeline) Auto(ctx context.Context, dryRun bool) (Result, error) {
	runID := p.beginRun("auto", dryRun)

	w, err := ReadPending(p.Consolidator.Dirs.Pending)
	if err != nil {
		p.finishRun(runID, Result{}, "failed")
		return Result{}, err
	}

	res := p.process(ctx, runID, w.Weeks, w.Old, dryRun, !dryRun)
	return p.finish(runID, res)
}

func (p *Pipeline) finish(runID string, res Result) (Result, error) {
	status := "ok"
	var err error
	if n := res.failed(); n > 0 {
		status = "failed"
		err = fmt.Errorf("%d units failed", n)
	}
	p.finishRun(runID, res, status)
	return res, err
}

func (p *Pipeline) process(ctx context.Context, runID string, weeks map[string][]string, old []string, dryRun, manageArtifacts bool) Result {
	var res Result

	weekIDs := make([]string, 0, len(weeks))
	for week := range weeks {
		weekIDs = append(weekIDs, week)
	}
	sort.Strings(weekIDs)

	for _, week := range weekIDs {
		outcome, err := p.Consolidator.Week(ctx, week, weeks[week], dryRun)
		if err != nil {
			log.Printf("run: week %s failed: %v", week, err)
			res.WeeksFailed++
			p.record(runID, "week", week, "failed", err.Error())
			continue // artifact stays for retry
		}
		if outcome == Skipped {
			res.WeeksSkipped++
		} else {
			res.WeeksDone++
		}
		p.record(runID, "week", week, outcome.String(), "")
		if manageArtifacts {
			if err := RemoveWeek(p.Consolidator.Dirs.Pending, week); err != nil {
				log.Printf("run: remove week artifact %s: %v", week, err)
			}
		}
	}

	var stillPending []string
	for _, name := range old {
		outcome, err := p.Archiver.File(ctx, name, dryRun)
		if err != nil {
			log.Printf("run: archive %s failed: %v", name, err)
			res.FilesFailed++
			stillPending = append(stillPending, name)
			p.record(runID, "file", name, "failed", err.Error())
			continue
		}
		if outcome == Skipped {
			res.FilesSkipped++
		} else {
			res.FilesArchived++
		}
		p.record(runID, "file", name, outcome.String(), "")
	}
	if manageArtifacts && len(old) > 0 {
		if err := RewriteOldList(p.Consolidator.Dirs.Pending, stillPending); err != nil {
			log.Printf("run: rewrite old list: %v", err)
		}
	}

	return res
}

func (p *Pipeline) beginRun(mode string, dryRun bool) string {
	if p.History == nil {
		return ""
	}
	run, err := p.History.BeginRun(mode, dryRun)
	if err != nil {
		log.Printf("history: begin run: %v", err)
		return ""
	}
	return run.RunID
}

func (p *Pipeline) finishRun(runID string, res Result, status string) {
	if p.History == nil || runID == "" {
		return
	}
	if err := p.History.FinishRun(runID, status, res.counts()); err != nil {
		log.Printf("history: finish run: %v", err)
	}
}

func (p *Pipeline) record(runID, unitType, name, outcome, errMsg string) {
	if p.History == nil || runID == "" {
		return
	}
	if err := p.History.RecordUnit(runID, unitType, name, outcome, errMsg); err != nil {
		log.Printf("history: record unit: %v", err)
	}
}

package decay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/banna-commits/winnow/internal/llm"
)

const lessonsLedgerName = "lessons.md"

// DailyDigester compresses one daily file into a structured entry in that
// week's digest document. Unlike weekly consolidation, appending an entry
// for a date that already has one is a hard error: a duplicate date header
// can only come from a double run.
type DailyDigester struct {
	Dirs Dirs
	LLM  llm.Client
}

type digestEntry struct {
	Decisions      []string `json:"decisions"`
	Incidents      []string `json:"incidents"`
	Lessons        []string `json:"lessons"`
	NextSteps      []string `json:"next_steps"`
	PeopleUpdates  []string `json:"people_updates"`
	ProjectUpdates []string `json:"project_updates"`
}

// Run digests the daily file for date into the weekly digest document and
// mirrors any lessons into the lessons ledger.
func (d *DailyDigester) Run(ctx context.Context, date time.Time) error {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(d.Dirs.Memory, dateStr+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("daily file %s: %w", dateStr, err)
	}

	prompt := llm.DailyDigestPrompt(dateStr, date.Weekday().String(), string(data))
	resp, err := d.LLM.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("digest %s: %w", dateStr, err)
	}

	entry, err := extractJSON(resp.Content)
	if err != nil {
		return fmt.Errorf("digest %s: %w", dateStr, err)
	}

	if err := d.appendEntry(date, entry); err != nil {
		return err
	}

	if err := d.appendLessons(dateStr, entry.Lessons); err != nil {
		return err
	}
	return nil
}

// extractJSON pulls the outermost JSON object out of a raw model response.
func extractJSON(raw string) (digestEntry, error) {
	var entry digestEntry
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return entry, fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &entry); err != nil {
		return entry, fmt.Errorf("parse model response: %w", err)
	}
	return entry, nil
}

func (d *DailyDigester) digestPath(date time.Time) string {
	return filepath.Join(d.Dirs.Digests, WeekOf(date)+".md")
}

func (d *DailyDigester) appendEntry(date time.Time, entry digestEntry) error {
	path := d.digestPath(date)
	dateStr := date.Format("2006-01-02")
	header := fmt.Sprintf("## %s (%s)\n", dateStr, date.Weekday())

	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		title := fmt.Sprintf("# Weekly Digest %s\n\n", WeekOf(date))
		if werr := writeFileAtomic(path, []byte(title)); werr != nil {
			return werr
		}
	case err != nil:
		return fmt.Errorf("read digest: %w", err)
	case strings.Contains(string(existing), header):
		return fmt.Errorf("digest entry for %s: %w", dateStr, ErrDuplicateEntry)
	}

	body := formatSection("Decisions", entry.Decisions) +
		formatSection("Incidents", entry.Incidents) +
		formatSection("Lessons", entry.Lessons) +
		formatSection("Next", entry.NextSteps) +
		formatSection("People", entry.PeopleUpdates) +
		formatSection("Projects", entry.ProjectUpdates)
	if body == "" {
		body = "(no new items)\n\n"
	}

	return appendToFile(path, header+body)
}

func formatSection(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n", title)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	b.WriteString("\n")
	return b.String()
}

func (d *DailyDigester) appendLessons(dateStr string, lessons []string) error {
	if len(lessons) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s\n", dateStr)
	for _, l := range lessons {
		fmt.Fprintf(&b, "- %s\n", l)
	}
	return appendToFile(filepath.Join(d.Dirs.Memory, lessonsLedgerName), b.String())
}

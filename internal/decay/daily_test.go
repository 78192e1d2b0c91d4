package decay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/banna-commits/winnow/internal/llm"
)

const digestJSON = `{
  "decisions": ["migrate the database"],
  "incidents": [],
  "lessons": ["test restores, not backups"],
  "next_steps": ["schedule the cutover"],
  "people_updates": [],
  "project_updates": []
}`

func TestDailyDigest(t *testing.T) {
	d := testDirs(t)
	writeDaily(t, d, "2025-01-01.md", "## Plan\ndecided to migrate database\n")

	mock := &llm.MockClient{Response: &llm.Response{Content: "noise before " + digestJSON + " noise after"}}
	dd := &DailyDigester{Dirs: d, LLM: mock}

	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := dd.Run(context.Background(), date); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(d.Digests, "2025-W01.md"))
	if err != nil {
		t.Fatalf("digest not written: %v", err)
	}
	digest := string(data)
	for _, want := range []string{
		"# Weekly Digest 2025-W01",
		"## 2025-01-01 (Wednesday)",
		"### Decisions",
		"- migrate the database",
		"### Lessons",
		"### Next",
	} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q", want)
		}
	}
	if strings.Contains(digest, "### Incidents") {
		t.Error("empty category should be omitted")
	}

	lessons, err := os.ReadFile(filepath.Join(d.Memory, lessonsLedgerName))
	if err != nil {
		t.Fatalf("lessons ledger not written: %v", err)
	}
	if !strings.Contains(string(lessons), "- test restores, not backups") {
		t.Error("lesson not mirrored to ledger")
	}
}

func TestDailyDigestDuplicateIsFatal(t *testing.T) {
	d := testDirs(t)
	writeDaily(t, d, "2025-01-01.md", "## Plan\ncontent\n")

	mock := &llm.MockClient{Response: &llm.Response{Content: digestJSON}}
	dd := &DailyDigester{Dirs: d, LLM: mock}
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := dd.Run(context.Background(), date); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	err := dd.Run(context.Background(), date)
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("err = %v, want ErrDuplicateEntry", err)
	}
}

func TestDailyDigestTwoDatesSameWeek(t *testing.T) {
	d := testDirs(t)
	writeDaily(t, d, "2025-01-01.md", "## A\ncontent\n")
	writeDaily(t, d, "2025-01-02.md", "## B\ncontent\n")

	mock := &llm.MockClient{Response: &llm.Response{Content: digestJSON}}
	dd := &DailyDigester{Dirs: d, LLM: mock}

	for day := 1; day <= 2; day++ {
		date := time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
		if err := dd.Run(context.Background(), date); err != nil {
			t.Fatalf("Run day %d: %v", day, err)
		}
	}

	data, _ := os.ReadFile(filepath.Join(d.Digests, "2025-W01.md"))
	digest := string(data)
	if !strings.Contains(digest, "## 2025-01-01 (Wednesday)") ||
		!strings.Contains(digest, "## 2025-01-02 (Thursday)") {
		t.Errorf("digest missing an entry:\n%s", digest)
	}
	if strings.Count(digest, "# Weekly Digest 2025-W01") != 1 {
		t.Error("title should be written once")
	}
}

func TestDailyDigestMissingFile(t *testing.T) {
	d := testDirs(t)
	dd := &DailyDigester{Dirs: d, LLM: &llm.MockClient{}}

	err := dd.Run(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected error for missing daily file")
	}
}

func TestDailyDigestLLMFailureLeavesNothing(t *testing.T) {
	d := testDirs(t)
	writeDaily(t, d, "2025-01-01.md", "## A\ncontent\n")

	mock := &llm.MockClient{Err: errors.New("timeout")}
	dd := &DailyDigester{Dirs: d, LLM: mock}

	if err := dd.Run(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected error")
	}
	if fileExists(t, filepath.Join(d.Digests, "2025-W01.md")) {
		t.Error("digest written despite failure")
	}
	if fileExists(t, filepath.Join(d.Memory, lessonsLedgerName)) {
		t.Error("lessons ledger written despite failure")
	}
}

func TestExtractJSONMalformed(t *testing.T) {
	if _, err := extractJSON("no object here"); err == nil {
		t.Error("expected error for response without JSON")
	}
	if _, err := extractJSON("{broken"); err == nil {
		t.Error("expected error for unclosed object")
	}
}

func TestDailyDigestEmptyEntry(t *testing.T) {
	d := testDirs(t)
	writeDaily(t, d, "2025-01-01.md", "## A\nheartbeat only\n")

	empty := `{"decisions":[],"incidents":[],"lessons":[],"next_steps":[],"people_updates":[],"project_updates":[]}`
	mock := &llm.MockClient{Response: &llm.Response{Content: empty}}
	dd := &DailyDigester{Dirs: d, LLM: mock}

	if err := dd.Run(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(d.Digests, "2025-W01.md"))
	if !strings.Contains(string(data), "(no new items)") {
		t.Error("empty entry should record a placeholder")
	}
}

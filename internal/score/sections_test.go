package score

import "testing"

func TestExtractSections(t *testing.T) {
	text := `# Daily log

intro text without a section

## Morning
walked to the office

### Standup
discussed the release

## Evening
quiet
`
	secs := ExtractSections(text)
	if len(secs) != 3 {
		t.Fatalf("got %d sections, want 3", len(secs))
	}
	if secs[0].Title != "Morning" || secs[0].Body != "walked to the office" {
		t.Errorf("section 0 = %+v", secs[0])
	}
	if secs[1].Title != "Standup" {
		t.Errorf("section 1 title = %q", secs[1].Title)
	}
	if secs[2].Title != "Evening" || secs[2].Body != "quiet" {
		t.Errorf("section 2 = %+v", secs[2])
	}
}

func TestExtractSectionsDropsEmptyBodies(t *testing.T) {
	text := "## Empty\n\n## Full\ncontent here\n## Trailing empty\n"
	secs := ExtractSections(text)
	if len(secs) != 1 {
		t.Fatalf("got %d sections, want 1", len(secs))
	}
	if secs[0].Title != "Full" {
		t.Errorf("title = %q", secs[0].Title)
	}
}

func TestExtractSectionsNoHeadings(t *testing.T) {
	if secs := ExtractSections("just prose\nno headings"); len(secs) != 0 {
		t.Errorf("got %d sections, want 0", len(secs))
	}
}

func TestExtractSectionsIgnoresH1AndH4(t *testing.T) {
	text := "# Title\nbody\n#### Deep\nbody\n## Real\nkept\n"
	secs := ExtractSections(text)
	if len(secs) != 1 || secs[0].Title != "Real" {
		t.Fatalf("sections = %+v, want only Real", secs)
	}
	// H4 line becomes part of no section since it precedes the first H2
}

package llm

import (
	"fmt"
	"strings"
)

// ConsolidationPrompt builds the weekly digest prompt. hints carry
// high-importance sections that must survive consolidation.
func ConsolidationPrompt(week string, hints []string, combined string) string {
	importanceHint := ""
	if len(hints) > 0 {
		importanceHint = "\n\nHigh-importance sections to preserve:\n" + strings.Join(hints, "\n")
	}

	return fmt.Sprintf(`/no_think
Summarize these daily memory logs into a concise weekly digest.
Focus on: key decisions, important events, lessons learned, people/projects mentioned, unresolved items.
Use markdown. Be concise — max 40 lines. Skip routine/repetitive entries.
Week: %s%s

%s`, week, importanceHint, combined)
}

// HighlightsPrompt builds the pre-archive highlight extraction prompt.
func HighlightsPrompt(content string) string {
	return fmt.Sprintf(`/no_think
Extract only the most significant highlights from this daily log.
Return max 5 bullet points of things worth remembering long-term.
Skip routine tasks, failed attempts, and temporary details.

%s`, content)
}

// DailyDigestPrompt builds the structured daily digest prompt. The model
// must answer with strict JSON so the entry can be rendered per category.
func DailyDigestPrompt(date, weekday, content string) string {
	return fmt.Sprintf(`/no_think
You compress a daily operations log into structured highlights.
Return STRICT JSON with this schema (all arrays, even if empty):
{
  "decisions": [],
  "incidents": [],
  "lessons": [],
  "next_steps": [],
  "people_updates": [],
  "project_updates": []
}
Rules:
- Keep each bullet under 160 characters.
- Only include material consequences, not routine heartbeats.
- Mention owners / stakeholders when relevant.
- If a section has nothing useful, return an empty array.

Date: %s (%s)
Log:
<<<LOG>>>
%s
<<<END LOG>>>
`, date, weekday, strings.TrimSpace(content))
}

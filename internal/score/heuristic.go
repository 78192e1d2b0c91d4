package score

import (
	"regexp"
	"strings"
)

// Scoring signals. Each class fires at most once per section.
var (
	decisionWords = regexp.MustCompile(`(?i)\b(decided|decision|chose|switched|migrated|launched|deployed|fixed|lesson|learned|mistake|insight|important|critical|breakthrough)\b`)
	moneyWords    = regexp.MustCompile(`(?i)\b(invest|stock|portfolio|MACD|crossover|price|earnings|dividend|BTC|ETH|crypto|USD|NOK|EUR)\b`)
	actionWords   = regexp.MustCompile(`(?i)\b(TODO|FIXME|action item|need to|must|should|blocked|waiting)\b`)
	routineWords  = regexp.MustCompile(`(?i)\b(heartbeat|HEARTBEAT_OK|routine check|no new|nothing)\b`)
)

const (
	baseScore     = 3
	minScore      = 1
	maxScore      = 10
	longBodyChars = 200
	recentAgeDays = 3
)

// Heuristic assigns importance scores to sections. People names are
// deployment-specific, so the matcher is built per instance; the keyword
// classes are shared.
type Heuristic struct {
	people *regexp.Regexp
}

// NewHeuristic builds a Heuristic that recognizes the given person names.
// An empty list disables the people signal.
func NewHeuristic(people []string) *Heuristic {
	h := &Heuristic{}
	if len(people) > 0 {
		quoted := make([]string, len(people))
		for i, p := range people {
			quoted[i] = regexp.QuoteMeta(p)
		}
		h.people = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	return h
}

// Score rates one section 1-10 and explains which signals fired.
// It is pure: same inputs, same result.
func (h *Heuristic) Score(title, body string, ageDays int) (int, string) {
	score := baseScore
	var reasons []string

	if decisionWords.MatchString(body) || decisionWords.MatchString(title) {
		score += 3
		reasons = append(reasons, "decision/lesson")
	}
	if h.people != nil && h.people.MatchString(body) {
		score += 2
		reasons = append(reasons, "mentions people")
	}
	if moneyWords.MatchString(body) {
		score += 2
		reasons = append(reasons, "financial")
	}
	if actionWords.MatchString(body) {
		score += 1
		reasons = append(reasons, "action items")
	}
	if routineWords.MatchString(body) {
		score -= 2
		reasons = append(reasons, "routine")
	}
	if len(body) > longBodyChars {
		score += 1
	}
	if ageDays < recentAgeDays {
		score += 1
	}

	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}

	reason := strings.Join(reasons, ", ")
	if reason == "" {
		reason = "general"
	}
	return score, reason
}

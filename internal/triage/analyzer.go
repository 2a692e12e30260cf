// Package triage classifies announcement urgency with a deterministic
// rule-based scorer. No model calls: fast, free, reproducible.
package triage

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Announcement is the minimal view of a synced announcement the analyzer
// needs.
type Announcement struct {
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	PostedAt time.Time `json:"posted_at"`
}

// Result is a classification with the raw score and the signals that fired.
type Result struct {
	Level   Level    `json:"level"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

var urgentPatterns = compileAll(
	`\bcancel(led|lation)?\b`,
	`\bmoved?\b`,
	`\bchanged?\b`,
	`\bemergency\b`,
	`\bimportant\b`,
	`\burgent\b`,
	`\btoday\b`,
	`\btomorrow\b`,
	`\basap\b`,
	`\bdue date change`,
	`\bexam location`,
	`\bzoom link`,
	`\broom change`,
	`\bclass moved`,
	`\bdeadline extended`,
	`\bpostponed\b`,
	`\brescheduled\b`,
	`\bfinal exam\b`,
	`\bgrade[s]? posted\b`,
	`\bextra credit\b`,
	`\bno class\b`,
	`\bclosed\b`,
)

var mediumPatterns = compileAll(
	`\breminder\b`,
	`\bupcoming\b`,
	`\bposted\b`,
	`\bavailable\b`,
	`\bnew assignment\b`,
	`\bquiz\b`,
	`\btest\b`,
	`\bhomework\b`,
	`\breading\b`,
	`\bstudy guide\b`,
	`\boffice hours\b`,
	`\breview session\b`,
	`\bproject\b`,
	`\bpresentation\b`,
	`\blab\b`,
	`\bsubmit\b`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

type Clock func() time.Time

// Analyzer scores announcements. The injected clock keeps recency scoring
// testable.
type Analyzer struct {
	now Clock
}

func New(now Clock) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{now: now}
}

// Analyze scores one announcement.
//
// Urgent keyword +10 each, medium keyword +5 each, posted <2h +15 or <12h +5,
// weekday class hours +5, ALL-CAPS title +5, repeated exclamation marks +3,
// brief message +2. Thresholds: >=25 HIGH, >=10 MEDIUM, else LOW.
func (a *Analyzer) Analyze(ann Announcement) Result {
	score := 0
	var reasons []string
	text := strings.ToLower(ann.Title + " " + ann.Message)

	if n := countMatches(urgentPatterns, text); n > 0 {
		score += n * 10
		reasons = append(reasons, fmt.Sprintf("urgent keywords found (%d)", n))
	}
	if n := countMatches(mediumPatterns, text); n > 0 {
		score += n * 5
		reasons = append(reasons, fmt.Sprintf("important keywords found (%d)", n))
	}

	hoursSince := a.now().Sub(ann.PostedAt).Hours()
	switch {
	case hoursSince >= 0 && hoursSince < 2:
		score += 15
		reasons = append(reasons, "posted recently (< 2 hours)")
	case hoursSince >= 0 && hoursSince < 12:
		score += 5
		reasons = append(reasons, "posted today")
	}

	wd := ann.PostedAt.Weekday()
	if wd >= time.Monday && wd <= time.Friday && ann.PostedAt.Hour() >= 8 && ann.PostedAt.Hour() <= 18 {
		score += 5
		reasons = append(reasons, "posted during class hours")
	}

	if len(ann.Title) > 5 && isAllCaps(ann.Title) {
		score += 5
		reasons = append(reasons, "title in ALL CAPS")
	}
	if strings.Count(ann.Title, "!") >= 2 {
		score += 3
		reasons = append(reasons, "multiple exclamation marks")
	}
	if len(ann.Message) < 200 {
		score += 2
		reasons = append(reasons, "brief message")
	}

	level := LevelLow
	switch {
	case score >= 25:
		level = LevelHigh
	case score >= 10:
		level = LevelMedium
	}
	return Result{Level: level, Score: score, Reasons: reasons}
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

package triage_test

import (
	"testing"
	"time"

	"github.com/readysetclass/backend/internal/triage"
)

// Wednesday 10:00, well inside class hours.
var classTime = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) triage.Clock {
	return func() time.Time { return t }
}

func TestAnalyze_CancellationIsHigh(t *testing.T) {
	a := triage.New(fixedClock(classTime.Add(30 * time.Minute)))
	res := a.Analyze(triage.Announcement{
		Title:    "CLASS CANCELLED TODAY!!",
		Message:  "No class this morning. Check email for the makeup date.",
		PostedAt: classTime,
	})
	if res.Level != triage.LevelHigh {
		t.Fatalf("want HIGH, got %s (score %d, reasons %v)", res.Level, res.Score, res.Reasons)
	}
	if res.Score < 25 {
		t.Fatalf("HIGH requires score >= 25, got %d", res.Score)
	}
}

func TestAnalyze_ReminderIsMedium(t *testing.T) {
	posted := time.Date(2025, time.March, 8, 22, 0, 0, 0, time.UTC) // Saturday night
	a := triage.New(fixedClock(posted.Add(48 * time.Hour)))
	res := a.Analyze(triage.Announcement{
		Title:    "Reminder: quiz next week",
		Message:  "The study guide is on the course page. " + longFiller(),
		PostedAt: posted,
	})
	if res.Level != triage.LevelMedium {
		t.Fatalf("want MEDIUM, got %s (score %d, reasons %v)", res.Level, res.Score, res.Reasons)
	}
}

func TestAnalyze_QuietAnnouncementIsLow(t *testing.T) {
	posted := time.Date(2025, time.March, 9, 6, 0, 0, 0, time.UTC) // Sunday morning
	a := triage.New(fixedClock(posted.Add(72 * time.Hour)))
	res := a.Analyze(triage.Announcement{
		Title:    "Syllabus clarification",
		Message:  "Section 3 of the syllabus now links the updated library guide. " + longFiller(),
		PostedAt: posted,
	})
	if res.Level != triage.LevelLow {
		t.Fatalf("want LOW, got %s (score %d, reasons %v)", res.Level, res.Score, res.Reasons)
	}
}

func TestAnalyze_RecencyBumps(t *testing.T) {
	a := triage.New(fixedClock(classTime.Add(1 * time.Hour)))
	fresh := a.Analyze(triage.Announcement{Title: "Notes", Message: longFiller(), PostedAt: classTime})

	b := triage.New(fixedClock(classTime.Add(36 * time.Hour)))
	stale := b.Analyze(triage.Announcement{Title: "Notes", Message: longFiller(), PostedAt: classTime})

	if fresh.Score-stale.Score != 15 {
		t.Fatalf("fresh post should score +15 over a stale one: fresh=%d stale=%d", fresh.Score, stale.Score)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := triage.New(fixedClock(classTime.Add(3 * time.Hour)))
	ann := triage.Announcement{
		Title:    "Exam location changed",
		Message:  "The final exam moved to Hall B.",
		PostedAt: classTime,
	}
	first := a.Analyze(ann)
	second := a.Analyze(ann)
	if first.Score != second.Score || first.Level != second.Level {
		t.Fatalf("same input must score identically: %+v vs %+v", first, second)
	}
}

// longFiller pads a message past the brevity bonus cutoff.
func longFiller() string {
	s := "This announcement body is intentionally long enough that it does not count as brief. "
	for len(s) < 220 {
		s += "More detail follows. "
	}
	return s
}

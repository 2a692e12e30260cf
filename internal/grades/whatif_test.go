package grades_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/readysetclass/backend/internal/grades"
)

func TestProjectWhatIf_PointsMode(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme:     grades.SchemePoints,
		Categories: []grades.Category{{Name: "HW"}},
		Items: []grades.ScoredItem{
			item("HW", fp(80), 100),
			item("HW", nil, 100),
		},
	}
	res, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: 90, Scope: grades.ScopeCourse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Achievable {
		t.Fatalf("90%% should be achievable: %+v", res)
	}
	// 0.9*200 - 80 = 100 of the remaining 100 points.
	if res.RequiredAverage == nil || *res.RequiredAverage != 100 {
		t.Fatalf("want required average 100, got %v", res.RequiredAverage)
	}
}

func TestProjectWhatIf_TargetExceedsCeiling(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme:     grades.SchemePoints,
		Categories: []grades.Category{{Name: "HW"}},
		Items: []grades.ScoredItem{
			item("HW", fp(60), 100),
			item("HW", nil, 100),
		},
	}
	res, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: 95, Scope: grades.ScopeCourse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Achievable {
		t.Fatalf("130%% required average must be infeasible: %+v", res)
	}
	if res.RequiredAverage == nil || *res.RequiredAverage != 130 {
		t.Fatalf("want required 130, got %v", res.RequiredAverage)
	}
	// Perfect scores on the rest: (60+100)/200.
	if res.MaxPossible == nil || *res.MaxPossible != 80 {
		t.Fatalf("want max possible 80, got %v", res.MaxPossible)
	}
	if !strings.Contains(res.Message, "maximum possible") {
		t.Fatalf("message should name the ceiling: %q", res.Message)
	}
}

func TestProjectWhatIf_TargetAlreadyExceeded(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme:     grades.SchemePoints,
		Categories: []grades.Category{{Name: "HW"}},
		Items: []grades.ScoredItem{
			item("HW", fp(95), 100),
			item("HW", nil, 10),
		},
	}
	res, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: 50, Scope: grades.ScopeCourse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Achievable {
		t.Fatalf("already-exceeded target must be achievable: %+v", res)
	}
	if res.RequiredAverage == nil || *res.RequiredAverage != 0 {
		t.Fatalf("want required 0, got %v", res.RequiredAverage)
	}
}

func TestProjectWhatIf_NoRemainingWork(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme:     grades.SchemePoints,
		Categories: []grades.Category{{Name: "HW"}},
		Items: []grades.ScoredItem{
			item("HW", fp(88), 100),
		},
	}
	met, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: 85, Scope: grades.ScopeCourse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !met.Achievable || met.RequiredAverage == nil || *met.RequiredAverage != 0 {
		t.Fatalf("met target with no remaining work: %+v", met)
	}

	missed, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: 95, Scope: grades.ScopeCourse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missed.Achievable {
		t.Fatalf("missed target with no remaining work must be infeasible: %+v", missed)
	}
	if !strings.Contains(missed.Message, "no remaining work") {
		t.Fatalf("message should say there is no remaining work: %q", missed.Message)
	}
}

func TestProjectWhatIf_InvalidTarget(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme:     grades.SchemePoints,
		Categories: []grades.Category{{Name: "HW"}},
		Items:      []grades.ScoredItem{item("HW", fp(50), 100)},
	}
	for _, target := range []float64{-1, 100.01, 250} {
		_, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: target})
		var ip *grades.InvalidProjectionRequestError
		if !errors.As(err, &ip) {
			t.Fatalf("target %v: expected InvalidProjectionRequestError, got %v", target, err)
		}
	}
}

func TestProjectWhatIf_EmptyCourse(t *testing.T) {
	_, err := grades.ProjectWhatIf(grades.CourseGradeState{}, grades.ProjectionRequest{TargetPercentage: 80})
	var ec *grades.EmptyCourseError
	if !errors.As(err, &ec) {
		t.Fatalf("expected EmptyCourseError, got %v", err)
	}
}

func TestProjectWhatIf_WeightedRoundTrip(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme: grades.SchemeWeighted,
		Categories: []grades.Category{
			{Name: "Homework", Weight: fp(30)},
			{Name: "Quizzes", Weight: fp(30)},
			{Name: "Exams", Weight: fp(40)},
		},
		Items: []grades.ScoredItem{
			item("Homework", fp(80), 100),
			item("Homework", nil, 100),
			item("Quizzes", fp(90), 100),
			item("Exams", nil, 100),
		},
	}
	target := 85.0
	res, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: target, Scope: grades.ScopeCourse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Achievable || res.RequiredAverage == nil {
		t.Fatalf("expected achievable projection: %+v", res)
	}

	// Hypothetically score every remaining item at exactly the required
	// average; the aggregate must land on the target.
	scored := state
	scored.Items = nil
	for _, it := range state.Items {
		if it.PointsEarned == nil {
			v := *res.RequiredAverage / 100 * it.PointsPossible
			it.PointsEarned = &v
		}
		scored.Items = append(scored.Items, it)
	}
	g, err := grades.AggregateGrade(scored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Percentage == nil || math.Abs(*g.Percentage-target) > 0.01 {
		t.Fatalf("round trip: want %v within 0.01, got %v", target, g.Percentage)
	}
}

func TestProjectWhatIf_WeightedSkipsItemlessCategories(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme: grades.SchemeWeighted,
		Categories: []grades.Category{
			{Name: "Homework", Weight: fp(50)},
			{Name: "Final", Weight: fp(50)}, // not yet synced, no items
		},
		Items: []grades.ScoredItem{
			item("Homework", fp(70), 100),
			item("Homework", nil, 100),
		},
	}
	res, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{TargetPercentage: 80, Scope: grades.ScopeCourse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only Homework is active. After renormalizing its 50 weight to the full
	// range: locked = 35, remaining = 50, so required = (80-35)/50*100 = 90.
	if !res.Achievable || res.RequiredAverage == nil || *res.RequiredAverage != 90 {
		t.Fatalf("want required 90 over the active category, got %+v", res)
	}
}

func TestProjectWhatIf_CategoryScope(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme: grades.SchemeWeighted,
		Categories: []grades.Category{
			{Name: "Quizzes", Weight: fp(100)},
		},
		Items: []grades.ScoredItem{
			item("Quizzes", fp(70), 100),
			item("Quizzes", nil, 100),
		},
	}
	res, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{
		TargetPercentage: 80, Scope: grades.ScopeCategory, CategoryName: "Quizzes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 0.8*200 - 70 = 90 on the remaining 100 points.
	if !res.Achievable || res.RequiredAverage == nil || *res.RequiredAverage != 90 {
		t.Fatalf("want required 90, got %+v", res)
	}

	if _, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{
		TargetPercentage: 80, Scope: grades.ScopeCategory,
	}); err == nil {
		t.Fatalf("category scope without a name must fail")
	}
	var ip *grades.InvalidProjectionRequestError
	_, err = grades.ProjectWhatIf(state, grades.ProjectionRequest{
		TargetPercentage: 80, Scope: grades.ScopeCategory, CategoryName: "Labs",
	})
	if !errors.As(err, &ip) {
		t.Fatalf("unknown category must be an InvalidProjectionRequestError, got %v", err)
	}
}

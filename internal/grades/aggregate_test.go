package grades_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/readysetclass/backend/internal/grades"
)

func weightedState() grades.CourseGradeState {
	return grades.CourseGradeState{
		Scheme: grades.SchemeWeighted,
		Categories: []grades.Category{
			{Name: "Homework", Weight: fp(30)},
			{Name: "Quizzes", Weight: fp(30), DropLowest: 1},
			{Name: "Exams", Weight: fp(40)},
		},
		Items: []grades.ScoredItem{
			item("Homework", fp(90), 100),
			item("Homework", fp(80), 100),
			item("Quizzes", fp(60), 100),
			item("Quizzes", fp(70), 100),
			item("Quizzes", fp(95), 100),
			item("Quizzes", fp(100), 100),
			item("Exams", fp(75), 100),
		},
	}
}

func breakdownFor(t *testing.T, g grades.CourseGrade, name string) grades.CategoryScore {
	t.Helper()
	for _, cs := range g.Breakdown {
		if cs.Name == name {
			return cs
		}
	}
	t.Fatalf("no breakdown entry for %q", name)
	return grades.CategoryScore{}
}

func TestAggregateGrade_WeightedWithDropRule(t *testing.T) {
	g, err := grades.AggregateGrade(weightedState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quizzes := breakdownFor(t, g, "Quizzes")
	if quizzes.Percentage == nil || *quizzes.Percentage != 88.33 {
		t.Fatalf("quiz category: want 88.33 after dropping the lowest, got %v", quizzes.Percentage)
	}
	if quizzes.GradedCount != 3 || quizzes.TotalCount != 4 {
		t.Fatalf("quiz counts: want 3 retained of 4, got %d/%d", quizzes.GradedCount, quizzes.TotalCount)
	}

	// 85*30 + 88.33*30 + 75*40, over 100 weight.
	if g.Percentage == nil || *g.Percentage != 82.0 {
		t.Fatalf("overall: want 82.0, got %v", g.Percentage)
	}
	if g.Letter == nil || *g.Letter != "B-" {
		t.Fatalf("letter: want B-, got %v", g.Letter)
	}
}

func TestAggregateGrade_NothingGradedIsNotAnError(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme: grades.SchemeWeighted,
		Categories: []grades.Category{
			{Name: "Homework", Weight: fp(50)},
			{Name: "Exams", Weight: fp(50)},
		},
		Items: []grades.ScoredItem{
			item("Homework", nil, 100),
			item("Exams", nil, 200),
		},
	}
	g, err := grades.AggregateGrade(state)
	if err != nil {
		t.Fatalf("no grades yet must not be an error: %v", err)
	}
	if g.Percentage != nil || g.Letter != nil {
		t.Fatalf("want nil percentage and letter, got %v %v", g.Percentage, g.Letter)
	}
	if len(g.Breakdown) != 2 {
		t.Fatalf("breakdown must still list every category, got %d", len(g.Breakdown))
	}
}

func TestAggregateGrade_EmptyCourse(t *testing.T) {
	_, err := grades.AggregateGrade(grades.CourseGradeState{Scheme: grades.SchemePoints})
	var ec *grades.EmptyCourseError
	if !errors.As(err, &ec) {
		t.Fatalf("expected EmptyCourseError, got %v", err)
	}
}

func TestAggregateGrade_UngradedCategoryExcluded(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme: grades.SchemeWeighted,
		Categories: []grades.Category{
			{Name: "Homework", Weight: fp(50)},
			{Name: "Final", Weight: fp(50)},
		},
		Items: []grades.ScoredItem{
			item("Homework", fp(90), 100),
			item("Final", nil, 100),
		},
	}
	g, err := grades.AggregateGrade(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Final has no graded items: excluded from the denominator, not a zero.
	if g.Percentage == nil || *g.Percentage != 90.0 {
		t.Fatalf("want 90.0, got %v", g.Percentage)
	}
}

func TestAggregateGrade_PointsMode(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme: grades.SchemePoints,
		Categories: []grades.Category{
			{Name: "Assignments"},
			{Name: "Quizzes", DropLowest: 1},
		},
		Items: []grades.ScoredItem{
			item("Assignments", fp(45), 50),
			item("Assignments", fp(38), 50),
			item("Quizzes", fp(4), 10),
			item("Quizzes", fp(9), 10),
		},
	}
	g, err := grades.AggregateGrade(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 45+38+9 = 92 of 50+50+10 = 110 after the lowest quiz drops.
	if g.PointsEarned != 92 || g.PointsPossible != 110 {
		t.Fatalf("points: want 92/110, got %v/%v", g.PointsEarned, g.PointsPossible)
	}
	if g.Percentage == nil || *g.Percentage != 83.64 {
		t.Fatalf("want 83.64, got %v", g.Percentage)
	}
	if g.Letter == nil || *g.Letter != "B" {
		t.Fatalf("want B, got %v", g.Letter)
	}
}

func TestAggregateGrade_Idempotent(t *testing.T) {
	state := weightedState()
	a, err := grades.AggregateGrade(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := grades.AggregateGrade(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("aggregation must be idempotent:\n first %+v\nsecond %+v", a, b)
	}
}

func TestLetterScale_Boundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{100, "A"}, {93, "A"}, {92.99, "A-"}, {90, "A-"},
		{87, "B+"}, {83, "B"}, {80, "B-"}, {77, "C+"},
		{73, "C"}, {70, "C-"}, {67, "D+"}, {63, "D"},
		{60, "D-"}, {59.99, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := grades.Standard.Letter(tc.pct); got != tc.want {
			t.Fatalf("%v%%: want %s, got %s", tc.pct, tc.want, got)
		}
	}
}

func TestScaleFor_FallsBackToStandard(t *testing.T) {
	if got := grades.ScaleFor("nope").Letter(95); got != "A" {
		t.Fatalf("unknown scale must fall back to standard, got %s", got)
	}
	if got := grades.ScaleFor("").Letter(85); got != "B" {
		t.Fatalf("empty key must fall back to standard, got %s", got)
	}
}

func TestAggregateGrade_RoundsToTwoDecimals(t *testing.T) {
	state := grades.CourseGradeState{
		Scheme:     grades.SchemePoints,
		Categories: []grades.Category{{Name: "HW"}},
		Items: []grades.ScoredItem{
			item("HW", fp(1), 3),
		},
	}
	g, err := grades.AggregateGrade(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Percentage == nil || math.Abs(*g.Percentage-33.33) > 1e-9 {
		t.Fatalf("want 33.33, got %v", g.Percentage)
	}
}

package grades

import "sort"

func w(v float64) *float64 { return &v }

// subjectTemplates are canned grading-setup category sets keyed by subject.
// Weights always total 100; drop rules follow common department practice.
var subjectTemplates = map[string][]Category{
	"Mass Communications": {
		{Name: "Participation", Weight: w(15)},
		{Name: "Discussions", Weight: w(20)},
		{Name: "Assignments", Weight: w(30)},
		{Name: "Projects", Weight: w(20)},
		{Name: "Final Project", Weight: w(15)},
	},
	"Mathematics": {
		{Name: "Homework", Weight: w(30)},
		{Name: "Quizzes", Weight: w(30), DropLowest: 1},
		{Name: "Exams", Weight: w(40)},
	},
	"English": {
		{Name: "Essays", Weight: w(50)},
		{Name: "Participation", Weight: w(20)},
		{Name: "Exams", Weight: w(30)},
	},
	"Science": {
		{Name: "Labs", Weight: w(30)},
		{Name: "Quizzes", Weight: w(20), DropLowest: 1},
		{Name: "Exams", Weight: w(50)},
	},
	"History": {
		{Name: "Participation", Weight: w(15)},
		{Name: "Papers", Weight: w(40)},
		{Name: "Midterm", Weight: w(20)},
		{Name: "Final", Weight: w(25)},
	},
	"Business": {
		{Name: "Case Studies", Weight: w(30)},
		{Name: "Quizzes", Weight: w(20), DropLowest: 1},
		{Name: "Project", Weight: w(30)},
		{Name: "Final Exam", Weight: w(20)},
	},
	"Computer Science": {
		{Name: "Programming Assignments", Weight: w(40)},
		{Name: "Quizzes", Weight: w(20), DropLowest: 2},
		{Name: "Projects", Weight: w(25)},
		{Name: "Final Exam", Weight: w(15)},
	},
	// Custom starts blank for manual setup.
	"Custom": {},
}

// Template returns the category set for a subject; unknown subjects get the
// blank Custom template. The returned slice is a copy.
func Template(subject string) []Category {
	t, ok := subjectTemplates[subject]
	if !ok {
		t = subjectTemplates["Custom"]
	}
	out := make([]Category, len(t))
	copy(out, t)
	for i := range out {
		if out[i].Weight != nil {
			v := *out[i].Weight
			out[i].Weight = &v
		}
	}
	return out
}

// TemplateSubjects lists available template subjects, sorted.
func TemplateSubjects() []string {
	out := make([]string, 0, len(subjectTemplates))
	for k := range subjectTemplates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

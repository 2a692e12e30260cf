package course

import (
	"context"
	"errors"
	"time"

	"github.com/readysetclass/backend/internal/grades"
)

var ErrCourseNotFound = errors.New("course not found")

// Course is one teacher-owned course whose grading data we mirror from the
// external LMS.
type Course struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	OwnerID   string        `json:"owner_id"`
	Scheme    grades.Scheme `json:"scheme"`
	Scale     string        `json:"scale,omitempty"`
	CreatedAt int64         `json:"created_at,omitempty"`
}

// Item is a persisted scored item. SourceID is the upstream LMS assignment id
// and is the upsert key within a course; items are never deleted while the
// course is active.
type Item struct {
	ID             string     `json:"id"`
	SourceID       string     `json:"source_id"`
	Name           string     `json:"name"`
	CategoryName   string     `json:"category_name"`
	PointsEarned   *float64   `json:"points_earned"`
	PointsPossible float64    `json:"points_possible"`
	DueAt          *time.Time `json:"due_at,omitempty"`
}

// Store persists courses and materializes the grade engine's snapshot.
type Store interface {
	PutCourse(ctx context.Context, c Course) (Course, error)
	GetCourse(ctx context.Context, id string) (Course, error)
	ListCourses(ctx context.Context, ownerID string) ([]Course, error)

	ReplaceCategories(ctx context.Context, courseID string, cats []grades.Category) error
	ListCategories(ctx context.Context, courseID string) ([]grades.Category, error)
	UpsertItems(ctx context.Context, courseID string, items []Item) error
	ListItems(ctx context.Context, courseID string) ([]Item, error)

	// GradeState assembles the immutable snapshot the engine computes over.
	GradeState(ctx context.Context, courseID string) (grades.CourseGradeState, error)
}

func (i Item) scored() grades.ScoredItem {
	return grades.ScoredItem{
		CategoryName:   i.CategoryName,
		PointsEarned:   i.PointsEarned,
		PointsPossible: i.PointsPossible,
		DueAt:          i.DueAt,
	}
}

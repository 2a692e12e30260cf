// Package trend keeps an append-only log of computed course grades so the
// dashboard can chart movement over time. Grades themselves are always
// recomputed from items; snapshots are display history, never an input.
package trend

import (
	"context"
	"database/sql"
	"time"

	"github.com/readysetclass/backend/internal/grades"
)

type Snapshot struct {
	ID         int64    `json:"id"`
	CourseID   string   `json:"course_id"`
	Percentage *float64 `json:"percentage"`
	Letter     *string  `json:"letter"`
	CapturedAt int64    `json:"captured_at"`
}

type History struct{ db *sql.DB }

func NewHistory(db *sql.DB) *History { return &History{db: db} }

// Append records one computed grade. Nil percentage (nothing graded yet) is
// recorded as-is so the trend line can show when grading started.
func (h *History) Append(ctx context.Context, courseID string, g grades.CourseGrade) error {
	var pct sql.NullFloat64
	if g.Percentage != nil {
		pct = sql.NullFloat64{Float64: *g.Percentage, Valid: true}
	}
	var letter sql.NullString
	if g.Letter != nil {
		letter = sql.NullString{String: *g.Letter, Valid: true}
	}
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO grade_snapshots (course_id, percentage, letter, captured_at)
		 VALUES ($1,$2,$3,$4)`,
		courseID, pct, letter, time.Now().Unix())
	return err
}

// List returns the most recent snapshots, newest first.
func (h *History) List(ctx context.Context, courseID string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, course_id, percentage, letter, captured_at
		 FROM grade_snapshots WHERE course_id=$1
		 ORDER BY captured_at DESC, id DESC LIMIT $2`,
		courseID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var s Snapshot
		var pct sql.NullFloat64
		var letter sql.NullString
		if err := rows.Scan(&s.ID, &s.CourseID, &pct, &letter, &s.CapturedAt); err != nil {
			return nil, err
		}
		if pct.Valid {
			v := pct.Float64
			s.Percentage = &v
		}
		if letter.Valid {
			v := letter.String
			s.Letter = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

package course

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/readysetclass/backend/internal/grades"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutCourse(ctx context.Context, c Course) (Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Scheme == "" {
		c.Scheme = grades.SchemePoints
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO courses (id,name,owner_id,scheme,scale,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, scheme=EXCLUDED.scheme, scale=EXCLUDED.scale`,
		c.ID, c.Name, c.OwnerID, string(c.Scheme), c.Scale, c.CreatedAt)
	if err != nil {
		return Course{}, err
	}
	return c, nil
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,owner_id,scheme,scale,created_at FROM courses WHERE id=$1`, id)
	var c Course
	var scheme string
	if err := row.Scan(&c.ID, &c.Name, &c.OwnerID, &scheme, &c.Scale, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, ErrCourseNotFound
		}
		return Course{}, err
	}
	c.Scheme = grades.Scheme(scheme)
	return c, nil
}

func (s *SQLStore) ListCourses(ctx context.Context, ownerID string) ([]Course, error) {
	var rows *sql.Rows
	var err error
	if ownerID == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id,name,owner_id,scheme,scale,created_at FROM courses ORDER BY name`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id,name,owner_id,scheme,scale,created_at FROM courses WHERE owner_id=$1 ORDER BY name`, ownerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Course{}
	for rows.Next() {
		var c Course
		var scheme string
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID, &scheme, &c.Scale, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Scheme = grades.Scheme(scheme)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) ReplaceCategories(ctx context.Context, courseID string, cats []grades.Category) error {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM course_categories WHERE course_id=$1`, courseID); err != nil {
		return err
	}
	for i, c := range cats {
		var weight sql.NullFloat64
		if c.Weight != nil {
			weight = sql.NullFloat64{Float64: *c.Weight, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO course_categories (course_id,name,weight,drop_lowest,drop_highest,position)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			courseID, c.Name, weight, c.DropLowest, c.DropHighest, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) ListCategories(ctx context.Context, courseID string) ([]grades.Category, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT name,weight,drop_lowest,drop_highest FROM course_categories WHERE course_id=$1 ORDER BY position`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []grades.Category{}
	for rows.Next() {
		var c grades.Category
		var weight sql.NullFloat64
		if err := rows.Scan(&c.Name, &weight, &c.DropLowest, &c.DropHighest); err != nil {
			return nil, err
		}
		if weight.Valid {
			v := weight.Float64
			c.Weight = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpsertItems(ctx context.Context, courseID string, items []Item) error {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		var earned sql.NullFloat64
		if it.PointsEarned != nil {
			earned = sql.NullFloat64{Float64: *it.PointsEarned, Valid: true}
		}
		var due sql.NullInt64
		if it.DueAt != nil {
			due = sql.NullInt64{Int64: it.DueAt.Unix(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO course_items (id,course_id,source_id,name,category_name,points_earned,points_possible,due_at,updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			 ON CONFLICT (course_id,source_id) DO UPDATE SET
			   name=EXCLUDED.name, category_name=EXCLUDED.category_name,
			   points_earned=EXCLUDED.points_earned, points_possible=EXCLUDED.points_possible,
			   due_at=EXCLUDED.due_at, updated_at=EXCLUDED.updated_at`,
			it.ID, courseID, it.SourceID, it.Name, it.CategoryName, earned, it.PointsPossible, due, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) ListItems(ctx context.Context, courseID string) ([]Item, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,source_id,name,category_name,points_earned,points_possible,due_at
		 FROM course_items WHERE course_id=$1 ORDER BY source_id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	out := []Item{}
	for rows.Next() {
		var it Item
		var earned sql.NullFloat64
		var due sql.NullInt64
		if err := rows.Scan(&it.ID, &it.SourceID, &it.Name, &it.CategoryName, &earned, &it.PointsPossible, &due); err != nil {
			return nil, err
		}
		if earned.Valid {
			v := earned.Float64
			it.PointsEarned = &v
		}
		if due.Valid {
			t := time.Unix(due.Int64, 0).UTC()
			it.DueAt = &t
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLStore) GradeState(ctx context.Context, courseID string) (grades.CourseGradeState, error) {
	c, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return grades.CourseGradeState{}, err
	}
	cats, err := s.ListCategories(ctx, courseID)
	if err != nil {
		return grades.CourseGradeState{}, err
	}
	items, err := s.ListItems(ctx, courseID)
	if err != nil {
		return grades.CourseGradeState{}, err
	}
	state := grades.CourseGradeState{Scheme: c.Scheme, Scale: c.Scale, Categories: cats}
	for _, it := range items {
		state.Items = append(state.Items, it.scored())
	}
	return state, nil
}

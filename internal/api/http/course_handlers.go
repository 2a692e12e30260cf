package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	authmw "github.com/readysetclass/backend/internal/auth/middleware"
	"github.com/readysetclass/backend/internal/course"
	"github.com/readysetclass/backend/internal/grades"
)

type createCourseReq struct {
	Name   string `json:"name" validate:"required"`
	Scheme string `json:"scheme" validate:"omitempty,oneof=weighted points"`
	Scale  string `json:"scale"`
}

// POST /courses
func CreateCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCourseReq
		if !decodeValid(w, r, &req) {
			return
		}
		c, err := store.PutCourse(r.Context(), course.Course{
			Name:    req.Name,
			OwnerID: authmw.SubjectFromContext(r.Context()),
			Scheme:  grades.Scheme(req.Scheme),
			Scale:   req.Scale,
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, c)
	}
}

// GET /courses
func ListCoursesHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListCourses(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, out)
	}
}

// GET /courses/{courseID}
func GetCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if id == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		c, err := store.GetCourse(r.Context(), id)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, c)
	}
}

type itemDTO struct {
	SourceID       string     `json:"source_id" validate:"required"`
	Name           string     `json:"name"`
	CategoryName   string     `json:"category_name" validate:"required"`
	PointsEarned   *float64   `json:"points_earned" validate:"omitempty,gte=0"`
	PointsPossible float64    `json:"points_possible" validate:"gt=0"`
	DueAt          *time.Time `json:"due_at"`
}

type upsertItemsReq struct {
	Items []itemDTO `json:"items" validate:"required,min=1,dive"`
}

// POST /courses/{courseID}/items
// Sync path: assignments arrive when the external LMS syncs and are updated
// in place as grades post.
func UpsertItemsHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if id == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		var req upsertItemsReq
		if !decodeValid(w, r, &req) {
			return
		}
		items := make([]course.Item, 0, len(req.Items))
		for _, d := range req.Items {
			items = append(items, course.Item{
				SourceID:       d.SourceID,
				Name:           d.Name,
				CategoryName:   d.CategoryName,
				PointsEarned:   d.PointsEarned,
				PointsPossible: d.PointsPossible,
				DueAt:          d.DueAt,
			})
		}
		if err := store.UpsertItems(r.Context(), id, items); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]int{"upserted": len(items)})
	}
}

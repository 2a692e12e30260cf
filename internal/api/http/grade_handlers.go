package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/readysetclass/backend/internal/course"
	"github.com/readysetclass/backend/internal/grades"
	"github.com/readysetclass/backend/internal/trend"
)

// GET /courses/{courseID}/grade
// Recomputes the grade from the stored state and appends a trend snapshot.
func CourseGradeHandler(store course.Store, history *trend.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if id == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		state, err := store.GradeState(r.Context(), id)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		grade, err := grades.AggregateGrade(state)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		if history != nil {
			if err := history.Append(r.Context(), id, grade); err != nil {
				// Snapshot failures must not block the grade itself.
				log.Warn().Err(err).Str("course_id", id).Msg("trend snapshot append failed")
			}
		}
		writeJSON(w, grade)
	}
}

// GET /courses/{courseID}/grade/history?limit=N
func GradeHistoryHandler(history *trend.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if id == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		snaps, err := history.List(r.Context(), id, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{"snapshots": snaps})
	}
}

type whatIfReq struct {
	TargetPercentage float64 `json:"target_percentage" validate:"gte=0,lte=100"`
	Scope            string  `json:"scope" validate:"omitempty,oneof=course category"`
	CategoryName     string  `json:"category_name"`
}

// POST /courses/{courseID}/whatif
func WhatIfHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if id == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		var req whatIfReq
		if !decodeValid(w, r, &req) {
			return
		}
		scope := grades.ProjectionScope(req.Scope)
		if scope == "" {
			scope = grades.ScopeCourse
		}
		state, err := store.GradeState(r.Context(), id)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		result, err := grades.ProjectWhatIf(state, grades.ProjectionRequest{
			TargetPercentage: req.TargetPercentage,
			Scope:            scope,
			CategoryName:     req.CategoryName,
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, result)
	}
}

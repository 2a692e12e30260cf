package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/readysetclass/backend/internal/course"
	"github.com/readysetclass/backend/internal/grades"
	"github.com/readysetclass/backend/internal/setup"
)

type categoryDTO struct {
	Name        string   `json:"name" validate:"required"`
	Weight      *float64 `json:"weight"`
	DropLowest  int      `json:"drop_lowest" validate:"gte=0"`
	DropHighest int      `json:"drop_highest" validate:"gte=0"`
}

func (d categoryDTO) toCategory() grades.Category {
	return grades.Category{
		Name:        d.Name,
		Weight:      d.Weight,
		DropLowest:  d.DropLowest,
		DropHighest: d.DropHighest,
	}
}

type validateWeightsReq struct {
	Categories []categoryDTO `json:"categories" validate:"required,min=1,dive"`
}

// POST /grading/validate-weights
// Stateless: validates a proposed category set without touching any course.
func ValidateWeightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateWeightsReq
		if !decodeValid(w, r, &req) {
			return
		}
		cats := make([]grades.Category, 0, len(req.Categories))
		for _, d := range req.Categories {
			cats = append(cats, d.toCategory())
		}
		result, err := grades.ValidateWeights(cats)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, result)
	}
}

// GET /grading/templates
func ListTemplatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string][]string{"subjects": grades.TemplateSubjects()})
	}
}

// GET /grading/templates/{subject}
// Unknown subjects resolve to the blank Custom template.
func GetTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := strings.TrimSpace(chi.URLParam(r, "subject"))
		writeJSON(w, map[string]interface{}{
			"subject":    subject,
			"categories": grades.Template(subject),
		})
	}
}

type replaceCategoriesReq struct {
	Categories []categoryDTO `json:"categories" validate:"required,dive"`
}

// PUT /courses/{courseID}/categories
// Malformed weights (negative, none set) are rejected outright; an off-100 sum
// is stored anyway and reported back with the suggested fix, so a teacher can
// save work in progress.
func ReplaceCategoriesHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if id == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		var req replaceCategoriesReq
		if !decodeValid(w, r, &req) {
			return
		}
		cats := make([]grades.Category, 0, len(req.Categories))
		for _, d := range req.Categories {
			cats = append(cats, d.toCategory())
		}

		c, err := store.GetCourse(r.Context(), id)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		var validation *grades.ValidationResult
		if c.Scheme == grades.SchemeWeighted && len(cats) > 0 {
			res, err := grades.ValidateWeights(cats)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			validation = &res
		}

		if err := store.ReplaceCategories(r.Context(), id, cats); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"categories": len(cats),
			"validation": validation,
		})
	}
}

// GET /courses/{courseID}/setup/analysis
func SetupAnalysisHandler(store course.Store) http.HandlerFunc {
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
		writeJSON(w, setup.Analyze(state))
	}
}

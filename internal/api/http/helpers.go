package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/readysetclass/backend/internal/course"
	"github.com/readysetclass/backend/internal/grades"
)

var validate = validator.New()

// decodeValid decodes a JSON body and runs struct validation. It writes the
// 400 itself and reports whether the caller may proceed.
func decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeEngineError maps engine and store errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var iw *grades.InvalidWeightError
	var ip *grades.InvalidProjectionRequestError
	var ec *grades.EmptyCourseError
	switch {
	case errors.Is(err, course.ErrCourseNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &ip):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &iw), errors.As(err, &ec):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

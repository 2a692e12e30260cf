package grades

import "fmt"

// InvalidWeightError reports a malformed weighted category set: a negative
// weight, no weighted category at all, or weights that cannot be normalized.
type InvalidWeightError struct {
	Category string
	Reason   string
}

func (e *InvalidWeightError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("invalid weight for category %q: %s", e.Category, e.Reason)
	}
	return "invalid weights: " + e.Reason
}

// EmptyCourseError means the course has no categories and no items at all.
// Distinct from "no grades yet", which aggregates to a nil percentage.
type EmptyCourseError struct{}

func (e *EmptyCourseError) Error() string { return "course has no categories and no scored items" }

// InvalidProjectionRequestError reports an unusable what-if request.
type InvalidProjectionRequestError struct {
	Reason string
}

func (e *InvalidProjectionRequestError) Error() string {
	return "invalid projection request: " + e.Reason
}

package grades

import "time"

// Scheme selects how a course grade is computed.
type Scheme string

const (
	// SchemeWeighted: each category contributes a fixed share of the final
	// grade, independent of point volume.
	SchemeWeighted Scheme = "weighted"
	// SchemePoints: earned points over possible points, no category weights.
	SchemePoints Scheme = "points"
)

// Category is a bucket of scored items (e.g. "Quizzes"). Weight is a
// percentage share in a weighted scheme; nil means unweighted.
type Category struct {
	Name        string   `json:"name"`
	Weight      *float64 `json:"weight"`
	DropLowest  int      `json:"drop_lowest"`
	DropHighest int      `json:"drop_highest"`
}

// ScoredItem is one assignment's score within a category. PointsEarned is nil
// until a grade posts.
type ScoredItem struct {
	CategoryName   string     `json:"category_name"`
	PointsEarned   *float64   `json:"points_earned"`
	PointsPossible float64    `json:"points_possible"`
	DueAt          *time.Time `json:"due_at,omitempty"`
}

// Graded reports whether the item has a posted score it can be aggregated on.
func (s ScoredItem) Graded() bool {
	return s.PointsEarned != nil && s.PointsPossible > 0
}

// Percentage is the item's score as a percentage of its possible points.
// Only meaningful when Graded.
func (s ScoredItem) Percentage() float64 {
	if !s.Graded() {
		return 0
	}
	return *s.PointsEarned / s.PointsPossible * 100
}

// CourseGradeState is one course's full grading snapshot: categories plus the
// scored items they partition. It is derived from synced data and recomputed
// on every read; the engine never mutates it.
type CourseGradeState struct {
	Scheme     Scheme       `json:"scheme"`
	Scale      string       `json:"scale,omitempty"` // letter-scale key, "" = standard
	Categories []Category   `json:"categories"`
	Items      []ScoredItem `json:"items"`
}

// CategoryScore is one category's line in the grade breakdown.
type CategoryScore struct {
	Name           string   `json:"name"`
	Percentage     *float64 `json:"percentage"` // nil when no graded items
	PointsEarned   float64  `json:"points_earned"`
	PointsPossible float64  `json:"points_possible"`
	Weight         *float64 `json:"weight"`
	GradedCount    int      `json:"graded_count"`
	TotalCount     int      `json:"total_count"`
}

// CourseGrade is the aggregation result. Percentage and Letter are nil when
// nothing has been graded yet; that is a valid state, not an error.
type CourseGrade struct {
	Percentage     *float64        `json:"percentage"`
	Letter         *string         `json:"letter"`
	PointsEarned   float64         `json:"points_earned"`
	PointsPossible float64         `json:"points_possible"`
	Breakdown      []CategoryScore `json:"breakdown"`
}

// ProjectionScope selects what a what-if target applies to.
type ProjectionScope string

const (
	ScopeCourse   ProjectionScope = "course"
	ScopeCategory ProjectionScope = "category"
)

// ProjectionRequest asks what average is needed on remaining work to reach a
// target grade. CategoryName is required when Scope is ScopeCategory.
type ProjectionRequest struct {
	TargetPercentage float64         `json:"target_percentage"`
	Scope            ProjectionScope `json:"scope"`
	CategoryName     string          `json:"category_name,omitempty"`
}

// ProjectionResult reports feasibility of a what-if target. MaxPossible is
// populated only when the target exceeds the achievable ceiling.
type ProjectionResult struct {
	Achievable      bool     `json:"achievable"`
	RequiredAverage *float64 `json:"required_average"`
	Message         string   `json:"message"`
	MaxPossible     *float64 `json:"max_possible,omitempty"`
}

// SuggestedWeight is one category's weight after normalization.
type SuggestedWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// ValidationResult is the outcome of checking a weighted category set. When
// invalid, Suggested holds weights rescaled to sum to exactly 100.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	Sum       float64           `json:"sum"`
	Delta     float64           `json:"delta"` // Sum - 100
	Suggested []SuggestedWeight `json:"suggested,omitempty"`
}

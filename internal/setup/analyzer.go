// Package setup inspects a course's grading configuration and reports what a
// teacher should fix before trusting the computed grades.
package setup

import (
	"errors"
	"fmt"
	"math"

	"github.com/readysetclass/backend/internal/grades"
)

const (
	HealthHealthy        = "healthy"
	HealthNeedsAttention = "needs_attention"
)

// Analysis summarizes the state of a course's grading setup.
type Analysis struct {
	HasCategories    bool                     `json:"has_categories"`
	WeightedEnabled  bool                     `json:"weighted_grading_enabled"`
	TotalWeight      float64                  `json:"total_weight"`
	OrphanItems      int                      `json:"orphan_items"`
	EmptyCategories  int                      `json:"empty_categories"`
	Issues           []string                 `json:"issues"`
	Suggestions      []string                 `json:"suggestions"`
	SuggestedWeights []grades.SuggestedWeight `json:"suggested_weights,omitempty"`
	Health           string                   `json:"health"`
}

// Analyze checks a grading setup for the usual messes: weights off 100,
// several categories without weighted grading, items pointing at missing
// categories, and categories with nothing in them.
func Analyze(state grades.CourseGradeState) Analysis {
	a := Analysis{
		HasCategories:   len(state.Categories) > 0,
		WeightedEnabled: state.Scheme == grades.SchemeWeighted,
	}

	for _, c := range state.Categories {
		if c.Weight != nil {
			a.TotalWeight += *c.Weight
		}
	}
	a.TotalWeight = roundTotal(a.TotalWeight)

	if !a.WeightedEnabled && len(state.Categories) > 1 {
		a.Issues = append(a.Issues, "multiple categories exist but weighted grading is not enabled")
		a.Suggestions = append(a.Suggestions, "enable weighted grading to use category weights")
	}

	if a.WeightedEnabled {
		res, err := grades.ValidateWeights(state.Categories)
		var iw *grades.InvalidWeightError
		switch {
		case errors.As(err, &iw):
			a.Issues = append(a.Issues, iw.Error())
			a.Suggestions = append(a.Suggestions, "give every category a non-negative weight")
		case err == nil && !res.Valid:
			a.Issues = append(a.Issues, fmt.Sprintf("weights total %.2f%% (should be 100%%)", res.Sum))
			if res.Delta < 0 {
				a.Suggestions = append(a.Suggestions, fmt.Sprintf("add %.2f%% to existing categories", -res.Delta))
			} else {
				a.Suggestions = append(a.Suggestions, fmt.Sprintf("reduce weights by %.2f%%", res.Delta))
			}
			a.SuggestedWeights = res.Suggested
		}
	}

	known := make(map[string]bool, len(state.Categories))
	itemsPer := make(map[string]int, len(state.Categories))
	for _, c := range state.Categories {
		known[c.Name] = true
	}
	for _, it := range state.Items {
		if known[it.CategoryName] {
			itemsPer[it.CategoryName]++
		} else {
			a.OrphanItems++
		}
	}
	if a.OrphanItems > 0 {
		a.Issues = append(a.Issues, fmt.Sprintf("%d assignments are not in any category", a.OrphanItems))
		a.Suggestions = append(a.Suggestions, "move orphan assignments to appropriate categories")
	}
	for _, c := range state.Categories {
		if itemsPer[c.Name] == 0 {
			a.EmptyCategories++
		}
	}
	if a.EmptyCategories > 0 {
		a.Issues = append(a.Issues, fmt.Sprintf("%d empty categories (no assignments)", a.EmptyCategories))
		a.Suggestions = append(a.Suggestions, "remove empty categories or add assignments to them")
	}

	a.Health = HealthHealthy
	if len(a.Issues) > 0 {
		a.Health = HealthNeedsAttention
	}
	return a
}

func roundTotal(v float64) float64 {
	return math.Round(v*100) / 100
}

package grades

import "fmt"

const projectionEpsilon = 1e-9

// ProjectWhatIf answers "what average do I need on the remaining work to
// finish at the target percentage". Stateless and single-shot: it performs no
// I/O and operates on an already-materialized snapshot.
//
// Weighted mode splits every category's weight between its graded portion
// (locked, valued at the category's current percentage) and its ungraded
// portion, proportional to points possible. Categories with no items at all
// are excluded and the rest renormalized, mirroring AggregateGrade's
// denominator rule. Points mode is a plain ratio over points.
func ProjectWhatIf(state CourseGradeState, req ProjectionRequest) (ProjectionResult, error) {
	if req.TargetPercentage < 0 || req.TargetPercentage > 100 {
		return ProjectionResult{}, &InvalidProjectionRequestError{Reason: "target percentage must be between 0 and 100"}
	}
	if len(state.Categories) == 0 && len(state.Items) == 0 {
		return ProjectionResult{}, &EmptyCourseError{}
	}

	switch req.Scope {
	case ScopeCategory:
		return projectCategory(state, req)
	case ScopeCourse, "":
		if state.Scheme == SchemeWeighted {
			return projectWeighted(state, req)
		}
		return projectPoints(state, req)
	default:
		return ProjectionResult{}, &InvalidProjectionRequestError{Reason: fmt.Sprintf("unknown scope %q", req.Scope)}
	}
}

func projectWeighted(state CourseGradeState, req ProjectionRequest) (ProjectionResult, error) {
	byCategory := map[string][]ScoredItem{}
	for _, it := range state.Items {
		byCategory[it.CategoryName] = append(byCategory[it.CategoryName], it)
	}

	locked, remainingWeight, activeWeight := 0.0, 0.0, 0.0
	for _, c := range state.Categories {
		if c.Weight == nil || *c.Weight <= 0 {
			continue
		}
		retained := ApplyDropRules(byCategory[c.Name], c.DropLowest, c.DropHighest)
		lockedEarned, lockedPossible := 0.0, 0.0
		for _, it := range retained {
			lockedEarned += *it.PointsEarned
			lockedPossible += it.PointsPossible
		}
		remainingPossible := 0.0
		for _, it := range byCategory[c.Name] {
			if it.PointsEarned == nil && it.PointsPossible > 0 {
				remainingPossible += it.PointsPossible
			}
		}
		total := lockedPossible + remainingPossible
		if total <= 0 {
			continue
		}
		activeWeight += *c.Weight
		if lockedPossible > 0 {
			locked += *c.Weight * (lockedPossible / total) * (lockedEarned / lockedPossible)
		}
		remainingWeight += *c.Weight * (remainingPossible / total)
	}
	if activeWeight <= 0 {
		return finishProjection(state, req, 0, 0, 0)
	}
	// Renormalize so locked + remaining span the full 0-100 range even when
	// item-less categories were excluded.
	locked *= 100 / activeWeight
	remainingWeight *= 100 / activeWeight
	return finishProjection(state, req, locked, remainingWeight, locked+remainingWeight)
}

func projectPoints(state CourseGradeState, req ProjectionRequest) (ProjectionResult, error) {
	known := make(map[string]Category, len(state.Categories))
	for _, c := range state.Categories {
		known[c.Name] = c
	}
	byCategory := map[string][]ScoredItem{}
	var loose []ScoredItem
	for _, it := range state.Items {
		if _, ok := known[it.CategoryName]; ok {
			byCategory[it.CategoryName] = append(byCategory[it.CategoryName], it)
		} else {
			loose = append(loose, it)
		}
	}

	earned, lockedPossible := 0.0, 0.0
	for name, items := range byCategory {
		c := known[name]
		for _, it := range ApplyDropRules(items, c.DropLowest, c.DropHighest) {
			earned += *it.PointsEarned
			lockedPossible += it.PointsPossible
		}
	}
	for _, it := range loose {
		if it.Graded() {
			earned += *it.PointsEarned
			lockedPossible += it.PointsPossible
		}
	}
	remaining := 0.0
	for _, it := range state.Items {
		if it.PointsEarned == nil && it.PointsPossible > 0 {
			remaining += it.PointsPossible
		}
	}
	return finishPointsProjection(state, req, earned, lockedPossible, remaining)
}

func projectCategory(state CourseGradeState, req ProjectionRequest) (ProjectionResult, error) {
	if req.CategoryName == "" {
		return ProjectionResult{}, &InvalidProjectionRequestError{Reason: "category scope requires a category name"}
	}
	var cat *Category
	for i := range state.Categories {
		if state.Categories[i].Name == req.CategoryName {
			cat = &state.Categories[i]
			break
		}
	}
	if cat == nil {
		return ProjectionResult{}, &InvalidProjectionRequestError{Reason: fmt.Sprintf("unknown category %q", req.CategoryName)}
	}
	var items []ScoredItem
	for _, it := range state.Items {
		if it.CategoryName == cat.Name {
			items = append(items, it)
		}
	}
	earned, lockedPossible := 0.0, 0.0
	for _, it := range ApplyDropRules(items, cat.DropLowest, cat.DropHighest) {
		earned += *it.PointsEarned
		lockedPossible += it.PointsPossible
	}
	remaining := 0.0
	for _, it := range items {
		if it.PointsEarned == nil && it.PointsPossible > 0 {
			remaining += it.PointsPossible
		}
	}
	return finishPointsProjection(state, req, earned, lockedPossible, remaining)
}

// finishPointsProjection converts a points-mode position into the shared
// locked/remaining percentage-point form.
func finishPointsProjection(state CourseGradeState, req ProjectionRequest, earned, lockedPossible, remaining float64) (ProjectionResult, error) {
	total := lockedPossible + remaining
	if total <= 0 {
		return finishProjection(state, req, 0, 0, 0)
	}
	locked := earned / total * 100
	remainingWeight := remaining / total * 100
	return finishProjection(state, req, locked, remainingWeight, locked+remainingWeight)
}

// finishProjection applies the shared clamping rules. locked and
// remainingWeight are in percentage points of the final grade; maxPossible is
// the grade achieved by scoring 100% on everything remaining.
func finishProjection(state CourseGradeState, req ProjectionRequest, locked, remainingWeight, maxPossible float64) (ProjectionResult, error) {
	target := req.TargetPercentage
	scale := ScaleFor(state.Scale)

	if remainingWeight <= projectionEpsilon {
		current, ok := currentForScope(state, req)
		if ok && current >= target-weightTolerance {
			zero := 0.0
			return ProjectionResult{
				Achievable:      true,
				RequiredAverage: &zero,
				Message:         "no remaining work; target already met",
			}, nil
		}
		return ProjectionResult{
			Achievable: false,
			Message:    "no remaining work",
		}, nil
	}

	required := (target - locked) / remainingWeight * 100
	switch {
	case required > 100+projectionEpsilon:
		r := round2(required)
		max := round2(maxPossible)
		return ProjectionResult{
			Achievable:      false,
			RequiredAverage: &r,
			MaxPossible:     &max,
			Message: fmt.Sprintf("target exceeds maximum possible score; best case is %.1f%%, would need %.1f%% on remaining work",
				max, r),
		}, nil
	case required < 0:
		zero := 0.0
		return ProjectionResult{
			Achievable:      true,
			RequiredAverage: &zero,
			Message:         "target already exceeded",
		}, nil
	default:
		r := round2(required)
		return ProjectionResult{
			Achievable:      true,
			RequiredAverage: &r,
			Message: fmt.Sprintf("need %.1f%% average on remaining work to reach %s (%.1f%%)",
				r, scale.Letter(target), target),
		}, nil
	}
}

// currentForScope is the already-earned percentage the no-remaining-work rule
// compares against the target.
func currentForScope(state CourseGradeState, req ProjectionRequest) (float64, bool) {
	if req.Scope == ScopeCategory {
		for _, c := range state.Categories {
			if c.Name != req.CategoryName {
				continue
			}
			var items []ScoredItem
			for _, it := range state.Items {
				if it.CategoryName == c.Name {
					items = append(items, it)
				}
			}
			earned, possible := 0.0, 0.0
			for _, it := range ApplyDropRules(items, c.DropLowest, c.DropHighest) {
				earned += *it.PointsEarned
				possible += it.PointsPossible
			}
			if possible <= 0 {
				return 0, false
			}
			return earned / possible * 100, true
		}
		return 0, false
	}
	g, err := AggregateGrade(state)
	if err != nil || g.Percentage == nil {
		return 0, false
	}
	return *g.Percentage, true
}

package grades

// AggregateGrade computes the current course grade from a snapshot. It is a
// pure function: same state in, same grade out.
//
// Weighted mode: each category's percentage is earned/possible over the items
// retained by its drop rules, and the overall grade is the weight-proportional
// average over categories that have at least one graded item. Categories with
// nothing graded are excluded from the denominator, not scored as zero. Points
// mode ignores weights and divides total earned by total possible.
//
// A course where nothing is graded yet aggregates to nil percentage and nil
// letter. A course with no categories and no items at all is an error.
func AggregateGrade(state CourseGradeState) (CourseGrade, error) {
	if len(state.Categories) == 0 && len(state.Items) == 0 {
		return CourseGrade{}, &EmptyCourseError{}
	}

	byCategory := make(map[string][]ScoredItem, len(state.Categories))
	known := make(map[string]bool, len(state.Categories))
	for _, c := range state.Categories {
		known[c.Name] = true
	}
	var orphans []ScoredItem
	for _, it := range state.Items {
		if known[it.CategoryName] {
			byCategory[it.CategoryName] = append(byCategory[it.CategoryName], it)
		} else {
			orphans = append(orphans, it)
		}
	}

	grade := CourseGrade{Breakdown: make([]CategoryScore, 0, len(state.Categories))}
	weightedSum, weightDen := 0.0, 0.0
	totalEarned, totalPossible := 0.0, 0.0

	for _, c := range state.Categories {
		items := byCategory[c.Name]
		retained := ApplyDropRules(items, c.DropLowest, c.DropHighest)

		cs := CategoryScore{Name: c.Name, Weight: c.Weight, TotalCount: len(items)}
		earned, possible := 0.0, 0.0
		for _, it := range retained {
			earned += *it.PointsEarned
			possible += it.PointsPossible
		}
		cs.GradedCount = len(retained)
		cs.PointsEarned = round2(earned)
		cs.PointsPossible = round2(possible)

		if possible > 0 {
			pct := round2(earned / possible * 100)
			cs.Percentage = &pct

			if state.Scheme == SchemeWeighted {
				if c.Weight != nil && *c.Weight > 0 {
					weightedSum += pct * *c.Weight
					weightDen += *c.Weight
				}
			}
			totalEarned += earned
			totalPossible += possible
		}
		grade.Breakdown = append(grade.Breakdown, cs)
	}

	// Items naming no known category only count in points mode; the setup
	// analyzer flags them for cleanup.
	if state.Scheme != SchemeWeighted {
		for _, it := range orphans {
			if it.Graded() {
				totalEarned += *it.PointsEarned
				totalPossible += it.PointsPossible
			}
		}
	}

	grade.PointsEarned = round2(totalEarned)
	grade.PointsPossible = round2(totalPossible)

	var pct float64
	switch {
	case state.Scheme == SchemeWeighted && weightDen > 0:
		pct = round2(weightedSum / weightDen)
	case state.Scheme != SchemeWeighted && totalPossible > 0:
		pct = round2(totalEarned / totalPossible * 100)
	default:
		// Nothing graded yet: explicitly nil, never zero.
		return grade, nil
	}
	letter := ScaleFor(state.Scale).Letter(pct)
	grade.Percentage = &pct
	grade.Letter = &letter
	return grade, nil
}

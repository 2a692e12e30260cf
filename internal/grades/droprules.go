package grades

import "sort"

// ApplyDropRules returns the graded items a category should aggregate on after
// excluding the dropLowest lowest-scoring and dropHighest highest-scoring
// items. Ungraded items are never sortable or droppable and are not returned.
//
// Items are ordered by score percentage ascending; ties keep insertion order
// (stable sort) so results are reproducible. When the drop counts would
// eliminate everything, the highest-scoring item is retained anyway to keep
// the category computable.
func ApplyDropRules(items []ScoredItem, dropLowest, dropHighest int) []ScoredItem {
	graded := make([]ScoredItem, 0, len(items))
	for _, it := range items {
		if it.Graded() {
			graded = append(graded, it)
		}
	}
	if len(graded) == 0 {
		return nil
	}
	sort.SliceStable(graded, func(i, j int) bool {
		return graded[i].Percentage() < graded[j].Percentage()
	})

	if dropLowest < 0 {
		dropLowest = 0
	}
	if dropHighest < 0 {
		dropHighest = 0
	}
	if dropLowest+dropHighest >= len(graded) {
		// Deliberate policy: never drop a category to zero items.
		return graded[len(graded)-1:]
	}
	return graded[dropLowest : len(graded)-dropHighest]
}

package grades

import "math"

// weightTolerance is how far from 100 a weight sum may drift before the set
// is reported invalid.
const weightTolerance = 0.01

// ValidateWeights checks that a weighted category set sums to 100 (within
// tolerance). When it does not, the result carries the delta and a suggested
// normalization: every weight scaled by 100/sum, rounded to 2 decimals, with
// the rounding remainder folded into one category so the suggestion sums to
// exactly 100.
//
// Callers on a points scheme should skip this entirely; weights are ignored
// there.
func ValidateWeights(categories []Category) (ValidationResult, error) {
	sum := 0.0
	weighted := 0
	for _, c := range categories {
		if c.Weight == nil {
			continue
		}
		if *c.Weight < 0 {
			return ValidationResult{}, &InvalidWeightError{Category: c.Name, Reason: "weight is negative"}
		}
		weighted++
		sum += *c.Weight
	}
	if weighted == 0 {
		return ValidationResult{}, &InvalidWeightError{Reason: "no category has a weight"}
	}
	if sum == 0 {
		return ValidationResult{}, &InvalidWeightError{Reason: "weights sum to zero"}
	}

	res := ValidationResult{Sum: round2(sum), Delta: round2(sum - 100)}
	if math.Abs(sum-100) <= weightTolerance {
		res.Valid = true
		return res, nil
	}
	res.Suggested = normalizeWeights(categories, sum)
	return res, nil
}

// normalizeWeights rescales weights to total 100, preserving relative
// proportions. The 2-decimal rounding remainder goes to the smallest positive
// weight (latest on ties), falling back to the largest if that would push the
// smallest below zero.
func normalizeWeights(categories []Category, sum float64) []SuggestedWeight {
	out := make([]SuggestedWeight, 0, len(categories))
	rounded := 0.0
	smallest, largest := -1, -1
	for _, c := range categories {
		if c.Weight == nil {
			continue
		}
		w := round2(*c.Weight * 100 / sum)
		rounded += w
		i := len(out)
		out = append(out, SuggestedWeight{Name: c.Name, Weight: w})
		if w > 0 && (smallest < 0 || w <= out[smallest].Weight) {
			smallest = i
		}
		if largest < 0 || w > out[largest].Weight {
			largest = i
		}
	}
	remainder := round2(100 - rounded)
	if remainder == 0 || smallest < 0 {
		return out
	}
	at := smallest
	if out[at].Weight+remainder < 0 {
		at = largest
	}
	out[at].Weight = round2(out[at].Weight + remainder)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

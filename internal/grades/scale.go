package grades

// GradeScale maps a percentage to a letter grade.
type GradeScale interface {
	Letter(percentage float64) string
}

// Band is one rung of a threshold scale: the letter applies from Min upward.
type Band struct {
	Min    float64
	Letter string
}

// ThresholdScale walks bands in order and returns the first whose Min the
// percentage meets. Bands must be sorted by Min descending.
type ThresholdScale []Band

func (s ThresholdScale) Letter(percentage float64) string {
	for _, b := range s {
		if percentage >= b.Min {
			return b.Letter
		}
	}
	return "F"
}

// Standard is the fixed letter scale: boundaries inclusive on the lower bound.
var Standard = ThresholdScale{
	{93, "A"}, {90, "A-"}, {87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"}, {67, "D+"}, {63, "D"},
	{60, "D-"}, {0, "F"},
}

var scaleRegistry = map[string]GradeScale{}

// RegisterScale binds a scale to a key like "standard" or a district custom.
func RegisterScale(key string, s GradeScale) { scaleRegistry[key] = s }

// ScaleFor resolves a registered scale; unknown or empty keys fall back to
// Standard.
func ScaleFor(key string) GradeScale {
	if s, ok := scaleRegistry[key]; ok && s != nil {
		return s
	}
	return Standard
}

func init() {
	RegisterScale("standard", Standard)
}

package grading

// Tier is one band of the 1-9 grading scale used for primary/basic school
// reports. Grade 1 is the best band, grade 9 the worst.
type Tier struct {
	Grade int     `json:"grade"`
	Min   float64 `json:"min"` // inclusive
	Max   float64 `json:"max"` // inclusive
	Label string  `json:"label"`
}

// Scale is the authoritative boundary table, ordered best to worst. The bands
// partition [0,100]: every valid score lands in exactly one tier. Lookup is a
// threshold scan over Min, so fractional scores between band edges (e.g. 79.5)
// fall into the lower band, matching the inclusive integer ranges.
var Scale = []Tier{
	{Grade: 1, Min: 80, Max: 100, Label: "HIGHEST"},
	{Grade: 2, Min: 70, Max: 79, Label: "HIGHER"},
	{Grade: 3, Min: 65, Max: 69, Label: "HIGH"},
	{Grade: 4, Min: 60, Max: 64, Label: "HIGH AVERAGE"},
	{Grade: 5, Min: 55, Max: 59, Label: "AVERAGE"},
	{Grade: 6, Min: 50, Max: 54, Label: "LOW AVERAGE"},
	{Grade: 7, Min: 45, Max: 49, Label: "LOW"},
	{Grade: 8, Min: 35, Max: 44, Label: "LOWER"},
	{Grade: 9, Min: 0, Max: 34, Label: "LOWEST"},
}

// GradeFor maps a score in [0,100] to its grade tier (1..9). The score is
// validated first; out-of-range values never reach the table.
func GradeFor(score float64) (int, error) {
	s, err := ValidateScore(score)
	if err != nil {
		return 0, err
	}
	for _, t := range Scale {
		if s >= t.Min {
			return t.Grade, nil
		}
	}
	// s >= 0 after validation, so the grade-9 band always catches it.
	return Scale[len(Scale)-1].Grade, nil
}

// TierLabel returns the descriptor for a grade number, or "Unknown" for
// anything outside 1..9.
func TierLabel(grade int) string {
	for _, t := range Scale {
		if t.Grade == grade {
			return t.Label
		}
	}
	return "Unknown"
}

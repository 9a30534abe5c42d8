package grading

import "sort"

// GradedMark is one subject's validated score with its grade tier attached.
type GradedMark struct {
	SubjectCode string
	SubjectName string
	Score       float64
	Grade       int
}

// SelectBest picks the k best-performing marks by raw score descending.
// Selection rewards the raw score, not the grade: two marks can share a tier
// and still differ in score. Exact score ties order by subject code ascending
// so repeated runs over the same marks always select the same subjects.
// If fewer than k marks exist, all of them are selected and rejected is empty;
// the caller flags the shortfall.
func SelectBest(marks []GradedMark, k int) (selected, rejected []GradedMark) {
	sorted := make([]GradedMark, len(marks))
	copy(sorted, marks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].SubjectCode < sorted[j].SubjectCode
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k], sorted[k:]
}

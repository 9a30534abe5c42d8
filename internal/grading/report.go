package grading

import "fmt"

// Entry is one graded subject line in a transparency report.
type Entry struct {
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Score       float64 `json:"score"`
	Grade       int     `json:"grade"`
	GradeLabel  string  `json:"grade_label"`
	Selected    bool    `json:"selected"`
}

// Report is the full breakdown behind one aggregate. It is the sole contract
// surface for every downstream renderer (CSV, PDF, on-screen tables), so the
// field names and nesting stay stable and renderers never re-derive the
// selection themselves.
type Report struct {
	StudentID         string  `json:"student_id"`
	Term              string  `json:"term"`
	ExamType          string  `json:"exam_type"`
	CoreSubjects      []Entry `json:"core_subjects"`
	AllElectives      []Entry `json:"all_electives"`
	SelectedElectives []Entry `json:"selected_electives"`
	CoreTotal         int     `json:"core_total"`
	ElectiveTotal     int     `json:"elective_total"`
	Aggregate         int     `json:"aggregate"`
	ElectivesComplete bool    `json:"electives_complete"`
	Warning           string  `json:"warning,omitempty"`
	SelectionMethod   string  `json:"selection_method"`
}

// BuildReport shapes graded marks into the renderer-facing record. Core
// entries arrive ordered by subject code; selected/rejected electives arrive
// in the selector's score-descending order and are concatenated for the
// all-electives view. An elective shortfall is surfaced via Warning and
// ElectivesComplete, never silently.
func BuildReport(studentID, term, examType string, core, selected, rejected []GradedMark,
	coreTotal, electiveTotal, aggregate int) *Report {

	rep := &Report{
		StudentID:         studentID,
		Term:              term,
		ExamType:          examType,
		CoreSubjects:      entries(core, true),
		SelectedElectives: entries(selected, true),
		AllElectives:      append(entries(selected, true), entries(rejected, false)...),
		CoreTotal:         coreTotal,
		ElectiveTotal:     electiveTotal,
		Aggregate:         aggregate,
		ElectivesComplete: len(selected) >= ElectivePickCount,
		SelectionMethod: fmt.Sprintf("the %d elective subjects with the highest scores were selected",
			len(selected)),
	}
	if !rep.ElectivesComplete {
		rep.Warning = Errorf(KindInsufficientElectives,
			"Insufficient elective subjects: %d/%d required; aggregate computed from an incomplete elective set",
			len(selected), ElectivePickCount).Message
	}
	return rep
}

func entries(marks []GradedMark, selected bool) []Entry {
	out := make([]Entry, 0, len(marks))
	for _, m := range marks {
		out = append(out, Entry{
			SubjectCode: m.SubjectCode,
			SubjectName: m.SubjectName,
			Score:       m.Score,
			Grade:       m.Grade,
			GradeLabel:  TierLabel(m.Grade),
			Selected:    selected,
		})
	}
	return out
}

package marks

import "github.com/sankofa-ed/sankofa-sms/internal/grading"

type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassName string `json:"class_name,omitempty"`
	// Aggregate is the last persisted aggregate for the student, nil until a
	// computation has been stored.
	Aggregate *int  `json:"aggregate,omitempty"`
	CreatedAt int64 `json:"created_at,omitempty"`
}

// Subject is immutable reference data: identity plus its core/elective kind.
type Subject struct {
	ID   string              `json:"id"`
	Code string              `json:"code"`
	Name string              `json:"name"`
	Kind grading.SubjectKind `json:"kind"` // core | elective
}

// Mark is one score for one (student, subject, term, exam_type). The store
// upserts on that key, so at most one row ever exists per key.
type Mark struct {
	ID        string  `json:"id"`
	StudentID string  `json:"student_id"`
	SubjectID string  `json:"subject_id"`
	Term      string  `json:"term"`
	ExamType  string  `json:"exam_type"`
	Score     float64 `json:"score"`
	UpdatedAt int64   `json:"updated_at,omitempty"`
}

// Period enumerations. Validated upstream; the grading engine treats them as
// opaque keys.
const (
	Term1 = "Term 1"
	Term2 = "Term 2"
	Term3 = "Term 3"

	ExamMidTerm   = "Mid-term"
	ExamExternal  = "External"
	ExamEndOfTerm = "End of Term"
)

var (
	Terms     = []string{Term1, Term2, Term3}
	ExamTypes = []string{ExamMidTerm, ExamExternal, ExamEndOfTerm}
)

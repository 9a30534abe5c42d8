package marks

import (
	"context"

	"github.com/sankofa-ed/sankofa-sms/internal/grading"
)

// Store is the storage collaborator for students, subjects and marks. PutMark
// applies upsert semantics keyed by (student, subject, term, exam_type) and
// must reject invalid scores before they reach persistence. Stores also act
// as the grading engine's MarkSource via SubjectMarks.
type Store interface {
	PutStudent(ctx context.Context, s Student) (Student, error)
	GetStudent(ctx context.Context, id string) (Student, error)
	ListStudents(ctx context.Context) ([]Student, error)

	PutSubject(ctx context.Context, s Subject) (Subject, error)
	ListSubjects(ctx context.Context) ([]Subject, error)

	PutMark(ctx context.Context, m Mark) (Mark, error)
	GetMarks(ctx context.Context, studentID, term, examType string) ([]Mark, error)

	// SubjectMarks returns the student's marks for the period joined with
	// subject metadata, for the grading engine.
	SubjectMarks(ctx context.Context, studentID, term, examType string) ([]grading.SubjectMark, error)

	// SaveAggregate persists a computed aggregate on the student row.
	SaveAggregate(ctx context.Context, studentID string, aggregate int) error
}

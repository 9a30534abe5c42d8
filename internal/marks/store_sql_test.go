package marks_test

import (
	"context"
	"testing"

	"github.com/sankofa-ed/sankofa-sms/internal/audit"
	"github.com/sankofa-ed/sankofa-sms/internal/db"
	"github.com/sankofa-ed/sankofa-sms/internal/grading"
	"github.com/sankofa-ed/sankofa-sms/internal/marks"
)

// End-to-end over the real SQLite store: schema bootstrap, upserts, the
// engine's joined read, aggregate persistence, and the audit trail.
func Test_EndToEnd_SQLite(t *testing.T) {
	ctx := context.Background()

	dbh, err := db.Open(ctx, db.DriverSQLite, "file:markstest.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	defer dbh.Close()

	store := marks.NewSQLStore(dbh, "sqlite")

	stu, err := store.PutStudent(ctx, marks.Student{Name: "Esi Asante", ClassName: "Basic 6"})
	if err != nil {
		t.Fatalf("put student: %v", err)
	}

	seed := []struct {
		code, name string
		kind       grading.SubjectKind
		score      float64
	}{
		{"MAT", "Mathematics", grading.SubjectCore, 85},
		{"ENG", "English", grading.SubjectCore, 78},
		{"SCI", "Science", grading.SubjectCore, 92},
		{"SOC", "Social Studies", grading.SubjectCore, 88},
		{"ICT", "Computer Studies", grading.SubjectElective, 52},
		{"PE", "Physical Education", grading.SubjectElective, 48},
	}
	for _, s := range seed {
		sub, err := store.PutSubject(ctx, marks.Subject{Code: s.code, Name: s.name, Kind: s.kind})
		if err != nil {
			t.Fatalf("put subject %s: %v", s.code, err)
		}
		if _, err := store.PutMark(ctx, marks.Mark{
			StudentID: stu.ID, SubjectID: sub.ID,
			Term: marks.Term3, ExamType: marks.ExamEndOfTerm, Score: s.score,
		}); err != nil {
			t.Fatalf("put mark %s: %v", s.code, err)
		}
	}

	// Upsert: re-entering Mathematics must overwrite, not duplicate.
	subs, err := store.ListSubjects(ctx)
	if err != nil {
		t.Fatalf("list subjects: %v", err)
	}
	var mathID string
	for _, sub := range subs {
		if sub.Code == "MAT" {
			mathID = sub.ID
		}
	}
	if _, err := store.PutMark(ctx, marks.Mark{
		StudentID: stu.ID, SubjectID: mathID,
		Term: marks.Term3, ExamType: marks.ExamEndOfTerm, Score: 90,
	}); err != nil {
		t.Fatalf("re-put mark: %v", err)
	}
	got, err := store.GetMarks(ctx, stu.ID, marks.Term3, marks.ExamEndOfTerm)
	if err != nil {
		t.Fatalf("get marks: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 marks after upsert, got %d", len(got))
	}

	// Invalid scores must never reach the table.
	if _, err := store.PutMark(ctx, marks.Mark{
		StudentID: stu.ID, SubjectID: mathID,
		Term: marks.Term1, ExamType: marks.ExamMidTerm, Score: 130,
	}); grading.KindOf(err) != grading.KindScoreTooHigh {
		t.Fatalf("want SCORE_TOO_HIGH, got %v", err)
	}

	// Engine over the SQL store.
	rep, err := grading.NewEngine(store).Compute(ctx, stu.ID, marks.Term3, marks.ExamEndOfTerm)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if rep.Aggregate != 18 {
		t.Fatalf("aggregate = %d, want 18 (cores 1,2,1,1 + electives 6,7)", rep.Aggregate)
	}

	if err := store.SaveAggregate(ctx, stu.ID, rep.Aggregate); err != nil {
		t.Fatalf("save aggregate: %v", err)
	}
	stu2, err := store.GetStudent(ctx, stu.ID)
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	if stu2.Aggregate == nil || *stu2.Aggregate != 18 {
		t.Fatalf("aggregate not persisted: %+v", stu2)
	}

	// Audit trail.
	log := audit.NewEventLog(dbh)
	if err := log.Append(ctx, audit.EventAggregateComputed, stu.ID, rep); err != nil {
		t.Fatalf("audit append: %v", err)
	}
	events, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("audit recent: %v", err)
	}
	if len(events) != 1 || events[0].Type != audit.EventAggregateComputed || events[0].Key != stu.ID {
		t.Fatalf("unexpected audit events: %+v", events)
	}

	// Unknown student propagates STUDENT_NOT_FOUND from the store.
	if _, err := store.SubjectMarks(ctx, "ghost", marks.Term3, marks.ExamEndOfTerm); grading.KindOf(err) != grading.KindStudentNotFound {
		t.Fatalf("want STUDENT_NOT_FOUND, got %v", err)
	}
}

package grading_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sankofa-ed/sankofa-sms/internal/grading"
)

type fakeSource struct {
	marks map[string][]grading.SubjectMark
	err   error
}

func (f *fakeSource) SubjectMarks(_ context.Context, studentID, term, examType string) ([]grading.SubjectMark, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.marks[studentID+"|"+term+"|"+examType], nil
}

func core(code, name string, score float64) grading.SubjectMark {
	return grading.SubjectMark{SubjectCode: code, SubjectName: name, Kind: grading.SubjectCore, Score: score}
}

func elective(code, name string, score float64) grading.SubjectMark {
	return grading.SubjectMark{SubjectCode: code, SubjectName: name, Kind: grading.SubjectElective, Score: score}
}

func seedFull() *fakeSource {
	return &fakeSource{marks: map[string][]grading.SubjectMark{
		"stu-1|Term 3|End of Term": {
			core("MAT", "Mathematics", 85),
			core("ENG", "English", 78),
			core("SCI", "Science", 92),
			core("SOC", "Social Studies", 88),
			elective("ICT", "Computer Studies", 52),
			elective("PE", "Physical Education", 48),
			elective("ART", "Art", 45),
			elective("MUS", "Music", 32),
		},
	}}
}

func TestComputeFullBreakdown(t *testing.T) {
	eng := grading.NewEngine(seedFull())
	rep, err := eng.Compute(context.Background(), "stu-1", "Term 3", "End of Term")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cores 85/78/92/88 grade to 1,2,1,1.
	if rep.CoreTotal != 5 {
		t.Fatalf("core total = %d, want 5", rep.CoreTotal)
	}
	// Best two electives by score: ICT 52 (grade 6) and PE 48 (grade 7).
	if rep.ElectiveTotal != 13 {
		t.Fatalf("elective total = %d, want 13", rep.ElectiveTotal)
	}
	if rep.Aggregate != 18 {
		t.Fatalf("aggregate = %d, want 18", rep.Aggregate)
	}
	if !rep.ElectivesComplete || rep.Warning != "" {
		t.Fatalf("elective set should be complete: complete=%v warning=%q", rep.ElectivesComplete, rep.Warning)
	}

	if len(rep.CoreSubjects) != 4 {
		t.Fatalf("core entries = %d, want 4", len(rep.CoreSubjects))
	}
	if len(rep.SelectedElectives) != 2 {
		t.Fatalf("selected electives = %d, want 2", len(rep.SelectedElectives))
	}
	if rep.SelectedElectives[0].SubjectCode != "ICT" || rep.SelectedElectives[1].SubjectCode != "PE" {
		t.Fatalf("selected %q, %q; want ICT, PE",
			rep.SelectedElectives[0].SubjectCode, rep.SelectedElectives[1].SubjectCode)
	}

	// Art and Music must still appear, flagged unselected.
	if len(rep.AllElectives) != 4 {
		t.Fatalf("all electives = %d, want 4", len(rep.AllElectives))
	}
	flags := map[string]bool{}
	for _, e := range rep.AllElectives {
		flags[e.SubjectCode] = e.Selected
	}
	if !flags["ICT"] || !flags["PE"] || flags["ART"] || flags["MUS"] {
		t.Fatalf("selection flags wrong: %v", flags)
	}
	if rep.SelectionMethod != "the 2 elective subjects with the highest scores were selected" {
		t.Fatalf("selection method = %q", rep.SelectionMethod)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	eng := grading.NewEngine(seedFull())
	first, err := eng.Compute(context.Background(), "stu-1", "Term 3", "End of Term")
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := eng.Compute(context.Background(), "stu-1", "Term 3", "End of Term")
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated compute differs (-first +second):\n%s", diff)
	}
}

func TestComputeFailsWithMissingCoreSubject(t *testing.T) {
	src := &fakeSource{marks: map[string][]grading.SubjectMark{
		"stu-1|Term 3|End of Term": {
			core("MAT", "Mathematics", 85),
			core("ENG", "English", 78),
			core("SCI", "Science", 92),
			elective("ICT", "Computer Studies", 52),
			elective("PE", "Physical Education", 48),
		},
	}}
	rep, err := grading.NewEngine(src).Compute(context.Background(), "stu-1", "Term 3", "End of Term")
	if grading.KindOf(err) != grading.KindMissingCoreSubject {
		t.Fatalf("want MISSING_CORE_SUBJECT, got %v", err)
	}
	if rep != nil {
		t.Fatalf("no partial report may be returned, got %+v", rep)
	}
}

func TestComputeDegradesWithSingleElective(t *testing.T) {
	src := &fakeSource{marks: map[string][]grading.SubjectMark{
		"stu-1|Term 3|End of Term": {
			core("MAT", "Mathematics", 85),
			core("ENG", "English", 78),
			core("SCI", "Science", 92),
			core("SOC", "Social Studies", 88),
			elective("ICT", "Computer Studies", 52),
		},
	}}
	rep, err := grading.NewEngine(src).Compute(context.Background(), "stu-1", "Term 3", "End of Term")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.ElectiveTotal != 6 {
		t.Fatalf("elective total = %d, want 6 (single grade-6 mark)", rep.ElectiveTotal)
	}
	if rep.Aggregate != 11 {
		t.Fatalf("aggregate = %d, want 11", rep.Aggregate)
	}
	if rep.ElectivesComplete {
		t.Fatalf("incomplete elective set must be flagged")
	}
	if rep.Warning == "" {
		t.Fatalf("warning must surface the shortfall")
	}
}

func TestComputeFailsFastOnInvalidScore(t *testing.T) {
	src := seedFull()
	src.marks["stu-1|Term 3|End of Term"][2].Score = 105
	rep, err := grading.NewEngine(src).Compute(context.Background(), "stu-1", "Term 3", "End of Term")
	if grading.KindOf(err) != grading.KindScoreTooHigh {
		t.Fatalf("want SCORE_TOO_HIGH, got %v", err)
	}
	if rep != nil {
		t.Fatalf("no partial report may be returned")
	}
}

func TestComputePropagatesSourceErrors(t *testing.T) {
	src := &fakeSource{err: grading.Errorf(grading.KindStudentNotFound, "student %q not found", "ghost")}
	_, err := grading.NewEngine(src).Compute(context.Background(), "ghost", "Term 3", "End of Term")
	if grading.KindOf(err) != grading.KindStudentNotFound {
		t.Fatalf("want STUDENT_NOT_FOUND passed through unchanged, got %v", err)
	}
}

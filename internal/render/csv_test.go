package render_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/sankofa-ed/sankofa-sms/internal/grading"
	"github.com/sankofa-ed/sankofa-sms/internal/render"
)

func TestWriteCSV(t *testing.T) {
	rep := grading.BuildReport("stu-1", "Term 3", "End of Term",
		[]grading.GradedMark{
			{SubjectCode: "ENG", SubjectName: "English", Score: 78, Grade: 2},
			{SubjectCode: "MAT", SubjectName: "Mathematics", Score: 85, Grade: 1},
		},
		[]grading.GradedMark{{SubjectCode: "ICT", SubjectName: "Computer Studies", Score: 52, Grade: 6}},
		[]grading.GradedMark{{SubjectCode: "MUS", SubjectName: "Music", Score: 32, Grade: 9}},
		3, 6, 9)

	var buf bytes.Buffer
	if err := render.WriteCSV(&buf, rep); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}

	var ict, mus, aggregate []string
	for _, row := range rows {
		if len(row) > 1 {
			switch row[1] {
			case "ICT":
				ict = row
			case "MUS":
				mus = row
			}
			if row[0] == "Aggregate" {
				aggregate = row
			}
		}
	}
	if ict == nil || ict[5] != "yes" {
		t.Fatalf("selected elective row wrong: %v", ict)
	}
	if mus == nil || mus[5] != "no" {
		t.Fatalf("rejected elective row wrong: %v", mus)
	}
	if aggregate == nil || aggregate[1] != "9" {
		t.Fatalf("aggregate row wrong: %v", aggregate)
	}
	if !strings.Contains(buf.String(), "1 (HIGHEST)") {
		t.Fatalf("grade labels missing:\n%s", buf.String())
	}
}

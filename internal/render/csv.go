package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sankofa-ed/sankofa-sms/internal/grading"
)

// WriteCSV flattens a transparency report into CSV rows. It consumes the
// report as-is: selection flags and totals come straight from the engine,
// never re-derived here.
func WriteCSV(w io.Writer, rep *grading.Report) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Student", rep.StudentID, "", "", "", ""},
		{"Term", rep.Term, "", "", "", ""},
		{"Exam Type", rep.ExamType, "", "", "", ""},
		{},
		{"Section", "Code", "Subject", "Score", "Grade", "Selected"},
	}
	for _, e := range rep.CoreSubjects {
		rows = append(rows, entryRow("Core", e))
	}
	for _, e := range rep.AllElectives {
		rows = append(rows, entryRow("Elective", e))
	}
	rows = append(rows,
		[]string{},
		[]string{"Core Total", fmt.Sprintf("%d", rep.CoreTotal), "", "", "", ""},
		[]string{"Elective Total", fmt.Sprintf("%d", rep.ElectiveTotal), "", "", "", ""},
		[]string{"Aggregate", fmt.Sprintf("%d", rep.Aggregate), "", "", "", ""},
		[]string{"Selection Method", rep.SelectionMethod, "", "", "", ""},
	)
	if rep.Warning != "" {
		rows = append(rows, []string{"Warning", rep.Warning, "", "", "", ""})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func entryRow(section string, e grading.Entry) []string {
	selected := "no"
	if e.Selected {
		selected = "yes"
	}
	return []string{
		section,
		e.SubjectCode,
		e.SubjectName,
		fmt.Sprintf("%g", e.Score),
		fmt.Sprintf("%d (%s)", e.Grade, e.GradeLabel),
		selected,
	}
}

package grading

import (
	"context"
	"sort"
)

// SubjectKind splits the curriculum into the mandatory core set and the
// optional electives.
type SubjectKind string

const (
	SubjectCore     SubjectKind = "core"
	SubjectElective SubjectKind = "elective"
)

const (
	// CoreSubjectCount is the fixed, mandatory size of the core set.
	CoreSubjectCount = 4
	// ElectivePickCount is how many electives count toward the aggregate.
	ElectivePickCount = 2
)

// SubjectMark is one raw mark joined with its subject metadata, as supplied
// by the storage collaborator.
type SubjectMark struct {
	SubjectCode string
	SubjectName string
	Kind        SubjectKind
	Score       float64
}

// MarkSource supplies the engine with one consistent snapshot of a student's
// marks per call. At most one mark exists per (student, subject, term,
// exam_type); the store's upsert guarantees that.
type MarkSource interface {
	SubjectMarks(ctx context.Context, studentID, term, examType string) ([]SubjectMark, error)
}

// Engine computes a student's aggregate: the sum of grade tiers across the 4
// core subjects plus the 2 best electives. Lower is better. The engine is a
// pure reader: it never mutates stored marks, holds no state between calls,
// and two calls over unchanged marks produce identical reports.
type Engine struct {
	src MarkSource
}

func NewEngine(src MarkSource) *Engine { return &Engine{src: src} }

// Compute fetches the student's marks for the period, validates and grades
// every one of them, selects the best electives, and returns the full
// transparency report. Any invalid score aborts the whole computation; a
// partial aggregate is never returned.
func (e *Engine) Compute(ctx context.Context, studentID, term, examType string) (*Report, error) {
	sm, err := e.src.SubjectMarks(ctx, studentID, term, examType)
	if err != nil {
		return nil, err
	}

	var core, electives []GradedMark
	for _, m := range sm {
		score, err := ValidateScore(m.Score)
		if err != nil {
			return nil, err
		}
		grade, err := GradeFor(score)
		if err != nil {
			return nil, err
		}
		gm := GradedMark{
			SubjectCode: m.SubjectCode,
			SubjectName: m.SubjectName,
			Score:       score,
			Grade:       grade,
		}
		switch m.Kind {
		case SubjectElective:
			electives = append(electives, gm)
		default:
			core = append(core, gm)
		}
	}

	if len(core) < CoreSubjectCount {
		return nil, Errorf(KindMissingCoreSubject,
			"Insufficient core subjects: %d/%d required", len(core), CoreSubjectCount)
	}
	// Deterministic core ordering; if more than 4 core marks somehow exist,
	// the first 4 by subject code count toward the aggregate.
	sort.Slice(core, func(i, j int) bool { return core[i].SubjectCode < core[j].SubjectCode })
	core = core[:CoreSubjectCount]

	selected, rejected := SelectBest(electives, ElectivePickCount)

	coreTotal := 0
	for _, m := range core {
		coreTotal += m.Grade
	}
	electiveTotal := 0
	for _, m := range selected {
		electiveTotal += m.Grade
	}

	return BuildReport(studentID, term, examType, core, selected, rejected,
		coreTotal, electiveTotal, coreTotal+electiveTotal), nil
}

package marks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sankofa-ed/sankofa-sms/internal/grading"
)

// memoryStore backs offline/dev mode and tests. Same contract as SQLStore,
// including upsert-by-key marks and validation-gated writes.
type memoryStore struct {
	mu       sync.RWMutex
	students map[string]Student
	subjects map[string]Subject // by ID
	marks    map[string]Mark    // by (student|subject|term|examType)
}

func NewInMemoryStore() Store {
	return &memoryStore{
		students: map[string]Student{},
		subjects: map[string]Subject{},
		marks:    map[string]Mark{},
	}
}

func markKey(studentID, subjectID, term, examType string) string {
	return studentID + "|" + subjectID + "|" + term + "|" + examType
}

func (m *memoryStore) PutStudent(_ context.Context, st Student) (Student, error) {
	if st.Name == "" {
		return Student{}, errors.New("student name required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt == 0 {
		st.CreatedAt = time.Now().Unix()
	}
	if prev, ok := m.students[st.ID]; ok {
		st.Aggregate = prev.Aggregate
		st.CreatedAt = prev.CreatedAt
	}
	m.students[st.ID] = st
	return st, nil
}

func (m *memoryStore) GetStudent(_ context.Context, id string) (Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.students[id]
	if !ok {
		return Student{}, grading.Errorf(grading.KindStudentNotFound, "student %q not found", id)
	}
	return st, nil
}

func (m *memoryStore) ListStudents(_ context.Context) ([]Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Student, 0, len(m.students))
	for _, st := range m.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryStore) PutSubject(_ context.Context, sub Subject) (Subject, error) {
	if sub.Code == "" || sub.Name == "" {
		return Subject{}, errors.New("subject code and name required")
	}
	switch sub.Kind {
	case grading.SubjectCore, grading.SubjectElective:
	case "":
		sub.Kind = grading.SubjectElective
	default:
		return Subject{}, fmt.Errorf("unknown subject kind %q", sub.Kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Upsert by code, mirroring the SQL unique constraint.
	for id, existing := range m.subjects {
		if existing.Code == sub.Code {
			sub.ID = id
			m.subjects[id] = sub
			return sub, nil
		}
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	m.subjects[sub.ID] = sub
	return sub, nil
}

func (m *memoryStore) ListSubjects(_ context.Context) ([]Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Subject, 0, len(m.subjects))
	for _, sub := range m.subjects {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memoryStore) PutMark(_ context.Context, mk Mark) (Mark, error) {
	score, err := grading.ValidateScore(mk.Score)
	if err != nil {
		return Mark{}, err
	}
	mk.Score = score
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[mk.StudentID]; !ok {
		return Mark{}, grading.Errorf(grading.KindStudentNotFound, "student %q not found", mk.StudentID)
	}
	if _, ok := m.subjects[mk.SubjectID]; !ok {
		return Mark{}, fmt.Errorf("subject %q not found", mk.SubjectID)
	}
	key := markKey(mk.StudentID, mk.SubjectID, mk.Term, mk.ExamType)
	if prev, ok := m.marks[key]; ok {
		mk.ID = prev.ID // last write wins, identity stays
	} else if mk.ID == "" {
		mk.ID = uuid.NewString()
	}
	mk.UpdatedAt = time.Now().Unix()
	m.marks[key] = mk
	return mk, nil
}

func (m *memoryStore) GetMarks(_ context.Context, studentID, term, examType string) ([]Mark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Mark
	for _, mk := range m.marks {
		if mk.StudentID == studentID && mk.Term == term && mk.ExamType == examType {
			out = append(out, mk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}

func (m *memoryStore) SubjectMarks(_ context.Context, studentID, term, examType string) ([]grading.SubjectMark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.students[studentID]; !ok {
		return nil, grading.Errorf(grading.KindStudentNotFound, "student %q not found", studentID)
	}
	var out []grading.SubjectMark
	for _, mk := range m.marks {
		if mk.StudentID != studentID || mk.Term != term || mk.ExamType != examType {
			continue
		}
		sub, ok := m.subjects[mk.SubjectID]
		if !ok {
			continue
		}
		out = append(out, grading.SubjectMark{
			SubjectCode: sub.Code,
			SubjectName: sub.Name,
			Kind:        sub.Kind,
			Score:       mk.Score,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectCode < out[j].SubjectCode })
	return out, nil
}

func (m *memoryStore) SaveAggregate(_ context.Context, studentID string, aggregate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.students[studentID]
	if !ok {
		return grading.Errorf(grading.KindStudentNotFound, "student %q not found", studentID)
	}
	st.Aggregate = &aggregate
	m.students[studentID] = st
	return nil
}
